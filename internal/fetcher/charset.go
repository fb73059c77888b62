package fetcher

import (
	"fmt"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
)

// minConfidence is the chardet score below which a guess is ignored.
const minConfidence = 50

// decodeBody converts body to UTF-8. A charset in the Content-Type header or
// a byte order mark wins; valid UTF-8 is kept as is; then a <meta> charset
// declaration; then statistical detection.
func decodeBody(body []byte, contentType string) (string, error) {
	enc, name, certain := charset.DetermineEncoding(body, contentType)
	if !certain {
		if utf8.Valid(body) {
			return string(body), nil
		}
		// DetermineEncoding falls back to windows-1252 when nothing in the
		// document names an encoding.
		if name == "windows-1252" {
			if detected, ok := detectCharset(body); ok {
				enc, name = charset.Lookup(detected)
			}
		}
	}
	if name == "utf-8" {
		return string(body), nil
	}

	out, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s body: %w", name, err)
	}
	return string(out), nil
}

func detectCharset(body []byte) (string, bool) {
	result, err := chardet.NewHtmlDetector().DetectBest(body)
	if err != nil || result == nil || result.Confidence < minConfidence {
		return "", false
	}
	if e, _ := charset.Lookup(result.Charset); e == nil {
		return "", false
	}
	return result.Charset, true
}
