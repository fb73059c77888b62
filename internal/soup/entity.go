package soup

import (
	"html"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// unknownReference replaces references that name no entity or carry a
// payload that is not a valid code point.
const unknownReference = "?"

var referenceRe = regexp.MustCompile(`&(#[xX][0-9A-Za-z]+|#[0-9A-Za-z]+|[A-Za-z][A-Za-z0-9.-]*);?`)

func decodeReferences(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	return referenceRe.ReplaceAllStringFunc(s, func(ref string) string {
		body := strings.TrimSuffix(strings.TrimPrefix(ref, "&"), ";")
		if strings.HasPrefix(body, "#") {
			return decodeNumeric(body[1:])
		}
		return decodeNamed(body)
	})
}

func decodeNumeric(payload string) string {
	base := 10
	if strings.HasPrefix(payload, "x") || strings.HasPrefix(payload, "X") {
		base = 16
		payload = payload[1:]
	}
	cp, err := strconv.ParseInt(payload, base, 32)
	if err != nil || !utf8.ValidRune(rune(cp)) {
		return unknownReference
	}
	return string(rune(cp))
}

// decodeNamed resolves name through the HTML entity table. html.UnescapeString
// also accepts legacy entities as prefixes ("&ampx;" -> "&x;"), which leave a
// trailing ';' behind; only exact names count.
func decodeNamed(name string) string {
	ref := "&" + name + ";"
	out := html.UnescapeString(ref)
	if out == ref || (out != ";" && strings.HasSuffix(out, ";")) {
		return unknownReference
	}
	return out
}
