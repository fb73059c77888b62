package soup

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// Parse builds a Document from arbitrary markup. It never fails: malformed
// input degrades to a best-effort tree the way a permissive browser parser
// would. Only tokenization is delegated to x/net/html; tree construction
// follows a single open-element cursor, so no implied html/head/body
// elements are added.
func Parse(markup string) *Document {
	root := &node{name: rootName}
	b := &treeBuilder{root: root, cur: root}

	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF is the only error a strings.Reader can produce.
			return &Document{scope{n: root}}
		case html.StartTagToken:
			b.startTag(z, true)
		case html.SelfClosingTagToken:
			b.startTag(z, false)
		case html.EndTagToken:
			name, _ := z.TagName()
			b.endTag(string(name))
		case html.TextToken:
			b.text(string(z.Raw()))
		case html.CommentToken:
			// Bogus comments (<?pi?>, <!foo>) are dropped like declarations.
			if bytes.HasPrefix(z.Raw(), []byte("<!--")) {
				b.cur.appendText("<!--" + string(z.Text()) + "-->")
			}
		}
	}
}

type treeBuilder struct {
	root *node
	cur  *node
}

func (b *treeBuilder) startTag(z *html.Tokenizer, open bool) {
	name, hasAttr := z.TagName()
	n := &node{name: string(name)}
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		n.setAttr(string(key), string(val))
	}
	b.cur.appendElement(n)
	// The tokenizer treats title, textarea, noscript, iframe and friends as
	// raw text too; only script and style keep their content unparsed.
	if !isRawText(n.name) {
		z.NextIsNotRawText()
	}
	if open && !isVoid(n.name) {
		b.cur = n
	}
}

// endTag closes the nearest open element with the given name. An end tag
// without a matching open element is ignored.
func (b *treeBuilder) endTag(name string) {
	for n := b.cur; !n.isRoot(); n = n.parent {
		if strings.EqualFold(n.name, name) {
			b.cur = n.parent
			return
		}
	}
}

func (b *treeBuilder) text(raw string) {
	if isRawText(b.cur.name) {
		b.cur.appendText(raw)
		return
	}
	b.cur.appendText(decodeReferences(raw))
}

func isRawText(name string) bool {
	return name == "script" || name == "style"
}
