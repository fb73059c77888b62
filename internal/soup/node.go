package soup

import "strings"

// rootName names the synthetic document root. The tokenizer only produces
// tag names starting with a letter, so no parsed element can carry it.
const rootName = "__root__"

type childKind uint8

const (
	elementChild childKind = iota
	textChild
)

// child is one entry of a node's child sequence: either an element or a raw
// text run. Exactly one of elem/text is meaningful, selected by kind.
type child struct {
	kind childKind
	elem *node
	text string
}

// Attribute is a single name/value pair as it appeared in the markup.
type Attribute struct {
	Key string
	Val string
}

type node struct {
	name     string
	attrs    []Attribute
	children []child

	// parent is a lookup-only back reference; children are owned by the
	// parent's child sequence. index is this node's position in it.
	parent *node
	index  int
}

func (n *node) isRoot() bool {
	return n.parent == nil
}

func (n *node) appendElement(c *node) {
	c.parent = n
	c.index = len(n.children)
	n.children = append(n.children, child{kind: elementChild, elem: c})
}

func (n *node) appendText(s string) {
	if s == "" {
		return
	}
	n.children = append(n.children, child{kind: textChild, text: s})
}

// setAttr keeps the first position of a repeated attribute and its last value.
func (n *node) setAttr(key, val string) {
	for i := range n.attrs {
		if n.attrs[i].Key == key {
			n.attrs[i].Val = val
			return
		}
	}
	n.attrs = append(n.attrs, Attribute{Key: key, Val: val})
}

func (n *node) attr(key string) (string, bool) {
	for _, a := range n.attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// walk visits every element below n in document order. It stops early and
// returns false once fn returns false.
func (n *node) walk(fn func(*node) bool) bool {
	for _, c := range n.children {
		if c.kind != elementChild {
			continue
		}
		if !fn(c.elem) || !c.elem.walk(fn) {
			return false
		}
	}
	return true
}

func (n *node) descendants() []*node {
	var out []*node
	n.walk(func(d *node) bool {
		out = append(out, d)
		return true
	})
	return out
}

func (n *node) writeText(sb *strings.Builder) {
	for _, c := range n.children {
		switch c.kind {
		case elementChild:
			c.elem.writeText(sb)
		case textChild:
			sb.WriteString(c.text)
		}
	}
}

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func (n *node) render(sb *strings.Builder) {
	sb.WriteByte('<')
	sb.WriteString(n.name)
	for _, a := range n.attrs {
		sb.WriteByte(' ')
		sb.WriteString(a.Key)
		sb.WriteString(`="`)
		attrEscaper.WriteString(sb, a.Val)
		sb.WriteByte('"')
	}
	sb.WriteByte('>')
	if isVoid(n.name) {
		return
	}
	n.renderContents(sb)
	sb.WriteString("</")
	sb.WriteString(n.name)
	sb.WriteByte('>')
}

func (n *node) renderContents(sb *strings.Builder) {
	for _, c := range n.children {
		switch c.kind {
		case elementChild:
			c.elem.render(sb)
		case textChild:
			sb.WriteString(c.text)
		}
	}
}

// isVoid reports whether name is an element that never has content or a
// closing tag.
func isVoid(name string) bool {
	switch strings.ToLower(name) {
	case "area", "base", "br", "col", "embed", "hr", "img", "input",
		"link", "meta", "param", "source", "track", "wbr":
		return true
	}
	return false
}
