package soup

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAttrNotFound is returned by Tag.Attr for an attribute the element does
// not carry. Callers that expect absence should use HasAttr or Get.
var ErrAttrNotFound = errors.New("attribute not found")

// Document owns a parsed tree. It is immutable once Parse returns, so any
// number of goroutines may query it concurrently.
type Document struct {
	scope
}

// Tag is a read-only view of one element of a Document. Tags are cheap;
// several may refer to the same element.
type Tag struct {
	scope
}

func newTag(n *node) *Tag {
	return &Tag{scope{n: n}}
}

// Name returns the lowercase tag name.
func (t *Tag) Name() string {
	return t.n.name
}

// Attrs returns a copy of the element's attributes.
func (t *Tag) Attrs() map[string]string {
	out := make(map[string]string, len(t.n.attrs))
	for _, a := range t.n.attrs {
		out[a.Key] = a.Val
	}
	return out
}

// HasAttr reports whether the element carries key, even with an empty value.
func (t *Tag) HasAttr(key string) bool {
	_, ok := t.n.attr(key)
	return ok
}

// Attr returns the value of key, or ErrAttrNotFound.
func (t *Tag) Attr(key string) (string, error) {
	val, ok := t.n.attr(key)
	if !ok {
		return "", fmt.Errorf("%w: %q on <%s>", ErrAttrNotFound, key, t.n.name)
	}
	return val, nil
}

// Get returns the value of key, or def when the attribute is absent.
func (t *Tag) Get(key, def string) string {
	if val, ok := t.n.attr(key); ok {
		return val
	}
	return def
}

// Sibling is what follows an element inside its parent: another element or
// a non-blank text run.
type Sibling struct {
	Tag  *Tag
	Text string
}

// IsTag reports whether the sibling is an element rather than text.
func (s Sibling) IsTag() bool {
	return s.Tag != nil
}

// GetText returns the element text, or the text run itself.
func (s Sibling) GetText(strip bool) string {
	if s.Tag != nil {
		return s.Tag.GetText(strip)
	}
	if strip {
		return strings.TrimSpace(s.Text)
	}
	return s.Text
}

// NextSibling returns the element or non-blank text run that follows t in
// its parent. Whitespace-only text runs are skipped.
func (t *Tag) NextSibling() (Sibling, bool) {
	parent := t.n.parent
	if parent == nil {
		return Sibling{}, false
	}
	i := t.n.index
	if i >= len(parent.children) || parent.children[i].elem != t.n {
		return Sibling{}, false
	}
	for _, c := range parent.children[i+1:] {
		switch c.kind {
		case elementChild:
			return Sibling{Tag: newTag(c.elem)}, true
		case textChild:
			if strings.TrimSpace(c.text) != "" {
				return Sibling{Text: c.text}, true
			}
		}
	}
	return Sibling{}, false
}

func (t *Tag) String() string {
	return fmt.Sprintf("<Tag name=%q>", t.n.name)
}
