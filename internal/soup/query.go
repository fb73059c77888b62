package soup

import (
	"slices"
	"strings"
)

// NameFilter restricts FindAll/Find by element. A nil NameFilter matches
// every element.
type NameFilter interface {
	matchName(t *Tag) bool
}

// ByName matches elements whose tag name equals the value, ignoring case.
type ByName string

func (b ByName) matchName(t *Tag) bool {
	return strings.EqualFold(t.n.name, string(b))
}

// ByFunc matches elements for which the predicate returns true. A panicking
// predicate counts as a non-match.
type ByFunc func(t *Tag) bool

func (f ByFunc) matchName(t *Tag) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return f(t)
}

// AttrFilter tests one attribute value.
type AttrFilter interface {
	matchAttr(value string, present bool) bool
}

// AttrEquals requires the attribute to be present with exactly this value.
type AttrEquals string

func (v AttrEquals) matchAttr(value string, present bool) bool {
	return present && value == string(v)
}

// AttrFunc receives the attribute value and whether the attribute exists at
// all. A panicking predicate counts as a non-match.
type AttrFunc func(value string, present bool) bool

func (f AttrFunc) matchAttr(value string, present bool) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return f(value, present)
}

// AttrContains matches a present attribute whose value contains sub, like
// the [name*=value] selector clause. An empty sub matches any present
// attribute.
func AttrContains(sub string) AttrFunc {
	return func(value string, present bool) bool {
		return present && strings.Contains(value, sub)
	}
}

// HasClass matches a class attribute listing token among its
// whitespace-separated entries.
func HasClass(token string) AttrFunc {
	return func(value string, _ bool) bool {
		return slices.Contains(strings.Fields(value), token)
	}
}

// Attrs maps attribute names to the filter their value must pass. Every
// entry must match.
type Attrs map[string]AttrFilter

// scope carries the query operations shared by Document and Tag. It always
// searches the descendants of n, never n itself.
type scope struct {
	n *node
}

// FindAll returns every descendant element, in document order, that passes
// both filters.
func (s scope) FindAll(name NameFilter, attrs Attrs) []*Tag {
	var out []*Tag
	s.n.walk(func(n *node) bool {
		if t := newTag(n); matchFilters(t, name, attrs) {
			out = append(out, t)
		}
		return true
	})
	return out
}

// Find returns the first element FindAll would return.
func (s scope) Find(name NameFilter, attrs Attrs) (*Tag, bool) {
	var found *Tag
	s.n.walk(func(n *node) bool {
		if t := newTag(n); matchFilters(t, name, attrs) {
			found = t
			return false
		}
		return true
	})
	return found, found != nil
}

func matchFilters(t *Tag, name NameFilter, attrs Attrs) bool {
	if name != nil && !name.matchName(t) {
		return false
	}
	for key, filter := range attrs {
		value, present := t.n.attr(key)
		if !filter.matchAttr(value, present) {
			return false
		}
	}
	return true
}

// Select evaluates a comma separated selector list. Matches of the first
// selector come first in document order, followed by elements only matched
// by later selectors; an element is never returned twice.
func (s scope) Select(list string) []*Tag {
	selectors := ParseSelectorList(list)
	if len(selectors) == 0 {
		return nil
	}
	nodes := s.n.descendants()
	seen := make(map[*node]struct{})
	var out []*Tag
	for _, sel := range selectors {
		for _, n := range nodes {
			if _, ok := seen[n]; ok {
				continue
			}
			if sel.match(n) {
				seen[n] = struct{}{}
				out = append(out, newTag(n))
			}
		}
	}
	return out
}

// SelectOne returns the first element Select would return.
func (s scope) SelectOne(list string) (*Tag, bool) {
	matches := s.Select(list)
	if len(matches) == 0 {
		return nil, false
	}
	return matches[0], true
}

// GetText concatenates every descendant text run. With strip set, leading
// and trailing whitespace is removed; inner whitespace is left alone.
func (s scope) GetText(strip bool) string {
	var sb strings.Builder
	s.n.writeText(&sb)
	if strip {
		return strings.TrimSpace(sb.String())
	}
	return sb.String()
}

// DecodeContents serializes the children back to markup, without the
// element's own tags.
func (s scope) DecodeContents() string {
	var sb strings.Builder
	s.n.renderContents(&sb)
	return sb.String()
}
