package soup

import (
	"regexp"
	"slices"
	"strings"
)

// AttrOp is the comparison of a selector attribute clause.
type AttrOp uint8

const (
	OpExists   AttrOp = iota // [name]
	OpEquals                 // [name=value]
	OpContains               // [name*=value]
)

// AttrTest is the single attribute clause a Selector may carry.
type AttrTest struct {
	Name  string
	Op    AttrOp
	Value string
}

// Selector is one parsed compound selector: an optional type, id, class
// set and attribute clause. Absent clauses match anything.
type Selector struct {
	Tag     string
	ID      string
	Classes []string
	Attr    *AttrTest
}

var (
	selectorIDRe    = regexp.MustCompile(`^#([\p{L}\p{N}_-]+)`)
	selectorClassRe = regexp.MustCompile(`^\.([\p{L}\p{N}_-]+)`)
	selectorAttrRe  = regexp.MustCompile(`^\[([^=\]*]+)(?:(\*=|=)\s*("[^"]*"|'[^']*'|[^\]]+))?\]`)
	selectorTagRe   = regexp.MustCompile(`^[A-Za-z0-9_:-]+`)
)

// ParseSelector parses a single compound selector such as
// `div#main.item[data-id="3"]`. Parsing stops silently at the first
// character it does not understand and returns what it has so far. When
// several attribute clauses appear only the last one is kept.
func ParseSelector(text string) Selector {
	var sel Selector
	rest := strings.TrimSpace(text)
	for rest != "" {
		switch rest[0] {
		case '#':
			m := selectorIDRe.FindStringSubmatch(rest)
			if m == nil {
				return sel
			}
			sel.ID = m[1]
			rest = rest[len(m[0]):]
		case '.':
			m := selectorClassRe.FindStringSubmatch(rest)
			if m == nil {
				return sel
			}
			sel.Classes = append(sel.Classes, m[1])
			rest = rest[len(m[0]):]
		case '[':
			m := selectorAttrRe.FindStringSubmatch(rest)
			if m == nil {
				return sel
			}
			sel.Attr = parseAttrClause(m)
			rest = rest[len(m[0]):]
		default:
			m := selectorTagRe.FindString(rest)
			if m == "" {
				return sel
			}
			sel.Tag = m
			rest = rest[len(m):]
		}
	}
	return sel
}

func parseAttrClause(m []string) *AttrTest {
	test := &AttrTest{Name: strings.TrimSpace(m[1])}
	switch m[2] {
	case "=":
		test.Op = OpEquals
	case "*=":
		test.Op = OpContains
	default:
		return test
	}
	test.Value = strings.Trim(m[3], `"'`)
	return test
}

// ParseSelectorList splits a comma separated selector list into its
// compound selectors, dropping empty entries.
func ParseSelectorList(text string) []Selector {
	var out []Selector
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, ParseSelector(part))
	}
	return out
}

// Matches reports whether t satisfies every clause of s.
func (s Selector) Matches(t *Tag) bool {
	return t != nil && s.match(t.n)
}

func (s Selector) match(n *node) bool {
	if n.isRoot() {
		return false
	}
	if s.Tag != "" && !strings.EqualFold(n.name, s.Tag) {
		return false
	}
	if s.ID != "" {
		if id, ok := n.attr("id"); !ok || id != s.ID {
			return false
		}
	}
	if len(s.Classes) > 0 {
		class, _ := n.attr("class")
		tokens := strings.Fields(class)
		for _, want := range s.Classes {
			if !slices.Contains(tokens, want) {
				return false
			}
		}
	}
	if s.Attr != nil {
		return s.Attr.match(n)
	}
	return true
}

func (a *AttrTest) match(n *node) bool {
	val, ok := n.attr(a.Name)
	if !ok {
		return false
	}
	switch a.Op {
	case OpEquals:
		return val == a.Value
	case OpContains:
		return a.Value == "" || strings.Contains(val, a.Value)
	}
	return true
}
