package spotlight

import (
	"fmt"
	"regexp"
	"strings"
)

type selectorType int

const (
	selectDocument selectorType = iota
	selectAll
	selectID
	selectClass
	selectKind
)

// simpleSelector is one comma separated term of a selector list.
type simpleSelector struct {
	typ  selectorType
	name string
}

var selectorName = regexp.MustCompile(`^[A-Za-z_][-A-Za-z0-9_]*$`)

// parseSelector splits a selector list such as "#intro, .step, button" into
// its simple selectors. Only the subset needed to address page regions is
// supported: "document", "*", "#id", ".class" and bare kind names.
func parseSelector(sel string) ([]simpleSelector, error) {
	if strings.TrimSpace(sel) == "" {
		return nil, fmt.Errorf("%w: empty selector", ErrUnsupportedSelector)
	}

	var out []simpleSelector
	for _, term := range strings.Split(sel, ",") {
		term = strings.TrimSpace(term)

		var s simpleSelector
		switch {
		case term == "document":
			s = simpleSelector{typ: selectDocument}
		case term == "*":
			s = simpleSelector{typ: selectAll}
		case strings.HasPrefix(term, "#"):
			s = simpleSelector{typ: selectID, name: term[1:]}
		case strings.HasPrefix(term, "."):
			s = simpleSelector{typ: selectClass, name: term[1:]}
		default:
			s = simpleSelector{typ: selectKind, name: term}
		}

		if s.typ != selectDocument && s.typ != selectAll && !selectorName.MatchString(s.name) {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedSelector, term)
		}
		out = append(out, s)
	}
	return out, nil
}

// matches reports whether an element with the given id, kind and classes is
// selected by s. The document term never matches an element.
func (s simpleSelector) matches(id, kind string, classes []string) bool {
	switch s.typ {
	case selectAll:
		return true
	case selectID:
		return id != "" && id == s.name
	case selectKind:
		return kind != "" && kind == s.name
	case selectClass:
		for _, c := range classes {
			if c == s.name {
				return true
			}
		}
	}
	return false
}

func matchesAny(sels []simpleSelector, id, kind string, classes []string) bool {
	for _, s := range sels {
		if s.matches(id, kind, classes) {
			return true
		}
	}
	return false
}

func hasDocument(sels []simpleSelector) bool {
	for _, s := range sels {
		if s.typ == selectDocument {
			return true
		}
	}
	return false
}
