package spotlight

import (
	"bytes"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/esimov/spotlight/rectset"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Layout is a declarative description of a measured page: its size and a
// tree of positioned elements. It implements Measurer, so a layout captured
// from a browser (or written by hand) can be masked without a rendering
// engine. JSON documents are accepted as well, since JSON is valid YAML.
type Layout struct {
	Version  int       `yaml:"version" json:"version"`
	Page     Page      `yaml:"page" json:"page"`
	Elements []Element `yaml:"elements" json:"elements"`
}

// Page holds the document size. When it is left empty the document extends
// over the bounding box of all elements.
type Page struct {
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

// Element is a positioned page element. Its rectangle is expressed in page
// coordinates, never relative to its parent.
type Element struct {
	ID           string `yaml:"id,omitempty" json:"id,omitempty"`
	Kind         string `yaml:"kind,omitempty" json:"kind,omitempty"`
	Class        string `yaml:"class,omitempty" json:"class,omitempty"`
	rectset.Rect `yaml:",inline"`
	Children     []Element `yaml:"children,omitempty" json:"children,omitempty"`
}

// Classes returns the space separated class names of the element.
func (e Element) Classes() []string {
	return strings.Fields(e.Class)
}

// LoadLayout reads and validates a layout document.
func LoadLayout(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read layout file %q", path)
	}
	return ParseLayout(data, path)
}

// ParseLayout decodes and validates a layout document. Source is only used
// in error messages.
func ParseLayout(data []byte, source string) (*Layout, error) {
	var l Layout

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&l); err != nil {
		return nil, errors.Wrapf(err, "parse layout in %q", source)
	}

	if errs := l.Validate(); len(errs) > 0 {
		return nil, errors.Errorf("invalid layout in %q: %s", source, strings.Join(errs, "; "))
	}
	return &l, nil
}

// Validate returns every problem found in the layout.
func (l *Layout) Validate() []string {
	var errs []string

	if l.Version != 1 {
		errs = append(errs, fmt.Sprintf("unsupported layout version %d", l.Version))
	}
	if l.Page.Width < 0 || l.Page.Height < 0 {
		errs = append(errs, "page size must not be negative")
	}
	if !rectset.NewRect(0, 0, l.Page.Width, l.Page.Height).IsFinite() {
		errs = append(errs, "page size must be finite")
	}

	ids := map[string]struct{}{}
	var walk func(path string, els []Element)
	walk = func(path string, els []Element) {
		for i, el := range els {
			p := fmt.Sprintf("%s[%d]", path, i)
			if el.ID != "" {
				if !selectorName.MatchString(el.ID) {
					errs = append(errs, fmt.Sprintf("%s.id %q is not a valid name", p, el.ID))
				}
				if _, ok := ids[el.ID]; ok {
					errs = append(errs, fmt.Sprintf("%s.id duplicate %q", p, el.ID))
				}
				ids[el.ID] = struct{}{}
			}
			if el.Kind != "" && !selectorName.MatchString(el.Kind) {
				errs = append(errs, fmt.Sprintf("%s.kind %q is not a valid name", p, el.Kind))
			}
			for _, c := range el.Classes() {
				if !selectorName.MatchString(c) {
					errs = append(errs, fmt.Sprintf("%s.class %q is not a valid name", p, c))
				}
			}
			if !el.Rect.IsFinite() {
				errs = append(errs, fmt.Sprintf("%s has non-finite geometry", p))
			}
			if el.Width < 0 || el.Height < 0 {
				errs = append(errs, fmt.Sprintf("%s has negative size", p))
			}
			walk(p+".children", el.Children)
		}
	}
	walk("elements", l.Elements)

	return errs
}

// Document returns the rectangle of the whole document. Like a browser
// document it sits at the origin.
func (l *Layout) Document() rectset.Rect {
	if l.Page.Width > 0 && l.Page.Height > 0 {
		return rectset.NewRect(0, 0, l.Page.Width, l.Page.Height)
	}

	var right, bottom float64
	l.walk(func(_ int, el *Element, _ []int) {
		right = max(right, el.Right())
		bottom = max(bottom, el.Bottom())
	})
	return rectset.NewRect(0, 0, right, bottom)
}

// Measure implements Measurer. Elements are referenced by their position in
// document order, starting from 1.
func (l *Layout) Measure(selector string) ([]Match, error) {
	sels, err := parseSelector(selector)
	if err != nil {
		return nil, err
	}

	var out []Match
	if hasDocument(sels) {
		out = append(out, Match{Rect: l.Document(), Ref: DocumentRef})
	}
	l.walk(func(ref int, el *Element, _ []int) {
		if matchesAny(sels, el.ID, el.Kind, el.Classes()) {
			out = append(out, Match{Rect: el.Rect, Ref: ref})
		}
	})
	return out, nil
}

// MeasureWithin implements Measurer. Matches are restricted to descendants
// of the container element. The document contains every element.
func (l *Layout) MeasureWithin(container Match, selector string) ([]rectset.Rect, error) {
	sels, err := parseSelector(selector)
	if err != nil {
		return nil, err
	}

	var out []rectset.Rect
	l.walk(func(_ int, el *Element, ancestors []int) {
		if !matchesAny(sels, el.ID, el.Kind, el.Classes()) {
			return
		}
		if container.Ref == DocumentRef || slices.Contains(ancestors, container.Ref) {
			out = append(out, el.Rect)
		}
	})
	return out, nil
}

// walk visits every element in document order together with the references
// of its ancestors, outermost first.
func (l *Layout) walk(fn func(ref int, el *Element, ancestors []int)) {
	var ref int
	var visit func(els []Element, ancestors []int)
	visit = func(els []Element, ancestors []int) {
		for i := range els {
			ref++
			el, self := &els[i], ref
			fn(self, el, ancestors)
			visit(el.Children, append(ancestors[:len(ancestors):len(ancestors)], self))
		}
	}
	visit(l.Elements, nil)
}
