package spotlight

import (
	"errors"
	"fmt"

	"github.com/esimov/spotlight/rectset"
)

var (
	// ErrNoContainer is returned when the container selector matches nothing.
	ErrNoContainer = errors.New("container selector matched no element")
	// ErrUnsupportedSelector is returned for selectors outside the supported subset.
	ErrUnsupportedSelector = errors.New("unsupported selector")
)

// DocumentRef is the reference of the document itself.
const DocumentRef = 0

// Match is a measured element: its rectangle and a reference identifying the
// element within the measurer that produced it. Two elements laid over the
// same rectangle still have different references.
type Match struct {
	rectset.Rect
	Ref int
}

// Measurer resolves selectors to rectangles in a single shared coordinate
// space, for example page coordinates. Implementations must not mix
// coordinate spaces: the mask is only correct when the container and the
// holes are measured the same way.
type Measurer interface {
	// Measure returns every element matched by selector, in document order.
	Measure(selector string) ([]Match, error)
	// MeasureWithin returns the rectangles of the elements matched by
	// selector that belong to container, a match returned by Measure.
	MeasureWithin(container Match, selector string) ([]rectset.Rect, error)
}

// Mask is the result of masking one container: the panels cover the
// container except for the holes.
type Mask struct {
	Container rectset.Rect   `json:"container"`
	Holes     []rectset.Rect `json:"holes"`
	Panels    []rectset.Rect `json:"panels"`
}

// NewMask subtracts the holes from the container.
func NewMask(container rectset.Rect, holes ...rectset.Rect) Mask {
	if holes == nil {
		holes = []rectset.Rect{}
	}
	return Mask{
		Container: container,
		Holes:     holes,
		Panels:    rectset.SubtractAll(container, holes...),
	}
}

// ComputeMask measures every container matched by the container selector
// and masks it, leaving visible the elements matched by the hole selectors
// inside that container. One Mask is returned per matched container.
//
// Hole selectors that match nothing are not an error: the container is then
// covered by a single panel.
func ComputeMask(m Measurer, container string, holes ...string) ([]Mask, error) {
	containers, err := m.Measure(container)
	if err != nil {
		return nil, fmt.Errorf("measure container %q: %w", container, err)
	}
	if len(containers) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoContainer, container)
	}

	masks := make([]Mask, 0, len(containers))
	for _, c := range containers {
		var hs []rectset.Rect
		for _, sel := range holes {
			rects, err := m.MeasureWithin(c, sel)
			if err != nil {
				return nil, fmt.Errorf("measure hole %q: %w", sel, err)
			}
			hs = append(hs, rects...)
		}
		masks = append(masks, NewMask(c.Rect, hs...))
	}
	return masks, nil
}

// Panels flattens the panels of all masks into one list.
func Panels(masks []Mask) []rectset.Rect {
	var out []rectset.Rect
	for _, m := range masks {
		out = append(out, m.Panels...)
	}
	return out
}
