package spotlight

import (
	"image"

	"github.com/esimov/spotlight/rectset"
)

// Region is a named rectangle of a flat region set.
type Region struct {
	ID   string
	Kind string
	rectset.Rect
}

// RegionMeasurer measures a flat set of regions laid over a document, for
// example the bounds of an image and the faces detected in it. The document
// itself answers to the "document" and "image" selectors.
type RegionMeasurer struct {
	Document rectset.Rect
	Regions  []Region
}

// NewRegionMeasurer returns a measurer over an image with the given bounds.
func NewRegionMeasurer(bounds image.Rectangle, regions ...Region) *RegionMeasurer {
	return &RegionMeasurer{
		Document: rectset.FromPixels(bounds),
		Regions:  regions,
	}
}

// Measure implements Measurer. Regions are referenced by their position in
// Regions, starting from 1.
func (m *RegionMeasurer) Measure(selector string) ([]Match, error) {
	sels, err := parseSelector(selector)
	if err != nil {
		return nil, err
	}

	var out []Match
	if hasDocument(sels) || matchesAny(sels, "", "image", nil) {
		out = append(out, Match{Rect: m.Document, Ref: DocumentRef})
	}
	for i, r := range m.Regions {
		if matchesAny(sels, r.ID, r.Kind, nil) {
			out = append(out, Match{Rect: r.Rect, Ref: i + 1})
		}
	}
	return out, nil
}

// MeasureWithin implements Measurer. Regions have no hierarchy, so every
// matching region overlapping the container belongs to it, except the
// region the container was measured from.
func (m *RegionMeasurer) MeasureWithin(container Match, selector string) ([]rectset.Rect, error) {
	sels, err := parseSelector(selector)
	if err != nil {
		return nil, err
	}

	var out []rectset.Rect
	for i, r := range m.Regions {
		if i+1 == container.Ref || !rectset.Overlaps(container.Rect, r.Rect) {
			continue
		}
		if matchesAny(sels, r.ID, r.Kind, nil) {
			out = append(out, r.Rect)
		}
	}
	return out, nil
}
