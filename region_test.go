package spotlight

import (
	"image"
	"testing"

	"github.com/esimov/spotlight/rectset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegionMeasurer(t *testing.T) {
	m := NewRegionMeasurer(image.Rect(0, 0, 200, 100),
		Region{ID: "face-1", Kind: FaceKind, Rect: rectset.NewRect(10, 10, 30, 30)},
		Region{ID: "face-2", Kind: FaceKind, Rect: rectset.NewRect(50, 150, 30, 30)},
		Region{ID: "logo", Kind: "logo", Rect: rectset.NewRect(300, 300, 10, 10)},
	)

	doc := rectset.NewRect(0, 0, 200, 100)
	for _, sel := range []string{"document", "image"} {
		got, err := m.Measure(sel)
		assert.NoError(t, err)
		assert.Equal(t, []Match{{Rect: doc, Ref: DocumentRef}}, got)
	}

	faces, err := m.Measure(FaceKind)
	assert.NoError(t, err)
	assert.Len(t, faces, 2)

	face2, err := m.Measure("#face-2")
	assert.NoError(t, err)
	assert.Equal(t, []Match{{Rect: rectset.NewRect(50, 150, 30, 30), Ref: 2}}, face2)

	// The logo lies outside the image and does not belong to it.
	got, err := m.MeasureWithin(Match{Rect: doc}, "face, logo")
	assert.NoError(t, err)
	assert.Len(t, got, 2)

	// A region measured as container is not its own hole.
	got, err = m.MeasureWithin(faces[0], "face")
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestRegionMeasurer_SameRect(t *testing.T) {
	r := rectset.NewRect(10, 10, 30, 30)
	m := NewRegionMeasurer(image.Rect(0, 0, 100, 100),
		Region{ID: "face-1", Kind: FaceKind, Rect: r},
		Region{ID: "face-2", Kind: FaceKind, Rect: r},
	)

	masks, err := ComputeMask(m, "#face-1", FaceKind)
	require.NoError(t, err)
	require.Len(t, masks, 1)
	assert.Equal(t, []rectset.Rect{r}, masks[0].Holes)
	assert.Empty(t, masks[0].Panels)
}

func TestRegionMeasurer_ComputeMask(t *testing.T) {
	m := NewRegionMeasurer(image.Rect(0, 0, 100, 100),
		Region{ID: "face-1", Kind: FaceKind, Rect: rectset.NewRect(40, 40, 20, 20)},
	)

	masks, err := ComputeMask(m, "image", FaceKind)
	require.NoError(t, err)
	require.Len(t, masks, 1)
	assert.Len(t, masks[0].Panels, 4)
	assert.Equal(t, 9600.0, rectset.TotalArea(masks[0].Panels))
}
