package spotlight

import (
	"os"
	"path/filepath"
	"testing"

	pigo "github.com/esimov/pigo/core"
	"github.com/esimov/spotlight/rectset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFace_DetectSample(t *testing.T) {
	fd, err := LoadFaceDetector(filepath.Join("testdata", "facefinder"))
	require.NoError(t, err)

	f, err := os.Open(filepath.Join("testdata", "sample.jpg"))
	require.NoError(t, err)
	defer f.Close()

	img, err := decodeImg(f)
	require.NoError(t, err)

	dets := fd.Detect(img)
	require.NotEmpty(t, dets)

	// Every clustered detection scores above zero, so none is dropped.
	fd.MinQuality = 0
	m := NewFaceMeasurer(fd, img, 0)

	faces, err := m.Measure(FaceKind)
	require.NoError(t, err)
	assert.Len(t, faces, len(dets))

	masks, err := ComputeMask(m, "image", FaceKind)
	require.NoError(t, err)
	require.Len(t, masks, 1)

	bounds := rectset.FromPixels(img.Bounds())
	assert.Equal(t, bounds, masks[0].Container)
	assert.Len(t, masks[0].Holes, len(dets))
	for _, h := range masks[0].Holes {
		assert.True(t, rectset.Overlaps(bounds, h))
		for _, p := range masks[0].Panels {
			assert.False(t, rectset.Overlaps(p, h))
		}
	}
	assert.Less(t, rectset.TotalArea(masks[0].Panels), bounds.Area())
}

func TestFace_Regions(t *testing.T) {
	dets := []pigo.Detection{
		{Row: 50, Col: 100, Scale: 40, Q: 12.5},
		{Row: 10, Col: 10, Scale: 20, Q: 2.0},
		{Row: 80, Col: 30, Scale: 10, Q: 7.0},
	}

	regions := faceRegions(dets, 5.0, 0)
	assert.Equal(t, []Region{
		{ID: "face-1", Kind: FaceKind, Rect: rectset.NewRect(30, 80, 40, 40)},
		{ID: "face-2", Kind: FaceKind, Rect: rectset.NewRect(75, 25, 10, 10)},
	}, regions)

	padded := faceRegions(dets[:1], 5.0, 4)
	assert.Equal(t, rectset.NewRect(26, 76, 48, 48), padded[0].Rect)

	assert.Empty(t, faceRegions(dets, 20, 0))
	assert.Empty(t, faceRegions(nil, 0, 0))
}

func TestFace_LoadMissingCascade(t *testing.T) {
	_, err := LoadFaceDetector(filepath.Join(t.TempDir(), "facefinder"))
	assert.Error(t, err)
}
