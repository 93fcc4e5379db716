package spotlight

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/esimov/spotlight/imop"
	"github.com/esimov/spotlight/rectset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

func whiteImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{white}, image.Point{}, draw.Src)
	return img
}

func TestRender_Fill(t *testing.T) {
	assert := assert.New(t)

	img := whiteImage(10, 10)
	mask := NewMask(rectset.NewRect(0, 0, 10, 10), rectset.NewRect(2, 3, 4, 5))

	r := NewRenderer()
	r.Opacity = 1
	out, err := r.Render(img, mask.Panels)
	require.NoError(t, err)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			inHole := mask.Holes[0].Contains(float64(x)+0.5, float64(y)+0.5)
			if inHole {
				assert.Equal(white, out.NRGBAAt(x, y), "hole pixel (%d, %d)", x, y)
			} else {
				assert.Equal(color.NRGBA{A: 255}, out.NRGBAAt(x, y), "panel pixel (%d, %d)", x, y)
			}
		}
	}
	// The source image is left untouched.
	assert.Equal(white, img.NRGBAAt(0, 0))
}

func TestRender_Opacity(t *testing.T) {
	img := whiteImage(4, 4)
	panels := []rectset.Rect{rectset.NewRect(0, 0, 4, 2)}

	r := NewRenderer()
	r.Opacity = 0.5
	out, err := r.Render(img, panels)
	require.NoError(t, err)

	c := out.NRGBAAt(0, 0)
	assert.InDelta(t, 127, int(c.R), 1)
	assert.Equal(t, uint8(255), c.A)
	assert.Equal(t, white, out.NRGBAAt(0, 3))

	r.Opacity = 0
	out, err = r.Render(img, panels)
	require.NoError(t, err)
	assert.Equal(t, img.Pix, out.Pix)
}

func TestRender_BlendMode(t *testing.T) {
	img := whiteImage(2, 2)
	img.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 255})

	r := NewRenderer()
	r.Opacity = 1
	r.Color = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	r.Blend = imop.NewBlend()
	require.NoError(t, r.Blend.Set(imop.Multiply))

	// Multiplying by white keeps the backdrop.
	out, err := r.Render(img, []rectset.Rect{rectset.NewRect(0, 0, 2, 2)})
	require.NoError(t, err)
	assert.Equal(t, img.Pix, out.Pix)
}

func TestRender_Blur(t *testing.T) {
	img := whiteImage(20, 20)
	for x := 0; x < 20; x += 2 {
		for y := 0; y < 20; y++ {
			img.SetNRGBA(x, y, color.NRGBA{A: 255})
		}
	}
	mask := NewMask(rectset.NewRect(0, 0, 20, 20), rectset.NewRect(5, 5, 10, 10))

	r := NewRenderer()
	r.Style = StyleBlur
	r.Opacity = 0
	r.BlurRadius = 2
	out, err := r.Render(img, mask.Panels)
	require.NoError(t, err)

	// Hole pixels are never modified, panel pixels are smoothed.
	for y := 5; y < 15; y++ {
		for x := 5; x < 15; x++ {
			assert.Equal(t, img.NRGBAAt(x, y), out.NRGBAAt(x, y))
		}
	}
	assert.NotEqual(t, img.NRGBAAt(0, 10), out.NRGBAAt(0, 10))
}

func TestRender_UnsupportedStyle(t *testing.T) {
	r := NewRenderer()
	r.Style = "sepia"
	_, err := r.Render(whiteImage(2, 2), []rectset.Rect{rectset.NewRect(0, 0, 1, 1)})
	assert.Error(t, err)
}

func TestRender_PanelsOutsideImage(t *testing.T) {
	img := whiteImage(4, 4)
	out, err := NewRenderer().Render(img, []rectset.Rect{rectset.NewRect(10, 10, 5, 5)})
	require.NoError(t, err)
	assert.Equal(t, img.Pix, out.Pix)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	masks := []Mask{NewMask(rectset.NewRect(0, 0, 100, 100), rectset.NewRect(40, 40, 20, 20))}
	require.NoError(t, WriteJSON(&buf, masks))

	var decoded []Mask
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, masks, decoded)

	buf.Reset()
	require.NoError(t, WriteJSON(&buf, nil))
	assert.JSONEq(t, `[]`, buf.String())
}
