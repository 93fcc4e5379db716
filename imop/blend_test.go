package imop

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlend_Basic(t *testing.T) {
	assert := assert.New(t)

	op := NewBlend()
	assert.Empty(op.Get())

	err := op.Set("blend_mode_not_supported")
	assert.Error(err)
	assert.Empty(op.Get())

	assert.NoError(op.Set(Darken))
	assert.Equal(Darken, op.Get())
	assert.NoError(op.Set(Lighten))
	assert.Equal(Lighten, op.Get())
	assert.NoError(op.Set(Normal))
	assert.Empty(op.Get())
}

func TestBlend_Modes(t *testing.T) {
	pinkFront := color.NRGBA{R: 214, G: 20, B: 65, A: 255}
	orangeBack := color.NRGBA{R: 250, G: 121, B: 17, A: 255}

	tests := map[string]color.NRGBA{
		Normal:     pinkFront,
		Darken:     {R: 214, G: 20, B: 17, A: 255},
		Lighten:    {R: 250, G: 121, B: 65, A: 255},
		Multiply:   {R: 210, G: 9, B: 4, A: 255},
		Screen:     {R: 254, G: 132, B: 78, A: 255},
		Difference: {R: 36, G: 101, B: 48, A: 255},
	}

	op := NewComposite()
	for mode, expected := range tests {
		t.Run(mode, func(t *testing.T) {
			blend := NewBlend()
			assert.NoError(t, blend.Set(mode))
			assert.Equal(t, expected, op.Mix(pinkFront, orangeBack, blend))
		})
	}
}

func TestBlend_TransparentBackdrop(t *testing.T) {
	// Over a transparent backdrop the blend mode has nothing to mix with.
	blend := NewBlend()
	assert.NoError(t, blend.Set(Multiply))

	src := color.NRGBA{R: 214, G: 20, B: 65, A: 255}
	got := NewComposite().Mix(src, color.NRGBA{}, blend)
	assert.Equal(t, src, got)
}
