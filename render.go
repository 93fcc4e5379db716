package spotlight

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/disintegration/imaging"
	"github.com/esimov/spotlight/imop"
	"github.com/esimov/spotlight/rectset"
	"github.com/esimov/spotlight/utils"
)

// The panel styles supported by the Renderer.
const (
	StyleFill = "fill"
	StyleBlur = "blur"
)

// Renderer paints the mask panels onto an image. Pixels outside the panels,
// the holes among them, are never modified.
type Renderer struct {
	// Style is either StyleFill or StyleBlur.
	Style string
	// Color is the panel color; its alpha is multiplied by Opacity.
	Color   color.NRGBA
	Opacity float64
	// BlurRadius is the gaussian sigma of the blur style.
	BlurRadius float64

	Composite *imop.Composite
	Blend     *imop.Blend
}

// NewRenderer returns a renderer dimming the panels with a translucent black.
func NewRenderer() *Renderer {
	return &Renderer{
		Style:      StyleFill,
		Color:      color.NRGBA{A: 0xff},
		Opacity:    0.7,
		BlurRadius: 8,
		Composite:  imop.NewComposite(),
	}
}

// Render returns a copy of img with the panels painted over it. Panels are
// given in image coordinates.
func (r *Renderer) Render(img *image.NRGBA, panels []rectset.Rect) (*image.NRGBA, error) {
	dst := imaging.Clone(img)

	rects := make([]image.Rectangle, 0, len(panels))
	for _, p := range panels {
		if pr := p.Pixels().Intersect(dst.Bounds()); !pr.Empty() {
			rects = append(rects, pr)
		}
	}
	if len(rects) == 0 {
		return dst, nil
	}

	op := r.Composite
	if op == nil {
		op = imop.NewComposite()
	}

	switch r.Style {
	case "", StyleFill:
	case StyleBlur:
		blurred := imaging.Blur(img, r.BlurRadius)
		cp := imop.NewComposite()
		if err := cp.Set(imop.Copy); err != nil {
			return nil, err
		}
		cp.DrawImage(dst, blurred, rects, nil)
	default:
		return nil, fmt.Errorf("unsupported panel style: %q", r.Style)
	}

	col := r.Color
	col.A = uint8(float64(col.A)*utils.Clamp(r.Opacity, 0, 1) + 0.5)
	if col.A > 0 {
		op.Draw(dst, rects, col, r.Blend)
	}
	return dst, nil
}

// WriteJSON encodes the masks as an indented JSON list of
// {container, holes, panels} objects.
func WriteJSON(w io.Writer, masks []Mask) error {
	if masks == nil {
		masks = []Mask{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(masks)
}
