package imop

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/esimov/spotlight/utils"
)

// The Porter-Duff operators.
const (
	Copy    = "copy"
	SrcOver = "src_over"
	DstOver = "dst_over"
	SrcIn   = "src_in"
	DstIn   = "dst_in"
	SrcOut  = "src_out"
	DstOut  = "dst_out"
	SrcAtop = "src_atop"
	DstAtop = "dst_atop"
	Xor     = "xor"
)

// Operators lists the supported composite operators.
var Operators = []string{Copy, SrcOver, DstOver, SrcIn, DstIn, SrcOut, DstOut, SrcAtop, DstAtop, Xor}

// Composite holds the currently active composite operator.
type Composite struct {
	current string
}

// NewComposite returns a composite set to source-over.
func NewComposite() *Composite {
	return &Composite{current: SrcOver}
}

// Set activates one of the supported composite operators.
func (op *Composite) Set(cop string) error {
	if !utils.Contains(Operators, cop) {
		return fmt.Errorf("unsupported composite operator: %q", cop)
	}
	op.current = cop
	return nil
}

// Get returns the currently active composite operator.
func (op *Composite) Get() string {
	return op.current
}

// factors returns the Porter-Duff fractions of source and backdrop kept by
// the operator, given the source and backdrop alphas.
func (op *Composite) factors(as, ab float64) (fa, fb float64) {
	switch op.current {
	case Copy:
		return 1, 0
	case DstOver:
		return 1 - ab, 1
	case SrcIn:
		return ab, 0
	case DstIn:
		return 0, as
	case SrcOut:
		return 1 - ab, 0
	case DstOut:
		return 0, 1 - as
	case SrcAtop:
		return ab, 1 - as
	case DstAtop:
		return 1 - ab, as
	case Xor:
		return 1 - ab, 1 - as
	default:
		return 1, 1 - as
	}
}

// Mix composites the source color over the backdrop color. The blend mode,
// when not nil, is applied to the source before compositing. Both colors and
// the result use non-premultiplied alpha.
func (op *Composite) Mix(src, dst color.NRGBA, blend *Blend) color.NRGBA {
	as := float64(src.A) / 255
	ab := float64(dst.A) / 255
	fa, fb := op.factors(as, ab)

	ao := fa*as + fb*ab
	if ao <= 0 {
		return color.NRGBA{}
	}

	channel := func(cs, cb uint8) uint8 {
		csn := float64(cs) / 255
		cbn := float64(cb) / 255
		if blend != nil {
			csn = (1-ab)*csn + ab*blend.apply(cbn, csn)
		}
		co := (fa*as*csn + fb*ab*cbn) / ao
		return uint8(math.Round(utils.Clamp(co, 0, 1) * 255))
	}

	return color.NRGBA{
		R: channel(src.R, dst.R),
		G: channel(src.G, dst.G),
		B: channel(src.B, dst.B),
		A: uint8(math.Round(utils.Clamp(ao, 0, 1) * 255)),
	}
}

// Draw composites the uniform source color onto dst inside every rectangle.
// Pixels outside the rectangles are left untouched.
func (op *Composite) Draw(dst *image.NRGBA, rects []image.Rectangle, src color.NRGBA, blend *Blend) {
	for _, r := range rects {
		r = r.Intersect(dst.Bounds())
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				i := dst.PixOffset(x, y)
				pix := dst.Pix[i : i+4 : i+4]
				c := op.Mix(src, color.NRGBA{R: pix[0], G: pix[1], B: pix[2], A: pix[3]}, blend)
				pix[0], pix[1], pix[2], pix[3] = c.R, c.G, c.B, c.A
			}
		}
	}
}

// DrawImage composites src onto dst inside every rectangle, pixel by pixel.
// Both images share the same coordinate space.
func (op *Composite) DrawImage(dst, src *image.NRGBA, rects []image.Rectangle, blend *Blend) {
	for _, r := range rects {
		r = r.Intersect(dst.Bounds()).Intersect(src.Bounds())
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				i := dst.PixOffset(x, y)
				pix := dst.Pix[i : i+4 : i+4]
				c := op.Mix(src.NRGBAAt(x, y), color.NRGBA{R: pix[0], G: pix[1], B: pix[2], A: pix[3]}, blend)
				pix[0], pix[1], pix[2], pix[3] = c.R, c.G, c.B, c.A
			}
		}
	}
}
