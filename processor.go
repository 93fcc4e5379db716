package spotlight

import (
	"fmt"
	"image"
	"io"
	"sync"

	"github.com/esimov/spotlight/imop"
	"github.com/esimov/spotlight/rectset"
	"github.com/esimov/spotlight/utils"
)

// DefaultContainer is the container selector used when none is given.
const DefaultContainer = "document"

// Processor options
type Processor struct {
	// Container selects the elements to mask; Holes the elements left
	// visible inside them.
	Container string
	Holes     []string

	// Layout, when set, measures the selectors. Its page is stretched over
	// the processed image.
	Layout *Layout

	// FaceDetect measures the faces of the image with the cascade
	// classifier found at the Classifier path. Without explicit hole
	// selectors the faces become the holes.
	FaceDetect bool
	Classifier string
	FaceAngle  float64
	MinQuality float64
	Padding    float64

	Style      string
	Color      string
	Composite  string
	BlendMode  string
	BlurRadius float64

	// Opacity overrides the renderer opacity when set. A zero opacity
	// leaves the panels unpainted, which suits the blur style.
	Opacity *float64

	// JSON writes the computed masks instead of the rendered image.
	JSON    bool
	Preview bool
	Spinner *utils.Spinner

	once     sync.Once
	initErr  error
	detector *FaceDetector
	renderer *Renderer

	mu     sync.Mutex
	masked []Mask
}

// init prepares the face detector and the renderer. It runs once per
// Processor, so the same Processor can serve several workers.
func (p *Processor) init() error {
	p.once.Do(func() {
		p.renderer, p.initErr = p.newRenderer()
		if p.initErr != nil {
			return
		}
		if p.FaceDetect {
			if p.Classifier == "" {
				p.initErr = fmt.Errorf("face detection requires a cascade classifier")
				return
			}
			p.detector, p.initErr = LoadFaceDetector(p.Classifier)
			if p.initErr != nil {
				return
			}
			p.detector.Angle = p.FaceAngle
			if p.MinQuality > 0 {
				p.detector.MinQuality = float32(p.MinQuality)
			}
		}
	})
	return p.initErr
}

func (p *Processor) newRenderer() (*Renderer, error) {
	r := NewRenderer()
	if p.Style != "" {
		if p.Style != StyleFill && p.Style != StyleBlur {
			return nil, fmt.Errorf("unsupported panel style: %q", p.Style)
		}
		r.Style = p.Style
	}
	if p.Color != "" {
		col, err := utils.HexToRGBA(p.Color)
		if err != nil {
			return nil, err
		}
		r.Color = col
	}
	if p.Opacity != nil {
		r.Opacity = *p.Opacity
	}
	if p.BlurRadius > 0 {
		r.BlurRadius = p.BlurRadius
	}
	if p.Composite != "" {
		if err := r.Composite.Set(p.Composite); err != nil {
			return nil, err
		}
	}
	if p.BlendMode != "" {
		r.Blend = imop.NewBlend()
		if err := r.Blend.Set(p.BlendMode); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// measurer returns the measurer for img together with the factors scaling
// its coordinates to image pixels.
func (p *Processor) measurer(img *image.NRGBA) (m Measurer, sx, sy float64) {
	switch {
	case p.Layout != nil:
		doc := p.Layout.Document()
		sx, sy = 1, 1
		if doc.Width > 0 && doc.Height > 0 {
			sx = float64(img.Bounds().Dx()) / doc.Width
			sy = float64(img.Bounds().Dy()) / doc.Height
		}
		return p.Layout, sx, sy
	case p.detector != nil:
		return NewFaceMeasurer(p.detector, img, p.Padding), 1, 1
	default:
		return NewRegionMeasurer(img.Bounds()), 1, 1
	}
}

func (p *Processor) selectors() (string, []string) {
	container := p.Container
	if container == "" {
		container = DefaultContainer
	}
	holes := p.Holes
	if len(holes) == 0 && p.detector != nil && p.Layout == nil {
		holes = []string{FaceKind}
	}
	return container, holes
}

// Mask measures img and computes its masks, in the coordinates of the
// measurer: layout masks are in page coordinates, the others in pixels.
func (p *Processor) Mask(img *image.NRGBA) ([]Mask, error) {
	if err := p.init(); err != nil {
		return nil, err
	}
	m, _, _ := p.measurer(img)
	container, holes := p.selectors()
	return ComputeMask(m, container, holes...)
}

// Process is the main entry point for the masking operation. It decodes the
// image read from r, masks it and writes the result to w.
func (p *Processor) Process(r io.Reader, w io.Writer) error {
	if err := p.init(); err != nil {
		return err
	}

	img, err := decodeImg(r)
	if err != nil {
		return err
	}

	m, sx, sy := p.measurer(img)
	container, holes := p.selectors()
	masks, err := ComputeMask(m, container, holes...)
	if err != nil {
		return err
	}
	p.record(masks)

	if p.JSON {
		return WriteJSON(w, masks)
	}

	scaled := scaleMasks(masks, sx, sy)
	out, err := p.renderer.Render(img, Panels(scaled))
	if err != nil {
		return err
	}

	if p.Preview {
		if err := p.showPreview(out, scaled); err != nil {
			return err
		}
	}
	return encodeImg(w, out)
}

func (p *Processor) record(masks []Mask) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.masked = append(p.masked, masks...)
}

// Summary returns the statistics of every mask computed so far.
func (p *Processor) Summary() MaskStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return TotalStats(p.masked)
}

func scaleMasks(masks []Mask, sx, sy float64) []Mask {
	if sx == 1 && sy == 1 {
		return masks
	}
	scale := func(rs []rectset.Rect) []rectset.Rect {
		out := make([]rectset.Rect, len(rs))
		for i, r := range rs {
			out[i] = r.Scale(sx, sy)
		}
		return out
	}

	out := make([]Mask, len(masks))
	for i, m := range masks {
		out[i] = Mask{
			Container: m.Container.Scale(sx, sy),
			Holes:     scale(m.Holes),
			Panels:    scale(m.Panels),
		}
	}
	return out
}
