// Package rectset computes the area of a container rectangle that remains
// uncovered by a set of hole rectangles, expressed as a list of
// non-overlapping rectangles.
//
// All rectangles share one flat coordinate space (for example page
// coordinates). Mixing coordinate spaces is the caller's responsibility and is
// not detected. The functions are pure: inputs are never modified and every
// call returns freshly allocated slices, so they are safe for concurrent use.
package rectset

import (
	"image"
	"math"
)

// Rect is an axis-aligned rectangle. Top and Left locate the top-left corner,
// Width and Height are its dimensions. A rectangle with a non-positive width or
// height is empty and carries no visible area.
type Rect struct {
	Top    float64 `json:"top" yaml:"top"`
	Left   float64 `json:"left" yaml:"left"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// NewRect creates a new Rect. The argument order follows the field order.
func NewRect(top, left, width, height float64) Rect {
	return Rect{Top: top, Left: left, Width: width, Height: height}
}

// Right returns the x-coordinate of the right edge (exclusive).
func (r Rect) Right() float64 {
	return r.Left + r.Width
}

// Bottom returns the y-coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() float64 {
	return r.Top + r.Height
}

// IsEmpty returns true if the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Area returns the area of the rectangle, zero for empty rectangles.
func (r Rect) Area() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.Width * r.Height
}

// IsFinite reports whether all four fields are finite numbers.
func (r Rect) IsFinite() bool {
	for _, v := range [...]float64{r.Top, r.Left, r.Width, r.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the top and left edges are inside, points on the right and
// bottom edges are outside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x < r.Right() && y >= r.Top && y < r.Bottom()
}

// Translate returns the rectangle moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{Top: r.Top + dy, Left: r.Left + dx, Width: r.Width, Height: r.Height}
}

// Outset grows the rectangle by n on every side. Negative values shrink it.
func (r Rect) Outset(n float64) Rect {
	return Rect{Top: r.Top - n, Left: r.Left - n, Width: r.Width + 2*n, Height: r.Height + 2*n}
}

// Scale multiplies the horizontal coordinates by sx and the vertical ones
// by sy, mapping the rectangle into another coordinate space.
func (r Rect) Scale(sx, sy float64) Rect {
	return Rect{Top: r.Top * sy, Left: r.Left * sx, Width: r.Width * sx, Height: r.Height * sy}
}

// Pixels converts the rectangle to integer pixel bounds by rounding every
// edge to the nearest integer. Rectangles sharing an edge therefore map to
// pixel rectangles sharing an edge, with no gap or overlap between them.
func (r Rect) Pixels() image.Rectangle {
	return image.Rect(
		int(math.Round(r.Left)),
		int(math.Round(r.Top)),
		int(math.Round(r.Right())),
		int(math.Round(r.Bottom())),
	)
}

// FromPixels converts integer pixel bounds to a Rect.
func FromPixels(p image.Rectangle) Rect {
	return Rect{
		Top:    float64(p.Min.Y),
		Left:   float64(p.Min.X),
		Width:  float64(p.Dx()),
		Height: float64(p.Dy()),
	}
}

// TotalArea sums the areas of the given rectangles.
func TotalArea(rects []Rect) float64 {
	var sum float64
	for _, r := range rects {
		sum += r.Area()
	}
	return sum
}
