package rectset

// Overlaps returns true if a and b share an intersection of positive area.
// Each axis is treated as a half-open interval, so rectangles that only touch
// along an edge do not overlap.
func Overlaps(a, b Rect) bool {
	return a.Left < b.Right() && b.Left < a.Right() &&
		a.Top < b.Bottom() && b.Top < a.Bottom()
}

// Clip trims hole to the bounds of container. Every hole edge lying outside
// the matching container edge is pulled in to that edge and the opposite
// dimension shrinks accordingly. When no edge lies outside, hole is returned
// as is.
func Clip(container, hole Rect) Rect {
	var (
		top, left     = hole.Top, hole.Left
		width, height = hole.Width, hole.Height
		clipped       bool
	)

	if top < container.Top {
		height -= container.Top - top
		top = container.Top
		clipped = true
	}
	if left < container.Left {
		width -= container.Left - left
		left = container.Left
		clipped = true
	}
	// The far edges are measured from the possibly adjusted top and left.
	if top+height > container.Bottom() {
		height = container.Bottom() - top
		clipped = true
	}
	if left+width > container.Right() {
		width = container.Right() - left
		clipped = true
	}

	if !clipped {
		return hole
	}
	return Rect{Top: top, Left: left, Width: width, Height: height}
}

// Subtract returns the part of container not covered by hole as at most four
// non-overlapping bands. A hole that does not overlap container leaves it
// untouched.
//
// The bands are laid out as a pinwheel around the clipped hole: top, right,
// bottom, left, each one extended to share an edge with the previous. The
// order matters, a different one would either leave gaps or make bands
// overlap.
func Subtract(container, hole Rect) []Rect {
	if hole.IsEmpty() || !Overlaps(container, hole) {
		return []Rect{container}
	}
	h := Clip(container, hole)

	bands := [4]Rect{
		{ // top
			Top:    container.Top,
			Left:   container.Left,
			Height: h.Top - container.Top,
			Width:  h.Right() - container.Left,
		},
		{ // right
			Top:    container.Top,
			Left:   h.Right(),
			Height: h.Bottom() - container.Top,
			Width:  container.Right() - h.Right(),
		},
		{ // bottom
			Top:    h.Bottom(),
			Left:   h.Left,
			Height: container.Bottom() - h.Bottom(),
			Width:  container.Right() - h.Left,
		},
		{ // left
			Top:    h.Top,
			Left:   container.Left,
			Height: container.Bottom() - h.Top,
			Width:  h.Left - container.Left,
		},
	}

	out := make([]Rect, 0, len(bands))
	for _, b := range bands {
		if !b.IsEmpty() {
			out = append(out, b)
		}
	}
	return out
}

// SubtractAll removes every hole from container, in order, and returns the
// remaining regions. The union of the result always equals the container
// minus the union of the holes, but the exact partition depends on the order
// of the holes, so callers should not rely on a specific decomposition.
//
// An empty container has no visible area and yields an empty result.
func SubtractAll(container Rect, holes ...Rect) []Rect {
	if container.IsEmpty() {
		return []Rect{}
	}

	regions := []Rect{container}
	for _, hole := range holes {
		next := make([]Rect, 0, len(regions))
		for _, r := range regions {
			next = append(next, Subtract(r, hole)...)
		}
		regions = next
	}
	return regions
}
