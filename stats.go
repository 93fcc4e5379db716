package spotlight

import "gonum.org/v1/gonum/floats"

// MaskStats summarizes how much of a container a mask dims.
type MaskStats struct {
	Panels        int     `json:"panels"`
	ContainerArea float64 `json:"containerArea"`
	MaskedArea    float64 `json:"maskedArea"`
	VisibleArea   float64 `json:"visibleArea"`
	// Coverage is MaskedArea / ContainerArea, 0 for an empty container.
	Coverage float64 `json:"coverage"`
}

// Stats computes the statistics of a single mask.
func Stats(m Mask) MaskStats {
	areas := make([]float64, len(m.Panels))
	for i, p := range m.Panels {
		areas[i] = p.Area()
	}

	s := MaskStats{
		Panels:        len(m.Panels),
		ContainerArea: m.Container.Area(),
		MaskedArea:    floats.Sum(areas),
	}
	s.VisibleArea = s.ContainerArea - s.MaskedArea
	if s.ContainerArea > 0 {
		s.Coverage = s.MaskedArea / s.ContainerArea
	}
	return s
}

// TotalStats aggregates the statistics of several masks.
func TotalStats(masks []Mask) MaskStats {
	var (
		panels    int
		container = make([]float64, len(masks))
		masked    = make([]float64, len(masks))
	)
	for i, m := range masks {
		s := Stats(m)
		panels += s.Panels
		container[i] = s.ContainerArea
		masked[i] = s.MaskedArea
	}

	s := MaskStats{
		Panels:        panels,
		ContainerArea: floats.Sum(container),
		MaskedArea:    floats.Sum(masked),
	}
	s.VisibleArea = s.ContainerArea - s.MaskedArea
	if s.ContainerArea > 0 {
		s.Coverage = s.MaskedArea / s.ContainerArea
	}
	return s
}
