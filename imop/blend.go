// Package imop implements the Porter-Duff composition operators and the
// separable blend modes used to paint the spotlight panels over an image.
// The image/draw core package only implements source and
// source-over-destination, so the remaining operators live here.
package imop

import (
	"fmt"
	"math"

	"github.com/esimov/spotlight/utils"
)

// The supported blend modes. An empty mode is the normal one, where the
// source simply replaces the backdrop before compositing.
const (
	Normal     = ""
	Darken     = "darken"
	Lighten    = "lighten"
	Multiply   = "multiply"
	Screen     = "screen"
	Overlay    = "overlay"
	Difference = "difference"
	Exclusion  = "exclusion"
)

// BlendModes lists the supported blend modes.
var BlendModes = []string{Darken, Lighten, Multiply, Screen, Overlay, Difference, Exclusion}

// Blend holds the currently active blend mode.
type Blend struct {
	OpType string
}

// NewBlend initializes a new Blend.
func NewBlend() *Blend {
	return &Blend{}
}

// Set activate one of the supported blend mode.
func (o *Blend) Set(opType string) error {
	if opType != Normal && !utils.Contains(BlendModes, opType) {
		return fmt.Errorf("unsupported blend mode: %q", opType)
	}
	o.OpType = opType
	return nil
}

// Get returns the currently active blend mode.
func (o *Blend) Get() string {
	return o.OpType
}

// apply mixes one normalized backdrop channel cb with the source channel cs.
func (o *Blend) apply(cb, cs float64) float64 {
	switch o.OpType {
	case Darken:
		return utils.Min(cb, cs)
	case Lighten:
		return utils.Max(cb, cs)
	case Multiply:
		return cb * cs
	case Screen:
		return cb + cs - cb*cs
	case Overlay:
		// Overlay is hard light with the layers swapped.
		if cb <= 0.5 {
			return 2 * cb * cs
		}
		return 1 - 2*(1-cb)*(1-cs)
	case Difference:
		return math.Abs(cb - cs)
	case Exclusion:
		return cb + cs - 2*cb*cs
	default:
		return cs
	}
}
