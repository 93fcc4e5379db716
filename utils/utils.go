// Package utils holds the small helpers shared by the spotlight library and
// its command line tool: coloured status messages, a progress spinner, image
// download and a few generic functions.
package utils

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Contains returns true if the slice contains the value.
func Contains[T comparable](slice []T, value T) bool {
	for _, v := range slice {
		if v == value {
			return true
		}
	}
	return false
}

// HexToRGBA converts a "#rrggbb" or "#rrggbbaa" color string to color.NRGBA.
// The leading hash is optional.
func HexToRGBA(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
