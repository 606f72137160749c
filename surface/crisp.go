// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import "math"

// Anti-aliased hairlines straddle two device pixels unless their centre
// lies on a pixel centre. Odd line widths therefore snap to x.5, even
// widths to whole pixels.

// oddWidth reports whether a stroke of this width has a pixel-centred axis.
func oddWidth(lineWidth float64) bool {
	return math.Mod(lineWidth, 2) != 0
}

// Snap aligns a single coordinate for a stroke of the given width.
// Snap is idempotent.
func Snap(v, lineWidth float64) float64 {
	if oddWidth(lineWidth) {
		return math.Floor(v) + 0.5
	}
	return math.Floor(v)
}

// SnapExtent aligns a width or height. Whole extents are kept; fractional
// ones are floored for odd widths and floored to x.5 for even widths.
// SnapExtent is idempotent.
func SnapExtent(v, lineWidth float64) float64 {
	if v == math.Trunc(v) {
		return v
	}
	if oddWidth(lineWidth) {
		return math.Floor(v)
	}
	return math.Floor(v) + 0.5
}

// SnapRect aligns a rectangle for crisp stroking.
func SnapRect(x, y, w, h, lineWidth float64) (float64, float64, float64, float64) {
	return Snap(x, lineWidth), Snap(y, lineWidth),
		SnapExtent(w, lineWidth), SnapExtent(h, lineWidth)
}
