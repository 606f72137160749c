// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import "math"

// Software dash pattern, in plotted pixels.
const (
	DashPeriod = 15
	DashLength = 10
)

// nativeDash is the pattern handed to natives that dash on their own.
var nativeDash = []float64{DashLength, DashPeriod - DashLength}

// DashOn reports whether the i-th plotted pixel of a dashed line is painted
// in the stroke colour. The remaining pixels of each period are gaps.
func DashOn(i int) bool {
	return i%DashPeriod < DashLength
}

// Bresenham walks the pixels of the line (x1,y1)-(x2,y2) and calls plot for
// each with its index along the line, starting at 0 for the first endpoint.
//
// Inputs are floored. The stepping axis is the one with the greater
// extent; the minor axis advances when the accumulated error reaches half
// the major delta. Only integer arithmetic is used after flooring.
func Bresenham(x1, y1, x2, y2 float64, plot func(x, y, i int)) {
	ax, ay := int(math.Floor(x1)), int(math.Floor(y1))
	bx, by := int(math.Floor(x2)), int(math.Floor(y2))

	steep := abs(by-ay) > abs(bx-ax)
	if steep {
		ax, ay = ay, ax
		bx, by = by, bx
	}

	dx := abs(bx - ax)
	dy := abs(by - ay)
	xStep, yStep := 1, 1
	if ax > bx {
		xStep = -1
	}
	if ay > by {
		yStep = -1
	}

	emit := func(x, y, i int) {
		if steep {
			plot(y, x, i)
		} else {
			plot(x, y, i)
		}
	}

	x, y, err := ax, ay, 0
	emit(x, y, 0)
	for i := 1; x != bx; i++ {
		x += xStep
		err += dy
		if 2*err >= dx {
			y += yStep
			err -= dx
		}
		emit(x, y, i)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
