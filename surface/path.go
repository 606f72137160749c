// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import "math"

// Verb is a path construction verb.
type Verb uint8

// Path verbs.
const (
	VerbMoveTo Verb = iota
	VerbLineTo
	VerbQuadTo
	VerbCubicTo
	VerbClose
)

// PathSink receives replayed path segments.
type PathSink interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadTo(cx, cy, x, y float64)
	CubicTo(c1x, c1y, c2x, c2y, x, y float64)
	ClosePath()
}

// Path records the current path of a native that has no path of its
// own, or whose path is consumed by painting. Arcs and rectangles are
// stored as lines and cubics.
type Path struct {
	verbs  []Verb
	points []float64
	startX float64
	startY float64
	curX   float64
	curY   float64
}

// NewPath creates an empty path.
func NewPath() *Path {
	return &Path{
		verbs:  make([]Verb, 0, 16),
		points: make([]float64, 0, 64),
	}
}

// MoveTo starts a new subpath.
func (p *Path) MoveTo(x, y float64) {
	p.verbs = append(p.verbs, VerbMoveTo)
	p.points = append(p.points, x, y)
	p.startX, p.startY = x, y
	p.curX, p.curY = x, y
}

// LineTo adds a line from the current point. An empty path starts at (x, y).
func (p *Path) LineTo(x, y float64) {
	if len(p.verbs) == 0 {
		p.MoveTo(x, y)
		return
	}
	p.verbs = append(p.verbs, VerbLineTo)
	p.points = append(p.points, x, y)
	p.curX, p.curY = x, y
}

// QuadTo adds a quadratic Bezier curve.
func (p *Path) QuadTo(cx, cy, x, y float64) {
	if len(p.verbs) == 0 {
		p.MoveTo(cx, cy)
	}
	p.verbs = append(p.verbs, VerbQuadTo)
	p.points = append(p.points, cx, cy, x, y)
	p.curX, p.curY = x, y
}

// CubicTo adds a cubic Bezier curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	if len(p.verbs) == 0 {
		p.MoveTo(c1x, c1y)
	}
	p.verbs = append(p.verbs, VerbCubicTo)
	p.points = append(p.points, c1x, c1y, c2x, c2y, x, y)
	p.curX, p.curY = x, y
}

// ClosePath closes the current subpath.
func (p *Path) ClosePath() {
	if len(p.verbs) == 0 {
		return
	}
	p.verbs = append(p.verbs, VerbClose)
	p.curX, p.curY = p.startX, p.startY
}

// Clear empties the path.
func (p *Path) Clear() {
	p.verbs = p.verbs[:0]
	p.points = p.points[:0]
	p.startX, p.startY = 0, 0
	p.curX, p.curY = 0, 0
}

// IsEmpty reports whether the path has no segments.
func (p *Path) IsEmpty() bool {
	return len(p.verbs) == 0
}

// Verbs returns the recorded verbs.
func (p *Path) Verbs() []Verb {
	return p.verbs
}

// CurrentPoint returns the pen position.
func (p *Path) CurrentPoint() Point {
	return Point{X: p.curX, Y: p.curY}
}

// Rectangle adds a closed rectangle.
func (p *Path) Rectangle(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.ClosePath()
}

// Arc adds a circular arc around (cx, cy). Like the canvas arc, it draws a
// line from the current point to the arc start.
func (p *Path) Arc(cx, cy, r, angle1, angle2 float64, anticlockwise bool) {
	const twoPi = 2 * math.Pi
	if anticlockwise {
		for angle2 > angle1 {
			angle2 -= twoPi
		}
	} else {
		for angle2 < angle1 {
			angle2 += twoPi
		}
	}

	sx, sy := cx+r*math.Cos(angle1), cy+r*math.Sin(angle1)
	if len(p.verbs) == 0 {
		p.MoveTo(sx, sy)
	} else {
		p.LineTo(sx, sy)
	}

	sweep := angle2 - angle1
	if sweep == 0 {
		return
	}
	const maxAngle = math.Pi / 2
	n := int(math.Ceil(math.Abs(sweep) / maxAngle))
	step := sweep / float64(n)
	for i := 0; i < n; i++ {
		a1 := angle1 + float64(i)*step
		p.arcSegment(cx, cy, r, a1, a1+step)
	}
}

// arcSegment adds a single cubic segment of at most 90 degrees.
func (p *Path) arcSegment(cx, cy, r, a1, a2 float64) {
	alpha := math.Sin(a2-a1) * (math.Sqrt(4+3*math.Tan((a2-a1)/2)*math.Tan((a2-a1)/2)) - 1) / 3

	cos1, sin1 := math.Cos(a1), math.Sin(a1)
	cos2, sin2 := math.Cos(a2), math.Sin(a2)

	x1, y1 := cx+r*cos1, cy+r*sin1
	x2, y2 := cx+r*cos2, cy+r*sin2

	p.CubicTo(
		x1-alpha*r*sin1, y1+alpha*r*cos1,
		x2+alpha*r*sin2, y2-alpha*r*cos2,
		x2, y2)
}

// Replay feeds every segment to sink, in order.
func (p *Path) Replay(sink PathSink) {
	i := 0
	for _, v := range p.verbs {
		switch v {
		case VerbMoveTo:
			sink.MoveTo(p.points[i], p.points[i+1])
			i += 2
		case VerbLineTo:
			sink.LineTo(p.points[i], p.points[i+1])
			i += 2
		case VerbQuadTo:
			sink.QuadTo(p.points[i], p.points[i+1], p.points[i+2], p.points[i+3])
			i += 4
		case VerbCubicTo:
			sink.CubicTo(p.points[i], p.points[i+1], p.points[i+2],
				p.points[i+3], p.points[i+4], p.points[i+5])
			i += 6
		case VerbClose:
			sink.ClosePath()
		}
	}
}

// Bounds returns the bounding box of all recorded points.
func (p *Path) Bounds() (minX, minY, maxX, maxY float64) {
	if len(p.points) == 0 {
		return 0, 0, 0, 0
	}
	minX, maxX = p.points[0], p.points[0]
	minY, maxY = p.points[1], p.points[1]
	for i := 2; i < len(p.points); i += 2 {
		minX = math.Min(minX, p.points[i])
		maxX = math.Max(maxX, p.points[i])
		minY = math.Min(minY, p.points[i+1])
		maxY = math.Max(maxY, p.points[i+1])
	}
	return minX, minY, maxX, maxY
}
