// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

// GGNative is a CPU native backed by a gg.Context.
//
// gg consumes its path on every fill and transforms points as they are
// added, so GGNative records the canvas path itself, in device space, and
// replays it into gg for every paint operation. The paint state is kept
// as a Style and applied to gg lazily.
//
// GGNative provides native dashes and full text support.
type GGNative struct {
	dc *gg.Context

	style Style
	m     Matrix
	dash  []float64
	stack []ggFrame

	path *Path
}

type ggFrame struct {
	style Style
	m     Matrix
	dash  []float64
}

var (
	_ Dasher       = (*GGNative)(nil)
	_ TextMeasurer = (*GGNative)(nil)
	_ TextPainter  = (*GGNative)(nil)
)

// NewGGNative creates a transparent CPU native of the given size.
func NewGGNative(width, height int) (*GGNative, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return newGGNative(gg.NewContext(width, height)), nil
}

// NewGGNativeFromContext wraps an existing gg context, for example the one
// owned by a GPU canvas.
func NewGGNativeFromContext(dc *gg.Context) *GGNative {
	return newGGNative(dc)
}

func newGGNative(dc *gg.Context) *GGNative {
	return &GGNative{
		dc:    dc,
		style: DefaultStyle(),
		m:     Identity(),
		path:  NewPath(),
	}
}

// Context returns the underlying gg context.
func (g *GGNative) Context() *gg.Context { return g.dc }

// Image returns the rendered image.
func (g *GGNative) Image() image.Image { return g.dc.Image() }

// EncodePNG writes the rendered image as PNG.
func (g *GGNative) EncodePNG(w io.Writer) error { return g.dc.EncodePNG(w) }

// SavePNG writes the rendered image to a PNG file.
func (g *GGNative) SavePNG(path string) error { return g.dc.SavePNG(path) }

func (g *GGNative) Width() int  { return g.dc.Width() }
func (g *GGNative) Height() int { return g.dc.Height() }

func (g *GGNative) Style() Style     { return g.style }
func (g *GGNative) SetStyle(s Style) { g.style = s }

// Save pushes the paint state and transform. The clip is saved by gg.
func (g *GGNative) Save() {
	g.stack = append(g.stack, ggFrame{style: g.style, m: g.m, dash: g.dash})
	g.dc.Push()
}

// Restore pops what Save pushed.
func (g *GGNative) Restore() {
	if len(g.stack) == 0 {
		return
	}
	f := g.stack[len(g.stack)-1]
	g.stack = g.stack[:len(g.stack)-1]
	g.style, g.m, g.dash = f.style, f.m, f.dash
	g.dc.Pop()
	g.syncMatrix()
}

func (g *GGNative) Translate(x, y float64) { g.Transform(TranslateMatrix(x, y)) }
func (g *GGNative) Scale(x, y float64)     { g.Transform(ScaleMatrix(x, y)) }
func (g *GGNative) Rotate(angle float64)   { g.Transform(RotateMatrix(angle)) }

func (g *GGNative) Transform(m Matrix) {
	g.m = g.m.Multiply(m)
	g.syncMatrix()
}

func (g *GGNative) SetTransform(m Matrix) {
	g.m = m
	g.syncMatrix()
}

// syncMatrix mirrors the canvas matrix into gg, whose layout is row-major.
func (g *GGNative) syncMatrix() {
	g.dc.SetTransform(toGGMatrix(g.m))
}

func toGGMatrix(m Matrix) gg.Matrix {
	return gg.Matrix{A: m.A, B: m.C, C: m.E, D: m.B, E: m.D, F: m.F}
}

func (g *GGNative) BeginPath() { g.path.Clear() }
func (g *GGNative) ClosePath() { g.path.ClosePath() }

func (g *GGNative) MoveTo(x, y float64) {
	g.path.MoveTo(g.m.Apply(x, y))
}

func (g *GGNative) LineTo(x, y float64) {
	g.path.LineTo(g.m.Apply(x, y))
}

func (g *GGNative) QuadraticCurveTo(cpx, cpy, x, y float64) {
	cx, cy := g.m.Apply(cpx, cpy)
	px, py := g.m.Apply(x, y)
	g.path.QuadTo(cx, cy, px, py)
}

func (g *GGNative) BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64) {
	c1x, c1y := g.m.Apply(cp1x, cp1y)
	c2x, c2y := g.m.Apply(cp2x, cp2y)
	px, py := g.m.Apply(x, y)
	g.path.CubicTo(c1x, c1y, c2x, c2y, px, py)
}

// Arc is flattened to cubics in user space, then transformed. Like the
// canvas arc it connects the current point to the arc start.
func (g *GGNative) Arc(x, y, radius, startAngle, endAngle float64, anticlockwise bool) {
	arc := NewPath()
	arc.Arc(x, y, radius, startAngle, endAngle, anticlockwise)
	arc.Replay(&transformSink{dst: g.path, m: g.m, connect: true})
}

func (g *GGNative) Rect(x, y, w, h float64) {
	g.MoveTo(x, y)
	g.LineTo(x+w, y)
	g.LineTo(x+w, y+h)
	g.LineTo(x, y+h)
	g.ClosePath()
}

// device runs fn with gg in device space and an empty gg path.
func (g *GGNative) device(fn func()) {
	g.dc.Identity()
	g.dc.ClearPath()
	fn()
	g.dc.ClearPath()
	g.syncMatrix()
}

func (g *GGNative) Fill() {
	g.device(func() {
		g.applyColor(g.style.FillStyle)
		g.path.Replay(ggSink{g.dc})
		g.check("fill", g.dc.Fill())
	})
}

func (g *GGNative) Stroke() {
	g.device(func() {
		g.applyStroke()
		g.path.Replay(ggSink{g.dc})
		g.check("stroke", g.dc.Stroke())
	})
}

func (g *GGNative) Clip() {
	g.device(func() {
		g.path.Replay(ggSink{g.dc})
		g.dc.Clip()
	})
}

func (g *GGNative) FillRect(x, y, w, h float64) {
	g.device(func() {
		g.applyColor(g.style.FillStyle)
		g.rectPath(x, y, w, h)
		g.check("fill rect", g.dc.Fill())
	})
}

func (g *GGNative) StrokeRect(x, y, w, h float64) {
	g.device(func() {
		g.applyStroke()
		g.rectPath(x, y, w, h)
		g.check("stroke rect", g.dc.Stroke())
	})
}

// ClearRect resets the device pixels under the rectangle to transparent.
func (g *GGNative) ClearRect(x, y, w, h float64) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range [][2]float64{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}} {
		px, py := g.m.Apply(p[0], p[1])
		minX, maxX = math.Min(minX, px), math.Max(maxX, px)
		minY, maxY = math.Min(minY, py), math.Max(maxY, py)
	}
	x0, y0 := max(0, int(math.Floor(minX))), max(0, int(math.Floor(minY)))
	x1, y1 := min(g.Width(), int(math.Ceil(maxX))), min(g.Height(), int(math.Ceil(maxY)))
	if x0 == 0 && y0 == 0 && x1 == g.Width() && y1 == g.Height() {
		g.dc.Clear()
		return
	}
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			g.dc.SetPixel(px, py, gg.Transparent)
		}
	}
}

// SetLineDash sets the dash pattern used by Stroke and StrokeRect.
func (g *GGNative) SetLineDash(pattern []float64) {
	g.dash = append(g.dash[:0:0], pattern...)
}

// MeasureText measures s with the gg face for the current font.
func (g *GGNative) MeasureText(s string) TextMetrics {
	face, err := ggFace(g.style.Font)
	if err != nil {
		Logger().Warn("surface: gg font unavailable", "err", err)
		return TextMetrics{}
	}
	fm := face.Metrics()
	w, _ := text.Measure(s, face)
	return TextMetrics{Width: w, Ascent: fm.Ascent, Descent: fm.Descent}
}

// FillText draws s with its baseline origin at (x, y). gg draws text
// unrotated, so only the translation of the transform applies.
func (g *GGNative) FillText(s string, x, y float64) {
	face, err := ggFace(g.style.Font)
	if err != nil {
		Logger().Warn("surface: gg font unavailable", "err", err)
		return
	}
	dx, dy := g.m.Apply(x, y)
	g.dc.SetFont(face)
	g.applyColor(g.style.FillStyle)
	g.dc.Identity()
	g.dc.DrawString(s, dx, dy)
	g.syncMatrix()
}

// StrokeText strokes the glyph outlines of s.
func (g *GGNative) StrokeText(s string, x, y float64) {
	outline := NewPath()
	if err := glyphOutlines(outline, s, ParseFont(g.style.Font), x, y); err != nil {
		Logger().Warn("surface: glyph outlines unavailable", "err", err)
		return
	}
	g.device(func() {
		g.applyStroke()
		outline.Replay(&transformSink{dst: ggSink{g.dc}, m: g.m})
		g.check("stroke text", g.dc.Stroke())
	})
}

func (g *GGNative) rectPath(x, y, w, h float64) {
	s := &transformSink{dst: ggSink{g.dc}, m: g.m}
	s.MoveTo(x, y)
	s.LineTo(x+w, y)
	s.LineTo(x+w, y+h)
	s.LineTo(x, y+h)
	s.ClosePath()
}

func (g *GGNative) applyColor(c string) {
	g.dc.SetColor(g.resolve(c))
}

func (g *GGNative) resolve(c string) color.NRGBA {
	col, err := ParseColor(c)
	if err != nil {
		Logger().Warn("surface: unknown colour, using black", "colour", c)
		col = color.NRGBA{A: 0xff}
	}
	if a := g.style.GlobalAlpha; a >= 0 && a < 1 {
		col.A = uint8(float64(col.A) * a)
	}
	return col
}

func (g *GGNative) applyStroke() {
	st := g.style
	g.applyColor(st.StrokeStyle)

	// gg strokes in device space; scale the pen with the transform.
	scale := math.Sqrt(math.Abs(g.m.A*g.m.D - g.m.B*g.m.C))
	g.dc.SetLineWidth(st.LineWidth * scale)
	g.dc.SetMiterLimit(st.MiterLimit)

	switch st.LineCap {
	case "round":
		g.dc.SetLineCap(gg.LineCapRound)
	case "square":
		g.dc.SetLineCap(gg.LineCapSquare)
	default:
		g.dc.SetLineCap(gg.LineCapButt)
	}
	switch st.LineJoin {
	case "round":
		g.dc.SetLineJoin(gg.LineJoinRound)
	case "bevel":
		g.dc.SetLineJoin(gg.LineJoinBevel)
	default:
		g.dc.SetLineJoin(gg.LineJoinMiter)
	}

	if len(g.dash) > 0 {
		g.dc.SetDash(g.dash...)
	} else {
		g.dc.ClearDash()
	}
}

func (g *GGNative) check(op string, err error) {
	if err != nil {
		Logger().Warn("surface: gg paint failed", "op", op, "err", err)
	}
}

// ggSink feeds device-space segments to a gg path.
type ggSink struct {
	dc *gg.Context
}

func (s ggSink) MoveTo(x, y float64)         { s.dc.MoveTo(x, y) }
func (s ggSink) LineTo(x, y float64)         { s.dc.LineTo(x, y) }
func (s ggSink) QuadTo(cx, cy, x, y float64) { s.dc.QuadraticTo(cx, cy, x, y) }
func (s ggSink) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	s.dc.CubicTo(c1x, c1y, c2x, c2y, x, y)
}
func (s ggSink) ClosePath() { s.dc.ClosePath() }

// transformSink maps user-space segments through m before forwarding them.
// With connect set, the first MoveTo becomes a LineTo.
type transformSink struct {
	dst     PathSink
	m       Matrix
	connect bool
}

func (s *transformSink) MoveTo(x, y float64) {
	if s.connect {
		s.connect = false
		s.dst.LineTo(s.m.Apply(x, y))
		return
	}
	s.dst.MoveTo(s.m.Apply(x, y))
}

func (s *transformSink) LineTo(x, y float64) { s.dst.LineTo(s.m.Apply(x, y)) }

func (s *transformSink) QuadTo(cx, cy, x, y float64) {
	tcx, tcy := s.m.Apply(cx, cy)
	tx, ty := s.m.Apply(x, y)
	s.dst.QuadTo(tcx, tcy, tx, ty)
}

func (s *transformSink) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	t1x, t1y := s.m.Apply(c1x, c1y)
	t2x, t2y := s.m.Apply(c2x, c2y)
	tx, ty := s.m.Apply(x, y)
	s.dst.CubicTo(t1x, t1y, t2x, t2y, tx, ty)
}

func (s *transformSink) ClosePath() { s.dst.ClosePath() }

// ggFonts caches gg font sources by Go font data identity.
var ggFonts struct {
	mu      sync.Mutex
	sources map[*byte]*text.FontSource
}

// ggFace returns the gg face for a font shorthand.
func ggFace(font string) (text.Face, error) {
	f := ParseFont(font)
	data := f.TTF()
	key := &data[0]

	ggFonts.mu.Lock()
	defer ggFonts.mu.Unlock()
	src, ok := ggFonts.sources[key]
	if !ok {
		var err error
		src, err = text.NewFontSource(data)
		if err != nil {
			return nil, fmt.Errorf("surface: load font %q: %w", font, err)
		}
		if ggFonts.sources == nil {
			ggFonts.sources = make(map[*byte]*text.FontSource)
		}
		ggFonts.sources[key] = src
	}
	return src.Face(f.Size), nil
}
