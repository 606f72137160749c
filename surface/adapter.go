// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"reflect"
	"sync"
)

// Canvas is the uniform drawing interface. Callers cannot tell which of
// its features a native provides and which the Adapter synthesizes.
//
// Whoever changes the paint state must restore it before returning
// control; nothing enforces this.
type Canvas interface {
	Width() int
	Height() int

	// State returns the complete paint state, extended part included.
	State() State
	// SetState replaces the complete paint state.
	SetState(s State)

	Save()
	Restore()

	Translate(x, y float64)
	Scale(x, y float64)
	Rotate(angle float64)
	Transform(m Matrix)
	SetTransform(m Matrix)

	BeginPath()
	ClosePath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticCurveTo(cpx, cpy, x, y float64)
	BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64)
	Arc(x, y, radius, startAngle, endAngle float64, anticlockwise bool)
	Rect(x, y, w, h float64)

	Fill()
	Stroke()
	Clip()

	FillRect(x, y, w, h float64)
	StrokeRect(x, y, w, h float64)
	ClearRect(x, y, w, h float64)
	FillStrokeRect(x, y, w, h float64)
	Clear()

	// FillText and StrokeText draw s anchored at (x, y) according to the
	// text alignment, y being the baseline. A positive maxWidth caps the
	// decoration length.
	FillText(s string, x, y, maxWidth float64)
	StrokeText(s string, x, y, maxWidth float64)
	FillTextCenter(s string, x, y, maxWidth float64)
	FillTextRight(s string, x, y, maxWidth float64)
	StrokeTextCenter(s string, x, y, maxWidth float64)
	StrokeTextRight(s string, x, y, maxWidth float64)

	// MeasureText returns the advance width of s in the current font.
	MeasureText(s string) float64
	// FontSize returns the size of the current font.
	FontSize() float64
}

var _ Canvas = (*Adapter)(nil)

// Adapter normalizes a Native into a Canvas.
//
// The drawing strategies (line dashing, pixel snapping, text tier,
// extended state) are chosen once, in New, from the native's
// capabilities. Adapter is NOT safe for concurrent use.
type Adapter struct {
	native Native
	caps   Capabilities
	opts   Options
	text   textTier

	ext   Extended
	saved []Extended
	depth int

	// pen is the last point handed to MoveTo/LineTo, after snapping.
	penX, penY float64
}

// adapters maps each comparable native to the adapter set up for it.
var adapters sync.Map // Native -> *Adapter

// New wraps n. Setting up the same native again returns the adapter it
// already has, options and all; the new options are ignored.
// Release drops the association.
func New(n Native, opts ...Option) *Adapter {
	keyed := reflect.TypeOf(n).Comparable()
	if keyed {
		if a, ok := adapters.Load(n); ok {
			return a.(*Adapter)
		}
	}

	o := DefaultOptions(n.Width(), n.Height())
	for _, opt := range opts {
		opt(&o)
	}

	var caps Capabilities
	if o.Capabilities != nil {
		caps = restrict(n, *o.Capabilities)
	} else {
		caps = Probe(n)
	}

	a := &Adapter{
		native: n,
		caps:   caps,
		opts:   o,
		text:   newTextTier(caps, o.Shaper),
		ext:    DefaultExtended(),
	}
	a.setExtended(a.ext)

	if keyed {
		if prev, loaded := adapters.LoadOrStore(n, a); loaded {
			return prev.(*Adapter)
		}
	}

	Logger().Debug("surface: adapter ready",
		"dash", dashMode(caps),
		"crisp", caps.Crisp,
		"text", a.text.tier().String(),
		"extendedState", caps.ExtendedState)
	return a
}

// Release forgets the adapter set up for n, so a later New starts fresh.
func Release(n Native) {
	if n != nil && reflect.TypeOf(n).Comparable() {
		adapters.Delete(n)
	}
}

func dashMode(c Capabilities) string {
	if c.Dash {
		return "native"
	}
	return "raster"
}

// Native returns the wrapped native.
func (a *Adapter) Native() Native { return a.native }

// Capabilities returns the capabilities the adapter is using.
func (a *Adapter) Capabilities() Capabilities { return a.caps }

// TextTier returns the selected text strategy.
func (a *Adapter) TextTier() TextTier { return a.text.tier() }

// Depth returns the number of unmatched Save calls.
func (a *Adapter) Depth() int { return a.depth }

// Width returns the surface width.
func (a *Adapter) Width() int { return a.native.Width() }

// Height returns the surface height.
func (a *Adapter) Height() int { return a.native.Height() }

// extended returns the live extended state.
func (a *Adapter) extended() Extended {
	if a.caps.ExtendedState {
		return a.native.(ExtendedStater).Extended()
	}
	return a.ext
}

func (a *Adapter) setExtended(e Extended) {
	if a.caps.ExtendedState {
		a.native.(ExtendedStater).SetExtended(e)
	} else {
		a.ext = e
	}
	if a.caps.Crisp {
		a.native.(Crisper).SetCrispEdges(e.UseCrispLines)
	}
}

// State returns the complete paint state.
func (a *Adapter) State() State {
	return State{Style: a.native.Style(), Extended: a.extended()}
}

// SetState replaces the complete paint state.
func (a *Adapter) SetState(s State) {
	a.native.SetStyle(s.Style)
	a.setExtended(s.Extended)
}

// Save snapshots the extended state, then saves the native state.
func (a *Adapter) Save() {
	a.depth++
	if !a.caps.ExtendedState {
		a.saved = append(a.saved, a.ext)
	}
	a.native.Save()
}

// Restore reassigns the most recently saved extended state, whatever the
// native restore does, then restores the native state. Restore without a
// matching Save does nothing.
func (a *Adapter) Restore() {
	if a.depth == 0 {
		Logger().Warn("surface: restore without matching save ignored")
		return
	}
	a.depth--
	if a.caps.ExtendedState {
		a.native.Restore()
		return
	}
	top := a.saved[len(a.saved)-1]
	a.saved = a.saved[:len(a.saved)-1]
	a.setExtended(top)
	a.native.Restore()
}

func (a *Adapter) Translate(x, y float64) { a.native.Translate(x, y) }
func (a *Adapter) Scale(x, y float64)     { a.native.Scale(x, y) }
func (a *Adapter) Rotate(angle float64)   { a.native.Rotate(angle) }
func (a *Adapter) Transform(m Matrix)     { a.native.Transform(m) }
func (a *Adapter) SetTransform(m Matrix)  { a.native.SetTransform(m) }
func (a *Adapter) BeginPath()             { a.native.BeginPath() }
func (a *Adapter) ClosePath()             { a.native.ClosePath() }
func (a *Adapter) Clip()                  { a.native.Clip() }
func (a *Adapter) Fill()                  { a.native.Fill() }

// crisp reports whether geometry must be snapped in software.
func (a *Adapter) crisp() bool {
	return !a.caps.Crisp && a.extended().UseCrispLines
}

// softDash reports whether lines must be rasterized in software.
func (a *Adapter) softDash() bool {
	return !a.caps.Dash && a.extended().LineStyle == LineStyleDashed
}

// syncDash hands the line style to natives that dash themselves.
func (a *Adapter) syncDash() {
	if !a.caps.Dash {
		return
	}
	d := a.native.(Dasher)
	if a.extended().LineStyle == LineStyleDashed {
		d.SetLineDash(nativeDash)
	} else {
		d.SetLineDash(nil)
	}
}

func (a *Adapter) snapPoint(x, y float64) (float64, float64) {
	if !a.crisp() {
		return x, y
	}
	w := a.native.Style().LineWidth
	return Snap(x, w), Snap(y, w)
}

func (a *Adapter) snapRect(x, y, w, h float64) (float64, float64, float64, float64) {
	if !a.crisp() {
		return x, y, w, h
	}
	return SnapRect(x, y, w, h, a.native.Style().LineWidth)
}

// MoveTo moves the pen.
func (a *Adapter) MoveTo(x, y float64) {
	x, y = a.snapPoint(x, y)
	a.native.MoveTo(x, y)
	a.penX, a.penY = x, y
}

// LineTo draws to (x, y), rasterizing dashes itself when the native
// cannot.
func (a *Adapter) LineTo(x, y float64) {
	x, y = a.snapPoint(x, y)
	if a.softDash() {
		a.dashedLine(a.penX, a.penY, x, y)
	} else {
		a.native.LineTo(x, y)
	}
	a.penX, a.penY = x, y
}

func (a *Adapter) QuadraticCurveTo(cpx, cpy, x, y float64) {
	a.native.QuadraticCurveTo(cpx, cpy, x, y)
	a.penX, a.penY = x, y
}

func (a *Adapter) BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64) {
	a.native.BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y)
	a.penX, a.penY = x, y
}

func (a *Adapter) Arc(x, y, radius, startAngle, endAngle float64, anticlockwise bool) {
	a.native.Arc(x, y, radius, startAngle, endAngle, anticlockwise)
}

// Rect adds a rectangle to the path.
func (a *Adapter) Rect(x, y, w, h float64) {
	x, y, w, h = a.snapRect(x, y, w, h)
	a.native.Rect(x, y, w, h)
}

// Stroke strokes the current path.
func (a *Adapter) Stroke() {
	a.syncDash()
	a.native.Stroke()
}

// FillRect fills a rectangle.
func (a *Adapter) FillRect(x, y, w, h float64) {
	a.native.FillRect(x, y, w, h)
}

// StrokeRect strokes a rectangle.
func (a *Adapter) StrokeRect(x, y, w, h float64) {
	x, y, w, h = a.snapRect(x, y, w, h)
	if a.softDash() {
		a.dashedRect(x, y, w, h)
		return
	}
	a.syncDash()
	a.native.StrokeRect(x, y, w, h)
}

// ClearRect clears a rectangle.
func (a *Adapter) ClearRect(x, y, w, h float64) {
	a.native.ClearRect(x, y, w, h)
}

// FillStrokeRect fills, then strokes a rectangle.
func (a *Adapter) FillStrokeRect(x, y, w, h float64) {
	a.FillRect(x, y, w, h)
	a.StrokeRect(x, y, w, h)
}

// Clear clears the whole surface.
func (a *Adapter) Clear() {
	a.ClearRect(0, 0, float64(a.Width()), float64(a.Height()))
}

// dashedLine plots a dashed line pixel by pixel. Pixels in the gaps are
// painted in the background colour. Pending strokes are flushed first and
// the pen is left at the end point.
func (a *Adapter) dashedLine(x1, y1, x2, y2 float64) {
	n := a.native
	n.Stroke()
	n.BeginPath()

	orig := n.Style()
	st := orig
	current := ""
	Bresenham(x1, y1, x2, y2, func(x, y, i int) {
		c := a.opts.Background
		if DashOn(i) {
			c = orig.StrokeStyle
		}
		if c != current {
			st.FillStyle = c
			n.SetStyle(st)
			current = c
		}
		n.FillRect(float64(x), float64(y), 1, 1)
	})
	n.SetStyle(orig)
	n.MoveTo(x2, y2)
}

func (a *Adapter) dashedRect(x, y, w, h float64) {
	a.dashedLine(x, y, x+w, y)
	a.dashedLine(x+w, y, x+w, y+h)
	a.dashedLine(x+w, y+h, x, y+h)
	a.dashedLine(x, y+h, x, y)
	a.penX, a.penY = x, y
}

// MeasureText returns the advance width of s.
func (a *Adapter) MeasureText(s string) float64 {
	return a.text.measure(a, s).Width
}

// Metrics returns the full metrics of s.
func (a *Adapter) Metrics(s string) TextMetrics {
	return a.text.measure(a, s)
}

// FontSize returns the size of the current font.
func (a *Adapter) FontSize() float64 {
	return FontSize(a.native.Style().Font)
}

// FillText fills s and decorates it.
func (a *Adapter) FillText(s string, x, y, maxWidth float64) {
	x = a.adjustToAlignment(x, s)
	if maxWidth <= 0 {
		maxWidth = a.MeasureText(s)
	}
	a.text.fill(a, s, x, y)
	a.decorateText(s, x, y, maxWidth)
}

// StrokeText strokes s and decorates it.
func (a *Adapter) StrokeText(s string, x, y, maxWidth float64) {
	x = a.adjustToAlignment(x, s)
	if maxWidth <= 0 {
		maxWidth = a.MeasureText(s)
	}
	a.text.stroke(a, s, x, y)
	a.decorateText(s, x, y, maxWidth)
}

func (a *Adapter) FillTextCenter(s string, x, y, maxWidth float64) {
	a.FillText(s, x-a.MeasureText(s)/2, y, maxWidth)
}

func (a *Adapter) FillTextRight(s string, x, y, maxWidth float64) {
	a.FillText(s, x-a.MeasureText(s), y, maxWidth)
}

func (a *Adapter) StrokeTextCenter(s string, x, y, maxWidth float64) {
	a.StrokeText(s, x-a.MeasureText(s)/2, y, maxWidth)
}

func (a *Adapter) StrokeTextRight(s string, x, y, maxWidth float64) {
	a.StrokeText(s, x-a.MeasureText(s), y, maxWidth)
}
