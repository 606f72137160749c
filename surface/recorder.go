// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"fmt"
	"strings"
)

// Op identifies a recorded native operation.
type Op uint8

const (
	// State
	OpSave Op = iota
	OpRestore
	OpTransform
	OpSetTransform

	// Path
	OpBeginPath
	OpClosePath
	OpMoveTo
	OpLineTo
	OpQuadTo
	OpCubicTo
	OpArc
	OpRect

	// Paint
	OpFill
	OpStroke
	OpClip
	OpFillRect
	OpStrokeRect
	OpClearRect
	OpFillText
	OpStrokeText

	// Optional capabilities
	OpSetLineDash
	OpSetCrispEdges
)

var opNames = [...]string{
	OpSave:          "Save",
	OpRestore:       "Restore",
	OpTransform:     "Transform",
	OpSetTransform:  "SetTransform",
	OpBeginPath:     "BeginPath",
	OpClosePath:     "ClosePath",
	OpMoveTo:        "MoveTo",
	OpLineTo:        "LineTo",
	OpQuadTo:        "QuadTo",
	OpCubicTo:       "CubicTo",
	OpArc:           "Arc",
	OpRect:          "Rect",
	OpFill:          "Fill",
	OpStroke:        "Stroke",
	OpClip:          "Clip",
	OpFillRect:      "FillRect",
	OpStrokeRect:    "StrokeRect",
	OpClearRect:     "ClearRect",
	OpFillText:      "FillText",
	OpStrokeText:    "StrokeText",
	OpSetLineDash:   "SetLineDash",
	OpSetCrispEdges: "SetCrispEdges",
}

// String implements fmt.Stringer.
func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return "Unknown"
}

// Command is one recorded operation together with the paint state at the
// time it was issued.
type Command struct {
	Op   Op
	Args []float64
	Text string

	Style Style
	Dash  []float64
}

// String renders the command compactly, e.g. "FillRect(1,2,3,4)".
func (c Command) String() string {
	var b strings.Builder
	b.WriteString(c.Op.String())
	b.WriteByte('(')
	for i, a := range c.Args {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%g", a)
	}
	if c.Text != "" {
		if len(c.Args) > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%q", c.Text)
	}
	b.WriteByte(')')
	return b.String()
}

// Recorder is a native that records operations instead of drawing them.
//
// It implements every optional interface but declares only the
// capabilities it was created with, so one type can stand in for natives
// of any capability level.
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	width, height int
	caps          Capabilities

	style    Style
	ext      Extended
	dash     []float64
	stack    []recorderState
	commands []Command
}

type recorderState struct {
	style Style
	ext   Extended
	dash  []float64
}

var (
	_ CapableNative  = (*Recorder)(nil)
	_ Dasher         = (*Recorder)(nil)
	_ Crisper        = (*Recorder)(nil)
	_ TextMeasurer   = (*Recorder)(nil)
	_ TextPainter    = (*Recorder)(nil)
	_ ExtendedStater = (*Recorder)(nil)
)

// NewRecorder creates a recorder of the given size declaring caps.
func NewRecorder(width, height int, caps Capabilities) *Recorder {
	return &Recorder{
		width:  width,
		height: height,
		caps:   caps,
		style:  DefaultStyle(),
		ext:    DefaultExtended(),
	}
}

// Commands returns the recorded commands.
func (r *Recorder) Commands() []Command { return r.commands }

// Reset drops all recorded commands. The paint state is kept.
func (r *Recorder) Reset() { r.commands = r.commands[:0] }

// Filter returns the recorded commands with the given ops.
func (r *Recorder) Filter(ops ...Op) []Command {
	var out []Command
	for _, c := range r.commands {
		for _, op := range ops {
			if c.Op == op {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// Count returns how many commands with op were recorded.
func (r *Recorder) Count(op Op) int {
	return len(r.Filter(op))
}

func (r *Recorder) record(op Op, text string, args ...float64) {
	r.commands = append(r.commands, Command{
		Op:    op,
		Args:  args,
		Text:  text,
		Style: r.style,
		Dash:  r.dash,
	})
}

func (r *Recorder) Capabilities() Capabilities { return r.caps }

func (r *Recorder) Width() int  { return r.width }
func (r *Recorder) Height() int { return r.height }

func (r *Recorder) Style() Style     { return r.style }
func (r *Recorder) SetStyle(s Style) { r.style = s }

func (r *Recorder) Save() {
	r.stack = append(r.stack, recorderState{style: r.style, ext: r.ext, dash: r.dash})
	r.record(OpSave, "")
}

func (r *Recorder) Restore() {
	r.record(OpRestore, "")
	if len(r.stack) == 0 {
		return
	}
	top := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	r.style, r.dash = top.style, top.dash
	if r.caps.ExtendedState {
		r.ext = top.ext
	}
}

func (r *Recorder) Translate(x, y float64) { r.Transform(TranslateMatrix(x, y)) }
func (r *Recorder) Scale(x, y float64)     { r.Transform(ScaleMatrix(x, y)) }
func (r *Recorder) Rotate(angle float64)   { r.Transform(RotateMatrix(angle)) }

func (r *Recorder) Transform(m Matrix) {
	r.record(OpTransform, "", m.A, m.B, m.C, m.D, m.E, m.F)
}

func (r *Recorder) SetTransform(m Matrix) {
	r.record(OpSetTransform, "", m.A, m.B, m.C, m.D, m.E, m.F)
}

func (r *Recorder) BeginPath()          { r.record(OpBeginPath, "") }
func (r *Recorder) ClosePath()          { r.record(OpClosePath, "") }
func (r *Recorder) MoveTo(x, y float64) { r.record(OpMoveTo, "", x, y) }
func (r *Recorder) LineTo(x, y float64) { r.record(OpLineTo, "", x, y) }

func (r *Recorder) QuadraticCurveTo(cpx, cpy, x, y float64) {
	r.record(OpQuadTo, "", cpx, cpy, x, y)
}

func (r *Recorder) BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64) {
	r.record(OpCubicTo, "", cp1x, cp1y, cp2x, cp2y, x, y)
}

func (r *Recorder) Arc(x, y, radius, startAngle, endAngle float64, anticlockwise bool) {
	ccw := 0.0
	if anticlockwise {
		ccw = 1
	}
	r.record(OpArc, "", x, y, radius, startAngle, endAngle, ccw)
}

func (r *Recorder) Rect(x, y, w, h float64) { r.record(OpRect, "", x, y, w, h) }

func (r *Recorder) Fill()   { r.record(OpFill, "") }
func (r *Recorder) Stroke() { r.record(OpStroke, "") }
func (r *Recorder) Clip()   { r.record(OpClip, "") }

func (r *Recorder) FillRect(x, y, w, h float64)   { r.record(OpFillRect, "", x, y, w, h) }
func (r *Recorder) StrokeRect(x, y, w, h float64) { r.record(OpStrokeRect, "", x, y, w, h) }
func (r *Recorder) ClearRect(x, y, w, h float64)  { r.record(OpClearRect, "", x, y, w, h) }

func (r *Recorder) SetLineDash(pattern []float64) {
	r.dash = append(r.dash[:0:0], pattern...)
	r.record(OpSetLineDash, "", pattern...)
}

func (r *Recorder) SetCrispEdges(enabled bool) {
	v := 0.0
	if enabled {
		v = 1
	}
	r.record(OpSetCrispEdges, "", v)
}

// MeasureText measures with the Go fonts, so every text tier of a
// recorder reports the same widths.
func (r *Recorder) MeasureText(s string) TextMetrics {
	return sfntMeasurer{}.measure(s, ParseFont(r.style.Font))
}

func (r *Recorder) FillText(s string, x, y float64)   { r.record(OpFillText, s, x, y) }
func (r *Recorder) StrokeText(s string, x, y float64) { r.record(OpStrokeText, s, x, y) }

func (r *Recorder) Extended() Extended     { return r.ext }
func (r *Recorder) SetExtended(e Extended) { r.ext = e }
