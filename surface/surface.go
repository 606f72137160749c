// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"reflect"
	"sync"
)

// Native is a native 2D drawing context.
//
// It is the smallest operation set every backend must provide. Anything a
// backend can do beyond it is advertised through the optional interfaces
// below and discovered once when an Adapter is created.
//
// Natives are NOT thread-safe.
type Native interface {
	// Width returns the surface width in pixels.
	Width() int

	// Height returns the surface height in pixels.
	Height() int

	// Style returns the current native paint state.
	Style() Style

	// SetStyle replaces the native paint state.
	SetStyle(s Style)

	// Save pushes the native paint state, transform and clip.
	Save()

	// Restore pops what Save pushed. Restore without Save is a no-op.
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

	// Fill and Stroke paint the current path without consuming it.
	Fill()
	Stroke()
	Clip()

	// FillRect, StrokeRect and ClearRect paint directly and leave the
	// current path untouched.
	FillRect(x, y, w, h float64)
	StrokeRect(x, y, w, h float64)
	ClearRect(x, y, w, h float64)
}

// Dasher is implemented by natives that stroke dashed lines themselves.
type Dasher interface {
	Native

	// SetLineDash sets the dash pattern; nil or empty means solid.
	SetLineDash(pattern []float64)
}

// Crisper is implemented by natives with their own pixel alignment.
type Crisper interface {
	Native

	// SetCrispEdges enables or disables pixel-exact geometry.
	SetCrispEdges(enabled bool)
}

// TextMeasurer is implemented by natives that measure text.
type TextMeasurer interface {
	Native

	// MeasureText measures s in the current font.
	MeasureText(s string) TextMetrics
}

// TextPainter is implemented by natives that paint text.
type TextPainter interface {
	Native

	// FillText fills s with its baseline origin at (x, y).
	FillText(s string, x, y float64)

	// StrokeText strokes s with its baseline origin at (x, y).
	StrokeText(s string, x, y float64)
}

// ExtendedStater is implemented by natives that keep the extended
// properties in their own save/restore stack.
type ExtendedStater interface {
	Native

	Extended() Extended
	SetExtended(e Extended)
}

// CapableNative is implemented by natives that declare their
// capabilities explicitly instead of having them probed.
type CapableNative interface {
	Native

	Capabilities() Capabilities
}

// Capabilities describes which optional features a native provides.
type Capabilities struct {
	// Dash indicates native dashed lines (Dasher).
	Dash bool

	// Crisp indicates native pixel alignment (Crisper).
	Crisp bool

	// TextMetrics indicates native text measuring (TextMeasurer).
	TextMetrics bool

	// TextPaint indicates native text painting (TextPainter).
	TextPaint bool

	// ExtendedState indicates the native saves extended properties
	// (ExtendedStater).
	ExtendedState bool
}

// TextTier names the text strategy selected for a capability set.
type TextTier uint8

const (
	// TextTierFull uses native metrics and native painting.
	TextTierFull TextTier = iota

	// TextTierTransitional paints natively but measures in software.
	TextTierTransitional

	// TextTierGlyph strokes glyph outlines through path operations.
	TextTierGlyph
)

// String implements fmt.Stringer.
func (t TextTier) String() string {
	switch t {
	case TextTierFull:
		return "full"
	case TextTierTransitional:
		return "transitional"
	case TextTierGlyph:
		return "glyph"
	default:
		return "unknown"
	}
}

// TextTier returns the text strategy these capabilities call for.
func (c Capabilities) TextTier() TextTier {
	switch {
	case c.TextPaint && c.TextMetrics:
		return TextTierFull
	case c.TextPaint:
		return TextTierTransitional
	default:
		return TextTierGlyph
	}
}

// probed caches capability probes per concrete native type.
var probed sync.Map // reflect.Type -> Capabilities

// Probe reports the capabilities of n.
//
// Natives implementing CapableNative answer for themselves, limited to the
// interfaces they implement; all others are
// probed through interface conformance. Probing happens once per concrete
// type for the life of the process.
func Probe(n Native) Capabilities {
	if cn, ok := n.(CapableNative); ok {
		return restrict(n, cn.Capabilities())
	}

	t := reflect.TypeOf(n)
	if c, ok := probed.Load(t); ok {
		return c.(Capabilities)
	}

	var c Capabilities
	_, c.Dash = n.(Dasher)
	_, c.Crisp = n.(Crisper)
	_, c.TextMetrics = n.(TextMeasurer)
	_, c.TextPaint = n.(TextPainter)
	_, c.ExtendedState = n.(ExtendedStater)

	actual, _ := probed.LoadOrStore(t, c)
	Logger().Debug("surface: probed native capabilities",
		"type", t.String(),
		"dash", c.Dash,
		"crisp", c.Crisp,
		"text", c.TextTier().String(),
		"extendedState", c.ExtendedState)
	return actual.(Capabilities)
}

// restrict drops capabilities the native cannot back with an interface.
func restrict(n Native, c Capabilities) Capabilities {
	if _, ok := n.(Dasher); !ok {
		c.Dash = false
	}
	if _, ok := n.(Crisper); !ok {
		c.Crisp = false
	}
	if _, ok := n.(TextMeasurer); !ok {
		c.TextMetrics = false
	}
	if _, ok := n.(TextPainter); !ok {
		c.TextPaint = false
	}
	if _, ok := n.(ExtendedStater); !ok {
		c.ExtendedState = false
	}
	return c
}
