// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"math"

	"github.com/gogpu/gpucontext"
)

// Line styles understood by the adapter.
const (
	LineStyleSolid  = "solid"
	LineStyleDashed = "dashed"
)

// Style is the paint state tracked natively by every surface.
// Colours and fonts are kept in their textual form, the way diagram
// descriptions carry them; natives resolve them with ParseColor and
// ParseFont when they paint.
type Style struct {
	GlobalAlpha              float64
	GlobalCompositeOperation string

	StrokeStyle string
	FillStyle   string

	LineWidth  float64
	LineCap    string
	LineJoin   string
	MiterLimit float64

	ShadowOffsetX float64
	ShadowOffsetY float64
	ShadowBlur    float64
	ShadowColor   string

	Font         string
	TextAlign    string
	TextBaseline string
}

// Extended is the paint state no native surface tracks across
// save/restore on its own. The adapter snapshots it manually.
type Extended struct {
	// LineStyle is "solid" or "dashed".
	LineStyle string

	// UseCrispLines snaps geometry to the device pixel grid.
	UseCrispLines bool

	// TextDecoration is a space separated list of
	// "underline", "overline" and "line-through".
	TextDecoration string
}

// State is the complete paint state exposed by a Canvas.
type State struct {
	Style
	Extended
}

// DefaultStyle returns the native paint state every new surface starts with.
func DefaultStyle() Style {
	return Style{
		GlobalAlpha:              1,
		GlobalCompositeOperation: "source-over",
		StrokeStyle:              "black",
		FillStyle:                "black",
		LineWidth:                1,
		LineCap:                  "butt",
		LineJoin:                 "miter",
		MiterLimit:               10,
		ShadowColor:              "rgba(0,0,0,0.0)",
		Font:                     "10pt Sans-Serif",
		TextAlign:                "left",
		TextBaseline:             "alphabetic",
	}
}

// DefaultExtended returns the initial extended state.
func DefaultExtended() Extended {
	return Extended{
		LineStyle:      LineStyleSolid,
		UseCrispLines:  true,
		TextDecoration: "none",
	}
}

// DefaultState combines DefaultStyle and DefaultExtended.
func DefaultState() State {
	return State{Style: DefaultStyle(), Extended: DefaultExtended()}
}

// Point is a 2D point.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Matrix is a 2D affine transform in canvas order:
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{A: 1, D: 1}
}

// Multiply returns m × n (n applied first).
func (m Matrix) Multiply(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// Apply transforms a point.
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// TranslateMatrix returns a translation.
func TranslateMatrix(x, y float64) Matrix {
	return Matrix{A: 1, D: 1, E: x, F: y}
}

// ScaleMatrix returns a scale.
func ScaleMatrix(x, y float64) Matrix {
	return Matrix{A: x, D: y}
}

// RotateMatrix returns a rotation by angle radians.
func RotateMatrix(angle float64) Matrix {
	s, c := math.Sincos(angle)
	return Matrix{A: c, B: s, C: -s, D: c}
}

// TextMetrics is the result of measuring a string.
type TextMetrics struct {
	// Width is the advance width of the text.
	Width float64

	// Ascent and Descent are positive distances from the baseline.
	Ascent  float64
	Descent float64
}

// Options configures an Adapter or a native created through the registry.
type Options struct {
	// Width and Height size natives created through the registry.
	Width  int
	Height int

	// Background is the gap colour of software-dashed lines and the
	// colour Clear paints. Defaults to "white".
	Background string

	// Capabilities, when non-nil, replaces probing.
	Capabilities *Capabilities

	// Shaper selects the measurer of the transitional text tier:
	// "harfbuzz" (default) or "sfnt".
	Shaper string

	// Provider supplies the GPU device for the "gpu" backend.
	Provider gpucontext.DeviceProvider
}

// DefaultOptions returns default options for the given size.
func DefaultOptions(width, height int) Options {
	return Options{
		Width:      width,
		Height:     height,
		Background: "white",
		Shaper:     "harfbuzz",
	}
}

// Option configures an Adapter.
type Option func(*Options)

// WithBackground sets the gap/background colour.
func WithBackground(c string) Option {
	return func(o *Options) {
		o.Background = c
	}
}

// WithCapabilities forces a capability set instead of probing the native.
// Use this to pick the drawing strategies explicitly.
func WithCapabilities(c Capabilities) Option {
	return func(o *Options) {
		o.Capabilities = &c
	}
}

// WithProvider sets the GPU device provider used by the "gpu" backend.
func WithProvider(p gpucontext.DeviceProvider) Option {
	return func(o *Options) {
		o.Provider = p
	}
}

// WithShaper selects the text measurer used by the transitional tier.
func WithShaper(name string) Option {
	return func(o *Options) {
		o.Shaper = name
	}
}
