// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// textMeasurer measures text in software.
type textMeasurer interface {
	measure(s string, f Font) TextMetrics
}

// textTier paints and measures text for one capability level. Painting
// always starts at the left edge; alignment and decoration are applied by
// the Adapter on top of every tier.
type textTier interface {
	tier() TextTier
	measure(a *Adapter, s string) TextMetrics
	fill(a *Adapter, s string, x, y float64)
	stroke(a *Adapter, s string, x, y float64)
}

// fullText relies on the native for both metrics and painting.
type fullText struct{}

func (fullText) tier() TextTier { return TextTierFull }

func (fullText) measure(a *Adapter, s string) TextMetrics {
	return a.native.(TextMeasurer).MeasureText(s)
}

func (fullText) fill(a *Adapter, s string, x, y float64) {
	a.native.(TextPainter).FillText(s, x, y)
}

func (fullText) stroke(a *Adapter, s string, x, y float64) {
	a.native.(TextPainter).StrokeText(s, x, y)
}

// transitionalText paints natively and measures in software.
type transitionalText struct {
	m textMeasurer
}

func (transitionalText) tier() TextTier { return TextTierTransitional }

func (t transitionalText) measure(a *Adapter, s string) TextMetrics {
	return t.m.measure(s, ParseFont(a.native.Style().Font))
}

func (transitionalText) fill(a *Adapter, s string, x, y float64) {
	a.native.(TextPainter).FillText(s, x, y)
}

func (transitionalText) stroke(a *Adapter, s string, x, y float64) {
	a.native.(TextPainter).StrokeText(s, x, y)
}

// glyphText strokes glyph outlines. Filling and stroking look the same:
// the outline is stroked in the fill colour with a 1px solid pen.
type glyphText struct{}

func (glyphText) tier() TextTier { return TextTierGlyph }

func (glyphText) measure(a *Adapter, s string) TextMetrics {
	return sfntMeasurer{}.measure(s, ParseFont(a.native.Style().Font))
}

func (g glyphText) fill(a *Adapter, s string, x, y float64) {
	g.stroke(a, s, x, y)
}

func (glyphText) stroke(a *Adapter, s string, x, y float64) {
	n := a.native
	n.Save()
	st := n.Style()
	st.StrokeStyle = st.FillStyle
	st.LineWidth = 1
	n.SetStyle(st)
	if a.caps.Dash {
		n.(Dasher).SetLineDash(nil)
	}

	n.BeginPath()
	if err := glyphOutlines(nativeSink{n}, s, ParseFont(st.Font), x, y); err != nil {
		Logger().Warn("surface: glyph outlines unavailable", "err", err)
	}
	n.Stroke()
	n.BeginPath()
	n.Restore()
}

// nativeSink adapts a Native to PathSink.
type nativeSink struct {
	n Native
}

func (s nativeSink) MoveTo(x, y float64) { s.n.MoveTo(x, y) }
func (s nativeSink) LineTo(x, y float64) { s.n.LineTo(x, y) }
func (s nativeSink) QuadTo(cx, cy, x, y float64) {
	s.n.QuadraticCurveTo(cx, cy, x, y)
}
func (s nativeSink) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	s.n.BezierCurveTo(c1x, c1y, c2x, c2y, x, y)
}
func (s nativeSink) ClosePath() { s.n.ClosePath() }

// newTextTier picks the strategy for the given capabilities.
func newTextTier(c Capabilities, shaper string) textTier {
	switch c.TextTier() {
	case TextTierFull:
		return fullText{}
	case TextTierTransitional:
		if shaper == "sfnt" {
			return transitionalText{m: sfntMeasurer{}}
		}
		return transitionalText{m: newShapingMeasurer()}
	default:
		return glyphText{}
	}
}

// Text decorations.
const (
	DecorationUnderline   = "underline"
	DecorationOverline    = "overline"
	DecorationLineThrough = "line-through"
)

// foldCase lower-cases s. A cases.Caser keeps state, so each call gets its own.
func foldCase(s string) string {
	return cases.Lower(language.Und).String(s)
}

// DecorationWords splits a text-decoration value into the distinct known
// decorations it requests, in order. Unknown words are dropped.
func DecorationWords(decoration string) []string {
	var words []string
	seen := make(map[string]bool)
	for _, w := range strings.Fields(foldCase(decoration)) {
		switch w {
		case DecorationUnderline, DecorationOverline, DecorationLineThrough:
			if !seen[w] {
				seen[w] = true
				words = append(words, w)
			}
		}
	}
	return words
}

// decorationOffset returns the vertical offset of a decoration line from
// the baseline for a font of the given size.
func decorationOffset(word string, size float64) float64 {
	switch word {
	case DecorationUnderline:
		return 3
	case DecorationOverline:
		return -size
	default: // line-through
		return -size/2 + 2
	}
}

// adjustToAlignment moves x from the anchor to the left edge of the text.
func (a *Adapter) adjustToAlignment(x float64, s string) float64 {
	switch a.native.Style().TextAlign {
	case "center":
		return x - a.MeasureText(s)/2
	case "right", "end":
		return x - a.MeasureText(s)
	}
	return x
}

// decorateText draws one crisp stroked line per requested decoration.
func (a *Adapter) decorateText(s string, x, y, maxWidth float64) {
	words := DecorationWords(a.extended().TextDecoration)
	if len(words) == 0 {
		return
	}

	a.Save()
	ext := a.extended()
	ext.UseCrispLines = true
	a.setExtended(ext)

	size := a.FontSize()
	for _, w := range words {
		length := a.MeasureText(s)
		if maxWidth > 0 && length > maxWidth {
			length = maxWidth
		}
		dy := decorationOffset(w, size)
		a.BeginPath()
		a.MoveTo(x, y+dy)
		a.LineTo(x+length, y+dy)
		a.Stroke()
		a.ClosePath()
	}
	a.Restore()
}
