// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// sfntFonts caches parsed Go fonts by their data identity.
var sfntFonts struct {
	mu    sync.Mutex
	fonts map[*byte]*sfnt.Font
}

// loadSFNT parses (once) the Go font selected by f.
func loadSFNT(f Font) (*sfnt.Font, error) {
	data := f.TTF()
	key := &data[0]

	sfntFonts.mu.Lock()
	defer sfntFonts.mu.Unlock()
	if parsed, ok := sfntFonts.fonts[key]; ok {
		return parsed, nil
	}
	parsed, err := sfnt.Parse(data)
	if err != nil {
		return nil, err
	}
	if sfntFonts.fonts == nil {
		sfntFonts.fonts = make(map[*byte]*sfnt.Font)
	}
	sfntFonts.fonts[key] = parsed
	return parsed, nil
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// sfntMeasurer measures with glyph advances and kerning from sfnt.
type sfntMeasurer struct{}

func (sfntMeasurer) measure(s string, f Font) TextMetrics {
	sf, err := loadSFNT(f)
	if err != nil {
		Logger().Warn("surface: font unavailable for measuring", "err", err)
		return TextMetrics{}
	}
	var buf sfnt.Buffer
	ppem := toFixed(f.Size)

	var m TextMetrics
	if fm, err := sf.Metrics(&buf, ppem, font.HintingNone); err == nil {
		m.Ascent = fromFixed(fm.Ascent)
		m.Descent = fromFixed(fm.Descent)
	}

	var width fixed.Int26_6
	prev, hasPrev := sfnt.GlyphIndex(0), false
	for _, r := range s {
		idx, err := sf.GlyphIndex(&buf, r)
		if err != nil || idx == 0 {
			continue
		}
		if hasPrev {
			if k, err := sf.Kern(&buf, prev, idx, ppem, font.HintingNone); err == nil {
				width += k
			}
		}
		adv, err := sf.GlyphAdvance(&buf, idx, ppem, font.HintingNone)
		if err != nil {
			continue
		}
		width += adv
		prev, hasPrev = idx, true
	}
	m.Width = fromFixed(width)
	return m
}

// glyphOutlines feeds the outlines of s, baseline origin at (x, y), to
// sink. It is the renderer of last resort for natives without any text
// support: the outlines are stroked like any other path.
func glyphOutlines(sink PathSink, s string, f Font, x, y float64) error {
	sf, err := loadSFNT(f)
	if err != nil {
		return err
	}
	var buf sfnt.Buffer
	ppem := toFixed(f.Size)

	pen := x
	prev, hasPrev := sfnt.GlyphIndex(0), false
	for _, r := range s {
		idx, err := sf.GlyphIndex(&buf, r)
		if err != nil || idx == 0 {
			continue
		}
		if hasPrev {
			if k, err := sf.Kern(&buf, prev, idx, ppem, font.HintingNone); err == nil {
				pen += fromFixed(k)
			}
		}

		segs, err := sf.LoadGlyph(&buf, idx, ppem, nil)
		if err != nil && !errors.Is(err, sfnt.ErrNotFound) {
			return err
		}
		emitSegments(sink, segs, pen, y)

		adv, err := sf.GlyphAdvance(&buf, idx, ppem, font.HintingNone)
		if err == nil {
			pen += fromFixed(adv)
		}
		prev, hasPrev = idx, true
	}
	return nil
}

// emitSegments replays sfnt segments (y pointing down) at an origin.
func emitSegments(sink PathSink, segs sfnt.Segments, ox, oy float64) {
	pt := func(p fixed.Point26_6) (float64, float64) {
		return ox + fromFixed(p.X), oy + fromFixed(p.Y)
	}
	open := false
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				sink.ClosePath()
			}
			sink.MoveTo(pt(seg.Args[0]))
			open = true
		case sfnt.SegmentOpLineTo:
			sink.LineTo(pt(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			cx, cy := pt(seg.Args[0])
			x, y := pt(seg.Args[1])
			sink.QuadTo(cx, cy, x, y)
		case sfnt.SegmentOpCubeTo:
			c1x, c1y := pt(seg.Args[0])
			c2x, c2y := pt(seg.Args[1])
			x, y := pt(seg.Args[2])
			sink.CubicTo(c1x, c1y, c2x, c2y, x, y)
		}
	}
	if open {
		sink.ClosePath()
	}
}
