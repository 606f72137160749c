// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"bytes"
	"sync"

	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
)

// shapingMeasurer measures text with HarfBuzz shaping, so kerning and
// ligatures are reflected in the width. Vertical metrics come from sfnt.
type shapingMeasurer struct {
	mu     sync.Mutex
	fonts  map[*byte]*gotext.Font
	shaper shaping.HarfbuzzShaper
}

func newShapingMeasurer() *shapingMeasurer {
	return &shapingMeasurer{fonts: make(map[*byte]*gotext.Font)}
}

func (m *shapingMeasurer) font(f Font) (*gotext.Font, error) {
	data := f.TTF()
	key := &data[0]
	if parsed, ok := m.fonts[key]; ok {
		return parsed, nil
	}
	face, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	m.fonts[key] = face.Font
	return face.Font, nil
}

func (m *shapingMeasurer) measure(s string, f Font) TextMetrics {
	metrics := sfntMeasurer{}.measure("", f)
	if s == "" {
		return metrics
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	parsed, err := m.font(f)
	if err != nil {
		Logger().Warn("surface: shaping font unavailable, using sfnt advances", "err", err)
		return sfntMeasurer{}.measure(s, f)
	}

	runes := []rune(s)
	script := language.Latin
	for _, r := range runes {
		if r != ' ' {
			script = language.LookupScript(r)
			break
		}
	}

	out := m.shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      gotext.NewFace(parsed),
		Size:      toFixed(f.Size),
		Script:    script,
		Language:  language.NewLanguage("en"),
	})
	metrics.Width = fromFixed(out.Advance)
	return metrics
}
