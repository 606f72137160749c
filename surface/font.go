// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"strconv"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// defaultFontSize is used when a font string carries no size.
const defaultFontSize = 10

// Font is a parsed CSS-like font shorthand such as "bold 12pt Sans-Serif".
type Font struct {
	// Size is the numeric size as written; pt and px are treated alike.
	Size   float64
	Unit   string
	Bold   bool
	Italic bool
	Family string
}

// ParseFont parses a font shorthand. Unknown words become part of the
// family; a missing size yields the default of 10.
func ParseFont(s string) Font {
	f := Font{Size: defaultFontSize, Unit: "pt"}
	var family []string
	sized := false
	for _, word := range strings.Fields(s) {
		lw := strings.ToLower(word)
		switch lw {
		case "bold", "bolder":
			f.Bold = true
			continue
		case "italic", "oblique":
			f.Italic = true
			continue
		case "normal":
			continue
		}
		if !sized {
			if size, unit, ok := parseFontSize(lw); ok {
				f.Size, f.Unit = size, unit
				sized = true
				continue
			}
		}
		family = append(family, word)
	}
	f.Family = strings.Join(family, " ")
	return f
}

// FontSize returns the size of a font shorthand, like parseInt on it.
func FontSize(s string) float64 {
	return ParseFont(s).Size
}

func parseFontSize(w string) (float64, string, bool) {
	end := 0
	for end < len(w) && (w[end] >= '0' && w[end] <= '9' || w[end] == '.') {
		end++
	}
	if end == 0 {
		return 0, "", false
	}
	size, err := strconv.ParseFloat(w[:end], 64)
	if err != nil || size <= 0 {
		return 0, "", false
	}
	unit := w[end:]
	switch unit {
	case "", "px", "pt":
	default:
		return 0, "", false
	}
	if unit == "" {
		unit = "px"
	}
	return size, unit, true
}

// TTF returns the Go font matching the family and weight.
func (f Font) TTF() []byte {
	fam := strings.ToLower(f.Family)
	switch {
	case strings.Contains(fam, "mono") || strings.Contains(fam, "courier"):
		return gomono.TTF
	case f.Bold && f.Italic:
		return gobolditalic.TTF
	case f.Bold:
		return gobold.TTF
	case f.Italic:
		return goitalic.TTF
	default:
		return goregular.TTF
	}
}
