// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ErrInvalidColor is returned by ParseColor for unparseable input.
var ErrInvalidColor = errors.New("surface: invalid color")

// ParseColor resolves a CSS-style colour: a named colour ("black",
// "steelblue", "transparent"), "#rgb", "#rgba", "#rrggbb", "#rrggbbaa",
// "rgb(r,g,b)" or "rgba(r,g,b,a)" with a in [0, 1].
func ParseColor(s string) (color.NRGBA, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == "":
		return color.NRGBA{}, fmt.Errorf("%w: empty", ErrInvalidColor)
	case v == "transparent" || v == "none":
		return color.NRGBA{}, nil
	case v[0] == '#':
		return parseHexColor(v[1:], s)
	case strings.HasPrefix(v, "rgba(") || strings.HasPrefix(v, "rgb("):
		return parseFuncColor(v, s)
	}
	if c, ok := colornames.Map[v]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

// MustParseColor is like ParseColor but returns opaque black on error.
func MustParseColor(s string) color.NRGBA {
	c, err := ParseColor(s)
	if err != nil {
		return color.NRGBA{A: 0xff}
	}
	return c
}

func parseHexColor(h, orig string) (color.NRGBA, error) {
	var expanded string
	switch len(h) {
	case 3, 4:
		var b strings.Builder
		for _, r := range h {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		expanded = b.String()
	case 6, 8:
		expanded = h
	default:
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
	}
	if len(expanded) == 6 {
		expanded += "ff"
	}
	n, err := strconv.ParseUint(expanded, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
	}
	return color.NRGBA{
		R: uint8(n >> 24),
		G: uint8(n >> 16),
		B: uint8(n >> 8),
		A: uint8(n),
	}, nil
}

func parseFuncColor(v, orig string) (color.NRGBA, error) {
	open := strings.IndexByte(v, '(')
	if !strings.HasSuffix(v, ")") {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
	}
	parts := strings.Split(v[open+1:len(v)-1], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
	}

	var ch [3]uint8
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
		}
		ch[i] = uint8(math.Max(0, math.Min(255, math.Round(f))))
	}
	alpha := uint8(0xff)
	if len(parts) == 4 {
		f, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
		}
		alpha = uint8(math.Max(0, math.Min(1, f)) * 255)
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: alpha}, nil
}
