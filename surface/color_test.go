// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"black", color.NRGBA{0, 0, 0, 255}},
		{"White", color.NRGBA{255, 255, 255, 255}},
		{"steelblue", color.NRGBA{70, 130, 180, 255}},
		{"#f00", color.NRGBA{255, 0, 0, 255}},
		{"#f008", color.NRGBA{255, 0, 0, 0x88}},
		{"#336699", color.NRGBA{0x33, 0x66, 0x99, 255}},
		{"#33669980", color.NRGBA{0x33, 0x66, 0x99, 0x80}},
		{"rgb(1, 2, 3)", color.NRGBA{1, 2, 3, 255}},
		{"rgba(10,20,30,0.5)", color.NRGBA{10, 20, 30, 127}},
		{"rgba(0,0,0,0.0)", color.NRGBA{}},
		{"rgb(300,-4,3)", color.NRGBA{255, 0, 3, 255}},
		{"transparent", color.NRGBA{}},
		{" none ", color.NRGBA{}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseColorInvalid(t *testing.T) {
	for _, in := range []string{"", "notacolour", "#12", "#ggg", "rgb(1,2)", "rgb(1,2,3", "rgba(a,b,c,d)"} {
		if _, err := ParseColor(in); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("ParseColor(%q) err = %v, want ErrInvalidColor", in, err)
		}
	}
	if got := MustParseColor("bogus"); got != (color.NRGBA{A: 255}) {
		t.Errorf("MustParseColor(bogus) = %v, want opaque black", got)
	}
}
