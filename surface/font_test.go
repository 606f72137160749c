// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"bytes"
	"testing"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

func TestParseFont(t *testing.T) {
	tests := []struct {
		in   string
		want Font
	}{
		{"10pt Sans-Serif", Font{Size: 10, Unit: "pt", Family: "Sans-Serif"}},
		{"bold 12px Arial", Font{Size: 12, Unit: "px", Bold: true, Family: "Arial"}},
		{"italic bold 9.5pt Times New Roman", Font{Size: 9.5, Unit: "pt", Bold: true, Italic: true, Family: "Times New Roman"}},
		{"14 Courier", Font{Size: 14, Unit: "px", Family: "Courier"}},
		{"Helvetica", Font{Size: 10, Unit: "pt", Family: "Helvetica"}},
		{"", Font{Size: 10, Unit: "pt"}},
		{"normal 8pt 12pt serif", Font{Size: 8, Unit: "pt", Family: "12pt serif"}},
	}
	for _, tt := range tests {
		if got := ParseFont(tt.in); got != tt.want {
			t.Errorf("ParseFont(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestFontSize(t *testing.T) {
	if got := FontSize("bold 22pt Sans"); got != 22 {
		t.Errorf("FontSize = %v, want 22", got)
	}
}

func TestFontTTF(t *testing.T) {
	tests := []struct {
		font string
		want []byte
	}{
		{"10pt Sans-Serif", goregular.TTF},
		{"bold 10pt Sans-Serif", gobold.TTF},
		{"10pt monospace", gomono.TTF},
		{"bold 10pt Courier New", gomono.TTF},
	}
	for _, tt := range tests {
		if got := ParseFont(tt.font).TTF(); !bytes.Equal(got, tt.want) {
			t.Errorf("%q picked the wrong Go font", tt.font)
		}
	}
}
