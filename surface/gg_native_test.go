// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"testing"
)

func pixel(t *testing.T, g *GGNative, x, y int) color.NRGBA {
	t.Helper()
	return color.NRGBAModel.Convert(g.Image().At(x, y)).(color.NRGBA)
}

func isRed(c color.NRGBA) bool {
	return c.R > 200 && c.G < 50 && c.B < 50 && c.A > 200
}

func TestNewGGNativeInvalidSize(t *testing.T) {
	if _, err := NewGGNative(0, 10); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("err = %v, want ErrInvalidDimensions", err)
	}
}

func TestGGNativeCapabilities(t *testing.T) {
	g, err := NewGGNative(10, 10)
	if err != nil {
		t.Fatal(err)
	}
	c := Probe(g)
	want := Capabilities{Dash: true, TextMetrics: true, TextPaint: true}
	if c != want {
		t.Errorf("Probe = %+v, want %+v", c, want)
	}
	if New(g).TextTier() != TextTierFull {
		t.Error("gg native should get the full text tier")
	}
}

func TestGGNativeFillRect(t *testing.T) {
	g, err := NewGGNative(20, 20)
	if err != nil {
		t.Fatal(err)
	}
	st := g.Style()
	st.FillStyle = "red"
	g.SetStyle(st)

	g.FillRect(0, 0, 10, 10)

	if c := pixel(t, g, 5, 5); !isRed(c) {
		t.Errorf("inside pixel = %v, want red", c)
	}
	if c := pixel(t, g, 15, 15); c.A != 0 {
		t.Errorf("outside pixel = %v, want transparent", c)
	}
}

func TestGGNativePathSurvivesRectOps(t *testing.T) {
	g, err := NewGGNative(20, 20)
	if err != nil {
		t.Fatal(err)
	}
	st := g.Style()
	st.FillStyle = "red"
	g.SetStyle(st)

	g.BeginPath()
	g.Rect(10, 10, 10, 10)
	g.FillRect(0, 0, 5, 5)
	g.Fill()

	if c := pixel(t, g, 15, 15); !isRed(c) {
		t.Errorf("path pixel = %v, want red", c)
	}

	// Fill does not consume the path either.
	st.FillStyle = "blue"
	g.SetStyle(st)
	g.Fill()
	if c := pixel(t, g, 15, 15); c.B < 200 {
		t.Errorf("refilled pixel = %v, want blue", c)
	}
}

func TestGGNativeTransform(t *testing.T) {
	g, err := NewGGNative(40, 40)
	if err != nil {
		t.Fatal(err)
	}
	st := g.Style()
	st.FillStyle = "red"
	g.SetStyle(st)

	g.Save()
	g.Translate(20, 20)
	g.FillRect(0, 0, 10, 10)
	g.Restore()

	if c := pixel(t, g, 25, 25); !isRed(c) {
		t.Errorf("translated pixel = %v, want red", c)
	}
	if c := pixel(t, g, 5, 5); c.A != 0 {
		t.Errorf("origin pixel = %v, want transparent", c)
	}
}

func TestGGNativeSaveRestoreStyle(t *testing.T) {
	g, err := NewGGNative(10, 10)
	if err != nil {
		t.Fatal(err)
	}
	before := g.Style()
	g.Save()
	st := before
	st.LineWidth = 7
	st.FillStyle = "green"
	g.SetStyle(st)
	g.Restore()
	if g.Style() != before {
		t.Errorf("style after restore = %+v, want %+v", g.Style(), before)
	}
	// Unmatched restore is a no-op.
	g.Restore()
	if g.Style() != before {
		t.Error("unmatched restore changed the style")
	}
}

func TestGGNativeClearRect(t *testing.T) {
	g, err := NewGGNative(20, 20)
	if err != nil {
		t.Fatal(err)
	}
	st := g.Style()
	st.FillStyle = "red"
	g.SetStyle(st)
	g.FillRect(0, 0, 20, 20)

	g.ClearRect(0, 0, 10, 10)

	if c := pixel(t, g, 5, 5); c.A != 0 {
		t.Errorf("cleared pixel = %v, want transparent", c)
	}
	if c := pixel(t, g, 15, 15); !isRed(c) {
		t.Errorf("kept pixel = %v, want red", c)
	}
}

func TestGGNativeText(t *testing.T) {
	g, err := NewGGNative(120, 40)
	if err != nil {
		t.Fatal(err)
	}
	m := g.MeasureText("Hello")
	if m.Width <= 0 || m.Ascent <= 0 {
		t.Fatalf("MeasureText = %+v, want positive metrics", m)
	}

	a := New(g)
	a.FillText("Hello", 5, 30, 0)

	var inked bool
	for y := 0; y < 40 && !inked; y++ {
		for x := 0; x < 120; x++ {
			if pixel(t, g, x, y).A > 0 {
				inked = true
				break
			}
		}
	}
	if !inked {
		t.Error("FillText left the surface blank")
	}
}

func TestGGNativeEncodePNG(t *testing.T) {
	g, err := NewGGNative(8, 6)
	if err != nil {
		t.Fatal(err)
	}
	g.FillRect(0, 0, 8, 6)

	var buf bytes.Buffer
	if err := g.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
		t.Errorf("bounds = %v, want 8x6", b)
	}
}
