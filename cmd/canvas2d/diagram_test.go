package main

import (
	"image/color"
	"strings"
	"testing"

	"github.com/gogpu/canvas2d"
	"github.com/gogpu/canvas2d/surface"
)

func TestDemoDiagram(t *testing.T) {
	d, err := loadDiagram("")
	if err != nil {
		t.Fatal(err)
	}
	n, err := surface.NewGGNative(640, 560)
	if err != nil {
		t.Fatal(err)
	}
	b, err := canvas2d.NewBook(n, canvas2d.WithBackground("white"))
	if err != nil {
		t.Fatal(err)
	}
	if err := d.build(b, canvas2d.NewRegistry()); err != nil {
		t.Fatal(err)
	}

	s := b.CurrentSheet()
	if s.Name() != "demo" || !s.IsDynamic() || len(s.Positions()) != 6 {
		t.Fatalf("sheet %q style %q with %d shapes", s.Name(), s.Style(), len(s.Positions()))
	}
	p, _ := s.Position(mustShape(t, s, "a"))
	if p.Left() != 60 || p.Top() != 80 {
		t.Errorf("a at (%v,%v)", p.Left(), p.Top())
	}

	b.Render()
	// Inside box a, away from its outline.
	if got := n.Image().At(100, 120); !sameRGB(got, surface.MustParseColor("lightyellow")) {
		t.Errorf("pixel inside a = %v, want lightyellow", got)
	}
	if !strings.Contains(b.ToADL(), "rectangle b @ 420,300") {
		t.Errorf("ADL missing b:\n%s", b.ToADL())
	}
}

func TestDiagramErrors(t *testing.T) {
	tests := []struct {
		name, data string
	}{
		{"unknown kind", "[[sheet]]\n[[sheet.shape]]\nkind = \"star\""},
		{"bad at", "[[sheet]]\n[[sheet.shape]]\nkind = \"box\"\nat = [1]"},
		{"bad coordinate", "[[sheet]]\n[[sheet.shape]]\nkind = \"box\"\nat = [\"x\", 1]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d diagram
			if _, err := decodeDiagram(tt.data, &d); err != nil {
				t.Fatal(err)
			}
			b, err := canvas2d.NewBook(surface.NewRecorder(10, 10, surface.Capabilities{}))
			if err != nil {
				t.Fatal(err)
			}
			if err := d.build(b, canvas2d.NewRegistry()); err == nil {
				t.Error("build succeeded")
			}
		})
	}
}

func TestSheetPath(t *testing.T) {
	if got := sheetPath("out/diagram.png", 1, "main"); got != "out/diagram-2-main.png" {
		t.Errorf("sheetPath = %q", got)
	}
}

func mustShape(t *testing.T, s *canvas2d.Sheet, name string) canvas2d.Shape {
	t.Helper()
	shape, ok := s.Shape(name)
	if !ok {
		t.Fatalf("no shape %q", name)
	}
	return shape
}

func sameRGB(got color.Color, want color.NRGBA) bool {
	r, g, b, _ := got.RGBA()
	near := func(a uint32, b uint8) bool {
		d := int(a>>8) - int(b)
		return d >= -1 && d <= 1
	}
	return near(r, want.R) && near(g, want.G) && near(b, want.B)
}
