package canvas2d

import (
	"errors"
	"testing"

	"github.com/gogpu/canvas2d/surface"
)

func TestManagerActivate(t *testing.T) {
	page := Page{
		"main":  surface.NewRecorder(100, 100, fullCaps()),
		"aside": surface.NewRecorder(50, 50, fullCaps()),
	}
	m := NewManager(page, WithSourcePlugin())

	if _, err := m.Activate("missing"); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("unknown id: err = %v, want ErrConfiguration", err)
	}
	if len(m.Books()) != 0 {
		t.Fatal("failed activation left a book behind")
	}

	s, err := m.Activate("main", WithSheetName("first"))
	if err != nil {
		t.Fatal(err)
	}
	if s.Name() != "first" {
		t.Errorf("sheet name = %q", s.Name())
	}
	b, ok := m.Book("main")
	if !ok || !b.Started() || b.CurrentSheet() != s {
		t.Fatal("activated book not started with the new sheet current")
	}
	if b.Name() != "main" || b.Frames() != 1 {
		t.Errorf("book %q rendered %d frames", b.Name(), b.Frames())
	}
	if _, ok := b.Plugin("source"); !ok {
		t.Error("manager options not applied to the book")
	}

	again, err := m.SetupBook("main")
	if err != nil || again != b {
		t.Errorf("SetupBook returned a different book: %v", err)
	}

	if _, err := m.Activate("aside"); err != nil {
		t.Fatal(err)
	}
	books := m.Books()
	if len(books) != 2 || books[0].Name() != "main" || books[1].Name() != "aside" {
		t.Errorf("books out of setup order")
	}
	if err := m.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestBackendHost(t *testing.T) {
	h := BackendHost("record", 30, 20, surface.WithCapabilities(surface.Capabilities{Dash: true}))
	n, err := h.Surface("any")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := n.(*surface.Recorder); !ok {
		t.Fatalf("got %T, want *surface.Recorder", n)
	}
	if !surface.Probe(n).Dash || n.Width() != 30 {
		t.Error("backend options not applied")
	}

	if _, err := BackendHost("nonexistent", 1, 1).Surface("x"); err == nil {
		t.Error("unknown backend should fail")
	}

	auto, err := BackendHost("", 8, 8).Surface("x")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := auto.(*surface.GGNative); !ok {
		t.Errorf("auto backend = %T, want *surface.GGNative", auto)
	}
}
