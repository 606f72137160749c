package canvas2d

import (
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/gogpu/canvas2d/surface"
)

func TestNewBookErrors(t *testing.T) {
	if _, err := NewBook(nil); !errors.Is(err, ErrConfiguration) {
		t.Errorf("nil native: err = %v", err)
	}

	failing := WithPlugin(func() Plugin { return failingPlugin{} })
	rec := surface.NewRecorder(10, 10, fullCaps())
	if _, err := NewBook(rec, failing); !errors.Is(err, ErrConfiguration) {
		t.Errorf("failing plugin: err = %v", err)
	}
	if _, err := NewBook(rec, WithSourcePlugin(), WithSourcePlugin()); !errors.Is(err, ErrConfiguration) {
		t.Errorf("duplicate plugin: err = %v", err)
	}
}

type failingPlugin struct{}

func (failingPlugin) Name() string         { return "failing" }
func (failingPlugin) Activate(*Book) error { return errors.New("no") }

func TestBookIdentity(t *testing.T) {
	b, _ := newTestBook(t, WithName("canvas"))
	if b.Name() != "canvas" {
		t.Errorf("Name = %q", b.Name())
	}
	other, _ := newTestBook(t)
	if b.ID() == other.ID() {
		t.Error("books share an id")
	}
	if other.Name() != other.ID().String() {
		t.Errorf("unnamed book name = %q, want its id", other.Name())
	}
	if b.Canvas().Capabilities() != fullCaps() {
		t.Errorf("capabilities = %+v", b.Canvas().Capabilities())
	}
}

func TestBookRendersAfterStart(t *testing.T) {
	b, rec := newTestBook(t, WithBackground("white"))
	s := b.AddSheet()
	reg := NewRegistry()

	box := s.At(0, 0).Put(mustCreate(t, reg, "box", map[string]any{"name": "a"}))
	if b.Frames() != 0 {
		t.Fatalf("rendered %d frames before Start", b.Frames())
	}

	b.Start()
	if b.Frames() != 1 {
		t.Fatalf("frames after Start = %d, want 1", b.Frames())
	}
	cmds := rec.Filter(surface.OpClearRect, surface.OpFillRect)
	if len(cmds) < 2 || cmds[0].Op != surface.OpClearRect || cmds[1].Style.FillStyle != "white" {
		t.Errorf("frame should clear, then paint the background: %v", cmds)
	}

	_ = box.Set("width", 70)
	if b.Frames() != 2 {
		t.Errorf("frames after change = %d, want 2", b.Frames())
	}
}

func TestBookFreezeThaw(t *testing.T) {
	b, _ := newTestBook(t)
	s := b.AddSheet()
	reg := NewRegistry()
	box := s.At(0, 0).Put(mustCreate(t, reg, "box", map[string]any{"name": "a"}))
	b.Start()

	var seen []EventKind
	for _, k := range []EventKind{EventFreeze, EventThaw} {
		b.Subscribe(k, func(ev Event) { seen = append(seen, ev.Kind) })
	}

	s.Freeze()
	if !b.Frozen() {
		t.Fatal("book not frozen")
	}
	frames := b.Frames()
	_ = box.Set("width", 10)
	_ = box.Set("width", 20)
	if b.Frames() != frames {
		t.Errorf("rendered while frozen")
	}

	s.Thaw()
	if b.Frozen() {
		t.Fatal("book still frozen")
	}
	if b.Frames() != frames+1 {
		t.Errorf("frames after thaw = %d, want %d", b.Frames(), frames+1)
	}
	if len(seen) != 2 || seen[0] != EventFreeze || seen[1] != EventThaw {
		t.Errorf("relayed events = %v", seen)
	}

	// Thawing a clean sheet does not render.
	s.Freeze()
	s.Thaw()
	if b.Frames() != frames+1 {
		t.Errorf("clean thaw rendered")
	}
}

func TestBookSheets(t *testing.T) {
	b, _ := newTestBook(t)
	if b.CurrentSheet() != nil {
		t.Fatal("new book has a current sheet")
	}
	one := b.AddSheet(WithSheetName("one"))
	two := b.AddSheet(WithSheetName("two"))
	if b.CurrentSheet() != one {
		t.Error("first sheet should be current")
	}
	if got, ok := b.Sheet("two"); !ok || got != two {
		t.Error("Sheet(two) lookup failed")
	}
	if err := b.SetCurrentSheet(two); err != nil || b.CurrentSheet() != two {
		t.Errorf("SetCurrentSheet: %v", err)
	}

	stranger := NewSheet(b.Canvas())
	if err := b.SetCurrentSheet(stranger); !errors.Is(err, ErrConfiguration) {
		t.Errorf("foreign sheet: err = %v", err)
	}

	b.RemoveSheet(two)
	if b.CurrentSheet() != one || len(b.Sheets()) != 1 {
		t.Errorf("after RemoveSheet: current=%v sheets=%d", b.CurrentSheet().Name(), len(b.Sheets()))
	}
}

func TestBookSheetOptions(t *testing.T) {
	b, _ := newTestBook(t, WithSheetOptions(WithSheetStyle("dynamic"), WithSheetName("base")))
	s := b.AddSheet(WithSheetName("own"))
	if s.Name() != "own" || !s.IsDynamic() {
		t.Errorf("sheet %q style %q", s.Name(), s.Style())
	}
}

func TestBookOn(t *testing.T) {
	b, _ := newTestBook(t)
	b.AddSheet()

	var downs int
	if _, err := b.On("mousedown", func(Event) { downs++ }); err != nil {
		t.Fatal(err)
	}
	if _, err := b.On("doubleclick", func(Event) {}); !errors.Is(err, ErrConfiguration) {
		t.Errorf("unknown event: err = %v", err)
	}
	b.HandleInput(InputEvent{Kind: MouseDown, X: 1, Y: 1})
	if downs != 1 {
		t.Errorf("mousedown handler called %d times", downs)
	}
}

func TestSourcePlugin(t *testing.T) {
	b, _ := newTestBook(t, WithSourcePlugin())
	s := b.AddSheet(WithSheetName("main"))
	reg := NewRegistry()

	p, ok := b.Plugin("source")
	if !ok {
		t.Fatal("source plugin missing")
	}
	src := p.(*SourcePlugin)

	s.At(1, 2).Put(mustCreate(t, reg, "box", map[string]any{"name": "a"}))
	if src.Rendered() != "" {
		t.Error("nothing rendered yet")
	}
	want := "Sheet main +static {\n  rectangle a @ 1,2\n}"
	if src.Source() != want {
		t.Errorf("Source = %q", src.Source())
	}
	b.Start()
	if src.Rendered() != want {
		t.Errorf("Rendered = %q", src.Rendered())
	}
	if got := b.Plugins(); len(got) != 1 || got[0] != "source" {
		t.Errorf("Plugins = %v", got)
	}
}

func TestConsolePlugin(t *testing.T) {
	b, _ := newTestBook(t, WithConsolePlugin(slog.LevelWarn))
	s := b.AddSheet(WithSheetName("main"))
	reg := NewRegistry()

	s.Put(mustCreate(t, reg, "box", map[string]any{"name": "dup"}))
	s.Put(mustCreate(t, reg, "box", map[string]any{"name": "dup"}))

	p, _ := b.Plugin("console")
	lines := p.(*ConsolePlugin).Lines()
	if len(lines) != 1 {
		t.Fatalf("captured %d lines, want 1: %q", len(lines), lines)
	}
	if !strings.HasPrefix(lines[0], "WARN Shape with name 'dup' already exists. Skipping.") ||
		!strings.Contains(lines[0], "sheet=main") {
		t.Errorf("line = %q", lines[0])
	}
	p.(*ConsolePlugin).Reset()
	if len(p.(*ConsolePlugin).Lines()) != 0 {
		t.Error("Reset kept lines")
	}
}

func TestBookShorthand(t *testing.T) {
	b, _ := newTestBook(t)
	reg := NewRegistry()

	box := b.At(3, 4).Put(mustCreate(t, reg, "box", map[string]any{"name": "a"}))
	s := b.CurrentSheet()
	if s == nil || s.Name() != DefaultSheetName {
		t.Fatalf("shorthand did not add a default sheet: %v", s)
	}
	if p, ok := s.Position(box); !ok || p.Left() != 3 || p.Top() != 4 {
		t.Errorf("position = %+v", p)
	}
	if _, err := b.Add(mustCreate(t, reg, "box", map[string]any{"name": "a"})); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("duplicate Add err = %v", err)
	}

	b.MakeDynamic()
	if !s.IsDynamic() {
		t.Error("MakeDynamic did not reach the current sheet")
	}
	b.MakeStatic()
	if s.IsDynamic() {
		t.Error("MakeStatic did not reach the current sheet")
	}
	b.Freeze()
	if !b.Frozen() {
		t.Error("Freeze did not freeze the book")
	}
	b.Thaw()
	if b.Frozen() {
		t.Error("Thaw did not thaw the book")
	}
}

func TestBooksOnOneNativeShareCanvas(t *testing.T) {
	rec := surface.NewRecorder(20, 20, fullCaps())
	a, err := NewBook(rec)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewBook(rec)
	if err != nil {
		t.Fatal(err)
	}
	if a.Canvas() != b.Canvas() {
		t.Error("second book on the same native got its own canvas")
	}
	_ = a.Close()
	c, _ := NewBook(rec)
	t.Cleanup(func() { _ = c.Close() })
	if c.Canvas() == a.Canvas() {
		t.Error("canvas survived Close")
	}
}
