package canvas2d

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/gogpu/canvas2d/surface"
)

func fullCaps() surface.Capabilities {
	return surface.Capabilities{Dash: true, Crisp: true, TextMetrics: true, TextPaint: true, ExtendedState: true}
}

func newTestBook(t *testing.T, opts ...BookOption) (*Book, *surface.Recorder) {
	t.Helper()
	rec := surface.NewRecorder(200, 100, fullCaps())
	b, err := NewBook(rec, opts...)
	if err != nil {
		t.Fatalf("NewBook: %v", err)
	}
	t.Cleanup(func() { _ = b.Close() })
	return b, rec
}

func mustCreate(t *testing.T, reg *Registry, kind string, props map[string]any) Shape {
	t.Helper()
	s, err := reg.Create(kind, props)
	if err != nil {
		t.Fatalf("Create(%s): %v", kind, err)
	}
	return s
}

func TestSheetDefaults(t *testing.T) {
	s := NewSheet(surface.New(surface.NewRecorder(10, 10, fullCaps())))
	if s.Name() != "newSheet" || s.Style() != StyleStatic {
		t.Errorf("defaults: name=%q style=%q", s.Name(), s.Style())
	}
	st := s.State()
	if st.Font != "10pt Sans-Serif" || st.LineWidth != 1 || !st.UseCrispLines || st.LineStyle != "solid" {
		t.Errorf("default state = %+v", st)
	}
}

func TestSheetStyle(t *testing.T) {
	var buf bytes.Buffer
	b, _ := newTestBook(t, WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))

	s := b.AddSheet(WithSheetStyle("Dynamic"))
	if !s.IsDynamic() {
		t.Errorf("style = %q, want dynamic", s.Style())
	}
	s.SetStyle("wobbly")
	if s.Style() != StyleStatic {
		t.Errorf("unknown style fell back to %q", s.Style())
	}
	if !strings.Contains(buf.String(), ErrUnknownStyle.Error()) {
		t.Errorf("unknown style not logged: %s", buf.String())
	}
	s.MakeDynamic()
	if !s.IsDynamic() {
		t.Error("MakeDynamic had no effect")
	}
	s.MakeStatic()
	if s.IsDynamic() {
		t.Error("MakeStatic had no effect")
	}
}

func TestSheetDuplicateName(t *testing.T) {
	var buf bytes.Buffer
	b, _ := newTestBook(t, WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	s := b.AddSheet(WithSheetName("main"))
	reg := NewRegistry()

	var added []string
	s.Subscribe(EventNewShape, func(ev Event) { added = append(added, ev.Message) })

	first := mustCreate(t, reg, "box", map[string]any{"name": "box"})
	if got := s.At(10, 20).Put(first); got != first {
		t.Fatalf("Put returned %v", got)
	}

	second := mustCreate(t, reg, "box", map[string]any{"name": "box<copy>"})
	got, err := s.At(30, 40).Add(second)
	if got != nil || !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("duplicate Add = %v, %v", got, err)
	}
	if s.Put(second) != nil {
		t.Error("duplicate Put should return nil")
	}
	if n := len(s.Positions()); n != 1 {
		t.Errorf("positions = %d, want 1", n)
	}
	if !strings.Contains(buf.String(), "Shape with name 'box' already exists. Skipping.") {
		t.Errorf("warning not logged: %s", buf.String())
	}
	if len(added) != 1 || added[0] != "added new shape@10,20" {
		t.Errorf("newShape messages = %q", added)
	}
	if shape, ok := s.Shape("box<anything>"); !ok || shape != first {
		t.Error("Shape lookup by base name failed")
	}
}

func TestSheetAtIsOneShot(t *testing.T) {
	b, _ := newTestBook(t)
	s := b.AddSheet()
	reg := NewRegistry()

	a := s.At(5, 6).Put(mustCreate(t, reg, "box", map[string]any{"name": "a"}))
	c := s.Put(mustCreate(t, reg, "box", map[string]any{"name": "c"}))

	pa, _ := s.Position(a)
	pc, _ := s.Position(c)
	if !pa.Placed() || pa.Left() != 5 || pa.Top() != 6 {
		t.Errorf("a at (%v,%v) placed=%v", pa.Left(), pa.Top(), pa.Placed())
	}
	if pc.Placed() || pc.Left() != 0 || pc.Top() != 0 {
		t.Errorf("c at (%v,%v) placed=%v, want unplaced origin", pc.Left(), pc.Top(), pc.Placed())
	}
}

func TestSheetRemoveAndClear(t *testing.T) {
	b, _ := newTestBook(t)
	s := b.AddSheet()
	reg := NewRegistry()

	a := s.Put(mustCreate(t, reg, "box", map[string]any{"name": "a"}))
	c := s.Put(mustCreate(t, reg, "box", map[string]any{"name": "c"}))

	var removed []string
	s.Subscribe(EventRemoveShape, func(ev Event) { removed = append(removed, ev.Shape.Name()) })

	s.Remove(a)
	s.Remove(a) // not on the sheet any more
	if len(removed) != 1 || removed[0] != "a" {
		t.Errorf("removed = %v", removed)
	}
	if _, ok := s.Shape("a"); ok {
		t.Error("a still present")
	}
	if s.Put(mustCreate(t, reg, "box", map[string]any{"name": "a"})) == nil {
		t.Error("name should be free again after Remove")
	}

	// A removed shape no longer dirties the sheet.
	s.Render()
	_ = a.Set("width", 1)
	if s.Dirty() {
		t.Error("removed shape still marks the sheet dirty")
	}

	var changes int
	s.Subscribe(EventChange, func(Event) { changes++ })
	s.Clear()
	if len(s.Positions()) != 0 || changes != 1 {
		t.Errorf("after Clear: positions=%d changes=%d", len(s.Positions()), changes)
	}
	s.Render()
	_ = c.Set("width", 1)
	if s.Dirty() {
		t.Error("cleared shape still marks the sheet dirty")
	}
}

func TestSheetDirtyTracking(t *testing.T) {
	b, _ := newTestBook(t)
	s := b.AddSheet()
	reg := NewRegistry()

	box := s.At(0, 0).Put(mustCreate(t, reg, "box", map[string]any{"name": "a"}))
	if !s.Dirty() {
		t.Fatal("Add should dirty the sheet")
	}
	s.Render()
	if s.Dirty() {
		t.Fatal("Render should clean the sheet")
	}
	_ = box.Set("fillColor", "red")
	if !s.Dirty() {
		t.Error("shape change should dirty the sheet")
	}
	s.Render()
	p, _ := s.Position(box)
	p.Move(1, 1)
	if !s.Dirty() {
		t.Error("position change should dirty the sheet")
	}
}

func TestSheetRenderOrder(t *testing.T) {
	b, rec := newTestBook(t)
	s := b.AddSheet()
	reg := NewRegistry()

	s.Put(mustCreate(t, reg, "connector", map[string]any{"name": "ab", "from": "a", "to": "b"}))
	s.At(0, 0).Put(mustCreate(t, reg, "box", map[string]any{"name": "a"}))
	s.At(100, 0).Put(mustCreate(t, reg, "box", map[string]any{"name": "b"}))

	rec.Reset()
	s.Render()

	var got []string
	for _, c := range rec.Filter(surface.OpFillRect, surface.OpStrokeRect, surface.OpMoveTo, surface.OpLineTo) {
		got = append(got, c.String())
	}
	want := []string{
		"FillRect(0,0,50,50)", "StrokeRect(0,0,50,50)",
		"FillRect(100,0,50,50)", "StrokeRect(100,0,50,50)",
		"MoveTo(25,25)", "LineTo(125,25)",
	}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("render order:\n got %v\nwant %v", got, want)
	}
}

func TestSheetConnectorMissingEnd(t *testing.T) {
	b, rec := newTestBook(t)
	s := b.AddSheet()
	reg := NewRegistry()
	s.Put(mustCreate(t, reg, "link", map[string]any{"from": "a", "to": "ghost"}))
	s.At(0, 0).Put(mustCreate(t, reg, "box", map[string]any{"name": "a"}))

	rec.Reset()
	s.Render()
	if n := rec.Count(surface.OpLineTo); n != 0 {
		t.Errorf("connector with a missing end drew %d lines", n)
	}
}

func TestSheetStateTransfer(t *testing.T) {
	b, rec := newTestBook(t)
	s := b.AddSheet()

	st := s.State()
	st.StrokeStyle = "red"
	s.SetState(st)
	s.StrokeRect(1, 2, 3, 4)

	cmds := rec.Filter(surface.OpStrokeRect)
	if len(cmds) != 1 || cmds[0].Style.StrokeStyle != "red" {
		t.Fatalf("stroke style not transferred: %v", cmds)
	}

	s.Save()
	st.StrokeStyle = "blue"
	st.LineStyle = surface.LineStyleDashed
	s.SetState(st)
	s.Restore()
	if got := s.State(); got.StrokeStyle != "red" || got.LineStyle != surface.LineStyleSolid {
		t.Errorf("after Restore state = %s/%s, want red/solid", got.StrokeStyle, got.LineStyle)
	}
}

func TestSheetRenderRestoresState(t *testing.T) {
	b, rec := newTestBook(t)
	s := b.AddSheet()
	reg := NewRegistry()
	s.At(0, 0).Put(mustCreate(t, reg, "box", map[string]any{"name": "a", "lineColor": "green", "lineStyle": "dashed"}))
	before := s.State()

	s.Render()

	if s.State() != before {
		t.Errorf("state after render = %+v, want %+v", s.State(), before)
	}
	cmds := rec.Filter(surface.OpStrokeRect)
	if len(cmds) == 0 || cmds[len(cmds)-1].Style.StrokeStyle != "green" {
		t.Fatalf("box stroke colour not applied: %v", cmds)
	}
	if len(cmds[len(cmds)-1].Dash) == 0 {
		t.Error("dashed box stroked without a dash pattern")
	}
}

func TestLabelLayout(t *testing.T) {
	b, rec := newTestBook(t)
	s := b.AddSheet()
	reg := NewRegistry()
	label := s.At(5, 5).Put(mustCreate(t, reg, "label", map[string]any{
		"name": "l", "text": "Hello", "color": "navy", "font": "20pt Serif",
	}))

	s.Render()

	texts := rec.Filter(surface.OpFillText)
	if len(texts) != 1 {
		t.Fatalf("FillText calls = %d, want 1", len(texts))
	}
	c := texts[0]
	if c.Text != "Hello" || c.Args[0] != 5 || c.Args[1] != 25 {
		t.Errorf("FillText = %s %q, want baseline at (5,25)", c, c.Text)
	}
	if c.Style.FillStyle != "navy" || c.Style.Font != "20pt Serif" {
		t.Errorf("text style = %s/%s", c.Style.FillStyle, c.Style.Font)
	}

	r, ok := s.Bounds("l")
	if !ok || r.Width <= 0 || r.Height != 20 {
		t.Errorf("label bounds = %+v", r)
	}
	if !label.Hit(5, 5, 6, 6) {
		t.Error("label should be hit inside its box")
	}
}

func TestSheetToADL(t *testing.T) {
	b, _ := newTestBook(t)
	s := b.AddSheet(WithSheetName("main"))
	reg := NewRegistry()

	s.At(10, 20).Put(mustCreate(t, reg, "box", map[string]any{"name": "a", "width": 80}))
	s.Put(mustCreate(t, reg, "label", map[string]any{"name": "b", "text": "hi"}))

	want := "Sheet main +static {\n" +
		"  rectangle a @ 10,20 +width=80\n" +
		"  text b +text=\"hi\"\n" +
		"}"
	if got := s.ToADL(); got != want {
		t.Errorf("ToADL:\n%s\nwant:\n%s", got, want)
	}

	empty := b.AddSheet(WithSheetName("empty"), WithSheetStyle("dynamic"))
	if got := empty.ToADL(); got != "Sheet empty +dynamic {\n}" {
		t.Errorf("empty ToADL = %q", got)
	}
	if got := b.ToADL(); got != want+"\n"+"Sheet empty +dynamic {\n}" {
		t.Errorf("book ToADL = %q", got)
	}
}

func TestLineHitSlop(t *testing.T) {
	reg := NewRegistry()
	line := mustCreate(t, reg, "line", map[string]any{"dx": -40, "dy": 0})
	r := line.Bounds(100, 10)
	if r.Left != 60 || r.Width != 40 || r.Height != 0 {
		t.Errorf("bounds = %+v", r)
	}
	if !line.Hit(100, 10, 80, 11.5) {
		t.Error("point near a horizontal line should hit")
	}
	if line.Hit(100, 10, 80, 14) {
		t.Error("point beyond the slop should miss")
	}
}

func TestMoveRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		left, top float64
		dx, dy    float64
	}{
		{"integer", 10, 20, 7, -3},
		{"dyadic", 0.5, 0.25, 0.125, -2.75},
		{"zero", 4, 4, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPosition(nil, tt.left, tt.top, true)
			var changes int
			p.Subscribe(EventChange, func(Event) { changes++ })

			p.Move(tt.dx, tt.dy)
			p.Move(-tt.dx, -tt.dy)
			if p.Left() != tt.left || p.Top() != tt.top {
				t.Errorf("after round trip (%v,%v), want (%v,%v)", p.Left(), p.Top(), tt.left, tt.top)
			}
			if changes != 2 {
				t.Errorf("changes = %d, want 2", changes)
			}
		})
	}
}

// checkBijection verifies that the sheet's sequence and both maps agree.
func checkBijection(t *testing.T, s *Sheet) {
	t.Helper()
	if len(s.positions) != len(s.shapes) || len(s.positions) != len(s.byShape) {
		t.Fatalf("sizes: positions=%d shapes=%d byShape=%d",
			len(s.positions), len(s.shapes), len(s.byShape))
	}
	for _, p := range s.positions {
		if s.byShape[p.Shape()] != p {
			t.Errorf("byShape misses %q", p.Shape().Name())
		}
		if s.shapes[p.Shape().BaseName()] != p.Shape() {
			t.Errorf("shapes misses %q", p.Shape().BaseName())
		}
	}
}

func TestSheetBijection(t *testing.T) {
	b, _ := newTestBook(t)
	s := b.AddSheet()
	reg := NewRegistry()
	box := func(name string) Shape { return mustCreate(t, reg, "box", map[string]any{"name": name}) }

	a, c := box("a"), box("c")
	steps := []struct {
		name string
		do   func()
		want int
	}{
		{"add a", func() { s.Put(a) }, 1},
		{"add b", func() { s.At(5, 5).Put(box("b<1>")) }, 2},
		{"duplicate b", func() { s.Put(box("b<2>")) }, 2},
		{"add c", func() { s.Put(c) }, 3},
		{"remove a", func() { s.Remove(a) }, 2},
		{"remove a again", func() { s.Remove(a) }, 2},
		{"remove foreign", func() { s.Remove(box("c")) }, 2},
		{"re-add a", func() { s.Put(a) }, 3},
		{"remove c", func() { s.Remove(c) }, 2},
		{"clear", func() { s.Clear() }, 0},
		{"add after clear", func() { s.Put(c) }, 1},
	}
	for _, st := range steps {
		st.do()
		checkBijection(t, s)
		if len(s.Positions()) != st.want {
			t.Errorf("%s: %d positions, want %d", st.name, len(s.Positions()), st.want)
		}
	}
}

func TestSheetFreezeOnlyRelays(t *testing.T) {
	rec := surface.NewRecorder(100, 100, fullCaps())
	t.Cleanup(func() { surface.Release(rec) })
	s := NewSheet(surface.New(rec), WithSheetStyle(StyleDynamic))
	reg := NewRegistry()
	s.At(10, 10).Put(mustCreate(t, reg, "box", map[string]any{"name": "a"}))

	var relayed []EventKind
	for _, k := range []EventKind{EventFreeze, EventThaw} {
		s.Subscribe(k, func(ev Event) { relayed = append(relayed, ev.Kind) })
	}
	var pointer Emitter
	s.attach(&pointer)

	s.Freeze()
	pointer.Emit(Event{Kind: EventPointerDown, Pointer: Pointer{X: 20, Y: 20}})
	if len(s.Selection()) != 1 {
		t.Error("a frozen sheet should still handle events it receives")
	}
	s.Thaw()
	if !equalKinds(relayed, []EventKind{EventFreeze, EventThaw}) {
		t.Errorf("relayed = %v", relayed)
	}
}
