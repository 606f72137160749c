package canvas2d

import (
	"strings"
)

// Rect is an axis-aligned rectangle in surface coordinates.
type Rect struct {
	Left, Top, Width, Height float64
}

// Contains reports whether (x, y) lies inside r, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x <= r.Left+r.Width && y >= r.Top && y <= r.Top+r.Height
}

// Center returns the centre point of r.
func (r Rect) Center() (float64, float64) {
	return r.Left + r.Width/2, r.Top + r.Height/2
}

// Shape is a named drawable element. Concrete shapes embed *Base.
type Shape interface {
	// Name returns the full name.
	Name() string
	// BaseName returns the name without its "<...>" suffix. A sheet
	// holds at most one shape per base name.
	BaseName() string
	Kind() *Kind
	Props() *Props

	// Get and Set access properties through the kind's accessors. A
	// successful Set notifies EventChange subscribers.
	Get(name string) any
	Set(name string, v any) error

	// Bounds returns the bounding box when placed at (left, top).
	Bounds(left, top float64) Rect
	// Hit reports whether (x, y) hits the shape placed at (left, top).
	Hit(left, top, x, y float64) bool

	// BeforeRender prepares layout against the sheet's metrics.
	BeforeRender(s *Sheet)
	// Draw paints the shape at (left, top).
	Draw(s *Sheet, left, top float64)
	// DelayRender reports whether the shape paints in the second pass,
	// after every other shape has been laid out.
	DelayRender() bool

	Subscribe(kind EventKind, fn func(Event)) Subscription
	Unsubscribe(id Subscription)
}

// Base carries what every shape has in common.
type Base struct {
	Emitter

	name  string
	kind  *Kind
	props *Props

	// size set by BeforeRender for shapes whose extent depends on layout
	width, height float64
}

func newBase(name string, k *Kind) *Base {
	return &Base{name: name, kind: k, props: newProps(k)}
}

// BaseName strips everything from the first '<' on.
func BaseName(name string) string {
	if i := strings.IndexByte(name, '<'); i >= 0 {
		return name[:i]
	}
	return name
}

func (b *Base) Name() string     { return b.name }
func (b *Base) BaseName() string { return BaseName(b.name) }
func (b *Base) Kind() *Kind      { return b.kind }
func (b *Base) Props() *Props    { return b.props }
func (b *Base) Get(name string) any {
	return b.props.Get(name)
}

func (b *Base) Set(name string, v any) error {
	if err := b.props.Set(name, v); err != nil {
		return err
	}
	b.Emit(Event{Kind: EventChange, Message: "property " + name})
	return nil
}

// Size returns the laid-out size, or the width and height properties
// when the kind has them.
func (b *Base) Size() (float64, float64) {
	if b.props.Has(KeyWidth.Name()) && b.props.Has(KeyHeight.Name()) {
		return GetProp(b.props, KeyWidth), GetProp(b.props, KeyHeight)
	}
	return b.width, b.height
}

func (b *Base) Bounds(left, top float64) Rect {
	w, h := b.Size()
	return Rect{Left: left, Top: top, Width: w, Height: h}
}

func (b *Base) Hit(left, top, x, y float64) bool {
	return b.Bounds(left, top).Contains(x, y)
}

func (b *Base) BeforeRender(*Sheet) {}
func (b *Base) DelayRender() bool   { return false }

// applyLine copies the stroke properties shared by all kinds.
func (b *Base) applyLine(st *State) {
	st.LineWidth = GetProp(b.props, KeyLineWidth)
	st.LineStyle = GetProp(b.props, KeyLineStyle)
	st.UseCrispLines = GetProp(b.props, KeyUseCrispLines)
}
