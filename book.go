package canvas2d

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/gogpu/canvas2d/surface"
)

// Book owns one drawing surface and the sheets drawn on it. One sheet at
// a time is current: it is the one rendered and the one receiving
// pointer events.
//
// A Book re-renders the current sheet whenever it changes, once started
// and while not frozen. Book is NOT safe for concurrent use; all calls
// including HandleInput are expected from one goroutine.
type Book struct {
	Emitter

	id         uuid.UUID
	name       string
	native     surface.Native
	canvas     *surface.Adapter
	log        *slog.Logger
	background string
	sheetOpts  []SheetOption

	sheets    []*Sheet
	current   *Sheet
	sheetSubs map[*Sheet][]Subscription

	plugins     map[string]Plugin
	pluginOrder []string

	started bool
	frozen  bool
	frames  int

	pressed bool
	last    Pointer
}

// NewBook wraps n in a surface adapter and activates the configured
// plugins. The book has no sheet until AddSheet.
func NewBook(n surface.Native, opts ...BookOption) (*Book, error) {
	if n == nil {
		return nil, fmt.Errorf("%w: nil native surface", ErrConfiguration)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	id := uuid.New()
	name := o.name
	if name == "" {
		name = id.String()
	}
	log := o.logger
	if log == nil {
		log = Logger()
	}

	b := &Book{
		id:         id,
		name:       name,
		native:     n,
		canvas:     surface.New(n, o.surface...),
		log:        log.With("book", name, "surface", fmt.Sprintf("%T", n)),
		background: o.background,
		sheetOpts:  o.sheet,
		sheetSubs:  make(map[*Sheet][]Subscription),
		plugins:    make(map[string]Plugin),
	}

	for _, newPlugin := range o.plugins {
		p := newPlugin()
		if _, dup := b.plugins[p.Name()]; dup {
			return nil, fmt.Errorf("%w: plugin %q added twice", ErrConfiguration, p.Name())
		}
		if err := p.Activate(b); err != nil {
			return nil, fmt.Errorf("%w: plugin %q: %w", ErrConfiguration, p.Name(), err)
		}
		b.plugins[p.Name()] = p
		b.pluginOrder = append(b.pluginOrder, p.Name())
	}

	b.log.Info("canvas2d: book created",
		"text", b.canvas.TextTier().String(), "plugins", b.pluginOrder)
	return b, nil
}

// ID returns the unique id of the book.
func (b *Book) ID() uuid.UUID { return b.id }

// Name returns the book name.
func (b *Book) Name() string { return b.name }

// Canvas returns the normalized canvas shared by the book's sheets.
func (b *Book) Canvas() *surface.Adapter { return b.canvas }

// Native returns the native surface.
func (b *Book) Native() surface.Native { return b.native }

// Logger returns the book's logger.
func (b *Book) Logger() *slog.Logger { return b.log }

// SetLogger replaces the logger of the book and its sheets.
func (b *Book) SetLogger(l *slog.Logger) {
	b.log = l
	for _, s := range b.sheets {
		s.log = l.With("sheet", s.name)
	}
}

// Plugin returns the named plugin instance.
func (b *Book) Plugin(name string) (Plugin, bool) {
	p, ok := b.plugins[name]
	return p, ok
}

// Plugins returns the plugin names in activation order.
func (b *Book) Plugins() []string {
	return append([]string(nil), b.pluginOrder...)
}

// AddSheet creates a sheet on the book's canvas. The first sheet becomes
// current.
func (b *Book) AddSheet(opts ...SheetOption) *Sheet {
	all := append(append([]SheetOption(nil), b.sheetOpts...), opts...)
	s := NewSheet(b.canvas, all...)
	s.log = b.log.With("sheet", s.name)

	b.sheetSubs[s] = []Subscription{
		s.Subscribe(EventChange, b.sheetChanged),
		s.Subscribe(EventFreeze, b.sheetFrozen),
		s.Subscribe(EventThaw, b.sheetThawed),
		s.Subscribe(EventNewShape, b.relay),
		s.Subscribe(EventRemoveShape, b.relay),
		s.Subscribe(EventShapeSelected, b.relay),
	}
	b.sheets = append(b.sheets, s)
	if b.current == nil {
		b.setCurrent(s)
	}
	return s
}

// RemoveSheet detaches s from the book. Removing the current sheet makes
// the first remaining sheet current.
func (b *Book) RemoveSheet(s *Sheet) {
	ids, ok := b.sheetSubs[s]
	if !ok {
		return
	}
	for _, id := range ids {
		s.Unsubscribe(id)
	}
	delete(b.sheetSubs, s)
	for i, t := range b.sheets {
		if t == s {
			b.sheets = append(b.sheets[:i:i], b.sheets[i+1:]...)
			break
		}
	}
	if b.current == s {
		s.detach(&b.Emitter)
		b.current = nil
		if len(b.sheets) > 0 {
			b.setCurrent(b.sheets[0])
		}
	}
}

// Sheets returns the sheets in creation order.
func (b *Book) Sheets() []*Sheet {
	return append([]*Sheet(nil), b.sheets...)
}

// Sheet returns the sheet with the given name.
func (b *Book) Sheet(name string) (*Sheet, bool) {
	for _, s := range b.sheets {
		if s.name == name {
			return s, true
		}
	}
	return nil, false
}

// CurrentSheet returns the current sheet, nil before the first AddSheet.
func (b *Book) CurrentSheet() *Sheet { return b.current }

// SetCurrentSheet makes s, a sheet of this book, current and renders it.
func (b *Book) SetCurrentSheet(s *Sheet) error {
	if _, ok := b.sheetSubs[s]; !ok {
		return fmt.Errorf("%w: sheet %q is not part of book %q", ErrConfiguration, s.name, b.name)
	}
	b.setCurrent(s)
	b.rerender()
	return nil
}

func (b *Book) setCurrent(s *Sheet) {
	if b.current != nil {
		b.current.detach(&b.Emitter)
	}
	b.current = s
	s.attach(&b.Emitter)
}

// sheet returns the current sheet, adding a default one to an empty book.
func (b *Book) sheet() *Sheet {
	if b.current == nil {
		b.AddSheet()
	}
	return b.current
}

// At sets the placement of the next shape put on the current sheet.
func (b *Book) At(left, top float64) *Sheet { return b.sheet().At(left, top) }

// Put adds shape to the current sheet, returning nil on a name conflict.
func (b *Book) Put(shape Shape) Shape { return b.sheet().Put(shape) }

// Add adds shape to the current sheet.
func (b *Book) Add(shape Shape) (Shape, error) { return b.sheet().Add(shape) }

// Freeze suspends rendering and input of the current sheet.
func (b *Book) Freeze() { b.sheet().Freeze() }

// Thaw resumes the current sheet.
func (b *Book) Thaw() { b.sheet().Thaw() }

// MakeDynamic makes the current sheet interactive.
func (b *Book) MakeDynamic() { b.sheet().MakeDynamic() }

// MakeStatic makes the current sheet non-interactive.
func (b *Book) MakeStatic() { b.sheet().MakeStatic() }

// On subscribes fn to the named event, one of the names returned by
// EventKind.String such as "mousedown" or "newShape".
func (b *Book) On(name string, fn func(Event)) (Subscription, error) {
	kind, ok := ParseEventKind(name)
	if !ok {
		return 0, fmt.Errorf("%w: unknown event %q", ErrConfiguration, name)
	}
	return b.Subscribe(kind, fn), nil
}

// Start enables automatic rendering and renders the current sheet.
func (b *Book) Start() {
	if b.started {
		return
	}
	b.started = true
	b.log.Debug("canvas2d: book started")
	b.rerender()
}

// Started reports whether Start was called.
func (b *Book) Started() bool { return b.started }

// Frozen reports whether the book is frozen.
func (b *Book) Frozen() bool { return b.frozen }

// Frames returns the number of frames rendered.
func (b *Book) Frames() int { return b.frames }

func (b *Book) rerender() {
	if b.started && !b.frozen {
		b.Render()
	}
}

// Render clears the surface and paints the current sheet.
func (b *Book) Render() {
	s := b.current
	if s == nil {
		return
	}

	s.ClearCanvas()
	if b.background != "" {
		s.Save()
		st := s.State()
		st.FillStyle = b.background
		s.SetState(st)
		s.FillRect(0, 0, float64(s.Width()), float64(s.Height()))
		s.Restore()
	}
	s.Render()
	b.frames++
	b.Emit(Event{Kind: EventRender, Sheet: s})
}

func (b *Book) sheetChanged(ev Event) {
	if ev.Sheet == b.current {
		b.rerender()
	}
}

func (b *Book) sheetFrozen(ev Event) {
	if ev.Sheet == b.current {
		b.frozen = true
		b.pressed = false
		b.Emit(ev)
	}
}

// sheetThawed resumes the book and renders what changed while frozen.
func (b *Book) sheetThawed(ev Event) {
	if ev.Sheet == b.current {
		b.frozen = false
		b.Emit(ev)
		if b.current.Dirty() {
			b.rerender()
		}
	}
}

func (b *Book) relay(ev Event) {
	if ev.Kind == EventNewShape {
		b.log.Debug("canvas2d: "+ev.Message, "sheet", ev.Sheet.name, "shape", ev.Shape.Name())
	}
	b.Emit(ev)
}

// ToADL describes every sheet of the book, one after the other.
func (b *Book) ToADL() string {
	parts := make([]string, len(b.sheets))
	for i, s := range b.sheets {
		parts[i] = s.ToADL()
	}
	return strings.Join(parts, "\n")
}

// Close releases the native surface when it holds resources.
func (b *Book) Close() error {
	surface.Release(b.native)
	if c, ok := b.native.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
