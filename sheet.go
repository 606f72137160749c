package canvas2d

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/gogpu/canvas2d/surface"
)

// State is the complete paint state of a sheet.
type State = surface.State

// Sheet styles.
const (
	StyleStatic  = "static"
	StyleDynamic = "dynamic"
)

// DefaultSheetName names sheets created without WithSheetName.
const DefaultSheetName = "newSheet"

var sheetStyles = Selection{Values: []string{StyleStatic, StyleDynamic}, AsKey: true}

// Rubber band overlay colour.
const bandColor = "rgba(0,0,255,0.6)"

// SheetOption configures a Sheet.
type SheetOption func(*sheetOptions)

type sheetOptions struct {
	name  string
	style string
	state State
}

func defaultSheetOptions() sheetOptions {
	return sheetOptions{
		name:  DefaultSheetName,
		style: StyleStatic,
		state: surface.DefaultState(),
	}
}

// WithSheetName names the sheet.
func WithSheetName(name string) SheetOption {
	return func(o *sheetOptions) { o.name = name }
}

// WithSheetStyle sets the sheet style, "static" or "dynamic".
func WithSheetStyle(style string) SheetOption {
	return func(o *sheetOptions) { o.style = style }
}

// WithSheetState replaces the initial paint state.
func WithSheetState(st State) SheetOption {
	return func(o *sheetOptions) { o.state = st }
}

type band struct {
	x0, y0, x1, y1 float64
}

func (b band) rect() Rect {
	return Rect{
		Left:   math.Min(b.x0, b.x1),
		Top:    math.Min(b.y0, b.y1),
		Width:  math.Abs(b.x1 - b.x0),
		Height: math.Abs(b.y1 - b.y0),
	}
}

// Sheet is a named page of positioned shapes.
//
// A Sheet mirrors the drawing calls of surface.Canvas. It keeps its own
// paint state and pushes it to the underlying canvas before every call,
// so shapes draw on the sheet without touching the shared canvas state
// directly. Clear is the exception: on a sheet it removes the shapes,
// and ClearCanvas clears the surface.
//
// Sheets in "dynamic" style react to pointer events: a press selects the
// topmost hit shape, a drag moves the selection or draws a rubber band.
type Sheet struct {
	Emitter

	name   string
	style  string
	canvas surface.Canvas
	state  State
	log    *slog.Logger

	positions []*Position
	shapes    map[string]Shape
	byShape   map[Shape]*Position
	subs      map[Shape][2]Subscription

	nextLeft, nextTop float64
	nextPlaced        bool

	dirty     bool
	selection []*Position
	band      *band

	pointerSubs []Subscription
}

// NewSheet creates an empty sheet drawing on c.
func NewSheet(c surface.Canvas, opts ...SheetOption) *Sheet {
	o := defaultSheetOptions()
	for _, opt := range opts {
		opt(&o)
	}
	s := &Sheet{
		name:   o.name,
		canvas: c,
		state:  o.state,
		log:    Logger().With("sheet", o.name),
	}
	s.reset()
	s.SetStyle(o.style)
	return s
}

func (s *Sheet) reset() {
	for shape, ids := range s.subs {
		shape.Unsubscribe(ids[0])
		if p := s.byShape[shape]; p != nil {
			p.Unsubscribe(ids[1])
		}
	}
	s.positions = nil
	s.shapes = make(map[string]Shape)
	s.byShape = make(map[Shape]*Position)
	s.subs = make(map[Shape][2]Subscription)
	s.selection = nil
	s.band = nil
}

// Name returns the sheet name.
func (s *Sheet) Name() string { return s.name }

// Style returns "static" or "dynamic".
func (s *Sheet) Style() string { return s.style }

// SetStyle switches the style. Unknown styles are logged and fall back
// to static.
func (s *Sheet) SetStyle(style string) {
	v, err := sheetStyles.Convert(style)
	if err != nil {
		s.log.Warn("canvas2d: sheet style", "style", style,
			"err", fmt.Errorf("%w: %q", ErrUnknownStyle, style))
		v = StyleStatic
	}
	s.style = v.(string)
}

// MakeDynamic enables pointer interaction.
func (s *Sheet) MakeDynamic() { s.style = StyleDynamic }

// MakeStatic disables pointer interaction.
func (s *Sheet) MakeStatic() { s.style = StyleStatic }

// IsDynamic reports whether the sheet reacts to pointer events.
func (s *Sheet) IsDynamic() bool { return s.style == StyleDynamic }

// Dirty reports whether the sheet changed since its last render.
func (s *Sheet) Dirty() bool { return s.dirty }

// Freeze asks the owning book to suspend input and rendering. The sheet
// itself keeps working.
func (s *Sheet) Freeze() {
	s.Emit(Event{Kind: EventFreeze, Sheet: s})
}

// Thaw asks the owning book to resume.
func (s *Sheet) Thaw() {
	s.Emit(Event{Kind: EventThaw, Sheet: s})
}

func (s *Sheet) makeDirty(Event) {
	s.dirty = true
	s.Emit(Event{Kind: EventChange, Sheet: s})
}

// At sets the coordinates of the next Add or Put. They apply to one add
// only.
func (s *Sheet) At(left, top float64) *Sheet {
	s.nextLeft, s.nextTop, s.nextPlaced = left, top, true
	return s
}

// Put adds shape and returns it, or nil when the name is taken.
func (s *Sheet) Put(shape Shape) Shape {
	added, _ := s.Add(shape)
	return added
}

// Add places shape on the sheet. A shape whose base name is already
// present is skipped: Add logs a warning and returns ErrDuplicateName.
func (s *Sheet) Add(shape Shape) (Shape, error) {
	base := shape.BaseName()
	if _, taken := s.shapes[base]; taken {
		s.log.Warn(fmt.Sprintf("Shape with name '%s' already exists. Skipping.", base))
		return nil, fmt.Errorf("%w: %q on sheet %q", ErrDuplicateName, base, s.name)
	}

	pos := newPosition(shape, s.nextLeft, s.nextTop, s.nextPlaced)
	s.nextLeft, s.nextTop, s.nextPlaced = 0, 0, false

	s.subs[shape] = [2]Subscription{
		shape.Subscribe(EventChange, s.makeDirty),
		pos.Subscribe(EventChange, s.makeDirty),
	}
	s.positions = append(s.positions, pos)
	s.shapes[base] = shape
	s.byShape[shape] = pos

	msg := "added new shape"
	if pos.placed {
		msg += "@" + formatNumber(pos.left) + "," + formatNumber(pos.top)
	}
	s.Emit(Event{Kind: EventNewShape, Sheet: s, Shape: shape, Position: pos, Message: msg})
	s.makeDirty(Event{})
	return shape, nil
}

// Remove takes shape off the sheet. Shapes not on the sheet are ignored.
func (s *Sheet) Remove(shape Shape) {
	pos, ok := s.byShape[shape]
	if !ok {
		return
	}
	ids := s.subs[shape]
	shape.Unsubscribe(ids[0])
	pos.Unsubscribe(ids[1])

	delete(s.subs, shape)
	delete(s.byShape, shape)
	delete(s.shapes, shape.BaseName())
	s.positions = without(s.positions, pos)
	s.selection = without(s.selection, pos)

	s.Emit(Event{Kind: EventRemoveShape, Sheet: s, Shape: shape, Position: pos})
	s.makeDirty(Event{})
}

func without(list []*Position, p *Position) []*Position {
	for i, q := range list {
		if q == p {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}

// Clear removes every shape.
func (s *Sheet) Clear() {
	s.reset()
	s.makeDirty(Event{})
}

// Positions returns the positions in insertion order.
func (s *Sheet) Positions() []*Position {
	return append([]*Position(nil), s.positions...)
}

// Shape returns the shape with the given base name.
func (s *Sheet) Shape(name string) (Shape, bool) {
	shape, ok := s.shapes[BaseName(name)]
	return shape, ok
}

// Position returns where shape sits on the sheet.
func (s *Sheet) Position(shape Shape) (*Position, bool) {
	p, ok := s.byShape[shape]
	return p, ok
}

// Bounds returns the bounding box of the named shape.
func (s *Sheet) Bounds(name string) (Rect, bool) {
	shape, ok := s.Shape(name)
	if !ok {
		return Rect{}, false
	}
	return s.byShape[shape].Bounds(), true
}

// Selection returns the selected positions.
func (s *Sheet) Selection() []*Position {
	return append([]*Position(nil), s.selection...)
}

// RubberBand returns the current rubber band rectangle, if one is shown.
func (s *Sheet) RubberBand() (Rect, bool) {
	if s.band == nil {
		return Rect{}, false
	}
	return s.band.rect(), true
}

// Render paints every shape. Shapes that delay rendering paint after all
// others. The rubber band is drawn last.
func (s *Sheet) Render() {
	s.dirty = false
	var delayed []*Position
	for _, p := range s.positions {
		if p.shape.DelayRender() {
			delayed = append(delayed, p)
			continue
		}
		p.Render(s)
	}
	for _, p := range delayed {
		p.Render(s)
	}
	if s.band != nil {
		s.drawBand()
	}
	s.log.Debug("canvas2d: sheet rendered",
		"shapes", len(s.positions), "delayed", len(delayed))
}

func (s *Sheet) drawBand() {
	s.Save()
	st := s.state
	st.StrokeStyle = bandColor
	st.LineWidth = 1
	st.LineStyle = surface.LineStyleDashed
	st.UseCrispLines = true
	s.state = st
	r := s.band.rect()
	s.StrokeRect(r.Left, r.Top, r.Width, r.Height)
	s.Restore()
}

// ToADL describes the sheet and its shapes.
func (s *Sheet) ToADL() string {
	var b strings.Builder
	b.WriteString("Sheet " + s.name + " +" + s.style + " {\n")
	for _, p := range s.positions {
		if line := p.ToADL("  "); line != "" {
			b.WriteString(line + "\n")
		}
	}
	b.WriteString("}")
	return b.String()
}

// attach subscribes the sheet to the pointer events of e.
func (s *Sheet) attach(e *Emitter) {
	s.detach(e)
	s.pointerSubs = []Subscription{
		e.Subscribe(EventPointerDown, s.pointerDown),
		e.Subscribe(EventPointerDrag, s.pointerDrag),
		e.Subscribe(EventPointerUp, s.pointerUp),
	}
}

func (s *Sheet) detach(e *Emitter) {
	for _, id := range s.pointerSubs {
		e.Unsubscribe(id)
	}
	s.pointerSubs = nil
}

func (s *Sheet) pointerDown(ev Event) {
	if !s.IsDynamic() {
		return
	}
	x, y := ev.Pointer.X, ev.Pointer.Y
	s.selection = nil
	for i := len(s.positions) - 1; i >= 0; i-- {
		p := s.positions[i]
		if p.Hit(x, y) {
			s.selection = []*Position{p}
			s.Emit(Event{Kind: EventShapeSelected, Sheet: s, Shape: p.shape, Position: p, Pointer: ev.Pointer})
			return
		}
	}
	s.band = &band{x0: x, y0: y, x1: x, y1: y}
}

func (s *Sheet) pointerDrag(ev Event) {
	if !s.IsDynamic() {
		return
	}
	if len(s.selection) > 0 {
		for _, p := range s.selection {
			p.Move(ev.Pointer.DX, ev.Pointer.DY)
		}
		return
	}
	if s.band == nil {
		s.band = &band{x0: ev.Pointer.X - ev.Pointer.DX, y0: ev.Pointer.Y - ev.Pointer.DY}
	}
	s.band.x1, s.band.y1 = ev.Pointer.X, ev.Pointer.Y
	s.makeDirty(Event{})
}

func (s *Sheet) pointerUp(Event) {
	if s.band == nil {
		return
	}
	s.band = nil
	s.makeDirty(Event{})
}

func (s *Sheet) transfer() { s.canvas.SetState(s.state) }

// Width returns the canvas width.
func (s *Sheet) Width() int { return s.canvas.Width() }

// Height returns the canvas height.
func (s *Sheet) Height() int { return s.canvas.Height() }

// State returns the sheet's paint state.
func (s *Sheet) State() State { return s.state }

// SetState replaces the sheet's paint state. It reaches the canvas with
// the next drawing call.
func (s *Sheet) SetState(st State) { s.state = st }

func (s *Sheet) Save() {
	s.transfer()
	s.canvas.Save()
}

// Restore pops the canvas state and adopts it as the sheet's own.
func (s *Sheet) Restore() {
	s.canvas.Restore()
	s.state = s.canvas.State()
}

func (s *Sheet) Translate(x, y float64) { s.transfer(); s.canvas.Translate(x, y) }
func (s *Sheet) Scale(x, y float64)     { s.transfer(); s.canvas.Scale(x, y) }
func (s *Sheet) Rotate(angle float64)   { s.transfer(); s.canvas.Rotate(angle) }

func (s *Sheet) Transform(m surface.Matrix) {
	s.transfer()
	s.canvas.Transform(m)
}

func (s *Sheet) SetTransform(m surface.Matrix) {
	s.transfer()
	s.canvas.SetTransform(m)
}

func (s *Sheet) BeginPath()          { s.transfer(); s.canvas.BeginPath() }
func (s *Sheet) ClosePath()          { s.transfer(); s.canvas.ClosePath() }
func (s *Sheet) MoveTo(x, y float64) { s.transfer(); s.canvas.MoveTo(x, y) }
func (s *Sheet) LineTo(x, y float64) { s.transfer(); s.canvas.LineTo(x, y) }

func (s *Sheet) QuadraticCurveTo(cpx, cpy, x, y float64) {
	s.transfer()
	s.canvas.QuadraticCurveTo(cpx, cpy, x, y)
}

func (s *Sheet) BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64) {
	s.transfer()
	s.canvas.BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y)
}

func (s *Sheet) Arc(x, y, radius, startAngle, endAngle float64, anticlockwise bool) {
	s.transfer()
	s.canvas.Arc(x, y, radius, startAngle, endAngle, anticlockwise)
}

func (s *Sheet) Rect(x, y, w, h float64) { s.transfer(); s.canvas.Rect(x, y, w, h) }

func (s *Sheet) Fill()   { s.transfer(); s.canvas.Fill() }
func (s *Sheet) Stroke() { s.transfer(); s.canvas.Stroke() }
func (s *Sheet) Clip()   { s.transfer(); s.canvas.Clip() }

func (s *Sheet) FillRect(x, y, w, h float64)       { s.transfer(); s.canvas.FillRect(x, y, w, h) }
func (s *Sheet) StrokeRect(x, y, w, h float64)     { s.transfer(); s.canvas.StrokeRect(x, y, w, h) }
func (s *Sheet) ClearRect(x, y, w, h float64)      { s.transfer(); s.canvas.ClearRect(x, y, w, h) }
func (s *Sheet) FillStrokeRect(x, y, w, h float64) { s.transfer(); s.canvas.FillStrokeRect(x, y, w, h) }

// ClearCanvas clears the whole surface.
func (s *Sheet) ClearCanvas() { s.transfer(); s.canvas.Clear() }

func (s *Sheet) FillText(t string, x, y, maxWidth float64) {
	s.transfer()
	s.canvas.FillText(t, x, y, maxWidth)
}

func (s *Sheet) StrokeText(t string, x, y, maxWidth float64) {
	s.transfer()
	s.canvas.StrokeText(t, x, y, maxWidth)
}

func (s *Sheet) FillTextCenter(t string, x, y, maxWidth float64) {
	s.transfer()
	s.canvas.FillTextCenter(t, x, y, maxWidth)
}

func (s *Sheet) FillTextRight(t string, x, y, maxWidth float64) {
	s.transfer()
	s.canvas.FillTextRight(t, x, y, maxWidth)
}

func (s *Sheet) StrokeTextCenter(t string, x, y, maxWidth float64) {
	s.transfer()
	s.canvas.StrokeTextCenter(t, x, y, maxWidth)
}

func (s *Sheet) StrokeTextRight(t string, x, y, maxWidth float64) {
	s.transfer()
	s.canvas.StrokeTextRight(t, x, y, maxWidth)
}

func (s *Sheet) MeasureText(t string) float64 {
	s.transfer()
	return s.canvas.MeasureText(t)
}

func (s *Sheet) FontSize() float64 {
	s.transfer()
	return s.canvas.FontSize()
}
