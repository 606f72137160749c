package canvas2d

import (
	"fmt"
	"strconv"
	"strings"
)

// Position binds a shape to a location on one sheet.
type Position struct {
	Emitter

	shape     Shape
	left, top float64
	placed    bool
}

func newPosition(s Shape, left, top float64, placed bool) *Position {
	return &Position{shape: s, left: left, top: top, placed: placed}
}

// Shape returns the bound shape.
func (p *Position) Shape() Shape { return p.shape }

// Left returns the horizontal coordinate.
func (p *Position) Left() float64 { return p.left }

// Top returns the vertical coordinate.
func (p *Position) Top() float64 { return p.top }

// Placed reports whether the shape was added with explicit coordinates.
// An unplaced position renders at (0, 0).
func (p *Position) Placed() bool { return p.placed }

// Move translates the position and notifies EventChange subscribers.
// Move(-dx, -dy) undoes Move(dx, dy) exactly when the sums are exact in
// float64, as for integer and dyadic deltas.
func (p *Position) Move(dx, dy float64) {
	p.left += dx
	p.top += dy
	p.Emit(Event{Kind: EventChange, Position: p, Shape: p.shape, Message: "moved"})
}

// MoveTo places the position at (left, top).
func (p *Position) MoveTo(left, top float64) {
	p.left, p.top, p.placed = left, top, true
	p.Emit(Event{Kind: EventChange, Position: p, Shape: p.shape, Message: "moved"})
}

// Bounds returns the shape's bounding box at this position.
func (p *Position) Bounds() Rect { return p.shape.Bounds(p.left, p.top) }

// Hit delegates to the shape's hit test.
func (p *Position) Hit(x, y float64) bool { return p.shape.Hit(p.left, p.top, x, y) }

// Render lays the shape out and paints it inside a save/restore pair.
func (p *Position) Render(s *Sheet) {
	p.shape.BeforeRender(s)
	s.Save()
	p.shape.Draw(s, p.left, p.top)
	s.Restore()
}

// ToADL describes the positioned shape on one line: kind, name, the
// coordinates when placed and every property that differs from its
// default.
func (p *Position) ToADL(indent string) string {
	var b strings.Builder
	b.WriteString(indent)
	b.WriteString(p.shape.Kind().Name)
	b.WriteByte(' ')
	b.WriteString(p.shape.Name())
	if p.placed {
		fmt.Fprintf(&b, " @ %s,%s", formatNumber(p.left), formatNumber(p.top))
	}
	props := p.shape.Props()
	for _, spec := range p.shape.Kind().specs {
		if props.IsDefault(spec.Name) {
			continue
		}
		b.WriteString(" +")
		b.WriteString(spec.Name)
		b.WriteByte('=')
		b.WriteString(formatValue(props.Get(spec.Name)))
	}
	return b.String()
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func formatValue(v any) string {
	switch t := v.(type) {
	case float64:
		return formatNumber(t)
	case bool:
		return strconv.FormatBool(t)
	case string:
		return strconv.Quote(t)
	}
	return strconv.Quote(fmt.Sprint(v))
}
