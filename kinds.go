package canvas2d

import (
	"math"

	"github.com/gogpu/canvas2d/surface"
)

// Library names of the built-in kinds.
const (
	LibraryCanvas2D = "Canvas2D"
	LibraryDiagram  = "Diagram"
)

// shapeKind holds the stroke properties every built-in kind inherits.
// It is never registered.
func shapeKind() *Kind {
	return &Kind{
		Name: "shape",
		Properties: []PropertySpec{
			{Name: "lineWidth", Converter: Number{}, Default: 1.0},
			{Name: "lineStyle", Converter: LineStyle{}, Default: surface.LineStyleSolid},
			{Name: "useCrispLines", Converter: Bool{}, Default: true},
		},
	}
}

func builtinKinds() []*Kind {
	parent := shapeKind()
	return []*Kind{
		rectangleKind(parent),
		textKind(parent),
		lineKind(parent),
		connectorKind(parent),
	}
}

// Rectangle is an outlined, filled box.
type Rectangle struct {
	*Base
}

func rectangleKind(parent *Kind) *Kind {
	return &Kind{
		Name:      "rectangle",
		Aliases:   []string{"box"},
		Libraries: []string{LibraryCanvas2D},
		Parent:    parent,
		Properties: []PropertySpec{
			{Name: "width", Converter: Number{}, Default: 50.0},
			{Name: "height", Converter: Number{}, Default: 50.0},
			{Name: "lineColor", Converter: Color{}, Default: "black"},
			{Name: "fillColor", Converter: Color{}, Default: "white"},
		},
		New: func(b *Base) Shape { return &Rectangle{Base: b} },
	}
}

func (r *Rectangle) Draw(s *Sheet, left, top float64) {
	st := s.State()
	r.applyLine(&st)
	st.StrokeStyle = GetProp(r.props, KeyLineColor)
	st.FillStyle = GetProp(r.props, KeyFillColor)
	s.SetState(st)

	w, h := r.Size()
	s.FillStrokeRect(left, top, w, h)
}

// Label is a single line of text. Its top edge sits at the position; the
// baseline is one font size below.
type Label struct {
	*Base
}

func textKind(parent *Kind) *Kind {
	return &Kind{
		Name:      "text",
		Aliases:   []string{"label"},
		Libraries: []string{LibraryCanvas2D},
		Parent:    parent,
		Properties: []PropertySpec{
			{Name: "text", Converter: Text{}, Default: ""},
			{Name: "color", Converter: Color{}, Default: "black"},
			{Name: "font", Converter: Font{}, Default: "10pt Sans-Serif"},
			{Name: "textAlign", Converter: Align{}, Default: "left"},
			{Name: "textDecoration", Converter: Decoration{}, Default: "none"},
		},
		Defaults: map[string]any{"useCrispLines": false},
		New:      func(b *Base) Shape { return &Label{Base: b} },
	}
}

// BeforeRender measures the text in the label's font.
func (l *Label) BeforeRender(s *Sheet) {
	s.Save()
	st := s.State()
	st.Font = GetProp(l.props, KeyFont)
	s.SetState(st)
	l.width = s.MeasureText(GetProp(l.props, KeyText))
	l.height = s.FontSize()
	s.Restore()
}

func (l *Label) Draw(s *Sheet, left, top float64) {
	color := GetProp(l.props, KeyColor)
	st := s.State()
	st.UseCrispLines = GetProp(l.props, KeyUseCrispLines)
	st.StrokeStyle = color
	st.FillStyle = color
	st.Font = GetProp(l.props, KeyFont)
	st.TextAlign = GetProp(l.props, KeyTextAlign)
	st.TextDecoration = GetProp(l.props, KeyTextDecoration)
	s.SetState(st)

	s.FillText(GetProp(l.props, KeyText), left, top+l.height, 0)
}

// Line is a straight segment from its position by (dx, dy).
type Line struct {
	*Base
}

func lineKind(parent *Kind) *Kind {
	return &Kind{
		Name:      "line",
		Libraries: []string{LibraryCanvas2D},
		Parent:    parent,
		Properties: []PropertySpec{
			{Name: "dx", Converter: Number{}, Default: 100.0},
			{Name: "dy", Converter: Number{}, Default: 0.0},
			{Name: "lineColor", Converter: Color{}, Default: "black"},
		},
		New: func(b *Base) Shape { return &Line{Base: b} },
	}
}

// hitSlop widens thin shapes for hit testing.
const hitSlop = 2

func (l *Line) Bounds(left, top float64) Rect {
	dx, dy := GetProp(l.props, KeyDX), GetProp(l.props, KeyDY)
	return Rect{
		Left:   math.Min(left, left+dx),
		Top:    math.Min(top, top+dy),
		Width:  math.Abs(dx),
		Height: math.Abs(dy),
	}
}

func (l *Line) Hit(left, top, x, y float64) bool {
	b := l.Bounds(left, top)
	b.Left -= hitSlop
	b.Top -= hitSlop
	b.Width += 2 * hitSlop
	b.Height += 2 * hitSlop
	return b.Contains(x, y)
}

func (l *Line) Draw(s *Sheet, left, top float64) {
	st := s.State()
	l.applyLine(&st)
	st.StrokeStyle = GetProp(l.props, KeyLineColor)
	s.SetState(st)

	s.BeginPath()
	s.MoveTo(left, top)
	s.LineTo(left+GetProp(l.props, KeyDX), top+GetProp(l.props, KeyDY))
	s.Stroke()
}

// Connector joins the centres of two other shapes on the same sheet. It
// paints in the second pass so both ends are laid out first. Connectors
// are not selectable.
type Connector struct {
	*Base
}

func connectorKind(parent *Kind) *Kind {
	return &Kind{
		Name:      "connector",
		Aliases:   []string{"link"},
		Libraries: []string{LibraryDiagram},
		Parent:    parent,
		Properties: []PropertySpec{
			{Name: "from", Converter: Text{}, Default: ""},
			{Name: "to", Converter: Text{}, Default: ""},
			{Name: "lineColor", Converter: Color{}, Default: "black"},
		},
		New: func(b *Base) Shape { return &Connector{Base: b} },
	}
}

func (c *Connector) DelayRender() bool { return true }

func (c *Connector) Hit(float64, float64, float64, float64) bool { return false }

// Ends returns the centres of the connected shapes.
func (c *Connector) Ends(s *Sheet) (x1, y1, x2, y2 float64, ok bool) {
	from, ok1 := s.Bounds(GetProp(c.props, KeyFrom))
	to, ok2 := s.Bounds(GetProp(c.props, KeyTo))
	if !ok1 || !ok2 {
		return 0, 0, 0, 0, false
	}
	x1, y1 = from.Center()
	x2, y2 = to.Center()
	return x1, y1, x2, y2, true
}

func (c *Connector) Bounds(left, top float64) Rect {
	return Rect{Left: left, Top: top}
}

func (c *Connector) Draw(s *Sheet, _, _ float64) {
	x1, y1, x2, y2, ok := c.Ends(s)
	if !ok {
		Logger().Debug("canvas2d: connector end missing", "name", c.Name(),
			"from", GetProp(c.props, KeyFrom), "to", GetProp(c.props, KeyTo))
		return
	}
	st := s.State()
	c.applyLine(&st)
	st.StrokeStyle = GetProp(c.props, KeyLineColor)
	s.SetState(st)

	s.BeginPath()
	s.MoveTo(x1, y1)
	s.LineTo(x2, y2)
	s.Stroke()
}
