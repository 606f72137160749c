package canvas2d

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gogpu/canvas2d/surface"
)

// Policy says what happens to a value a Converter cannot accept.
type Policy uint8

const (
	// Substitute replaces the value with the property default and logs a
	// warning.
	Substitute Policy = iota
	// Reject refuses the value; the setter returns an error and the
	// property keeps its previous value.
	Reject
)

// Converter normalizes raw property values.
type Converter interface {
	// Name identifies the converter in errors and logs.
	Name() string
	// Convert returns the normalized value or an error wrapping
	// ErrMalformedInput.
	Convert(v any) (any, error)
	// Policy says how a Convert failure is handled.
	Policy() Policy
}

// Getter reads a property from a property bag.
type Getter func(p *Props) any

// GetterFactory is implemented by converters that supply their own read
// strategy for the properties they convert.
type GetterFactory interface {
	NewGetter(spec PropertySpec) Getter
}

// PropertySpec declares one property of a shape kind.
type PropertySpec struct {
	Name      string
	Converter Converter
	Default   any
}

// Accessor reads and writes one property. Kinds may declare explicit
// accessors; every other property gets a generated one.
type Accessor struct {
	Get func(p *Props) any
	Set func(p *Props, v any) error
}

// Key is a typed property name.
type Key[T any] struct {
	name string
}

// NewKey returns a typed key for the named property.
func NewKey[T any](name string) Key[T] { return Key[T]{name: name} }

// Name returns the property name.
func (k Key[T]) Name() string { return k.name }

// Property keys of the built-in kinds.
var (
	KeyLineWidth      = NewKey[float64]("lineWidth")
	KeyLineStyle      = NewKey[string]("lineStyle")
	KeyUseCrispLines  = NewKey[bool]("useCrispLines")
	KeyWidth          = NewKey[float64]("width")
	KeyHeight         = NewKey[float64]("height")
	KeyLineColor      = NewKey[string]("lineColor")
	KeyFillColor      = NewKey[string]("fillColor")
	KeyText           = NewKey[string]("text")
	KeyColor          = NewKey[string]("color")
	KeyFont           = NewKey[string]("font")
	KeyTextAlign      = NewKey[string]("textAlign")
	KeyTextDecoration = NewKey[string]("textDecoration")
	KeyDX             = NewKey[float64]("dx")
	KeyDY             = NewKey[float64]("dy")
	KeyFrom           = NewKey[string]("from")
	KeyTo             = NewKey[string]("to")
)

// Props is the property bag of one shape.
type Props struct {
	kind   *Kind
	values map[string]any
}

func newProps(k *Kind) *Props {
	p := &Props{kind: k, values: make(map[string]any, len(k.specs))}
	for _, spec := range k.specs {
		p.values[spec.Name] = k.defaultOf(spec)
	}
	return p
}

// Has reports whether the kind declares the property.
func (p *Props) Has(name string) bool {
	_, ok := p.kind.index[name]
	return ok
}

// Raw returns the stored value without going through an accessor.
func (p *Props) Raw(name string) any { return p.values[name] }

// Get reads a property through its accessor. Unknown names yield nil.
func (p *Props) Get(name string) any {
	acc, ok := p.kind.resolved[name]
	if !ok {
		return nil
	}
	return acc.Get(p)
}

// Set writes a property through its accessor.
func (p *Props) Set(name string, v any) error {
	acc, ok := p.kind.resolved[name]
	if !ok {
		return &PropertyError{Kind: p.kind.Name, Property: name, Value: v, Err: fmt.Errorf("%w: no such property", ErrMalformedInput)}
	}
	return acc.Set(p, v)
}

// Store converts v with the property's converter and stores it. This is
// the write half of a generated accessor; explicit accessors call it too.
func (p *Props) Store(name string, v any) error {
	i, ok := p.kind.index[name]
	if !ok {
		return &PropertyError{Kind: p.kind.Name, Property: name, Value: v, Err: fmt.Errorf("%w: no such property", ErrMalformedInput)}
	}
	spec := p.kind.specs[i]
	out, err := spec.Converter.Convert(v)
	if err != nil {
		if spec.Converter.Policy() == Reject {
			return &PropertyError{Kind: p.kind.Name, Property: name, Value: v, Err: err}
		}
		Logger().Warn("canvas2d: property value substituted",
			"kind", p.kind.Name, "property", name, "value", v, "err", err)
		out = p.kind.defaultOf(spec)
	}
	p.values[name] = out
	return nil
}

// IsDefault reports whether the property holds its default value.
func (p *Props) IsDefault(name string) bool {
	i, ok := p.kind.index[name]
	if !ok {
		return false
	}
	return p.values[name] == p.kind.defaultOf(p.kind.specs[i])
}

// GetProp reads a typed property. A missing or mistyped value yields the
// zero value of T.
func GetProp[T any](p *Props, k Key[T]) T {
	v, _ := p.Get(k.name).(T)
	return v
}

// SetProp writes a typed property.
func SetProp[T any](p *Props, k Key[T], v T) error {
	return p.Set(k.name, v)
}

func fold(s string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}

func malformed(conv string, v any) error {
	return fmt.Errorf("%w: %s cannot use %v (%T)", ErrMalformedInput, conv, v, v)
}

// Text accepts any value and stores its string form.
type Text struct{}

func (Text) Name() string   { return "text" }
func (Text) Policy() Policy { return Reject }

func (Text) Convert(v any) (any, error) {
	switch t := v.(type) {
	case nil:
		return nil, malformed("text", v)
	case string:
		return t, nil
	case fmt.Stringer:
		return t.String(), nil
	default:
		return fmt.Sprint(t), nil
	}
}

// Number accepts Go numbers and numeric strings and stores a float64.
type Number struct{}

func (Number) Name() string   { return "number" }
func (Number) Policy() Policy { return Substitute }

func (Number) Convert(v any) (any, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return nil, malformed("number", v)
		}
		return f, nil
	}
	return nil, malformed("number", v)
}

// Bool accepts booleans and the strings true, false, yes, no, on, off,
// 1 and 0.
type Bool struct{}

func (Bool) Name() string   { return "bool" }
func (Bool) Policy() Policy { return Reject }

func (Bool) Convert(v any) (any, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		switch fold(b) {
		case "true", "yes", "on", "1":
			return true, nil
		case "false", "no", "off", "0":
			return false, nil
		}
	}
	return nil, malformed("bool", v)
}

// Color accepts any colour string surface.ParseColor understands and
// keeps its textual form.
type Color struct{}

func (Color) Name() string   { return "color" }
func (Color) Policy() Policy { return Substitute }

func (Color) Convert(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, malformed("color", v)
	}
	s = strings.TrimSpace(s)
	if _, err := surface.ParseColor(s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	return s, nil
}

// Font accepts a CSS-like font string with at least one word.
type Font struct{}

func (Font) Name() string   { return "font" }
func (Font) Policy() Policy { return Substitute }

func (Font) Convert(v any) (any, error) {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return nil, malformed("font", v)
	}
	return strings.TrimSpace(s), nil
}

// Align accepts left, right, center, start and end.
type Align struct{}

func (Align) Name() string   { return "align" }
func (Align) Policy() Policy { return Reject }

func (Align) Convert(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, malformed("align", v)
	}
	switch a := fold(s); a {
	case "left", "right", "center", "start", "end":
		return a, nil
	}
	return nil, malformed("align", v)
}

// Decoration accepts a space separated list of text decorations. Words
// other than underline, overline and line-through are kept but ignored
// when painting.
type Decoration struct{}

func (Decoration) Name() string   { return "decoration" }
func (Decoration) Policy() Policy { return Substitute }

func (Decoration) Convert(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, malformed("decoration", v)
	}
	s = strings.Join(strings.Fields(fold(s)), " ")
	if s == "" {
		s = "none"
	}
	return s, nil
}

// NewGetter reads the decoration as its distinct known words.
func (Decoration) NewGetter(spec PropertySpec) Getter {
	return func(p *Props) any {
		raw, _ := p.Raw(spec.Name).(string)
		words := surface.DecorationWords(raw)
		if len(words) == 0 {
			return "none"
		}
		return strings.Join(words, " ")
	}
}

// LineStyle accepts solid and dashed.
type LineStyle struct{}

func (LineStyle) Name() string   { return "lineStyle" }
func (LineStyle) Policy() Policy { return Reject }

func (LineStyle) Convert(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, malformed("lineStyle", v)
	}
	switch l := fold(s); l {
	case surface.LineStyleSolid, surface.LineStyleDashed:
		return l, nil
	}
	return nil, malformed("lineStyle", v)
}

// Selection accepts one of a fixed set of values, compared without
// regard to case. With AsKey the canonical spelling from Values is
// stored; otherwise the value is stored as given.
type Selection struct {
	Values []string
	AsKey  bool
}

func (Selection) Name() string   { return "selection" }
func (Selection) Policy() Policy { return Reject }

func (s Selection) Convert(v any) (any, error) {
	str, ok := v.(string)
	if !ok {
		return nil, malformed("selection", v)
	}
	f := fold(str)
	for _, want := range s.Values {
		if fold(want) == f {
			if s.AsKey {
				return want, nil
			}
			return str, nil
		}
	}
	return nil, fmt.Errorf("%w: %q not one of %v", ErrMalformedInput, str, s.Values)
}
