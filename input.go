package canvas2d

import "fmt"

// InputKind is the kind of a raw host input event.
type InputKind uint8

// Raw input kinds.
const (
	MouseDown InputKind = iota
	MouseUp
	MouseMove
	TouchStart
	TouchMove
	TouchEnd
)

var inputNames = [...]string{
	MouseDown:  "mousedown",
	MouseUp:    "mouseup",
	MouseMove:  "mousemove",
	TouchStart: "touchstart",
	TouchMove:  "touchmove",
	TouchEnd:   "touchend",
}

func (k InputKind) String() string {
	if int(k) < len(inputNames) {
		return inputNames[k]
	}
	return fmt.Sprintf("InputKind(%d)", uint8(k))
}

// Touch is one contact point of a touch event.
type Touch struct {
	X, Y float64
}

// InputEvent is a raw mouse or touch event in surface coordinates. Mouse
// events use X and Y; touch events use Touches, the contacts that
// changed.
type InputEvent struct {
	Kind    InputKind
	X, Y    float64
	Touches []Touch
}

// HandleInput normalizes a raw event into pointer events. A press starts
// a gesture, moves while pressed become drags carrying the offset from
// the previous pointer position and a release ends it. Touch events count
// only with exactly one contact; a second touchstart during a gesture
// releases the first. Input is dropped while the book is frozen.
func (b *Book) HandleInput(ev InputEvent) {
	if b.frozen {
		b.log.Debug("canvas2d: input dropped while frozen", "input", ev.Kind.String())
		return
	}

	switch ev.Kind {
	case MouseDown:
		b.pointerDown(ev.X, ev.Y)
	case MouseUp:
		b.pointerUp(ev.X, ev.Y)
	case MouseMove:
		b.pointerMove(ev.X, ev.Y)
	case TouchStart, TouchMove, TouchEnd:
		if len(ev.Touches) != 1 {
			return
		}
		t := ev.Touches[0]
		switch ev.Kind {
		case TouchStart:
			if b.pressed {
				b.pointerUp(t.X, t.Y)
			}
			b.pointerDown(t.X, t.Y)
		case TouchMove:
			b.pointerMove(t.X, t.Y)
		default:
			b.pointerUp(t.X, t.Y)
		}
	}
}

// Pressed reports whether a gesture is in progress.
func (b *Book) Pressed() bool { return b.pressed }

func (b *Book) pointerDown(x, y float64) {
	b.pressed = true
	b.last = Pointer{X: x, Y: y}
	b.Emit(Event{Kind: EventPointerDown, Sheet: b.current, Pointer: b.last})
}

func (b *Book) pointerUp(x, y float64) {
	if !b.pressed {
		return
	}
	b.pressed = false
	b.last = Pointer{X: x, Y: y}
	b.Emit(Event{Kind: EventPointerUp, Sheet: b.current, Pointer: b.last})
}

func (b *Book) pointerMove(x, y float64) {
	if !b.pressed {
		b.last = Pointer{X: x, Y: y}
		return
	}
	p := Pointer{X: x, Y: y, DX: x - b.last.X, DY: y - b.last.Y}
	b.last = Pointer{X: x, Y: y}
	b.Emit(Event{Kind: EventPointerDrag, Sheet: b.current, Pointer: p})
}
