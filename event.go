package canvas2d

import "fmt"

// EventKind identifies a notification. The set is closed.
type EventKind uint8

const (
	// EventChange: a sheet, shape or position changed and needs a render.
	EventChange EventKind = iota
	// EventNewShape: a shape was added to a sheet.
	EventNewShape
	// EventRemoveShape: a shape was removed from a sheet.
	EventRemoveShape
	// EventShapeSelected: a pointer press selected a shape.
	EventShapeSelected
	// EventFreeze: rendering and pointer handling are suspended.
	EventFreeze
	// EventThaw: rendering and pointer handling resumed.
	EventThaw
	// EventPointerDown, EventPointerUp and EventPointerDrag are the
	// normalized pointer events published by a Book.
	EventPointerDown
	EventPointerUp
	EventPointerDrag
	// EventRender: a book finished painting a frame.
	EventRender
)

var eventNames = [...]string{
	EventChange:        "change",
	EventNewShape:      "newShape",
	EventRemoveShape:   "removeShape",
	EventShapeSelected: "shapeSelected",
	EventFreeze:        "freeze",
	EventThaw:          "thaw",
	EventPointerDown:   "mousedown",
	EventPointerUp:     "mouseup",
	EventPointerDrag:   "mousedrag",
	EventRender:        "render",
}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

// ParseEventKind resolves an event name as returned by EventKind.String.
func ParseEventKind(name string) (EventKind, bool) {
	for k, n := range eventNames {
		if n == name {
			return EventKind(k), true
		}
	}
	return 0, false
}

// Pointer is a pointer position in surface coordinates. DX and DY are set
// for drags only.
type Pointer struct {
	X, Y   float64
	DX, DY float64
}

// Event is delivered to subscribers.
type Event struct {
	Kind     EventKind
	Sheet    *Sheet
	Shape    Shape
	Position *Position
	Pointer  Pointer
	Message  string
}

// Subscription identifies a registered handler.
type Subscription uint64

type subscriber struct {
	id   Subscription
	kind EventKind
	fn   func(Event)
}

// Emitter delivers events synchronously, in subscription order. The zero
// value is ready to use.
type Emitter struct {
	next Subscription
	subs []subscriber
}

// Subscribe registers fn for events of the given kind.
func (e *Emitter) Subscribe(kind EventKind, fn func(Event)) Subscription {
	e.next++
	e.subs = append(e.subs, subscriber{id: e.next, kind: kind, fn: fn})
	return e.next
}

// Unsubscribe removes a handler. Unknown ids are ignored.
func (e *Emitter) Unsubscribe(id Subscription) {
	for i, s := range e.subs {
		if s.id == id {
			e.subs = append(e.subs[:i:i], e.subs[i+1:]...)
			return
		}
	}
}

// Emit calls every handler subscribed to ev.Kind. Handlers added or
// removed during delivery take effect for the next event.
func (e *Emitter) Emit(ev Event) {
	subs := e.subs
	for _, s := range subs {
		if s.kind == ev.Kind {
			s.fn(ev)
		}
	}
}
