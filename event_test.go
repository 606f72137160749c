package canvas2d

import "testing"

func TestEmitter(t *testing.T) {
	var e Emitter
	var got []string

	a := e.Subscribe(EventChange, func(Event) { got = append(got, "a") })
	var b Subscription
	b = e.Subscribe(EventChange, func(Event) {
		got = append(got, "b")
		e.Unsubscribe(b)
		e.Subscribe(EventChange, func(Event) { got = append(got, "late") })
	})
	e.Subscribe(EventFreeze, func(Event) { got = append(got, "freeze") })

	e.Emit(Event{Kind: EventChange})
	if want := "a,b"; join(got) != want {
		t.Errorf("first emit = %s, want %s", join(got), want)
	}

	got = nil
	e.Unsubscribe(a)
	e.Unsubscribe(12345)
	e.Emit(Event{Kind: EventChange})
	if want := "late"; join(got) != want {
		t.Errorf("second emit = %s, want %s", join(got), want)
	}
}

func join(s []string) string {
	out := ""
	for i, v := range s {
		if i > 0 {
			out += ","
		}
		out += v
	}
	return out
}

func TestEventKindNames(t *testing.T) {
	for k := EventChange; k <= EventRender; k++ {
		parsed, ok := ParseEventKind(k.String())
		if !ok || parsed != k {
			t.Errorf("ParseEventKind(%q) = %v, %v", k.String(), parsed, ok)
		}
	}
	if _, ok := ParseEventKind("click"); ok {
		t.Error("unknown name parsed")
	}
	if got := EventKind(200).String(); got != "EventKind(200)" {
		t.Errorf("out of range String = %q", got)
	}
	if MouseMove.String() != "mousemove" || InputKind(99).String() != "InputKind(99)" {
		t.Error("InputKind names")
	}
}
