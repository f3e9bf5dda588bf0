package input

import "fmt"

// EventKind discriminates platform input events.
type EventKind uint8

const (
	EventKeyDown EventKind = iota + 1
	EventKeyUp
	EventPointerMove
	EventPointerDown
	EventPointerUp
	EventResize
	// EventBlur means input focus was lost (console opened, window unfocused).
	EventBlur
)

func (k EventKind) String() string {
	switch k {
	case EventKeyDown:
		return "key_down"
	case EventKeyUp:
		return "key_up"
	case EventPointerMove:
		return "pointer_move"
	case EventPointerDown:
		return "pointer_down"
	case EventPointerUp:
		return "pointer_up"
	case EventResize:
		return "resize"
	case EventBlur:
		return "blur"
	}
	return fmt.Sprintf("event(%d)", uint8(k))
}

// Event is one input notification. Action is set for key events; X/Y hold raw screen
// coordinates for pointer events; Width/Height hold the new surface size for resize.
type Event struct {
	Kind   EventKind
	Action Action
	X, Y   float32
	Width  int32
	Height int32
}

func KeyDown(a Action) Event { return Event{Kind: EventKeyDown, Action: a} }

func KeyUp(a Action) Event { return Event{Kind: EventKeyUp, Action: a} }

func PointerMove(x, y float32) Event { return Event{Kind: EventPointerMove, X: x, Y: y} }

func PointerDown() Event { return Event{Kind: EventPointerDown} }

func PointerUp() Event { return Event{Kind: EventPointerUp} }

func Resize(w, h int32) Event { return Event{Kind: EventResize, Width: w, Height: h} }

func Blur() Event { return Event{Kind: EventBlur} }
