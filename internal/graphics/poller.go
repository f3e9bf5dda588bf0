package graphics

import (
	"fmt"
	"sort"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"glass-room/internal/input"
)

var namedKeys = map[string]int32{
	"SPACE":       rl.KeySpace,
	"ENTER":       rl.KeyEnter,
	"TAB":         rl.KeyTab,
	"UP":          rl.KeyUp,
	"DOWN":        rl.KeyDown,
	"LEFT":        rl.KeyLeft,
	"RIGHT":       rl.KeyRight,
	"LEFT_SHIFT":  rl.KeyLeftShift,
	"RIGHT_SHIFT": rl.KeyRightShift,
	"LEFT_CTRL":   rl.KeyLeftControl,
	"RIGHT_CTRL":  rl.KeyRightControl,
}

// KeyCode resolves a key name: a single letter or digit, or one of the named keys
// (SPACE, UP, LEFT_SHIFT, ...). Case-insensitive.
func KeyCode(name string) (int32, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	if len(n) == 1 {
		switch c := n[0]; {
		case c >= 'A' && c <= 'Z':
			return rl.KeyA + int32(c-'A'), nil
		case c >= '0' && c <= '9':
			return rl.KeyZero + int32(c-'0'), nil
		}
	}
	if k, ok := namedKeys[n]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("graphics: unknown key %q", name)
}

// Poller turns raylib's polled keyboard, mouse and window state into input events.
type Poller struct {
	keys    map[int32]input.Action
	cursor  rl.Vector2
	width   int32
	height  int32
	focused bool
	primed  bool
}

// NewPoller binds keys from an action name → key name map. A key bound to two actions is
// an error.
func NewPoller(bindings map[string]string) (*Poller, error) {
	p := &Poller{keys: make(map[int32]input.Action, len(bindings)), focused: true}
	actions := make([]string, 0, len(bindings))
	for action := range bindings {
		actions = append(actions, action)
	}
	sort.Strings(actions)
	for _, action := range actions {
		key := bindings[action]
		a, err := input.ParseAction(action)
		if err != nil {
			return nil, err
		}
		code, err := KeyCode(key)
		if err != nil {
			return nil, fmt.Errorf("graphics: bind %s: %w", action, err)
		}
		if prev, ok := p.keys[code]; ok {
			return nil, fmt.Errorf("graphics: bind %s: key %q already bound to %s", action, key, prev)
		}
		p.keys[code] = a
	}
	return p, nil
}

// Poll pushes the events since the last call. While captured (console open) key and
// button edges are not forwarded; pointer and window events still are.
func (p *Poller) Poll(q *input.Queue, captured bool) {
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	if !p.primed || rl.IsWindowResized() || w != p.width || h != p.height {
		p.width, p.height, p.primed = w, h, true
		q.Push(input.Resize(w, h))
	}

	focused := rl.IsWindowFocused()
	if p.focused && !focused {
		q.Push(input.Blur())
	}
	p.focused = focused

	if pos := rl.GetMousePosition(); pos != p.cursor {
		p.cursor = pos
		q.Push(input.PointerMove(pos.X, pos.Y))
	}

	if captured {
		return
	}
	for code, a := range p.keys {
		switch {
		case rl.IsKeyPressed(code):
			q.Push(input.KeyDown(a))
		case rl.IsKeyReleased(code):
			q.Push(input.KeyUp(a))
		}
	}
	switch {
	case rl.IsMouseButtonPressed(rl.MouseButtonLeft):
		q.Push(input.PointerDown())
	case rl.IsMouseButtonReleased(rl.MouseButtonLeft):
		q.Push(input.PointerUp())
	}
}
