package input

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// PitchLimit bounds the accumulated pitch to straight up / straight down.
const PitchLimit = float32(math32.Pi / 2)

// landingThreshold: a contact normal with a larger up component counts as standing on ground.
const landingThreshold = 0.5

// Steering configures edge-relative gaze steering.
type Steering struct {
	// EdgeThreshold is the NDC distance from center (0..1) beyond which the view rotates.
	EdgeThreshold float32
	// Speed is the rotation in radians applied per qualifying pointer event.
	Speed float32
}

// DefaultSteering rotates 0.05 rad per event within the outer 20% of the surface.
var DefaultSteering = Steering{EdgeThreshold: 0.8, Speed: 0.05}

// State is the session's input state: held movement keys, drag gesture, last cursor
// position, accumulated yaw/pitch and whether a jump is currently allowed.
type State struct {
	Forward, Back, Left, Right bool
	Dragging                   bool
	Cursor                     mgl32.Vec2
	Yaw, Pitch                 float32
	CanJump                    bool
}

// SetAction records a key transition. It returns true only on the release edge of the
// jump key; the caller decides whether the jump takes effect (see TryJump).
func (s *State) SetAction(a Action, down bool) (jumpReleased bool) {
	switch a {
	case ActionForward:
		s.Forward = down
	case ActionBack:
		s.Back = down
	case ActionLeft:
		s.Left = down
	case ActionRight:
		s.Right = down
	case ActionJump:
		return !down
	}
	return false
}

// Moving reports whether any movement key is held.
func (s *State) Moving() bool {
	return s.Forward || s.Back || s.Left || s.Right
}

// Intent returns the unrotated movement intent: x = right - left, z = back - forward.
// Opposite keys cancel.
func (s *State) Intent() (x, z float32) {
	return b2f(s.Right) - b2f(s.Left), b2f(s.Back) - b2f(s.Forward)
}

// TryJump consumes the jump allowance. It returns false when not standing on ground.
func (s *State) TryJump() bool {
	if !s.CanJump {
		return false
	}
	s.CanJump = false
	return true
}

// Land sets CanJump when normal (pointing toward the player) is mostly up.
func (s *State) Land(normal mgl32.Vec3) {
	if normal.Dot(mgl32.Vec3{0, 1, 0}) > landingThreshold {
		s.CanJump = true
	}
}

// Steer applies edge steering for a pointer at raw (x, y) on a width×height surface.
// Positions outside the surface or a degenerate surface leave yaw and pitch unchanged.
func (s *State) Steer(x, y float32, width, height int32, st Steering) {
	if width <= 0 || height <= 0 {
		return
	}
	nx := x/float32(width)*2 - 1
	ny := -(y/float32(height))*2 + 1
	if nx < -1 || nx > 1 || ny < -1 || ny > 1 {
		return
	}
	switch {
	case nx > st.EdgeThreshold:
		s.Yaw -= st.Speed
	case nx < -st.EdgeThreshold:
		s.Yaw += st.Speed
	}
	switch {
	case ny > st.EdgeThreshold:
		s.Pitch = math32.Min(s.Pitch+st.Speed, PitchLimit)
	case ny < -st.EdgeThreshold:
		s.Pitch = math32.Max(s.Pitch-st.Speed, -PitchLimit)
	}
}

// MoveCursor stores (x, y) as the last cursor position and returns the delta from the
// previous one.
func (s *State) MoveCursor(x, y float32) (dx, dy float32) {
	dx, dy = x-s.Cursor[0], y-s.Cursor[1]
	s.Cursor = mgl32.Vec2{x, y}
	return dx, dy
}

// ReleaseAll clears every held key. It reports whether a drag was active; the drag flag
// is cleared too.
func (s *State) ReleaseAll() (wasDragging bool) {
	s.Forward, s.Back, s.Left, s.Right = false, false, false, false
	wasDragging = s.Dragging
	s.Dragging = false
	return wasDragging
}

func b2f(b bool) float32 {
	if b {
		return 1
	}
	return 0
}
