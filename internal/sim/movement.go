package sim

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// MoveDirection normalizes the intent (x = right - left, z = back - forward) and rotates
// it about +Y by yaw. A zero intent yields the zero vector.
func MoveDirection(x, z, yaw float32) mgl32.Vec3 {
	l := math32.Sqrt(x*x + z*z)
	if l == 0 {
		return mgl32.Vec3{}
	}
	x, z = x/l, z/l
	s, c := math32.Sin(yaw), math32.Cos(yaw)
	return mgl32.Vec3{x*c + z*s, 0, -x*s + z*c}
}

// applyMovement writes the player's horizontal velocity from the held keys, or decays it
// when none is held. Vertical velocity is never touched.
func (s *Sim) applyMovement() {
	v := &s.player.Velocity
	if s.input.Moving() {
		x, z := s.input.Intent()
		dir := MoveDirection(x, z, s.input.Yaw)
		v[0] = dir[0] * s.cfg.Player.Speed
		v[2] = dir[2] * s.cfg.Player.Speed
		return
	}
	v[0] *= s.cfg.Player.Decay
	v[2] *= s.cfg.Player.Decay
}

// dragCube moves the cube by a pointer delta in screen units: horizontally along the
// camera's right and forward directions, vertically with the screen Y delta.
func (s *Sim) dragCube(dx, dy float32) {
	cam := s.camera()
	right, fwd := cam.Right(), cam.Forward()
	k := s.cfg.Drag.Speed
	p := &s.cube.Position
	p[0] += (dx*right[0] - dy*fwd[0]) * k
	p[1] += dy * k
	p[2] += (dx*right[2] - dy*fwd[2]) * k
	s.cube.Velocity = mgl32.Vec3{}
	s.cube.AngularVelocity = mgl32.Vec3{}
}
