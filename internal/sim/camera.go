package sim

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is slaved to the player body for position; orientation comes only from the
// accumulated yaw and pitch (Euler order YXZ, roll zero).
type Camera struct {
	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32
	Fovy     float32 // degrees
	Near     float32
	Far      float32
}

// DefaultCamera returns a 75° perspective camera with near 0.1 and far 1000.
func DefaultCamera() Camera {
	return Camera{Fovy: 75, Near: 0.1, Far: 1000}
}

// Forward returns the unit view direction. Yaw 0, pitch 0 looks down -Z.
func (c Camera) Forward() mgl32.Vec3 {
	sy, cy := math32.Sin(c.Yaw), math32.Cos(c.Yaw)
	sp, cp := math32.Sin(c.Pitch), math32.Cos(c.Pitch)
	return mgl32.Vec3{-cp * sy, sp, -cp * cy}
}

// Right returns the horizontal unit vector normalize(Forward × up). It depends on yaw
// only, so it stays defined when looking straight up or down.
func (c Camera) Right() mgl32.Vec3 {
	return mgl32.Vec3{math32.Cos(c.Yaw), 0, -math32.Sin(c.Yaw)}
}

// Up returns +Y rotated by the same YXZ Euler as Forward. It stays orthogonal to Forward,
// so a look-at basis is defined at pitch ±π/2.
func (c Camera) Up() mgl32.Vec3 {
	sy, cy := math32.Sin(c.Yaw), math32.Cos(c.Yaw)
	sp, cp := math32.Sin(c.Pitch), math32.Cos(c.Pitch)
	return mgl32.Vec3{sp * sy, cp, sp * cy}
}

// Target returns a point one unit ahead of the camera.
func (c Camera) Target() mgl32.Vec3 {
	return c.Position.Add(c.Forward())
}

// Viewport is the render surface size in pixels.
type Viewport struct {
	Width  int32
	Height int32
}

// Aspect returns width/height with both dimensions clamped to at least 1.
func (v Viewport) Aspect() float32 {
	w, h := v.Width, v.Height
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return float32(w) / float32(h)
}
