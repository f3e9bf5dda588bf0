package physics

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Collision is delivered to a body's collide handlers once per contact per step.
// Normal is the unit contact normal pointing from Other toward Body.
type Collision struct {
	Body   *Body
	Other  *Body
	Normal mgl32.Vec3
	Point  mgl32.Vec3
	Depth  float32
}

// BodyOptions configures a new body. Zero Quaternion means identity; zero Mass means static.
type BodyOptions struct {
	Mass           float32
	Shape          Shape
	Position       mgl32.Vec3
	Quaternion     mgl32.Quat
	LinearDamping  float32
	AngularDamping float32
	Material       *Material
}

// Body is a rigid body owned by a World. Position, Quaternion, Velocity and
// AngularVelocity may be written directly between steps. Mass changes go through SetMass
// so the inverse mass and inertia stay in sync.
type Body struct {
	ID              int
	Position        mgl32.Vec3
	Quaternion      mgl32.Quat
	Velocity        mgl32.Vec3
	AngularVelocity mgl32.Vec3
	LinearDamping   float32
	AngularDamping  float32
	Shape           Shape
	Material        *Material

	mass       float32
	invMass    float32
	invInertia mgl32.Vec3 // local diagonal
	handlers   []func(Collision)
}

// NewBody returns a body from opts. Negative mass is treated as zero (static).
func NewBody(opts BodyOptions) *Body {
	q := opts.Quaternion
	if q.W == 0 && q.V == (mgl32.Vec3{}) {
		q = mgl32.QuatIdent()
	}
	b := &Body{
		Position:       opts.Position,
		Quaternion:     q.Normalize(),
		LinearDamping:  clamp01(opts.LinearDamping),
		AngularDamping: clamp01(opts.AngularDamping),
		Shape:          opts.Shape,
		Material:       opts.Material,
	}
	b.SetMass(opts.Mass)
	return b
}

// Mass returns the current mass. Zero means the body is static or kinematic.
func (b *Body) Mass() float32 {
	return b.mass
}

// SetMass changes the mass and recomputes inverse mass and inertia. A body with zero mass
// is not integrated and is not moved by contacts, but its pose may still be written.
func (b *Body) SetMass(m float32) {
	if m < 0 {
		m = 0
	}
	b.mass = m
	b.invMass = 0
	b.invInertia = mgl32.Vec3{}
	if m == 0 || b.Shape == nil {
		return
	}
	b.invMass = 1 / m
	in := b.Shape.inertia(m)
	for i := range in {
		if in[i] > 0 {
			b.invInertia[i] = 1 / in[i]
		}
	}
}

// Dynamic reports whether the body responds to gravity and contacts.
func (b *Body) Dynamic() bool {
	return b.invMass > 0
}

// OnCollide registers fn to be called for every contact involving b.
func (b *Body) OnCollide(fn func(Collision)) {
	b.handlers = append(b.handlers, fn)
}

// PlaneNormal returns the world-space normal of a plane body (local +Z rotated).
func (b *Body) PlaneNormal() mgl32.Vec3 {
	return b.Quaternion.Rotate(mgl32.Vec3{0, 0, 1})
}

// worldInvInertia returns R * diag(invInertia) * R^T.
func (b *Body) worldInvInertia() mgl32.Mat3 {
	if b.invMass == 0 {
		return mgl32.Mat3{}
	}
	r := b.Quaternion.Mat4().Mat3()
	return r.Mul3(mgl32.Diag3(b.invInertia)).Mul3(r.Transpose())
}

// velocityAt returns the velocity of the material point at world offset r from the center.
func (b *Body) velocityAt(r mgl32.Vec3) mgl32.Vec3 {
	return b.Velocity.Add(b.AngularVelocity.Cross(r))
}

func (b *Body) applyImpulse(p, r mgl32.Vec3) {
	if b.invMass == 0 {
		return
	}
	b.Velocity = b.Velocity.Add(p.Mul(b.invMass))
	b.AngularVelocity = b.AngularVelocity.Add(b.worldInvInertia().Mul3x1(r.Cross(p)))
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
