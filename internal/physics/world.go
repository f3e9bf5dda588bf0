package physics

import (
	"errors"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrNilBody is returned by AddBody for a nil body.
var ErrNilBody = errors.New("physics: nil body")

const (
	defaultIterations = 10
	// restitutionThreshold: approach speeds below this do not bounce, so resting contacts settle.
	restitutionThreshold = 1.0
	// penetrationSlop and correctionRate control positional correction after the velocity solve.
	penetrationSlop = 0.01
	correctionRate  = 0.2
)

// World holds a set of bodies and advances them: gravity, contact impulses with friction and
// restitution, damping, integration and positional correction. Bodies with zero mass are static.
type World struct {
	Gravity         mgl32.Vec3
	Iterations      int
	DefaultMaterial Material
	Bodies          []*Body
	// Time is the total simulated time in seconds.
	Time float32

	nextID   int
	contacts []contact
}

// NewWorld returns a world with gravity (0, -9.82, 0) in Y-up.
func NewWorld() *World {
	return &World{
		Gravity:         mgl32.Vec3{0, -9.82, 0},
		Iterations:      defaultIterations,
		DefaultMaterial: DefaultMaterial,
	}
}

// SetGravity sets the gravity vector.
func (w *World) SetGravity(g mgl32.Vec3) {
	w.Gravity = g
}

// AddBody appends a body to the world and assigns its ID. Order is preserved.
func (w *World) AddBody(b *Body) error {
	if b == nil {
		return ErrNilBody
	}
	w.nextID++
	b.ID = w.nextID
	w.Bodies = append(w.Bodies, b)
	return nil
}

// Step advances the simulation by dt seconds. Collide handlers run after the contacts of
// this step were solved, before Step returns.
func (w *World) Step(dt float32) {
	if dt <= 0 {
		return
	}
	for _, b := range w.Bodies {
		if !b.Dynamic() {
			continue
		}
		b.Velocity = b.Velocity.Add(w.Gravity.Mul(dt))
	}

	w.contacts = w.contacts[:0]
	for i := 0; i < len(w.Bodies); i++ {
		for j := i + 1; j < len(w.Bodies); j++ {
			w.contacts = collide(w.Bodies[i], w.Bodies[j], w.contacts)
		}
	}

	w.prepare()
	iters := w.Iterations
	if iters <= 0 {
		iters = defaultIterations
	}
	for it := 0; it < iters; it++ {
		for i := range w.contacts {
			solve(&w.contacts[i])
		}
	}

	for _, b := range w.Bodies {
		if !b.Dynamic() {
			continue
		}
		b.Velocity = b.Velocity.Mul(math32.Pow(1-b.LinearDamping, dt))
		b.AngularVelocity = b.AngularVelocity.Mul(math32.Pow(1-b.AngularDamping, dt))
		b.Position = b.Position.Add(b.Velocity.Mul(dt))
		integrateRotation(b, dt)
	}

	for i := range w.contacts {
		correct(&w.contacts[i])
	}
	w.Time += dt
	w.notify()
}

// prepare computes per-contact effective masses, tangents and restitution bias.
func (w *World) prepare() {
	for i := range w.contacts {
		c := &w.contacts[i]
		c.ra = c.point.Sub(c.a.Position)
		c.rb = c.point.Sub(c.b.Position)
		c.t1, c.t2 = tangents(c.normal)
		c.kN = effectiveMass(c, c.normal)
		c.kT1 = effectiveMass(c, c.t1)
		c.kT2 = effectiveMass(c, c.t2)
		var restitution float32
		c.friction, restitution = combine(c.a.Material, c.b.Material, w.DefaultMaterial)
		vn := relativeVelocity(c).Dot(c.normal)
		if vn < -restitutionThreshold {
			c.bias = -restitution * vn
		}
	}
}

// effectiveMass returns the inverse of the impulse-to-velocity response along dir.
func effectiveMass(c *contact, dir mgl32.Vec3) float32 {
	k := c.a.invMass + c.b.invMass
	if c.a.invMass > 0 {
		k += c.a.worldInvInertia().Mul3x1(c.ra.Cross(dir)).Cross(c.ra).Dot(dir)
	}
	if c.b.invMass > 0 {
		k += c.b.worldInvInertia().Mul3x1(c.rb.Cross(dir)).Cross(c.rb).Dot(dir)
	}
	if k <= epsilon {
		return 0
	}
	return 1 / k
}

func relativeVelocity(c *contact) mgl32.Vec3 {
	return c.b.velocityAt(c.rb).Sub(c.a.velocityAt(c.ra))
}

func applyPair(c *contact, p mgl32.Vec3) {
	c.a.applyImpulse(p.Mul(-1), c.ra)
	c.b.applyImpulse(p, c.rb)
}

// solve runs one sequential-impulse iteration for c with accumulated clamping.
func solve(c *contact) {
	if c.kN == 0 {
		return
	}
	vn := relativeVelocity(c).Dot(c.normal)
	lambda := (c.bias - vn) * c.kN
	old := c.accN
	c.accN = math32.Max(old+lambda, 0)
	applyPair(c, c.normal.Mul(c.accN-old))

	limit := c.friction * c.accN
	c.accT1 = frictionAxis(c, c.t1, c.kT1, c.accT1, limit)
	c.accT2 = frictionAxis(c, c.t2, c.kT2, c.accT2, limit)
}

func frictionAxis(c *contact, t mgl32.Vec3, k, acc, limit float32) float32 {
	if k == 0 {
		return acc
	}
	vt := relativeVelocity(c).Dot(t)
	next := mgl32.Clamp(acc-vt*k, -limit, limit)
	applyPair(c, t.Mul(next-acc))
	return next
}

// correct pushes the pair apart along the normal in proportion to inverse mass.
func correct(c *contact) {
	total := c.a.invMass + c.b.invMass
	if total == 0 {
		return
	}
	depth := c.depth - penetrationSlop
	if depth <= 0 {
		return
	}
	push := c.normal.Mul(depth * correctionRate / total)
	if c.a.invMass > 0 {
		c.a.Position = c.a.Position.Sub(push.Mul(c.a.invMass))
	}
	if c.b.invMass > 0 {
		c.b.Position = c.b.Position.Add(push.Mul(c.b.invMass))
	}
}

// integrateRotation advances q by q' = 0.5 * (0, w) * q.
func integrateRotation(b *Body, dt float32) {
	w := b.AngularVelocity
	if w == (mgl32.Vec3{}) {
		return
	}
	spin := mgl32.Quat{W: 0, V: w}.Mul(b.Quaternion).Scale(0.5 * dt)
	b.Quaternion = b.Quaternion.Add(spin).Normalize()
}

// notify delivers every contact of the last step to both bodies' handlers.
func (w *World) notify() {
	for i := range w.contacts {
		c := &w.contacts[i]
		if len(c.a.handlers) > 0 {
			ev := Collision{Body: c.a, Other: c.b, Normal: c.normal.Mul(-1), Point: c.point, Depth: c.depth}
			for _, h := range c.a.handlers {
				h(ev)
			}
		}
		if len(c.b.handlers) > 0 {
			ev := Collision{Body: c.b, Other: c.a, Normal: c.normal, Point: c.point, Depth: c.depth}
			for _, h := range c.b.handlers {
				h(ev)
			}
		}
	}
}

// Contacts returns the number of contact points found by the last step.
func (w *World) Contacts() int {
	return len(w.contacts)
}
