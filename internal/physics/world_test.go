package physics

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt = float32(1) / 60

func newFloor(t *testing.T, w *World, y float32) *Body {
	t.Helper()
	floor := NewBody(BodyOptions{
		Shape:      Plane{},
		Position:   mgl32.Vec3{0, y, 0},
		Quaternion: mgl32.QuatRotate(-math32.Pi/2, mgl32.Vec3{1, 0, 0}),
	})
	require.NoError(t, w.AddBody(floor))
	return floor
}

func step(w *World, n int) {
	for i := 0; i < n; i++ {
		w.Step(dt)
	}
}

func TestPlaneNormalFromOrientation(t *testing.T) {
	tests := []struct {
		name string
		q    mgl32.Quat
		want mgl32.Vec3
	}{
		{"floor", mgl32.QuatRotate(-math32.Pi/2, mgl32.Vec3{1, 0, 0}), mgl32.Vec3{0, 1, 0}},
		{"wall +x", mgl32.QuatRotate(-math32.Pi/2, mgl32.Vec3{0, 1, 0}), mgl32.Vec3{-1, 0, 0}},
		{"wall -x", mgl32.QuatRotate(math32.Pi/2, mgl32.Vec3{0, 1, 0}), mgl32.Vec3{1, 0, 0}},
		{"wall -z", mgl32.QuatIdent(), mgl32.Vec3{0, 0, 1}},
		{"wall +z", mgl32.QuatRotate(math32.Pi, mgl32.Vec3{0, 1, 0}), mgl32.Vec3{0, 0, -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBody(BodyOptions{Shape: Plane{}, Quaternion: tt.q})
			n := b.PlaneNormal()
			assert.InDeltaSlice(t, tt.want[:], n[:], 1e-5)
		})
	}
}

func TestAddBody(t *testing.T) {
	w := NewWorld()
	assert.ErrorIs(t, w.AddBody(nil), ErrNilBody)

	a := NewBody(BodyOptions{Mass: 1, Shape: Sphere{Radius: 1}})
	b := NewBody(BodyOptions{Mass: 1, Shape: Sphere{Radius: 1}})
	require.NoError(t, w.AddBody(a))
	require.NoError(t, w.AddBody(b))
	assert.Equal(t, 1, a.ID)
	assert.Equal(t, 2, b.ID)
	assert.Len(t, w.Bodies, 2)
}

func TestSphereRestsOnFloor(t *testing.T) {
	w := NewWorld()
	newFloor(t, w, -5)
	ball := NewBody(BodyOptions{Mass: 5, Shape: Sphere{Radius: 1}, Position: mgl32.Vec3{0, 0, 0}})
	require.NoError(t, w.AddBody(ball))

	var upContacts int
	ball.OnCollide(func(c Collision) {
		assert.Same(t, ball, c.Body)
		if c.Normal.Dot(mgl32.Vec3{0, 1, 0}) > 0.5 {
			upContacts++
		}
	})

	step(w, 300)
	assert.InDelta(t, -4, ball.Position.Y(), 0.05)
	assert.InDelta(t, 0, ball.Velocity.Y(), 0.2)
	assert.Greater(t, upContacts, 0)
}

func TestBoxRestsOnFloor(t *testing.T) {
	w := NewWorld()
	newFloor(t, w, -5)
	box := NewBody(BodyOptions{
		Mass:           5,
		Shape:          Box{HalfExtents: mgl32.Vec3{1, 1, 1}},
		LinearDamping:  0.1,
		AngularDamping: 0.2,
		Material:       &Material{Friction: 0.5, Restitution: 0.7},
	})
	require.NoError(t, w.AddBody(box))

	step(w, 300)
	y := box.Position.Y()
	require.False(t, math32.IsNaN(y))
	assert.InDelta(t, -4, y, 0.1)
}

func TestSphereRestsOnStaticBox(t *testing.T) {
	w := NewWorld()
	box := NewBody(BodyOptions{Shape: Box{HalfExtents: mgl32.Vec3{1, 1, 1}}})
	ball := NewBody(BodyOptions{Mass: 1, Shape: Sphere{Radius: 1}, Position: mgl32.Vec3{0, 3, 0}})
	require.NoError(t, w.AddBody(box))
	require.NoError(t, w.AddBody(ball))

	var normal mgl32.Vec3
	ball.OnCollide(func(c Collision) { normal = c.Normal })

	step(w, 300)
	assert.InDelta(t, 2, ball.Position.Y(), 0.05)
	assert.InDelta(t, 1, normal.Y(), 1e-4)
	assert.Equal(t, mgl32.Vec3{}, box.Position, "static box must not move")
}

func TestWallStopsSphere(t *testing.T) {
	w := NewWorld()
	newFloor(t, w, -5)
	wall := NewBody(BodyOptions{
		Shape:      Plane{},
		Position:   mgl32.Vec3{10, 0, 0},
		Quaternion: mgl32.QuatRotate(-math32.Pi/2, mgl32.Vec3{0, 1, 0}),
	})
	require.NoError(t, w.AddBody(wall))
	ball := NewBody(BodyOptions{Mass: 5, Shape: Sphere{Radius: 1}, Position: mgl32.Vec3{0, -4, 0}, LinearDamping: 0.9})
	require.NoError(t, w.AddBody(ball))

	for i := 0; i < 120; i++ {
		ball.Velocity[0] = 20
		w.Step(dt)
	}
	assert.Less(t, ball.Position.X(), float32(9.35))
	assert.Greater(t, ball.Position.X(), float32(8.5))
}

func TestZeroMassFreezesBody(t *testing.T) {
	w := NewWorld()
	b := NewBody(BodyOptions{Mass: 5, Shape: Box{HalfExtents: mgl32.Vec3{1, 1, 1}}})
	require.NoError(t, w.AddBody(b))

	b.SetMass(0)
	assert.Zero(t, b.Mass())
	assert.False(t, b.Dynamic())
	step(w, 60)
	assert.Equal(t, mgl32.Vec3{}, b.Position)

	b.SetMass(5)
	assert.Equal(t, float32(5), b.Mass())
	step(w, 10)
	assert.Less(t, b.Position.Y(), float32(0))
}

func TestLinearDamping(t *testing.T) {
	w := NewWorld()
	w.SetGravity(mgl32.Vec3{})
	b := NewBody(BodyOptions{Mass: 1, Shape: Sphere{Radius: 1}, LinearDamping: 0.5})
	b.Velocity = mgl32.Vec3{10, 0, 0}
	require.NoError(t, w.AddBody(b))

	w.Step(1)
	assert.InDelta(t, 5, b.Velocity.X(), 1e-4)
	assert.InDelta(t, 5, b.Position.X(), 1e-4)
	assert.InDelta(t, 1, w.Time, 1e-6)
}

func TestCombineMaterials(t *testing.T) {
	glass := &Material{Friction: 0.5, Restitution: 0.7}
	tests := []struct {
		name      string
		a, b      *Material
		friction  float32
		restitute float32
	}{
		{"both default", nil, nil, 0.3, 0},
		{"one side", glass, nil, math32.Sqrt(0.5 * 0.3), 0.7},
		{"both set", glass, glass, 0.5, 0.7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, r := combine(tt.a, tt.b, DefaultMaterial)
			assert.InDelta(t, tt.friction, f, 1e-6)
			assert.InDelta(t, tt.restitute, r, 1e-6)
		})
	}
}

func TestShapeKindString(t *testing.T) {
	assert.Equal(t, "plane", Plane{}.Kind().String())
	assert.Equal(t, "box", Box{}.Kind().String())
	assert.Equal(t, "sphere", Sphere{}.Kind().String())
	assert.Equal(t, "unknown", ShapeKind(42).String())
}
