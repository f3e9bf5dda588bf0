package physics

import "github.com/go-gl/mathgl/mgl32"

// ShapeKind identifies a collision volume variant.
type ShapeKind int

const (
	KindPlane ShapeKind = iota
	KindBox
	KindSphere
)

func (k ShapeKind) String() string {
	switch k {
	case KindPlane:
		return "plane"
	case KindBox:
		return "box"
	case KindSphere:
		return "sphere"
	}
	return "unknown"
}

// Shape is the collision volume attached to a Body.
type Shape interface {
	Kind() ShapeKind
	// inertia returns the diagonal of the local inertia tensor for the given mass.
	inertia(mass float32) mgl32.Vec3
}

// Plane is an infinite half-space. Its normal is the body's local +Z axis rotated by the
// body's orientation; the body's position is a point on the plane.
type Plane struct{}

func (Plane) Kind() ShapeKind { return KindPlane }

func (Plane) inertia(float32) mgl32.Vec3 { return mgl32.Vec3{} }

// Box is an oriented box centered on the body, sized by half extents.
type Box struct {
	HalfExtents mgl32.Vec3
}

func (Box) Kind() ShapeKind { return KindBox }

func (b Box) inertia(mass float32) mgl32.Vec3 {
	x, y, z := b.HalfExtents[0], b.HalfExtents[1], b.HalfExtents[2]
	k := mass / 3
	return mgl32.Vec3{k * (y*y + z*z), k * (x*x + z*z), k * (x*x + y*y)}
}

// vertices returns the eight corners of the box in world space for the given transform.
func (b Box) vertices(pos mgl32.Vec3, q mgl32.Quat) [8]mgl32.Vec3 {
	var out [8]mgl32.Vec3
	i := 0
	for _, sx := range [2]float32{-1, 1} {
		for _, sy := range [2]float32{-1, 1} {
			for _, sz := range [2]float32{-1, 1} {
				local := mgl32.Vec3{sx * b.HalfExtents[0], sy * b.HalfExtents[1], sz * b.HalfExtents[2]}
				out[i] = pos.Add(q.Rotate(local))
				i++
			}
		}
	}
	return out
}

// Sphere is a ball centered on the body.
type Sphere struct {
	Radius float32
}

func (Sphere) Kind() ShapeKind { return KindSphere }

func (s Sphere) inertia(mass float32) mgl32.Vec3 {
	i := 2 * mass * s.Radius * s.Radius / 5
	return mgl32.Vec3{i, i, i}
}
