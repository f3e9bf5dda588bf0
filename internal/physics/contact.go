package physics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const epsilon = 1e-6

// contact is one point of a contacting pair. normal points from a toward b.
type contact struct {
	a, b   *Body
	point  mgl32.Vec3
	normal mgl32.Vec3
	depth  float32

	// solver state
	ra, rb       mgl32.Vec3
	t1, t2       mgl32.Vec3
	kN, kT1, kT2 float32
	bias         float32
	friction     float32
	accN         float32
	accT1        float32
	accT2        float32
}

// collide appends the contacts between a and b to out. Pairs with no dynamic body and
// unsupported shape pairs (plane/plane) produce nothing.
func collide(a, b *Body, out []contact) []contact {
	if a.Shape == nil || b.Shape == nil {
		return out
	}
	if !a.Dynamic() && !b.Dynamic() {
		return out
	}
	switch sa := a.Shape.(type) {
	case Plane:
		switch sb := b.Shape.(type) {
		case Sphere:
			return spherePlane(b, sb, a, out)
		case Box:
			return boxPlane(b, sb, a, out)
		}
	case Sphere:
		switch sb := b.Shape.(type) {
		case Plane:
			return spherePlane(a, sa, b, out)
		case Sphere:
			return sphereSphere(a, sa, b, sb, out)
		case Box:
			return sphereBox(a, sa, b, sb, out)
		}
	case Box:
		switch sb := b.Shape.(type) {
		case Plane:
			return boxPlane(a, sa, b, out)
		case Sphere:
			return sphereBox(b, sb, a, sa, out)
		case Box:
			out = boxInBox(a, sa, b, sb, out)
			return boxInBox(b, sb, a, sa, out)
		}
	}
	return out
}

func spherePlane(s *Body, sh Sphere, p *Body, out []contact) []contact {
	n := p.PlaneNormal()
	d := n.Dot(s.Position.Sub(p.Position)) - sh.Radius
	if d >= 0 {
		return out
	}
	return append(out, contact{
		a:      p,
		b:      s,
		normal: n,
		point:  s.Position.Sub(n.Mul(sh.Radius)),
		depth:  -d,
	})
}

func boxPlane(bx *Body, sh Box, p *Body, out []contact) []contact {
	n := p.PlaneNormal()
	for _, v := range sh.vertices(bx.Position, bx.Quaternion) {
		d := n.Dot(v.Sub(p.Position))
		if d >= 0 {
			continue
		}
		out = append(out, contact{a: p, b: bx, normal: n, point: v, depth: -d})
	}
	return out
}

func sphereSphere(a *Body, sa Sphere, b *Body, sb Sphere, out []contact) []contact {
	d := b.Position.Sub(a.Position)
	dist := d.Len()
	r := sa.Radius + sb.Radius
	if dist >= r {
		return out
	}
	n := mgl32.Vec3{0, 1, 0}
	if dist > epsilon {
		n = d.Mul(1 / dist)
	}
	return append(out, contact{
		a:      a,
		b:      b,
		normal: n,
		point:  a.Position.Add(n.Mul(sa.Radius)),
		depth:  r - dist,
	})
}

// sphereBox produces a contact with the normal pointing from the box toward the sphere.
func sphereBox(s *Body, ss Sphere, bx *Body, sb Box, out []contact) []contact {
	inv := bx.Quaternion.Conjugate()
	local := inv.Rotate(s.Position.Sub(bx.Position))
	h := sb.HalfExtents
	closest := mgl32.Vec3{
		mgl32.Clamp(local[0], -h[0], h[0]),
		mgl32.Clamp(local[1], -h[1], h[1]),
		mgl32.Clamp(local[2], -h[2], h[2]),
	}
	diff := local.Sub(closest)
	dist := diff.Len()

	var nl, pl mgl32.Vec3
	var depth float32
	if dist > epsilon {
		if dist >= ss.Radius {
			return out
		}
		nl = diff.Mul(1 / dist)
		pl = closest
		depth = ss.Radius - dist
	} else {
		// Center inside the box: push out through the nearest face.
		axis, gap := 0, h[0]-math32.Abs(local[0])
		for i := 1; i < 3; i++ {
			if g := h[i] - math32.Abs(local[i]); g < gap {
				axis, gap = i, g
			}
		}
		sign := float32(1)
		if local[axis] < 0 {
			sign = -1
		}
		nl[axis] = sign
		pl = local
		pl[axis] = sign * h[axis]
		depth = ss.Radius + gap
	}
	return append(out, contact{
		a:      bx,
		b:      s,
		normal: bx.Quaternion.Rotate(nl),
		point:  bx.Position.Add(bx.Quaternion.Rotate(pl)),
		depth:  depth,
	})
}

// boxInBox appends a contact for each vertex of a that lies inside b. The normal is
// b's nearest face normal, pointing from b toward a.
func boxInBox(a *Body, sa Box, b *Body, sb Box, out []contact) []contact {
	inv := b.Quaternion.Conjugate()
	h := sb.HalfExtents
	for _, v := range sa.vertices(a.Position, a.Quaternion) {
		l := inv.Rotate(v.Sub(b.Position))
		if math32.Abs(l[0]) >= h[0] || math32.Abs(l[1]) >= h[1] || math32.Abs(l[2]) >= h[2] {
			continue
		}
		axis, gap := 0, h[0]-math32.Abs(l[0])
		for i := 1; i < 3; i++ {
			if g := h[i] - math32.Abs(l[i]); g < gap {
				axis, gap = i, g
			}
		}
		var nl mgl32.Vec3
		nl[axis] = 1
		if l[axis] < 0 {
			nl[axis] = -1
		}
		out = append(out, contact{a: b, b: a, normal: b.Quaternion.Rotate(nl), point: v, depth: gap})
	}
	return out
}

// tangents returns an orthonormal pair perpendicular to unit vector n.
func tangents(n mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3) {
	ref := mgl32.Vec3{1, 0, 0}
	if math32.Abs(n[0]) > 0.57 {
		ref = mgl32.Vec3{0, 1, 0}
	}
	t1 := n.Cross(ref).Normalize()
	return t1, n.Cross(t1)
}
