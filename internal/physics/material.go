package physics

import "github.com/chewxy/math32"

// Material describes contact surface properties of a body.
type Material struct {
	Friction    float32
	Restitution float32
}

// DefaultMaterial is used for bodies without a material: friction 0.3, no bounce.
var DefaultMaterial = Material{Friction: 0.3, Restitution: 0}

// combine returns the contact properties for a pair. A nil side falls back to def.
// Friction is the geometric mean; restitution is the larger of the two.
func combine(a, b *Material, def Material) (friction, restitution float32) {
	ma, mb := def, def
	if a != nil {
		ma = *a
	}
	if b != nil {
		mb = *b
	}
	friction = math32.Sqrt(math32.Max(ma.Friction, 0) * math32.Max(mb.Friction, 0))
	restitution = math32.Max(ma.Restitution, mb.Restitution)
	return friction, restitution
}
