package primitives

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// MaxLights is the size of the shader's light array. Lights beyond it are ignored.
const MaxLights = 8

// LightKind matches the kind switch in the fragment shader.
type LightKind int32

const (
	DirectionalLight LightKind = iota
	PointLight
	SpotLight
)

// Light is a punctual light source. Direction points from the light toward what it lights
// and only applies to directional and spot lights. Range 0 means unbounded.
type Light struct {
	Kind      LightKind
	Position  mgl32.Vec3
	Direction mgl32.Vec3
	Color     rl.Color
	Intensity float32
	Range     float32
	Decay     float32
	// Cone cosines; spot lights only.
	CosInner float32
	CosOuter float32
}

// Directional returns a light shining from position toward the origin.
func Directional(color rl.Color, intensity float32, position mgl32.Vec3) Light {
	return Light{
		Kind:      DirectionalLight,
		Direction: position.Mul(-1).Normalize(),
		Color:     color,
		Intensity: max(0, intensity),
	}
}

// Point returns an omnidirectional light with a linear decay over rng.
func Point(color rl.Color, intensity, rng float32, position mgl32.Vec3) Light {
	return Light{
		Kind:      PointLight,
		Position:  position,
		Color:     color,
		Intensity: max(0, intensity),
		Range:     rng,
		Decay:     1,
	}
}

// Spot returns a cone light at position aimed at target. angle is the outer half angle
// (clamped to π/2); penumbra is the fraction of the cone that fades out.
func Spot(color rl.Color, intensity float32, position, target mgl32.Vec3, angle, penumbra, decay, rng float32) Light {
	outer := math32.Max(0, math32.Min(angle, math32.Pi/2))
	inner := outer * (1 - math32.Max(0, math32.Min(penumbra, 1)))
	return Light{
		Kind:      SpotLight,
		Position:  position,
		Direction: target.Sub(position).Normalize(),
		Color:     color,
		Intensity: max(0, intensity),
		Range:     rng,
		Decay:     decay,
		CosInner:  math32.Cos(inner),
		CosOuter:  math32.Cos(outer),
	}
}

// Environment is the non-directional light: a flat ambient term and a hemisphere that
// blends sky and ground colors by the surface normal's up component.
type Environment struct {
	Ambient          rl.Color
	AmbientIntensity float32
	Sky              rl.Color
	Ground           rl.Color
	HemiIntensity    float32
}

// rgb returns c as normalized RGB scaled by k.
func rgb(c rl.Color, k float32) [3]float32 {
	return [3]float32{float32(c.R) / 255 * k, float32(c.G) / 255 * k, float32(c.B) / 255 * k}
}
