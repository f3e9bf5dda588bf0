package primitives

import rl "github.com/gen2brain/raylib-go/raylib"

// MaterialKind selects the shading path of the lit shader.
type MaterialKind int32

const (
	// Phong is diffuse plus Blinn-Phong specular from every light.
	Phong MaterialKind = iota
	// Glass is a translucent Phong surface with a view-dependent fresnel rim and an
	// attenuation tint; draw it after opaque geometry with alpha blending.
	Glass
	// Emissive ignores lights and outputs Emissive × EmissiveIntensity.
	Emissive
)

func (k MaterialKind) String() string {
	switch k {
	case Phong:
		return "phong"
	case Glass:
		return "glass"
	case Emissive:
		return "emissive"
	}
	return "unknown"
}

// Material holds the surface parameters uploaded to the lit shader for one draw.
type Material struct {
	Kind      MaterialKind
	Color     rl.Color
	Specular  rl.Color
	Shininess float32
	// Opacity is the output alpha (0..1). Zero means opaque.
	Opacity           float32
	Emissive          rl.Color
	EmissiveIntensity float32
	// Attenuation tints light passing through a Glass surface.
	Attenuation rl.Color
}

// Hex returns an opaque color from a 0xRRGGBB value.
func Hex(rgb uint32) rl.Color {
	return rl.NewColor(uint8(rgb>>16), uint8(rgb>>8), uint8(rgb), 255)
}

// MeshKind names a generated mesh shape.
type MeshKind int

const (
	MeshBox MeshKind = iota
	MeshSphere
	MeshPlane
)

// MeshDef describes a mesh to generate: box size, sphere radius in Size[0], or plane size
// in Size[0] × Size[2] on the XZ plane.
type MeshDef struct {
	Kind MeshKind
	Size [3]float32
}

// Box returns a box mesh definition with the given full size.
func Box(w, h, l float32) MeshDef { return MeshDef{Kind: MeshBox, Size: [3]float32{w, h, l}} }

// Sphere returns a sphere mesh definition.
func Sphere(radius float32) MeshDef { return MeshDef{Kind: MeshSphere, Size: [3]float32{radius, 0, 0}} }

// Plane returns an XZ plane mesh definition centered at the origin.
func Plane(w, l float32) MeshDef { return MeshDef{Kind: MeshPlane, Size: [3]float32{w, 0, l}} }
