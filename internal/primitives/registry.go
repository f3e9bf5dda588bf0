package primitives

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	defaultSphereRings  = 16
	defaultSphereSlices = 16
)

// lightLocs caches the uniform locations of one element of the shader's light array.
type lightLocs struct {
	kind, position, direction, color, intensity, rng, decay, cosInner, cosOuter int32
}

// Registry owns generated meshes and the lit shader. Meshes and the shader are created on
// first use so that GPU resources are allocated after the window/OpenGL context exists.
type Registry struct {
	meshes map[MeshDef]rl.Mesh
	mtl    rl.Material
	loaded bool

	viewPos [3]float32
	env     Environment
	lights  []Light

	locs   map[string]int32
	lightL [MaxLights]lightLocs
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{meshes: make(map[MeshDef]rl.Mesh), locs: make(map[string]int32)}
}

// SetView sets the camera position, environment and lights for this frame. Call once per
// frame before drawing.
func (r *Registry) SetView(viewPos mgl32.Vec3, env Environment, lights []Light) {
	r.viewPos = [3]float32(viewPos)
	r.env = env
	if len(lights) > MaxLights {
		lights = lights[:MaxLights]
	}
	r.lights = append(r.lights[:0], lights...)
}

// ensureShader loads the lit shader and looks up every uniform location once.
func (r *Registry) ensureShader() {
	if r.loaded {
		return
	}
	r.loaded = true
	r.mtl = rl.LoadMaterialDefault()
	shader := rl.LoadShaderFromMemory(litVS, litFS)
	if !rl.IsShaderValid(shader) {
		return
	}
	r.mtl.Shader = shader
	for _, name := range []string{
		"viewPos", "ambientColor", "skyColor", "groundColor", "lightCount",
		"mode", "specularColor", "shininess", "opacity", "emissive", "attenuationColor",
	} {
		r.locs[name] = rl.GetShaderLocation(shader, name)
	}
	for i := range r.lightL {
		loc := func(field string) int32 {
			return rl.GetShaderLocation(shader, fmt.Sprintf("lights[%d].%s", i, field))
		}
		r.lightL[i] = lightLocs{
			kind: loc("kind"), position: loc("position"), direction: loc("direction"),
			color: loc("color"), intensity: loc("intensity"), rng: loc("range"),
			decay: loc("decay"), cosInner: loc("cosInner"), cosOuter: loc("cosOuter"),
		}
	}
}

func (r *Registry) ensureMesh(def MeshDef) rl.Mesh {
	if m, ok := r.meshes[def]; ok {
		return m
	}
	var m rl.Mesh
	switch def.Kind {
	case MeshBox:
		m = rl.GenMeshCube(def.Size[0], def.Size[1], def.Size[2])
	case MeshSphere:
		m = rl.GenMeshSphere(def.Size[0], defaultSphereRings, defaultSphereSlices)
	case MeshPlane:
		m = rl.GenMeshPlane(def.Size[0], def.Size[2], 1, 1)
	}
	r.meshes[def] = m
	return m
}

// setVec3 and friends copy into local arrays before handing them to cgo.
func (r *Registry) setVec3(loc int32, v [3]float32) {
	if loc >= 0 {
		rl.SetShaderValueV(r.mtl.Shader, loc, v[:], rl.ShaderUniformVec3, 1)
	}
}

func (r *Registry) setFloat(loc int32, v float32) {
	if loc >= 0 {
		rl.SetShaderValue(r.mtl.Shader, loc, []float32{v}, rl.ShaderUniformFloat)
	}
}

// setInt passes the int's bits through the float32 slice the binding accepts.
func (r *Registry) setInt(loc int32, v int32) {
	if loc >= 0 {
		rl.SetShaderValueV(r.mtl.Shader, loc, []float32{math.Float32frombits(uint32(v))}, rl.ShaderUniformInt, 1)
	}
}

// setFrameUniforms uploads view, environment and lights.
func (r *Registry) setFrameUniforms() {
	r.setVec3(r.locs["viewPos"], r.viewPos)
	r.setVec3(r.locs["ambientColor"], rgb(r.env.Ambient, r.env.AmbientIntensity))
	r.setVec3(r.locs["skyColor"], rgb(r.env.Sky, r.env.HemiIntensity))
	r.setVec3(r.locs["groundColor"], rgb(r.env.Ground, r.env.HemiIntensity))
	r.setInt(r.locs["lightCount"], int32(len(r.lights)))
	for i, l := range r.lights {
		loc := r.lightL[i]
		r.setInt(loc.kind, int32(l.Kind))
		r.setVec3(loc.position, [3]float32(l.Position))
		r.setVec3(loc.direction, [3]float32(l.Direction))
		r.setVec3(loc.color, rgb(l.Color, 1))
		r.setFloat(loc.intensity, l.Intensity)
		r.setFloat(loc.rng, l.Range)
		r.setFloat(loc.decay, l.Decay)
		r.setFloat(loc.cosInner, l.CosInner)
		r.setFloat(loc.cosOuter, l.CosOuter)
	}
}

func (r *Registry) setMaterialUniforms(m Material) {
	r.setInt(r.locs["mode"], int32(m.Kind))
	r.setVec3(r.locs["specularColor"], rgb(m.Specular, 1))
	r.setFloat(r.locs["shininess"], m.Shininess)
	opacity := m.Opacity
	if opacity <= 0 {
		opacity = 1
	}
	r.setFloat(r.locs["opacity"], opacity)
	r.setVec3(r.locs["emissive"], rgb(m.Emissive, m.EmissiveIntensity))
	r.setVec3(r.locs["attenuationColor"], rgb(m.Attenuation, 1))
}

// Draw draws mesh def with material m and the given model transform. Must be called
// between BeginMode3D and EndMode3D, after SetView.
func (r *Registry) Draw(def MeshDef, m Material, transform rl.Matrix) {
	r.ensureShader()
	mesh := r.ensureMesh(def)
	if albedo := r.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = m.Color
	}
	if rl.IsShaderValid(r.mtl.Shader) {
		r.setFrameUniforms()
		r.setMaterialUniforms(m)
	}
	if m.Kind == Glass {
		rl.BeginBlendMode(rl.BlendAlpha)
		rl.DisableDepthMask()
		rl.DrawMesh(mesh, r.mtl, transform)
		rl.EnableDepthMask()
		rl.EndBlendMode()
		return
	}
	rl.DrawMesh(mesh, r.mtl, transform)
}

// Unload releases every mesh and the shader. The registry can be reused afterwards.
func (r *Registry) Unload() {
	for def, m := range r.meshes {
		rl.UnloadMesh(&m)
		delete(r.meshes, def)
	}
	if r.loaded && rl.IsShaderValid(r.mtl.Shader) {
		rl.UnloadShader(r.mtl.Shader)
	}
	r.loaded = false
}
