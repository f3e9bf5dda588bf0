package scene

import (
	"errors"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"

	"glass-room/internal/primitives"
	"glass-room/internal/sim"
)

// ErrNoWindow is returned by Render when no window/OpenGL context exists.
var ErrNoWindow = errors.New("scene: window not ready")

const floorSize = 20

var (
	backgroundColor = rl.NewColor(2, 6, 12, 255)

	floorMesh  = primitives.Plane(floorSize, floorSize)
	cubeMesh   = primitives.Box(2, 2, 2)
	coreMesh   = primitives.Sphere(0.3)
	floorModel = rl.MatrixTranslate(0, sim.FloorY, 0)

	floorMaterial = primitives.Material{
		Kind:      primitives.Phong,
		Color:     primitives.Hex(0x0a1a2f),
		Specular:  primitives.Hex(0x3399ff),
		Shininess: 100,
	}
	glassMaterial = primitives.Material{
		Kind:        primitives.Glass,
		Color:       primitives.Hex(0xffffff),
		Specular:    primitives.Hex(0xffffff),
		Shininess:   90,
		Opacity:     0.6,
		Attenuation: primitives.Hex(0x68ccff),
	}
	coreMaterial = primitives.Material{
		Kind:              primitives.Emissive,
		Color:             primitives.Hex(0x00ffff),
		Emissive:          primitives.Hex(0x00ffff),
		EmissiveIntensity: 4,
	}
)

// Renderer draws a sim.Frame with raylib: the Phong floor, the glass cube with its glowing
// core, and the room's lights. Walls have no mesh.
type Renderer struct {
	log      zerolog.Logger
	reg      *primitives.Registry
	camera   rl.Camera3D
	viewport sim.Viewport
	env      primitives.Environment
	lights   []primitives.Light
	// cubeLight indexes the light that follows the cube.
	cubeLight int
}

// New returns a renderer with the room's light rig. GPU resources are created on the
// first Render, after the window exists.
func New(log zerolog.Logger, viewport sim.Viewport) *Renderer {
	r := &Renderer{
		log:      log,
		reg:      primitives.NewRegistry(),
		viewport: viewport,
		env: primitives.Environment{
			Ambient:          primitives.Hex(0x001a33),
			AmbientIntensity: 0.5,
			Sky:              primitives.Hex(0xffffbb),
			Ground:           primitives.Hex(0x080820),
			HemiIntensity:    1,
		},
	}
	r.camera.Projection = rl.CameraPerspective

	white := primitives.Hex(0xffffff)
	r.lights = []primitives.Light{
		primitives.Directional(white, 1, mgl32.Vec3{10, 10, 10}),
		primitives.Point(primitives.Hex(0x00ffff), 1, 20, mgl32.Vec3{5, 5, 5}),
		primitives.Point(primitives.Hex(0xff00ff), 1, 20, mgl32.Vec3{-5, 5, -5}),
		primitives.Spot(white, 1, mgl32.Vec3{15, 15, 15}, mgl32.Vec3{}, math32.Pi/4, 0.1, 2, 200),
		primitives.Point(primitives.Hex(0x00ffff), 4, 12, mgl32.Vec3{}),
	}
	r.cubeLight = len(r.lights) - 1
	return r
}

// Resize records the new surface size. raylib derives the projection aspect from the
// framebuffer in BeginMode3D; a degenerate surface skips 3D drawing.
func (r *Renderer) Resize(width, height int32) {
	r.viewport = sim.Viewport{Width: width, Height: height}
	r.log.Debug().Int32("width", width).Int32("height", height).Float32("aspect", r.viewport.Aspect()).Msg("resize")
}

// Render draws f. Call between BeginDrawing and EndDrawing; 2D overlays go after it.
func (r *Renderer) Render(f *sim.Frame) error {
	if !rl.IsWindowReady() {
		return ErrNoWindow
	}
	rl.ClearBackground(backgroundColor)
	if r.viewport.Width < 1 || r.viewport.Height < 1 {
		return nil
	}

	c := f.Camera
	r.camera.Position = vec3(c.Position)
	r.camera.Target = vec3(c.Target())
	r.camera.Up = vec3(c.Up())
	r.camera.Fovy = c.Fovy
	r.lights[r.cubeLight].Position = f.CubeLight
	r.reg.SetView(c.Position, r.env, r.lights)

	rot := f.CubeMesh.Rotation
	p := f.CubeMesh.Position
	cubeModel := rl.MatrixMultiply(
		rl.QuaternionToMatrix(rl.NewQuaternion(rot.V[0], rot.V[1], rot.V[2], rot.W)),
		rl.MatrixTranslate(p[0], p[1], p[2]),
	)

	rl.BeginMode3D(r.camera)
	r.reg.Draw(floorMesh, floorMaterial, floorModel)
	r.reg.Draw(coreMesh, coreMaterial, cubeModel)
	r.reg.Draw(cubeMesh, glassMaterial, cubeModel)
	rl.EndMode3D()
	return nil
}

// Close releases GPU resources. Call before the window closes.
func (r *Renderer) Close() {
	r.reg.Unload()
}

func vec3(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v[0], v[1], v[2])
}
