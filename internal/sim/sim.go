package sim

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"

	"glass-room/internal/config"
	"glass-room/internal/input"
	"glass-room/internal/physics"
)

// Room bounds: floor height and the distance of each wall from the origin.
const (
	FloorY     = -5
	WallOffset = 10
)

// Transform is the pose of a visual node.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

// Frame is what the renderer draws: the camera and every pose copied from the physics
// world during the last tick.
type Frame struct {
	Tick      uint64
	Time      float32
	Camera    Camera
	Viewport  Viewport
	CubeMesh  Transform
	CubeLight mgl32.Vec3
	Player    mgl32.Vec3
	CanJump   bool
	Dragging  bool
}

// Sim owns the physics world, the input state and the visual poses. It is not safe for
// concurrent use; feed it events through a Loop.
type Sim struct {
	cfg   config.Config
	log   zerolog.Logger
	world *physics.World

	player *physics.Body
	cube   *physics.Body
	// cubeMass is restored when a drag ends.
	cubeMass float32

	input    input.State
	steering input.Steering
	cam      Camera
	viewport Viewport
	frame    Frame
	tick     uint64
}

// New builds the room: floor and four walls as static planes, the dynamic cube and the
// player sphere.
func New(cfg config.Config, log zerolog.Logger) (*Sim, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w := physics.NewWorld()
	w.SetGravity(mgl32.Vec3(cfg.Physics.Gravity))
	w.Iterations = cfg.Physics.Iterations

	s := &Sim{
		cfg:      cfg,
		log:      log,
		world:    w,
		cubeMass: cfg.Cube.Mass,
		steering: input.Steering{EdgeThreshold: cfg.Look.EdgeThreshold, Speed: cfg.Look.RotationSpeed},
		cam:      DefaultCamera(),
		viewport: Viewport{Width: cfg.Window.Width, Height: cfg.Window.Height},
	}

	for _, b := range staticColliders() {
		if err := w.AddBody(b); err != nil {
			return nil, fmt.Errorf("sim: add collider: %w", err)
		}
	}

	h := cfg.Cube.HalfExtent
	s.cube = physics.NewBody(physics.BodyOptions{
		Mass:           cfg.Cube.Mass,
		Shape:          physics.Box{HalfExtents: mgl32.Vec3{h, h, h}},
		Position:       mgl32.Vec3(cfg.Cube.Spawn),
		LinearDamping:  cfg.Cube.LinearDamping,
		AngularDamping: cfg.Cube.AngularDamping,
		Material:       &physics.Material{Friction: cfg.Cube.Friction, Restitution: cfg.Cube.Restitution},
	})
	if err := w.AddBody(s.cube); err != nil {
		return nil, fmt.Errorf("sim: add cube: %w", err)
	}

	s.player = physics.NewBody(physics.BodyOptions{
		Mass:          cfg.Player.Mass,
		Shape:         physics.Sphere{Radius: cfg.Player.Radius},
		Position:      mgl32.Vec3(cfg.Player.Spawn),
		LinearDamping: cfg.Player.LinearDamping,
	})
	s.player.OnCollide(func(c physics.Collision) {
		s.input.Land(c.Normal)
	})
	if err := w.AddBody(s.player); err != nil {
		return nil, fmt.Errorf("sim: add player: %w", err)
	}

	s.cam.Position = s.player.Position
	s.syncFrame()
	return s, nil
}

// staticColliders returns the floor and the four walls. Each plane's normal is its local
// +Z rotated by the body orientation, so all of them face into the room.
func staticColliders() []*physics.Body {
	x := mgl32.Vec3{1, 0, 0}
	y := mgl32.Vec3{0, 1, 0}
	walls := []struct {
		pos mgl32.Vec3
		yaw float32
	}{
		{mgl32.Vec3{WallOffset, 0, 0}, -math32.Pi / 2},
		{mgl32.Vec3{-WallOffset, 0, 0}, math32.Pi / 2},
		{mgl32.Vec3{0, 0, -WallOffset}, 0},
		{mgl32.Vec3{0, 0, WallOffset}, math32.Pi},
	}
	bodies := []*physics.Body{
		physics.NewBody(physics.BodyOptions{
			Shape:      physics.Plane{},
			Position:   mgl32.Vec3{0, FloorY, 0},
			Quaternion: mgl32.QuatRotate(-math32.Pi/2, x),
		}),
	}
	for _, wall := range walls {
		bodies = append(bodies, physics.NewBody(physics.BodyOptions{
			Shape:      physics.Plane{},
			Position:   wall.pos,
			Quaternion: mgl32.QuatRotate(wall.yaw, y),
		}))
	}
	return bodies
}

// HandleEvent applies one input event immediately. Drag moves write the cube pose right
// away, so several of them may land between two physics steps.
func (s *Sim) HandleEvent(ev input.Event) {
	switch ev.Kind {
	case input.EventKeyDown:
		s.input.SetAction(ev.Action, true)
	case input.EventKeyUp:
		if s.input.SetAction(ev.Action, false) {
			s.jump()
		}
	case input.EventPointerMove:
		s.input.Steer(ev.X, ev.Y, s.viewport.Width, s.viewport.Height, s.steering)
		dx, dy := s.input.MoveCursor(ev.X, ev.Y)
		if s.input.Dragging {
			s.dragCube(dx, dy)
		}
	case input.EventPointerDown:
		s.startDrag()
	case input.EventPointerUp:
		s.endDrag()
	case input.EventResize:
		s.viewport = Viewport{Width: ev.Width, Height: ev.Height}
	case input.EventBlur:
		if s.input.ReleaseAll() {
			s.cube.SetMass(s.cubeMass)
			s.log.Debug().Msg("drag released on blur")
		}
	}
}

func (s *Sim) jump() {
	if !s.input.TryJump() {
		return
	}
	s.player.Velocity[1] = s.cfg.Player.JumpVelocity
	s.log.Debug().Float32("vy", s.cfg.Player.JumpVelocity).Msg("jump")
}

func (s *Sim) startDrag() {
	s.input.Dragging = true
	s.cube.SetMass(0)
	s.log.Debug().Msg("drag start")
}

func (s *Sim) endDrag() {
	s.input.Dragging = false
	s.cube.SetMass(s.cubeMass)
	s.log.Debug().Float32("mass", s.cubeMass).Msg("drag end")
}

// Tick runs one fixed step: player velocity from input, camera follows the player, the
// world advances by the configured step, then the cube mesh and light take the cube body
// pose. The returned frame is reused by the next tick.
func (s *Sim) Tick() *Frame {
	if s.input.Dragging {
		s.cube.Velocity = mgl32.Vec3{}
		s.cube.AngularVelocity = mgl32.Vec3{}
	}
	s.applyMovement()
	s.cam.Position = s.player.Position
	s.world.Step(s.cfg.Physics.Step)
	s.tick++
	s.syncFrame()
	return &s.frame
}

func (s *Sim) syncFrame() {
	s.frame = Frame{
		Tick:      s.tick,
		Time:      s.world.Time,
		Camera:    s.camera(),
		Viewport:  s.viewport,
		CubeMesh:  Transform{Position: s.cube.Position, Rotation: s.cube.Quaternion},
		CubeLight: s.cube.Position,
		Player:    s.player.Position,
		CanJump:   s.input.CanJump,
		Dragging:  s.input.Dragging,
	}
}

// camera returns the camera with the current accumulated orientation.
func (s *Sim) camera() Camera {
	c := s.cam
	c.Yaw, c.Pitch = s.input.Yaw, s.input.Pitch
	return c
}

// Reset puts the player and the cube back at their spawn points at rest and ends any drag.
func (s *Sim) Reset() {
	if s.input.Dragging {
		s.endDrag()
	}
	for _, r := range []struct {
		b   *physics.Body
		pos [3]float32
	}{
		{s.player, s.cfg.Player.Spawn},
		{s.cube, s.cfg.Cube.Spawn},
	} {
		r.b.Position = mgl32.Vec3(r.pos)
		r.b.Quaternion = mgl32.QuatIdent()
		r.b.Velocity = mgl32.Vec3{}
		r.b.AngularVelocity = mgl32.Vec3{}
	}
	s.cam.Position = s.player.Position
	s.syncFrame()
	s.log.Info().Msg("scene reset")
}

// SetGravity changes the world gravity.
func (s *Sim) SetGravity(g mgl32.Vec3) {
	s.world.SetGravity(g)
	s.cfg.Physics.Gravity = [3]float32(g)
}

// Frame returns the frame produced by the last tick.
func (s *Sim) Frame() *Frame { return &s.frame }

// Config returns the tuning the simulation runs with, including runtime changes.
func (s *Sim) Config() config.Config { return s.cfg }

func (s *Sim) Player() *physics.Body { return s.player }

func (s *Sim) Cube() *physics.Body { return s.cube }

func (s *Sim) World() *physics.World { return s.world }

func (s *Sim) Input() *input.State { return &s.input }

func (s *Sim) Viewport() Viewport { return s.viewport }

// CubeMass returns the mass restored when a drag ends.
func (s *Sim) CubeMass() float32 { return s.cubeMass }
