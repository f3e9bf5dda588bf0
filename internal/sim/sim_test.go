package sim

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glass-room/internal/config"
	"glass-room/internal/input"
)

func newTestSim(t *testing.T) *Sim {
	t.Helper()
	s, err := New(config.Default(), zerolog.Nop())
	require.NoError(t, err)
	return s
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Physics.Step = 0
	_, err := New(cfg, zerolog.Nop())
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestRoomLayout(t *testing.T) {
	s := newTestSim(t)
	bodies := s.World().Bodies
	require.Len(t, bodies, 7, "floor, four walls, cube, player")
	for _, b := range bodies[:5] {
		assert.Zero(t, b.Mass())
		// Every collider faces the room center.
		toCenter := mgl32.Vec3{0, 0, 0}.Sub(b.Position)
		assert.Greater(t, b.PlaneNormal().Dot(toCenter), float32(0))
	}
	assert.Equal(t, float32(5), s.Cube().Mass())
	assert.Equal(t, mgl32.Vec3{0, 2, 10}, s.Player().Position)
}

func TestMoveDirectionAllFlagCombinations(t *testing.T) {
	up := mgl32.Vec3{0, 1, 0}
	for mask := 0; mask < 16; mask++ {
		st := input.State{
			Forward: mask&1 != 0,
			Back:    mask&2 != 0,
			Left:    mask&4 != 0,
			Right:   mask&8 != 0,
		}
		x, z := st.Intent()
		for _, yaw := range []float32{0, 0.7, -2, 3.5, 40} {
			dir := MoveDirection(x, z, yaw)
			l := dir.Len()
			require.False(t, math32.IsNaN(l), "mask %04b yaw %v", mask, yaw)
			if x == 0 && z == 0 {
				assert.Zero(t, l, "mask %04b", mask)
				continue
			}
			assert.InDelta(t, 1, l, 1e-5, "mask %04b", mask)
			want := mgl32.QuatRotate(yaw, up).Rotate(mgl32.Vec3{x, 0, z}.Normalize())
			assert.InDeltaSlice(t, want[:], dir[:], 1e-4, "mask %04b yaw %v", mask, yaw)
			assert.Zero(t, dir.Y())
		}
	}
}

func TestForwardVelocity(t *testing.T) {
	s := newTestSim(t)
	s.HandleEvent(input.KeyDown(input.ActionForward))
	s.Player().Velocity = mgl32.Vec3{0, 3, 0}

	s.applyMovement()
	v := s.Player().Velocity
	assert.InDelta(t, 0, v.X(), 1e-6)
	assert.Equal(t, float32(3), v.Y(), "vertical velocity untouched")
	assert.InDelta(t, -20, v.Z(), 1e-5)
}

func TestVelocityDecaysWithoutInput(t *testing.T) {
	s := newTestSim(t)
	s.Player().Velocity = mgl32.Vec3{4, 1, 3}

	s.applyMovement()
	v := s.Player().Velocity
	assert.InDelta(t, 3.6, v.X(), 1e-5)
	assert.Equal(t, float32(1), v.Y())
	assert.InDelta(t, 2.7, v.Z(), 1e-5)
}

func TestJumpOnRelease(t *testing.T) {
	s := newTestSim(t)
	p := s.Player()

	p.Velocity[1] = 3
	s.HandleEvent(input.KeyDown(input.ActionJump))
	s.HandleEvent(input.KeyUp(input.ActionJump))
	assert.Equal(t, float32(3), p.Velocity[1], "no jump without ground contact")

	s.Input().CanJump = true
	s.HandleEvent(input.KeyDown(input.ActionJump))
	assert.Equal(t, float32(3), p.Velocity[1], "press alone does nothing")
	s.HandleEvent(input.KeyUp(input.ActionJump))
	assert.Equal(t, float32(10), p.Velocity[1])
	assert.False(t, s.Input().CanJump)
}

func TestLandingEnablesJump(t *testing.T) {
	s := newTestSim(t)
	require.False(t, s.Input().CanJump)

	for i := 0; i < 300; i++ {
		s.Tick()
	}
	assert.True(t, s.Input().CanJump)
	assert.InDelta(t, FloorY+1, s.Player().Position.Y(), 0.1)
	assert.Less(t, s.Player().Position.Z(), float32(WallOffset-0.9))
}

func TestDragMassAndRestore(t *testing.T) {
	s := newTestSim(t)
	s.HandleEvent(input.PointerDown())
	assert.True(t, s.Input().Dragging)
	assert.Zero(t, s.Cube().Mass())

	s.Tick()
	assert.Zero(t, s.Cube().Mass())

	s.HandleEvent(input.PointerUp())
	assert.False(t, s.Input().Dragging)
	assert.Equal(t, float32(5), s.Cube().Mass())
}

func TestDragMovesCubeAlongCameraRight(t *testing.T) {
	s := newTestSim(t)
	s.HandleEvent(input.PointerMove(640, 360))
	s.HandleEvent(input.PointerDown())
	s.Cube().Velocity = mgl32.Vec3{1, 2, 3}
	start := s.Cube().Position

	s.HandleEvent(input.PointerMove(650, 360))
	got := s.Cube().Position
	assert.InDelta(t, start.X()+0.5, got.X(), 1e-5)
	assert.InDelta(t, start.Y(), got.Y(), 1e-6)
	assert.InDelta(t, start.Z(), got.Z(), 1e-5)
	assert.Equal(t, mgl32.Vec3{}, s.Cube().Velocity)
	assert.Equal(t, mgl32.Vec3{}, s.Cube().AngularVelocity)
}

func TestDragVerticalDelta(t *testing.T) {
	s := newTestSim(t)
	s.HandleEvent(input.PointerMove(640, 360))
	s.HandleEvent(input.PointerDown())
	start := s.Cube().Position

	s.HandleEvent(input.PointerMove(640, 370))
	got := s.Cube().Position
	assert.InDelta(t, start.Y()+0.5, got.Y(), 1e-5)
	assert.InDelta(t, start.Z()+0.5, got.Z(), 1e-5, "moving down pulls the cube toward the camera")
}

func TestDragMovesApplyBetweenSteps(t *testing.T) {
	s := newTestSim(t)
	s.HandleEvent(input.PointerMove(640, 360))
	s.HandleEvent(input.PointerDown())
	s.HandleEvent(input.PointerMove(650, 360))
	s.HandleEvent(input.PointerMove(660, 360))
	assert.InDelta(t, 1.0, s.Cube().Position.X(), 1e-5)

	f := s.Tick()
	assert.InDelta(t, 1.0, f.CubeMesh.Position.X(), 1e-5)
	assert.Equal(t, s.Cube().Position, f.CubeMesh.Position, "kinematic cube does not fall while dragged")
}

func TestMoveWithoutDragLeavesCube(t *testing.T) {
	s := newTestSim(t)
	start := s.Cube().Position
	s.HandleEvent(input.PointerMove(600, 300))
	s.HandleEvent(input.PointerMove(700, 400))
	assert.Equal(t, start, s.Cube().Position)
	assert.Equal(t, mgl32.Vec2{700, 400}, s.Input().Cursor)
}

func TestMeshFollowsBodyEveryTick(t *testing.T) {
	s := newTestSim(t)
	for i := 0; i < 90; i++ {
		f := s.Tick()
		require.Equal(t, s.Cube().Position, f.CubeMesh.Position)
		require.Equal(t, s.Cube().Quaternion, f.CubeMesh.Rotation)
		require.Equal(t, s.Cube().Position, f.CubeLight)
		require.Equal(t, uint64(i+1), f.Tick)
	}
}

func TestCameraTakesPlayerPositionBeforeStep(t *testing.T) {
	s := newTestSim(t)
	before := s.Player().Position
	f := s.Tick()
	assert.Equal(t, before, f.Camera.Position)
	assert.NotEqual(t, before, s.Player().Position)
}

func TestCameraOrientationFollowsSteering(t *testing.T) {
	s := newTestSim(t)
	s.HandleEvent(input.PointerMove(1270, 360))
	f := s.Tick()
	assert.InDelta(t, -0.05, f.Camera.Yaw, 1e-6)
	assert.Zero(t, f.Camera.Pitch)
}

func TestBlurReleasesKeysAndDrag(t *testing.T) {
	s := newTestSim(t)
	s.HandleEvent(input.KeyDown(input.ActionLeft))
	s.HandleEvent(input.PointerDown())
	s.HandleEvent(input.Blur())

	assert.False(t, s.Input().Moving())
	assert.False(t, s.Input().Dragging)
	assert.Equal(t, float32(5), s.Cube().Mass())
}

func TestResizeToZero(t *testing.T) {
	s := newTestSim(t)
	s.HandleEvent(input.Resize(0, 0))
	assert.Equal(t, float32(1), s.Viewport().Aspect())

	s.HandleEvent(input.PointerMove(0, 0))
	assert.Zero(t, s.Input().Yaw)

	s.HandleEvent(input.Resize(1920, 1080))
	assert.InDelta(t, 16.0/9.0, s.Viewport().Aspect(), 1e-5)
}

func TestReset(t *testing.T) {
	s := newTestSim(t)
	s.HandleEvent(input.PointerDown())
	for i := 0; i < 30; i++ {
		s.Tick()
	}
	s.Player().Velocity = mgl32.Vec3{1, 1, 1}

	s.Reset()
	assert.Equal(t, mgl32.Vec3{0, 2, 10}, s.Player().Position)
	assert.Equal(t, mgl32.Vec3{}, s.Player().Velocity)
	assert.Equal(t, mgl32.Vec3{}, s.Cube().Position)
	assert.False(t, s.Input().Dragging)
	assert.Equal(t, float32(5), s.Cube().Mass())
}

func TestSetGravity(t *testing.T) {
	s := newTestSim(t)
	s.SetGravity(mgl32.Vec3{0, 0, 0})
	assert.Equal(t, [3]float32{}, s.Config().Physics.Gravity)
	start := s.Cube().Position
	s.Tick()
	assert.Equal(t, start, s.Cube().Position)
}

func TestCameraVectors(t *testing.T) {
	c := Camera{}
	assert.InDeltaSlice(t, []float32{0, 0, -1}, vec(c.Forward()), 1e-6)
	assert.InDeltaSlice(t, []float32{1, 0, 0}, vec(c.Right()), 1e-6)
	assert.InDeltaSlice(t, []float32{0, 1, 0}, vec(c.Up()), 1e-6)

	c.Yaw = math32.Pi / 2
	assert.InDeltaSlice(t, []float32{-1, 0, 0}, vec(c.Forward()), 1e-6)
	assert.InDeltaSlice(t, []float32{0, 0, -1}, vec(c.Right()), 1e-6)

	c.Pitch = input.PitchLimit
	assert.InDelta(t, 1, c.Forward().Y(), 1e-6)
	assert.InDelta(t, 1, c.Right().Len(), 1e-6)
}

func TestCameraBasisOrthonormal(t *testing.T) {
	for _, pitch := range []float32{-input.PitchLimit, -0.7, 0, 0.3, input.PitchLimit} {
		for _, yaw := range []float32{0, 1.2, -2.5, 7} {
			c := Camera{Yaw: yaw, Pitch: pitch}
			f, r, u := c.Forward(), c.Right(), c.Up()
			assert.InDelta(t, 1, u.Len(), 1e-5, "pitch %v yaw %v", pitch, yaw)
			assert.InDelta(t, 0, u.Dot(f), 1e-5, "pitch %v yaw %v", pitch, yaw)
			assert.InDelta(t, 0, u.Dot(r), 1e-5, "pitch %v yaw %v", pitch, yaw)
		}
	}
}

func TestViewDefinedAtPitchLimit(t *testing.T) {
	s := newTestSim(t)
	s.Player().Position = mgl32.Vec3{3, -4, 7}
	for i := 0; i < 40; i++ {
		s.HandleEvent(input.PointerMove(640, 1))
	}
	require.Equal(t, input.PitchLimit, s.Input().Pitch)

	c := s.Tick().Camera
	assert.InDelta(t, 1, c.Forward().Cross(c.Up()).Len(), 1e-5)
	view := mgl32.LookAtV(c.Position, c.Target(), c.Up())
	for i, v := range view {
		require.False(t, math32.IsNaN(v), "view[%d] is NaN", i)
	}
}

func vec(v mgl32.Vec3) []float32 { return v[:] }
