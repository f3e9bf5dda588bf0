package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file path, relative to the working directory.
const DefaultPath = "config/demo.yaml"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config holds every tunable of the demo. Persisted across runs by `cmd save`.
type Config struct {
	Window  Window     `yaml:"window"`
	Physics Physics    `yaml:"physics"`
	Player  Player     `yaml:"player"`
	Cube    Cube       `yaml:"cube"`
	Look    Look       `yaml:"look"`
	Drag    Drag       `yaml:"drag"`
	Keys    Keys       `yaml:"keys"`
	Debug   DebugPrefs `yaml:"debug"`
}

type Window struct {
	Width      int32  `yaml:"width"`
	Height     int32  `yaml:"height"`
	Title      string `yaml:"title"`
	Fullscreen bool   `yaml:"fullscreen"`
	TargetFPS  int32  `yaml:"target_fps"`
}

// Physics: Step is the fixed simulation delta advanced once per frame.
type Physics struct {
	Gravity    [3]float32 `yaml:"gravity"`
	Step       float32    `yaml:"step"`
	Iterations int        `yaml:"iterations"`
}

type Player struct {
	Spawn         [3]float32 `yaml:"spawn"`
	Radius        float32    `yaml:"radius"`
	Mass          float32    `yaml:"mass"`
	LinearDamping float32    `yaml:"linear_damping"`
	Speed         float32    `yaml:"speed"`
	JumpVelocity  float32    `yaml:"jump_velocity"`
	// Decay multiplies horizontal velocity each tick while no movement key is held.
	Decay float32 `yaml:"decay"`
}

type Cube struct {
	Spawn          [3]float32 `yaml:"spawn"`
	HalfExtent     float32    `yaml:"half_extent"`
	Mass           float32    `yaml:"mass"`
	LinearDamping  float32    `yaml:"linear_damping"`
	AngularDamping float32    `yaml:"angular_damping"`
	Restitution    float32    `yaml:"restitution"`
	Friction       float32    `yaml:"friction"`
}

// Look configures edge steering: rotation per pointer event past EdgeThreshold (NDC).
type Look struct {
	EdgeThreshold float32 `yaml:"edge_threshold"`
	RotationSpeed float32 `yaml:"rotation_speed"`
}

// Drag: Speed scales pointer deltas (screen units) into world units.
type Drag struct {
	Speed float32 `yaml:"speed"`
}

// Keys binds actions to key names (e.g. "W", "SPACE", "UP").
type Keys struct {
	Forward string `yaml:"forward"`
	Back    string `yaml:"back"`
	Left    string `yaml:"left"`
	Right   string `yaml:"right"`
	Jump    string `yaml:"jump"`
}

// DebugPrefs holds overlay toggles. All overlays are off by default.
type DebugPrefs struct {
	ShowFPS   bool `yaml:"show_fps"`
	ShowMem   bool `yaml:"show_mem"`
	ShowState bool `yaml:"show_state"`
}

// Default returns the reference scene tuning.
func Default() Config {
	return Config{
		Window: Window{Width: 1280, Height: 720, Title: "glass room", TargetFPS: 60},
		Physics: Physics{
			Gravity:    [3]float32{0, -9.82, 0},
			Step:       1.0 / 60,
			Iterations: 10,
		},
		Player: Player{
			Spawn:         [3]float32{0, 2, 10},
			Radius:        1,
			Mass:          5,
			LinearDamping: 0.9,
			Speed:         20,
			JumpVelocity:  10,
			Decay:         0.9,
		},
		Cube: Cube{
			HalfExtent:     1,
			Mass:           5,
			LinearDamping:  0.1,
			AngularDamping: 0.2,
			Restitution:    0.7,
			Friction:       0.5,
		},
		Look: Look{EdgeThreshold: 0.8, RotationSpeed: 0.05},
		Drag: Drag{Speed: 0.05},
		Keys: Keys{Forward: "W", Back: "S", Left: "A", Right: "D", Jump: "SPACE"},
	}
}

// Load reads the config at path. A missing file yields Default() and no error. A file that
// does not parse or validate yields Default() and the error, so the caller can log it and go on.
// Fields absent from the file keep their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("config: read %s: %w", path, err)
	}
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Default(), fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return Default(), err
	}
	return c, nil
}

// Save writes c to path as YAML, creating the directory if needed.
func Save(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports every out-of-range value in one error wrapping ErrInvalid.
func (c Config) Validate() error {
	var problems []string
	check := func(ok bool, msg string) {
		if !ok {
			problems = append(problems, msg)
		}
	}
	check(c.Physics.Step > 0, "physics.step must be > 0")
	check(c.Physics.Iterations > 0, "physics.iterations must be > 0")
	check(c.Player.Radius > 0, "player.radius must be > 0")
	check(c.Player.Mass > 0, "player.mass must be > 0")
	check(c.Player.Decay >= 0 && c.Player.Decay <= 1, "player.decay must be in [0,1]")
	check(c.Cube.HalfExtent > 0, "cube.half_extent must be > 0")
	check(c.Cube.Mass > 0, "cube.mass must be > 0")
	check(c.Look.EdgeThreshold >= 0 && c.Look.EdgeThreshold < 1, "look.edge_threshold must be in [0,1)")
	check(c.Window.TargetFPS >= 0, "window.target_fps must be >= 0")
	problems = append(problems, c.Keys.problems()...)
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
}

// problems reports empty key names and keys bound to more than one action. Names compare
// case-insensitively.
func (k Keys) problems() []string {
	var out []string
	owner := make(map[string]string)
	for _, b := range []struct{ action, key string }{
		{"forward", k.Forward}, {"back", k.Back}, {"left", k.Left}, {"right", k.Right}, {"jump", k.Jump},
	} {
		key := strings.ToUpper(strings.TrimSpace(b.key))
		if key == "" {
			out = append(out, fmt.Sprintf("keys.%s must not be empty", b.action))
			continue
		}
		if prev, ok := owner[key]; ok {
			out = append(out, fmt.Sprintf("keys.%s: %s is already bound to %s", b.action, key, prev))
			continue
		}
		owner[key] = b.action
	}
	return out
}

// Bindings returns the key name bound to each action name.
func (k Keys) Bindings() map[string]string {
	return map[string]string{
		"forward": k.Forward,
		"back":    k.Back,
		"left":    k.Left,
		"right":   k.Right,
		"jump":    k.Jump,
	}
}
