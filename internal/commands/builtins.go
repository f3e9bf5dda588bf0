package commands

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"glass-room/internal/config"
	"glass-room/internal/sim"
)

// Session is what the built-in commands act on.
type Session struct {
	Sim *sim.Sim
	// Overlay toggles, flipped by fps, mem and state.
	ShowFPS, ShowMem, ShowState *bool
	// Save persists a config; nil disables the save command.
	Save func(config.Config) error
	// Print reports command output to the console.
	Print func(string)
}

// RegisterBuiltins adds fps, mem, state, reset, gravity and save to r.
func RegisterBuiltins(r *Registry, s Session) {
	toggle("fps", s.ShowFPS, r, s)
	toggle("mem", s.ShowMem, r, s)
	toggle("state", s.ShowState, r, s)

	r.Register("reset", nil, func() error {
		s.Sim.Reset()
		s.print("scene reset")
		return nil
	})

	gfs := NewFlagSet("gravity")
	y := gfs.Float64("y", math.NaN(), "vertical gravity in m/s²")
	r.Register("gravity", gfs, func() error {
		if math.IsNaN(*y) {
			return errors.New("gravity: --y is required")
		}
		g := mgl32.Vec3(s.Sim.Config().Physics.Gravity)
		g[1] = float32(*y)
		s.Sim.SetGravity(g)
		s.print(fmt.Sprintf("gravity %.2f", g[1]))
		return nil
	})

	r.Register("save", nil, func() error {
		if s.Save == nil {
			return errors.New("save: no config path")
		}
		cfg := s.Sim.Config()
		cfg.Debug = config.DebugPrefs{ShowFPS: deref(s.ShowFPS), ShowMem: deref(s.ShowMem), ShowState: deref(s.ShowState)}
		if err := s.Save(cfg); err != nil {
			return fmt.Errorf("save: %w", err)
		}
		s.print("config saved")
		return nil
	})
}

// toggle registers "name --show|--hide" flipping *v.
func toggle(name string, v *bool, r *Registry, s Session) {
	fs := NewFlagSet(name)
	show := fs.Bool("show", false, "show the readout")
	hide := fs.Bool("hide", false, "hide the readout")
	r.Register(name, fs, func() error {
		switch {
		case *show == *hide:
			return fmt.Errorf("%s: exactly one of --show or --hide is required", name)
		case v == nil:
			return fmt.Errorf("%s: no overlay", name)
		}
		*v = *show
		return nil
	})
}

func (s Session) print(line string) {
	if s.Print != nil {
		s.Print(line)
	}
}

func deref(b *bool) bool {
	return b != nil && *b
}
