package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, float32(20), c.Player.Speed)
	assert.Equal(t, float32(10), c.Player.JumpVelocity)
	assert.Equal(t, float32(0.9), c.Player.Decay)
	assert.Equal(t, float32(5), c.Cube.Mass)
	assert.Equal(t, float32(0.05), c.Drag.Speed)
	assert.InDelta(t, 1.0/60, c.Physics.Step, 1e-9)
}

func TestLoadMissingFile(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "demo.yaml")
	c := Default()
	c.Player.Speed = 12
	c.Keys.Jump = "J"
	c.Debug.ShowFPS = true
	require.NoError(t, Save(path, c))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("player:\n  speed: 7\n"), 0644))

	got, err := Load(path)
	require.NoError(t, err)
	want := Default()
	want.Player.Speed = 7
	assert.Equal(t, want, got)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("player: [unclosed"), 0644))

	got, err := Load(path)
	assert.Error(t, err)
	assert.Equal(t, Default(), got)
}

func TestLoadRejectsOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("physics:\n  step: 0\nplayer:\n  decay: 2\n"), 0644))

	got, err := Load(path)
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "physics.step")
	assert.Contains(t, err.Error(), "player.decay")
	assert.Equal(t, Default(), got)
}

func TestBindings(t *testing.T) {
	b := Default().Keys.Bindings()
	assert.Equal(t, "W", b["forward"])
	assert.Equal(t, "SPACE", b["jump"])
	assert.Len(t, b, 5)
}

func TestValidateKeyBindings(t *testing.T) {
	tests := []struct {
		name string
		keys Keys
		want []string
	}{
		{"defaults", Default().Keys, nil},
		{"duplicate", Keys{Forward: "W", Back: "S", Left: "A", Right: "D", Jump: "w"}, []string{"keys.jump: W is already bound to forward"}},
		{"empty", Keys{Forward: "W", Back: " ", Left: "A", Right: "D", Jump: "SPACE"}, []string{"keys.back must not be empty"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			c.Keys = tt.keys
			err := c.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalid)
			for _, w := range tt.want {
				assert.Contains(t, err.Error(), w)
			}
		})
	}
}
