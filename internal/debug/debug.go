package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"

	"glass-room/internal/config"
	"glass-room/internal/sim"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh the text every N frames to reduce allocations.
	updateInterval = 30
)

// Debug draws the FPS, heap and loop state readouts at the top-right. Each is toggled
// independently.
type Debug struct {
	ShowFPS   bool
	ShowMem   bool
	ShowState bool

	frameCount uint32
	fpsText    string
	memText    string
	stateText  string
	memStats   runtime.MemStats
}

// New returns an overlay with the toggles from prefs.
func New(prefs config.DebugPrefs) *Debug {
	return &Debug{ShowFPS: prefs.ShowFPS, ShowMem: prefs.ShowMem, ShowState: prefs.ShowState}
}

// Prefs returns the current toggles, for saving.
func (d *Debug) Prefs() config.DebugPrefs {
	return config.DebugPrefs{ShowFPS: d.ShowFPS, ShowMem: d.ShowMem, ShowState: d.ShowState}
}

// Draw renders the enabled readouts for frame f. Call after the scene and before the
// console in the draw loop.
func (d *Debug) Draw(f *sim.Frame) {
	d.frameCount++
	update := d.frameCount%updateInterval == 1

	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)
	line := func(text string) {
		w := rl.MeasureText(text, fontSize)
		rl.DrawText(text, screenW-w-padding, y, fontSize, rl.Green)
		y += lineHeight
	}

	if d.ShowFPS {
		if update || d.fpsText == "" {
			d.fpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		line(d.fpsText)
	}
	if d.ShowMem {
		if update || d.memText == "" {
			runtime.ReadMemStats(&d.memStats)
			d.memText = fmt.Sprintf("Mem: %.2f MiB", float64(d.memStats.Alloc)/(1024*1024))
		}
		line(d.memText)
	}
	if d.ShowState && f != nil {
		if update || d.stateText == "" {
			d.stateText = fmt.Sprintf("tick %d  player (%.1f, %.1f, %.1f)  jump %t  drag %t",
				f.Tick, f.Player[0], f.Player[1], f.Player[2], f.CanJump, f.Dragging)
		}
		line(d.stateText)
	}
}
