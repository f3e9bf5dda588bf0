package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"glass-room/internal/config"
)

// Window is the raylib window and its frame loop. Only one may exist, on the main thread.
type Window struct {
	cfg config.Window
}

// Open creates the window. A fullscreen window takes the primary monitor's size.
// ESC is reserved for the console, so the window closes only via its close button.
func Open(cfg config.Window) *Window {
	flags := uint32(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	w, h := cfg.Width, cfg.Height
	if cfg.Fullscreen {
		flags |= rl.FlagFullscreenMode
		w, h = int32(rl.GetMonitorWidth(0)), int32(rl.GetMonitorHeight(0))
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(w, h, cfg.Title)
	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(cfg.TargetFPS)
	return &Window{cfg: cfg}
}

// Size returns the current screen size in pixels.
func (w *Window) Size() (width, height int32) {
	return int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
}

// Run calls update then draw once per display refresh until the window is closed or draw
// fails. draw runs between BeginDrawing and EndDrawing.
func (w *Window) Run(update func(), draw func() error) error {
	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		err := draw()
		rl.EndDrawing()
		if err != nil {
			return err
		}
	}
	return nil
}

// Close destroys the window and its OpenGL context.
func (w *Window) Close() {
	rl.CloseWindow()
}
