package terminal

import (
	"strings"
	"unicode/utf8"

	rl "github.com/gen2brain/raylib-go/raylib"

	"glass-room/internal/commands"
	"glass-room/internal/input"
	"glass-room/internal/logger"
)

const (
	BarHeight = 40
	// When windowed, move bar up by this many pixels so it stays visible (avoids being cut off by taskbar/window bounds).
	WindowedBarOffset = 56
	prompt            = "> "
	fontSize          = 20
	padding           = 8
	// Number of log lines drawn above the input bar when terminal is open.
	maxLinesOnScreen = 14
	lineHeight       = fontSize + 4
)

var (
	// Reused every frame when drawing the terminal bar to avoid per-frame color allocations.
	termBarColor  = rl.NewColor(40, 40, 40, 255)
	termLineColor = rl.NewColor(80, 80, 80, 255)
	termLogColor  = rl.NewColor(24, 24, 24, 240)
)

// Terminal is the console input bar at the bottom of the screen. It is shown/hidden with ESC.
// When open, it handles typing and drawing and the game receives no key or button input;
// when closed, nothing is drawn. Lines starting with "cmd " are parsed as subcommand + flags
// and executed via the command registry; anything else is echoed to the log.
type Terminal struct {
	log      *logger.Logger
	reg      *commands.Registry
	queue    *input.Queue
	inputBuf string
	open     bool
}

// New returns a new Terminal that logs lines and runs "cmd ..." through reg. Opening it
// pushes a Blur into q so held keys and an active drag are released. It starts closed.
func New(log *logger.Logger, reg *commands.Registry, q *input.Queue) *Terminal {
	return &Terminal{log: log, reg: reg, queue: q}
}

// IsOpen returns true when the terminal is visible and capturing input.
func (t *Terminal) IsOpen() bool {
	return t.open
}

// Update handles ESC (toggle open/closed), and when open: typing, backspace, enter. Call once per frame.
func (t *Terminal) Update() {
	if rl.IsKeyPressed(rl.KeyEscape) {
		t.open = !t.open
		if t.open {
			t.queue.Push(input.Blur())
		}
		return
	}
	if !t.open {
		return
	}
	// Paste: Ctrl+V (Windows/Linux) or Cmd+V (macOS)
	if rl.IsKeyPressed(rl.KeyV) && (rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) || rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)) {
		if pasted := rl.GetClipboardText(); pasted != "" {
			t.inputBuf += pasted
		}
	} else {
		for {
			c := rl.GetCharPressed()
			if c == 0 {
				break
			}
			t.inputBuf += string(rune(c))
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) && len(t.inputBuf) > 0 {
		_, size := utf8.DecodeLastRuneInString(t.inputBuf)
		t.inputBuf = t.inputBuf[:len(t.inputBuf)-size]
	}
	if (rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter)) && t.inputBuf != "" {
		line := t.inputBuf
		t.inputBuf = ""
		t.log.Log(line)

		args, isCmd := commands.Parse(line)
		if !isCmd {
			t.log.Log("commands: " + strings.Join(t.reg.Names(), ", "))
			return
		}
		if err := t.reg.Execute(args); err != nil {
			t.log.Z().Warn().Err(err).Str("line", line).Msg("command failed")
		}
	}
}

// Draw draws the terminal bar at the bottom when open, and the recent log lines above it.
// Uses GetScreenWidth/GetScreenHeight so the bar matches the 2D overlay coordinate system (correct in fullscreen).
func (t *Terminal) Draw() {
	if !t.open {
		return
	}
	screenW := int(rl.GetScreenWidth())
	screenH := int(rl.GetScreenHeight())
	barY := screenH - BarHeight
	if !rl.IsWindowFullscreen() {
		barY -= WindowedBarOffset
	}

	// History area above the bar: last maxLinesOnScreen lines
	histHeight := maxLinesOnScreen * lineHeight
	histY := barY - histHeight
	if histY < 0 {
		histHeight = barY
		histY = 0
	}
	if histHeight > 0 {
		rl.DrawRectangle(0, int32(histY), int32(screenW), int32(histHeight), termLogColor)
	}
	lines := t.log.Lines()
	start := 0
	if len(lines) > maxLinesOnScreen {
		start = len(lines) - maxLinesOnScreen
	}
	for i := start; i < len(lines); i++ {
		y := histY + (i-start)*lineHeight + padding
		line := lines[i]
		if len(line) > 200 {
			line = line[:197] + "..."
		}
		rl.DrawText(line, int32(padding), int32(y), int32(fontSize), rl.LightGray)
	}

	// Input bar
	rl.DrawRectangle(0, int32(barY), int32(screenW), int32(BarHeight), termBarColor)
	rl.DrawRectangle(0, int32(barY), int32(screenW), 1, termLineColor)

	text := prompt + t.inputBuf + "|"
	rl.DrawText(text, int32(padding), int32(barY+padding), int32(fontSize), rl.White)
}
