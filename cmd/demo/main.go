package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"glass-room/internal/commands"
	"glass-room/internal/config"
	"glass-room/internal/debug"
	"glass-room/internal/env"
	"glass-room/internal/graphics"
	"glass-room/internal/input"
	"glass-room/internal/logger"
	"glass-room/internal/scene"
	"glass-room/internal/sim"
	"glass-room/internal/terminal"
)

func init() {
	// raylib and OpenGL calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	// .env supplies GLASS_ROOM_CONFIG and GLASS_ROOM_LOG defaults; flags win.
	envErr := env.Load(".env")
	configPath := flag.String("config", env.Get("CONFIG", config.DefaultPath), "YAML config file")
	headless := flag.Bool("headless", false, "run without a window against a logging renderer")
	frames := flag.Int("frames", 600, "frames to run in headless mode")
	logPath := flag.String("log", env.Get("LOG", logger.LogFilePath), "log file (empty for memory only)")
	flag.Parse()

	log, err := logger.New(*logPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	z := log.Z()
	if envErr != nil {
		z.Warn().Err(envErr).Msg("ignoring .env")
	}

	err = run(log, *configPath, *headless, *frames)
	if err != nil {
		z.Error().Err(err).Msg("fatal")
		fmt.Fprintln(os.Stderr, err)
	}
	log.Close()
	if err != nil {
		os.Exit(1)
	}
}

func run(log *logger.Logger, configPath string, headless bool, frames int) error {
	z := log.Z()
	cfg, err := config.Load(configPath)
	if err != nil {
		z.Warn().Err(err).Str("path", configPath).Msg("using default config")
	}
	s, err := sim.New(cfg, z.With().Str("component", "sim").Logger())
	if err != nil {
		return err
	}
	q := input.NewQueue(input.DefaultQueueSize)
	z.Info().Bool("headless", headless).Str("config", configPath).Msg("start")

	if headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return runHeadless(ctx, s, q, frames, *z)
	}
	return runWindowed(log, cfg, configPath, s, q)
}

func runWindowed(log *logger.Logger, cfg config.Config, configPath string, s *sim.Sim, q *input.Queue) error {
	z := log.Z()
	poller, err := graphics.NewPoller(cfg.Keys.Bindings())
	if err != nil {
		return err
	}

	win := graphics.Open(cfg.Window)
	defer win.Close()
	w, h := win.Size()
	render := scene.New(z.With().Str("component", "scene").Logger(), sim.Viewport{Width: w, Height: h})
	defer render.Close()

	overlay := debug.New(cfg.Debug)
	reg := commands.NewRegistry()
	commands.RegisterBuiltins(reg, commands.Session{
		Sim:       s,
		ShowFPS:   &overlay.ShowFPS,
		ShowMem:   &overlay.ShowMem,
		ShowState: &overlay.ShowState,
		Save:      func(c config.Config) error { return config.Save(configPath, c) },
		Print:     log.Log,
	})
	term := terminal.New(log, reg, q)
	loop := sim.NewLoop(s, q, render, *z)

	update := func() {
		term.Update()
		poller.Poll(q, term.IsOpen())
	}
	draw := func() error {
		if err := loop.Frame(); err != nil {
			return err
		}
		overlay.Draw(s.Frame())
		term.Draw()
		return nil
	}
	if err := win.Run(update, draw); err != nil {
		return err
	}
	z.Info().Uint64("frames", loop.Frames()).Msg("window closed")
	return nil
}
