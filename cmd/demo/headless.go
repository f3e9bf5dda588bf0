package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"glass-room/internal/input"
	"glass-room/internal/sim"
)

// logRenderer stands in for the window: it logs a summary line every second of
// simulated time.
type logRenderer struct {
	log   zerolog.Logger
	every uint64
}

func (r logRenderer) Render(f *sim.Frame) error {
	if f.Tick%r.every != 0 {
		return nil
	}
	r.log.Info().
		Uint64("tick", f.Tick).
		Float32("time", f.Time).
		Floats32("player", f.Player[:]).
		Floats32("cube", f.CubeMesh.Position[:]).
		Bool("can_jump", f.CanJump).
		Msg("frame")
	return nil
}

func (r logRenderer) Resize(width, height int32) {
	r.log.Debug().Int32("width", width).Int32("height", height).Msg("resize")
}

// runHeadless drives the loop from a 60 Hz ticker for the given number of frames, then
// prints the final poses.
func runHeadless(ctx context.Context, s *sim.Sim, q *input.Queue, frames int, log zerolog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := sim.NewLoop(s, q, logRenderer{log: log, every: 60}, log)
	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	refresh := make(chan time.Time)
	go func() {
		defer close(refresh)
		for i := 0; i < frames; i++ {
			select {
			case t := <-ticker.C:
				select {
				case refresh <- t:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	if err := loop.Run(ctx, refresh); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	p, c := s.Player().Position, s.Cube().Position
	fmt.Printf("frames %d\nplayer %.3f %.3f %.3f\ncube   %.3f %.3f %.3f\n",
		loop.Frames(), p[0], p[1], p[2], c[0], c[1], c[2])
	return nil
}
