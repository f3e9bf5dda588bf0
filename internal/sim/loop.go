package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"glass-room/internal/input"
)

// Renderer draws a frame. A Render error is fatal to the session.
type Renderer interface {
	Render(f *Frame) error
	// Resize recomputes the projection for a new surface size. Zero sizes must be tolerated.
	Resize(width, height int32)
}

// Loop couples an input queue, a Sim and a Renderer. Each Frame drains the queue, applies
// the events in arrival order, advances one fixed step and renders.
type Loop struct {
	sim    *Sim
	queue  *input.Queue
	render Renderer
	log    zerolog.Logger
	events []input.Event

	frames  uint64
	dropped uint64
}

// NewLoop returns a loop over s fed from q and drawing with r.
func NewLoop(s *Sim, q *input.Queue, r Renderer, log zerolog.Logger) *Loop {
	return &Loop{sim: s, queue: q, render: r, log: log, events: make([]input.Event, 0, 64)}
}

// Frame runs one display refresh worth of work.
func (l *Loop) Frame() error {
	l.events = l.queue.Drain(l.events[:0])
	for _, ev := range l.events {
		l.sim.HandleEvent(ev)
		if ev.Kind == input.EventResize {
			l.render.Resize(ev.Width, ev.Height)
		}
	}
	if d := l.queue.Dropped(); d != l.dropped {
		l.log.Warn().Uint64("dropped", d-l.dropped).Msg("input queue overflow")
		l.dropped = d
	}
	f := l.sim.Tick()
	l.frames++
	if err := l.render.Render(f); err != nil {
		return fmt.Errorf("sim: render tick %d: %w", f.Tick, err)
	}
	return nil
}

// Run calls Frame once per value received from refresh until refresh is closed, ctx is
// done, or a frame fails. The wall-clock time between refreshes is ignored: every frame
// advances exactly one fixed step.
func (l *Loop) Run(ctx context.Context, refresh <-chan time.Time) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-refresh:
			if !ok {
				return nil
			}
			if err := l.Frame(); err != nil {
				return err
			}
		}
	}
}

// Frames returns the number of frames run so far.
func (l *Loop) Frames() uint64 { return l.frames }

// Sim returns the simulation driven by the loop.
func (l *Loop) Sim() *Sim { return l.sim }
