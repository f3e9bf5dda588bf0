package sim

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glass-room/internal/input"
)

type fakeRenderer struct {
	frames  []Frame
	resizes [][2]int32
	failAt  int
}

func (r *fakeRenderer) Render(f *Frame) error {
	r.frames = append(r.frames, *f)
	if r.failAt > 0 && len(r.frames) == r.failAt {
		return errors.New("device lost")
	}
	return nil
}

func (r *fakeRenderer) Resize(w, h int32) {
	r.resizes = append(r.resizes, [2]int32{w, h})
}

func newTestLoop(t *testing.T, r Renderer) (*Loop, *input.Queue) {
	t.Helper()
	q := input.NewQueue(16)
	return NewLoop(newTestSim(t), q, r, zerolog.Nop()), q
}

func TestFrameDrainsEventsThenRenders(t *testing.T) {
	r := &fakeRenderer{}
	l, q := newTestLoop(t, r)
	q.Push(input.KeyDown(input.ActionForward))
	q.Push(input.Resize(800, 600))

	require.NoError(t, l.Frame())
	assert.Zero(t, q.Len())
	assert.True(t, l.Sim().Input().Forward)
	assert.Equal(t, [][2]int32{{800, 600}}, r.resizes)
	require.Len(t, r.frames, 1)
	assert.Equal(t, Viewport{Width: 800, Height: 600}, r.frames[0].Viewport)
	assert.Equal(t, uint64(1), l.Frames())
}

func TestFrameAdvancesFixedStep(t *testing.T) {
	r := &fakeRenderer{}
	l, _ := newTestLoop(t, r)
	for i := 0; i < 60; i++ {
		require.NoError(t, l.Frame())
	}
	assert.InDelta(t, 1.0, r.frames[59].Time, 1e-4)
}

func TestRunStopsOnRenderError(t *testing.T) {
	r := &fakeRenderer{failAt: 3}
	l, _ := newTestLoop(t, r)
	refresh := make(chan time.Time, 10)
	for i := 0; i < 10; i++ {
		refresh <- time.Time{}
	}

	err := l.Run(context.Background(), refresh)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "device lost")
	assert.Len(t, r.frames, 3)
}

func TestRunEndsWhenRefreshCloses(t *testing.T) {
	r := &fakeRenderer{}
	l, _ := newTestLoop(t, r)
	refresh := make(chan time.Time, 5)
	for i := 0; i < 5; i++ {
		refresh <- time.Time{}
	}
	close(refresh)

	require.NoError(t, l.Run(context.Background(), refresh))
	assert.Len(t, r.frames, 5)
}

func TestRunHonorsContext(t *testing.T) {
	l, _ := newTestLoop(t, &fakeRenderer{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := l.Run(ctx, make(chan time.Time))
	assert.ErrorIs(t, err, context.Canceled)
}
