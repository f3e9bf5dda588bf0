package input

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue(8)
	q.Push(KeyDown(ActionForward))
	q.Push(PointerMove(1, 2))
	q.Push(KeyUp(ActionJump))
	require.Equal(t, 3, q.Len())

	got := q.Drain(nil)
	assert.Equal(t, []Event{KeyDown(ActionForward), PointerMove(1, 2), KeyUp(ActionJump)}, got)
	assert.Zero(t, q.Len())
	assert.Empty(t, q.Drain(nil))
}

func TestQueueOverflowDropsOldest(t *testing.T) {
	q := NewQueue(3)
	for i := 0; i < 5; i++ {
		q.Push(PointerMove(float32(i), 0))
	}
	assert.Equal(t, uint64(2), q.Dropped())

	got := q.Drain(nil)
	require.Len(t, got, 3)
	assert.Equal(t, float32(2), got[0].X)
	assert.Equal(t, float32(4), got[2].X)
}

func TestQueueConcurrentPush(t *testing.T) {
	q := NewQueue(1024)
	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				q.Push(PointerMove(float32(i), 0))
			}
		}()
	}
	wg.Wait()
	assert.Len(t, q.Drain(nil), 400)
}

func TestQueueDefaultSize(t *testing.T) {
	q := NewQueue(0)
	for i := 0; i < DefaultQueueSize+1; i++ {
		q.Push(Blur())
	}
	assert.Equal(t, DefaultQueueSize, q.Len())
}

func TestEventKindString(t *testing.T) {
	assert.Equal(t, "pointer_move", EventPointerMove.String())
	assert.Equal(t, "blur", EventBlur.String())
	assert.Equal(t, "event(99)", EventKind(99).String())
}
