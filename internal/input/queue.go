package input

import "sync"

// DefaultQueueSize bounds the events buffered between two ticks.
const DefaultQueueSize = 256

// Queue is a bounded FIFO of input events. Push is safe from any goroutine; Drain is
// called once per tick by the loop. When full, the oldest event is overwritten.
type Queue struct {
	mu      sync.Mutex
	buf     []Event
	head    int
	n       int
	dropped uint64
}

// NewQueue returns a queue holding at most size events (DefaultQueueSize if size <= 0).
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{buf: make([]Event, size)}
}

// Push appends ev, overwriting the oldest pending event when the queue is full.
func (q *Queue) Push(ev Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.n == len(q.buf) {
		q.head = (q.head + 1) % len(q.buf)
		q.n--
		q.dropped++
	}
	q.buf[(q.head+q.n)%len(q.buf)] = ev
	q.n++
}

// Drain appends all pending events to dst in arrival order and empties the queue.
func (q *Queue) Drain(dst []Event) []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i := 0; i < q.n; i++ {
		dst = append(dst, q.buf[(q.head+i)%len(q.buf)])
	}
	q.head, q.n = 0, 0
	return dst
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.n
}

// Dropped returns how many events were overwritten because the queue was full.
func (q *Queue) Dropped() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}
