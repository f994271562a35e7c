package conntest

import (
	"sync"
	"time"

	"github.com/eapache/queue"

	"github.com/chirp-protocol/chirp-go/pkg/stanza"
)

// elementQueue is an unbounded FIFO of top-level stream elements with a
// blocking timed take. Appends never block; takes preserve insertion order
// even under concurrent producers.
type elementQueue struct {
	mu     sync.Mutex
	buf    *queue.Queue
	notify chan struct{}
}

func newElementQueue() *elementQueue {
	return &elementQueue{
		buf:    queue.New(),
		notify: make(chan struct{}, 1),
	}
}

// push appends el to the tail of the queue and wakes one waiting taker.
func (q *elementQueue) push(el stanza.Element) {
	q.mu.Lock()
	q.buf.Add(el)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// take removes and returns the head of the queue, waiting up to timeout
// for an element to arrive. A timeout of zero or less checks only the
// current contents. The second return value is false when the wait
// elapsed with nothing produced.
func (q *elementQueue) take(timeout time.Duration) (stanza.Element, bool) {
	if el, ok := q.pop(); ok {
		return el, true
	}
	if timeout <= 0 {
		return nil, false
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		select {
		case <-q.notify:
			if el, ok := q.pop(); ok {
				return el, true
			}
		case <-deadline.C:
			return nil, false
		}
	}
}

func (q *elementQueue) pop() (stanza.Element, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.buf.Length() == 0 {
		return nil, false
	}
	el := q.buf.Remove().(stanza.Element)

	// Keep the wakeup token alive while elements remain so a concurrent
	// taker is not stranded.
	if q.buf.Length() > 0 {
		select {
		case q.notify <- struct{}{}:
		default:
		}
	}
	return el, true
}

// len returns the current number of queued elements. The value is a
// snapshot; it is advisory under concurrent pushes and takes.
func (q *elementQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.buf.Length()
}
