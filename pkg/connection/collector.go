package connection

import (
	"sync"
	"time"

	"github.com/chirp-protocol/chirp-go/pkg/stanza"
)

// collectorBuffer is the per-collector queue capacity. When a collector is
// not drained fast enough the oldest stanza is discarded to make room.
const collectorBuffer = 512

// Collector inspects incoming stanzas for a match with its filter and
// queues matches for a waiting caller. A collector is one consumer waiting
// for a particular reply; Cancel it once the reply has been collected.
type Collector struct {
	filter stanza.Filter
	ch     chan stanza.Stanza

	disp *Dispatcher

	cancelOnce sync.Once
	done       chan struct{}
}

func newCollector(d *Dispatcher, f stanza.Filter) *Collector {
	if f == nil {
		f = stanza.All()
	}
	return &Collector{
		filter: f,
		ch:     make(chan stanza.Stanza, collectorBuffer),
		disp:   d,
		done:   make(chan struct{}),
	}
}

// process offers an incoming stanza to the collector. Called by the
// dispatcher on the injecting goroutine.
func (c *Collector) process(st stanza.Stanza) {
	if !c.filter.Accept(st) {
		return
	}
	for {
		select {
		case <-c.done:
			return
		case c.ch <- st:
			return
		default:
		}
		// Queue full: drop the oldest match and retry.
		select {
		case <-c.ch:
		default:
		}
	}
}

// Next removes and returns the next matching stanza, waiting up to the
// given timeout. A timeout of zero or less checks only already-collected
// stanzas. The second return value is false if nothing matched in time or
// the collector was cancelled.
func (c *Collector) Next(timeout time.Duration) (stanza.Stanza, bool) {
	if timeout <= 0 {
		select {
		case st := <-c.ch:
			return st, true
		default:
			return nil, false
		}
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case st := <-c.ch:
		return st, true
	case <-c.done:
		return nil, false
	case <-timer.C:
		return nil, false
	}
}

// Pending returns the number of collected, undrained stanzas.
func (c *Collector) Pending() int {
	return len(c.ch)
}

// Cancel unregisters the collector from its connection. Already-collected
// stanzas can still be drained with a zero timeout.
func (c *Collector) Cancel() {
	c.cancelOnce.Do(func() {
		close(c.done)
		if c.disp != nil {
			c.disp.removeCollector(c)
		}
	})
}
