package connection

import (
	"sync"

	"github.com/chirp-protocol/chirp-go/pkg/stanza"
)

// listenerEntry pairs a receive listener with its filter and removal id.
type listenerEntry struct {
	id     uint64
	filter stanza.Filter
	fn     Listener
}

// Dispatcher routes incoming stanzas to registered collectors and receive
// listeners. Collectors run first in registration order, then listeners in
// registration order, all synchronously on the delivering goroutine. A
// panic in a listener propagates to the caller of Dispatch.
type Dispatcher struct {
	mu         sync.RWMutex
	collectors []*Collector
	listeners  []listenerEntry
	nextID     uint64
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// NewCollector registers a collector for stanzas accepted by f. A nil
// filter accepts everything.
func (d *Dispatcher) NewCollector(f stanza.Filter) *Collector {
	c := newCollector(d, f)
	d.mu.Lock()
	d.collectors = append(d.collectors, c)
	d.mu.Unlock()
	return c
}

func (d *Dispatcher) removeCollector(c *Collector) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, existing := range d.collectors {
		if existing == c {
			d.collectors = append(d.collectors[:i], d.collectors[i+1:]...)
			return
		}
	}
}

// AddReceiveListener registers fn for stanzas accepted by f. A nil filter
// accepts everything. The returned id removes the listener again.
func (d *Dispatcher) AddReceiveListener(f stanza.Filter, fn Listener) uint64 {
	if f == nil {
		f = stanza.All()
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	d.listeners = append(d.listeners, listenerEntry{id: d.nextID, filter: f, fn: fn})
	return d.nextID
}

// RemoveReceiveListener removes the listener registered under id.
func (d *Dispatcher) RemoveReceiveListener(id uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, e := range d.listeners {
		if e.id == id {
			d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
			return
		}
	}
}

// Dispatch delivers st to every registered collector and then to every
// matching receive listener, synchronously. Listeners may register or
// remove other listeners during dispatch; such changes take effect on the
// next Dispatch call.
func (d *Dispatcher) Dispatch(st stanza.Stanza) {
	d.mu.RLock()
	collectors := make([]*Collector, len(d.collectors))
	copy(collectors, d.collectors)
	listeners := make([]listenerEntry, len(d.listeners))
	copy(listeners, d.listeners)
	d.mu.RUnlock()

	for _, c := range collectors {
		c.process(st)
	}
	for _, e := range listeners {
		if e.filter.Accept(st) {
			e.fn(st)
		}
	}
}

// CollectorCount returns the number of registered collectors.
func (d *Dispatcher) CollectorCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.collectors)
}

// ListenerCount returns the number of registered receive listeners.
func (d *Dispatcher) ListenerCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.listeners)
}
