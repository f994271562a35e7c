package connection

import (
	"context"
	"sync"
)

// Signal is a one-shot completion gate for an asynchronous negotiation
// step, such as "transport security handled" or "authentication mechanisms
// negotiated". It starts unsatisfied; Report satisfies it permanently and
// releases every current and future waiter.
type Signal struct {
	once sync.Once
	ch   chan struct{}
}

// NewSignal creates an unsatisfied signal.
func NewSignal() *Signal {
	return &Signal{ch: make(chan struct{})}
}

// Report marks the signal satisfied. Reporting more than once is a no-op.
func (s *Signal) Report() {
	s.once.Do(func() { close(s.ch) })
}

// Done returns a channel closed when the signal is satisfied.
func (s *Signal) Done() <-chan struct{} {
	return s.ch
}

// Satisfied reports whether the signal has been reported.
func (s *Signal) Satisfied() bool {
	select {
	case <-s.ch:
		return true
	default:
		return false
	}
}

// Wait blocks until the signal is satisfied or the context is done,
// returning the context error in the latter case.
func (s *Signal) Wait(ctx context.Context) error {
	select {
	case <-s.ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
