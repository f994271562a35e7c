package connection

import (
	"context"
	"testing"
	"time"
)

func TestSignalStartsUnsatisfied(t *testing.T) {
	s := NewSignal()
	if s.Satisfied() {
		t.Error("new signal reports satisfied")
	}
}

func TestSignalReportReleasesWaiters(t *testing.T) {
	s := NewSignal()

	done := make(chan error, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		done <- s.Wait(ctx)
	}()

	s.Report()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Wait returned %v after Report", err)
		}
	case <-time.After(time.Second):
		t.Fatal("waiter not released after Report")
	}

	if !s.Satisfied() {
		t.Error("signal not satisfied after Report")
	}
}

func TestSignalReportIdempotent(t *testing.T) {
	s := NewSignal()
	s.Report()
	s.Report() // must not panic on double close
	if !s.Satisfied() {
		t.Error("signal not satisfied after double Report")
	}
}

func TestSignalWaitContextCancel(t *testing.T) {
	s := NewSignal()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := s.Wait(ctx); err == nil {
		t.Error("Wait returned nil for unsatisfied signal with expired context")
	}
}
