package log

import "testing"

// recordingLogger captures events for assertions.
type recordingLogger struct {
	events []Event
}

func (r *recordingLogger) Log(event Event) {
	r.events = append(r.events, event)
}

func TestMultiLoggerFansOut(t *testing.T) {
	a := &recordingLogger{}
	b := &recordingLogger{}
	m := NewMultiLogger(a, b, NoopLogger{})

	m.Log(stateEvent("c1", "CONNECTED"))

	if len(a.events) != 1 || len(b.events) != 1 {
		t.Errorf("fan-out delivered %d/%d events, want 1/1", len(a.events), len(b.events))
	}
}
