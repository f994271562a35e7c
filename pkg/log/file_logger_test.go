package log

import (
	"path/filepath"
	"testing"
	"time"
)

func stateEvent(connID, newState string) Event {
	return Event{
		Timestamp:    time.Now().UTC(),
		ConnectionID: connID,
		Category:     CategoryState,
		StateChange:  &StateChangeEvent{OldState: "DISCONNECTED", NewState: newState},
	}
}

func TestFileLoggerWriteAndReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.clog")

	l, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	l.Log(stateEvent("c1", "CONNECTED"))
	l.Log(stateEvent("c1", "AUTHENTICATED"))
	if err := l.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	events, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("read %d events, want 2", len(events))
	}
	if events[1].StateChange.NewState != "AUTHENTICATED" {
		t.Errorf("second event = %+v", events[1].StateChange)
	}
}

func TestFileLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.clog")

	l1, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	l1.Log(stateEvent("c1", "CONNECTED"))
	_ = l1.Close()

	l2, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger (reopen) failed: %v", err)
	}
	l2.Log(stateEvent("c1", "AUTHENTICATED"))
	_ = l2.Close()

	events, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("read %d events after append, want 2", len(events))
	}
}

func TestFileLoggerCloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.clog")

	l, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Errorf("second Close returned %v, want nil", err)
	}

	// Logging after close must be a silent no-op.
	l.Log(stateEvent("c1", "CONNECTED"))
}

func TestReadFiltered(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.clog")

	l, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	l.Log(stateEvent("c1", "CONNECTED"))
	l.Log(stateEvent("c2", "CONNECTED"))
	l.Log(Event{
		Timestamp:    time.Now().UTC(),
		ConnectionID: "c1",
		Direction:    DirectionOut,
		Category:     CategoryElement,
		Element:      &ElementEvent{Name: "message", Stanza: true},
	})
	_ = l.Close()

	byConn, err := ReadFiltered(path, Filter{ConnectionID: "c1"})
	if err != nil {
		t.Fatalf("ReadFiltered failed: %v", err)
	}
	if len(byConn) != 2 {
		t.Errorf("ConnectionID filter returned %d events, want 2", len(byConn))
	}

	cat := CategoryElement
	byCat, err := ReadFiltered(path, Filter{Category: &cat})
	if err != nil {
		t.Fatalf("ReadFiltered failed: %v", err)
	}
	if len(byCat) != 1 || byCat[0].Element == nil {
		t.Errorf("Category filter returned %+v, want one element event", byCat)
	}
}
