package connection

import "testing"

func TestCreationListenerNotify(t *testing.T) {
	t.Cleanup(ClearCreationListeners)

	var notified []Connection
	RegisterCreationListener(func(c Connection) {
		notified = append(notified, c)
	})

	NotifyCreated(nil)

	if len(notified) != 1 {
		t.Fatalf("creation listener invoked %d times, want 1", len(notified))
	}
}

func TestClearCreationListeners(t *testing.T) {
	t.Cleanup(ClearCreationListeners)

	var calls int
	RegisterCreationListener(func(Connection) { calls++ })
	ClearCreationListeners()

	NotifyCreated(nil)

	if calls != 0 {
		t.Errorf("cleared listener still invoked %d times", calls)
	}
}
