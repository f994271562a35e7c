package connection

import (
	"testing"
	"time"

	"mellium.im/xmpp/jid"

	"github.com/chirp-protocol/chirp-go/pkg/stanza"
)

func testMessage(t *testing.T, body string) *stanza.Message {
	t.Helper()
	return stanza.NewMessage(jid.MustParse("juliet@example.org"), body)
}

func TestDispatchReachesCollectorsAndListeners(t *testing.T) {
	d := NewDispatcher()

	col := d.NewCollector(stanza.ForName("message"))
	defer col.Cancel()

	var heard []stanza.Stanza
	d.AddReceiveListener(nil, func(st stanza.Stanza) {
		heard = append(heard, st)
	})

	m := testMessage(t, "hello")
	d.Dispatch(m)

	got, ok := col.Next(0)
	if !ok {
		t.Fatal("collector did not receive the dispatched stanza")
	}
	if got != stanza.Stanza(m) {
		t.Errorf("collector got %v, want %v", got, m)
	}

	if len(heard) != 1 || heard[0] != stanza.Stanza(m) {
		t.Errorf("listener heard %v, want exactly the dispatched stanza", heard)
	}
}

func TestDispatchListenerOrder(t *testing.T) {
	d := NewDispatcher()

	var order []int
	for i := 0; i < 5; i++ {
		i := i
		d.AddReceiveListener(nil, func(stanza.Stanza) {
			order = append(order, i)
		})
	}

	d.Dispatch(testMessage(t, "ordered"))

	for i, got := range order {
		if got != i {
			t.Fatalf("listener order = %v, want registration order", order)
		}
	}
	if len(order) != 5 {
		t.Fatalf("invoked %d listeners, want 5", len(order))
	}
}

func TestDispatchFilteredListener(t *testing.T) {
	d := NewDispatcher()

	var presences int
	d.AddReceiveListener(stanza.ForName("presence"), func(stanza.Stanza) {
		presences++
	})

	d.Dispatch(testMessage(t, "not a presence"))
	d.Dispatch(stanza.NewPresence(stanza.PresenceAvailable))

	if presences != 1 {
		t.Errorf("filtered listener invoked %d times, want 1", presences)
	}
}

func TestRemoveReceiveListener(t *testing.T) {
	d := NewDispatcher()

	var calls int
	id := d.AddReceiveListener(nil, func(stanza.Stanza) { calls++ })

	d.Dispatch(testMessage(t, "one"))
	d.RemoveReceiveListener(id)
	d.Dispatch(testMessage(t, "two"))

	if calls != 1 {
		t.Errorf("listener invoked %d times, want 1", calls)
	}
	if d.ListenerCount() != 0 {
		t.Errorf("ListenerCount = %d after removal, want 0", d.ListenerCount())
	}
}

func TestDispatchListenerPanicPropagates(t *testing.T) {
	d := NewDispatcher()
	d.AddReceiveListener(nil, func(stanza.Stanza) {
		panic("listener failure")
	})

	defer func() {
		if recover() == nil {
			t.Error("listener panic did not propagate to the dispatching caller")
		}
	}()
	d.Dispatch(testMessage(t, "boom"))
}

func TestCollectorTimedNext(t *testing.T) {
	d := NewDispatcher()
	col := d.NewCollector(nil)
	defer col.Cancel()

	// Empty collector with zero wait returns immediately.
	if _, ok := col.Next(0); ok {
		t.Error("Next(0) on empty collector returned a stanza")
	}

	// A stanza dispatched from another goroutine unblocks a waiting Next.
	m := testMessage(t, "late")
	go func() {
		time.Sleep(20 * time.Millisecond)
		d.Dispatch(m)
	}()

	got, ok := col.Next(2 * time.Second)
	if !ok {
		t.Fatal("Next timed out waiting for dispatched stanza")
	}
	if got != stanza.Stanza(m) {
		t.Errorf("Next = %v, want %v", got, m)
	}
}

func TestCollectorCancelUnregisters(t *testing.T) {
	d := NewDispatcher()
	col := d.NewCollector(nil)

	if d.CollectorCount() != 1 {
		t.Fatalf("CollectorCount = %d, want 1", d.CollectorCount())
	}

	col.Cancel()
	col.Cancel() // idempotent

	if d.CollectorCount() != 0 {
		t.Errorf("CollectorCount = %d after cancel, want 0", d.CollectorCount())
	}
}
