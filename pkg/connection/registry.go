package connection

import "sync"

// CreationListener is notified once for every connection constructed in
// the process.
type CreationListener func(c Connection)

var (
	creationMu        sync.RWMutex
	creationListeners []CreationListener
)

// RegisterCreationListener adds a listener notified whenever a new
// connection is constructed.
func RegisterCreationListener(fn CreationListener) {
	creationMu.Lock()
	defer creationMu.Unlock()
	creationListeners = append(creationListeners, fn)
}

// ClearCreationListeners removes all creation listeners. Tests that
// register listeners should call this during cleanup so state does not
// leak between test cases.
func ClearCreationListeners() {
	creationMu.Lock()
	defer creationMu.Unlock()
	creationListeners = nil
}

// NotifyCreated invokes every registered creation listener with c, in
// registration order. Connection implementations call this once from
// their constructor.
func NotifyCreated(c Connection) {
	creationMu.RLock()
	listeners := make([]CreationListener, len(creationListeners))
	copy(listeners, creationListeners)
	creationMu.RUnlock()

	for _, fn := range listeners {
		fn(c)
	}
}
