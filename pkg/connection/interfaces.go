package connection

import (
	"context"

	"mellium.im/xmpp/jid"

	"github.com/chirp-protocol/chirp-go/pkg/stanza"
)

// Listener is invoked for every incoming stanza accepted by its filter.
type Listener func(st stanza.Stanza)

// Connection is the capability set client protocol logic programs against:
// connect, authenticate, send, observe incoming stanzas, and query the
// announced feature set. There is exactly one interface boundary; concrete
// implementations (a socket-backed connection, the conntest simulator)
// satisfy it directly.
type Connection interface {
	// Connect establishes the stream. Implementations negotiate transport
	// security and authentication mechanisms before returning.
	Connect(ctx context.Context) error

	// Login authenticates the connection and binds a resource. Must be
	// called after Connect. An empty resource lets the implementation
	// choose one.
	Login(ctx context.Context, username, password, resource string) error

	// Disconnect tears the stream down. The connection may be reconnected
	// with a later Connect.
	Disconnect() error

	// Send writes a stanza to the stream.
	Send(st stanza.Stanza) error

	// SendNonza writes a stream-level element to the stream.
	SendNonza(n stanza.Nonza) error

	// User returns the authenticated account address, the zero JID when
	// not logged in.
	User() jid.JID

	// StreamID returns the opaque session identifier of the current
	// stream, empty before the first Connect.
	StreamID() string

	// IsConnected reports whether the stream is established.
	IsConnected() bool

	// IsAuthenticated reports whether Login completed on this stream.
	IsAuthenticated() bool

	// IsSecure reports whether the stream is encrypted.
	IsSecure() bool

	// IsUsingCompression reports whether stream compression is active.
	IsUsingCompression() bool

	// NewCollector registers a collector fed every incoming stanza the
	// filter accepts. Cancel the collector when done.
	NewCollector(f stanza.Filter) *Collector

	// AddReceiveListener registers a listener for incoming stanzas the
	// filter accepts. A nil filter accepts everything. The returned id
	// removes the listener again.
	AddReceiveListener(f stanza.Filter, fn Listener) uint64

	// RemoveReceiveListener removes a previously added listener.
	RemoveReceiveListener(id uint64)

	// HasFeature reports whether the server announced the stream feature
	// qualified by the given namespace and local name.
	HasFeature(space, local string) bool
}
