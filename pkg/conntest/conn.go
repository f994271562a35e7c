package conntest

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"mellium.im/xmpp/jid"

	"github.com/chirp-protocol/chirp-go/pkg/connection"
	"github.com/chirp-protocol/chirp-go/pkg/log"
	"github.com/chirp-protocol/chirp-go/pkg/stanza"
)

// DefaultWait is how long NextSent waits for the client under test to
// produce an element before giving up.
const DefaultWait = 5 * time.Minute

// defaultResource is bound when neither the login call nor the config
// names a resource.
const defaultResource = "Test"

// State represents the simulated connection lifecycle state.
type State uint8

const (
	// StateDisconnected indicates no established stream.
	StateDisconnected State = iota

	// StateConnected indicates an established, unauthenticated stream.
	StateConnected

	// StateAuthenticated indicates a completed login on the stream.
	StateAuthenticated
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "DISCONNECTED"
	case StateConnected:
		return "CONNECTED"
	case StateAuthenticated:
		return "AUTHENTICATED"
	default:
		return "UNKNOWN"
	}
}

// Conn is a simulated connection. It implements connection.Connection
// without sockets: outbound elements are captured for inspection and
// inbound stanzas are injected by the test.
//
// A Conn is driven by the test goroutine (lifecycle calls, drains) and the
// client under test (sends). The capture queue tolerates concurrent sends
// and drains; lifecycle calls are expected from a single goroutine.
type Conn struct {
	cfg connection.Config
	id  string

	mu            sync.RWMutex
	connected     bool
	authenticated bool
	reconnect     bool
	streamID      string
	user          jid.JID

	closedFns      []func()
	reconnectedFns []func()

	sent     *elementQueue
	disp     *connection.Dispatcher
	features *connection.FeatureSet

	tlsHandled   *connection.Signal
	authFinished *connection.Signal

	events log.Logger
	diag   *logrus.Entry
}

// Compile-time interface satisfaction check.
var _ connection.Connection = (*Conn)(nil)

// DefaultConfig returns the account used when New is handed a zero Config.
func DefaultConfig() connection.Config {
	return connection.Config{
		Domain:   "example.org",
		Username: "sim",
		Password: "simpass",
	}
}

// New creates a disconnected simulated connection for the given account.
// A zero Config selects DefaultConfig. New panics if the config is
// malformed - that is a test setup bug, not a runtime condition. Every
// registered connection-creation listener is notified once.
func New(cfg connection.Config) *Conn {
	if cfg == (connection.Config{}) {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		panic(fmt.Errorf("conntest: invalid config: %w", err))
	}

	c := &Conn{
		cfg:          cfg,
		id:           uuid.NewString(),
		sent:         newElementQueue(),
		disp:         connection.NewDispatcher(),
		features:     connection.NewFeatureSet(),
		tlsHandled:   connection.NewSignal(),
		authFinished: connection.NewSignal(),
		events:       log.NoopLogger{},
	}
	c.diag = logrus.WithFields(logrus.Fields{
		"component": "conntest",
		"conn_id":   c.id,
	})
	c.user = c.mustUserJID(cfg.Resource)

	connection.NotifyCreated(c)
	return c
}

// NewConnected creates a simulated connection and brings it all the way to
// the authenticated state. Any lifecycle failure - practically unreachable
// here - panics, so test setup code gets a ready connection or fails
// loudly.
func NewConnected(cfg connection.Config) *Conn {
	c := New(cfg)
	ctx := context.Background()
	if err := c.Connect(ctx); err != nil {
		panic(fmt.Errorf("conntest: connect failed: %w", err))
	}
	if err := c.Login(ctx, c.cfg.Username, c.cfg.Password, ""); err != nil {
		panic(fmt.Errorf("conntest: login failed: %w", err))
	}
	return c
}

// mustUserJID composes the account address, falling back to the configured
// resource and then to defaultResource. It panics when the configured
// domain or username does not survive address validation.
func (c *Conn) mustUserJID(resource string) jid.JID {
	if resource == "" {
		resource = c.cfg.Resource
	}
	if resource == "" {
		resource = defaultResource
	}
	j, err := c.cfg.UserJID(resource)
	if err != nil {
		panic(fmt.Errorf("conntest: cannot build user address: %w", err))
	}
	return j
}

// newStreamID generates an opaque session identifier seeded from the
// current wall-clock time.
func newStreamID() string {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	return fmt.Sprintf("sim-%d", r.Int31())
}

// ID returns the unique identifier of this connection instance, used to
// correlate transcript events.
func (c *Conn) ID() string { return c.id }

// SetEventLogger directs protocol events (state changes, sent and injected
// elements, feature announcements) to l. Passing nil disables capture.
func (c *Conn) SetEventLogger(l log.Logger) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if l == nil {
		l = log.NoopLogger{}
	}
	c.events = l
}

// Connect establishes the simulated stream. It always succeeds: the
// transport-security and authentication gates are reported satisfied
// immediately and a fresh stream ID is generated. If the connection was
// previously shut down, reconnection listeners fire once.
func (c *Conn) Connect(_ context.Context) error {
	c.mu.Lock()
	old := c.lockedState()
	c.connected = true
	c.streamID = newStreamID()
	wasReconnect := c.reconnect
	streamID := c.streamID
	fns := append([]func(){}, c.reconnectedFns...)
	c.mu.Unlock()

	c.tlsHandled.Report()
	c.authFinished.Report()

	c.diag.WithField("stream_id", streamID).Debug("connected")
	c.stateEvent(old, StateConnected, "connect")

	if wasReconnect {
		for _, fn := range fns {
			fn()
		}
	}
	return nil
}

// Login marks the connection authenticated and (re)builds the user
// address from the configured account. The username and password are not
// checked - the simulator has no credential store. The resource defaults
// to the configured one, then to "Test". Login panics when the configured
// domain or username produces an invalid address; it never returns a
// non-nil error.
func (c *Conn) Login(_ context.Context, _, _, resource string) error {
	c.mu.Lock()
	old := c.lockedState()
	c.user = c.mustUserJID(resource)
	c.authenticated = true
	user := c.user
	c.mu.Unlock()

	c.diag.WithField("user", user.String()).Debug("logged in")
	c.stateEvent(old, StateAuthenticated, "login")
	return nil
}

// Disconnect shuts the simulated stream down: the user address is cleared,
// the connection drops back to the disconnected state, and every closed
// listener fires. The capture queue is kept, so a test can still drain
// traffic sent before the shutdown. A later Connect is treated as a
// reconnection.
func (c *Conn) Disconnect() error {
	c.mu.Lock()
	old := c.lockedState()
	c.user = jid.JID{}
	c.authenticated = false
	c.connected = false
	c.reconnect = true
	fns := append([]func(){}, c.closedFns...)
	c.mu.Unlock()

	c.diag.Debug("disconnected")
	c.stateEvent(old, StateDisconnected, "disconnect")

	for _, fn := range fns {
		fn()
	}
	return nil
}

// lockedState computes the lifecycle state. Callers hold c.mu.
func (c *Conn) lockedState() State {
	switch {
	case c.authenticated:
		return StateAuthenticated
	case c.connected:
		return StateConnected
	default:
		return StateDisconnected
	}
}

// State returns the current lifecycle state.
func (c *Conn) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lockedState()
}

// User returns the account address, the zero JID after a shutdown.
func (c *Conn) User() jid.JID {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user
}

// StreamID returns the opaque session identifier of the current stream.
func (c *Conn) StreamID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.streamID
}

// IsConnected reports whether Connect has established the stream.
func (c *Conn) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// IsAuthenticated reports whether Login completed on this stream.
func (c *Conn) IsAuthenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.authenticated
}

// IsSecure always reports false; the simulator never encrypts.
func (c *Conn) IsSecure() bool { return false }

// IsUsingCompression always reports false; the simulator never compresses.
func (c *Conn) IsUsingCompression() bool { return false }

// TLSHandled returns the gate a real connection satisfies once transport
// security negotiation is over. Connect reports it immediately.
func (c *Conn) TLSHandled() *connection.Signal { return c.tlsHandled }

// AuthFinished returns the gate a real connection satisfies once the
// authentication mechanisms are negotiated. Connect reports it
// immediately.
func (c *Conn) AuthFinished() *connection.Signal { return c.authFinished }

// OnClosed registers fn to run whenever the connection is shut down.
func (c *Conn) OnClosed(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closedFns = append(c.closedFns, fn)
}

// OnReconnected registers fn to run whenever a Connect following a
// shutdown succeeds.
func (c *Conn) OnReconnected(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reconnectedFns = append(c.reconnectedFns, fn)
}

// Send captures st in the outbound queue. It always succeeds and never
// blocks.
func (c *Conn) Send(st stanza.Stanza) error {
	c.sent.push(st)
	c.diag.WithField("element", st.ElementName()).Debug("captured outbound stanza")
	c.elementEvent(log.DirectionOut, st)
	return nil
}

// SendNonza captures n in the outbound queue. Nonzas and stanzas share one
// FIFO ordering domain, so relative send order across both kinds can be
// asserted.
func (c *Conn) SendNonza(n stanza.Nonza) error {
	c.sent.push(n)
	c.diag.WithField("element", n.ElementName()).Debug("captured outbound nonza")
	c.elementEvent(log.DirectionOut, n)
	return nil
}

// NextSent removes and returns the oldest captured element, waiting up to
// DefaultWait if the queue is currently empty. The second return value is
// false if the wait elapsed with nothing sent.
func (c *Conn) NextSent() (stanza.Element, bool) {
	return c.NextSentTimeout(DefaultWait)
}

// NextSentTimeout removes and returns the oldest captured element, waiting
// up to the given timeout. A timeout of zero or less checks only the
// current queue contents without waiting.
func (c *Conn) NextSentTimeout(timeout time.Duration) (stanza.Element, bool) {
	return c.sent.take(timeout)
}

// SentCount returns the number of captured elements not yet drained. The
// value is advisory while sends or drains are in flight.
func (c *Conn) SentCount() int {
	return c.sent.len()
}

// Inject delivers st as if it had arrived from the server: every
// registered collector examines it first, then every receive listener
// accepting it runs, all synchronously before Inject returns. Injected
// stanzas never touch the outbound queue. A panic in a listener
// propagates to the caller.
func (c *Conn) Inject(st stanza.Stanza) {
	c.diag.WithField("element", st.ElementName()).Debug("injecting inbound stanza")
	c.elementEvent(log.DirectionIn, st)
	c.disp.Dispatch(st)
}

// NewCollector registers a collector fed every injected stanza its filter
// accepts.
func (c *Conn) NewCollector(f stanza.Filter) *connection.Collector {
	return c.disp.NewCollector(f)
}

// AddReceiveListener registers fn for injected stanzas accepted by f.
func (c *Conn) AddReceiveListener(f stanza.Filter, fn connection.Listener) uint64 {
	return c.disp.AddReceiveListener(f, fn)
}

// RemoveReceiveListener removes a previously added listener.
func (c *Conn) RemoveReceiveListener(id uint64) {
	c.disp.RemoveReceiveListener(id)
}

// EnableStreamFeature announces f as a server stream feature, so client
// logic that branches on feature availability can be exercised without a
// negotiation handshake.
func (c *Conn) EnableStreamFeature(f stanza.ExtensionElement) {
	c.features.Add(f)
	c.featureEvent(f)
}

// HasFeature reports whether the feature qualified by the given namespace
// and local name was announced.
func (c *Conn) HasFeature(space, local string) bool {
	return c.features.Has(space, local)
}

// Feature returns the announced feature element, if any.
func (c *Conn) Feature(space, local string) (stanza.ExtensionElement, bool) {
	return c.features.Get(space, local)
}

func (c *Conn) baseEvent(category log.Category) log.Event {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return log.Event{
		Timestamp:    time.Now(),
		ConnectionID: c.id,
		Category:     category,
		StreamID:     c.streamID,
		User:         c.user.String(),
	}
}

func (c *Conn) stateEvent(old, now State, reason string) {
	event := c.baseEvent(log.CategoryState)
	event.StateChange = &log.StateChangeEvent{
		OldState: old.String(),
		NewState: now.String(),
		Reason:   reason,
	}
	c.events.Log(event)
}

func (c *Conn) elementEvent(dir log.Direction, el stanza.Element) {
	event := c.baseEvent(log.CategoryElement)
	event.Direction = dir

	ee := &log.ElementEvent{Name: el.ElementName()}
	if st, ok := el.(stanza.Stanza); ok {
		ee.Stanza = true
		ee.ID = st.ID()
		ee.To = st.To().String()
		ee.From = st.From().String()
	}
	event.Element = ee
	c.events.Log(event)
}

func (c *Conn) featureEvent(f stanza.ExtensionElement) {
	event := c.baseEvent(log.CategoryFeature)
	event.Feature = &log.FeatureEvent{
		Space: f.Namespace(),
		Local: f.ElementName(),
	}
	c.events.Log(event)
}

// NextSentAs drains the next captured element and asserts its concrete
// type. It is the caller's responsibility to know what the client under
// test sent; a type mismatch returns false with the element consumed.
func NextSentAs[T stanza.Element](c *Conn, timeout time.Duration) (T, bool) {
	var zero T
	el, ok := c.NextSentTimeout(timeout)
	if !ok {
		return zero, false
	}
	v, ok := el.(T)
	if !ok {
		return zero, false
	}
	return v, true
}
