package stanza

// Stream-level namespaces.
const (
	// NSStreams qualifies stream-scoped error elements.
	NSStreams = "http://etherx.jabber.org/streams"

	// NSStreamManagement qualifies stream-management control elements.
	NSStreamManagement = "urn:xmpp:sm:3"
)

// SMRequest asks the peer to acknowledge received stanzas. It is the
// canonical example of a nonza: top-level, unaddressed, stream-scoped.
type SMRequest struct{}

// ElementName returns "r".
func (SMRequest) ElementName() string { return "r" }

// Namespace returns the stream-management namespace.
func (SMRequest) Namespace() string { return NSStreamManagement }

// StreamError reports a stream-level error condition.
type StreamError struct {
	// Condition is the defined error condition, e.g. "conflict".
	Condition string

	// Text is an optional human-readable description.
	Text string
}

// ElementName returns "error".
func (*StreamError) ElementName() string { return "error" }

// Namespace returns the streams namespace.
func (*StreamError) Namespace() string { return NSStreams }

// Feature is a generic namespace-qualified element. It serves both as a
// stream-feature announcement and as a minimal stanza payload.
type Feature struct {
	// Local is the local element name.
	Local string

	// Space is the qualifying namespace.
	Space string
}

// ElementName returns the local name.
func (f Feature) ElementName() string { return f.Local }

// Namespace returns the qualifying namespace.
func (f Feature) Namespace() string { return f.Space }

// Compile-time interface satisfaction checks.
var (
	_ Nonza            = SMRequest{}
	_ Nonza            = (*StreamError)(nil)
	_ ExtensionElement = Feature{}
)
