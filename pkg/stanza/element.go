package stanza

import "mellium.im/xmpp/jid"

// Element is a top-level stream element: anything a client can write to or
// read from the stream, addressed or not.
type Element interface {
	// ElementName returns the local name of the element, e.g. "message".
	ElementName() string
}

// Stanza is an addressed top-level element (message, presence, iq).
type Stanza interface {
	Element

	// ID returns the stanza identifier, empty if none was assigned.
	ID() string

	// To returns the destination address. The zero JID means unaddressed.
	To() jid.JID

	// From returns the origin address. The zero JID means unaddressed.
	From() jid.JID
}

// Nonza is a top-level stream element that is not a stanza, such as
// stream-management control elements. Nonzas are qualified by a namespace
// instead of carrying addressing.
type Nonza interface {
	Element

	// Namespace returns the namespace qualifying the element.
	Namespace() string
}

// ExtensionElement is a namespace-qualified element carried as a stanza
// payload or announced by the server as a stream feature.
type ExtensionElement interface {
	Element

	// Namespace returns the namespace qualifying the element.
	Namespace() string
}
