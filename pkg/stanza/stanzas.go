package stanza

import (
	"fmt"

	"github.com/google/uuid"
	"mellium.im/xmpp/jid"
)

// NewID generates a unique stanza identifier.
func NewID() string {
	return uuid.NewString()
}

// Header holds the addressing attributes shared by all stanza kinds.
// Embed it in concrete stanza types; the accessor methods satisfy the
// addressing half of the Stanza interface.
type Header struct {
	// StanzaID is the unique identifier of this stanza.
	StanzaID string

	// ToAddr is the destination address.
	ToAddr jid.JID

	// FromAddr is the origin address.
	FromAddr jid.JID
}

// ID returns the stanza identifier.
func (h *Header) ID() string { return h.StanzaID }

// To returns the destination address.
func (h *Header) To() jid.JID { return h.ToAddr }

// From returns the origin address.
func (h *Header) From() jid.JID { return h.FromAddr }

// MessageType classifies a message stanza.
type MessageType string

const (
	// MessageNormal is a standalone message.
	MessageNormal MessageType = "normal"

	// MessageChat is part of a one-to-one conversation.
	MessageChat MessageType = "chat"

	// MessageGroupchat is sent within a multi-user room.
	MessageGroupchat MessageType = "groupchat"

	// MessageHeadline is a broadcast that expects no reply.
	MessageHeadline MessageType = "headline"

	// MessageError reports a delivery error for an earlier message.
	MessageError MessageType = "error"
)

// Message is a fire-and-forget stanza carrying chat text or payloads.
type Message struct {
	Header

	// Type classifies the message; defaults to MessageNormal.
	Type MessageType

	// Subject is the optional message subject.
	Subject string

	// Body is the human-readable message text.
	Body string

	// Extensions holds namespace-qualified payload elements.
	Extensions []ExtensionElement
}

// NewMessage creates a chat message addressed to the given JID with a
// fresh stanza ID.
func NewMessage(to jid.JID, body string) *Message {
	return &Message{
		Header: Header{StanzaID: NewID(), ToAddr: to},
		Type:   MessageChat,
		Body:   body,
	}
}

// ElementName returns "message".
func (*Message) ElementName() string { return "message" }

// String returns a short description for logs.
func (m *Message) String() string {
	return fmt.Sprintf("message[id=%s,to=%s,type=%s]", m.StanzaID, m.ToAddr, m.Type)
}

// PresenceType classifies a presence stanza. The empty value means
// "available".
type PresenceType string

const (
	// PresenceAvailable signals the sender is online.
	PresenceAvailable PresenceType = ""

	// PresenceUnavailable signals the sender went offline.
	PresenceUnavailable PresenceType = "unavailable"

	// PresenceSubscribe requests a presence subscription.
	PresenceSubscribe PresenceType = "subscribe"

	// PresenceSubscribed grants a presence subscription.
	PresenceSubscribed PresenceType = "subscribed"

	// PresenceUnsubscribe cancels a presence subscription.
	PresenceUnsubscribe PresenceType = "unsubscribe"
)

// Presence broadcasts availability on the network.
type Presence struct {
	Header

	// Type classifies the presence; empty means available.
	Type PresenceType

	// Status is a free-form availability text.
	Status string

	// Priority orders competing resources of the same account.
	Priority int8
}

// NewPresence creates a presence stanza of the given type with a fresh
// stanza ID.
func NewPresence(typ PresenceType) *Presence {
	return &Presence{
		Header: Header{StanzaID: NewID()},
		Type:   typ,
	}
}

// ElementName returns "presence".
func (*Presence) ElementName() string { return "presence" }

// String returns a short description for logs.
func (p *Presence) String() string {
	typ := string(p.Type)
	if typ == "" {
		typ = "available"
	}
	return fmt.Sprintf("presence[id=%s,type=%s]", p.StanzaID, typ)
}

// IQType classifies an info/query stanza.
type IQType string

const (
	// IQGet requests information.
	IQGet IQType = "get"

	// IQSet requests a state change.
	IQSet IQType = "set"

	// IQResult answers a get or set.
	IQResult IQType = "result"

	// IQError reports a failure answering a get or set.
	IQError IQType = "error"
)

// IQ is a request/response stanza. Every get or set must be answered with
// a result or error carrying the same stanza ID.
type IQ struct {
	Header

	// Type classifies the query.
	Type IQType

	// Payload is the namespace-qualified child element of the query.
	Payload ExtensionElement
}

// NewIQ creates a query of the given type with a fresh stanza ID.
func NewIQ(typ IQType, payload ExtensionElement) *IQ {
	return &IQ{
		Header:  Header{StanzaID: NewID()},
		Type:    typ,
		Payload: payload,
	}
}

// Result builds the result answering this IQ, swapping the addressing and
// reusing the stanza ID.
func (iq *IQ) Result(payload ExtensionElement) *IQ {
	return &IQ{
		Header:  Header{StanzaID: iq.StanzaID, ToAddr: iq.FromAddr, FromAddr: iq.ToAddr},
		Type:    IQResult,
		Payload: payload,
	}
}

// ElementName returns "iq".
func (*IQ) ElementName() string { return "iq" }

// String returns a short description for logs.
func (iq *IQ) String() string {
	return fmt.Sprintf("iq[id=%s,type=%s]", iq.StanzaID, iq.Type)
}

// Compile-time interface satisfaction checks.
var (
	_ Stanza = (*Message)(nil)
	_ Stanza = (*Presence)(nil)
	_ Stanza = (*IQ)(nil)
)
