package log

import "time"

// Event represents one protocol event captured on a connection.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// ConnectionID uniquely identifies the connection (UUID).
	ConnectionID string `cbor:"2,keyasint"`

	// Direction indicates element flow for element events.
	Direction Direction `cbor:"3,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// StreamID is the session identifier of the current stream, if any.
	StreamID string `cbor:"5,keyasint,omitempty"`

	// User is the authenticated account address, if any.
	User string `cbor:"6,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Element     *ElementEvent     `cbor:"7,keyasint,omitempty"`
	StateChange *StateChangeEvent `cbor:"8,keyasint,omitempty"`
	Feature     *FeatureEvent     `cbor:"9,keyasint,omitempty"`
}

// Direction indicates the direction of element flow.
type Direction uint8

const (
	// DirectionIn indicates an element delivered to the client.
	DirectionIn Direction = 0
	// DirectionOut indicates an element sent by the client.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryState marks a lifecycle state change.
	CategoryState Category = 0
	// CategoryElement marks a top-level element sent or received.
	CategoryElement Category = 1
	// CategoryFeature marks a stream-feature announcement.
	CategoryFeature Category = 2
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryState:
		return "STATE"
	case CategoryElement:
		return "ELEMENT"
	case CategoryFeature:
		return "FEATURE"
	default:
		return "UNKNOWN"
	}
}

// ElementEvent describes a top-level stream element crossing the
// connection boundary.
type ElementEvent struct {
	// Name is the local element name ("message", "presence", ...).
	Name string `cbor:"1,keyasint"`

	// Stanza is true for addressed stanzas, false for nonzas.
	Stanza bool `cbor:"2,keyasint,omitempty"`

	// ID is the stanza identifier, if any.
	ID string `cbor:"3,keyasint,omitempty"`

	// To is the destination address, if any.
	To string `cbor:"4,keyasint,omitempty"`

	// From is the origin address, if any.
	From string `cbor:"5,keyasint,omitempty"`
}

// StateChangeEvent describes a connection lifecycle transition.
type StateChangeEvent struct {
	// OldState is the state before the transition.
	OldState string `cbor:"1,keyasint"`

	// NewState is the state after the transition.
	NewState string `cbor:"2,keyasint"`

	// Reason describes what drove the transition, if known.
	Reason string `cbor:"3,keyasint,omitempty"`
}

// FeatureEvent describes a stream-feature announcement.
type FeatureEvent struct {
	// Space is the qualifying namespace.
	Space string `cbor:"1,keyasint"`

	// Local is the local element name.
	Local string `cbor:"2,keyasint"`
}
