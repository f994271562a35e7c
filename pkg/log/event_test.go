package log

import (
	"testing"
	"time"
)

func TestEncodeDecodeEvent(t *testing.T) {
	event := Event{
		Timestamp:    time.Now().UTC(),
		ConnectionID: "b6d8f7a0-0001-4000-8000-000000000001",
		Direction:    DirectionOut,
		Category:     CategoryElement,
		StreamID:     "sim-12345",
		User:         "alice@example.org/Test",
		Element: &ElementEvent{
			Name:   "message",
			Stanza: true,
			ID:     "m1",
			To:     "juliet@example.org",
		},
	}

	data, err := EncodeEvent(event)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}

	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}

	if decoded.ConnectionID != event.ConnectionID {
		t.Errorf("ConnectionID = %q, want %q", decoded.ConnectionID, event.ConnectionID)
	}
	if decoded.Direction != DirectionOut {
		t.Errorf("Direction = %v, want %v", decoded.Direction, DirectionOut)
	}
	if decoded.Category != CategoryElement {
		t.Errorf("Category = %v, want %v", decoded.Category, CategoryElement)
	}
	if decoded.Element == nil || decoded.Element.Name != "message" {
		t.Errorf("Element = %+v, want message element", decoded.Element)
	}
	if !decoded.Timestamp.Equal(event.Timestamp) {
		t.Errorf("Timestamp = %v, want %v", decoded.Timestamp, event.Timestamp)
	}
}

func TestStateChangeEventRoundTrip(t *testing.T) {
	event := Event{
		Timestamp:    time.Now().UTC(),
		ConnectionID: "conn-1",
		Category:     CategoryState,
		StateChange: &StateChangeEvent{
			OldState: "DISCONNECTED",
			NewState: "CONNECTED",
			Reason:   "connect",
		},
	}

	data, err := EncodeEvent(event)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}
	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}

	if decoded.StateChange == nil {
		t.Fatal("StateChange payload lost in round trip")
	}
	if decoded.StateChange.NewState != "CONNECTED" || decoded.StateChange.Reason != "connect" {
		t.Errorf("StateChange = %+v", decoded.StateChange)
	}
}

func TestDirectionAndCategoryStrings(t *testing.T) {
	if DirectionIn.String() != "IN" || DirectionOut.String() != "OUT" {
		t.Error("unexpected Direction names")
	}
	if CategoryState.String() != "STATE" || CategoryElement.String() != "ELEMENT" || CategoryFeature.String() != "FEATURE" {
		t.Error("unexpected Category names")
	}
	if Direction(9).String() != "UNKNOWN" || Category(9).String() != "UNKNOWN" {
		t.Error("out-of-range values should stringify as UNKNOWN")
	}
}
