package stanza

import (
	"testing"

	"mellium.im/xmpp/jid"
)

func TestNewMessageDefaults(t *testing.T) {
	to := jid.MustParse("juliet@example.org")
	m := NewMessage(to, "hello")

	if m.ID() == "" {
		t.Error("NewMessage did not assign a stanza ID")
	}
	if !m.To().Equal(to) {
		t.Errorf("To() = %v, want %v", m.To(), to)
	}
	if m.Type != MessageChat {
		t.Errorf("Type = %q, want %q", m.Type, MessageChat)
	}
	if m.ElementName() != "message" {
		t.Errorf("ElementName() = %q, want \"message\"", m.ElementName())
	}
}

func TestNewMessageUniqueIDs(t *testing.T) {
	to := jid.MustParse("juliet@example.org")
	a := NewMessage(to, "one")
	b := NewMessage(to, "two")

	if a.ID() == b.ID() {
		t.Errorf("two messages share stanza ID %q", a.ID())
	}
}

func TestPresenceString(t *testing.T) {
	p := NewPresence(PresenceAvailable)
	if p.ElementName() != "presence" {
		t.Errorf("ElementName() = %q, want \"presence\"", p.ElementName())
	}
	if got := p.String(); got == "" {
		t.Error("String() returned empty description")
	}
}

func TestIQResultSwapsAddressing(t *testing.T) {
	from := jid.MustParse("romeo@example.org/home")
	to := jid.MustParse("example.org")

	req := NewIQ(IQGet, Feature{Local: "query", Space: "jabber:iq:roster"})
	req.FromAddr = from
	req.ToAddr = to

	res := req.Result(nil)

	if res.ID() != req.ID() {
		t.Errorf("result ID = %q, want request ID %q", res.ID(), req.ID())
	}
	if !res.To().Equal(from) {
		t.Errorf("result To = %v, want %v", res.To(), from)
	}
	if !res.From().Equal(to) {
		t.Errorf("result From = %v, want %v", res.From(), to)
	}
	if res.Type != IQResult {
		t.Errorf("result Type = %q, want %q", res.Type, IQResult)
	}
}

func TestNonzaNamespaces(t *testing.T) {
	var r SMRequest
	if r.Namespace() != NSStreamManagement {
		t.Errorf("SMRequest namespace = %q, want %q", r.Namespace(), NSStreamManagement)
	}

	se := &StreamError{Condition: "conflict"}
	if se.ElementName() != "error" || se.Namespace() != NSStreams {
		t.Errorf("StreamError = %q/%q, want error/%q", se.ElementName(), se.Namespace(), NSStreams)
	}
}
