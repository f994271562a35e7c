package stanza

import (
	"testing"

	"mellium.im/xmpp/jid"
)

func TestFilterByID(t *testing.T) {
	m := NewMessage(jid.MustParse("juliet@example.org"), "hi")

	if !ByID(m.ID()).Accept(m) {
		t.Error("ByID rejected matching stanza")
	}
	if ByID("other").Accept(m) {
		t.Error("ByID accepted non-matching stanza")
	}
}

func TestFilterForName(t *testing.T) {
	m := NewMessage(jid.MustParse("juliet@example.org"), "hi")
	p := NewPresence(PresenceAvailable)

	f := ForName("message")
	if !f.Accept(m) {
		t.Error("ForName(\"message\") rejected a message")
	}
	if f.Accept(p) {
		t.Error("ForName(\"message\") accepted a presence")
	}
}

func TestFilterFromAddress(t *testing.T) {
	from := jid.MustParse("romeo@example.org/orchard")
	m := NewMessage(jid.MustParse("juliet@example.org"), "hi")
	m.FromAddr = from

	if !FromAddress(from).Accept(m) {
		t.Error("FromAddress rejected matching origin")
	}
	if FromAddress(jid.MustParse("tybalt@example.org")).Accept(m) {
		t.Error("FromAddress accepted non-matching origin")
	}
}

func TestFilterCombinators(t *testing.T) {
	m := NewMessage(jid.MustParse("juliet@example.org"), "hi")

	if !And(All(), ForName("message"), ByID(m.ID())).Accept(m) {
		t.Error("And rejected stanza matching all parts")
	}
	if And(ForName("message"), ByID("nope")).Accept(m) {
		t.Error("And accepted stanza failing one part")
	}
	if Not(All()).Accept(m) {
		t.Error("Not(All) accepted a stanza")
	}
}
