package stanza

import "mellium.im/xmpp/jid"

// Filter decides whether an incoming stanza is of interest to a collector
// or receive listener.
type Filter interface {
	// Accept returns true if the stanza matches.
	Accept(st Stanza) bool
}

// FilterFunc adapts a function to the Filter interface.
type FilterFunc func(st Stanza) bool

// Accept calls f.
func (f FilterFunc) Accept(st Stanza) bool { return f(st) }

// All matches every stanza.
func All() Filter {
	return FilterFunc(func(Stanza) bool { return true })
}

// ByID matches stanzas whose ID equals id.
func ByID(id string) Filter {
	return FilterFunc(func(st Stanza) bool { return st.ID() == id })
}

// ForName matches stanzas with the given element name ("message",
// "presence", "iq").
func ForName(name string) Filter {
	return FilterFunc(func(st Stanza) bool { return st.ElementName() == name })
}

// FromAddress matches stanzas originating from the given address.
func FromAddress(j jid.JID) Filter {
	return FilterFunc(func(st Stanza) bool { return st.From().Equal(j) })
}

// And matches stanzas accepted by every given filter.
func And(filters ...Filter) Filter {
	return FilterFunc(func(st Stanza) bool {
		for _, f := range filters {
			if !f.Accept(st) {
				return false
			}
		}
		return true
	})
}

// Not inverts a filter.
func Not(f Filter) Filter {
	return FilterFunc(func(st Stanza) bool { return !f.Accept(st) })
}
