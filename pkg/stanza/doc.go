// Package stanza defines the top-level stream elements exchanged over a
// chirp connection.
//
// Stanzas (Message, Presence, and IQ) are the addressed primitives of the
// protocol. Messages carry fire-and-forget data such as chat text, Presence
// broadcasts availability, and IQ is a request/response mechanism for data
// that requires an answer. Everything else written at the top level of the
// stream is a Nonza: stream-scoped control elements that carry no
// addressing.
//
// The package also provides the Filter vocabulary used by stanza collectors
// and receive listeners to select which incoming stanzas they care about.
package stanza
