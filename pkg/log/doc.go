// Package log provides structured protocol-event capture for chirp
// connections.
//
// It defines the Logger interface and the Event type recording what a
// connection did: lifecycle transitions, elements sent by the client,
// stanzas injected as received traffic, and feature announcements. Protocol
// capture is separate from operational logging - it yields a complete
// machine-readable transcript of a session that tools and tests can replay
// or assert on.
//
// # Basic Usage
//
//	// For development: mirror events to the console via slog
//	conn.SetEventLogger(log.NewSlogAdapter(slog.Default()))
//
//	// For analysis: write a binary transcript
//	l, _ := log.NewFileLogger("session.clog")
//	conn.SetEventLogger(l)
//
//	// Both at once
//	conn.SetEventLogger(log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    l,
//	))
//
// # File Format
//
// Transcript files are a CBOR stream of Event values with integer keys,
// conventionally with a .clog extension. The chirp-log tool views and
// summarizes them.
package log
