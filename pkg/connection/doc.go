// Package connection defines the client-side connection abstraction for
// chirp: the Connection capability set, the account Config, and the
// machinery a connection implementation composes — stanza collectors and
// receive listeners (Dispatcher), announced stream features (FeatureSet),
// one-shot negotiation gates (Signal), and the process-wide registry of
// connection-creation listeners.
//
// The package contains no transport. Concrete implementations supply the
// I/O; pkg/conntest supplies a deterministic in-process implementation for
// tests.
package connection
