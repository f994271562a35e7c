// Package conntest provides a deterministic in-process implementation of
// connection.Connection, intended to be used during unit tests.
//
// A Conn performs no network I/O. Connect always succeeds and immediately
// satisfies the transport-security and authentication gates a real
// connection would negotiate, so client code waiting on either proceeds
// without a handshake. Every element handed to Send or SendNonza is stored
// in a FIFO capture queue that the test inspects with NextSent; typically
// the queue is used to retrieve a stanza that was generated by the client
// under test. Stanzas that should be processed by the client to simulate
// received traffic are delivered with Inject, which runs the registered
// stanza collectors and receive listeners synchronously.
//
//	conn := conntest.NewConnected(connection.Config{
//	    Domain:   "example.org",
//	    Username: "alice",
//	    Password: "secret",
//	})
//
//	driveClientUnderTest(conn)
//
//	sent, ok := conn.NextSentTimeout(time.Second)
//	if !ok {
//	    t.Fatal("client sent nothing")
//	}
package conntest
