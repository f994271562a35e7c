// Package scenario loads and runs scripted sessions against a simulated
// connection.
//
// A scenario is a YAML file describing a sequence of steps - lifecycle
// calls, traffic the client under test would send, stanzas injected as
// received traffic, and expectations on the capture queue. Scenarios keep
// repetitive harness setup out of Go code and make session fixtures
// reviewable as data.
//
//	id: basic-session
//	description: Round-trip one chat message.
//	steps:
//	  - action: connect
//	  - action: login
//	  - action: send-message
//	    to: juliet@example.org
//	    body: hello
//	  - action: expect-sent
//	    element: message
//	  - action: disconnect
package scenario
