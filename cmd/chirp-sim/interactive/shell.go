// Package interactive provides the interactive command-line interface
// for the chirp session simulator.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"mellium.im/xmpp/jid"

	"github.com/chirp-protocol/chirp-go/pkg/conntest"
	"github.com/chirp-protocol/chirp-go/pkg/scenario"
	"github.com/chirp-protocol/chirp-go/pkg/stanza"
)

// Shell handles interactive mode for chirp-sim.
type Shell struct {
	conn *conntest.Conn
	rl   *readline.Instance
}

// New creates a new interactive shell driving the given connection.
func New(conn *conntest.Conn) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "sim> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	s := &Shell{
		conn: conn,
		rl:   rl,
	}

	// Echo injected traffic so incoming stanzas are visible at the prompt.
	conn.AddReceiveListener(nil, func(st stanza.Stanza) {
		fmt.Fprintf(rl.Stdout(), "<< %s\n", st)
	})

	return s, nil
}

// Stdout returns a writer that properly coordinates with the readline
// input. Use this for log output to avoid interfering with the prompt.
func (s *Shell) Stdout() io.Writer {
	return s.rl.Stdout()
}

// Run starts the interactive command loop.
func (s *Shell) Run(ctx context.Context, cancel context.CancelFunc) {
	defer s.rl.Close()

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			cancel()
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			s.printHelp()

		case "status":
			s.cmdStatus()

		case "connect", "c":
			s.cmdConnect(ctx)

		case "login", "l":
			s.cmdLogin(ctx, args)

		case "disconnect", "d":
			s.cmdDisconnect()

		case "send", "s":
			s.cmdSend(args)

		case "inject", "i":
			s.cmdInject(args)

		case "presence", "p":
			s.cmdPresence(args)

		case "drain":
			s.cmdDrain(args)

		case "depth":
			fmt.Fprintf(s.rl.Stdout(), "%d element(s) captured\n", s.conn.SentCount())

		case "feature", "f":
			s.cmdFeature(args)

		case "script":
			s.cmdScript(ctx, args)

		case "quit", "exit", "q":
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			cancel()
			return

		default:
			fmt.Fprintf(s.rl.Stdout(), "Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.rl.Stdout(), `
Chirp Simulator Commands:
  Session:
    connect              - Open the simulated stream
    login [resource]     - Authenticate and bind a resource
    disconnect           - Shut the stream down
    status               - Show connection status

  Traffic:
    send <to> <body...>  - Send a chat message (captured, not delivered)
    inject <from> <body...> - Inject an incoming chat message
    presence <from>      - Inject an incoming available presence
    drain [wait]         - Pop the next captured element (wait e.g. 2s)
    depth                - Show the capture queue depth

  Features:
    feature <ns> <name>  - Announce a stream feature

  Scripts:
    script <file>        - Run a YAML scenario against this session

  General:
    help                 - Show this help
    quit                 - Exit simulator`)
}

func (s *Shell) cmdStatus() {
	w := s.rl.Stdout()
	fmt.Fprintln(w, "\nSession Status")
	fmt.Fprintln(w, "-------------------------------------------")
	fmt.Fprintf(w, "  Connection ID:  %s\n", s.conn.ID())
	fmt.Fprintf(w, "  State:          %s\n", s.conn.State())
	if s.conn.IsConnected() {
		fmt.Fprintf(w, "  Stream ID:      %s\n", s.conn.StreamID())
	}
	if s.conn.IsAuthenticated() {
		fmt.Fprintf(w, "  User:           %s\n", s.conn.User())
	}
	fmt.Fprintf(w, "  Captured:       %d element(s)\n", s.conn.SentCount())
	fmt.Fprintln(w)
}

func (s *Shell) cmdConnect(ctx context.Context) {
	if s.conn.IsConnected() {
		fmt.Fprintln(s.rl.Stdout(), "Already connected")
		return
	}
	if err := s.conn.Connect(ctx); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Connect failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "Connected (stream %s)\n", s.conn.StreamID())
}

func (s *Shell) cmdLogin(ctx context.Context, args []string) {
	if !s.conn.IsConnected() {
		fmt.Fprintln(s.rl.Stdout(), "Not connected (use 'connect' first)")
		return
	}

	resource := ""
	if len(args) > 0 {
		resource = args[0]
	}

	if err := s.conn.Login(ctx, "", "", resource); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Login failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "Logged in as %s\n", s.conn.User())
}

func (s *Shell) cmdDisconnect() {
	if !s.conn.IsConnected() {
		fmt.Fprintln(s.rl.Stdout(), "Not connected")
		return
	}
	if err := s.conn.Disconnect(); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Disconnect failed: %v\n", err)
		return
	}
	fmt.Fprintln(s.rl.Stdout(), "Disconnected")
}

func (s *Shell) cmdSend(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: send <to> <body...>")
		return
	}

	to, err := jid.Parse(args[0])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid address: %v\n", err)
		return
	}

	m := stanza.NewMessage(to, strings.Join(args[1:], " "))
	if err := s.conn.Send(m); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Send failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), ">> %s\n", m)
}

func (s *Shell) cmdInject(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: inject <from> <body...>")
		return
	}

	from, err := jid.Parse(args[0])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid address: %v\n", err)
		return
	}

	m := stanza.NewMessage(s.conn.User(), strings.Join(args[1:], " "))
	m.FromAddr = from
	s.conn.Inject(m)
}

func (s *Shell) cmdPresence(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: presence <from>")
		return
	}

	from, err := jid.Parse(args[0])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid address: %v\n", err)
		return
	}

	p := stanza.NewPresence(stanza.PresenceAvailable)
	p.FromAddr = from
	s.conn.Inject(p)
}

func (s *Shell) cmdDrain(args []string) {
	var wait time.Duration
	if len(args) > 0 {
		d, err := time.ParseDuration(args[0])
		if err != nil {
			fmt.Fprintf(s.rl.Stdout(), "Invalid wait: %v\n", err)
			return
		}
		wait = d
	}

	el, ok := s.conn.NextSentTimeout(wait)
	if !ok {
		fmt.Fprintln(s.rl.Stdout(), "Nothing captured")
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "captured: %v\n", el)
}

func (s *Shell) cmdFeature(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: feature <namespace> <name>")
		return
	}

	s.conn.EnableStreamFeature(stanza.Feature{Space: args[0], Local: args[1]})
	fmt.Fprintf(s.rl.Stdout(), "Feature %s (%s) announced\n", args[1], args[0])
}

func (s *Shell) cmdScript(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: script <file>")
		return
	}

	sc, err := scenario.Load(args[0])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Failed to load scenario: %v\n", err)
		return
	}

	runner := scenario.NewRunner(s.conn)
	result := runner.Run(ctx, sc)

	for _, sr := range result.Steps {
		status := "ok"
		if !sr.Passed {
			status = fmt.Sprintf("FAILED: %v", sr.Err)
		}
		fmt.Fprintf(s.rl.Stdout(), "  step %d %-16s %s\n", sr.Index, sr.Action, status)
	}
	if result.Passed {
		fmt.Fprintf(s.rl.Stdout(), "Scenario %s passed in %s\n", sc.ID, result.Duration.Round(time.Millisecond))
	} else {
		fmt.Fprintf(s.rl.Stdout(), "Scenario %s FAILED\n", sc.ID)
	}
}
