package scenario

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"mellium.im/xmpp/jid"

	"github.com/chirp-protocol/chirp-go/pkg/conntest"
	"github.com/chirp-protocol/chirp-go/pkg/stanza"
)

// StepResult records the outcome of one executed step.
type StepResult struct {
	// Index is the 0-based position of the step.
	Index int

	// Action is the step action that ran.
	Action string

	// Passed indicates whether the step succeeded.
	Passed bool

	// Err is the failure, if any.
	Err error
}

// Result records the outcome of a scenario run.
type Result struct {
	// Scenario is the scenario that ran.
	Scenario *Scenario

	// Passed indicates whether every executed step succeeded.
	Passed bool

	// Steps holds per-step outcomes; execution stops at the first
	// failure, so len(Steps) may be shorter than the script.
	Steps []StepResult

	// Duration is the total run time.
	Duration time.Duration
}

// Runner executes scenarios against a simulated connection.
type Runner struct {
	conn *conntest.Conn
	diag *logrus.Entry
}

// NewRunner creates a runner driving the given connection. A nil
// connection makes Run build a fresh one from the scenario's account.
func NewRunner(conn *conntest.Conn) *Runner {
	return &Runner{
		conn: conn,
		diag: logrus.WithField("component", "scenario"),
	}
}

// Conn returns the connection the last Run drove, for post-run
// inspection.
func (r *Runner) Conn() *conntest.Conn {
	return r.conn
}

// Run executes the scenario step by step, stopping at the first failing
// step.
func (r *Runner) Run(ctx context.Context, sc *Scenario) *Result {
	start := time.Now()
	result := &Result{Scenario: sc, Passed: true}

	if r.conn == nil {
		r.conn = conntest.New(sc.Config())
	}

	r.diag.WithField("scenario", sc.ID).Debug("running scenario")

	for i, step := range sc.Steps {
		err := r.runStep(ctx, sc, &step)
		result.Steps = append(result.Steps, StepResult{
			Index:  i,
			Action: step.Action,
			Passed: err == nil,
			Err:    err,
		})
		if err != nil {
			r.diag.WithFields(logrus.Fields{
				"scenario": sc.ID,
				"step":     i,
				"action":   step.Action,
			}).WithError(err).Debug("step failed")
			result.Passed = false
			break
		}
	}

	result.Duration = time.Since(start)
	return result
}

func (r *Runner) runStep(ctx context.Context, sc *Scenario, step *Step) error {
	switch step.Action {
	case ActionConnect:
		return r.conn.Connect(ctx)

	case ActionLogin:
		return r.conn.Login(ctx, sc.Account.Username, sc.Account.Password, step.Resource)

	case ActionDisconnect:
		return r.conn.Disconnect()

	case ActionSendMessage:
		to, err := jid.Parse(step.To)
		if err != nil {
			return fmt.Errorf("send-message: invalid to address: %w", err)
		}
		return r.conn.Send(stanza.NewMessage(to, step.Body))

	case ActionInjectMessage:
		m := stanza.NewMessage(r.conn.User(), step.Body)
		if step.From != "" {
			from, err := jid.Parse(step.From)
			if err != nil {
				return fmt.Errorf("inject-message: invalid from address: %w", err)
			}
			m.FromAddr = from
		}
		r.conn.Inject(m)
		return nil

	case ActionInjectPresence:
		p := stanza.NewPresence(stanza.PresenceAvailable)
		if step.From != "" {
			from, err := jid.Parse(step.From)
			if err != nil {
				return fmt.Errorf("inject-presence: invalid from address: %w", err)
			}
			p.FromAddr = from
		}
		r.conn.Inject(p)
		return nil

	case ActionExpectSent:
		wait, err := step.waitDuration()
		if err != nil {
			return err
		}
		el, ok := r.conn.NextSentTimeout(wait)
		if !ok {
			return fmt.Errorf("expect-sent: nothing captured within %v", wait)
		}
		if step.Element != "" && el.ElementName() != step.Element {
			return fmt.Errorf("expect-sent: captured %q, want %q", el.ElementName(), step.Element)
		}
		return nil

	case ActionExpectDepth:
		if step.Depth == nil {
			return fmt.Errorf("expect-depth: depth is required")
		}
		if got := r.conn.SentCount(); got != *step.Depth {
			return fmt.Errorf("expect-depth: queue depth %d, want %d", got, *step.Depth)
		}
		return nil

	case ActionEnableFeature:
		if step.Namespace == "" || step.Name == "" {
			return fmt.Errorf("enable-feature: namespace and name are required")
		}
		r.conn.EnableStreamFeature(stanza.Feature{Local: step.Name, Space: step.Namespace})
		return nil

	default:
		// Unreachable for loaded scenarios; Parse rejects unknown actions.
		return fmt.Errorf("unknown action %q", step.Action)
	}
}
