package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/chirp-protocol/chirp-go/pkg/connection"
)

// Step actions.
const (
	ActionConnect        = "connect"
	ActionLogin          = "login"
	ActionDisconnect     = "disconnect"
	ActionSendMessage    = "send-message"
	ActionInjectMessage  = "inject-message"
	ActionInjectPresence = "inject-presence"
	ActionExpectSent     = "expect-sent"
	ActionExpectDepth    = "expect-depth"
	ActionEnableFeature  = "enable-feature"
)

var knownActions = map[string]bool{
	ActionConnect:        true,
	ActionLogin:          true,
	ActionDisconnect:     true,
	ActionSendMessage:    true,
	ActionInjectMessage:  true,
	ActionInjectPresence: true,
	ActionExpectSent:     true,
	ActionExpectDepth:    true,
	ActionEnableFeature:  true,
}

// Account names the identity a scenario signs in with. Zero fields fall
// back to the conntest defaults.
type Account struct {
	Domain   string `yaml:"domain,omitempty"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	Resource string `yaml:"resource,omitempty"`
}

// Step is one scripted action in a scenario.
type Step struct {
	// Action selects what this step does; one of the Action constants.
	Action string `yaml:"action"`

	// To addresses an outbound message (send-message).
	To string `yaml:"to,omitempty"`

	// From addresses injected traffic (inject-message, inject-presence).
	From string `yaml:"from,omitempty"`

	// Body is the message text (send-message, inject-message).
	Body string `yaml:"body,omitempty"`

	// Resource overrides the bound resource (login).
	Resource string `yaml:"resource,omitempty"`

	// Namespace and Name identify a stream feature (enable-feature).
	Namespace string `yaml:"namespace,omitempty"`
	Name      string `yaml:"name,omitempty"`

	// Element is the expected element name (expect-sent); empty accepts
	// any element.
	Element string `yaml:"element,omitempty"`

	// Depth is the expected capture-queue depth (expect-depth).
	Depth *int `yaml:"depth,omitempty"`

	// Wait bounds how long expect-sent waits, as a Go duration string
	// such as "500ms". Empty checks only the current queue contents.
	Wait string `yaml:"wait,omitempty"`
}

// waitDuration parses the step's wait bound.
func (s *Step) waitDuration() (time.Duration, error) {
	if s.Wait == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.Wait)
	if err != nil {
		return 0, fmt.Errorf("invalid wait %q: %w", s.Wait, err)
	}
	return d, nil
}

// Scenario is a loaded scripted session.
type Scenario struct {
	// ID identifies the scenario; required.
	ID string `yaml:"id"`

	// Description says what the scenario exercises.
	Description string `yaml:"description,omitempty"`

	// Account is the identity the session signs in with.
	Account Account `yaml:"account,omitempty"`

	// Steps are executed in order; at least one is required.
	Steps []Step `yaml:"steps"`
}

// Config converts the scenario account into a connection config, filling
// unset fields from the conntest defaults.
func (sc *Scenario) Config() connection.Config {
	cfg := connection.Config{
		Domain:   sc.Account.Domain,
		Username: sc.Account.Username,
		Password: sc.Account.Password,
		Resource: sc.Account.Resource,
	}
	if cfg.Domain == "" {
		cfg.Domain = "example.org"
	}
	if cfg.Username == "" {
		cfg.Username = "sim"
	}
	return cfg
}

// Parse parses a scenario from YAML bytes.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, &LoadError{
			Message: "failed to parse YAML",
			Cause:   err,
		}
	}

	if sc.ID == "" {
		return nil, &LoadError{Message: "scenario ID is required"}
	}
	if len(sc.Steps) == 0 {
		return nil, &LoadError{Message: "scenario must have at least one step"}
	}
	for i, step := range sc.Steps {
		if !knownActions[step.Action] {
			return nil, &LoadError{
				Message: fmt.Sprintf("step %d: unknown action %q", i, step.Action),
			}
		}
		if _, err := step.waitDuration(); err != nil {
			return nil, &LoadError{
				Message: fmt.Sprintf("step %d: %v", i, err),
			}
		}
	}

	return &sc, nil
}

// Load loads a scenario from a file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			File:    path,
			Message: "failed to read file",
			Cause:   err,
		}
	}

	sc, err := Parse(data)
	if err != nil {
		if le, ok := err.(*LoadError); ok {
			le.File = path
			return nil, le
		}
		return nil, &LoadError{File: path, Message: err.Error()}
	}

	return sc, nil
}

// LoadDirectory loads all scenarios from a directory. Only files with
// .yaml or .yml extensions are loaded.
func LoadDirectory(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &LoadError{
			File:    dir,
			Message: "failed to read directory",
			Cause:   err,
		}
	}

	var scenarios []*Scenario
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		sc, err := Load(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, sc)
	}

	return scenarios, nil
}
