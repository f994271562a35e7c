package connection

import (
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "valid",
			config:  Config{Domain: "example.org", Username: "alice", Password: "pw"},
			wantErr: nil,
		},
		{
			name:    "missing domain",
			config:  Config{Username: "alice"},
			wantErr: ErrMissingDomain,
		},
		{
			name:    "missing username",
			config:  Config{Domain: "example.org"},
			wantErr: ErrMissingUsername,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigUserJID(t *testing.T) {
	cfg := Config{Domain: "example.org", Username: "alice", Resource: "desktop"}

	j, err := cfg.UserJID("")
	if err != nil {
		t.Fatalf("UserJID failed: %v", err)
	}
	if got := j.String(); got != "alice@example.org/desktop" {
		t.Errorf("UserJID = %q, want \"alice@example.org/desktop\"", got)
	}

	// Explicit resource overrides the configured one.
	j, err = cfg.UserJID("mobile")
	if err != nil {
		t.Fatalf("UserJID failed: %v", err)
	}
	if got := j.Resourcepart(); got != "mobile" {
		t.Errorf("resource = %q, want \"mobile\"", got)
	}
}

func TestConfigUserJIDInvalidDomain(t *testing.T) {
	cfg := Config{Domain: "exa mple.org", Username: "alice"}
	if _, err := cfg.UserJID("Test"); err == nil {
		t.Error("UserJID accepted a malformed domain")
	}
}
