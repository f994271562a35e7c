package connection

import (
	"errors"
	"fmt"

	"mellium.im/xmpp/jid"
)

// Config errors.
var (
	ErrMissingDomain   = errors.New("config: domain is required")
	ErrMissingUsername = errors.New("config: username is required")
)

// Config describes the account a connection signs in with. It is a plain
// value: copy it freely, a connection never mutates the copy it was given.
type Config struct {
	// Domain is the service domain the connection belongs to.
	Domain string

	// Username is the account local part.
	Username string

	// Password is the account password. Simulated connections ignore it.
	Password string

	// Resource is the preferred resource part. Empty lets the connection
	// choose a default.
	Resource string
}

// Validate checks that the required fields are present.
func (c Config) Validate() error {
	if c.Domain == "" {
		return ErrMissingDomain
	}
	if c.Username == "" {
		return ErrMissingUsername
	}
	return nil
}

// UserJID composes the full account address username@domain/resource,
// validating each part. The given resource overrides the configured one
// when non-empty.
func (c Config) UserJID(resource string) (jid.JID, error) {
	if resource == "" {
		resource = c.Resource
	}
	j, err := jid.New(c.Username, c.Domain, resource)
	if err != nil {
		return jid.JID{}, fmt.Errorf("config: invalid account address: %w", err)
	}
	return j, nil
}
