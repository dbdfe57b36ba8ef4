// Package session models the agent's login session as an explicit value object.
// It replaces ambient global session state with a context object passed to the
// components that need the agent identity or credential, with a defined
// lifecycle: constructed at login, discarded at logout.
package session

import (
	"errors"
	"fmt"

	"agenthub/internal/core/domain/model/kernel"
	"agenthub/internal/pkg/errs"
	"agenthub/internal/pkg/guard"
)

// ErrSessionIsNotConstructed is returned when attempting to use an improperly initialized Session.
var ErrSessionIsNotConstructed = errs.NewValueIsRequiredError(
	"session must be created via NewSession constructor")

// Session binds the agent's identity to the credential established at login.
// The core only reads the agent id (for push-topic derivation) and the
// credential (for backend authorization); credential lifecycle management
// lives with the identity collaborator.
//
// Example:
//
//	s, err := session.NewSession(agentID, token)
//	if err != nil {
//	    // Not logged in; push subscription must not be attempted
//	}
//	topic, err := s.Topic() // "agent-<agentID>"
type Session struct {
	agentID    kernel.UUID
	credential string
	guard      guard.ConstructorGuard
}

// NewSession creates a session for the given agent identity.
//
// Parameters:
//   - agentID: The agent's stable identity (must be a valid UUID)
//   - credential: The auth credential issued at login (must not be empty)
//
// Returns:
//   - Session: A valid session instance
//   - error: Validation error if the identity or credential is missing
func NewSession(agentID kernel.UUID, credential string) (Session, error) {
	if err := agentID.Validate(); err != nil {
		return Session{}, err
	}
	if credential == "" {
		return Session{}, errs.NewValueIsRequiredError("credential")
	}

	return Session{
		agentID:    agentID,
		credential: credential,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate checks if the Session was properly constructed using the constructor.
func (s Session) Validate() error {
	return s.guard.Validate(ErrSessionIsNotConstructed)
}

// AgentID returns the agent's stable identity.
func (s Session) AgentID() kernel.UUID {
	return s.agentID
}

// Credential returns the auth credential issued at login.
func (s Session) Credential() string {
	return s.credential
}

// Topic derives the push-transport topic that carries this agent's
// assignment notifications. The derivation is deterministic: one agent
// identity always maps to the same topic name.
func (s Session) Topic() (string, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}
	return fmt.Sprintf("agent-%s", s.agentID), nil
}

// String returns a representation safe for logging: the credential is redacted.
// This method implements the fmt.Stringer interface.
func (s Session) String() string {
	return fmt.Sprintf("Session(agent=%s)", s.agentID)
}

// Equal reports whether two sessions bind the same agent identity and credential.
// Both sessions must be properly constructed for the comparison to succeed.
func (s Session) Equal(other Session) (bool, error) {
	if err := errors.Join(s.Validate(), other.Validate()); err != nil {
		return false, err
	}
	return s.agentID.IsEqual(other.agentID) && s.credential == other.credential, nil
}
