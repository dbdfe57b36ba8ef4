package order

import (
	"errors"
	"fmt"

	"agenthub/internal/pkg/errs"
)

// ErrStatusIsFinal is returned when a transition is attempted out of a terminal status.
// Accepted and Rejected are terminal: once reached, accept/reject actions on the
// order are no-ops at the domain level (idempotent guard, not a UI concern).
var ErrStatusIsFinal = errors.New("order status is final")

// Status represents the lifecycle state of an assigned order as seen by the agent.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	Assigned ──┬──> Accepted
//	           │
//	           └──> Rejected
//
// Accepted and Rejected are terminal states with no further transitions.
// Status is a value object that validates state transitions
// and provides string representations for parsing and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Assigned is the initial status when an order is dispatched to the agent.
	// Orders in this status are waiting for the agent to accept or reject.
	Assigned

	// Accepted indicates the agent has taken the delivery.
	// This is a final state with no further transitions allowed.
	Accepted

	// Rejected indicates the agent has declined the delivery.
	// This is a final state with no further transitions allowed.
	Rejected
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:  "Unknown",
		Assigned: "Assigned",
		Accepted: "Accepted",
		Rejected: "Rejected",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation and parsing.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Assigned: "Assigned",
		Accepted: "Accepted",
		Rejected: "Rejected",
	}
}

// StatusFromString parses a status received from an external collaborator.
// An empty string maps to Assigned: the backend omits the status field for
// orders the agent has not acted on yet.
//
// Returns:
//   - (Status, nil) for "", "Assigned", "Accepted" or "Rejected"
//   - (Unknown, error) for any other input
func StatusFromString(s string) (Status, error) {
	if s == "" {
		return Assigned, nil
	}
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Assigned, Accepted, Rejected.
// Unknown (0) and any other values are invalid.
//
// Returns:
//   - nil if the status is valid
//   - error with details if the status is invalid
//
// This method is used to ensure Status values from external sources
// (e.g., snapshot fetch, push payload) are valid before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
//
// Returns:
//   - "Assigned", "Accepted", or "Rejected" for valid statuses
//   - "Unknown" for invalid status values
//
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsFinal reports whether the status is terminal.
// Accepted and Rejected permit no further transitions.
func (s Status) IsFinal() bool {
	return s == Accepted || s == Rejected
}

// Accept transitions the status to Accepted.
//
// Valid transitions:
//   - Assigned -> Accepted
//
// Invalid transitions:
//   - Accepted -> Accepted (already final, ErrStatusIsFinal)
//   - Rejected -> Accepted (already final, ErrStatusIsFinal)
//   - Unknown -> Accepted (invalid initial state)
//
// Returns:
//   - (Accepted, nil) on valid transition
//   - (0, error) if the transition is not allowed from the current status
func (s Status) Accept() (Status, error) {
	if err := s.validateTransition(); err != nil {
		return 0, err
	}

	return Accepted, nil
}

// Reject transitions the status to Rejected.
//
// Valid transitions:
//   - Assigned -> Rejected
//
// Invalid transitions:
//   - Accepted -> Rejected (already final, ErrStatusIsFinal)
//   - Rejected -> Rejected (already final, ErrStatusIsFinal)
//   - Unknown -> Rejected (invalid initial state)
//
// Returns:
//   - (Rejected, nil) on valid transition
//   - (0, error) if the transition is not allowed from the current status
func (s Status) Reject() (Status, error) {
	if err := s.validateTransition(); err != nil {
		return 0, err
	}

	return Rejected, nil
}

// validateTransition checks that the status permits an accept/reject transition.
// Only Assigned does; terminal statuses yield ErrStatusIsFinal so callers can
// treat the duplicate action as an idempotence violation rather than bad input.
func (s Status) validateTransition() error {
	if s.IsFinal() {
		return fmt.Errorf("%w: %s", ErrStatusIsFinal, s.String())
	}
	if s != Assigned {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to act on", s.String()),
		)
	}
	return nil
}
