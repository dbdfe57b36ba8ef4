package commands

import (
	"errors"

	"agenthub/internal/core/domain/model/kernel"
	"agenthub/internal/pkg/guard"
)

var ErrRejectOrderCommandIsNotConstructed = errors.New(
	"RejectOrderCommand must be created via NewRejectOrderCommand constructor",
)

// RejectOrderCommand triggers the agent's rejection of one assigned order.
// On success the backend records the rejection and the order leaves the
// visible set for the rest of the session.
type RejectOrderCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRejectOrderCommand creates a command to reject the order with the given id.
// Returns a validation error if the id is invalid.
func NewRejectOrderCommand(orderID kernel.UUID) (RejectOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return RejectOrderCommand{}, err
	}

	return RejectOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the id of the order to reject.
func (c RejectOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Validate ensures the command was created through the constructor.
// Returns ErrRejectOrderCommandIsNotConstructed if validation fails.
func (c RejectOrderCommand) Validate() error {
	return c.guard.Validate(ErrRejectOrderCommandIsNotConstructed)
}
