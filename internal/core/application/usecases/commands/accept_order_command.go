package commands

import (
	"errors"

	"agenthub/internal/core/domain/model/kernel"
	"agenthub/internal/pkg/guard"
)

var ErrAcceptOrderCommandIsNotConstructed = errors.New(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
)

// AcceptOrderCommand triggers the agent's acceptance of one assigned order.
// On success the backend records the acceptance, the order moves to Accepted,
// and a route from the agent's current position to the customer is published.
//
// Example:
//
//	cmd, err := NewAcceptOrderCommand(orderID)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type AcceptOrderCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptOrderCommand creates a command to accept the order with the given id.
// Returns a validation error if the id is invalid.
func NewAcceptOrderCommand(orderID kernel.UUID) (AcceptOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AcceptOrderCommand{}, err
	}

	return AcceptOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the id of the order to accept.
func (c AcceptOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Validate ensures the command was created through the constructor.
// Returns ErrAcceptOrderCommandIsNotConstructed if validation fails.
func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}
