package commands

import (
	"errors"

	"agenthub/internal/core/domain/model/kernel"
	"agenthub/internal/core/domain/model/order"
	"agenthub/internal/pkg/guard"
)

var ErrIngestOrderCommandIsNotConstructed = errors.New(
	"IngestOrderCommand must be created via NewIngestOrderCommand constructor",
)

// IngestOrderCommand carries a push-delivered order assignment into the
// visible set. Push payloads always describe unactioned orders, so the
// ingested order starts in Assigned status.
type IngestOrderCommand struct {
	order *order.Order

	guard guard.ConstructorGuard
}

// NewIngestOrderCommand creates a command from the fields of a push payload.
// The order is constructed here so an invalid payload is refused before it
// reaches the store.
//
// Parameters:
//   - orderID: The backend-issued order identifier
//   - customerName: Customer display name
//   - deliveryAddress: Destination display address
//   - destination: Customer coordinates
//   - totalAmount: Order value
func NewIngestOrderCommand(
	orderID kernel.UUID,
	customerName string,
	deliveryAddress string,
	destination kernel.Location,
	totalAmount float64,
) (IngestOrderCommand, error) {
	o, err := order.NewOrder(orderID, customerName, deliveryAddress, destination, totalAmount)
	if err != nil {
		return IngestOrderCommand{}, err
	}

	return IngestOrderCommand{
		order: o,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Order returns the order carried by the command.
func (c IngestOrderCommand) Order() *order.Order {
	return c.order
}

// Validate ensures the command was created through the constructor.
// Returns ErrIngestOrderCommandIsNotConstructed if validation fails.
func (c IngestOrderCommand) Validate() error {
	return c.guard.Validate(ErrIngestOrderCommandIsNotConstructed)
}
