package order

import (
	"errors"
	"fmt"

	"agenthub/internal/core/domain/model/kernel"
	"agenthub/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

// Order represents one delivery assignment as seen by the agent. It is the aggregate
// root that manages the order lifecycle from assignment through the agent's
// accept-or-reject decision.
//
// Order follows these invariants:
//   - Must have a valid unique identifier, stable for the order's lifetime
//   - Must have a valid destination location
//   - Total amount must not be negative
//   - Exactly one of Accepted/Rejected may ever be reached from Assigned;
//     once reached the order is immutable to further accept/reject actions
//   - Can only be created through NewOrder or RestoreOrder
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customerName is the display name of the customer
	customerName string

	// deliveryAddress is the display address of the destination
	deliveryAddress string

	// destination is the customer's coordinates the route ends at
	destination kernel.Location

	// totalAmount is the order value, currency-agnostic
	totalAmount float64

	// status represents the current state in the order lifecycle
	status Status

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order in Assigned status. This is the constructor used
// for push-delivered assignments, which always arrive unactioned.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid UUID)
//   - customerName: Customer display name
//   - deliveryAddress: Destination display address
//   - destination: Customer coordinates with validated values
//   - totalAmount: Order value (must not be negative)
//
// Returns:
//   - *Order: The created order if all validations pass
//   - error: Validation error if any parameter is invalid
//
// Example:
//
//	orderID := kernel.NewUUID()
//	dest, _ := kernel.NewLocation(12.95, 77.65)
//	o, err := NewOrder(orderID, "Asha", "12 MG Road", dest, 420)
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(
	id kernel.UUID,
	customerName string,
	deliveryAddress string,
	destination kernel.Location,
	totalAmount float64,
) (*Order, error) {
	return RestoreOrder(id, customerName, deliveryAddress, destination, totalAmount, Assigned)
}

// RestoreOrder reconstructs an Order with an explicit status. This is the
// constructor used when parsing the startup snapshot, which carries the status
// the backend recorded for orders the agent already acted on.
//
// Parameters mirror NewOrder, plus:
//   - status: The recorded lifecycle status (must be a valid Status)
//
// Returns:
//   - *Order: The restored order if all validations pass
//   - error: Validation error if any parameter is invalid
func RestoreOrder(
	id kernel.UUID,
	customerName string,
	deliveryAddress string,
	destination kernel.Location,
	totalAmount float64,
	status Status,
) (*Order, error) {
	o := &Order{
		customerName:    customerName,
		deliveryAddress: deliveryAddress,
		isConstructed:   true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setDestination(destination),
		o.setTotalAmount(totalAmount),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed through a constructor.
// This prevents bypassing validation by directly instantiating the struct.
//
// Returns:
//   - nil if the order is valid
//   - ErrOrderIsNotConstructed if the order was not created via a constructor
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
// Orders are considered equal if they have the same ID.
//
// Parameters:
//   - other: The order to compare with
//
// Returns:
//   - true if both orders have the same ID
//   - false if other is nil or IDs differ
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerName returns the customer display name.
func (o *Order) CustomerName() string {
	return o.customerName
}

// DeliveryAddress returns the destination display address.
func (o *Order) DeliveryAddress() string {
	return o.deliveryAddress
}

// Destination returns the customer coordinates the route ends at.
func (o *Order) Destination() kernel.Location {
	return o.destination
}

// TotalAmount returns the order value.
func (o *Order) TotalAmount() float64 {
	return o.totalAmount
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Accept marks the order as accepted by the agent.
//
// This method enforces the following business rules:
//   - The order must be in Assigned status
//   - Accepted is a final state with no further transitions
//
// Returns:
//   - nil on successful acceptance
//   - an error wrapping ErrStatusIsFinal if the order was already accepted or rejected
//
// Example:
//
//	if err := o.Accept(); errors.Is(err, order.ErrStatusIsFinal) {
//	    // Duplicate action, drop it
//	}
func (o *Order) Accept() error {
	newStatus, err := o.status.Accept()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Reject marks the order as rejected by the agent.
//
// This method enforces the following business rules:
//   - The order must be in Assigned status
//   - Rejected is a final state with no further transitions
//
// Returns:
//   - nil on successful rejection
//   - an error wrapping ErrStatusIsFinal if the order was already accepted or rejected
func (o *Order) Reject() error {
	newStatus, err := o.status.Reject()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Clone returns an independent copy of the order.
// The store hands out and keeps clones so readers never observe a mutation
// in progress (copy-on-write discipline).
func (o *Order) Clone() *Order {
	clone := *o
	return &clone
}

// setID validates and sets the order's unique identifier.
// This is a private method used only during construction.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setDestination validates and sets the order's destination coordinates.
// This is a private method used only during construction.
func (o *Order) setDestination(destination kernel.Location) error {
	if err := destination.Validate(); err != nil {
		return err
	}
	o.destination = destination
	return nil
}

// setTotalAmount validates and sets the order's value.
// This is a private method used only during construction.
func (o *Order) setTotalAmount(totalAmount float64) error {
	if totalAmount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("totalAmount", fmt.Errorf("%f is negative", totalAmount))
	}
	o.totalAmount = totalAmount
	return nil
}

// setStatus validates and sets the order's lifecycle status.
// This is a private method used only during construction.
func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
