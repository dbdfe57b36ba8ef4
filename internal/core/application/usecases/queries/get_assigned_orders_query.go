// Package queries contains read operations for retrieving session state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return read models optimized for the agent UI.
package queries

import (
	"errors"

	"agenthub/internal/core/domain/model/kernel"
	"agenthub/internal/pkg/guard"
)

var ErrGetAssignedOrdersQueryIsNotConstructed = errors.New(
	"GetAssignedOrdersQuery must be created via NewGetAssignedOrdersQuery constructor",
)

// GetAssignedOrdersQuery retrieves the orders currently visible to the agent,
// in display order: most recently pushed first, then the snapshot base.
//
// Example:
//
//	query := NewGetAssignedOrdersQuery()
//	orders, err := handler.Handle(ctx, query)
//	for _, o := range orders {
//	    fmt.Printf("#%s %s - %s (%s)\n", o.ID, o.CustomerName, o.DeliveryAddress, o.Status)
//	}
type GetAssignedOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAssignedOrdersQuery creates a parameterless query for the visible order list.
func NewGetAssignedOrdersQuery() GetAssignedOrdersQuery {
	return GetAssignedOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAssignedOrdersQueryIsNotConstructed if validation fails.
func (q GetAssignedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAssignedOrdersQueryIsNotConstructed)
}

// GetAssignedOrdersQueryResponse represents one visible order in the read model.
type GetAssignedOrdersQueryResponse struct {
	ID              kernel.UUID
	CustomerName    string
	DeliveryAddress string
	Destination     kernel.Location
	TotalAmount     float64
	Status          string
}
