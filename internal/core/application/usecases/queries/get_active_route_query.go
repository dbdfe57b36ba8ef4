package queries

import (
	"errors"

	"agenthub/internal/core/domain/model/kernel"
	"agenthub/internal/pkg/guard"
)

var ErrGetActiveRouteQueryIsNotConstructed = errors.New(
	"GetActiveRouteQuery must be created via NewGetActiveRouteQuery constructor",
)

// GetActiveRouteQuery retrieves the route currently handed to the map view,
// if an accept has published one and the view has not been closed since.
type GetActiveRouteQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveRouteQuery creates a parameterless query for the active route.
func NewGetActiveRouteQuery() GetActiveRouteQuery {
	return GetActiveRouteQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetActiveRouteQueryIsNotConstructed if validation fails.
func (q GetActiveRouteQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveRouteQueryIsNotConstructed)
}

// GetActiveRouteQueryResponse carries the two endpoints of the active route.
type GetActiveRouteQueryResponse struct {
	Start kernel.Location
	End   kernel.Location
}
