// Package route contains the route request value object handed to the external
// map-rendering collaborator. A route request is just the two endpoint
// coordinates; route computation itself lives outside this system.
package route

import (
	"errors"
	"fmt"

	"agenthub/internal/core/domain/model/kernel"
	"agenthub/internal/pkg/errs"
	"agenthub/internal/pkg/guard"
)

// ErrRouteIsNotConstructed is returned when attempting to use an improperly initialized Route.
var ErrRouteIsNotConstructed = errs.NewValueIsRequiredError(
	"route must be created via NewRoute constructor")

// Route pairs the agent's current position with the customer's destination.
// It is ephemeral: created only after a successful accept, discarded when a
// new route supersedes it or the route view is closed.
//
// Example:
//
//	start, _ := kernel.NewLocation(12.9, 77.6)
//	end, _ := kernel.NewLocation(12.95, 77.65)
//	r, err := route.NewRoute(start, end)
type Route struct {
	start kernel.Location
	end   kernel.Location
	guard guard.ConstructorGuard
}

// NewRoute creates a Route from the agent's position to the customer's destination.
// Both locations must be properly constructed.
//
// Returns:
//   - Route: A valid route instance
//   - error: Validation error if either endpoint is invalid
func NewRoute(start kernel.Location, end kernel.Location) (Route, error) {
	if err := errors.Join(start.Validate(), end.Validate()); err != nil {
		return Route{}, err
	}

	return Route{
		start: start,
		end:   end,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate checks if the Route was properly constructed using the constructor.
func (r Route) Validate() error {
	return r.guard.Validate(ErrRouteIsNotConstructed)
}

// Start returns the agent's position the route begins at.
func (r Route) Start() kernel.Location {
	return r.start
}

// End returns the customer's destination the route ends at.
func (r Route) End() kernel.Location {
	return r.end
}

// String returns a human-readable representation for logging.
// This method implements the fmt.Stringer interface.
func (r Route) String() string {
	return fmt.Sprintf("Route(%s -> %s)", r.start, r.end)
}
