package ports

import (
	"context"

	"agenthub/internal/core/domain/model/kernel"
	"agenthub/internal/core/domain/model/route"
)

// RoutePublisher hands a route request to the map-rendering collaborator.
// A newly published route supersedes any previous one; closing the route view
// discards the current route.
type RoutePublisher interface {
	// Publish makes the given route the current one for the order.
	Publish(ctx context.Context, orderID kernel.UUID, r route.Route) error

	// Current returns the route being displayed, if any.
	// Returns an error wrapping errs.ErrObjectNotFound when no route is active.
	Current(ctx context.Context) (route.Route, error)

	// Clear discards the current route (route view closed).
	// Clearing when no route is active is a no-op.
	Clear(ctx context.Context) error
}
