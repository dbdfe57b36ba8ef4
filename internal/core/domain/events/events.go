// Package events defines the domain events the application emits for UI-layer
// consumers. Emitting events decouples notification-channel plumbing from
// presentation: the core never fires UI side effects directly.
package events

import (
	"agenthub/internal/core/domain/model/kernel"
	"agenthub/internal/core/domain/model/order"
	"agenthub/internal/core/domain/model/route"
)

// Event is a domain occurrence worth announcing to the UI layer.
type Event interface {
	// Name returns the stable event name used for routing and serialization.
	Name() string
}

// OrderAssigned is emitted when a push-delivered order joins the visible set.
type OrderAssigned struct {
	Order *order.Order
}

func (OrderAssigned) Name() string { return "order.assigned" }

// OrderAccepted is emitted when the backend has recorded the agent's acceptance.
type OrderAccepted struct {
	OrderID kernel.UUID
}

func (OrderAccepted) Name() string { return "order.accepted" }

// OrderRejected is emitted when the backend has recorded the agent's rejection
// and the order left the visible set.
type OrderRejected struct {
	OrderID kernel.UUID
}

func (OrderRejected) Name() string { return "order.rejected" }

// RoutePublished is emitted exactly once per successful accept with a known
// agent position; it carries the endpoints for the map-rendering collaborator.
type RoutePublished struct {
	OrderID kernel.UUID
	Route   route.Route
}

func (RoutePublished) Name() string { return "route.published" }

// LocationUnavailable is the notice surfaced when an accept succeeded on the
// backend but the agent's position could not be acquired. The acceptance
// stands; only the route display is suppressed.
type LocationUnavailable struct {
	OrderID kernel.UUID
}

func (LocationUnavailable) Name() string { return "location.unavailable" }
