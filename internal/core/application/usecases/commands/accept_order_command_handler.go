package commands

import (
	"context"
	"fmt"

	"agenthub/internal/core/domain/events"
	"agenthub/internal/core/domain/model/route"
	"agenthub/internal/core/ports"
)

// AcceptOrderCommandHandler orchestrates the accept flow: backend call,
// status transition, location acquisition and route publication.
//
// The flow deliberately splits business state from the UI side effect: once
// the backend has recorded the acceptance the order becomes Accepted even if
// the agent's position cannot be acquired afterwards. In that case no route is
// published and the handler returns an error wrapping
// ports.ErrLocationUnavailable so callers can surface the distinct notice.
//
// Example:
//
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrActionInFlight):
//	    // Duplicate click, ignore
//	case errors.Is(err, ports.ErrLocationUnavailable):
//	    // Accepted, but no route to display
//	case err != nil:
//	    // Accept failed, order unchanged
//	}
type AcceptOrderCommandHandler struct {
	backend   ports.AgentBackend
	store     ports.OrderStore
	locations ports.LocationProvider
	routes    ports.RoutePublisher
	publisher ports.EventPublisher
	actions   *ActionGuard
}

// NewAcceptOrderCommandHandler creates a handler for accept operations.
// The ActionGuard must be shared with the reject handler so concurrent
// accept and reject for one order exclude each other.
func NewAcceptOrderCommandHandler(
	backend ports.AgentBackend,
	store ports.OrderStore,
	locations ports.LocationProvider,
	routes ports.RoutePublisher,
	publisher ports.EventPublisher,
	actions *ActionGuard,
) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		backend:   backend,
		store:     store,
		locations: locations,
		routes:    routes,
		publisher: publisher,
		actions:   actions,
	}
}

// Handle processes the accept command.
//
// Steps:
//  1. Refuse a duplicate in-flight action for the same order (ErrActionInFlight).
//  2. Load the order and verify it can still be accepted (terminal states refuse).
//  3. Issue the backend accept call; on failure the order is left unchanged.
//  4. Record the acceptance locally (the backend state is now authoritative).
//  5. Acquire the agent's position and publish the route; a location failure
//     suppresses the route only, never the acceptance.
func (h AcceptOrderCommandHandler) Handle(ctx context.Context, command AcceptOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	orderID := command.OrderID()
	if !h.actions.TryAcquire(orderID) {
		return ErrActionInFlight
	}
	defer h.actions.Release(orderID)

	o, err := h.store.Get(ctx, orderID)
	if err != nil {
		return err
	}

	if _, err = o.Status().Accept(); err != nil {
		return err
	}

	if err = h.backend.AcceptOrder(ctx, orderID); err != nil {
		return err
	}

	location, locationErr := h.locations.Acquire(ctx)

	if err = o.Accept(); err != nil {
		return err
	}
	if err = h.store.Update(ctx, o); err != nil {
		return err
	}
	if err = h.publisher.Publish(ctx, events.OrderAccepted{OrderID: orderID}); err != nil {
		return err
	}

	if locationErr != nil {
		if err = h.publisher.Publish(ctx, events.LocationUnavailable{OrderID: orderID}); err != nil {
			return err
		}
		return fmt.Errorf("order %s accepted without route: %w", orderID, locationErr)
	}

	r, err := route.NewRoute(location, o.Destination())
	if err != nil {
		return err
	}
	if err = h.routes.Publish(ctx, orderID, r); err != nil {
		return err
	}
	if err = h.publisher.Publish(ctx, events.RoutePublished{OrderID: orderID, Route: r}); err != nil {
		return err
	}

	return nil
}
