package commands

import (
	"context"

	"agenthub/internal/core/domain/events"
	"agenthub/internal/core/ports"
)

// RejectOrderCommandHandler orchestrates the reject flow: backend call and
// removal from the visible set. On backend failure the order remains in the
// visible set unchanged; the user may retry.
type RejectOrderCommandHandler struct {
	backend   ports.AgentBackend
	store     ports.OrderStore
	publisher ports.EventPublisher
	actions   *ActionGuard
}

// NewRejectOrderCommandHandler creates a handler for reject operations.
// The ActionGuard must be shared with the accept handler so concurrent
// accept and reject for one order exclude each other.
func NewRejectOrderCommandHandler(
	backend ports.AgentBackend,
	store ports.OrderStore,
	publisher ports.EventPublisher,
	actions *ActionGuard,
) RejectOrderCommandHandler {
	return RejectOrderCommandHandler{
		backend:   backend,
		store:     store,
		publisher: publisher,
		actions:   actions,
	}
}

// Handle processes the reject command.
//
// Steps:
//  1. Refuse a duplicate in-flight action for the same order (ErrActionInFlight).
//  2. Load the order and verify it can still be rejected (terminal states refuse).
//  3. Issue the backend reject call; on failure the order is left unchanged.
//  4. Remove the order from the visible set and tombstone its id so a later
//     snapshot referencing the same backend state never re-adds it.
func (h RejectOrderCommandHandler) Handle(ctx context.Context, command RejectOrderCommand) error {
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

	if _, err = o.Status().Reject(); err != nil {
		return err
	}

	if err = h.backend.RejectOrder(ctx, orderID); err != nil {
		return err
	}

	if err = h.store.Remove(ctx, orderID); err != nil {
		return err
	}

	return h.publisher.Publish(ctx, events.OrderRejected{OrderID: orderID})
}
