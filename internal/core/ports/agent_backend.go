package ports

import (
	"context"
	"errors"

	"agenthub/internal/core/domain/model/kernel"
	"agenthub/internal/core/domain/model/order"
)

var (
	// ErrNetworkFailure indicates a backend call did not complete.
	// The action's outcome is unknown to the caller; prior local state is kept.
	ErrNetworkFailure = errors.New("backend call did not complete")

	// ErrBackendRejected indicates a backend call completed but the envelope
	// status was not "success". The backend refused the action.
	ErrBackendRejected = errors.New("backend rejected the request")
)

// AgentBackend defines the REST contract with the order-management backend.
// Implementations classify failures into the two sentinel errors above so
// callers can distinguish "never arrived" from "refused".
type AgentBackend interface {
	// FetchHistory retrieves the agent's current order snapshot
	// (GET /agent/history).
	FetchHistory(ctx context.Context) ([]*order.Order, error)

	// AcceptOrder records the agent's acceptance of one order
	// (POST /agent/accept-order/{orderId}).
	AcceptOrder(ctx context.Context, orderID kernel.UUID) error

	// RejectOrder records the agent's rejection of one order
	// (POST /agent/reject-order/{orderId}).
	RejectOrder(ctx context.Context, orderID kernel.UUID) error
}
