package commands

import (
	"errors"
	"sync"

	"agenthub/internal/core/domain/model/kernel"
)

// ErrActionInFlight is returned when an accept or reject action is requested
// for an order that already has one in flight. The duplicate call is refused,
// not coalesced: exactly one backend call may be issued per user action.
var ErrActionInFlight = errors.New("an action for this order is already in flight")

// ActionGuard tracks which orders currently have an accept/reject action in
// flight. The terminal-state invariant plus UI disablement already make
// duplicates unlikely; the guard refuses them at the controller level as well.
//
// Accept and reject handlers share one guard instance so that concurrent
// accept and reject for the same order also exclude each other. Actions for
// different orders proceed independently.
type ActionGuard struct {
	mu       sync.Mutex
	inFlight map[kernel.UUID]struct{}
}

// NewActionGuard creates an empty guard.
func NewActionGuard() *ActionGuard {
	return &ActionGuard{
		inFlight: make(map[kernel.UUID]struct{}),
	}
}

// TryAcquire marks an action in flight for the order.
// Returns false if one is already in flight.
func (g *ActionGuard) TryAcquire(orderID kernel.UUID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.inFlight[orderID]; busy {
		return false
	}
	g.inFlight[orderID] = struct{}{}
	return true
}

// Release clears the in-flight mark for the order.
// Releasing an order with no mark is a no-op.
func (g *ActionGuard) Release(orderID kernel.UUID) {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.inFlight, orderID)
}
