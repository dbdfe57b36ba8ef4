// Package routeboard holds the route currently handed to the map view.
// Exactly one route is active at a time: a newer accept supersedes the
// displayed route, and closing the view clears it.
package routeboard

import (
	"context"
	"sync"

	"agenthub/internal/core/domain/model/kernel"
	"agenthub/internal/core/domain/model/route"
	"agenthub/internal/pkg/errs"
)

// Board implements ports.RoutePublisher in memory for the session's lifetime.
type Board struct {
	mu      sync.RWMutex
	active  route.Route
	orderID kernel.UUID
	present bool
}

// NewBoard creates an empty board with no active route.
func NewBoard() *Board {
	return &Board{}
}

// Publish makes the given route the active one, superseding any previous route.
func (b *Board) Publish(_ context.Context, orderID kernel.UUID, r route.Route) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if err := r.Validate(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.active = r
	b.orderID = orderID
	b.present = true
	return nil
}

// Current returns the active route.
// Returns an error wrapping errs.ErrObjectNotFound when no route is active.
func (b *Board) Current(_ context.Context) (route.Route, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.present {
		return route.Route{}, errs.NewObjectNotFoundError("route", "active")
	}
	return b.active, nil
}

// OrderID returns the id of the order the active route belongs to.
// Returns an error wrapping errs.ErrObjectNotFound when no route is active.
func (b *Board) OrderID(_ context.Context) (kernel.UUID, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.present {
		return kernel.UUID{}, errs.NewObjectNotFoundError("route", "active")
	}
	return b.orderID, nil
}

// Clear removes the active route. Clearing an empty board is a no-op.
func (b *Board) Clear(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.active = route.Route{}
	b.orderID = kernel.UUID{}
	b.present = false
	return nil
}
