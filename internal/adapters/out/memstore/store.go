// Package memstore holds the session-scoped order collection in memory.
// The store lives exactly as long as the agent's session: it is created at
// startup, merged from snapshots and push deliveries while the session runs,
// and discarded on shutdown.
package memstore

import (
	"context"
	"slices"
	"sync"

	"agenthub/internal/core/domain/model/kernel"
	"agenthub/internal/core/domain/model/order"
	"agenthub/internal/pkg/errs"
)

// Store implements ports.OrderStore with copy-on-write semantics: every order
// handed out is a clone, and every order taken in is cloned before storing.
// Readers never observe a partially applied mutation.
//
// Display order is kept in two id lists: pushed (most recent first) and base
// (snapshot order). GetAll concatenates them.
type Store struct {
	mu sync.RWMutex

	orders     map[kernel.UUID]*order.Order
	pushed     []kernel.UUID
	base       []kernel.UUID
	tombstones map[kernel.UUID]struct{}
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		orders:     make(map[kernel.UUID]*order.Order),
		tombstones: make(map[kernel.UUID]struct{}),
	}
}

// ApplySnapshot merges a fetched snapshot into the visible set.
//
// Merge rules:
//   - ids rejected during this session are skipped, never re-added
//   - ids already known keep their placement; if the local copy is in a
//     terminal status it wins entirely, otherwise the snapshot version
//     replaces the stored one
//   - unknown ids form the new base, in snapshot order
//   - previous base ids absent from the snapshot are dropped unless their
//     local status is terminal
//   - pushed ids are always preserved
func (s *Store) ApplySnapshot(_ context.Context, orders []*order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inSnapshot := make(map[kernel.UUID]struct{}, len(orders))
	newBase := make([]kernel.UUID, 0, len(orders))

	for _, snap := range orders {
		id := snap.ID()
		inSnapshot[id] = struct{}{}

		if _, gone := s.tombstones[id]; gone {
			continue
		}

		if local, known := s.orders[id]; known {
			if !local.Status().IsFinal() {
				s.orders[id] = snap.Clone()
			}
			// Placement unchanged: the id already sits in pushed or base.
			if slices.Contains(s.base, id) {
				newBase = append(newBase, id)
			}
			continue
		}

		s.orders[id] = snap.Clone()
		newBase = append(newBase, id)
	}

	// Base orders the snapshot no longer mentions are dropped, except those
	// already actioned locally: the session's own terminal state outlives any
	// one snapshot.
	for _, id := range s.base {
		if _, present := inSnapshot[id]; present {
			continue
		}
		if local, known := s.orders[id]; known && local.Status().IsFinal() {
			newBase = append(newBase, id)
			continue
		}
		delete(s.orders, id)
	}

	s.base = newBase
	return nil
}

// Ingest prepends a push-delivered order to the visible set. An id that is
// already known or was rejected this session is dropped and false is returned.
func (s *Store) Ingest(_ context.Context, o *order.Order) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := o.ID()
	if _, gone := s.tombstones[id]; gone {
		return false, nil
	}
	if _, known := s.orders[id]; known {
		return false, nil
	}

	s.orders[id] = o.Clone()
	s.pushed = append([]kernel.UUID{id}, s.pushed...)
	return true, nil
}

// Get retrieves a copy of one order by id.
func (s *Store) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, known := s.orders[id]
	if !known {
		return nil, errs.NewObjectNotFoundError("orderID", id)
	}
	return o.Clone(), nil
}

// Update replaces the stored order sharing the given order's id.
func (s *Store) Update(_ context.Context, o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := o.ID()
	if _, known := s.orders[id]; !known {
		return errs.NewObjectNotFoundError("orderID", id)
	}

	s.orders[id] = o.Clone()
	return nil
}

// Remove deletes an order and tombstones its id for the rest of the session.
// Removing an absent id is a no-op, but the tombstone is recorded regardless.
func (s *Store) Remove(_ context.Context, id kernel.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.orders, id)
	s.pushed = slices.DeleteFunc(s.pushed, func(other kernel.UUID) bool { return other == id })
	s.base = slices.DeleteFunc(s.base, func(other kernel.UUID) bool { return other == id })
	s.tombstones[id] = struct{}{}
	return nil
}

// GetAll returns copies of all visible orders in display order.
func (s *Store) GetAll(_ context.Context) ([]*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*order.Order, 0, len(s.pushed)+len(s.base))
	for _, id := range s.pushed {
		result = append(result, s.orders[id].Clone())
	}
	for _, id := range s.base {
		result = append(result, s.orders[id].Clone())
	}
	return result, nil
}
