package ports

import (
	"context"

	"agenthub/internal/core/domain/model/kernel"
	"agenthub/internal/core/domain/model/order"
)

// OrderStore defines the contract for the session-scoped collection of orders
// visible to the agent. It merges the startup snapshot with push-delivered
// insertions and user-driven status mutations.
//
// Implementations must follow a copy-on-write discipline: every read hands out
// independent copies, and no stored order is mutated in place while a prior
// read may still be observed. Mutations are applied atomically relative to reads.
type OrderStore interface {
	// ApplySnapshot merges a freshly fetched snapshot into the visible set.
	// Snapshot orders replace the base of the set, with two exceptions:
	//   - orders already accepted or rejected locally keep their local status
	//     (local terminal state wins over a later-arriving snapshot)
	//   - orders rejected during this session are never re-added
	// Orders known locally but absent from the snapshot (push-delivered while
	// the fetch was in flight) are preserved.
	ApplySnapshot(ctx context.Context, orders []*order.Order) error

	// Ingest prepends a push-delivered order to the visible set.
	// Returns false if an order with the same id is already known, in which
	// case the set is unchanged (local state wins, no display duplicates).
	// Ingest is valid at any time relative to ApplySnapshot.
	Ingest(ctx context.Context, o *order.Order) (bool, error)

	// Get retrieves a copy of one order by id.
	// Returns an error wrapping errs.ErrObjectNotFound if the id is absent.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Update replaces the stored order that shares the given order's id.
	// Returns an error wrapping errs.ErrObjectNotFound if the id is absent.
	Update(ctx context.Context, o *order.Order) error

	// Remove deletes an order from the visible set and tombstones its id for
	// the rest of the session (used on rejection). Removing an absent id is a no-op.
	Remove(ctx context.Context, id kernel.UUID) error

	// GetAll returns copies of all visible orders in display order:
	// most recently pushed first, then the snapshot base order.
	GetAll(ctx context.Context) ([]*order.Order, error)
}
