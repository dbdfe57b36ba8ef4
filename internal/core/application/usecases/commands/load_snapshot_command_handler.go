package commands

import (
	"context"
	"fmt"

	"agenthub/internal/core/ports"
)

// LoadSnapshotCommandHandler fetches the order snapshot and merges it into the
// visible set. The merge is fail-soft: a fetch failure leaves the store at its
// last-known state and is reported to the caller, never blanking the list.
type LoadSnapshotCommandHandler struct {
	backend ports.AgentBackend
	store   ports.OrderStore
}

// NewLoadSnapshotCommandHandler creates a handler for snapshot loads.
func NewLoadSnapshotCommandHandler(backend ports.AgentBackend, store ports.OrderStore) LoadSnapshotCommandHandler {
	return LoadSnapshotCommandHandler{
		backend: backend,
		store:   store,
	}
}

// Handle processes the snapshot load. The store's merge rules apply: local
// terminal state wins over the snapshot, rejected ids are never re-added, and
// orders pushed while the fetch was in flight are preserved.
func (h LoadSnapshotCommandHandler) Handle(ctx context.Context, command LoadSnapshotCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	orders, err := h.backend.FetchHistory(ctx)
	if err != nil {
		return fmt.Errorf("snapshot fetch failed: %w", err)
	}

	return h.store.ApplySnapshot(ctx, orders)
}
