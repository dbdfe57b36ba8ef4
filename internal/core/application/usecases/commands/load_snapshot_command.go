package commands

import (
	"errors"

	"agenthub/internal/pkg/guard"
)

var ErrLoadSnapshotCommandIsNotConstructed = errors.New(
	"LoadSnapshotCommand must be created via NewLoadSnapshotCommand constructor",
)

// LoadSnapshotCommand triggers a fetch of the agent's current order history
// from the backend and merges it into the visible set. It runs once at session
// start and again on each periodic refresh.
type LoadSnapshotCommand struct {
	guard guard.ConstructorGuard
}

// NewLoadSnapshotCommand creates a parameterless command to load the snapshot.
func NewLoadSnapshotCommand() LoadSnapshotCommand {
	return LoadSnapshotCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrLoadSnapshotCommandIsNotConstructed if validation fails.
func (c LoadSnapshotCommand) Validate() error {
	return c.guard.Validate(ErrLoadSnapshotCommandIsNotConstructed)
}
