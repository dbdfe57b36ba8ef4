package ports

import (
	"context"
	"errors"

	"agenthub/internal/core/domain/model/kernel"
)

// ErrLocationUnavailable indicates the agent's position could not be acquired:
// the capability is absent, permission was denied, or the bounded wait expired.
var ErrLocationUnavailable = errors.New("agent location is unavailable")

// LocationProvider wraps the platform's current-position query into a
// single-shot asynchronous result. Each call is independent: results are never
// cached across calls because the agent moves, though one successful result
// may be reused within a single accept action.
//
// Implementations must bound the wait and fail with ErrLocationUnavailable
// rather than hang, since acquisition gates a visible UI transition.
type LocationProvider interface {
	// Acquire returns the agent's current position or fails with an error
	// wrapping ErrLocationUnavailable.
	Acquire(ctx context.Context) (kernel.Location, error)
}
