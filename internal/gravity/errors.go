package gravity

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRadius = errors.New("gravity: radius must be positive")

	ErrInvalidDensity = errors.New("gravity: density must be positive")

	ErrInvalidHealth = errors.New("gravity: health must not be negative")

	// ErrNonFinite indicates NaN or Inf in spawn parameters.
	ErrNonFinite = errors.New("gravity: non-finite parameter (NaN or Inf)")

	// ErrCapacity indicates a spawn would exceed the configured entity cap.
	ErrCapacity = errors.New("gravity: entity cap reached")

	ErrQueueFull = errors.New("gravity: spawn queue full")

	// ErrStaleHandle indicates a handle whose entity has been destroyed.
	ErrStaleHandle = errors.New("gravity: stale or unknown handle")

	ErrInvalidParent = errors.New("gravity: cannon parent out of range")

	ErrTickInProgress = errors.New("gravity: tick already in progress")

	ErrParameterBounds = errors.New("gravity: parameter out of valid bounds")
)

// SpawnError identifies the entry of a spawn group that failed validation.
type SpawnError struct {
	Index   int
	Wrapped error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawn entry %d: %v", e.Index, e.Wrapped)
}

func (e *SpawnError) Unwrap() error {
	return e.Wrapped
}
