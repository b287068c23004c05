package voxel

import "errors"

// Precondition failures. Both abort a pass before any grid is allocated.
var (
	ErrEmptyMesh   = errors.New("mesh has no vertices")
	ErrInvalidStep = errors.New("grid step must be positive and finite")
)

// ErrWorkerPanic wraps a panic recovered from a parallel layer worker.
var ErrWorkerPanic = errors.New("layer worker panicked")
