// Package errors defines all exported error sentinels for the equihash library.
//
// This is the single source of truth for error values. The top-level
// equihash package and the commands import from here, ensuring errors.Is
// checks work across package boundaries.
package errors

import "errors"

// Parameter errors
var (
	ErrInvalidParams   = errors.New("equihash: invalid parameters (require 0 < K < N, N divisible by 8 and by K+1)")
	ErrCollisionLength = errors.New("equihash: collision bit length must be at least 8 bits")
	ErrHashLength      = errors.New("equihash: expanded hash length exceeds 64 bytes")
)

// Solver errors
var (
	// ErrCancelled is returned when the caller-supplied cancellation probe
	// reports true at a checkpoint. No partial result is surfaced.
	ErrCancelled = errors.New("equihash: solver cancelled")
)

// Solution encoding errors
var (
	ErrSolutionLength = errors.New("equihash: solution byte length is not 4*2^K")
)
