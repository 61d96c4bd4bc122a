// SPDX-License-Identifier: MIT
// Package pattern: sentinel error set.
// All functions in this package return these sentinels (optionally wrapped with
// call-site context via %w); tests match them with errors.Is.

package pattern

import "errors"

var (
	// ErrInvalidDimensions is returned when a requested pattern shape has a negative extent.
	ErrInvalidDimensions = errors.New("pattern: dimensions must be >= 0")

	// ErrOutOfRange indicates a row or column index outside the pattern bounds.
	ErrOutOfRange = errors.New("pattern: index out of range")

	// ErrFinalized is returned when an insertion is attempted after Apply froze the pattern.
	ErrFinalized = errors.New("pattern: pattern already finalized")

	// ErrNotFinalized is returned by queries that need the canonical (sorted, deduplicated) form.
	ErrNotFinalized = errors.New("pattern: pattern not finalized")
)
