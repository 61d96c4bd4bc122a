// SPDX-License-Identifier: MIT
// Package: sparse
//
// Purpose:
//   - Provide a single, canonical source of truth for shape/index/value checks.
//   - Keep store methods minimal by delegating guard logic here.
//   - Return plain sentinel errors (wrapped only with local detail) so call
//     sites can wrap uniformly with storeErrorf.
//
// Determinism & Performance:
//   - All checks are pure and allocate nothing on the success path.
//   - Block checks are O(m+n) for indices and O(m*n) for values.

package sparse

import (
	"fmt"
	"math"
)

// storeErrorf wraps err with the backend kind and method, e.g. "CSR.Apply: ...".
// Use only when err != nil.
func storeErrorf(kind, method string, err error) error {
	return fmt.Errorf("%s.%s: %w", kind, method, err)
}

// storeErrorAt wraps err with the backend kind, method and coordinates.
func storeErrorAt(kind, method string, row, col int, err error) error {
	return fmt.Errorf("%s.%s(%d,%d): %w", kind, method, row, col, err)
}

// isNonFinite reports NaN or ±Inf.
func isNonFinite(v float64) bool { return math.IsNaN(v) || math.IsInf(v, 0) }

// validateShape accepts non-negative dimensions (0×0 is the empty store).
func validateShape(rows, cols int) error {
	if rows < 0 || cols < 0 {
		return fmt.Errorf("shape %dx%d: %w", rows, cols, ErrInvalidArgument)
	}

	return nil
}

// validateIndices checks every index against [0, n).
// axis names the dimension in the error ("row"/"col").
func validateIndices(axis string, idx []int, n int) error {
	for _, k := range idx {
		if k < 0 || k >= n {
			return fmt.Errorf("%s %d not in [0,%d): %w", axis, k, n, ErrInvalidIndex)
		}
	}

	return nil
}

// validateBlock checks the block contract: len(block) == len(rows)*len(cols)
// and all indices in range for an r×c matrix.
func validateBlock(block []float64, rows, cols []int, r, c int) error {
	if len(block) != len(rows)*len(cols) {
		return fmt.Errorf("block length %d != %d*%d: %w", len(block), len(rows), len(cols), ErrDimensionMismatch)
	}
	if err := validateIndices("row", rows, r); err != nil {
		return err
	}

	return validateIndices("col", cols, c)
}

// validateFinite returns the offset of the first non-finite value, or -1.
func validateFinite(vals []float64) int {
	for k, v := range vals {
		if isNonFinite(v) {
			return k
		}
	}

	return -1
}

// validateDim accepts only the axis selectors 0 (rows) and 1 (cols).
func validateDim(dim int) error {
	if dim != 0 && dim != 1 {
		return fmt.Errorf("dim %d not in {0,1}: %w", dim, ErrInvalidArgument)
	}

	return nil
}
