// SPDX-License-Identifier: MIT

package sparse

import (
	"fmt"
	"math"
)

// AllClose checks |a-b| ≤ atol + rtol*|b| at every position stored in either
// operand; positions stored in only one side compare against 0. Backends may
// differ: a CSR and a Dense holding the same values are close.
// Returns (true,nil) if all positions satisfy the relation; (false,nil) otherwise.
// Time: O(nnz(a) + nnz(b)). Space: O(nnz(a)).
//
// Policy:
//   - a and b must be non-nil, finalized and of identical shape.
//   - rtol, atol are treated as |rtol|, |atol| (negative values are normalized).
//   - NaN or ±Inf tolerances are rejected with ErrNaNInf.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if isNonFinite(rtol) || isNonFinite(atol) {
		return false, fmt.Errorf("AllClose: %w", ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	if a == nil || b == nil {
		return false, fmt.Errorf("AllClose: %w", ErrNilMatrix)
	}
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return false, fmt.Errorf("AllClose: %dx%d vs %dx%d: %w",
			a.Rows(), a.Cols(), b.Rows(), b.Cols(), ErrDimensionMismatch)
	}

	left := make(map[index]float64, a.NNZ())
	if err := a.Do(func(i, j int, v float64) bool {
		left[index{i, j}] = v

		return true
	}); err != nil {
		return false, fmt.Errorf("AllClose: %w", err)
	}

	within := func(av, bv float64) bool {
		return math.Abs(av-bv) <= atol+rtol*math.Abs(bv)
	}
	ok := true
	if err := b.Do(func(i, j int, bv float64) bool {
		k := index{i, j}
		av := left[k]
		delete(left, k)
		ok = within(av, bv)

		return ok
	}); err != nil {
		return false, fmt.Errorf("AllClose: %w", err)
	}
	if !ok {
		return false, nil
	}
	for _, av := range left {
		if !within(av, 0) {
			return false, nil
		}
	}

	return true, nil
}
