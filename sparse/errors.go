// SPDX-License-Identifier: MIT
// Package sparse: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the sparse
// package. Every backend MUST return these sentinels (wrapped with call-site
// context via %w) and tests MUST check them via errors.Is. No operation panics
// on user-triggered error conditions; View.At is the single exception because
// it honours gonum's mat.Matrix contract.

package sparse

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "sparse: ..." for consistency and grep-ability.
// Call sites wrap with storeErrorf/storeErrorAt so the final text reads
// "CSR.Add(5,2): sparse: invalid index" while errors.Is still matches.
//
// ERROR PRIORITY (documented, enforced in tests):
// nil operand -> argument -> index -> NaN/Inf -> dimension mismatch
// -> pattern -> finalization state.

var (
	// ErrInvalidArgument reports a malformed argument: dimension selector not in {0,1},
	// unknown norm type or apply mode, negative size, unfinalized pattern,
	// repeated column in SetRow, or the same vector passed as input and output.
	ErrInvalidArgument = errors.New("sparse: invalid argument")

	// ErrDimensionMismatch indicates incompatible sizes between operands,
	// e.g. block length != m*n, Mult with len(x) != cols, AXPY on different shapes.
	ErrDimensionMismatch = errors.New("sparse: dimension mismatch")

	// ErrDivideByZero is returned by Divide(0).
	ErrDivideByZero = errors.New("sparse: division by zero")

	// ErrPatternMismatch signals a violated structural assumption: AXPY with
	// samePattern=true on differing layouts, or a strict store asked to grow.
	ErrPatternMismatch = errors.New("sparse: nonzero pattern mismatch")

	// ErrInvalidIndex indicates a row or column outside [0,rows)×[0,cols), or a
	// position outside the sparsity pattern of a strict store.
	ErrInvalidIndex = errors.New("sparse: invalid index")

	// ErrNaNInf signals a NaN or ±Inf value where the numeric policy requires finite values.
	ErrNaNInf = errors.New("sparse: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil Matrix operand was passed.
	ErrNilMatrix = errors.New("sparse: nil matrix")

	// ErrNotFinalized is returned by read-only whole-matrix operations while
	// staged entries are waiting for Apply.
	ErrNotFinalized = errors.New("sparse: staged entries pending, call Apply")

	// ErrViewOutstanding is returned by Init/Resize while a View obtained from Mat
	// has not been released.
	ErrViewOutstanding = errors.New("sparse: view outstanding")
)
