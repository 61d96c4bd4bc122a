// SPDX-License-Identifier: MIT

// Package sparse: capability set, collaborator contracts and enumerations.
// This file contains ONLY types: the Matrix interface every backend
// implements, the Pattern and Vector interfaces the stores consume, and the
// ApplyMode / NormType enumerations. Errors and options live in errors.go and
// options.go.
package sparse

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Backend names reported by Matrix.Kind.
const (
	KindCSR   = "CSR"
	KindCSC   = "CSC"
	KindDense = "Dense"
)

// Pattern is the sparsity-pattern collaborator consumed once by Init.
// *pattern.Sparsity satisfies it.
type Pattern interface {
	// Dims returns the declared global (rows, cols).
	Dims() (rows, cols int)

	// RowColumns returns the candidate columns of row, ascending and unique.
	RowColumns(row int) []int

	// NumNonzeros returns the number of candidate positions.
	NumNonzeros() int

	// Finalized reports whether the pattern is frozen.
	Finalized() bool
}

// Vector is the vector collaborator read and written by Mult, TransposeMult
// and SetDiagonal. The method set matches gonum's mat.Vector / mat.MutableVec,
// so *mat.VecDense satisfies it and takes a raw-slice fast path.
type Vector interface {
	Len() int
	AtVec(i int) float64
	SetVec(i int, v float64)
}

// Matrix is the backend-agnostic sparse matrix store.
//
// Contract highlights:
//   - Global indices are zero-based; blocks are row-major with len == len(rows)*len(cols).
//   - Set/Add write straight into existing structure; new positions are staged
//     and merged by Apply (or rejected under WithStrictPattern).
//   - Get always observes the latest values, staged or not.
//   - Norm, Mult, TransposeMult, Do and Mat require canonical form and return
//     ErrNotFinalized while staged entries exist.
//   - Implementations are not safe for concurrent mutation; independent
//     instances share nothing.
type Matrix interface {
	// Kind names the storage engine ("CSR", "CSC", "Dense").
	Kind() string

	// Init allocates storage sized to p and materialises p's candidate
	// positions as structural zeros, discarding prior content.
	Init(p Pattern) error

	// Resize discards everything and becomes an all-zero rows×cols matrix
	// with empty structure.
	Resize(rows, cols int) error

	// Size returns rows for dim 0 and cols for dim 1.
	Size(dim int) (int, error)
	Rows() int
	Cols() int

	// Empty reports Size(0) == 0.
	Empty() bool

	// LocalRange returns the owned index range along dim; [0, Size(dim)) here.
	LocalRange(dim int) (lo, hi int, err error)

	// NNZ counts explicitly stored positions, staged ones included.
	NNZ() int

	// Copy returns an independent deep clone of the same dynamic type.
	Copy() Matrix

	// NewVector returns a zero vector compatible with y = A x: dim 0 gives
	// length Rows (a y), dim 1 gives length Cols (an x).
	NewVector(dim int) (*mat.VecDense, error)

	// Get copies values at rows × cols into block.
	Get(block []float64, rows, cols []int) error
	// Set overwrites values at rows × cols.
	Set(block []float64, rows, cols []int) error
	// Add accumulates values into rows × cols.
	Add(block []float64, rows, cols []int) error
	// SetLocal is Set addressed by process-local indices.
	SetLocal(block []float64, rows, cols []int) error
	// AddLocal is Add addressed by process-local indices.
	AddLocal(block []float64, rows, cols []int) error

	// Apply finalizes staged entries into canonical form.
	Apply(mode ApplyMode) error

	// Zero sets every stored value to 0 while keeping the structure.
	Zero()
	// ZeroRows sets the listed rows to 0 while keeping their structure.
	ZeroRows(rows []int) error
	// ZeroLocal is ZeroRows addressed by process-local indices.
	ZeroLocal(rows []int) error
	// Ident turns the listed rows into identity rows.
	Ident(rows []int) error
	// IdentLocal is Ident addressed by process-local indices.
	IdentLocal(rows []int) error

	// GetRow returns the stored (column, value) pairs of row, columns ascending.
	GetRow(row int) (cols []int, vals []float64, err error)
	// SetRow replaces the whole content of row.
	SetRow(row int, cols []int, vals []float64) error

	// Scale multiplies every stored value by a.
	Scale(a float64) error
	// Divide multiplies every stored value by 1/a.
	Divide(a float64) error
	// AXPY computes self += a*A.
	AXPY(a float64, A Matrix, samePattern bool) error
	// SetDiagonal writes x onto the main diagonal.
	SetDiagonal(x Vector) error
	// Norm returns the requested matrix norm.
	Norm(t NormType) (float64, error)
	// Mult computes y = A x.
	Mult(x, y Vector) error
	// TransposeMult computes y = Aᵀ x.
	TransposeMult(x, y Vector) error

	// Do visits stored entries in canonical order until f returns false.
	Do(f func(i, j int, v float64) bool) error

	// Mat returns a read-only zero-copy view of the canonical storage.
	Mat() (*View, error)

	fmt.Stringer
}

// ApplyMode is the finalization hint passed to Apply.
type ApplyMode string

// Apply modes. All of them merge staged entries; the mode records the intent
// of the preceding assembly phase for diagnostics.
const (
	ApplyAdd    ApplyMode = "add"
	ApplyInsert ApplyMode = "insert"
	ApplyFlush  ApplyMode = "flush"
)

// ParseApplyMode converts s into an ApplyMode.
//
// Errors:
//   - ErrInvalidArgument for an unknown mode.
func ParseApplyMode(s string) (ApplyMode, error) {
	m := ApplyMode(s)
	if err := m.validate(); err != nil {
		return "", err
	}

	return m, nil
}

func (m ApplyMode) validate() error {
	switch m {
	case ApplyAdd, ApplyInsert, ApplyFlush:
		return nil
	default:
		return fmt.Errorf("apply mode %q: %w", string(m), ErrInvalidArgument)
	}
}

// NormType selects the matrix norm computed by Norm.
type NormType string

// Supported norms.
const (
	NormL1        NormType = "l1"        // max absolute column sum
	NormLinf      NormType = "linf"      // max absolute row sum
	NormFrobenius NormType = "frobenius" // sqrt of the sum of squares
)

// ParseNormType converts s into a NormType.
//
// Errors:
//   - ErrInvalidArgument for an unknown norm.
func ParseNormType(s string) (NormType, error) {
	t := NormType(s)
	switch t {
	case NormL1, NormLinf, NormFrobenius:
		return t, nil
	default:
		return "", fmt.Errorf("norm type %q: %w", s, ErrInvalidArgument)
	}
}

// index is a (row, col) key for staged entries. Using ints keeps the key
// compact and hash-friendly.
type index struct {
	row int
	col int
}

// entry is one (row, col, value) triplet handed to engine.merge.
type entry struct {
	row int
	col int
	val float64
}
