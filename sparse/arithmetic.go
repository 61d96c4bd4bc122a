// SPDX-License-Identifier: MIT

// Package sparse - arithmetic and action kernels.
//
// Purpose:
//   - Scale/Divide and AXPY on stored values (gonum blas64 Scal/Axpy).
//   - SetDiagonal, Norm (l1, linf, frobenius) and y = A x / y = Aᵀ x.
//
// Determinism & Policy:
//   - Every kernel walks the engine in canonical order; results are reproducible.
//   - Norm, Mult and TransposeMult need canonical form (ErrNotFinalized otherwise).
//   - *mat.VecDense operands with unit stride are read and written through
//     their raw slices; any other Vector goes through AtVec/SetVec.
package sparse

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Scale multiplies every stored and staged value by a. Structure is unchanged.
//
// Errors:
//   - ErrNaNInf when a is not finite and the numeric policy is on.
func (s *store) Scale(a float64) error {
	if s.opts.validateNaNInf && isNonFinite(a) {
		return storeErrorf(s.Kind(), opScale, ErrNaNInf)
	}
	s.scale(a)

	return nil
}

func (s *store) scale(a float64) {
	if vals := s.eng.values(); len(vals) > 0 {
		blas64.Scal(a, blas64.Vector{N: len(vals), Inc: 1, Data: vals})
	}
	for k, v := range s.staged {
		s.staged[k] = v * a
	}
}

// Divide multiplies every stored value by 1/a.
//
// Errors:
//   - ErrDivideByZero when a == 0; ErrNaNInf for a non-finite a under the policy.
func (s *store) Divide(a float64) error {
	if a == 0 {
		return storeErrorf(s.Kind(), opDivide, ErrDivideByZero)
	}
	if s.opts.validateNaNInf && isNonFinite(a) {
		return storeErrorf(s.Kind(), opDivide, ErrNaNInf)
	}
	s.scale(1 / a)

	return nil
}

// AXPY computes self += a*A entrywise.
// MAIN DESCRIPTION:
//   - samePattern=true: the caller asserts both operands share one layout.
//     In-package backends of the same kind with identical line pointers and
//     nnz are combined with one blas64.Axpy over the value buffers; inner
//     indices are trusted. When the layouts differ a dynamic store falls back
//     to the general merge and a strict store fails with ErrPatternMismatch.
//   - samePattern=false: A is walked with Do and merged into self; the result
//     structure is the union of both structures.
//
// Implementation:
//   - Stage 1: nil/shape/numeric checks; A must be finalized.
//   - Stage 2: aliasing shortcut (A is self) → scale by 1+a.
//   - Stage 3: fast path, or general merge.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf, ErrNotFinalized (A staged),
//     ErrPatternMismatch (a strict self would have to grow).
//
// Complexity:
//   - Fast path O(nnz); general path O(nnz(A) log k + nnz(self)).
func (s *store) AXPY(a float64, A Matrix, samePattern bool) error {
	kind := s.Kind()
	if A == nil {
		return storeErrorf(kind, opAXPY, ErrNilMatrix)
	}
	if A.Rows() != s.Rows() || A.Cols() != s.Cols() {
		return storeErrorf(kind, opAXPY, fmt.Errorf("%dx%d += a*%dx%d: %w",
			s.Rows(), s.Cols(), A.Rows(), A.Cols(), ErrDimensionMismatch))
	}
	if s.opts.validateNaNInf && isNonFinite(a) {
		return storeErrorf(kind, opAXPY, ErrNaNInf)
	}

	if src, ok := A.(interface{ storage() *store }); ok {
		o := src.storage()
		if err := o.finalized(opAXPY); err != nil {
			return storeErrorf(kind, opAXPY, err)
		}
		if o == s {
			s.scale(1 + a)

			return nil
		}
		if samePattern {
			s.flush()
			if s.eng.axpySame(a, o.eng) {
				return nil
			}
			if s.opts.strictPattern {
				return storeErrorf(kind, opAXPY, fmt.Errorf("%s vs %s layout: %w",
					kind, o.Kind(), ErrPatternMismatch))
			}
		}
	}

	// General path: gather a*A, validate against a strict structure, then merge.
	var add []entry
	err := A.Do(func(i, j int, v float64) bool {
		add = append(add, entry{row: i, col: j, val: a * v})

		return true
	})
	if err != nil {
		return storeErrorf(kind, opAXPY, err)
	}
	if s.opts.strictPattern {
		for _, e := range add {
			if _, ok := s.eng.slot(e.row, e.col); !ok {
				return storeErrorAt(kind, opAXPY, e.row, e.col, ErrPatternMismatch)
			}
		}
	}
	vals := s.eng.values()
	for _, e := range add {
		if sl, ok := s.eng.slot(e.row, e.col); ok {
			vals[sl] += e.val
		} else {
			s.staged[index{e.row, e.col}] += e.val
		}
	}
	s.flush()

	return nil
}

// SetDiagonal stores x[i] at (i,i) for i < min(Rows, Cols), inserting missing
// diagonal positions. Off-diagonal entries are untouched.
//
// Errors:
//   - ErrInvalidArgument (nil x), ErrDimensionMismatch (x.Len() != min(Rows, Cols)),
//     ErrNaNInf.
func (s *store) SetDiagonal(x Vector) error {
	kind := s.Kind()
	if x == nil {
		return storeErrorf(kind, opSetDiagonal, fmt.Errorf("nil vector: %w", ErrInvalidArgument))
	}
	n := min(s.Rows(), s.Cols())
	if x.Len() != n {
		return storeErrorf(kind, opSetDiagonal,
			fmt.Errorf("len(x)=%d, diagonal=%d: %w", x.Len(), n, ErrDimensionMismatch))
	}
	diag := readVector(x)
	if s.opts.validateNaNInf {
		if k := validateFinite(diag); k >= 0 {
			return storeErrorAt(kind, opSetDiagonal, k, k, ErrNaNInf)
		}
	}

	vals := s.eng.values()
	for i, v := range diag {
		if sl, ok := s.eng.slot(i, i); ok {
			vals[sl] = v
		} else {
			s.staged[index{i, i}] = v
		}
	}
	s.flush()

	return nil
}

// Norm returns the l1 (max absolute column sum), linf (max absolute row sum)
// or Frobenius norm. An empty matrix has norm 0.
//
// Errors:
//   - ErrInvalidArgument for an unknown norm type; ErrNotFinalized.
func (s *store) Norm(t NormType) (float64, error) {
	kind := s.Kind()
	if _, err := ParseNormType(string(t)); err != nil {
		return 0, storeErrorf(kind, opNorm, err)
	}
	if err := s.finalized(opNorm); err != nil {
		return 0, err
	}

	vals := s.eng.values()
	if t == NormFrobenius {
		if len(vals) == 0 {
			return 0, nil
		}

		return floats.Norm(vals, 2), nil
	}

	r, c := s.eng.dims()
	var sums []float64
	if t == NormL1 {
		sums = make([]float64, c)
	} else {
		sums = make([]float64, r)
	}
	s.eng.each(func(i, j, sl int) bool {
		if t == NormL1 {
			sums[j] += math.Abs(vals[sl])
		} else {
			sums[i] += math.Abs(vals[sl])
		}

		return true
	})
	if len(sums) == 0 {
		return 0, nil
	}

	return floats.Max(sums), nil
}

// Mult computes y = A x.
//
// Errors:
//   - ErrInvalidArgument (nil or aliased vectors), ErrDimensionMismatch
//     (x.Len() != Cols or y.Len() != Rows), ErrNotFinalized.
func (s *store) Mult(x, y Vector) error {
	return s.mult(opMult, x, y, false)
}

// TransposeMult computes y = Aᵀ x.
//
// Errors:
//   - as Mult, with x.Len() == Rows and y.Len() == Cols.
func (s *store) TransposeMult(x, y Vector) error {
	return s.mult(opTransposeMult, x, y, true)
}

func (s *store) mult(method string, x, y Vector, trans bool) error {
	kind := s.Kind()
	if x == nil || y == nil {
		return storeErrorf(kind, method, fmt.Errorf("nil vector: %w", ErrInvalidArgument))
	}
	nx, ny := s.Cols(), s.Rows()
	if trans {
		nx, ny = ny, nx
	}
	if x.Len() != nx || y.Len() != ny {
		return storeErrorf(kind, method, fmt.Errorf("len(x)=%d want %d, len(y)=%d want %d: %w",
			x.Len(), nx, y.Len(), ny, ErrDimensionMismatch))
	}
	if sameVector(x, y) {
		return storeErrorf(kind, method, fmt.Errorf("x and y share storage: %w", ErrInvalidArgument))
	}
	if err := s.finalized(method); err != nil {
		return err
	}

	out := make([]float64, ny)
	s.eng.mulVec(out, readVector(x), trans)
	writeVector(y, out)

	return nil
}

// Do visits stored entries in canonical order (row-major for CSR and Dense,
// column-major for CSC) until f returns false. Explicit zeros are visited.
func (s *store) Do(f func(i, j int, v float64) bool) error {
	if err := s.finalized(opDo); err != nil {
		return err
	}
	vals := s.eng.values()
	s.eng.each(func(i, j, sl int) bool { return f(i, j, vals[sl]) })

	return nil
}

// readVector returns x's elements as a contiguous slice. A unit-stride
// *mat.VecDense is returned without copying; callers must not write to it.
func readVector(x Vector) []float64 {
	if vd, ok := x.(*mat.VecDense); ok {
		raw := vd.RawVector()
		if raw.Inc == 1 {
			return raw.Data[:raw.N]
		}
	}
	out := make([]float64, x.Len())
	for i := range out {
		out[i] = x.AtVec(i)
	}

	return out
}

// writeVector stores src into y.
func writeVector(y Vector, src []float64) {
	if vd, ok := y.(*mat.VecDense); ok {
		raw := vd.RawVector()
		if raw.Inc == 1 {
			copy(raw.Data[:raw.N], src)

			return
		}
	}
	for i, v := range src {
		y.SetVec(i, v)
	}
}

// sameVector reports whether x and y are the same *mat.VecDense or two
// VecDense views starting on the same element. Other Vector types cannot be
// compared safely (they may be non-comparable values) and are trusted.
func sameVector(x, y Vector) bool {
	xv, okX := x.(*mat.VecDense)
	yv, okY := y.(*mat.VecDense)
	if !okX || !okY {
		return false
	}
	if xv == yv {
		return true
	}
	xr, yr := xv.RawVector(), yv.RawVector()

	return xr.N > 0 && yr.N > 0 && &xr.Data[0] == &yr.Data[0]
}
