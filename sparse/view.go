// SPDX-License-Identifier: MIT

package sparse

import (
	"gonum.org/v1/gonum/mat"
)

// View is a read-only gonum view over a finalized store. It satisfies
// mat.Matrix, so any gonum routine that accepts a matrix can consume it
// (mat.DenseCopyOf, mat.Formatted, VecDense.MulVec, ...).
//
// While a View is held the owning store refuses Init and Resize with
// ErrViewOutstanding. Value writes through Set/Add stay allowed and are
// visible through the View. Call Release when done.
type View struct {
	s        *store
	released bool
}

var (
	_ mat.Matrix         = (*View)(nil)
	_ mat.NonZeroDoer    = (*View)(nil)
	_ mat.RowNonZeroDoer = (*View)(nil)
)

// Mat returns a View over the current canonical storage.
//
// Errors:
//   - ErrNotFinalized while entries are staged.
func (s *store) Mat() (*View, error) {
	if err := s.finalized(opMat); err != nil {
		return nil, err
	}
	s.views++

	return &View{s: s}, nil
}

// Dims returns the shape of the underlying store.
func (v *View) Dims() (r, c int) { return v.s.eng.dims() }

// At returns the stored value at (i,j), or 0 when the position is not stored.
// Panics with mat.ErrIndexOutOfRange outside the shape, as gonum matrices do.
func (v *View) At(i, j int) float64 {
	r, c := v.s.eng.dims()
	if i < 0 || i >= r || j < 0 || j >= c {
		panic(mat.ErrIndexOutOfRange)
	}
	if sl, ok := v.s.eng.slot(i, j); ok {
		return v.s.eng.values()[sl]
	}

	return v.s.staged[index{i, j}]
}

// T returns the implicit transpose.
func (v *View) T() mat.Matrix { return mat.Transpose{Matrix: v} }

// DoNonZero calls fn for each stored non-zero element, in canonical order.
func (v *View) DoNonZero(fn func(i, j int, x float64)) {
	vals := v.s.eng.values()
	v.s.eng.each(func(i, j, sl int) bool {
		if x := vals[sl]; x != 0 {
			fn(i, j, x)
		}

		return true
	})
}

// DoRowNonZero calls fn for each stored non-zero element of row i.
// Panics with mat.ErrRowAccess for a row outside the shape.
func (v *View) DoRowNonZero(i int, fn func(i, j int, x float64)) {
	if i < 0 || i >= v.s.Rows() {
		panic(mat.ErrRowAccess)
	}
	vals := v.s.eng.values()
	v.s.eng.rowSlots(i, func(j, sl int) {
		if x := vals[sl]; x != 0 {
			fn(i, j, x)
		}
	})
}

// Release ends the View's hold on its store. Further calls are no-ops.
func (v *View) Release() {
	if v.released {
		return
	}
	v.released = true
	v.s.views--
}
