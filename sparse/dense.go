// SPDX-License-Identifier: MIT

// Package sparse - Dense storage (row-major) with a structural mask.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Track which cells are "stored" with a parallel mask so NNZ, GetRow and
//     strict-pattern checks keep the same observable semantics as CSR/CSC.
//   - Serve as the reference engine for small systems and for cross-checking
//     the compressed engines in tests.
//
// Invariants:
//   - len(data) == len(mask) == rows*cols.
//   - data[k] == 0 whenever mask[k] is false, so whole-buffer kernels (mulVec,
//     Frobenius, Scal) need no mask test.
//
// Complexity quicksheet:
//   - reset: O(r*c) zero-init; slot: O(1); merge: O(s); dropRow: O(c); mulVec: O(r*c).
package sparse

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/blas/blas64"
)

// Dense is a Matrix backed by a full row-major buffer. Every position is
// addressable without restructuring, but only masked positions count as stored.
type Dense struct {
	store
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates a rows×cols Dense store with empty structure.
// A 0×0 store is legal (the "constructed empty" state).
//
// Errors:
//   - ErrInvalidArgument when rows < 0 or cols < 0.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int, opts ...Option) (*Dense, error) {
	if err := validateShape(rows, cols); err != nil {
		return nil, fmt.Errorf("NewDense(%d,%d): %w", rows, cols, err)
	}

	return &Dense{store: newStore(newDenseEngine(rows, cols), opts)}, nil
}

// Copy returns an independent deep clone (new buffers, same options).
func (m *Dense) Copy() Matrix {
	return &Dense{store: m.store.clone()}
}

// denseEngine is the row-major engine behind Dense.
type denseEngine struct {
	r, c  int       // row and column counts
	data  []float64 // contiguous row-major storage (len == r*c)
	mask  []bool    // stored-position flags (len == r*c)
	count int       // number of true entries in mask
}

var _ engine = (*denseEngine)(nil)

func newDenseEngine(rows, cols int) *denseEngine {
	d := &denseEngine{}
	d.reset(rows, cols)

	return d
}

func (d *denseEngine) kind() string { return KindDense }

func (d *denseEngine) dims() (rows, cols int) { return d.r, d.c }

func (d *denseEngine) reset(rows, cols int) {
	d.r, d.c = rows, cols
	// make() zero-fills deterministically.
	d.data = make([]float64, rows*cols)
	d.mask = make([]bool, rows*cols)
	d.count = 0
}

// slot returns the row-major offset i*c + j; it is a stored slot only when masked.
func (d *denseEngine) slot(i, j int) (int, bool) {
	off := i*d.c + j

	return off, d.mask[off]
}

func (d *denseEngine) values() []float64 { return d.data }

func (d *denseEngine) nnz() int { return d.count }

func (d *denseEngine) merge(staged []entry) {
	for _, e := range staged {
		off := e.row*d.c + e.col
		if !d.mask[off] {
			d.mask[off] = true
			d.count++
		}
		d.data[off] = e.val
	}
}

func (d *denseEngine) dropRow(i int) {
	base := i * d.c
	for j := 0; j < d.c; j++ {
		if d.mask[base+j] {
			d.mask[base+j] = false
			d.count--
		}
		d.data[base+j] = 0
	}
}

func (d *denseEngine) rowSlots(i int, f func(j, s int)) {
	base := i * d.c
	for j := 0; j < d.c; j++ {
		if d.mask[base+j] {
			f(j, base+j)
		}
	}
}

func (d *denseEngine) each(f func(i, j, s int) bool) {
	var i, j, base int
	for i = 0; i < d.r; i++ { // iterate rows deterministically
		base = i * d.c
		for j = 0; j < d.c; j++ {
			if d.mask[base+j] && !f(i, j, base+j) {
				return // early exit requested by caller
			}
		}
	}
}

func (d *denseEngine) mulVec(y, x []float64, trans bool) {
	var i, j, base int
	var acc, xv float64
	if !trans {
		for i = 0; i < d.r; i++ {
			acc = 0
			base = i * d.c
			for j = 0; j < d.c; j++ {
				xv = x[j]
				if xv != 0 { // skip zero multiplications
					acc += d.data[base+j] * xv
				}
			}
			y[i] += acc
		}

		return
	}
	for i = 0; i < d.r; i++ {
		xv = x[i]
		if xv == 0 {
			continue
		}
		base = i * d.c
		for j = 0; j < d.c; j++ {
			y[j] += d.data[base+j] * xv
		}
	}
}

// axpySame works on the whole buffers once both masks agree. Off-structure
// cells are zero on both sides, so one Axpy over r*c values is exact.
func (d *denseEngine) axpySame(a float64, other engine) bool {
	o, ok := other.(*denseEngine)
	if !ok || o.r != d.r || o.c != d.c || o.count != d.count || !slices.Equal(o.mask, d.mask) {
		return false
	}
	if n := len(d.data); n > 0 {
		blas64.Axpy(a,
			blas64.Vector{N: n, Inc: 1, Data: o.data},
			blas64.Vector{N: n, Inc: 1, Data: d.data})
	}

	return true
}

func (d *denseEngine) clone() engine {
	cp := &denseEngine{
		r:     d.r,
		c:     d.c,
		data:  make([]float64, len(d.data)),
		mask:  make([]bool, len(d.mask)),
		count: d.count,
	}
	copy(cp.data, d.data)
	copy(cp.mask, d.mask)

	return cp
}
