// SPDX-License-Identifier: MIT

// Package sparse - compressed storage shared by CSR and CSC.
//
// Purpose:
//   - One implementation of compressed sparse storage parameterised by its
//     major axis: rows for CSR, columns for CSC.
//   - ptr has outer()+1 entries; the stored positions of outer line o live in
//     idx[ptr[o]:ptr[o+1]] (inner indices, strictly ascending) with values in
//     the same range of val.
//
// Complexity quicksheet:
//   - slot: O(log k) binary search inside one line.
//   - merge: O(nnz + s log s) single rebuild pass for s staged entries.
//   - dropRow: O(k) splice for CSR, O(nnz) filter for CSC.
//   - mulVec: O(nnz).
package sparse

import (
	"slices"
	"sort"

	"gonum.org/v1/gonum/blas/blas64"
)

// compressed is a CSR (colMajor=false) or CSC (colMajor=true) engine.
type compressed struct {
	rows, cols int
	colMajor   bool
	ptr        []int     // line offsets, len == outer()+1
	idx        []int     // inner indices, ascending per line
	val        []float64 // values parallel to idx
}

var _ engine = (*compressed)(nil)

func newCompressed(rows, cols int, colMajor bool) *compressed {
	c := &compressed{colMajor: colMajor}
	c.reset(rows, cols)

	return c
}

func (c *compressed) kind() string {
	if c.colMajor {
		return KindCSC
	}

	return KindCSR
}

func (c *compressed) dims() (rows, cols int) { return c.rows, c.cols }

// outer returns the number of compressed lines.
func (c *compressed) outer() int {
	if c.colMajor {
		return c.cols
	}

	return c.rows
}

// toAxes maps matrix coordinates to (outer line, inner index).
func (c *compressed) toAxes(i, j int) (o, in int) {
	if c.colMajor {
		return j, i
	}

	return i, j
}

// fromAxes maps (outer line, inner index) back to matrix coordinates.
func (c *compressed) fromAxes(o, in int) (i, j int) {
	if c.colMajor {
		return in, o
	}

	return o, in
}

func (c *compressed) reset(rows, cols int) {
	c.rows, c.cols = rows, cols
	c.ptr = make([]int, c.outer()+1)
	c.idx = nil
	c.val = nil
}

func (c *compressed) slot(i, j int) (int, bool) {
	o, in := c.toAxes(i, j)
	lo, hi := c.ptr[o], c.ptr[o+1]
	k := lo + sort.SearchInts(c.idx[lo:hi], in)
	if k < hi && c.idx[k] == in {
		return k, true
	}

	return 0, false
}

func (c *compressed) values() []float64 { return c.val }

func (c *compressed) nnz() int { return len(c.idx) }

// merge rebuilds ptr/idx/val in one pass.
// Implementation:
//   - Stage 1: bucket staged entries by outer line (counting sort on lines).
//   - Stage 2: sort each bucket by inner index (stable, so later duplicates win).
//   - Stage 3: two-way merge of every existing line with its bucket.
func (c *compressed) merge(staged []entry) {
	if len(staged) == 0 {
		return
	}
	n := c.outer()

	// Stage 1: counting sort of staged entries by outer line.
	start := make([]int, n+1)
	for _, e := range staged {
		o, _ := c.toAxes(e.row, e.col)
		start[o+1]++
	}
	for o := 0; o < n; o++ {
		start[o+1] += start[o]
	}
	bucket := make([]entry, len(staged))
	fill := slices.Clone(start[:n])
	for _, e := range staged {
		o, _ := c.toAxes(e.row, e.col)
		bucket[fill[o]] = e
		fill[o]++
	}

	ptr := make([]int, n+1)
	idx := make([]int, 0, len(c.idx)+len(staged))
	val := make([]float64, 0, len(c.idx)+len(staged))
	for o := 0; o < n; o++ {
		// Stage 2: order this line's staged entries by inner index.
		b := bucket[start[o]:start[o+1]]
		sort.SliceStable(b, func(p, q int) bool { return c.inner(b[p]) < c.inner(b[q]) })

		// Stage 3: merge with the existing line.
		k, end := c.ptr[o], c.ptr[o+1]
		for t := 0; t < len(b); t++ {
			in := c.inner(b[t])
			if t+1 < len(b) && c.inner(b[t+1]) == in {
				continue // a later duplicate carries the value
			}
			for k < end && c.idx[k] < in {
				idx = append(idx, c.idx[k])
				val = append(val, c.val[k])
				k++
			}
			if k < end && c.idx[k] == in {
				k++ // overwritten by the staged value
			}
			idx = append(idx, in)
			val = append(val, b[t].val)
		}
		idx = append(idx, c.idx[k:end]...)
		val = append(val, c.val[k:end]...)
		ptr[o+1] = len(idx)
	}
	c.ptr, c.idx, c.val = ptr, idx, val
}

// inner returns the inner-axis coordinate of e.
func (c *compressed) inner(e entry) int {
	if c.colMajor {
		return e.row
	}

	return e.col
}

func (c *compressed) dropRow(i int) {
	if !c.colMajor {
		lo, hi := c.ptr[i], c.ptr[i+1]
		if lo == hi {
			return
		}
		c.idx = slices.Delete(c.idx, lo, hi)
		c.val = slices.Delete(c.val, lo, hi)
		for o := i + 1; o < len(c.ptr); o++ {
			c.ptr[o] -= hi - lo
		}

		return
	}

	// CSC: filter row i out of every column in place.
	w := 0
	for o := 0; o < c.cols; o++ {
		lo, hi := c.ptr[o], c.ptr[o+1]
		c.ptr[o] = w
		for k := lo; k < hi; k++ {
			if c.idx[k] == i {
				continue
			}
			c.idx[w] = c.idx[k]
			c.val[w] = c.val[k]
			w++
		}
	}
	c.ptr[c.cols] = w
	c.idx = c.idx[:w]
	c.val = c.val[:w]
}

func (c *compressed) rowSlots(i int, f func(j, s int)) {
	if !c.colMajor {
		for k := c.ptr[i]; k < c.ptr[i+1]; k++ {
			f(c.idx[k], k)
		}

		return
	}
	for j := 0; j < c.cols; j++ {
		if s, ok := c.slot(i, j); ok {
			f(j, s)
		}
	}
}

func (c *compressed) each(f func(i, j, s int) bool) {
	n := c.outer()
	for o := 0; o < n; o++ {
		for k := c.ptr[o]; k < c.ptr[o+1]; k++ {
			i, j := c.fromAxes(o, c.idx[k])
			if !f(i, j, k) {
				return
			}
		}
	}
}

func (c *compressed) mulVec(y, x []float64, trans bool) {
	n := c.outer()
	// Row-oriented products accumulate into one scalar per line; the other
	// two combinations scatter.
	gather := c.colMajor == trans
	for o := 0; o < n; o++ {
		lo, hi := c.ptr[o], c.ptr[o+1]
		if gather {
			acc := 0.0
			for k := lo; k < hi; k++ {
				acc += c.val[k] * x[c.idx[k]]
			}
			y[o] += acc

			continue
		}
		xo := x[o]
		if xo == 0 {
			continue
		}
		for k := lo; k < hi; k++ {
			y[c.idx[k]] += c.val[k] * xo
		}
	}
}

func (c *compressed) axpySame(a float64, other engine) bool {
	o, ok := other.(*compressed)
	if !ok || o.colMajor != c.colMajor || o.rows != c.rows || o.cols != c.cols {
		return false
	}
	if len(o.idx) != len(c.idx) || !slices.Equal(o.ptr, c.ptr) {
		return false
	}
	if n := len(c.val); n > 0 {
		blas64.Axpy(a,
			blas64.Vector{N: n, Inc: 1, Data: o.val},
			blas64.Vector{N: n, Inc: 1, Data: c.val})
	}

	return true
}

func (c *compressed) clone() engine {
	return &compressed{
		rows:     c.rows,
		cols:     c.cols,
		colMajor: c.colMajor,
		ptr:      slices.Clone(c.ptr),
		idx:      slices.Clone(c.idx),
		val:      slices.Clone(c.val),
	}
}
