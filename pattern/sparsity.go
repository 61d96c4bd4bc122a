// SPDX-License-Identifier: MIT

// Package pattern describes, ahead of allocation, which (row, column) positions
// of a matrix may hold nonzero values.
//
// Purpose:
//   - Collect candidate positions cheaply while a mesh or graph is traversed (Insert/InsertCells).
//   - Freeze them into a canonical per-row sorted, duplicate-free list (Apply).
//   - Hand the frozen pattern to sparse.Matrix.Init, which materialises the positions.
//
// Lifecycle:
//   - NewSparsity → Insert* (any order, duplicates allowed) → Apply → read-only queries.
//   - Apply is idempotent; inserting after Apply fails with ErrFinalized.
//
// Complexity quicksheet:
//   - Insert: O(m*n) appends; Apply: O(Σ k log k) over row buckets; RowColumns: O(k) copy.
package pattern

import (
	"fmt"
	"slices"
)

// Sparsity is a row-wise set of candidate column indices for an rows×cols matrix.
// Before Apply each row bucket is an unordered multiset; after Apply it is
// sorted ascending with duplicates removed.
type Sparsity struct {
	rows, cols int     // declared global dimensions
	cand       [][]int // per-row candidate columns
	nnz        int     // candidate count, valid once finalized
	finalized  bool    // set by Apply
}

// NewSparsity returns an empty rows×cols pattern.
// A 0×0 pattern is legal and describes an empty matrix.
//
// Errors:
//   - ErrInvalidDimensions when rows < 0 or cols < 0.
func NewSparsity(rows, cols int) (*Sparsity, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("NewSparsity(%d,%d): %w", rows, cols, ErrInvalidDimensions)
	}

	return &Sparsity{
		rows: rows,
		cols: cols,
		cand: make([][]int, rows),
	}, nil
}

// Dims returns the declared (rows, cols).
func (p *Sparsity) Dims() (rows, cols int) { return p.rows, p.cols }

// Finalized reports whether Apply has frozen the pattern.
func (p *Sparsity) Finalized() bool { return p.finalized }

// Insert marks every position of the Cartesian product rows × cols as a candidate.
// The call is all-or-nothing: indices are validated before any bucket grows.
//
// Errors:
//   - ErrFinalized after Apply.
//   - ErrOutOfRange for any index outside [0,rows)×[0,cols).
func (p *Sparsity) Insert(rows, cols []int) error {
	if p.finalized {
		return fmt.Errorf("Sparsity.Insert: %w", ErrFinalized)
	}
	if err := p.checkRows(rows); err != nil {
		return fmt.Errorf("Sparsity.Insert: %w", err)
	}
	if err := p.checkCols(cols); err != nil {
		return fmt.Errorf("Sparsity.Insert: %w", err)
	}
	for _, i := range rows {
		p.cand[i] = append(p.cand[i], cols...)
	}

	return nil
}

// InsertCells inserts, for every cell, the square block dofs×dofs.
// This is the coupling a finite-element cell induces between its degrees of
// freedom; a dof list is used both as row and column set, so the pattern must
// be square enough to hold every listed index in both axes.
func (p *Sparsity) InsertCells(cells [][]int) error {
	if p.finalized {
		return fmt.Errorf("Sparsity.InsertCells: %w", ErrFinalized)
	}
	for c, dofs := range cells {
		if err := p.checkRows(dofs); err != nil {
			return fmt.Errorf("Sparsity.InsertCells: cell %d: %w", c, err)
		}
		if err := p.checkCols(dofs); err != nil {
			return fmt.Errorf("Sparsity.InsertCells: cell %d: %w", c, err)
		}
	}
	for _, dofs := range cells {
		for _, i := range dofs {
			p.cand[i] = append(p.cand[i], dofs...)
		}
	}

	return nil
}

// InsertDiagonal adds (i,i) for every i < min(rows, cols).
func (p *Sparsity) InsertDiagonal() error {
	if p.finalized {
		return fmt.Errorf("Sparsity.InsertDiagonal: %w", ErrFinalized)
	}
	n := min(p.rows, p.cols)
	for i := 0; i < n; i++ {
		p.cand[i] = append(p.cand[i], i)
	}

	return nil
}

// Apply sorts and deduplicates every row bucket and freezes the pattern.
// Calling Apply on a finalized pattern is a no-op.
func (p *Sparsity) Apply() {
	if p.finalized {
		return
	}
	p.nnz = 0
	for i, row := range p.cand {
		slices.Sort(row)
		row = slices.Compact(row)
		p.cand[i] = slices.Clip(row)
		p.nnz += len(row)
	}
	p.finalized = true
}

// RowColumns returns a copy of the sorted candidate columns of row.
// It returns nil for an out-of-range row or an unfinalized pattern; callers that
// need to distinguish those cases use Finalized and Dims first.
func (p *Sparsity) RowColumns(row int) []int {
	if !p.finalized || row < 0 || row >= p.rows {
		return nil
	}

	return slices.Clone(p.cand[row])
}

// NumNonzeros returns the number of distinct candidate positions (0 before Apply).
func (p *Sparsity) NumNonzeros() int { return p.nnz }

// NumNonzerosPerRow returns the candidate count of every row.
//
// Errors:
//   - ErrNotFinalized before Apply.
func (p *Sparsity) NumNonzerosPerRow() ([]int, error) {
	if !p.finalized {
		return nil, fmt.Errorf("Sparsity.NumNonzerosPerRow: %w", ErrNotFinalized)
	}
	out := make([]int, p.rows)
	for i, row := range p.cand {
		out[i] = len(row)
	}

	return out, nil
}

// String returns a one-line summary (not a dump of the positions).
func (p *Sparsity) String() string {
	if !p.finalized {
		return fmt.Sprintf("Sparsity(%dx%d, open)", p.rows, p.cols)
	}

	return fmt.Sprintf("Sparsity(%dx%d, nnz=%d)", p.rows, p.cols, p.nnz)
}

func (p *Sparsity) checkRows(rows []int) error {
	for _, i := range rows {
		if i < 0 || i >= p.rows {
			return fmt.Errorf("row %d: %w", i, ErrOutOfRange)
		}
	}

	return nil
}

func (p *Sparsity) checkCols(cols []int) error {
	for _, j := range cols {
		if j < 0 || j >= p.cols {
			return fmt.Errorf("col %d: %w", j, ErrOutOfRange)
		}
	}

	return nil
}
