// SPDX-License-Identifier: MIT

// Package sparse - row-level structural edits used to impose boundary conditions.
//
// Purpose:
//   - Ident: turn rows into identity rows (Dirichlet degrees of freedom).
//   - GetRow/SetRow: read or replace one row as parallel (column, value) slices.
//
// Behavior highlights:
//   - Ident and SetRow leave the store in canonical form (they flush staging).
//   - Ident may insert a missing diagonal even under WithStrictPattern.
package sparse

import (
	"fmt"
	"log/slog"
	"slices"
	"sort"
)

// Ident zeroes every listed row and stores 1.0 on its diagonal, inserting the
// diagonal position when it is absent. A singular-looking result is never an
// error: identity rows are well defined.
//
// Errors:
//   - ErrInvalidIndex for a row outside [0, Rows()) or without a diagonal
//     (row >= Cols()); nothing is changed then.
//
// Complexity:
//   - CSR/Dense O(Σ k) plus one merge; CSC O(m * c log k).
func (s *store) Ident(rows []int) error {
	kind := s.Kind()
	if err := validateIndices("row", rows, s.Rows()); err != nil {
		return storeErrorf(kind, opIdent, err)
	}
	if err := validateIndices("diagonal", rows, s.Cols()); err != nil {
		return storeErrorf(kind, opIdent, err)
	}

	s.zeroRows(rows)
	vals := s.eng.values()
	for _, i := range rows {
		if sl, ok := s.eng.slot(i, i); ok {
			vals[sl] = 1
		} else {
			s.staged[index{i, i}] = 1
		}
	}
	merged := s.flush()
	s.log().Debug("sparse: ident",
		slog.String("kind", kind),
		slog.Int("rows", len(rows)),
		slog.Int("inserted", merged))

	return nil
}

// IdentLocal is Ident with process-local indices.
func (s *store) IdentLocal(rows []int) error { return s.Ident(s.localToGlobal(rows)) }

// GetRow returns the stored (column, value) pairs of row with columns
// ascending. Staged entries of the row are included. The slices are fresh
// copies owned by the caller.
//
// Errors:
//   - ErrInvalidIndex for a row outside [0, Rows()).
func (s *store) GetRow(row int) ([]int, []float64, error) {
	if row < 0 || row >= s.Rows() {
		return nil, nil, storeErrorf(s.Kind(), opGetRow,
			fmt.Errorf("row %d not in [0,%d): %w", row, s.Rows(), ErrInvalidIndex))
	}

	vals := s.eng.values()
	var cols []int
	var out []float64
	s.eng.rowSlots(row, func(j, sl int) {
		cols = append(cols, j)
		out = append(out, vals[sl])
	})
	n := len(cols)
	for k, v := range s.staged {
		if k.row == row {
			cols = append(cols, k.col)
			out = append(out, v)
		}
	}
	if len(cols) > n {
		sort.Sort(rowPairs{cols: cols, vals: out})
	}

	return cols, out, nil
}

// SetRow replaces the entire content of row: afterwards exactly the given
// columns are stored, with the given values. Columns may arrive unsorted.
// Under WithStrictPattern every column must already be stored in the row.
//
// Errors:
//   - ErrInvalidIndex (row/col range, strict pattern), ErrDimensionMismatch
//     (len(cols) != len(vals)), ErrInvalidArgument (repeated column), ErrNaNInf.
func (s *store) SetRow(row int, cols []int, vals []float64) error {
	kind := s.Kind()
	if row < 0 || row >= s.Rows() {
		return storeErrorf(kind, opSetRow,
			fmt.Errorf("row %d not in [0,%d): %w", row, s.Rows(), ErrInvalidIndex))
	}
	if err := validateIndices("col", cols, s.Cols()); err != nil {
		return storeErrorf(kind, opSetRow, err)
	}
	if len(cols) != len(vals) {
		return storeErrorf(kind, opSetRow,
			fmt.Errorf("%d columns, %d values: %w", len(cols), len(vals), ErrDimensionMismatch))
	}
	sorted := slices.Clone(cols)
	slices.Sort(sorted)
	for k := 1; k < len(sorted); k++ {
		if sorted[k] == sorted[k-1] {
			return storeErrorAt(kind, opSetRow, row, sorted[k],
				fmt.Errorf("repeated column: %w", ErrInvalidArgument))
		}
	}
	if s.opts.validateNaNInf {
		if k := validateFinite(vals); k >= 0 {
			return storeErrorAt(kind, opSetRow, row, cols[k], ErrNaNInf)
		}
	}
	if s.opts.strictPattern {
		for _, j := range cols {
			if _, ok := s.eng.slot(row, j); !ok {
				return storeErrorAt(kind, opSetRow, row, j,
					fmt.Errorf("outside sparsity pattern: %w", ErrInvalidIndex))
			}
		}
	}

	s.flush()
	s.eng.dropRow(row)
	entries := make([]entry, len(cols))
	for k, j := range cols {
		entries[k] = entry{row: row, col: j, val: vals[k]}
	}
	s.eng.merge(entries)

	return nil
}

// rowPairs sorts parallel (column, value) slices by column.
type rowPairs struct {
	cols []int
	vals []float64
}

func (p rowPairs) Len() int           { return len(p.cols) }
func (p rowPairs) Less(a, b int) bool { return p.cols[a] < p.cols[b] }
func (p rowPairs) Swap(a, b int) {
	p.cols[a], p.cols[b] = p.cols[b], p.cols[a]
	p.vals[a], p.vals[b] = p.vals[b], p.vals[a]
}
