// Package pattern_test verifies construction, finalization and queries of Sparsity.
package pattern_test

import (
	"testing"

	"github.com/katalvlaran/lvsparse/pattern"
	"github.com/stretchr/testify/require"
)

// TestNewSparsityDimensions checks shape validation, including the legal empty pattern.
func TestNewSparsityDimensions(t *testing.T) {
	_, err := pattern.NewSparsity(-1, 3)
	require.ErrorIs(t, err, pattern.ErrInvalidDimensions)

	_, err = pattern.NewSparsity(3, -1)
	require.ErrorIs(t, err, pattern.ErrInvalidDimensions)

	p, err := pattern.NewSparsity(0, 0)
	require.NoError(t, err)
	p.Apply()
	require.Equal(t, 0, p.NumNonzeros())
}

// TestInsertSortsAndDeduplicates verifies that Apply yields sorted unique columns per row.
func TestInsertSortsAndDeduplicates(t *testing.T) {
	p, err := pattern.NewSparsity(3, 4)
	require.NoError(t, err)

	require.NoError(t, p.Insert([]int{0, 2}, []int{3, 1}))
	require.NoError(t, p.Insert([]int{0}, []int{1, 0, 3})) // duplicates of (0,1) and (0,3)
	require.False(t, p.Finalized())
	require.Nil(t, p.RowColumns(0)) // not readable before Apply

	p.Apply()
	require.True(t, p.Finalized())
	require.Equal(t, []int{0, 1, 3}, p.RowColumns(0))
	require.Empty(t, p.RowColumns(1))
	require.Equal(t, []int{1, 3}, p.RowColumns(2))
	require.Equal(t, 5, p.NumNonzeros())

	perRow, err := p.NumNonzerosPerRow()
	require.NoError(t, err)
	require.Equal(t, []int{3, 0, 2}, perRow)
}

// TestInsertOutOfRange ensures that a bad block leaves the pattern untouched.
func TestInsertOutOfRange(t *testing.T) {
	p, err := pattern.NewSparsity(2, 2)
	require.NoError(t, err)

	require.ErrorIs(t, p.Insert([]int{0, 2}, []int{0}), pattern.ErrOutOfRange)
	require.ErrorIs(t, p.Insert([]int{0}, []int{-1}), pattern.ErrOutOfRange)

	p.Apply()
	require.Equal(t, 0, p.NumNonzeros())
}

// TestInsertCells checks the dofs×dofs coupling produced by two 1D elements.
func TestInsertCells(t *testing.T) {
	p, err := pattern.NewSparsity(3, 3)
	require.NoError(t, err)

	require.NoError(t, p.InsertCells([][]int{{0, 1}, {1, 2}}))
	p.Apply()

	require.Equal(t, []int{0, 1}, p.RowColumns(0))
	require.Equal(t, []int{0, 1, 2}, p.RowColumns(1))
	require.Equal(t, []int{1, 2}, p.RowColumns(2))
	require.Equal(t, 7, p.NumNonzeros())

	require.ErrorIs(t, p.InsertCells([][]int{{0}}), pattern.ErrFinalized)
}

// TestInsertCellsRejectsBadCell ensures validation happens before any insertion.
func TestInsertCellsRejectsBadCell(t *testing.T) {
	p, err := pattern.NewSparsity(3, 3)
	require.NoError(t, err)

	require.ErrorIs(t, p.InsertCells([][]int{{0, 1}, {2, 3}}), pattern.ErrOutOfRange)
	p.Apply()
	require.Equal(t, 0, p.NumNonzeros())
}

// TestInsertDiagonalRectangular covers min(rows, cols) diagonal length.
func TestInsertDiagonalRectangular(t *testing.T) {
	p, err := pattern.NewSparsity(3, 2)
	require.NoError(t, err)

	require.NoError(t, p.InsertDiagonal())
	p.Apply()
	p.Apply() // idempotent

	require.Equal(t, 2, p.NumNonzeros())
	require.Equal(t, []int{0}, p.RowColumns(0))
	require.Equal(t, []int{1}, p.RowColumns(1))
	require.Empty(t, p.RowColumns(2))
	require.ErrorIs(t, p.InsertDiagonal(), pattern.ErrFinalized)
	require.ErrorIs(t, p.Insert([]int{0}, []int{0}), pattern.ErrFinalized)
}

// TestRowColumnsIsACopy ensures callers cannot alias the frozen buckets.
func TestRowColumnsIsACopy(t *testing.T) {
	p, err := pattern.NewSparsity(1, 3)
	require.NoError(t, err)
	require.NoError(t, p.Insert([]int{0}, []int{0, 2}))
	p.Apply()

	cols := p.RowColumns(0)
	cols[0] = 99
	require.Equal(t, []int{0, 2}, p.RowColumns(0))
	require.Nil(t, p.RowColumns(5))
}

// TestNumNonzerosPerRowRequiresApply covers the not-finalized sentinel and String.
func TestNumNonzerosPerRowRequiresApply(t *testing.T) {
	p, err := pattern.NewSparsity(2, 2)
	require.NoError(t, err)

	_, err = p.NumNonzerosPerRow()
	require.ErrorIs(t, err, pattern.ErrNotFinalized)
	require.Equal(t, "Sparsity(2x2, open)", p.String())

	require.NoError(t, p.InsertDiagonal())
	p.Apply()
	require.Equal(t, "Sparsity(2x2, nnz=2)", p.String())
}
