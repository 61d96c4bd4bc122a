// SPDX-License-Identifier: MIT
// Package sparse_test checks the observable contract every backend must honour.

package sparse_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvsparse/sparse"
	"github.com/stretchr/testify/require"
)

// TestStructurePreservation: adds restricted to the pattern never grow NNZ
// beyond the candidate count, and NNZ equals it once every candidate was written.
func TestStructurePreservation(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b backend) {
		p := mustPattern(t, 3, 3, [2]int{0, 0}, [2]int{0, 1}, [2]int{1, 1}, [2]int{2, 0}, [2]int{2, 2})
		m := mustNew(t, b, 0, 0)
		require.NoError(t, m.Init(p))
		require.Equal(t, p.NumNonzeros(), m.NNZ())

		require.NoError(t, m.Add([]float64{1}, []int{0}, []int{1}))
		require.NoError(t, m.Apply(sparse.ApplyAdd))
		require.LessOrEqual(t, m.NNZ(), p.NumNonzeros())

		for i := 0; i < 3; i++ {
			for _, j := range p.RowColumns(i) {
				require.NoError(t, m.Add([]float64{float64(i + j + 1)}, []int{i}, []int{j}))
			}
		}
		require.NoError(t, m.Apply(sparse.ApplyAdd))
		require.Equal(t, p.NumNonzeros(), m.NNZ())
	})
}

// TestAccumulateVersusOverwrite: Add sums repeated contributions, Set keeps the last one.
func TestAccumulateVersusOverwrite(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b backend) {
		m := mustNew(t, b, 3, 3)
		rows, cols := []int{0, 2}, []int{1, 2}

		require.NoError(t, m.Add([]float64{1, 2, 3, 4}, rows, cols))
		require.NoError(t, m.Add([]float64{10, 20, 30, 40}, rows, cols))
		require.NoError(t, m.Apply(sparse.ApplyAdd))

		got := make([]float64, 4)
		require.NoError(t, m.Get(got, rows, cols))
		require.Equal(t, []float64{11, 22, 33, 44}, got)

		require.NoError(t, m.Set([]float64{1, 1, 1, 1}, rows, cols))
		require.NoError(t, m.Set([]float64{5, 6, 7, 8}, rows, cols))
		require.NoError(t, m.Apply(sparse.ApplyInsert))
		require.NoError(t, m.Get(got, rows, cols))
		require.Equal(t, []float64{5, 6, 7, 8}, got)
	})
}

// TestZeroKeepsStructure: Zero clears values but not NNZ.
func TestZeroKeepsStructure(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b backend) {
		m := mustFromRows(t, b, [][]float64{{1, 2}, {0, 3}})
		nnz := m.NNZ()

		m.Zero()
		require.Equal(t, nnz, m.NNZ())
		requireEntries(t, [][]float64{{0, 0}, {0, 0}}, m)
	})
}

// TestIdentRows: listed rows become identity rows and Mult passes x through on them.
func TestIdentRows(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b backend) {
		m := mustFromRows(t, b, [][]float64{
			{4, -1, 0},
			{-1, 4, -1},
			{0, -1, 4},
		})
		require.NoError(t, m.Ident([]int{0, 2}))
		requireEntries(t, [][]float64{
			{1, 0, 0},
			{-1, 4, -1},
			{0, 0, 1},
		}, m)

		x, y := vec(3, 5, 7), vec(0, 0, 0)
		require.NoError(t, m.Mult(x, y))
		require.Equal(t, x.AtVec(0), y.AtVec(0))
		require.Equal(t, x.AtVec(2), y.AtVec(2))
		require.Equal(t, -3.0+20-7, y.AtVec(1))
	})
}

// TestAXPYOntoZeroMatrix: AXPY(a, A, true) on a zero matrix of A's shape gives a*A.
func TestAXPYOntoZeroMatrix(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b backend) {
		A := mustNew(t, b, 6, 5)
		randomFill(t, A, 12, 7)

		Y := mustNew(t, b, 6, 5)
		require.NoError(t, Y.AXPY(-2.5, A, true))

		want := A.Copy()
		require.NoError(t, want.Scale(-2.5))
		ok, err := sparse.AllClose(Y, want, tol, tol)
		require.NoError(t, err)
		require.True(t, ok)
	})
}

// TestMultSmall: [[2,0],[1,3]] · [1,2] = [2,7] and its transpose gives [4,6].
func TestMultSmall(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b backend) {
		m := mustFromRows(t, b, [][]float64{{2, 0}, {1, 3}})
		x := vec(1, 2)

		y := vec(0, 0)
		require.NoError(t, m.Mult(x, y))
		require.Equal(t, []float64{2, 7}, y.RawVector().Data)

		require.NoError(t, m.TransposeMult(x, y))
		require.Equal(t, []float64{4, 6}, y.RawVector().Data)
	})
}

// TestNormSmall: l1, linf and Frobenius on [[2,0],[1,3]].
func TestNormSmall(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b backend) {
		m := mustFromRows(t, b, [][]float64{{2, 0}, {1, 3}})

		l1, err := m.Norm(sparse.NormL1)
		require.NoError(t, err)
		require.Equal(t, 3.0, l1)

		linf, err := m.Norm(sparse.NormLinf)
		require.NoError(t, err)
		require.Equal(t, 4.0, linf)

		fro, err := m.Norm(sparse.NormFrobenius)
		require.NoError(t, err)
		require.InDelta(t, math.Sqrt(14), fro, tol)
	})
}

// TestRowRoundTrip: SetRow then GetRow returns the pairs sorted by column.
func TestRowRoundTrip(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b backend) {
		m := mustFromRows(t, b, [][]float64{
			{1, 2, 0, 0, 3},
			{0, 4, 0, 5, 0},
			{6, 0, 7, 0, 0},
		})
		require.NoError(t, m.SetRow(1, []int{4, 0, 2}, []float64{-4, -0.5, 2}))

		cols, vals, err := m.GetRow(1)
		require.NoError(t, err)
		require.Equal(t, []int{0, 2, 4}, cols)
		require.Equal(t, []float64{-0.5, 2, -4}, vals)

		// untouched neighbours
		cols, vals, err = m.GetRow(0)
		require.NoError(t, err)
		require.Equal(t, []int{0, 1, 4}, cols)
		require.Equal(t, []float64{1, 2, 3}, vals)
		cols, _, err = m.GetRow(2)
		require.NoError(t, err)
		require.Equal(t, []int{0, 2}, cols)
	})
}
