// SPDX-License-Identifier: MIT

package sparse_test

import (
	"testing"

	"github.com/katalvlaran/lvsparse/sparse"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// TestViewReadsStore: a View satisfies mat.Matrix and mirrors Get.
func TestViewReadsStore(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b backend) {
		rows := [][]float64{{1, 0, 2}, {0, 0, 3}}
		m := mustFromRows(t, b, rows)
		v, err := m.Mat()
		require.NoError(t, err)
		defer v.Release()

		r, c := v.Dims()
		require.Equal(t, 2, r)
		require.Equal(t, 3, c)
		want := mat.NewDense(2, 3, []float64{1, 0, 2, 0, 0, 3})
		require.True(t, mat.Equal(want, mat.DenseCopyOf(v)))
		require.True(t, mat.Equal(want.T(), v.T()))

		require.Panics(t, func() { v.At(2, 0) })
		require.Panics(t, func() { v.At(0, -1) })
	})
}

// TestViewSeesLaterWrites: value updates are visible through a held View.
func TestViewSeesLaterWrites(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b backend) {
		m := mustFromRows(t, b, [][]float64{{1, 0}, {0, 1}})
		v, err := m.Mat()
		require.NoError(t, err)

		require.NoError(t, m.Add([]float64{4}, []int{1}, []int{1}))
		require.Equal(t, 5.0, v.At(1, 1))
		v.Release()
		require.NoError(t, m.Resize(1, 1))
	})
}

// TestViewNonZeroDoers skip explicit zeros and respect canonical order.
func TestViewNonZeroDoers(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b backend) {
		m := mustNew(t, b, 2, 3)
		require.NoError(t, m.Set([]float64{0, 5, 6, 0}, []int{0, 1}, []int{1, 2}))
		require.NoError(t, m.Apply(sparse.ApplyInsert))
		require.Equal(t, 4, m.NNZ())

		v, err := m.Mat()
		require.NoError(t, err)
		defer v.Release()

		var got [][3]float64
		v.DoNonZero(func(i, j int, x float64) { got = append(got, [3]float64{float64(i), float64(j), x}) })
		require.ElementsMatch(t, [][3]float64{{0, 2, 5}, {1, 1, 6}}, got)

		got = got[:0]
		v.DoRowNonZero(1, func(i, j int, x float64) { got = append(got, [3]float64{float64(i), float64(j), x}) })
		require.Equal(t, [][3]float64{{1, 1, 6}}, got)
		require.Panics(t, func() { v.DoRowNonZero(2, func(int, int, float64) {}) })
	})
}

// TestViewCountsHolders: every outstanding View blocks Resize.
func TestViewCountsHolders(t *testing.T) {
	m, err := sparse.NewCSR(2, 2)
	require.NoError(t, err)
	v1, err := m.Mat()
	require.NoError(t, err)
	v2, err := m.Mat()
	require.NoError(t, err)

	v1.Release()
	require.ErrorIs(t, m.Resize(3, 3), sparse.ErrViewOutstanding)
	v2.Release()
	require.NoError(t, m.Resize(3, 3))
}

// TestCopyDoesNotInheritViews: a copy is free to restructure.
func TestCopyDoesNotInheritViews(t *testing.T) {
	m, err := sparse.NewDense(2, 2)
	require.NoError(t, err)
	v, err := m.Mat()
	require.NoError(t, err)
	defer v.Release()

	cp := m.Copy()
	require.NoError(t, cp.Resize(1, 1))
}
