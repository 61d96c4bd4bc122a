// SPDX-License-Identifier: MIT
// Package sparse_test contains test helpers
//
// Purpose:
//   • Run every behavioral test against all backends through one table.
//   • Provide small, deterministic fixtures (patterns, filled stores).

package sparse_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/lvsparse/pattern"
	"github.com/katalvlaran/lvsparse/sparse"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// tolerance used by AllClose comparisons in tests.
const tol = 1e-12

// backend names a constructor so table-driven tests can cover CSR, CSC and Dense.
type backend struct {
	name string
	new  func(rows, cols int, opts ...sparse.Option) (sparse.Matrix, error)
}

// backends lists every storage engine under test.
var backends = []backend{
	{sparse.KindCSR, func(r, c int, o ...sparse.Option) (sparse.Matrix, error) { return sparse.NewCSR(r, c, o...) }},
	{sparse.KindCSC, func(r, c int, o ...sparse.Option) (sparse.Matrix, error) { return sparse.NewCSC(r, c, o...) }},
	{sparse.KindDense, func(r, c int, o ...sparse.Option) (sparse.Matrix, error) { return sparse.NewDense(r, c, o...) }},
}

// forEachBackend runs f as a subtest per backend.
func forEachBackend(t *testing.T, f func(t *testing.T, b backend)) {
	t.Helper()
	for _, b := range backends {
		b := b
		t.Run(b.name, func(t *testing.T) { f(t, b) })
	}
}

// mustNew ALLOCATES an r×c store of backend b or fails the test.
func mustNew(t testing.TB, b backend, r, c int, opts ...sparse.Option) sparse.Matrix {
	t.Helper()
	m, err := b.new(r, c, opts...)
	require.NoError(t, err)

	return m
}

// mustPattern builds a finalized r×c pattern from (row, col) cells.
func mustPattern(t testing.TB, r, c int, cells ...[2]int) *pattern.Sparsity {
	t.Helper()
	p, err := pattern.NewSparsity(r, c)
	require.NoError(t, err)
	for _, cell := range cells {
		require.NoError(t, p.Insert([]int{cell[0]}, []int{cell[1]}))
	}
	p.Apply()

	return p
}

// mustFromRows builds a finalized store whose structure is exactly the
// non-zero entries of want (row-major nested slices).
func mustFromRows(t testing.TB, b backend, want [][]float64, opts ...sparse.Option) sparse.Matrix {
	t.Helper()
	r := len(want)
	c := 0
	if r > 0 {
		c = len(want[0])
	}
	m := mustNew(t, b, r, c, opts...)
	for i, row := range want {
		for j, v := range row {
			if v != 0 {
				require.NoError(t, m.Set([]float64{v}, []int{i}, []int{j}))
			}
		}
	}
	require.NoError(t, m.Apply(sparse.ApplyInsert))

	return m
}

// denseOf reads every entry of m through Get into nested slices.
func denseOf(t testing.TB, m sparse.Matrix) [][]float64 {
	t.Helper()
	out := make([][]float64, m.Rows())
	all := make([]int, m.Cols())
	for j := range all {
		all[j] = j
	}
	for i := range out {
		out[i] = make([]float64, m.Cols())
		require.NoError(t, m.Get(out[i], []int{i}, all))
	}

	return out
}

// requireEntries compares m against want entrywise through Get.
func requireEntries(t testing.TB, want [][]float64, m sparse.Matrix) {
	t.Helper()
	require.Equal(t, len(want), m.Rows(), "Rows")
	require.Equal(t, want, denseOf(t, m))
}

// vec allocates a VecDense holding vals.
func vec(vals ...float64) *mat.VecDense {
	return mat.NewVecDense(len(vals), vals)
}

// randomFill writes n random values at random positions of m with Add
// (seeded, so deterministic), then applies.
func randomFill(t testing.TB, m sparse.Matrix, n int, seed int64) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	for k := 0; k < n; k++ {
		i, j := rng.Intn(m.Rows()), rng.Intn(m.Cols())
		require.NoError(t, m.Add([]float64{rng.NormFloat64()}, []int{i}, []int{j}))
	}
	require.NoError(t, m.Apply(sparse.ApplyAdd))
}

// hidden wraps a Matrix so the store cannot recognise it as one of its own
// backends; AXPY then takes the generic Do path.
type hidden struct{ sparse.Matrix }
