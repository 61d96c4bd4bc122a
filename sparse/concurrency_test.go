// SPDX-License-Identifier: MIT

package sparse_test

import (
	"sync"
	"testing"

	"github.com/katalvlaran/lvsparse/sparse"
	"github.com/stretchr/testify/require"
)

// TestIndependentStoresInParallel: distinct stores share no state, so
// concurrent assembly of separate instances is race-free (run with -race).
func TestIndependentStoresInParallel(t *testing.T) {
	const workers = 8
	out := make([]sparse.Matrix, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			m, err := backends[w%len(backends)].new(16, 16)
			if err != nil {
				errs[w] = err

				return
			}
			for i := 0; i < 16; i++ {
				if err = m.Add([]float64{2, -1}, []int{i}, []int{i, (i + 1) % 16}); err != nil {
					errs[w] = err

					return
				}
			}
			errs[w] = m.Apply(sparse.ApplyAdd)
			out[w] = m
		}(w)
	}
	wg.Wait()

	for w := 0; w < workers; w++ {
		require.NoError(t, errs[w])
		ok, err := sparse.AllClose(out[w], out[0], 0, 0)
		require.NoError(t, err)
		require.True(t, ok)
	}
}

// TestCopiesInParallel: copies taken up front can be mutated concurrently.
func TestCopiesInParallel(t *testing.T) {
	base := mustFromRows(t, backends[0], [][]float64{{1, 2}, {3, 4}})
	copies := []sparse.Matrix{base.Copy(), base.Copy(), base.Copy()}

	var wg sync.WaitGroup
	for k, m := range copies {
		wg.Add(1)
		go func(k int, m sparse.Matrix) {
			defer wg.Done()
			_ = m.Scale(float64(k + 2))
		}(k, m)
	}
	wg.Wait()

	requireEntries(t, [][]float64{{1, 2}, {3, 4}}, base)
	requireEntries(t, [][]float64{{4, 8}, {12, 16}}, copies[2])
}
