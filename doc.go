// Package lvsparse is a backend-agnostic sparse matrix store for
// finite-element style assembly, built on gonum.
//
// What is inside?
//
//	A small, dependency-light toolkit that covers one assembly cycle:
//		• Sparsity patterns: declare candidate positions from cells, rows, diagonals
//		• Stores: CSR, CSC and Dense behind one Matrix interface
//		• Block assembly: Set/Add element blocks, two-phase Apply commit
//		• Boundary rows: ZeroRows, Ident, GetRow, SetRow
//		• Arithmetic: Scale, Divide, AXPY, SetDiagonal, Norm (l1, linf, frobenius)
//		• Actions: y = A x and y = Aᵀ x on gonum *mat.VecDense
//		• gonum interop: Mat() returns a read-only mat.Matrix view
//
// Everything is organized under two library packages and one driver:
//
//	pattern/         Sparsity: candidate positions, sorted and frozen by Apply
//	sparse/          Matrix interface, CSR/CSC/Dense stores, options, errors
//	cmd/spmat/       CLI: assemble a YAML problem, report nnz/norms/products,
//	                 cross-check backends
//
// Quick example (1-D Laplacian, two elements):
//
//	p, _ := pattern.NewSparsity(3, 3)
//	_ = p.InsertCells([][]int{{0, 1}, {1, 2}})
//	p.Apply()
//	A, _ := sparse.NewCSR(3, 3)
//	_ = A.Init(p)
//	_ = A.Add([]float64{1, -1, -1, 1}, []int{0, 1}, []int{0, 1})
//	_ = A.Add([]float64{1, -1, -1, 1}, []int{1, 2}, []int{1, 2})
//	_ = A.Apply(sparse.ApplyAdd)
//
// See examples/heat_rod.go for a complete solve.
//
//	go get github.com/katalvlaran/lvsparse
package lvsparse
