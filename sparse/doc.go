// Package sparse provides backend-agnostic sparse matrix stores for
// finite-element style assembly.
//
// The sparse package provides:
//
//   - Three interchangeable backends behind one Matrix interface: CSR
//     (compressed rows), CSC (compressed columns) and Dense (row-major buffer
//     with a structure mask, for small systems and cross-checks).
//   - Block assembly (Set/Add of m×n element blocks addressed by global
//     indices) with a two-phase commit: writes into the existing structure are
//     immediate, new positions are staged and merged by Apply.
//   - Boundary-condition helpers (ZeroRows, Ident, GetRow, SetRow).
//   - Arithmetic (Scale, Divide, AXPY, SetDiagonal, Norm) and the actions
//     y = A x and y = Aᵀ x on gonum *mat.VecDense vectors.
//   - A read-only gonum view (Mat) so any mat.Matrix consumer can read the store.
//
// A typical assembly loop:
//
//	p, _ := pattern.NewSparsity(n, n) // declare candidate positions
//	_ = p.InsertCells(cells)
//	p.Apply()
//	A, _ := sparse.NewCSR(n, n)
//	_ = A.Init(p)                    // structure fixed, values zero
//	for _, e := range elements {
//		_ = A.Add(e.K, e.Dofs, e.Dofs) // accumulate element matrices
//	}
//	_ = A.Apply(sparse.ApplyAdd)     // canonical form
//	_ = A.Ident(dirichlet)           // impose boundary rows
//
// Stores are not safe for concurrent mutation. Distinct stores share nothing
// and may be assembled in parallel.
//
// See the examples in this package and in pattern for usage patterns.
package sparse
