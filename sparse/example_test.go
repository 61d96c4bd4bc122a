package sparse_test

import (
	"fmt"

	"github.com/katalvlaran/lvsparse/pattern"
	"github.com/katalvlaran/lvsparse/sparse"
	"gonum.org/v1/gonum/mat"
)

// ExampleCSR_assembly assembles a 1-D Laplacian from three linear elements,
// fixes both end nodes and applies the result to a vector.
func ExampleCSR_assembly() {
	p, _ := pattern.NewSparsity(4, 4)
	_ = p.InsertCells([][]int{{0, 1}, {1, 2}, {2, 3}})
	p.Apply()

	A, _ := sparse.NewCSR(4, 4)
	_ = A.Init(p)
	for e := 0; e < 3; e++ {
		dofs := []int{e, e + 1}
		_ = A.Add([]float64{1, -1, -1, 1}, dofs, dofs)
	}
	_ = A.Apply(sparse.ApplyAdd)
	_ = A.Ident([]int{0, 3})

	x := mat.NewVecDense(4, []float64{1, 2, 3, 4})
	y, _ := A.NewVector(0)
	_ = A.Mult(x, y)
	linf, _ := A.Norm(sparse.NormLinf)

	fmt.Println(A)
	fmt.Println(y.RawVector().Data)
	fmt.Println(linf)

	// Output:
	// CSR(4x4, nnz=10, staged=0)
	// [1 0 0 4]
	// 4
}

// ExampleView hands a store to gonum through Mat.
func ExampleView() {
	A, _ := sparse.NewCSC(2, 2)
	_ = A.Set([]float64{2, 1, 0, 3}, []int{0, 1}, []int{0, 1})
	_ = A.Apply(sparse.ApplyInsert)

	v, _ := A.Mat()
	defer v.Release()
	fmt.Println(mat.Sum(v), mat.Trace(mat.DenseCopyOf(v)))

	// Output:
	// 6 5
}

// ExampleMatrix_GetRow replaces one row and reads it back in column order.
func ExampleMatrix_GetRow() {
	A, _ := sparse.NewDense(2, 4)
	_ = A.SetRow(1, []int{3, 0}, []float64{-1, 2})

	cols, vals, _ := A.GetRow(1)
	fmt.Println(cols, vals)

	// Output:
	// [0 3] [2 -1]
}
