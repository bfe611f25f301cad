// Package ring builds the coupling matrix for units arranged on a circle.
//
// Every unit is diffusively coupled to its two ring neighbours, giving the
// graph Laplacian
//
//	L[i][i]           = 2
//	L[i][(i+1) mod N] -= 1
//	L[i][(i-1+N) mod N] -= 1
//
// Contributions accumulate, so small rings stay consistent: N=1 yields
// [[0]] and N=2 yields [[2,-2],[-2,2]]. Rows always sum to zero and the
// matrix is symmetric.
package ring

import (
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/phasesync/internal/sim"
)

// Neighbors returns the previous and next index of unit i on a ring of n.
func Neighbors(i, n int) (prev, next int) {
	return (i - 1 + n) % n, (i + 1) % n
}

// Laplacian returns the n×n ring coupling matrix.
func Laplacian(n int) (*mat.Dense, error) {
	if n <= 0 {
		return nil, sim.InvalidParam("n", n)
	}

	l := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		prev, next := Neighbors(i, n)
		l.Set(i, i, l.At(i, i)+2)
		l.Set(i, next, l.At(i, next)-1)
		l.Set(i, prev, l.At(i, prev)-1)
	}
	return l, nil
}

// RowSums returns the sum of every row of m.
func RowSums(m mat.Matrix) []float64 {
	r, c := m.Dims()
	sums := make([]float64, r)
	for i := range sums {
		for j := 0; j < c; j++ {
			sums[i] += m.At(i, j)
		}
	}
	return sums
}
