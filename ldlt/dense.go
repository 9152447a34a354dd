// SPDX-License-Identifier: MIT
package ldlt

import (
	"math"

	"github.com/katalvlaran/qpsolve/matrix"
)

// pivotTol is the absolute threshold below which a diagonal pivot is
// treated as numerically singular.
const pivotTol = 1e-13

// DenseLDLT is a symmetric-indefinite factorization of a dense matrix,
// A = P L D L^T P^T, with P a symmetric permutation chosen by partial
// diagonal pivoting (largest remaining |diagonal| at each step).
//
// Only the upper triangle of the input is read; the factorization
// assumes (and does not check) that the input is symmetric.
type DenseLDLT struct {
	n    int
	ld   []float64 // n x n row-major: strict lower = L factors, diagonal = D
	perm []int     // perm[i] = original row/col index placed at position i
	info int
}

// NewDenseLDLT factorizes the upper triangle of a (symmetric) dense
// matrix. The matrix is copied; the caller's *matrix.Dense is never
// mutated.
//
// Stage 1 (Validate): require a square input.
// Stage 2 (Prepare): mirror the upper triangle into a full working copy.
// Stage 3 (Execute): right-looking LDLT with diagonal pivoting.
// Complexity: O(n^3) time, O(n^2) space.
func NewDenseLDLT(a *matrix.Dense) (*DenseLDLT, error) {
	rows, cols := a.Rows(), a.Cols()
	if rows != cols {
		return nil, ErrNonSquare
	}
	n := rows

	ld := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v, err := a.At(i, j)
			if err != nil {
				return nil, err
			}
			ld[i*n+j] = v
			ld[j*n+i] = v
		}
	}

	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	f := &DenseLDLT{n: n, ld: ld, perm: perm}
	f.factorize()
	return f, nil
}

// factorize performs right-looking LDLT elimination in place over f.ld,
// with partial diagonal pivoting across the trailing submatrix.
func (f *DenseLDLT) factorize() {
	n := f.n

	for k := 0; k < n; k++ {
		// Stage 1: pick the largest-magnitude diagonal in [k, n) as pivot.
		pivot := k
		maxAbs := math.Abs(f.ld[k*n+k])
		for i := k + 1; i < n; i++ {
			if v := math.Abs(f.ld[i*n+i]); v > maxAbs {
				maxAbs = v
				pivot = i
			}
		}
		if maxAbs < pivotTol {
			f.info = k + 1
			return
		}

		// Stage 2: symmetric permutation swap of rows/cols k and pivot.
		if pivot != k {
			f.swapRowsCols(k, pivot)
			f.perm[k], f.perm[pivot] = f.perm[pivot], f.perm[k]
		}

		// Stage 3: eliminate column k below the diagonal, Schur update.
		dk := f.ld[k*n+k]
		for i := k + 1; i < n; i++ {
			f.ld[i*n+k] /= dk
		}
		for i := k + 1; i < n; i++ {
			lik := f.ld[i*n+k]
			if lik == 0 {
				continue
			}
			for j := k + 1; j < n; j++ {
				f.ld[i*n+j] -= lik * dk * f.ld[j*n+k]
			}
		}
	}
}

// swapRowsCols exchanges rows i,j and columns i,j of the symmetric
// working matrix, keeping it symmetric.
func (f *DenseLDLT) swapRowsCols(i, j int) {
	n := f.n
	for c := 0; c < n; c++ {
		f.ld[i*n+c], f.ld[j*n+c] = f.ld[j*n+c], f.ld[i*n+c]
	}
	for r := 0; r < n; r++ {
		f.ld[r*n+i], f.ld[r*n+j] = f.ld[r*n+j], f.ld[r*n+i]
	}
}

// Info reports 0 on success or the 1-based pivot step at which a
// numerically zero diagonal was encountered.
func (f *DenseLDLT) Info() int { return f.info }

// Solve returns x solving the originally factorized M x = b, by
// applying the permutation, then forward/diagonal/backward solves
// against the cached L, D factors.
// Complexity: O(n^2).
func (f *DenseLDLT) Solve(b []float64) []float64 {
	n := f.n

	// Apply permutation: bp = P^T b.
	bp := make([]float64, n)
	for i := 0; i < n; i++ {
		bp[i] = b[f.perm[i]]
	}

	// Forward solve: L y = bp (L unit lower triangular).
	y := make([]float64, n)
	copy(y, bp)
	for i := 0; i < n; i++ {
		for k := 0; k < i; k++ {
			y[i] -= f.ld[i*n+k] * y[k]
		}
	}

	// Diagonal solve: z = D^-1 y.
	z := make([]float64, n)
	for i := 0; i < n; i++ {
		z[i] = y[i] / f.ld[i*n+i]
	}

	// Backward solve: L^T w = z.
	w := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		w[i] = z[i]
		for k := i + 1; k < n; k++ {
			w[i] -= f.ld[k*n+i] * w[k]
		}
	}

	// Undo permutation: x[perm[i]] = w[i].
	x := make([]float64, n)
	for i := 0; i < n; i++ {
		x[f.perm[i]] = w[i]
	}
	return x
}

var _ Factorization = (*DenseLDLT)(nil)
