// SPDX-License-Identifier: MIT
package ldlt

import (
	"math"

	"github.com/katalvlaran/qpsolve/matrix"
)

// SparseLDLT is an unpivoted right-looking LDLT factorization of a
// matrix.SparseSym (upper triangle only). No row/column pivoting is
// performed: the matrices factorized by this package are the ADMM and
// polish KKT systems, which are quasi-definite by construction (the
// sigma/rho regularization blocks guarantee an LDLT exists for the
// natural ordering), so pivoting for stability is unnecessary — the
// same assumption OSQP's own sparse factorization relies on.
//
// Working storage is column-oriented: col[j] maps row -> value for all
// rows i >= j, i.e. column j of the lower triangle (by symmetry, this
// also represents row j of the upper triangle). After factorize, col[j]
// holds D[j] at key j and L[i,j] at keys i > j. Fill-in is handled
// naturally by Go's zero-value map semantics.
type SparseLDLT struct {
	n    int
	col  []map[int]float64
	info int
}

// NewSparseLDLT factorizes the upper triangle of a *matrix.SparseSym.
// The input is left untouched; a private working copy is built.
func NewSparseLDLT(a *matrix.SparseSym) *SparseLDLT {
	n := a.N()
	col := make([]map[int]float64, n)
	for j := range col {
		col[j] = make(map[int]float64)
	}

	for j := 0; j < n; j++ {
		rows, vals := a.Col(j) // rows <= j (upper triangle column j)
		for k, i := range rows {
			v := vals[k]
			if i == j {
				col[j][i] = v
			} else {
				// i < j: entry A[i,j]; by symmetry this is column i's
				// row-j contribution (since j > i).
				col[i][j] = v
			}
		}
	}

	f := &SparseLDLT{n: n, col: col}
	f.factorize()
	return f
}

// factorize performs the right-looking elimination described above:
// column k is scaled by D[k], then the trailing submatrix is updated.
// Complexity: O(nnz * avg fill-in); no symbolic analysis/reordering.
func (f *SparseLDLT) factorize() {
	n := f.n
	for k := 0; k < n; k++ {
		dk, ok := f.col[k][k]
		if !ok {
			dk = 0
		}
		if math.Abs(dk) < pivotTol {
			f.info = k + 1
			return
		}

		type factor struct {
			row int
			l   float64
		}
		factors := make([]factor, 0, len(f.col[k]))
		for i, aik := range f.col[k] {
			if i <= k {
				continue
			}
			lik := aik / dk
			f.col[k][i] = lik
			factors = append(factors, factor{row: i, l: lik})
		}

		for a := 0; a < len(factors); a++ {
			for b := a; b < len(factors); b++ {
				i, j := factors[a].row, factors[b].row
				if i > j {
					i, j = j, i
				}
				f.col[i][j] -= factors[a].l * dk * factors[b].l
			}
		}
	}
}

// Info reports 0 on success or the 1-based pivot step at which a
// numerically zero diagonal was encountered.
func (f *SparseLDLT) Info() int { return f.info }

// Solve returns x solving M x = b via column-oriented forward solve,
// a diagonal solve, then column-oriented backward solve — both
// substitutions reuse the same per-column L storage produced by
// factorize, so no row-indexed structure is needed.
func (f *SparseLDLT) Solve(b []float64) []float64 {
	n := f.n

	// Forward solve L y = b: process columns left to right; once y[k]
	// is final, push its effect onto later rows i>k via L[i,k].
	y := make([]float64, n)
	copy(y, b)
	for k := 0; k < n; k++ {
		yk := y[k]
		if yk == 0 {
			continue
		}
		for i, lik := range f.col[k] {
			if i > k {
				y[i] -= lik * yk
			}
		}
	}

	// Diagonal solve.
	z := make([]float64, n)
	for k := 0; k < n; k++ {
		z[k] = y[k] / f.col[k][k]
	}

	// Backward solve L^T x = z: process columns right to left, each
	// column k already has all its rows i>k listed.
	x := make([]float64, n)
	for k := n - 1; k >= 0; k-- {
		xk := z[k]
		for i, lik := range f.col[k] {
			if i > k {
				xk -= lik * x[i]
			}
		}
		x[k] = xk
	}
	return x
}

var _ Factorization = (*SparseLDLT)(nil)
