// SPDX-License-Identifier: MIT
package matrix

// DenseSymMulVec computes y = P*x for a dense matrix whose upper
// triangle (row <= col) is semantically authoritative; the lower
// triangle, if present, is ignored. This mirrors SparseSym.MulVec so
// the dense and sparse QP problem flavors share multiplication
// semantics for the cost matrix P.
// Complexity: O(n^2).
func DenseSymMulVec(p *Dense, x []float64) ([]float64, error) {
	if p.r != p.c {
		return nil, matrixErrorf("DenseSymMulVec", ErrNonSquare)
	}
	if len(x) != p.c {
		return nil, matrixErrorf("DenseSymMulVec", ErrDimensionMismatch)
	}
	n := p.r
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := p.data[i*p.c+j]
			if v == 0 {
				continue
			}
			y[i] += v * x[j]
			if j != i {
				y[j] += v * x[i]
			}
		}
	}
	return y, nil
}
