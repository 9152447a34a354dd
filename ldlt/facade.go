// SPDX-License-Identifier: MIT

// Package ldlt provides a uniform factorize-then-solve facade over a
// dense and a sparse symmetric-indefinite LDLT backend.
//
// Both backends are constructed from a symmetric matrix, factorize it
// exactly once, and expose repeated Solve calls against the cached
// factors — the shape the ADMM iterator and the polisher both need,
// since the KKT system is assembled once per solve/polish call but
// solved against many right-hand sides.
//
// Implementation:
//   - DenseLDLT performs symmetric (diagonal) pivoted LDLT decomposition
//     over a row-major dense matrix, approximating the factorize-reuse
//     contract of a LAPACK xSYSVX-style routine without requiring cgo.
//   - SparseLDLT performs unpivoted right-looking LDLT over a
//     compressed-sparse-column upper triangle, valid because the
//     matrices this package factorizes (regularized QP KKT systems) are
//     quasi-definite and so admit an LDLT for any symmetric ordering.
package ldlt

// Factorization is the uniform contract exposed by both backends.
type Factorization interface {
	// Info reports factorization status: 0 on success, or the 1-based
	// index of the first diagonal pivot that was found to be
	// (numerically) zero, meaning the matrix is singular and Solve's
	// result is undefined.
	Info() int

	// Solve returns x such that M x = b, reusing the cached factors.
	// Behavior is undefined if Info() != 0.
	Solve(b []float64) []float64
}
