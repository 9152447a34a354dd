// Package matrix provides the dense and sparse (CSC/CSR) storage used to
// assemble QP data (P, q, A, l, u) and KKT systems.
//
// The matrix package provides:
//
//   - Dense, a row-major dense matrix with optional NaN/Inf rejection on Set.
//   - SparseSym, an upper-triangle-only CSC store for symmetric matrices (P,
//     and the assembled KKT system).
//   - SparseRows, a CSR store for the constraint matrix A and its transpose.
//
// Dense is best for small problems; SparseSym/SparseRows avoid O(n^2)
// memory on problems with a sparse constraint structure.
package matrix
