// SPDX-License-Identifier: MIT
package qp

import "errors"

// ErrDimensionMismatch indicates that P, q, A, l, u were not built from a
// consistent (n, m) pair. Preflight also returns it when q holds a NaN
// or Inf entry.
var ErrDimensionMismatch = errors.New("qp: dimension mismatch")

// ErrBadBounds indicates that l[i] > u[i] for some constraint row i, which
// makes the feasible set empty by construction.
var ErrBadBounds = errors.New("qp: lower bound exceeds upper bound")

// ErrNilSystem indicates a nil qp.System was passed where a problem was
// required.
var ErrNilSystem = errors.New("qp: system is nil")

// ErrSingularKKT indicates the assembled KKT system could not be
// factorized (ldlt.Factorization.Info() != 0).
var ErrSingularKKT = errors.New("qp: KKT factorization is singular")
