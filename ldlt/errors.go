// SPDX-License-Identifier: MIT
package ldlt

import "errors"

// ErrDimensionMismatch indicates a right-hand side vector whose length
// does not match the factorized matrix dimension.
var ErrDimensionMismatch = errors.New("ldlt: dimension mismatch")

// ErrNonSquare indicates a factorization was requested on a non-square
// input matrix.
var ErrNonSquare = errors.New("ldlt: matrix is not square")
