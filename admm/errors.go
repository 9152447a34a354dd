// SPDX-License-Identifier: MIT
package admm

import "errors"

// ErrHotstartDimensionMismatch indicates a supplied warm-start Solution
// whose Primal/Dual lengths do not match the problem's (n, m).
var ErrHotstartDimensionMismatch = errors.New("admm: hotstart dimension mismatch")
