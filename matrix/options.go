// SPDX-License-Identifier: MIT

// Package matrix: numeric policy defaults shared by the Dense constructors.
package matrix

// DefaultValidateNaNInf toggles strict finite-value validation on Set.
// QP matrix data (P, A) must never contain NaN/Inf, so Dense rejects it
// by default; the KKT assembly paths rely on this to fail fast rather than
// propagate a NaN through the ADMM iteration.
const DefaultValidateNaNInf = true
