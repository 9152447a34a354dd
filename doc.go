// Package qpsolve is a Quadratic Program (QP) solver built around the
// ADMM (Alternating Direction Method of Multipliers) operator-splitting
// approach popularized by the OSQP algorithm family, together with an
// optional solution-polishing refinement stage.
//
// A QP in this module's convention is:
//
//	minimize    (1/2) x^T P x + q^T x
//	subject to  l <= A x <= u
//
// Under the hood, everything is organized under a handful of
// subpackages:
//
//	matrix/  — dense and sparse (CSC/CSR) matrix storage
//	ldlt/    — symmetric-indefinite LDLT factorization (dense + sparse)
//	qp/      — the QP data model: Problem, SolverParams, Solution
//	admm/    — the ADMM iterator, termination tests, infeasibility certificates
//	polish/  — active-set solution refinement
//	cmd/qpsolve/ — a small CLI front-end that loads problems from YAML
//
// qp/admm/ldlt/polish are pure in-memory libraries; only cmd/qpsolve
// and internal/cliconfig touch the filesystem.
package qpsolve
