// SPDX-License-Identifier: MIT

// Package qp defines the Quadratic Program data model: the problem
// (cost P, q; constraints A, l, u), solver configuration, and solution
// record shared by the admm and polish packages.
//
// A QP in this package's convention is:
//
//	minimize    (1/2) x^T P x + q^T x
//	subject to  l <= A x <= u
//
// with P symmetric positive semidefinite (only the upper triangle is
// read) and l, u allowed to contain +/-Inf entries to express one-sided
// or absent constraints.
package qp

import "github.com/katalvlaran/qpsolve/ldlt"

// ExitCode classifies how a Solve (or Polish) call terminated. Unlike a
// Go error, an ExitCode other than Optimal is an expected, first-class
// outcome of optimization, not a contract violation.
type ExitCode int

const (
	// Optimal means both primal and dual residuals fell within
	// tolerance before the iteration budget was exhausted.
	Optimal ExitCode = iota
	// PolishFailed means the ADMM iteration reached Optimal but the
	// subsequent polish stage could not improve the solution (singular
	// reduced KKT system); Primal/Dual retain the pre-polish values.
	PolishFailed
	// PrimalInfeasible means a primal infeasibility certificate was
	// detected.
	PrimalInfeasible
	// DualInfeasible means a dual infeasibility certificate (unbounded
	// primal) was detected.
	DualInfeasible
	// MaxIterations means the iteration budget was exhausted before
	// either optimality or an infeasibility certificate was reached.
	MaxIterations
	// Unknown means the ADMM KKT system could not be factorized
	// (singular); Primal/Dual are empty.
	Unknown
)

// String renders the exit code for logs/CLI output.
func (c ExitCode) String() string {
	switch c {
	case Optimal:
		return "optimal"
	case PolishFailed:
		return "polish_failed"
	case PrimalInfeasible:
		return "primal_infeasible"
	case DualInfeasible:
		return "dual_infeasible"
	case MaxIterations:
		return "max_iterations"
	default:
		return "unknown"
	}
}

// Solution is the result of a Solve (optionally refined by Polish).
type Solution struct {
	Code   ExitCode
	Primal []float64 // x, length n
	Dual   []float64 // y, length m
}

// ReducedSystem is the reduced KKT system assembled by the polisher
// after identifying the active set: the rows/columns of A restricted to
// the active constraints, factorized together with P and a small
// regularization.
type ReducedSystem struct {
	// Fact factorizes the reduced KKT matrix
	//   [ P + delta*I    A_active^T ]
	//   [ A_active       -delta*I   ]
	Fact ldlt.Factorization
	// Dim is the dimension of the reduced system (n + len(active)).
	Dim int
	// N is the number of primal variables (first N rows/cols of Fact).
	N int
}

// System is the capability interface implemented by both problem
// flavors (dense, sparse). admm.Solve and polish.Run depend only on
// this interface, never on the concrete flavor.
type System interface {
	// Dims returns the number of variables n and constraints m.
	Dims() (n, m int)
	// Q returns the linear cost term (length n). Must not be mutated.
	Q() []float64
	// L returns the constraint lower bounds (length m). Must not be mutated.
	L() []float64
	// U returns the constraint upper bounds (length m). Must not be mutated.
	U() []float64
	// MulP returns P*x.
	MulP(x []float64) []float64
	// MulA returns A*x.
	MulA(x []float64) []float64
	// MulAt returns A^T*y.
	MulAt(y []float64) []float64
	// KKT assembles and factorizes the ADMM saddle-point system
	//   [ P + sigma*I    A^T         ]
	//   [ A              -1/rho * I  ]
	// returning a reusable Factorization.
	KKT(sigma, rho float64) (ldlt.Factorization, error)
	// ReducedKKT assembles and factorizes the polish-stage reduced
	// system over the active-constraint index set luIdx (indices into
	// [0,m) whose bound is currently active), with regularization
	// delta.
	ReducedKKT(luIdx []int, delta float64) (ReducedSystem, error)
}
