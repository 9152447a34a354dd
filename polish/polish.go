// SPDX-License-Identifier: MIT

// Package polish implements the optional solution-refinement stage run
// after the ADMM iteration reaches optimality: it identifies the active
// constraint set from the dual solution's sign, re-solves a smaller
// equality-constrained KKT system restricted to that active set, and
// applies a few steps of iterative refinement against the same
// factorization to sharpen the primal/dual solution beyond what the
// ADMM tolerance alone guarantees.
package polish

import "github.com/katalvlaran/qpsolve/qp"

// Run attempts to polish sol in place. On success sol.Primal/sol.Dual
// are replaced by the refined values and sol.Code is left as the
// optimal code the caller already set. On failure (a singular reduced
// KKT system) sol.Code is set to qp.PolishFailed and sol.Primal/Dual
// are left at their pre-polish values.
func Run(problem qp.System, sol *qp.Solution, params qp.SolverParams) {
	n, m := problem.Dims()
	q := problem.Q()

	luIdx := make([]int, 0, m)
	boundVal := make([]float64, 0, m)
	for i, yi := range sol.Dual {
		if yi == 0 {
			continue
		}
		luIdx = append(luIdx, i)
		if yi > 0 {
			boundVal = append(boundVal, problem.U()[i])
		} else {
			boundVal = append(boundVal, problem.L()[i])
		}
	}

	rs, err := problem.ReducedKKT(luIdx, params.PolishDelta)
	if err != nil || rs.Fact.Info() != 0 {
		sol.Code = qp.PolishFailed
		return
	}

	rhs := make([]float64, rs.Dim)
	for i := 0; i < n; i++ {
		rhs[i] = -q[i]
	}
	for ai, bv := range boundVal {
		rhs[n+ai] = bv
	}

	solved := rs.Fact.Solve(rhs)
	xPolish := make([]float64, n)
	yActive := make([]float64, len(luIdx))
	copy(xPolish, solved[:n])
	copy(yActive, solved[n:])

	yFull := make([]float64, m)
	residual := make([]float64, rs.Dim)
	for it := 0; it < params.PolishRefineIters; it++ {
		for i := range yFull {
			yFull[i] = 0
		}
		for ai, row := range luIdx {
			yFull[row] = yActive[ai]
		}

		px := problem.MulP(xPolish)
		aty := problem.MulAt(yFull)
		for i := 0; i < n; i++ {
			residual[i] = rhs[i] - (px[i] + aty[i])
		}

		ax := problem.MulA(xPolish)
		for ai, row := range luIdx {
			residual[n+ai] = rhs[n+ai] - ax[row]
		}

		correction := rs.Fact.Solve(residual)
		for i := 0; i < n; i++ {
			xPolish[i] += correction[i]
		}
		for ai := range yActive {
			yActive[ai] += correction[n+ai]
		}
	}

	yOut := make([]float64, m)
	for ai, row := range luIdx {
		yOut[row] = yActive[ai]
	}

	sol.Primal = xPolish
	sol.Dual = yOut
}
