// SPDX-License-Identifier: MIT

// Package admm implements the ADMM (Alternating Direction Method of
// Multipliers) operator-splitting iteration for quadratic programs, in
// the style of the OSQP algorithm family: one KKT factorization
// assembled up front and reused for every iteration, an over-relaxed
// update of the primal/slack/dual iterates, and a termination test run
// periodically rather than every iteration.
package admm

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/qpsolve/internal/vecutil"
	"github.com/katalvlaran/qpsolve/qp"
)

// Solve runs the ADMM iteration on problem under params, starting from
// hotstart (nil means cold-start from the origin). It assembles the
// KKT system once via problem.KKT and reuses the factorization for
// every iteration; termination (optimality or an infeasibility
// certificate) is checked every params.StopCheckIter iterations. A
// singular KKT system is reported as qp.Unknown with empty Primal/Dual,
// not as an error.
//
// If params.Polish is set and the iteration reaches Optimal, polish.Run
// is invoked before returning; a polish failure is reported via
// qp.PolishFailed without discarding the ADMM iterate.
func Solve(problem qp.System, params qp.SolverParams, hotstart *qp.Solution) (qp.Solution, error) {
	if problem == nil {
		return qp.Solution{}, fmt.Errorf("admm.Solve: %w", qp.ErrNilSystem)
	}
	if err := qp.Preflight(problem); err != nil {
		return qp.Solution{}, fmt.Errorf("admm.Solve: %w", err)
	}

	n, m := problem.Dims()
	q, l, u := problem.Q(), problem.L(), problem.U()

	x := make([]float64, n)
	y := make([]float64, m)
	z := make([]float64, m)
	if hotstart != nil {
		if len(hotstart.Primal) != n || len(hotstart.Dual) != m {
			return qp.Solution{}, fmt.Errorf("admm.Solve: %w", ErrHotstartDimensionMismatch)
		}
		copy(x, hotstart.Primal)
		copy(y, hotstart.Dual)
		copy(z, problem.MulA(x))
	}

	fact, err := problem.KKT(params.Sigma, params.Rho)
	if errors.Is(err, qp.ErrSingularKKT) {
		return qp.Solution{Code: qp.Unknown}, nil
	}
	if err != nil {
		return qp.Solution{}, fmt.Errorf("admm.Solve: %w", err)
	}

	// Per-iteration scratch, preallocated once and reused in place.
	rhs := make([]float64, n+m)
	xTilde := make([]float64, n)
	nu := make([]float64, m)
	zTilde := make([]float64, m)
	xNext := make([]float64, n)
	zInterp := make([]float64, m)
	zNext := make([]float64, m)
	yNext := make([]float64, m)
	dx := make([]float64, n)
	dy := make([]float64, m)

	alpha := params.Alpha
	rho := params.Rho
	sigma := params.Sigma

	sol := qp.Solution{Code: qp.MaxIterations, Primal: x, Dual: y}

	for iter := 1; iter <= params.MaxIter; iter++ {
		// Stage 1: KKT solve for (xTilde, nu).
		for i := 0; i < n; i++ {
			rhs[i] = sigma*x[i] - q[i]
		}
		for i := 0; i < m; i++ {
			rhs[n+i] = z[i] - y[i]/rho
		}
		kktSol := fact.Solve(rhs)
		copy(xTilde, kktSol[:n])
		copy(nu, kktSol[n:])

		// Stage 2: zTilde from nu.
		for i := 0; i < m; i++ {
			zTilde[i] = z[i] + (nu[i]-y[i])/rho
		}

		// Stage 3: over-relaxed x, z, y updates.
		for i := 0; i < n; i++ {
			xNext[i] = alpha*xTilde[i] + (1-alpha)*x[i]
		}
		for i := 0; i < m; i++ {
			zInterp[i] = alpha*zTilde[i] + (1-alpha)*z[i] + y[i]/rho
			zNext[i] = clip(zInterp[i], l[i], u[i])
		}
		for i := 0; i < m; i++ {
			yNext[i] = y[i] + rho*(alpha*zTilde[i]+(1-alpha)*z[i]-zNext[i])
		}

		if params.OnIteration != nil {
			params.OnIteration(iter, xNext, yNext)
		}

		if iter%params.StopCheckIter == 0 {
			// Termination tests use the current (pre-commit) x, y, z —
			// not xNext/zNext/yNext — so a break below returns the
			// iterate the residuals were actually evaluated against.
			if checkOptimal(problem, params, x, y, z) {
				sol.Code = qp.Optimal
				break
			}

			for i := 0; i < n; i++ {
				dx[i] = xNext[i] - x[i]
			}
			for i := 0; i < m; i++ {
				dy[i] = yNext[i] - y[i]
			}
			if checkPrimalInfeasible(problem, params, dy) {
				sol.Code = qp.PrimalInfeasible
				break
			}
			if checkDualInfeasible(problem, params, dx, l, u) {
				sol.Code = qp.DualInfeasible
				break
			}
		}

		copy(x, xNext)
		copy(z, zNext)
		copy(y, yNext)
	}

	sol.Primal = x
	sol.Dual = y

	if sol.Code == qp.Optimal && params.Polish {
		polishSolution(problem, &sol, params)
	}

	return sol, nil
}

// clip projects v into [lo, hi], tolerating +/-Inf bounds.
func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// checkOptimal evaluates the primal/dual residual optimality test.
func checkOptimal(problem qp.System, params qp.SolverParams, x, y, z []float64) bool {
	ax := problem.MulA(x)
	rPrim := make([]float64, len(ax))
	vecutil.Sub(rPrim, ax, z)
	primScale := math.Max(vecutil.InfNorm(ax), vecutil.InfNorm(z))
	epsPrim := params.EpsAbs + params.EpsRel*primScale
	if vecutil.InfNorm(rPrim) > epsPrim {
		return false
	}

	px := problem.MulP(x)
	aty := problem.MulAt(y)
	q := problem.Q()
	rDual := make([]float64, len(px))
	for i := range rDual {
		rDual[i] = px[i] + q[i] + aty[i]
	}
	dualScale := math.Max(vecutil.InfNorm(px), math.Max(vecutil.InfNorm(aty), vecutil.InfNorm(q)))

	var epsDual float64
	if params.StrictDualTolerance {
		// Literal reference formula: eps_abs + eps_abs*dual_scale.
		epsDual = params.EpsAbs + params.EpsAbs*dualScale
	} else {
		epsDual = params.EpsAbs + params.EpsRel*dualScale
	}
	return vecutil.InfNorm(rDual) <= epsDual
}

// checkPrimalInfeasible tests the primal-infeasibility certificate
// using the dual-iterate drift dy = y^{k+1} - y^k: a certificate exists
// when A^T dy is (numerically) zero while dy still produces net
// negative support on the constraint bounds.
func checkPrimalInfeasible(problem qp.System, params qp.SolverParams, dy []float64) bool {
	normDy := vecutil.InfNorm(dy)
	if normDy < 1e-14 {
		return false
	}
	atdy := problem.MulAt(dy)
	if vecutil.InfNorm(atdy) > params.EpsPrimInf*normDy {
		return false
	}

	l, u := problem.L(), problem.U()
	thresh := params.EpsPrimInf * normDy
	var support float64
	for i, d := range dy {
		switch {
		case d > 0:
			if math.IsInf(u[i], 1) {
				if d > thresh {
					return false
				}
				continue
			}
			support += u[i] * d
		case d < 0:
			if math.IsInf(l[i], -1) {
				if d < -thresh {
					return false
				}
				continue
			}
			support += l[i] * d
		}
	}
	return support < -thresh
}

// checkDualInfeasible tests the dual-infeasibility (primal unbounded)
// certificate using the primal-iterate drift dx = x^{k+1} - x^k.
func checkDualInfeasible(problem qp.System, params qp.SolverParams, dx []float64, l, u []float64) bool {
	normDx := vecutil.InfNorm(dx)
	if normDx < 1e-14 {
		return false
	}
	pdx := problem.MulP(dx)
	if vecutil.InfNorm(pdx) > params.EpsDualInf*normDx {
		return false
	}

	q := problem.Q()
	if vecutil.Dot(q, dx) > params.EpsDualInf*normDx {
		return false
	}

	adx := problem.MulA(dx)
	tol := params.EpsDualInf * normDx
	for i, v := range adx {
		if !math.IsInf(u[i], 1) && v > tol {
			return false
		}
		if !math.IsInf(l[i], -1) && v < -tol {
			return false
		}
	}
	return true
}
