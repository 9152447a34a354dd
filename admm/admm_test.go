// SPDX-License-Identifier: MIT
package admm_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qpsolve/admm"
	"github.com/katalvlaran/qpsolve/matrix"
	"github.com/katalvlaran/qpsolve/qp"
)

// buildBox builds minimize x0^2+x1^2-2x0-5x1 s.t. -1<=x<=1, whose
// analytic solution is x = (1, 1): the unconstrained minimum is
// (1, 2.5), whose x1 the box clips to its upper bound.
func buildBox(t *testing.T) *qp.DenseProblem {
	t.Helper()
	p, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	require.NoError(t, p.Set(0, 0, 2))
	require.NoError(t, p.Set(1, 1, 2))

	a, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	require.NoError(t, a.Set(0, 0, 1))
	require.NoError(t, a.Set(1, 1, 1))

	problem, err := qp.NewDenseProblem(p, []float64{-2, -5}, a, []float64{-1, -1}, []float64{1, 1})
	require.NoError(t, err)
	return problem
}

func TestSolveBoxConstrainedReachesOptimal(t *testing.T) {
	problem := buildBox(t)
	sol, err := admm.Solve(problem, qp.DefaultParams(), nil)
	require.NoError(t, err)
	require.Equal(t, qp.Optimal, sol.Code)
	require.InDelta(t, 1, sol.Primal[0], 1e-2)
	require.InDelta(t, 1, sol.Primal[1], 1e-2)
}

func TestSolveWarmStartIsIdempotent(t *testing.T) {
	problem := buildBox(t)
	params := qp.DefaultParams()

	sol1, err := admm.Solve(problem, params, nil)
	require.NoError(t, err)
	require.Equal(t, qp.Optimal, sol1.Code)

	sol2, err := admm.Solve(problem, params, &sol1)
	require.NoError(t, err)
	require.Equal(t, qp.Optimal, sol2.Code)
	require.InDelta(t, sol1.Primal[0], sol2.Primal[0], 1e-6)
	require.InDelta(t, sol1.Primal[1], sol2.Primal[1], 1e-6)
}

func TestSolveHotstartDimensionMismatch(t *testing.T) {
	problem := buildBox(t)
	bad := &qp.Solution{Primal: []float64{0}, Dual: []float64{0, 0}}
	_, err := admm.Solve(problem, qp.DefaultParams(), bad)
	require.ErrorIs(t, err, admm.ErrHotstartDimensionMismatch)
}

func TestSolveDetectsPrimalInfeasible(t *testing.T) {
	// Both rows of A are x0 - x1, forced into disjoint boxes: l=u=1 for row 0
	// and l=u=2 for row1 with A = [[1,-1],[1,-1]] encodes x0-x1=1 and
	// x0-x1=2 simultaneously -- infeasible.
	p, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	require.NoError(t, p.Set(0, 0, 1))
	require.NoError(t, p.Set(1, 1, 1))

	a, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	require.NoError(t, a.Set(0, 0, 1))
	require.NoError(t, a.Set(0, 1, -1))
	require.NoError(t, a.Set(1, 0, 1))
	require.NoError(t, a.Set(1, 1, -1))

	problem, err := qp.NewDenseProblem(p, []float64{0, 0}, a, []float64{1, 2}, []float64{1, 2})
	require.NoError(t, err)

	params := qp.NewParams(qp.WithPolish(false))
	sol, err := admm.Solve(problem, params, nil)
	require.NoError(t, err)
	require.Equal(t, qp.PrimalInfeasible, sol.Code)
}

func TestSolveDetectsDualInfeasible(t *testing.T) {
	// minimize -x0 with no constraints on x0 (P=0, A row only touches
	// x1): the primal is unbounded below.
	p, err := matrix.NewDense(2, 2)
	require.NoError(t, err)

	a, err := matrix.NewDense(1, 2)
	require.NoError(t, err)
	require.NoError(t, a.Set(0, 1, 1))

	problem, err := qp.NewDenseProblem(p, []float64{-1, 0}, a, []float64{-1e10}, []float64{1e10})
	require.NoError(t, err)

	params := qp.NewParams(qp.WithPolish(false))
	sol, err := admm.Solve(problem, params, nil)
	require.NoError(t, err)
	require.Equal(t, qp.DualInfeasible, sol.Code)
}

func TestSolveMaxIterationsFallback(t *testing.T) {
	problem := buildBox(t)
	params := qp.NewParams(qp.WithMaxIter(1), qp.WithStopCheckIter(1), qp.WithPolish(false))
	sol, err := admm.Solve(problem, params, nil)
	require.NoError(t, err)
	require.Equal(t, qp.MaxIterations, sol.Code)
}

func TestSolveOnIterationHookIsCalled(t *testing.T) {
	problem := buildBox(t)
	calls := 0
	params := qp.NewParams(qp.WithOnIteration(func(iter int, x, y []float64) { calls++ }))
	sol, err := admm.Solve(problem, params, nil)
	require.NoError(t, err)
	require.Equal(t, qp.Optimal, sol.Code)
	require.Greater(t, calls, 0)
}
