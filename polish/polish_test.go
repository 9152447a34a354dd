// SPDX-License-Identifier: MIT
package polish_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qpsolve/matrix"
	"github.com/katalvlaran/qpsolve/polish"
	"github.com/katalvlaran/qpsolve/qp"
)

func buildActiveBoxProblem(t *testing.T) *qp.DenseProblem {
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

func TestRunRefinesActiveSetSolution(t *testing.T) {
	problem := buildActiveBoxProblem(t)
	// Pre-polish iterate: x close to the true (1, 1) optimum, with the
	// second constraint active at its upper bound (dual > 0) and the
	// first inactive (dual == 0).
	sol := &qp.Solution{
		Code:   qp.Optimal,
		Primal: []float64{0.999, 0.999},
		Dual:   []float64{0, 2.9},
	}
	params := qp.DefaultParams()

	polish.Run(problem, sol, params)

	require.Equal(t, qp.Optimal, sol.Code)
	require.InDelta(t, 1.0, sol.Primal[0], 1e-6)
	require.InDelta(t, 1.0, sol.Primal[1], 1e-6)
}

func TestRunLeavesInactiveDualAtZero(t *testing.T) {
	problem := buildActiveBoxProblem(t)
	sol := &qp.Solution{
		Code:   qp.Optimal,
		Primal: []float64{0.999, 0.999},
		Dual:   []float64{0, 2.9},
	}
	params := qp.DefaultParams()

	polish.Run(problem, sol, params)
	require.Equal(t, float64(0), sol.Dual[0])
}

func TestRunSetsPolishFailedOnSingularReducedSystem(t *testing.T) {
	// With delta=0 and P=0, the reduced KKT matrix collapses to the
	// pure off-diagonal block [[0,1],[1,0]]: diagonal-pivoted LDLT (no
	// 2x2 pivot blocks) cannot factorize it, so Info() reports failure
	// even though the matrix itself is invertible.
	p, err := matrix.NewDense(1, 1)
	require.NoError(t, err)
	a, err := matrix.NewDense(1, 1)
	require.NoError(t, err)
	require.NoError(t, a.Set(0, 0, 1))

	problem, err := qp.NewDenseProblem(p, []float64{0}, a, []float64{-1}, []float64{1})
	require.NoError(t, err)

	sol := &qp.Solution{
		Code:   qp.Optimal,
		Primal: []float64{0},
		Dual:   []float64{1},
	}
	params := qp.NewParams(qp.WithPolishDelta(0))
	preX, preY := append([]float64(nil), sol.Primal...), append([]float64(nil), sol.Dual...)

	polish.Run(problem, sol, params)

	require.Equal(t, qp.PolishFailed, sol.Code)
	require.Equal(t, preX, sol.Primal)
	require.Equal(t, preY, sol.Dual)
}
