// SPDX-License-Identifier: MIT
package qp_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qpsolve/matrix"
	"github.com/katalvlaran/qpsolve/qp"
)

func buildDenseBox(t *testing.T) *qp.DenseProblem {
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

func TestNewDenseProblemDimensionMismatch(t *testing.T) {
	p, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	a, err := matrix.NewDense(2, 2)
	require.NoError(t, err)

	_, err = qp.NewDenseProblem(p, []float64{1, 2, 3}, a, []float64{-1, -1}, []float64{1, 1})
	require.ErrorIs(t, err, qp.ErrDimensionMismatch)
}

func TestNewDenseProblemBadBounds(t *testing.T) {
	p, err := matrix.NewDense(1, 1)
	require.NoError(t, err)
	a, err := matrix.NewDense(1, 1)
	require.NoError(t, err)

	_, err = qp.NewDenseProblem(p, []float64{0}, a, []float64{1}, []float64{-1})
	require.ErrorIs(t, err, qp.ErrBadBounds)
}

func TestDenseProblemMulOperations(t *testing.T) {
	problem := buildDenseBox(t)
	require.Equal(t, []float64{2, 2}, problem.MulP([]float64{1, 1}))
	require.Equal(t, []float64{1, 1}, problem.MulA([]float64{1, 1}))
	require.Equal(t, []float64{1, 1}, problem.MulAt([]float64{1, 1}))
}

func TestDenseProblemKKTFactorizes(t *testing.T) {
	problem := buildDenseBox(t)
	fact, err := problem.KKT(1e-6, 0.1)
	require.NoError(t, err)
	require.Equal(t, 0, fact.Info())
}

func TestPreflightRejectsNilSystem(t *testing.T) {
	err := qp.Preflight(nil)
	require.ErrorIs(t, err, qp.ErrNilSystem)
}

func TestPreflightAcceptsValidProblem(t *testing.T) {
	problem := buildDenseBox(t)
	require.NoError(t, qp.Preflight(problem))
}

func TestDefaultParamsOptions(t *testing.T) {
	p := qp.NewParams(qp.WithRho(0.5), qp.WithMaxIter(100))
	require.Equal(t, 0.5, p.Rho)
	require.Equal(t, 100, p.MaxIter)
	require.Equal(t, qp.DefaultSigma, p.Sigma) // untouched fields keep defaults
}

func TestWithAlphaPanicsOutOfRange(t *testing.T) {
	require.Panics(t, func() { qp.WithAlpha(2.5) })
}

func TestSparseDenseKKTEquivalence(t *testing.T) {
	dense := buildDenseBox(t)

	ps, err := matrix.NewSparseSym(2)
	require.NoError(t, err)
	require.NoError(t, ps.Set(0, 0, 2))
	require.NoError(t, ps.Set(1, 1, 2))
	ps.Compress()

	as, err := matrix.NewSparseRows(2, 2)
	require.NoError(t, err)
	require.NoError(t, as.Set(0, 0, 1))
	require.NoError(t, as.Set(1, 1, 1))
	as.Compress()

	sparse, err := qp.NewSparseProblem(ps, []float64{-2, -5}, as, []float64{-1, -1}, []float64{1, 1})
	require.NoError(t, err)

	fd, err := dense.KKT(1e-6, 0.1)
	require.NoError(t, err)
	fs, err := sparse.KKT(1e-6, 0.1)
	require.NoError(t, err)

	rhs := []float64{1, 2, 3, 4}
	xd := fd.Solve(rhs)
	xs := fs.Solve(rhs)
	for i := range xd {
		require.InDelta(t, xd[i], xs[i], 1e-9)
	}
}
