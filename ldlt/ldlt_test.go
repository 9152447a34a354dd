// SPDX-License-Identifier: MIT
package ldlt_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qpsolve/ldlt"
	"github.com/katalvlaran/qpsolve/matrix"
)

// buildSPD returns a small well-conditioned symmetric positive definite
// dense matrix: [[4, 1], [1, 3]].
func buildSPDDense(t *testing.T) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	require.NoError(t, m.Set(0, 0, 4))
	require.NoError(t, m.Set(0, 1, 1))
	require.NoError(t, m.Set(1, 1, 3))
	return m
}

func TestDenseLDLTSolvesKnownSystem(t *testing.T) {
	m := buildSPDDense(t)
	f, err := ldlt.NewDenseLDLT(m)
	require.NoError(t, err)
	require.Equal(t, 0, f.Info())

	// b chosen so the true solution is x = [1, 2]: b = M*x = [6, 7].
	x := f.Solve([]float64{6, 7})
	require.InDelta(t, 1, x[0], 1e-9)
	require.InDelta(t, 2, x[1], 1e-9)
}

func TestDenseLDLTDetectsSingular(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	require.NoError(t, m.Set(0, 0, 1))
	require.NoError(t, m.Set(0, 1, 1))
	require.NoError(t, m.Set(1, 1, 1))

	f, err := ldlt.NewDenseLDLT(m)
	require.NoError(t, err)
	require.NotEqual(t, 0, f.Info())
}

func TestDenseLDLTRejectsNonSquare(t *testing.T) {
	m, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	_, err = ldlt.NewDenseLDLT(m)
	require.ErrorIs(t, err, ldlt.ErrNonSquare)
}

func TestSparseLDLTSolvesKnownSystem(t *testing.T) {
	m, err := matrix.NewSparseSym(2)
	require.NoError(t, err)
	require.NoError(t, m.Set(0, 0, 4))
	require.NoError(t, m.Set(0, 1, 1))
	require.NoError(t, m.Set(1, 1, 3))
	m.Compress()

	f := ldlt.NewSparseLDLT(m)
	require.Equal(t, 0, f.Info())

	x := f.Solve([]float64{6, 7})
	require.InDelta(t, 1, x[0], 1e-9)
	require.InDelta(t, 2, x[1], 1e-9)
}

func TestSparseLDLTDetectsSingular(t *testing.T) {
	m, err := matrix.NewSparseSym(2)
	require.NoError(t, err)
	require.NoError(t, m.Set(0, 0, 1))
	require.NoError(t, m.Set(0, 1, 1))
	require.NoError(t, m.Set(1, 1, 1))
	m.Compress()

	f := ldlt.NewSparseLDLT(m)
	require.NotEqual(t, 0, f.Info())
}

// TestDenseSparseEquivalence checks the dense and sparse backends agree
// on a random-ish well-conditioned 4x4 system, within 1e-9.
func TestDenseSparseEquivalence(t *testing.T) {
	n := 4
	dense, err := matrix.NewDense(n, n)
	require.NoError(t, err)
	sparse, err := matrix.NewSparseSym(n)
	require.NoError(t, err)

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := 0.0
			if i == j {
				v = float64(10 + i)
			} else {
				v = 1.0 / float64(1+i+j)
			}
			require.NoError(t, dense.Set(i, j, v))
			require.NoError(t, sparse.Set(i, j, v))
		}
	}
	sparse.Compress()

	df, err := ldlt.NewDenseLDLT(dense)
	require.NoError(t, err)
	require.Equal(t, 0, df.Info())
	sf := ldlt.NewSparseLDLT(sparse)
	require.Equal(t, 0, sf.Info())

	b := []float64{1, 2, 3, 4}
	xd := df.Solve(b)
	xs := sf.Solve(b)
	for i := 0; i < n; i++ {
		require.InDelta(t, xd[i], xs[i], 1e-9)
	}
}
