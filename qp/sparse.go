// SPDX-License-Identifier: MIT
package qp

import (
	"fmt"

	"github.com/katalvlaran/qpsolve/ldlt"
	"github.com/katalvlaran/qpsolve/matrix"
)

// SparseProblem is the sparse-storage QP flavor: P is a
// matrix.SparseSym (CSC, upper triangle only) and A is a
// matrix.SparseRows (CSR), so constraint-wise row iteration and
// transposed products avoid materializing a dense copy.
type SparseProblem struct {
	p *matrix.SparseSym
	q []float64
	a *matrix.SparseRows
	l []float64
	u []float64
}

// NewSparseProblem validates and wraps a sparse QP problem, with the
// same shape/bound contract as NewDenseProblem.
func NewSparseProblem(p *matrix.SparseSym, q []float64, a *matrix.SparseRows, l, u []float64) (*SparseProblem, error) {
	if p == nil || a == nil {
		return nil, fmt.Errorf("qp.NewSparseProblem: %w", ErrDimensionMismatch)
	}
	n := len(q)
	if p.N() != n {
		return nil, fmt.Errorf("qp.NewSparseProblem: P is %dx%d, want %dx%d: %w", p.N(), p.N(), n, n, ErrDimensionMismatch)
	}
	m := len(l)
	if len(u) != m {
		return nil, fmt.Errorf("qp.NewSparseProblem: len(l)=%d, len(u)=%d: %w", m, len(u), ErrDimensionMismatch)
	}
	if a.Rows() != m || a.Cols() != n {
		return nil, fmt.Errorf("qp.NewSparseProblem: A is %dx%d, want %dx%d: %w", a.Rows(), a.Cols(), m, n, ErrDimensionMismatch)
	}
	for i := 0; i < m; i++ {
		if l[i] > u[i] {
			return nil, fmt.Errorf("qp.NewSparseProblem: row %d: %w", i, ErrBadBounds)
		}
	}
	return &SparseProblem{p: p, q: q, a: a, l: l, u: u}, nil
}

func (s *SparseProblem) Dims() (n, m int) { return len(s.q), len(s.l) }
func (s *SparseProblem) Q() []float64     { return s.q }
func (s *SparseProblem) L() []float64     { return s.l }
func (s *SparseProblem) U() []float64     { return s.u }

func (s *SparseProblem) MulP(x []float64) []float64 {
	y, err := s.p.MulVec(x)
	if err != nil {
		panic(err)
	}
	return y
}

func (s *SparseProblem) MulA(x []float64) []float64 {
	y, err := s.a.MulVec(x)
	if err != nil {
		panic(err)
	}
	return y
}

func (s *SparseProblem) MulAt(y []float64) []float64 {
	x, err := s.a.MulVecTrans(y)
	if err != nil {
		panic(err)
	}
	return x
}

// KKT assembles the sparse ADMM saddle-point system, mirroring
// DenseProblem.KKT's block layout but over a matrix.SparseSym upper
// triangle, then factorizes it with ldlt.NewSparseLDLT.
func (s *SparseProblem) KKT(sigma, rho float64) (ldlt.Factorization, error) {
	n, m := len(s.q), len(s.l)
	dim := n + m
	k, err := matrix.NewSparseSym(dim)
	if err != nil {
		return nil, fmt.Errorf("qp.SparseProblem.KKT: %w", err)
	}

	for col := 0; col < n; col++ {
		rows, vals := s.p.Col(col)
		for idx, row := range rows {
			v := vals[idx]
			if row == col {
				v += sigma
			}
			if err := k.Set(row, col, v); err != nil {
				return nil, fmt.Errorf("qp.SparseProblem.KKT: %w", err)
			}
		}
	}
	for i := 0; i < m; i++ {
		cols, vals := s.a.Row(i)
		for idx, c := range cols {
			if err := k.Set(c, n+i, vals[idx]); err != nil {
				return nil, fmt.Errorf("qp.SparseProblem.KKT: %w", err)
			}
		}
	}
	invRho := -1.0 / rho
	for i := 0; i < m; i++ {
		if err := k.AddDiag(n+i, invRho); err != nil {
			return nil, fmt.Errorf("qp.SparseProblem.KKT: %w", err)
		}
	}
	k.Compress()

	f := ldlt.NewSparseLDLT(k)
	if f.Info() != 0 {
		return f, fmt.Errorf("qp.SparseProblem.KKT: %w", ErrSingularKKT)
	}
	return f, nil
}

// ReducedKKT assembles and factorizes the sparse reduced KKT system
// used by the polisher, restricted to the active-constraint rows named
// by luIdx.
func (s *SparseProblem) ReducedKKT(luIdx []int, delta float64) (ReducedSystem, error) {
	n := len(s.q)
	na := len(luIdx)
	dim := n + na
	k, err := matrix.NewSparseSym(dim)
	if err != nil {
		return ReducedSystem{}, fmt.Errorf("qp.SparseProblem.ReducedKKT: %w", err)
	}

	for col := 0; col < n; col++ {
		rows, vals := s.p.Col(col)
		for idx, row := range rows {
			v := vals[idx]
			if row == col {
				v += delta
			}
			if err := k.Set(row, col, v); err != nil {
				return ReducedSystem{}, fmt.Errorf("qp.SparseProblem.ReducedKKT: %w", err)
			}
		}
	}
	for ai, row := range luIdx {
		cols, vals := s.a.Row(row)
		for idx, c := range cols {
			if err := k.Set(c, n+ai, vals[idx]); err != nil {
				return ReducedSystem{}, fmt.Errorf("qp.SparseProblem.ReducedKKT: %w", err)
			}
		}
	}
	for ai := 0; ai < na; ai++ {
		if err := k.AddDiag(n+ai, -delta); err != nil {
			return ReducedSystem{}, fmt.Errorf("qp.SparseProblem.ReducedKKT: %w", err)
		}
	}
	k.Compress()

	f := ldlt.NewSparseLDLT(k)
	return ReducedSystem{Fact: f, Dim: dim, N: n}, nil
}

var _ System = (*SparseProblem)(nil)
