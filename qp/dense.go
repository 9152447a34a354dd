// SPDX-License-Identifier: MIT
package qp

import (
	"fmt"

	"github.com/katalvlaran/qpsolve/ldlt"
	"github.com/katalvlaran/qpsolve/matrix"
)

// DenseProblem is the dense-storage QP flavor: minimize (1/2) x^T P x +
// q^T x subject to l <= A x <= u, with P (n x n, upper triangle
// authoritative) and A (m x n) stored as matrix.Dense.
type DenseProblem struct {
	p *matrix.Dense
	q []float64
	a *matrix.Dense
	l []float64
	u []float64
}

// NewDenseProblem validates and wraps a dense QP problem. P must be n x
// n, A must be m x n, q must have length n, l and u must have length m
// with l[i] <= u[i] for every i.
func NewDenseProblem(p *matrix.Dense, q []float64, a *matrix.Dense, l, u []float64) (*DenseProblem, error) {
	if p == nil || a == nil {
		return nil, fmt.Errorf("qp.NewDenseProblem: %w", ErrDimensionMismatch)
	}
	n := len(q)
	pr, pc := p.Rows(), p.Cols()
	if pr != n || pc != n {
		return nil, fmt.Errorf("qp.NewDenseProblem: P is %dx%d, want %dx%d: %w", pr, pc, n, n, ErrDimensionMismatch)
	}
	m := len(l)
	if len(u) != m {
		return nil, fmt.Errorf("qp.NewDenseProblem: len(l)=%d, len(u)=%d: %w", m, len(u), ErrDimensionMismatch)
	}
	ar, ac := a.Rows(), a.Cols()
	if ar != m || ac != n {
		return nil, fmt.Errorf("qp.NewDenseProblem: A is %dx%d, want %dx%d: %w", ar, ac, m, n, ErrDimensionMismatch)
	}
	for i := 0; i < m; i++ {
		if l[i] > u[i] {
			return nil, fmt.Errorf("qp.NewDenseProblem: row %d: %w", i, ErrBadBounds)
		}
	}
	return &DenseProblem{p: p, q: q, a: a, l: l, u: u}, nil
}

func (d *DenseProblem) Dims() (n, m int) { return len(d.q), len(d.l) }
func (d *DenseProblem) Q() []float64     { return d.q }
func (d *DenseProblem) L() []float64     { return d.l }
func (d *DenseProblem) U() []float64     { return d.u }

func (d *DenseProblem) MulP(x []float64) []float64 {
	y, err := matrix.DenseSymMulVec(d.p, x)
	if err != nil {
		panic(err) // caller-invariant: x always has length n by construction
	}
	return y
}

func (d *DenseProblem) MulA(x []float64) []float64 {
	n, m := len(x), d.a.Rows()
	y := make([]float64, m)
	for i := 0; i < m; i++ {
		var acc float64
		for j := 0; j < n; j++ {
			v, _ := d.a.At(i, j)
			acc += v * x[j]
		}
		y[i] = acc
	}
	return y
}

func (d *DenseProblem) MulAt(y []float64) []float64 {
	m, n := len(y), d.a.Cols()
	x := make([]float64, n)
	for i := 0; i < m; i++ {
		yi := y[i]
		if yi == 0 {
			continue
		}
		for j := 0; j < n; j++ {
			v, _ := d.a.At(i, j)
			x[j] += v * yi
		}
	}
	return x
}

// KKT assembles the dense ADMM saddle-point system
//
//	[ P + sigma*I    A^T         ]
//	[ A              -1/rho * I  ]
//
// and factorizes it with ldlt.NewDenseLDLT. Only the upper triangle is
// populated, matching DenseLDLT's contract.
func (d *DenseProblem) KKT(sigma, rho float64) (ldlt.Factorization, error) {
	n, m := len(d.q), len(d.l)
	dim := n + m
	k, err := matrix.NewDense(dim, dim)
	if err != nil {
		return nil, fmt.Errorf("qp.DenseProblem.KKT: %w", err)
	}

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v, _ := d.p.At(i, j)
			if i == j {
				v += sigma
			}
			if v != 0 {
				if err := k.Set(i, j, v); err != nil {
					return nil, fmt.Errorf("qp.DenseProblem.KKT: %w", err)
				}
			}
		}
	}
	for i := 0; i < n; i++ {
		for jr := 0; jr < m; jr++ {
			v, _ := d.a.At(jr, i)
			if v != 0 {
				if err := k.Set(i, n+jr, v); err != nil {
					return nil, fmt.Errorf("qp.DenseProblem.KKT: %w", err)
				}
			}
		}
	}
	invRho := -1.0 / rho
	for i := 0; i < m; i++ {
		if err := k.Set(n+i, n+i, invRho); err != nil {
			return nil, fmt.Errorf("qp.DenseProblem.KKT: %w", err)
		}
	}

	f, err := ldlt.NewDenseLDLT(k)
	if err != nil {
		return nil, fmt.Errorf("qp.DenseProblem.KKT: %w", err)
	}
	if f.Info() != 0 {
		return f, fmt.Errorf("qp.DenseProblem.KKT: %w", ErrSingularKKT)
	}
	return f, nil
}

// ReducedKKT assembles and factorizes the dense reduced KKT system used
// by the polisher, restricted to the active-constraint rows named by
// luIdx.
func (d *DenseProblem) ReducedKKT(luIdx []int, delta float64) (ReducedSystem, error) {
	n := len(d.q)
	na := len(luIdx)
	dim := n + na
	k, err := matrix.NewDense(dim, dim)
	if err != nil {
		return ReducedSystem{}, fmt.Errorf("qp.DenseProblem.ReducedKKT: %w", err)
	}

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v, _ := d.p.At(i, j)
			if i == j {
				v += delta
			}
			if v != 0 {
				if err := k.Set(i, j, v); err != nil {
					return ReducedSystem{}, fmt.Errorf("qp.DenseProblem.ReducedKKT: %w", err)
				}
			}
		}
	}
	for ai, row := range luIdx {
		for j := 0; j < n; j++ {
			v, _ := d.a.At(row, j)
			if v != 0 {
				if err := k.Set(j, n+ai, v); err != nil {
					return ReducedSystem{}, fmt.Errorf("qp.DenseProblem.ReducedKKT: %w", err)
				}
			}
		}
	}
	for ai := 0; ai < na; ai++ {
		if err := k.Set(n+ai, n+ai, -delta); err != nil {
			return ReducedSystem{}, fmt.Errorf("qp.DenseProblem.ReducedKKT: %w", err)
		}
	}

	f, err := ldlt.NewDenseLDLT(k)
	if err != nil {
		return ReducedSystem{}, fmt.Errorf("qp.DenseProblem.ReducedKKT: %w", err)
	}
	return ReducedSystem{Fact: f, Dim: dim, N: n}, nil
}

var _ System = (*DenseProblem)(nil)
