// SPDX-License-Identifier: MIT

// Package cliconfig loads QP problems and solver parameters from YAML
// documents for the qpsolve CLI. It is demonstration/example plumbing:
// the qp/admm/polish/ldlt packages never touch the filesystem
// themselves, only this package and cmd/qpsolve do.
package cliconfig

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/qpsolve/matrix"
	"github.com/katalvlaran/qpsolve/qp"
)

// ProblemDoc is the YAML shape of a dense QP problem file:
//
//	P: [[2, 0], [0, 2]]
//	q: [-2, -5]
//	A: [[1, -1], [-1, 1]]
//	l: [-1, -1]
//	u: [1, 1]
type ProblemDoc struct {
	P [][]float64 `yaml:"P"`
	Q []float64   `yaml:"q"`
	A [][]float64 `yaml:"A"`
	L []float64   `yaml:"l"`
	U []float64   `yaml:"u"`
}

// LoadProblem reads a ProblemDoc from path and builds a *qp.DenseProblem.
func LoadProblem(path string) (*qp.DenseProblem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cliconfig.LoadProblem: %w", err)
	}
	var doc ProblemDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("cliconfig.LoadProblem: %w", err)
	}

	n := len(doc.Q)
	p, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, fmt.Errorf("cliconfig.LoadProblem: %w", err)
	}
	for i, row := range doc.P {
		for j, v := range row {
			if err := p.Set(i, j, v); err != nil {
				return nil, fmt.Errorf("cliconfig.LoadProblem: P[%d][%d]: %w", i, j, err)
			}
		}
	}

	m := len(doc.L)
	a, err := matrix.NewDense(m, n)
	if err != nil {
		return nil, fmt.Errorf("cliconfig.LoadProblem: %w", err)
	}
	for i, row := range doc.A {
		for j, v := range row {
			if err := a.Set(i, j, v); err != nil {
				return nil, fmt.Errorf("cliconfig.LoadProblem: A[%d][%d]: %w", i, j, err)
			}
		}
	}

	problem, err := qp.NewDenseProblem(p, doc.Q, a, doc.L, doc.U)
	if err != nil {
		return nil, fmt.Errorf("cliconfig.LoadProblem: %w", err)
	}
	return problem, nil
}

// ParamsDoc is the YAML shape of a SolverParams file; field names
// mirror qp.SolverParams minus the unmarshalable OnIteration hook.
type ParamsDoc struct {
	Rho                 float64 `yaml:"rho"`
	Sigma               float64 `yaml:"sigma"`
	Alpha               float64 `yaml:"alpha"`
	MaxIter             int     `yaml:"max_iter"`
	EpsAbs              float64 `yaml:"eps_abs"`
	EpsRel              float64 `yaml:"eps_rel"`
	EpsPrimInf          float64 `yaml:"eps_prim_inf"`
	EpsDualInf          float64 `yaml:"eps_dual_inf"`
	StopCheckIter       int     `yaml:"stop_check_iter"`
	StrictDualTolerance bool    `yaml:"strict_dual_tolerance"`
	Polish              bool    `yaml:"polish"`
	PolishRefineIters   int     `yaml:"polish_refine_iters"`
	PolishDelta         float64 `yaml:"polish_delta"`
}

func docFromParams(p qp.SolverParams) ParamsDoc {
	return ParamsDoc{
		Rho:                 p.Rho,
		Sigma:               p.Sigma,
		Alpha:               p.Alpha,
		MaxIter:             p.MaxIter,
		EpsAbs:              p.EpsAbs,
		EpsRel:              p.EpsRel,
		EpsPrimInf:          p.EpsPrimInf,
		EpsDualInf:          p.EpsDualInf,
		StopCheckIter:       p.StopCheckIter,
		StrictDualTolerance: p.StrictDualTolerance,
		Polish:              p.Polish,
		PolishRefineIters:   p.PolishRefineIters,
		PolishDelta:         p.PolishDelta,
	}
}

func (d ParamsDoc) toParams() qp.SolverParams {
	p := qp.DefaultParams()
	p.Rho = d.Rho
	p.Sigma = d.Sigma
	p.Alpha = d.Alpha
	p.MaxIter = d.MaxIter
	p.EpsAbs = d.EpsAbs
	p.EpsRel = d.EpsRel
	p.EpsPrimInf = d.EpsPrimInf
	p.EpsDualInf = d.EpsDualInf
	p.StopCheckIter = d.StopCheckIter
	p.StrictDualTolerance = d.StrictDualTolerance
	p.Polish = d.Polish
	p.PolishRefineIters = d.PolishRefineIters
	p.PolishDelta = d.PolishDelta
	return p
}

// LoadParams reads a ParamsDoc from path, applied on top of
// qp.DefaultParams() (so a partial YAML document is legal).
func LoadParams(path string) (qp.SolverParams, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return qp.SolverParams{}, fmt.Errorf("cliconfig.LoadParams: %w", err)
	}
	doc := docFromParams(qp.DefaultParams())
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return qp.SolverParams{}, fmt.Errorf("cliconfig.LoadParams: %w", err)
	}
	return doc.toParams(), nil
}

// WriteDefaultParams marshals qp.DefaultParams() as YAML to w.
func WriteDefaultParams(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(docFromParams(qp.DefaultParams()))
}
