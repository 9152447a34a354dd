// SPDX-License-Identifier: MIT
package qp

// Default solver parameters, matching the OSQP-family defaults this
// package's ADMM loop is modeled on.
const (
	DefaultRho             = 1e-1
	DefaultSigma           = 1e-6
	DefaultAlpha           = 1.6
	DefaultMaxIter         = 4000
	DefaultEpsAbs          = 1e-3
	DefaultEpsRel          = 1e-3
	DefaultEpsPrimInf      = 1e-4
	DefaultEpsDualInf      = 1e-4
	DefaultStopCheckIter   = 25
	DefaultPolish          = true
	DefaultPolishRefineIts = 3
	DefaultPolishDelta     = 1e-6
	// DefaultStrictDualTolerance replicates the dual-tolerance formula
	// eps_abs + eps_abs*dual_scale literally (a known quirk in the
	// reference algorithm this solver is modeled on, which meant to
	// use eps_rel for the scaled term). Set false to use the corrected
	// eps_abs + eps_rel*dual_scale formula instead.
	DefaultStrictDualTolerance = true
)

// SolverParams configures admm.Solve and polish.Run. Build one with
// DefaultParams() and override fields via With* options.
type SolverParams struct {
	// Rho is the ADMM step-size / penalty parameter.
	Rho float64
	// Sigma is the primal regularization added to P in the KKT system.
	Sigma float64
	// Alpha is the relaxation parameter (1.0 = no relaxation).
	Alpha float64
	// MaxIter bounds the number of ADMM iterations.
	MaxIter int
	// EpsAbs, EpsRel are the absolute/relative tolerances for the
	// primal and dual residual optimality test.
	EpsAbs, EpsRel float64
	// EpsPrimInf, EpsDualInf are the tolerances for the infeasibility
	// certificate tests.
	EpsPrimInf, EpsDualInf float64
	// StopCheckIter is how often (in iterations) termination is checked.
	StopCheckIter int
	// StrictDualTolerance selects the literal vs corrected dual
	// tolerance formula; see DefaultStrictDualTolerance.
	StrictDualTolerance bool
	// Polish enables the post-ADMM polishing stage when the iterator
	// reaches Optimal.
	Polish bool
	// PolishRefineIters bounds the iterative-refinement steps the
	// polisher runs against the reduced KKT system.
	PolishRefineIters int
	// PolishDelta is the regularization added to the reduced KKT
	// system assembled during polishing.
	PolishDelta float64
	// OnIteration, if non-nil, is called after every completed ADMM
	// iteration with the current primal/dual iterates. Purely passive
	// instrumentation; the solver never blocks on it and it has no
	// effect on convergence.
	OnIteration func(iter int, x, y []float64)
}

// DefaultParams returns the documented default configuration.
func DefaultParams() SolverParams {
	return SolverParams{
		Rho:                 DefaultRho,
		Sigma:               DefaultSigma,
		Alpha:               DefaultAlpha,
		MaxIter:             DefaultMaxIter,
		EpsAbs:              DefaultEpsAbs,
		EpsRel:              DefaultEpsRel,
		EpsPrimInf:          DefaultEpsPrimInf,
		EpsDualInf:          DefaultEpsDualInf,
		StopCheckIter:       DefaultStopCheckIter,
		StrictDualTolerance: DefaultStrictDualTolerance,
		Polish:              DefaultPolish,
		PolishRefineIters:   DefaultPolishRefineIts,
		PolishDelta:         DefaultPolishDelta,
	}
}

// Option mutates SolverParams. Applied left to right over DefaultParams().
type Option func(*SolverParams)

// NewParams resolves a sequence of Option against DefaultParams().
func NewParams(opts ...Option) SolverParams {
	p := DefaultParams()
	for _, set := range opts {
		set(&p)
	}
	return p
}

// WithRho overrides the ADMM step-size parameter.
func WithRho(rho float64) Option {
	if rho <= 0 {
		panic("qp: WithRho: rho must be positive")
	}
	return func(p *SolverParams) { p.Rho = rho }
}

// WithSigma overrides the primal regularization parameter.
func WithSigma(sigma float64) Option {
	if sigma <= 0 {
		panic("qp: WithSigma: sigma must be positive")
	}
	return func(p *SolverParams) { p.Sigma = sigma }
}

// WithAlpha overrides the relaxation parameter.
func WithAlpha(alpha float64) Option {
	if alpha <= 0 || alpha >= 2 {
		panic("qp: WithAlpha: alpha must be in (0, 2)")
	}
	return func(p *SolverParams) { p.Alpha = alpha }
}

// WithMaxIter overrides the iteration budget.
func WithMaxIter(n int) Option {
	if n <= 0 {
		panic("qp: WithMaxIter: n must be positive")
	}
	return func(p *SolverParams) { p.MaxIter = n }
}

// WithTolerances overrides the optimality tolerances.
func WithTolerances(epsAbs, epsRel float64) Option {
	if epsAbs <= 0 || epsRel <= 0 {
		panic("qp: WithTolerances: tolerances must be positive")
	}
	return func(p *SolverParams) { p.EpsAbs, p.EpsRel = epsAbs, epsRel }
}

// WithInfeasibilityTolerances overrides the infeasibility-certificate tolerances.
func WithInfeasibilityTolerances(epsPrim, epsDual float64) Option {
	if epsPrim <= 0 || epsDual <= 0 {
		panic("qp: WithInfeasibilityTolerances: tolerances must be positive")
	}
	return func(p *SolverParams) { p.EpsPrimInf, p.EpsDualInf = epsPrim, epsDual }
}

// WithStopCheckIter overrides the termination-check interval.
func WithStopCheckIter(n int) Option {
	if n <= 0 {
		panic("qp: WithStopCheckIter: n must be positive")
	}
	return func(p *SolverParams) { p.StopCheckIter = n }
}

// WithStrictDualTolerance toggles the literal-vs-corrected dual tolerance formula.
func WithStrictDualTolerance(strict bool) Option {
	return func(p *SolverParams) { p.StrictDualTolerance = strict }
}

// WithPolish toggles the post-ADMM polishing stage.
func WithPolish(enabled bool) Option {
	return func(p *SolverParams) { p.Polish = enabled }
}

// WithPolishRefineIters overrides the polisher's iterative-refinement budget.
func WithPolishRefineIters(n int) Option {
	if n < 0 {
		panic("qp: WithPolishRefineIters: n must be non-negative")
	}
	return func(p *SolverParams) { p.PolishRefineIters = n }
}

// WithPolishDelta overrides the regularization added to the reduced
// KKT system assembled during polishing.
func WithPolishDelta(delta float64) Option {
	if delta < 0 {
		panic("qp: WithPolishDelta: delta must be non-negative")
	}
	return func(p *SolverParams) { p.PolishDelta = delta }
}

// WithOnIteration installs a passive per-iteration observer.
func WithOnIteration(fn func(iter int, x, y []float64)) Option {
	return func(p *SolverParams) { p.OnIteration = fn }
}
