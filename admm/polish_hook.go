// SPDX-License-Identifier: MIT
package admm

import (
	"github.com/katalvlaran/qpsolve/polish"
	"github.com/katalvlaran/qpsolve/qp"
)

// polishSolution runs the polish stage on an already-optimal solution.
// Kept as a thin named wrapper (rather than an inline call in Solve) so
// the ADMM loop above reads as pure iteration logic.
func polishSolution(problem qp.System, sol *qp.Solution, params qp.SolverParams) {
	polish.Run(problem, sol, params)
}
