// SPDX-License-Identifier: MIT

// Command qpsolve is a small demonstration CLI front-end over the admm
// solver: it loads a dense QP problem (and, optionally, solver
// parameters) from YAML files and prints the resulting solution.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/qpsolve/admm"
	"github.com/katalvlaran/qpsolve/internal/cliconfig"
	"github.com/katalvlaran/qpsolve/qp"
)

var paramsFile string

func main() {
	rootCmd := &cobra.Command{
		Use:   "qpsolve",
		Short: "quadratic program solver (ADMM/OSQP-family)",
	}

	solveCmd := &cobra.Command{
		Use:   "solve [problem.yaml]",
		Short: "solve a QP problem loaded from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE:  runSolve,
	}
	solveCmd.Flags().StringVar(&paramsFile, "params", "", "solver parameters YAML file (optional)")

	defaultsCmd := &cobra.Command{
		Use:   "defaults",
		Short: "print the default solver parameters as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cliconfig.WriteDefaultParams(os.Stdout)
		},
	}

	rootCmd.AddCommand(solveCmd, defaultsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSolve(cmd *cobra.Command, args []string) error {
	problem, err := cliconfig.LoadProblem(args[0])
	if err != nil {
		return err
	}

	params := qp.DefaultParams()
	if paramsFile != "" {
		params, err = cliconfig.LoadParams(paramsFile)
		if err != nil {
			return err
		}
	}

	sol, err := admm.Solve(problem, params, nil)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "status: %s\n", sol.Code)
	fmt.Fprintf(cmd.OutOrStdout(), "x: %v\n", sol.Primal)
	fmt.Fprintf(cmd.OutOrStdout(), "y: %v\n", sol.Dual)
	return nil
}
