// Package cli provides the command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/clausecheck-cli/internal/core/ports/driven"
	"github.com/custodia-labs/clausecheck-cli/internal/core/ports/driving"
	"github.com/custodia-labs/clausecheck-cli/internal/logger"
)

// Services injected by main before Execute. Commands check for nil and
// fail with a clear message rather than panicking.
var (
	analysisService driving.AnalysisService
	configStore     driven.ConfigStore
	version         = "dev"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "clausecheck",
	Short: "Check contracts against obligation lists",
	Long: `ClauseCheck analyses a contract against a list of obligations.
Each obligation is answered Yes or No with a rationale, the supporting
clauses, and suggested contract language when the obligation is missing.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Deps holds everything the commands need from the composition root.
type Deps struct {
	Analysis driving.AnalysisService
	Config   driven.ConfigStore
	Version  string
}

// Execute wires dependencies into the command tree and runs it.
func Execute(deps Deps) error {
	analysisService = deps.Analysis
	configStore = deps.Config
	if deps.Version != "" {
		version = deps.Version
	}
	return rootCmd.Execute()
}
