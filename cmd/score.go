package cmd

import (
	"github.com/huangsam/acqscore/core"
	"github.com/huangsam/acqscore/internal/contract"
	"github.com/spf13/cobra"
)

// scoreCmd scores a single named target.
var scoreCmd = &cobra.Command{
	Use:   "score [file] --name NAME",
	Short: "Score one target and explain the result.",
	Long: `Load targets from a file, pick the one whose company name matches --name,
and print its total, label, component breakdown and signals.

The match ignores case. Without a file the built-in sample targets are used.

Examples:
  # Score a sample target
  acqscore score --name "TechFlow Solutions"

  # Score a target from a file as JSON
  acqscore score targets.yaml --name "Acme HVAC" --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		name, _ := cmd.Flags().GetString("name")
		if err := core.ExecuteScore(rootCtx, cfg, cacheManager, name); err != nil {
			contract.LogFatal("Cannot score target", err)
		}
	},
}
