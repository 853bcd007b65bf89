package cmd

import (
	"github.com/huangsam/acqscore/core"
	"github.com/huangsam/acqscore/internal/contract"
	"github.com/spf13/cobra"
)

// sampleCmd prints the built-in sample targets.
var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Print the built-in sample targets.",
	Long: `Print the sample targets as YAML, JSON or CSV so they can be edited
and passed back to rank or score.

Examples:
  # Start a target list from the samples
  acqscore sample --output-file targets.yaml
  acqscore rank targets.yaml`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSample(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot print sample targets", err)
		}
	},
}
