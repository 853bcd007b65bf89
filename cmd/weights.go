package cmd

import (
	"github.com/huangsam/acqscore/core"
	"github.com/huangsam/acqscore/internal/contract"
	"github.com/spf13/cobra"
)

// weightsCmd displays the scoring model.
var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "Display the scoring components and weights in effect.",
	Long: `Show what each scoring component measures and how much it counts.

Weights come from the defaults, the weights section of the config file
and the --weights-override flag, in that order.

Examples:
  # Show the default model
  acqscore weights

  # Preview custom weights
  acqscore weights --weights-override "owner_readiness:0.4,financial_health:0.2,valuation_reason:0.2,business_quality:0.1,transition_ease:0.1"`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteWeights(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot display weights", err)
		}
	},
}
