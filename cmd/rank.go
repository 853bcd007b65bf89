package cmd

import (
	"github.com/huangsam/acqscore/core"
	"github.com/huangsam/acqscore/internal/contract"
	"github.com/spf13/cobra"
)

// rankCmd scores every target in a file and prints the best ones.
var rankCmd = &cobra.Command{
	Use:   "rank [file]",
	Short: "Show the top acquisition targets ranked by score.",
	Long: `Load targets from a JSON, YAML or CSV file, enrich and score each one,
and rank them from most to least attractive.

Each target gets a total from 0 to 100 built from five weighted components:
- Owner readiness: age, years owned, succession plan, stated intent
- Financial health: margin, revenue, growth, debt
- Valuation: asking price against EBITDA
- Business quality: customer concentration, recurring revenue, reviews, age
- Transition ease: management, processes, seller involvement

Without a file the built-in sample targets are used.

Examples:
  # Rank the sample targets
  acqscore rank

  # Show the ten best targets scoring at least 60
  acqscore rank targets.yaml --limit 10 --min-score 60

  # Include deal figures and the top contributions per target
  acqscore rank targets.json --detail --explain

  # Export rankings to CSV
  acqscore rank targets.csv --output csv --output-file ranked.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRank(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot rank targets", err)
		}
	},
}
