// Package cmd defines the command-line interface for acqscore.
package cmd

import (
	"github.com/huangsam/acqscore/internal/contract"
	"github.com/huangsam/acqscore/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(rankCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(weightsCmd)
	rootCmd.AddCommand(sampleCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(historyCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().Bool("detail", false, "Print per-target industry and deal figures")
	rootCmd.PersistentFlags().Bool("explain", false, "Print the top component contributions per target")
	rootCmd.PersistentFlags().IntP("limit", "l", schema.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("signals", schema.DefaultSignalCount, "Signals shown per target (0 shows all)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or yaml")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("workers", schema.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("year", 0, "Year used to compute business age (0 = current year)")
	rootCmd.PersistentFlags().String("weights-override", "", "Component weights (format: 'owner_readiness:0.3,financial_health:0.25,...')")
	rootCmd.PersistentFlags().String("source", string(schema.StubSource), "Enrichment source: stub or live or none")
	rootCmd.PersistentFlags().Bool("merge-enrichment", true, "Merge enrichment data into records before scoring")
	rootCmd.PersistentFlags().String("source-url", "", "Base URL of the live enrichment API")
	rootCmd.PersistentFlags().String("source-token", "", "Bearer token for the live enrichment API (prefer ACQSCORE_SOURCE_TOKEN)")
	rootCmd.PersistentFlags().String("source-timeout", contract.DefaultSourceTimeout.String(), "Timeout per live enrichment request")
	rootCmd.PersistentFlags().String("enrichment-ttl", contract.DefaultEnrichmentTTL.String(), "How long cached enrichment stays fresh")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Enrichment cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("history-backend", string(schema.NoneBackend), "Scoring history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for scoring history (must differ from cache-db-connect)")
	rootCmd.PersistentFlags().String("log-level", contract.DefaultLogLevel, "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("log-format", contract.DefaultLogFormat, "Log format: console or json")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of rankCmd to Viper
	rankCmd.Flags().Int("min-score", 0, "Hide targets scoring below this total (0-100)")
	if err := viper.BindPFlags(rankCmd.Flags()); err != nil {
		contract.LogFatal("Error binding rank flags", err)
	}

	// The score name is read from the flag directly, not from config
	scoreCmd.Flags().String("name", "", "Company name of the target to score (case-insensitive)")

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
