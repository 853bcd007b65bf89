package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/acqscore/internal/contract"
	"github.com/huangsam/acqscore/internal/iocache"
	"github.com/huangsam/acqscore/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historySetup loads minimal configuration needed for history operations.
// This is used by commands that need history access without full shared setup.
func historySetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend, connStr, err := backendFromViper("history-backend", "history-db-connect")
	if err != nil {
		return err
	}

	// No enrichment cache for history commands
	if err := iocache.InitCaching("", "", backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}

	cfg.AnalysisBackend = backend
	cfg.AnalysisDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")

	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup loads minimal configuration needed for migrate operations.
// It does NOT initialize stores or create tables, so migrations can run on a fresh database.
func historyMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend, connStr, err := backendFromViper("history-backend", "history-db-connect")
	if err != nil {
		return err
	}

	if backend == schema.SQLiteBackend {
		connStr = sqliteFilePath(connStr, iocache.GetAnalysisDBFilePath())
	}

	cfg.AnalysisBackend = backend
	cfg.AnalysisDBConnect = connStr

	return nil
}

// historyMigrateSetupWrapper wraps historyMigrateSetup to provide PreRunE for migrate command.
func historyMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return historyMigrateSetup()
}

// historyCmd focused on scoring history management.
//
// Note: History subcommands use minimal initialization (historySetup) instead of
// the full sharedSetup used by scoring commands. This avoids input validation
// and weight processing for simple history operations.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage scoring history and exports",
	Long: `Manage the scoring history recorded by rank and score.

When a history backend is configured, every run stores:
- Run metadata (timestamp, configuration, duration)
- Each target's total, label and component scores

Supported backends: SQLite, MySQL, PostgreSQL, or None (default, disabled)

Subcommands:
  status  - Show history statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all history
  migrate - Run database schema migrations

Examples:
  # Record runs to a local SQLite file
  acqscore rank targets.yaml --history-backend sqlite

  # Check history status
  acqscore history status --history-backend sqlite

  # Export for analysis in pandas/DuckDB
  acqscore history export --history-backend sqlite --output-file history.parquet`,
}

// historyClearCmd clears the scoring history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded scoring history",
	Long: `Delete all stored scoring runs and target scores.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  acqscore history export --output-file backup.parquet
  acqscore history clear`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		// The store holds the SQLite file open
		iocache.CloseCaching()
		dbFilePath := sqliteFilePath(cfg.AnalysisDBConnect, iocache.GetAnalysisDBFilePath())
		if err := iocache.ClearAnalysis(cfg.AnalysisBackend, dbFilePath, cfg.AnalysisDBConnect); err != nil {
			contract.LogFatal("Failed to clear scoring history", err)
		}
		fmt.Println("Scoring history cleared successfully.")
	},
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display history statistics and connection details",
	Long: `Show the backend, run count, run time range and table sizes of the scoring history.

Examples:
  # Check history status
  acqscore history status`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := iocache.Manager.GetAnalysisStore()
		if store == nil {
			fmt.Println("Scoring history is disabled.")
			return
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		iocache.PrintAnalysisStatus(os.Stdout, status)
	},
}

// historyExportCmd exports scoring history to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export scoring history to Parquet for BI tools and analytics",
	Long: `Export all stored scoring history to Parquet format.

Exports two datasets:
- Scoring runs - metadata about each run
- Target scores - totals, labels and component scores per target

Requires: --output-file parameter

Examples:
  # Export all data
  acqscore history export --output-file acqscore-data.parquet

  # Use with DuckDB for analysis
  duckdb -c "SELECT * FROM read_parquet('acqscore-data.parquet.target_scores.parquet') LIMIT 10"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExportAnalysis(iocache.Manager.GetAnalysisStore(), cfg.OutputFile, os.Stdout); err != nil {
			contract.LogFatal("Failed to export scoring history", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the scoring history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  acqscore history migrate --history-backend sqlite

  # Rollback to initial state
  acqscore history migrate --history-backend sqlite --target-version 0`,
	PreRunE: historyMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateAnalysis(cfg.AnalysisBackend, cfg.AnalysisDBConnect, targetVersion, os.Stdout); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
