package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/acqscore/internal/contract"
	"github.com/huangsam/acqscore/internal/iocache"
	"github.com/spf13/cobra"
)

// cacheSetup loads minimal configuration needed for cache operations.
// This is used by commands that need cache access without full shared setup.
func cacheSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend, connStr, err := backendFromViper("cache-backend", "cache-db-connect")
	if err != nil {
		return err
	}

	// No history tracking for cache commands
	if err := iocache.InitCaching(backend, connStr, "", ""); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr

	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheCmd focused on enrichment cache management.
//
// Note: Cache subcommands use minimal initialization (cacheSetup) instead of
// the full sharedSetup used by scoring commands. This avoids input validation
// and weight processing for simple cache operations.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the enrichment cache used by the live source",
	Long: `Manage the cache of enrichment responses from the live source.

Live lookups are cached per company so repeated runs do not hit the API again
until the entry is older than --enrichment-ttl.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status - Show cache statistics and connection info
  clear  - Remove all cached data

Examples:
  # Check cache status
  acqscore cache status

  # Force fresh lookups on the next run
  acqscore cache clear`,
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached enrichment data",
	Long: `Delete all cached enrichment responses from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the cache table

Examples:
  # Clear SQLite cache (default)
  acqscore cache clear

  # Clear PostgreSQL cache (set connection string via env variable)
  ACQSCORE_CACHE_BACKEND=postgresql ACQSCORE_CACHE_DB_CONNECT="..." acqscore cache clear`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		// The store holds the SQLite file open
		iocache.CloseCaching()
		if err := iocache.ClearCache(cfg.CacheBackend, sqliteFilePath(cfg.CacheDBConnect, iocache.GetDBFilePath()), cfg.CacheDBConnect); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	Long: `Show the backend, entry count and entry age range of the enrichment cache.

Examples:
  # Check cache status
  acqscore cache status`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := iocache.Manager.GetEnrichmentStore()
		if store == nil {
			fmt.Println("Enrichment cache is disabled.")
			return
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		iocache.PrintCacheStatus(os.Stdout, status)
	},
}
