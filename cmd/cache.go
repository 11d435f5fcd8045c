package cmd

import (
	"fmt"

	"github.com/EmilStenstrom/gamecache/internal/contract"
	"github.com/EmilStenstrom/gamecache/internal/iocache"
	"github.com/EmilStenstrom/gamecache/internal/outwriter"
	"github.com/EmilStenstrom/gamecache/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cacheSetup loads minimal configuration needed for cache operations.
// This is used by commands that need cache access without full shared setup.
func cacheSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get cache-related config values
	backend := schema.DatabaseBackend(viper.GetString("cache-backend"))
	connStr := viper.GetString("cache-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Initialize caching with the loaded config
	if err := iocache.InitCaching(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr
	cfg.Output = schema.OutputMode(viper.GetString("output"))

	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheCmd focused on cache management.
//
// Note: Cache subcommands use minimal initialization (cacheSetup) instead of
// the full sharedSetup used by the validate and publish commands. This avoids
// project key validation for simple cache operations.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the BGG response cache (improves performance)",
	Long: `Manage the BGG response cache that speeds up repeated publishes.

GameCache can cache BGG API responses to avoid re-downloading your
collection on every run. Large collections are built asynchronously on
the BGG side, so skipping the download saves the longest wait.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None

Subcommands:
  status - Show cache statistics and connection info
  clear  - Remove all cached data

Examples:
  # Check cache status
  gamecache cache status

  # Clear cache after your collection changed
  gamecache cache clear`,
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached BGG responses",
	Long: `Delete all cached BGG responses from the configured backend.

Use this when:
- Your BGG collection changed and the cache is stale
- Testing publish behavior without cached responses

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the cache table

Examples:
  # Clear SQLite cache (default)
  gamecache cache clear

  # Clear MySQL cache (set connection string via env variable)
  GAMECACHE_CACHE_BACKEND=mysql GAMECACHE_CACHE_DB_CONNECT="..." gamecache cache clear`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearCache(cfg.CacheBackend, contract.GetCacheDBFilePath(), cfg.CacheDBConnect); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	Long: `Show detailed information about the BGG response cache.

Displays:
- Backend type and connection status
- Total number of cached responses
- Last and oldest cache entry timestamps

Examples:
  # Check cache status
  gamecache cache status`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := iocache.Manager.GetResponseStore()
		if store == nil {
			contract.LogFatal("Failed to get cache status", fmt.Errorf("caching is not initialized"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		if err := outwriter.NewOutWriter().WriteCacheStatus(status, cfg); err != nil {
			contract.LogFatal("Failed to write cache status", err)
		}
	},
}
