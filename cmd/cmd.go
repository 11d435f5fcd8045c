// Package cmd defines the command-line interface for gamecache.
package cmd

import (
	"github.com/EmilStenstrom/gamecache/internal/contract"
	"github.com/EmilStenstrom/gamecache/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().Bool("detail", false, "Print the validation report as a table")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or json")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("manifest", contract.DefaultManifestPath, "Path to the tooling dependency manifest")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of publishCmd to Viper
	publishCmd.Flags().Bool("no-upload", false, "Build the snapshot but skip the release upload")
	publishCmd.Flags().Bool("cache-bgg", false, "Cache BGG responses between publish runs")
	publishCmd.Flags().String("parquet-file", "", "Optional path to write a parquet export of the collection")
	if err := viper.BindPFlags(publishCmd.Flags()); err != nil {
		contract.LogFatal("Error binding publish flags", err)
	}
}
