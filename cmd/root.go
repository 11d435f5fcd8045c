package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/EmilStenstrom/gamecache/internal/contract"
	"github.com/EmilStenstrom/gamecache/internal/iocache"
	"github.com/EmilStenstrom/gamecache/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// projectKeys are read from the [project] section of config.ini when the
// file scopes them there.
var projectKeys = []string{"title", "bgg_username", "github_repo"}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "gamecache",
	Short:              "Publish your BoardGameGeek collection as a searchable site.",
	Long:               `GameCache downloads your BGG collection, builds a snapshot database and publishes it to your GitHub fork.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Set config file name and paths
		viper.SetConfigName("config") // Name of config file (without extension)
		viper.SetConfigType("ini")    // The project config is INI format
		viper.AddConfigPath(".")      // Look in the current directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("GAMECACHE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Keys without flags need an explicit env binding for Unmarshal to see them
	_ = viper.BindEnv("bgg_token")
	_ = viper.BindEnv("github_token")
	_ = viper.BindEnv("skip_update_check")

	// Set defaults in Viper
	viper.SetDefault("snapshot_tag", contract.DefaultSnapshotTag)
	viper.SetDefault("snapshot_asset", contract.DefaultSnapshotAsset)
	viper.SetDefault("manifest", contract.DefaultManifestPath)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("cache-backend", schema.SQLiteBackend)
	viper.SetDefault("cache-db-connect", "")
	viper.SetDefault("color", "yes")
}

// sharedSetup unmarshals config and runs validation.
func sharedSetup(_ context.Context, _ *cobra.Command, _ []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 2. Promote keys scoped under [project] to their flat names.
	for _, key := range projectKeys {
		if !viper.IsSet(key) && viper.IsSet("project."+key) {
			viper.Set(key, viper.GetString("project."+key))
		}
	}

	// 3. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 4. Run all validation and complex parsing.
	// This function now populates the global 'cfg' from 'input'.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	// 5. Initialize the response cache with validated config
	if err := iocache.InitCaching(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return fmt.Errorf("failed to initialize caching: %w", err)
	}

	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	// Handle config file
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("ini")
		viper.AddConfigPath(".")
	}

	// Load config file if present
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
