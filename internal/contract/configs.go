package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/EmilStenstrom/gamecache/schema"
)

// Default values for configuration.
const (
	DefaultSnapshotTag   = "database"
	DefaultSnapshotAsset = "gamecache.sqlite.gz"
	DefaultManifestPath  = "scripts/requirements.in"
	DefaultSnapshotDB    = "gamecache.sqlite"
)

// Remote endpoints and identity headers.
const (
	UserAgent        = "GameCache/1.0"
	AcceptGitHubJSON = "application/vnd.github+json"

	GitHubAPIBase = "https://api.github.com"
	ProxyBase     = "https://cors-proxy.mybgg.workers.dev"
	BGGAPIBase    = "https://boardgamegeek.com/xmlapi2"

	UpstreamOwner  = "EmilStenstrom"
	UpstreamRepo   = "gamecache"
	FallbackBranch = "master"

	UpgradeInstructionsURL = "https://github.com/EmilStenstrom/gamecache#updating-your-fork"
)

// Per-call timeout budgets.
const (
	GitHubTimeout = 10 * time.Second
	ProxyTimeout  = 20 * time.Second
	BGGTimeout    = 10 * time.Second
	UploadTimeout = 5 * time.Minute
)

// SnippetLimit caps error body excerpts surfaced in outcome messages.
const SnippetLimit = 300

// Config holds the runtime configuration for a run.
// This struct remains the "final, validated" config.
type Config struct {
	Title       string
	BGGUsername string
	GithubRepo  string // raw github_repo value, normalized later by the identifier check

	BGGToken    string
	GithubToken string

	SnapshotTag   string
	SnapshotAsset string
	ManifestPath  string

	SkipUpdateCheck bool // populated from GAMECACHE_SKIP_UPDATE_CHECK

	CacheBGG    bool
	NoUpload    bool
	ParquetFile string

	Output schema.OutputMode
	Detail bool
	Width  int // Terminal width override (0 = auto-detect)

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	UseColors bool // Enable colored labels in table output
}

// Clone returns a shallow copy of the config. Handlers that override
// fields per request work on the copy.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from config.ini [project] section ---
	Title       string `mapstructure:"title"`
	BGGUsername string `mapstructure:"bgg_username"`
	GithubRepo  string `mapstructure:"github_repo"`
	BGGToken    string `mapstructure:"bgg_token"`
	GithubToken string `mapstructure:"github_token"`

	SnapshotTag   string `mapstructure:"snapshot_tag"`
	SnapshotAsset string `mapstructure:"snapshot_asset"`

	// --- Fields from environment (GAMECACHE_ prefix) ---
	SkipUpdateCheck string `mapstructure:"skip_update_check"`

	// --- Fields from rootCmd.PersistentFlags() ---
	Output         string `mapstructure:"output"`
	Detail         bool   `mapstructure:"detail"`
	Width          int    `mapstructure:"width"`
	Color          string `mapstructure:"color"`
	CacheBackend   string `mapstructure:"cache-backend"`
	CacheDBConnect string `mapstructure:"cache-db-connect"`

	// --- Fields from validateCmd.Flags() ---
	Manifest string `mapstructure:"manifest"`

	// --- Fields from publishCmd.Flags() ---
	NoUpload    bool   `mapstructure:"no-upload"`
	CacheBGG    bool   `mapstructure:"cache-bgg"`
	ParquetFile string `mapstructure:"parquet-file"`
}

// RequiredKeys are the config.ini keys a run cannot start without.
var RequiredKeys = []string{"title", "bgg_username", "github_repo"}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateProjectKeys(cfg, input); err != nil {
		return err
	}
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	return nil
}

// validateProjectKeys enforces the required config.ini keys and rejects
// template placeholders the user forgot to replace.
func validateProjectKeys(cfg *Config, input *ConfigRawInput) error {
	values := map[string]string{
		"title":        input.Title,
		"bgg_username": input.BGGUsername,
		"github_repo":  input.GithubRepo,
	}
	for _, key := range RequiredKeys {
		v := strings.TrimSpace(values[key])
		if v == "" {
			return fmt.Errorf("config.ini is missing required key %q", key)
		}
		if strings.Contains(strings.ToUpper(v), "YOUR_") {
			return fmt.Errorf("config.ini key %q still has the template placeholder %q", key, values[key])
		}
	}

	cfg.Title = strings.TrimSpace(input.Title)
	cfg.BGGUsername = strings.TrimSpace(input.BGGUsername)
	cfg.GithubRepo = strings.TrimSpace(input.GithubRepo)
	cfg.BGGToken = strings.TrimSpace(input.BGGToken)
	cfg.GithubToken = strings.TrimSpace(input.GithubToken)

	return nil
}

// validateSimpleInputs processes all non-backend fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.Detail = input.Detail
	cfg.Width = input.Width
	cfg.NoUpload = input.NoUpload
	cfg.CacheBGG = input.CacheBGG
	cfg.ParquetFile = strings.TrimSpace(input.ParquetFile)

	// --- 1. Defaults for optional publish settings ---
	cfg.SnapshotTag = strings.TrimSpace(input.SnapshotTag)
	if cfg.SnapshotTag == "" {
		cfg.SnapshotTag = DefaultSnapshotTag
	}
	cfg.SnapshotAsset = strings.TrimSpace(input.SnapshotAsset)
	if cfg.SnapshotAsset == "" {
		cfg.SnapshotAsset = DefaultSnapshotAsset
	}
	cfg.ManifestPath = strings.TrimSpace(input.Manifest)
	if cfg.ManifestPath == "" {
		cfg.ManifestPath = DefaultManifestPath
	}

	// --- 2. Update check toggle ---
	if input.SkipUpdateCheck != "" {
		skip, err := ParseBoolString(input.SkipUpdateCheck)
		if err != nil {
			return fmt.Errorf("invalid GAMECACHE_SKIP_UPDATE_CHECK value: %w", err)
		}
		cfg.SkipUpdateCheck = skip
	}

	// --- 3. Color flag ---
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 4. Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, json", input.Output)
	}

	return nil
}

// validateBackendConfigs validates the response cache backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidCacheBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	return ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect)
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}
