package schema

// Custom string types for type safety.
type (
	// Severity represents the outcome level of a setup check.
	Severity string

	// DriftErrorKind classifies failures of the upstream drift check.
	DriftErrorKind string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching.
	DatabaseBackend string
)

// All check severities supported.
const (
	SeverityPass Severity = "pass"
	SeverityWarn Severity = "warn"
	SeverityFail Severity = "fail"
)

// All drift error kinds supported.
const (
	DriftNetwork    DriftErrorKind = "network"
	DriftTimeout    DriftErrorKind = "timeout"
	DriftDecode     DriftErrorKind = "decode"
	DriftUnexpected DriftErrorKind = "unexpected"
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
)

// All cache backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Stable check names, in the order the orchestrator runs them.
const (
	CheckIdentifier   = "github_repo format"
	CheckAccount      = "GitHub account"
	CheckRepository   = "GitHub repository"
	CheckProxy        = "CORS proxy"
	CheckDependencies = "tooling dependencies"
	CheckCollection   = "BGG collection"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	JSONOut: {},
}

// ValidCacheBackends lists all valid cache backends.
var ValidCacheBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidSeverities lists all valid check severities.
var ValidSeverities = map[Severity]struct{}{
	SeverityPass: {},
	SeverityWarn: {},
	SeverityFail: {},
}
