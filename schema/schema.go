// Package schema has configs, models and global variables for all parts of gamecache.
package schema

// RepoIdentifier is the parsed form of the github_repo config value.
// Built once per run by the identifier check and treated as read-only after.
type RepoIdentifier struct {
	Raw        string `json:"raw"`        // value exactly as written in config.ini
	Owner      string `json:"owner"`      // GitHub user or organization
	Repo       string `json:"repo"`       // repository name within the owner account
	Normalized string `json:"normalized"` // canonical "owner/repo" form
}

// String returns the canonical "owner/repo" form.
func (r RepoIdentifier) String() string {
	return r.Normalized
}

// ValidationOutcome is the result of a single setup check.
type ValidationOutcome struct {
	CheckName string   `json:"check_name"`
	Severity  Severity `json:"severity"`
	Message   string   `json:"message"`
	Details   []string `json:"details,omitempty"` // remediation or context lines, printed indented
}

// Passed reports whether this outcome keeps the run green.
// Warnings never lower the overall result.
func (o ValidationOutcome) Passed() bool {
	return o.Severity != SeverityFail
}

// Report aggregates every outcome of a validation run in execution order.
type Report struct {
	Outcomes    []ValidationOutcome `json:"outcomes"`
	OverallPass bool                `json:"overall_pass"`
}

// Reduce folds the outcome pass bits into OverallPass. Called once after
// all checks ran, so a failing check can never short-circuit later checks.
func (r *Report) Reduce() {
	pass := true
	for _, o := range r.Outcomes {
		pass = pass && o.Passed()
	}
	r.OverallPass = pass
}

// DependencySpec is one entry of the tooling dependency manifest.
type DependencySpec struct {
	DeclaredName string `json:"declared_name"` // name as written, version clause stripped
	ImportName   string `json:"import_name"`   // name used for the import probe
}

// DriftResult is the outcome of comparing the user fork against upstream.
type DriftResult struct {
	BehindBy int `json:"behind_by"` // commits the fork trails behind upstream
}
