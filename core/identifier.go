package core

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/EmilStenstrom/gamecache/schema"
)

// Identifier grammar. Owner follows the GitHub username rules (max 39 chars,
// no leading/trailing hyphen); repo additionally rejects dot traversal and
// percent escapes below.
var (
	urlFormPattern = regexp.MustCompile(`(?i)^(?:https?://)?(?:www\.)?github\.com/([^/]+)/([^/]+)$`)
	ownerPattern   = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9-]{0,37}[A-Za-z0-9])?$`)
	repoPattern    = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
)

// CheckIdentifier parses the github_repo config value into its canonical
// owner/repo form. It emits exactly one outcome: Warn when the value was a
// full GitHub URL (still usable), Fail when the grammar is violated, Pass
// otherwise. A normalized value re-normalizes to itself with zero warnings.
func CheckIdentifier(raw string) (schema.RepoIdentifier, schema.ValidationOutcome) {
	ident := schema.RepoIdentifier{Raw: raw}

	trimmed := strings.TrimRight(strings.TrimSpace(raw), "/")
	candidate := trimmed
	fromURL := false
	if m := urlFormPattern.FindStringSubmatch(trimmed); m != nil {
		candidate = m[1] + "/" + m[2]
		fromURL = true
	}

	parts := strings.Split(candidate, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return ident, schema.ValidationOutcome{
			CheckName: schema.CheckIdentifier,
			Severity:  schema.SeverityFail,
			Message:   fmt.Sprintf("github_repo must be in OWNER/REPO format, got %q", raw),
		}
	}

	// Only grammar-clean values populate the identifier fields. A rejected
	// value keeps Raw alone so later checks cannot build URLs from it.
	owner, repo := parts[0], parts[1]
	if !ownerPattern.MatchString(owner) {
		return ident, schema.ValidationOutcome{
			CheckName: schema.CheckIdentifier,
			Severity:  schema.SeverityFail,
			Message:   fmt.Sprintf("github_repo has an invalid GitHub owner %q", owner),
		}
	}
	if !validRepoName(repo) {
		return ident, schema.ValidationOutcome{
			CheckName: schema.CheckIdentifier,
			Severity:  schema.SeverityFail,
			Message:   fmt.Sprintf("github_repo has an invalid repository name %q", repo),
		}
	}

	ident.Owner = owner
	ident.Repo = repo
	ident.Normalized = owner + "/" + repo

	if fromURL {
		return ident, schema.ValidationOutcome{
			CheckName: schema.CheckIdentifier,
			Severity:  schema.SeverityWarn,
			Message:   fmt.Sprintf("github_repo is a URL; use the bare %q form instead", ident.Normalized),
			Details: []string{
				fmt.Sprintf("Set github_repo = %s in config.ini", ident.Normalized),
			},
		}
	}

	return ident, schema.ValidationOutcome{
		CheckName: schema.CheckIdentifier,
		Severity:  schema.SeverityPass,
		Message:   fmt.Sprintf("github_repo looks good: %s", ident.Normalized),
	}
}

// validRepoName enforces the repo grammar plus the traversal rules:
// never "." or "..", no ".." substring, no percent escapes.
func validRepoName(repo string) bool {
	if repo == "." || repo == ".." {
		return false
	}
	if strings.Contains(repo, "..") || strings.Contains(repo, "%") {
		return false
	}
	return repoPattern.MatchString(repo)
}
