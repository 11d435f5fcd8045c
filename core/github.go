package core

import (
	"context"
	"fmt"
	"net/http"

	"github.com/EmilStenstrom/gamecache/internal/contract"
	"github.com/EmilStenstrom/gamecache/schema"
)

// CheckAccount verifies that the GitHub account named by the identifier
// exists. A 404 is terminal for the whole existence check: the repository
// stage must be skipped when this outcome fails. Rate limiting (403) only
// warns so an anonymous run on a shared network still completes.
func CheckAccount(ctx context.Context, web contract.WebClient, ident schema.RepoIdentifier, token string) schema.ValidationOutcome {
	url := fmt.Sprintf("%s/users/%s", contract.GitHubAPIBase, ident.Owner)
	resp, err := web.Do(ctx, http.MethodGet, url, githubHeaders(token), contract.GitHubTimeout)
	if err != nil {
		return schema.ValidationOutcome{
			CheckName: schema.CheckAccount,
			Severity:  schema.SeverityFail,
			Message:   fmt.Sprintf("could not reach GitHub to verify account %q: %v", ident.Owner, err),
		}
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return schema.ValidationOutcome{
			CheckName: schema.CheckAccount,
			Severity:  schema.SeverityPass,
			Message:   fmt.Sprintf("GitHub account %q exists", ident.Owner),
		}
	case http.StatusNotFound:
		return schema.ValidationOutcome{
			CheckName: schema.CheckAccount,
			Severity:  schema.SeverityFail,
			Message:   fmt.Sprintf("GitHub account %q was not found", ident.Owner),
			Details: []string{
				"Check the owner part of github_repo in config.ini",
			},
		}
	case http.StatusForbidden:
		return schema.ValidationOutcome{
			CheckName: schema.CheckAccount,
			Severity:  schema.SeverityWarn,
			Message:   rateLimitMessage("account", resp),
		}
	default:
		return schema.ValidationOutcome{
			CheckName: schema.CheckAccount,
			Severity:  schema.SeverityWarn,
			Message:   fmt.Sprintf("GitHub returned status %d while verifying account %q: %s", resp.StatusCode, ident.Owner, contract.Snippet(resp.Body)),
		}
	}
}

// CheckRepository verifies that the repository exists under the account.
// A missing repository fails the run but never blocks later checks.
func CheckRepository(ctx context.Context, web contract.WebClient, ident schema.RepoIdentifier, token string) schema.ValidationOutcome {
	url := fmt.Sprintf("%s/repos/%s/%s", contract.GitHubAPIBase, ident.Owner, ident.Repo)
	resp, err := web.Do(ctx, http.MethodGet, url, githubHeaders(token), contract.GitHubTimeout)
	if err != nil {
		return schema.ValidationOutcome{
			CheckName: schema.CheckRepository,
			Severity:  schema.SeverityFail,
			Message:   fmt.Sprintf("could not reach GitHub to verify repository %q: %v", ident.Normalized, err),
		}
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return schema.ValidationOutcome{
			CheckName: schema.CheckRepository,
			Severity:  schema.SeverityPass,
			Message:   fmt.Sprintf("GitHub repository %q exists", ident.Normalized),
		}
	case http.StatusNotFound:
		return schema.ValidationOutcome{
			CheckName: schema.CheckRepository,
			Severity:  schema.SeverityFail,
			Message:   fmt.Sprintf("GitHub repository %q was not found", ident.Normalized),
			Details: []string{
				fmt.Sprintf("Create it at https://github.com/new or fix github_repo (owner %q exists)", ident.Owner),
			},
		}
	case http.StatusForbidden:
		return schema.ValidationOutcome{
			CheckName: schema.CheckRepository,
			Severity:  schema.SeverityWarn,
			Message:   rateLimitMessage("repository", resp),
		}
	default:
		return schema.ValidationOutcome{
			CheckName: schema.CheckRepository,
			Severity:  schema.SeverityWarn,
			Message:   fmt.Sprintf("GitHub returned status %d while verifying repository %q: %s", resp.StatusCode, ident.Normalized, contract.Snippet(resp.Body)),
		}
	}
}

// rateLimitMessage prefers the structured GitHub message over a raw snippet.
func rateLimitMessage(stage string, resp *contract.WebResponse) string {
	if msg := decodeGitHubMessage(resp.Body); msg != "" {
		return fmt.Sprintf("GitHub refused the %s lookup (403): %s", stage, msg)
	}
	return fmt.Sprintf("GitHub refused the %s lookup (403): %s", stage, contract.Snippet(resp.Body))
}
