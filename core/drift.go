package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/EmilStenstrom/gamecache/internal/contract"
	"github.com/EmilStenstrom/gamecache/schema"
)

// DriftError classifies a failed upstream comparison. Callers decide per
// kind whether to stay silent or surface the failure; none of them may
// affect the exit status of the surrounding command.
type DriftError struct {
	Kind schema.DriftErrorKind
	Err  error
}

func (e *DriftError) Error() string {
	return fmt.Sprintf("upstream drift check (%s): %v", e.Kind, e.Err)
}

func (e *DriftError) Unwrap() error {
	return e.Err
}

// CheckUpstreamDrift reports how many commits the user fork trails behind
// upstream. Branch resolution failures fall back to the default branch name
// rather than aborting; only the compare call itself can fail the check.
func CheckUpstreamDrift(ctx context.Context, web contract.WebClient, ident schema.RepoIdentifier, token string) (*schema.DriftResult, error) {
	upstreamBranch := defaultBranch(ctx, web, contract.UpstreamOwner, contract.UpstreamRepo, token)
	forkBranch := defaultBranch(ctx, web, ident.Owner, ident.Repo, token)

	url := fmt.Sprintf("%s/repos/%s/%s/compare/%s...%s:%s",
		contract.GitHubAPIBase, contract.UpstreamOwner, contract.UpstreamRepo,
		upstreamBranch, ident.Owner, forkBranch)
	resp, err := web.Do(ctx, http.MethodGet, url, githubHeaders(token), contract.GitHubTimeout)
	if err != nil {
		return nil, &DriftError{Kind: classifyTransport(err), Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &DriftError{
			Kind: schema.DriftUnexpected,
			Err:  fmt.Errorf("compare returned status %d: %s", resp.StatusCode, contract.Snippet(resp.Body)),
		}
	}

	var payload struct {
		BehindBy int `json:"behind_by"`
	}
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return nil, &DriftError{Kind: schema.DriftDecode, Err: err}
	}

	return &schema.DriftResult{BehindBy: payload.BehindBy}, nil
}

// defaultBranch resolves the default branch of a repository, falling back
// to the historical default when the lookup fails for any reason.
func defaultBranch(ctx context.Context, web contract.WebClient, owner, repo, token string) string {
	url := fmt.Sprintf("%s/repos/%s/%s", contract.GitHubAPIBase, owner, repo)
	resp, err := web.Do(ctx, http.MethodGet, url, githubHeaders(token), contract.GitHubTimeout)
	if err != nil || resp.StatusCode != http.StatusOK {
		return contract.FallbackBranch
	}

	var payload struct {
		DefaultBranch string `json:"default_branch"`
	}
	if err := json.Unmarshal(resp.Body, &payload); err != nil || payload.DefaultBranch == "" {
		return contract.FallbackBranch
	}
	return payload.DefaultBranch
}

// classifyTransport separates timeouts from other network failures.
func classifyTransport(err error) schema.DriftErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return schema.DriftTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return schema.DriftTimeout
	}
	return schema.DriftNetwork
}
