package core

import (
	"context"
	"fmt"
	"net/http"

	"github.com/EmilStenstrom/gamecache/internal/contract"
	"github.com/EmilStenstrom/gamecache/schema"
)

// CheckProxy probes the CORS proxy route for the identifier. Only a 200 is
// an authoritative positive; 404 means no snapshot asset has been published
// yet and 400 means the proxy rejected the identifier itself. A 400 is
// re-issued as GET because the proxy only writes its diagnostic into GET
// bodies.
func CheckProxy(ctx context.Context, web contract.WebClient, ident schema.RepoIdentifier) schema.ValidationOutcome {
	if ident.Owner == "" || ident.Repo == "" {
		return schema.ValidationOutcome{
			CheckName: schema.CheckProxy,
			Severity:  schema.SeverityFail,
			Message:   fmt.Sprintf("cannot build a proxy URL from invalid github_repo %q", ident.Raw),
		}
	}

	url := fmt.Sprintf("%s/%s/%s", contract.ProxyBase, ident.Owner, ident.Repo)
	resp, err := web.Do(ctx, http.MethodHead, url, nil, contract.ProxyTimeout)
	if err != nil {
		return schema.ValidationOutcome{
			CheckName: schema.CheckProxy,
			Severity:  schema.SeverityFail,
			Message:   fmt.Sprintf("could not reach the CORS proxy: %v", err),
		}
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return schema.ValidationOutcome{
			CheckName: schema.CheckProxy,
			Severity:  schema.SeverityPass,
			Message:   fmt.Sprintf("CORS proxy serves the snapshot for %s", ident.Normalized),
		}
	case http.StatusNotFound:
		return schema.ValidationOutcome{
			CheckName: schema.CheckProxy,
			Severity:  schema.SeverityFail,
			Message:   fmt.Sprintf("CORS proxy has no published snapshot for %s", ident.Normalized),
			Details: []string{
				fmt.Sprintf("No %s asset exists on the %q release yet", contract.DefaultSnapshotAsset, contract.DefaultSnapshotTag),
				"Run `gamecache publish` once to create it",
			},
		}
	case http.StatusBadRequest:
		detail := proxyRejectionDetail(ctx, web, url)
		return schema.ValidationOutcome{
			CheckName: schema.CheckProxy,
			Severity:  schema.SeverityFail,
			Message:   fmt.Sprintf("CORS proxy rejected the request: %s", detail),
			Details: []string{
				"github_repo must be in OWNER/REPO format",
			},
		}
	default:
		return schema.ValidationOutcome{
			CheckName: schema.CheckProxy,
			Severity:  schema.SeverityWarn,
			Message:   fmt.Sprintf("CORS proxy returned status %d", resp.StatusCode),
		}
	}
}

// proxyRejectionDetail re-issues a rejected HEAD as GET to read the body.
func proxyRejectionDetail(ctx context.Context, web contract.WebClient, url string) string {
	resp, err := web.Do(ctx, http.MethodGet, url, nil, contract.ProxyTimeout)
	if err != nil || len(resp.Body) == 0 {
		return "status 400"
	}
	return contract.Snippet(resp.Body)
}
