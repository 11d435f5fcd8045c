// Package ghrelease uploads snapshot assets to GitHub releases.
package ghrelease

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/EmilStenstrom/gamecache/internal/contract"
	"github.com/EmilStenstrom/gamecache/schema"
)

// uploadAPIBase is the dedicated host for release asset uploads.
const uploadAPIBase = "https://uploads.github.com"

// release is the subset of the GitHub release payload the publisher needs.
type release struct {
	ID     int64          `json:"id"`
	Assets []releaseAsset `json:"assets"`
}

// releaseAsset is an existing asset attached to a release.
type releaseAsset struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// uploadedAsset is the response payload of an asset upload.
type uploadedAsset struct {
	BrowserDownloadURL string `json:"browser_download_url"`
}

// Publisher implements contract.ReleasePublisher against the GitHub API.
type Publisher struct {
	web   contract.WebUploader
	token string
}

var _ contract.ReleasePublisher = &Publisher{} // Compile-time check

// NewPublisher creates a release publisher. token must be a GitHub token
// with contents write access to the target repository.
func NewPublisher(web contract.WebUploader, token string) *Publisher {
	return &Publisher{web: web, token: token}
}

// Upload attaches the asset at assetPath to the release tagged tag,
// creating the release when it does not exist yet and replacing any
// previous asset of the same name. It returns the public download URL.
func (p *Publisher) Upload(ctx context.Context, ident schema.RepoIdentifier, tag, assetName, assetPath string) (string, error) {
	rel, err := p.ensureRelease(ctx, ident, tag)
	if err != nil {
		return "", err
	}

	// A release cannot carry two assets with the same name.
	for _, asset := range rel.Assets {
		if asset.Name == assetName {
			if err := p.deleteAsset(ctx, ident, asset.ID); err != nil {
				return "", err
			}
			break
		}
	}

	return p.uploadAsset(ctx, ident, rel.ID, assetName, assetPath)
}

// ensureRelease fetches the release for tag, creating it on 404.
func (p *Publisher) ensureRelease(ctx context.Context, ident schema.RepoIdentifier, tag string) (*release, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/releases/tags/%s",
		contract.GitHubAPIBase, ident.Owner, ident.Repo, url.PathEscape(tag))

	resp, err := p.web.Do(ctx, http.MethodGet, endpoint, p.headers(""), contract.GitHubTimeout)
	if err != nil {
		return nil, fmt.Errorf("fetch release %q: %w", tag, err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var rel release
		if err := json.Unmarshal(resp.Body, &rel); err != nil {
			return nil, fmt.Errorf("decode release %q: %w", tag, err)
		}
		return &rel, nil
	case http.StatusNotFound:
		return p.createRelease(ctx, ident, tag)
	default:
		return nil, fmt.Errorf("fetch release %q: GitHub returned status %d: %s",
			tag, resp.StatusCode, contract.Snippet(resp.Body))
	}
}

// createRelease creates a fresh release for tag.
func (p *Publisher) createRelease(ctx context.Context, ident schema.RepoIdentifier, tag string) (*release, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/releases", contract.GitHubAPIBase, ident.Owner, ident.Repo)
	payload, err := json.Marshal(map[string]any{
		"tag_name": tag,
		"name":     tag,
	})
	if err != nil {
		return nil, fmt.Errorf("encode release request: %w", err)
	}

	resp, err := p.web.DoUpload(ctx, http.MethodPost, endpoint,
		p.headers("application/json"), bytes.NewReader(payload), contract.GitHubTimeout)
	if err != nil {
		return nil, fmt.Errorf("create release %q: %w", tag, err)
	}
	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("create release %q: GitHub returned status %d: %s",
			tag, resp.StatusCode, contract.Snippet(resp.Body))
	}

	var rel release
	if err := json.Unmarshal(resp.Body, &rel); err != nil {
		return nil, fmt.Errorf("decode created release %q: %w", tag, err)
	}
	return &rel, nil
}

// deleteAsset removes an existing release asset.
func (p *Publisher) deleteAsset(ctx context.Context, ident schema.RepoIdentifier, assetID int64) error {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/releases/assets/%d",
		contract.GitHubAPIBase, ident.Owner, ident.Repo, assetID)

	resp, err := p.web.Do(ctx, http.MethodDelete, endpoint, p.headers(""), contract.GitHubTimeout)
	if err != nil {
		return fmt.Errorf("delete stale asset %d: %w", assetID, err)
	}
	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("delete stale asset %d: GitHub returned status %d: %s",
			assetID, resp.StatusCode, contract.Snippet(resp.Body))
	}
	return nil
}

// uploadAsset streams the asset file to the release and returns its
// public download URL.
func (p *Publisher) uploadAsset(ctx context.Context, ident schema.RepoIdentifier, releaseID int64, assetName, assetPath string) (string, error) {
	file, err := os.Open(assetPath)
	if err != nil {
		return "", fmt.Errorf("open asset %s: %w", assetPath, err)
	}
	defer func() { _ = file.Close() }()

	endpoint := fmt.Sprintf("%s/repos/%s/%s/releases/%d/assets?name=%s",
		uploadAPIBase, ident.Owner, ident.Repo, releaseID, url.QueryEscape(assetName))

	contentType := "application/octet-stream"
	if strings.HasSuffix(assetName, ".gz") {
		contentType = "application/gzip"
	}

	// Uploads can outlast the plain API timeout on slow links.
	resp, err := p.web.DoUpload(ctx, http.MethodPost, endpoint,
		p.headers(contentType), file, contract.UploadTimeout)
	if err != nil {
		return "", fmt.Errorf("upload asset %s: %w", assetName, err)
	}
	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("upload asset %s: GitHub returned status %d: %s",
			assetName, resp.StatusCode, contract.Snippet(resp.Body))
	}

	var uploaded uploadedAsset
	if err := json.Unmarshal(resp.Body, &uploaded); err != nil {
		return "", fmt.Errorf("decode uploaded asset %s: %w", assetName, err)
	}
	return uploaded.BrowserDownloadURL, nil
}

// headers builds the GitHub API headers. contentType may be empty for
// bodyless requests.
func (p *Publisher) headers(contentType string) map[string]string {
	headers := map[string]string{"Accept": contract.AcceptGitHubJSON}
	if p.token != "" {
		headers["Authorization"] = "Bearer " + p.token
	}
	if contentType != "" {
		headers["Content-Type"] = contentType
	}
	return headers
}
