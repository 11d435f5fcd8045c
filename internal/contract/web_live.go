package contract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxBodyBytes caps how much of any remote response is read into memory.
// BGG collection payloads for large collections stay well under this.
const maxBodyBytes = 16 << 20

// LiveWebClient implements WebClient using net/http. It is the production
// implementation behind every remote check.
type LiveWebClient struct {
	client *http.Client
}

// NewLiveWebClient creates a web client. Per-request deadlines come from the
// timeout argument of Do, so the embedded client carries none of its own.
func NewLiveWebClient() *LiveWebClient {
	return &LiveWebClient{client: &http.Client{}}
}

var _ WebUploader = &LiveWebClient{} // Compile-time check

// Do executes one HTTP exchange. The User-Agent header is always set;
// callers may override it through headers. Non-2xx statuses are returned
// as responses, not errors.
func (c *LiveWebClient) Do(ctx context.Context, method, url string, headers map[string]string, timeout time.Duration) (*WebResponse, error) {
	return c.DoUpload(ctx, method, url, headers, nil, timeout)
}

// DoUpload executes one HTTP exchange with a request body attached.
func (c *LiveWebClient) DoUpload(ctx context.Context, method, url string, headers map[string]string, body io.Reader, timeout time.Duration) (*WebResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", UserAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response from %s: %w", url, err)
	}

	return &WebResponse{StatusCode: resp.StatusCode, Body: respBody}, nil
}
