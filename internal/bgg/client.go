// Package bgg talks to the BoardGameGeek XML API.
package bgg

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/EmilStenstrom/gamecache/internal/contract"
	"github.com/EmilStenstrom/gamecache/schema"
)

// cacheSchemaVersion invalidates cached responses when the payload handling
// changes. Bump it when the decode shape changes.
const cacheSchemaVersion = 1

// retryDelays is the fixed backoff ladder for 202 accepted-and-queued
// responses. BGG builds large collections asynchronously.
var retryDelays = []time.Duration{
	1 * time.Second,
	2 * time.Second,
	4 * time.Second,
	8 * time.Second,
	16 * time.Second,
}

// Client implements contract.BGGClient with an optional response cache.
type Client struct {
	web   contract.WebClient
	store contract.CacheStore // nil disables caching
	token string
	sleep func(time.Duration)
}

var _ contract.BGGClient = &Client{} // Compile-time check

// NewClient creates a BGG client. store may be nil to bypass caching.
func NewClient(web contract.WebClient, store contract.CacheStore, token string) *Client {
	return &Client{web: web, store: store, token: token, sleep: time.Sleep}
}

// FetchUser resolves a BGG username. A response that does not decode into
// a user payload (BGG answers errors with 200 and an <errors> document)
// yields a nil payload and the raw body.
func (c *Client) FetchUser(ctx context.Context, username string) (*schema.UserPayload, []byte, error) {
	endpoint := fmt.Sprintf("%s/user?name=%s", contract.BGGAPIBase, url.QueryEscape(username))
	body, err := c.fetch(ctx, endpoint)
	if err != nil {
		return nil, nil, err
	}

	var payload schema.UserPayload
	if err := xml.Unmarshal(body, &payload); err != nil {
		return nil, body, nil
	}
	return &payload, body, nil
}

// FetchCollection fetches the owned collection of a user, polling while BGG
// responds 202. Decode failures return the raw body so callers can fall
// back to marker scanning.
func (c *Client) FetchCollection(ctx context.Context, username string) (*schema.CollectionPayload, []byte, error) {
	endpoint := fmt.Sprintf("%s/collection?username=%s&own=1&stats=1", contract.BGGAPIBase, url.QueryEscape(username))
	body, err := c.fetch(ctx, endpoint)
	if err != nil {
		return nil, nil, err
	}

	var payload schema.CollectionPayload
	if err := xml.Unmarshal(body, &payload); err != nil {
		return nil, body, nil
	}
	return &payload, body, nil
}

// fetch returns the response body for the endpoint, consulting the cache
// first and retrying on 202 with the fixed ladder.
func (c *Client) fetch(ctx context.Context, endpoint string) ([]byte, error) {
	if c.store != nil {
		if value, version, _, err := c.store.Get(endpoint); err == nil && version == cacheSchemaVersion {
			return value, nil
		}
	}

	var headers map[string]string
	if c.token != "" {
		headers = map[string]string{"Authorization": "Bearer " + c.token}
	}

	for attempt := 0; ; attempt++ {
		resp, err := c.web.Do(ctx, http.MethodGet, endpoint, headers, contract.BGGTimeout)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode == http.StatusAccepted {
			if attempt >= len(retryDelays) {
				return nil, fmt.Errorf("BGG is still preparing the response after %d attempts", attempt+1)
			}
			c.sleep(retryDelays[attempt])
			continue
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("BGG returned status %d for %s", resp.StatusCode, endpoint)
		}

		if c.store != nil {
			if err := c.store.Set(endpoint, resp.Body, cacheSchemaVersion, time.Now().Unix()); err != nil {
				contract.LogWarn("caching BGG response", err)
			}
		}
		return resp.Body, nil
	}
}
