// Package core has core logic for the setup checks and the publish pipeline.
package core

import (
	"encoding/json"

	"github.com/EmilStenstrom/gamecache/internal/contract"
)

// githubHeaders returns the headers every GitHub API call carries.
// The User-Agent is set by the web client itself.
func githubHeaders(token string) map[string]string {
	headers := map[string]string{"Accept": contract.AcceptGitHubJSON}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}
	return headers
}

// decodeGitHubMessage extracts the message field of a GitHub error body.
// Returns an empty string when the body is not the expected JSON shape.
func decodeGitHubMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Message
}
