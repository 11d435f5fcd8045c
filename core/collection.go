package core

import (
	"bytes"
	"context"
	"fmt"

	"github.com/EmilStenstrom/gamecache/internal/contract"
	"github.com/EmilStenstrom/gamecache/schema"
)

// itemMarker is the substring fallback for detecting collection items when
// the typed decode of the BGG response is unavailable.
var itemMarker = []byte("<item ")

// CheckCollection verifies that the BGG user exists and owns at least one
// game. Any transport or HTTP failure is a Fail since the publish pipeline
// cannot work without a reachable collection; an empty collection only warns.
func CheckCollection(ctx context.Context, bgg contract.BGGClient, username string) schema.ValidationOutcome {
	user, _, err := bgg.FetchUser(ctx, username)
	if err != nil {
		return schema.ValidationOutcome{
			CheckName: schema.CheckCollection,
			Severity:  schema.SeverityFail,
			Message:   fmt.Sprintf("could not reach BGG to verify user %q: %v", username, err),
		}
	}
	if user == nil || user.ID == "" {
		return schema.ValidationOutcome{
			CheckName: schema.CheckCollection,
			Severity:  schema.SeverityFail,
			Message:   fmt.Sprintf("BGG user %q was not found", username),
			Details: []string{
				"Check bgg_username in config.ini",
			},
		}
	}

	payload, raw, err := bgg.FetchCollection(ctx, username)
	if err != nil {
		return schema.ValidationOutcome{
			CheckName: schema.CheckCollection,
			Severity:  schema.SeverityFail,
			Message:   fmt.Sprintf("could not fetch the BGG collection for %q: %v", username, err),
		}
	}

	// Prefer the typed item count; fall back to the marker scan when the
	// response did not decode.
	hasItems := false
	itemCount := 0
	if payload != nil {
		itemCount = len(payload.Items)
		if itemCount == 0 && payload.TotalItems > 0 {
			itemCount = payload.TotalItems
		}
		hasItems = itemCount > 0
	} else {
		hasItems = bytes.Contains(raw, itemMarker)
	}

	if !hasItems {
		return schema.ValidationOutcome{
			CheckName: schema.CheckCollection,
			Severity:  schema.SeverityWarn,
			Message:   fmt.Sprintf("BGG collection for %q is reachable but has no owned games", username),
			Details: []string{
				"Mark at least one game as owned on boardgamegeek.com",
			},
		}
	}

	if itemCount > 0 {
		return schema.ValidationOutcome{
			CheckName: schema.CheckCollection,
			Severity:  schema.SeverityPass,
			Message:   fmt.Sprintf("BGG collection for %q is reachable (%d items)", username, itemCount),
		}
	}
	return schema.ValidationOutcome{
		CheckName: schema.CheckCollection,
		Severity:  schema.SeverityPass,
		Message:   fmt.Sprintf("BGG collection for %q is reachable", username),
	}
}
