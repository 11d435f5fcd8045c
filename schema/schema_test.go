package schema

import (
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportReduce(t *testing.T) {
	for _, tc := range []struct {
		name       string
		severities []Severity
		wantPass   bool
	}{
		{"empty report passes", nil, true},
		{"all pass", []Severity{SeverityPass, SeverityPass}, true},
		{"warn never lowers", []Severity{SeverityPass, SeverityWarn, SeverityWarn}, true},
		{"single fail lowers", []Severity{SeverityPass, SeverityFail, SeverityPass}, false},
		{"fail plus warn", []Severity{SeverityWarn, SeverityFail}, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r := Report{}
			for _, s := range tc.severities {
				r.Outcomes = append(r.Outcomes, ValidationOutcome{Severity: s})
			}
			r.Reduce()
			assert.Equal(t, tc.wantPass, r.OverallPass)
		})
	}
}

func TestOutcomePassed(t *testing.T) {
	assert.True(t, ValidationOutcome{Severity: SeverityPass}.Passed())
	assert.True(t, ValidationOutcome{Severity: SeverityWarn}.Passed())
	assert.False(t, ValidationOutcome{Severity: SeverityFail}.Passed())
}

func TestCollectionPayloadDecode(t *testing.T) {
	raw := `<?xml version="1.0" encoding="utf-8"?>
<items totalitems="2" termsofuse="https://boardgamegeek.com/xmlapi/termsofuse">
	<item objecttype="thing" objectid="822" subtype="boardgame" collid="1">
		<name sortindex="1">Carcassonne</name>
		<yearpublished>2000</yearpublished>
		<image>https://example.com/822.jpg</image>
		<thumbnail>https://example.com/822_t.jpg</thumbnail>
		<stats minplayers="2" maxplayers="5" playingtime="45">
			<rating value="N/A">
				<average value="7.41"/>
			</rating>
		</stats>
		<status own="1"/>
		<numplays>12</numplays>
	</item>
	<item objecttype="thing" objectid="4089" subtype="boardgameexpansion" collid="2">
		<name sortindex="1">Carcassonne: Expansion</name>
		<yearpublished>2002</yearpublished>
		<status own="1"/>
	</item>
</items>`

	var payload CollectionPayload
	require.NoError(t, xml.Unmarshal([]byte(raw), &payload))
	require.Len(t, payload.Items, 2)
	assert.Equal(t, 2, payload.TotalItems)

	game := payload.Items[0].ToGame()
	assert.Equal(t, int64(822), game.ID)
	assert.Equal(t, "Carcassonne", game.Name)
	assert.Equal(t, 2000, game.YearPublished)
	assert.Equal(t, 2, game.MinPlayers)
	assert.Equal(t, 5, game.MaxPlayers)
	assert.Equal(t, 45, game.PlayingTime)
	assert.InDelta(t, 7.41, game.Rating, 0.001)
	assert.Equal(t, 12, game.NumPlays)

	assert.False(t, payload.Items[0].IsExpansion())
	assert.True(t, payload.Items[1].IsExpansion())

	exp := payload.Items[1].ToExpansion()
	assert.Equal(t, int64(4089), exp.ID)
	assert.Equal(t, 2002, exp.YearPublished)
}
