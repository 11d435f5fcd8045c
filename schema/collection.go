package schema

import "encoding/xml"

// UserPayload is the typed decode of the BGG xmlapi2 user endpoint.
// An empty ID attribute means the username does not exist.
type UserPayload struct {
	XMLName xml.Name `xml:"user"`
	ID      string   `xml:"id,attr"`
	Name    string   `xml:"name,attr"`
}

// CollectionPayload is the typed decode of the BGG xmlapi2 collection endpoint.
type CollectionPayload struct {
	XMLName    xml.Name         `xml:"items"`
	TotalItems int              `xml:"totalitems,attr"`
	Items      []CollectionItem `xml:"item"`
}

// CollectionItem is a single owned item in a BGG collection response.
type CollectionItem struct {
	ObjectID      int64            `xml:"objectid,attr"`
	Subtype       string           `xml:"subtype,attr"`
	Name          string           `xml:"name"`
	YearPublished int              `xml:"yearpublished"`
	Image         string           `xml:"image"`
	Thumbnail     string           `xml:"thumbnail"`
	NumPlays      int              `xml:"numplays"`
	Stats         CollectionStats  `xml:"stats"`
	Status        CollectionStatus `xml:"status"`
}

// CollectionStats carries the play statistics attributes of an item.
type CollectionStats struct {
	MinPlayers  int              `xml:"minplayers,attr"`
	MaxPlayers  int              `xml:"maxplayers,attr"`
	PlayingTime int              `xml:"playingtime,attr"`
	Rating      CollectionRating `xml:"rating"`
}

// CollectionRating carries the community average rating of an item.
type CollectionRating struct {
	Average RatingValue `xml:"average"`
}

// RatingValue is a numeric rating stored in a value attribute.
type RatingValue struct {
	Value float64 `xml:"value,attr"`
}

// CollectionStatus carries the ownership flags of an item.
type CollectionStatus struct {
	Own int `xml:"own,attr"`
}

// Game is a base game row of the snapshot database.
type Game struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	YearPublished int     `json:"year_published"`
	MinPlayers    int     `json:"min_players"`
	MaxPlayers    int     `json:"max_players"`
	PlayingTime   int     `json:"playing_time"`
	Rating        float64 `json:"rating"`
	NumPlays      int     `json:"num_plays"`
	Image         string  `json:"image"`
	Thumbnail     string  `json:"thumbnail"`
}

// Expansion is an expansion row of the snapshot database.
type Expansion struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	YearPublished int    `json:"year_published"`
}

// IsExpansion reports whether the item is a boardgame expansion.
func (i CollectionItem) IsExpansion() bool {
	return i.Subtype == "boardgameexpansion"
}

// ToGame converts a collection item into a snapshot game row.
func (i CollectionItem) ToGame() Game {
	return Game{
		ID:            i.ObjectID,
		Name:          i.Name,
		YearPublished: i.YearPublished,
		MinPlayers:    i.Stats.MinPlayers,
		MaxPlayers:    i.Stats.MaxPlayers,
		PlayingTime:   i.Stats.PlayingTime,
		Rating:        i.Stats.Rating.Average.Value,
		NumPlays:      i.NumPlays,
		Image:         i.Image,
		Thumbnail:     i.Thumbnail,
	}
}

// ToExpansion converts a collection item into a snapshot expansion row.
func (i CollectionItem) ToExpansion() Expansion {
	return Expansion{
		ID:            i.ObjectID,
		Name:          i.Name,
		YearPublished: i.YearPublished,
	}
}
