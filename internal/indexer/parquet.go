package indexer

import (
	"fmt"
	"os"

	"github.com/EmilStenstrom/gamecache/schema"
	"github.com/parquet-go/parquet-go"
)

// GameRow maps a snapshot game row to a Parquet record.
type GameRow struct {
	ID            int64   `parquet:"id,snappy"`
	Name          string  `parquet:"name,snappy"`
	YearPublished int32   `parquet:"year_published,snappy"`
	MinPlayers    int32   `parquet:"min_players,snappy"`
	MaxPlayers    int32   `parquet:"max_players,snappy"`
	PlayingTime   int32   `parquet:"playing_time,snappy"`
	Rating        float64 `parquet:"rating,snappy"`
	NumPlays      int32   `parquet:"num_plays,snappy"`
	Image         string  `parquet:"image,snappy"`
	Thumbnail     string  `parquet:"thumbnail,snappy"`
}

// ExportParquet writes the snapshot games to a Parquet file for
// offline analysis of the collection.
func (s *SnapshotIndexer) ExportParquet(games []schema.Game, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the GameRow struct tags.
	writer := parquet.NewGenericWriter[GameRow](file)

	rows := make([]GameRow, len(games))
	for i, g := range games {
		rows[i] = GameRow{
			ID:            g.ID,
			Name:          g.Name,
			YearPublished: int32(g.YearPublished),
			MinPlayers:    int32(g.MinPlayers),
			MaxPlayers:    int32(g.MaxPlayers),
			PlayingTime:   int32(g.PlayingTime),
			Rating:        g.Rating,
			NumPlays:      int32(g.NumPlays),
			Image:         g.Image,
			Thumbnail:     g.Thumbnail,
		}
	}

	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}
