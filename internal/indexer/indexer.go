// Package indexer builds the snapshot SQLite database that gamecache
// publishes as a release asset, and compresses it for upload.
package indexer

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/EmilStenstrom/gamecache/internal/contract"
	"github.com/EmilStenstrom/gamecache/schema"
	"github.com/klauspost/compress/gzip"
	_ "modernc.org/sqlite" // Pure-Go SQLite driver
)

// SnapshotIndexer writes collection rows into a fresh SQLite snapshot.
type SnapshotIndexer struct{}

var _ contract.SnapshotIndexer = &SnapshotIndexer{} // Compile-time check

// NewSnapshotIndexer creates a snapshot indexer.
func NewSnapshotIndexer() *SnapshotIndexer {
	return &SnapshotIndexer{}
}

// Index creates the snapshot database at dbPath and fills it with the
// given games and expansions. An existing file at dbPath is replaced so
// stale rows never leak into a new snapshot.
func (s *SnapshotIndexer) Index(ctx context.Context, dbPath string, games []schema.Game, expansions []schema.Expansion) error {
	if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove stale snapshot %s: %w", dbPath, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("failed to open snapshot database: %w", err)
	}
	defer func() { _ = db.Close() }()
	db.SetMaxOpenConns(1)

	if err := migrateSnapshot(db); err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertGames(ctx, tx, games); err != nil {
		return err
	}
	if err := insertExpansions(ctx, tx, expansions); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot transaction: %w", err)
	}
	return nil
}

func insertGames(ctx context.Context, tx *sql.Tx, games []schema.Game) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO games (id, name, year_published, min_players, max_players,
			playing_time, rating, num_plays, image, thumbnail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare games insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, g := range games {
		_, err := stmt.ExecContext(ctx, g.ID, g.Name, g.YearPublished, g.MinPlayers,
			g.MaxPlayers, g.PlayingTime, g.Rating, g.NumPlays, g.Image, g.Thumbnail)
		if err != nil {
			return fmt.Errorf("failed to insert game %d: %w", g.ID, err)
		}
	}
	return nil
}

func insertExpansions(ctx context.Context, tx *sql.Tx, expansions []schema.Expansion) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO expansions (id, name, year_published)
		VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare expansions insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, e := range expansions {
		if _, err := stmt.ExecContext(ctx, e.ID, e.Name, e.YearPublished); err != nil {
			return fmt.Errorf("failed to insert expansion %d: %w", e.ID, err)
		}
	}
	return nil
}

// Compress gzips src into dst. The upload asset is a gzipped SQLite
// file, so the frontend can fetch and inflate it in one pass.
func (s *SnapshotIndexer) Compress(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open snapshot for compression: %w", err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create compressed asset: %w", err)
	}
	defer func() { _ = out.Close() }()

	gz, err := gzip.NewWriterLevel(out, gzip.BestCompression)
	if err != nil {
		return fmt.Errorf("failed to create gzip writer: %w", err)
	}

	if _, err := io.Copy(gz, in); err != nil {
		_ = gz.Close()
		return fmt.Errorf("failed to compress snapshot: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("failed to finalize compressed asset: %w", err)
	}
	return out.Close()
}
