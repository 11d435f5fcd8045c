package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/EmilStenstrom/gamecache/internal/contract"
	"github.com/EmilStenstrom/gamecache/internal/outwriter"
	"github.com/EmilStenstrom/gamecache/schema"
)

// Publisher bundles the collaborators of the publish pipeline.
type Publisher struct {
	Web     contract.WebClient
	BGG     contract.BGGClient
	Indexer contract.SnapshotIndexer
	Release contract.ReleasePublisher
	Notice  io.Writer // destination for the drift notice, stdout when nil
}

// NewPublisher creates a publish pipeline with explicit collaborators.
func NewPublisher(web contract.WebClient, bgg contract.BGGClient, indexer contract.SnapshotIndexer, release contract.ReleasePublisher) *Publisher {
	return &Publisher{Web: web, BGG: bgg, Indexer: indexer, Release: release, Notice: os.Stdout}
}

// Run executes the publish pipeline: drift notice, collection download,
// dedupe, indexing, compression, optional parquet export and upload.
// Any error past the drift notice aborts the run.
func (p *Publisher) Run(ctx context.Context, cfg *contract.Config) error {
	ident, identOutcome := CheckIdentifier(cfg.GithubRepo)
	if identOutcome.Severity == schema.SeverityFail {
		return errors.New(identOutcome.Message)
	}

	p.maybePrintDriftNotice(ctx, cfg, ident)

	payload, _, err := p.BGG.FetchCollection(ctx, cfg.BGGUsername)
	if err != nil {
		return fmt.Errorf("download collection: %w", err)
	}
	if payload == nil {
		return fmt.Errorf("BGG returned an unreadable collection for %q", cfg.BGGUsername)
	}

	games, expansions := SplitCollection(payload)
	if len(games) == 0 {
		return fmt.Errorf("no owned games found for %q", cfg.BGGUsername)
	}
	fmt.Printf("Downloaded %d games and %d expansions for %q\n", len(games), len(expansions), cfg.BGGUsername)

	dbPath := contract.DefaultSnapshotDB
	if err := p.Indexer.Index(ctx, dbPath, games, expansions); err != nil {
		return fmt.Errorf("index snapshot: %w", err)
	}

	if err := p.Indexer.Compress(dbPath, cfg.SnapshotAsset); err != nil {
		return fmt.Errorf("compress snapshot: %w", err)
	}
	// The uncompressed database is an intermediate artifact only.
	_ = os.Remove(dbPath)

	if cfg.ParquetFile != "" {
		if err := p.Indexer.ExportParquet(games, cfg.ParquetFile); err != nil {
			return fmt.Errorf("export parquet: %w", err)
		}
		fmt.Printf("Wrote parquet export to %s\n", cfg.ParquetFile)
	}

	if cfg.NoUpload {
		fmt.Printf("Skipping upload; snapshot written to %s\n", cfg.SnapshotAsset)
		return nil
	}

	url, err := p.Release.Upload(ctx, ident, cfg.SnapshotTag, cfg.SnapshotAsset, cfg.SnapshotAsset)
	if err != nil {
		return fmt.Errorf("upload snapshot: %w", err)
	}
	fmt.Printf("Snapshot uploaded: %s\n", url)
	return nil
}

// maybePrintDriftNotice runs the upstream comparison and prints the boxed
// notice when the fork trails behind. Failures never abort the pipeline:
// expected kinds stay silent, anything else goes to stderr.
func (p *Publisher) maybePrintDriftNotice(ctx context.Context, cfg *contract.Config, ident schema.RepoIdentifier) {
	if cfg.SkipUpdateCheck {
		return
	}

	result, err := CheckUpstreamDrift(ctx, p.Web, ident, cfg.GithubToken)
	if err != nil {
		var derr *DriftError
		if errors.As(err, &derr) && derr.Kind == schema.DriftUnexpected {
			contract.LogWarn("upstream drift check", err)
		}
		return
	}

	if result.BehindBy > 0 {
		w := p.Notice
		if w == nil {
			w = os.Stdout
		}
		outwriter.WriteInfoBox(w, []string{
			fmt.Sprintf("Your fork is %d commit(s) behind %s/%s.", result.BehindBy, contract.UpstreamOwner, contract.UpstreamRepo),
			fmt.Sprintf("Update instructions: %s", contract.UpgradeInstructionsURL),
			"Set GAMECACHE_SKIP_UPDATE_CHECK=1 to silence this notice.",
		})
	}
}

// SplitCollection converts a payload into deduplicated game and expansion
// rows. Duplicate IDs keep their first occurrence, preserving order.
func SplitCollection(payload *schema.CollectionPayload) ([]schema.Game, []schema.Expansion) {
	seen := make(map[int64]struct{}, len(payload.Items))
	var games []schema.Game
	var expansions []schema.Expansion
	for _, item := range payload.Items {
		if _, ok := seen[item.ObjectID]; ok {
			continue
		}
		seen[item.ObjectID] = struct{}{}
		if item.IsExpansion() {
			expansions = append(expansions, item.ToExpansion())
		} else {
			games = append(games, item.ToGame())
		}
	}
	return games, expansions
}
