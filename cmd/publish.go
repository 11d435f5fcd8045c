package cmd

import (
	"github.com/EmilStenstrom/gamecache/core"
	"github.com/EmilStenstrom/gamecache/internal/bgg"
	"github.com/EmilStenstrom/gamecache/internal/contract"
	"github.com/EmilStenstrom/gamecache/internal/ghrelease"
	"github.com/EmilStenstrom/gamecache/internal/indexer"
	"github.com/EmilStenstrom/gamecache/internal/iocache"
	"github.com/spf13/cobra"
)

// publishCmd downloads the collection and publishes the snapshot.
var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Download your BGG collection and publish the snapshot database",
	Long: `Download your owned BGG collection, build the snapshot SQLite database,
compress it and upload it to the configured GitHub release.

The release is created on first publish; later runs replace the asset
in place. Large collections can take a while on the BGG side; the
download retries automatically while BGG prepares the response.

Examples:
  # Publish with the config.ini in the current directory
  gamecache publish

  # Build the snapshot locally without uploading
  gamecache publish --no-upload

  # Cache BGG responses for faster repeated runs
  gamecache publish --cache-bgg

  # Also write a parquet export of the collection
  gamecache publish --parquet-file games.parquet`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		web := contract.NewLiveWebClient()

		var store contract.CacheStore
		if cfg.CacheBGG {
			store = iocache.Manager.GetResponseStore()
		}
		bggClient := bgg.NewClient(web, store, cfg.BGGToken)

		publisher := core.NewPublisher(web, bggClient,
			indexer.NewSnapshotIndexer(), ghrelease.NewPublisher(web, cfg.GithubToken))

		if err := publisher.Run(rootCtx, cfg); err != nil {
			contract.LogFatal("Publish failed", err)
		}
	},
}
