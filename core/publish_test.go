package core

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/EmilStenstrom/gamecache/internal/contract"
	"github.com/EmilStenstrom/gamecache/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIndexer struct {
	games      []schema.Game
	expansions []schema.Expansion
	dbPath     string

	compressSrc string
	compressDst string
	parquetPath string

	indexErr    error
	compressErr error
}

func (f *fakeIndexer) Index(_ context.Context, dbPath string, games []schema.Game, expansions []schema.Expansion) error {
	f.dbPath = dbPath
	f.games = games
	f.expansions = expansions
	return f.indexErr
}

func (f *fakeIndexer) Compress(srcPath, dstPath string) error {
	f.compressSrc = srcPath
	f.compressDst = dstPath
	return f.compressErr
}

func (f *fakeIndexer) ExportParquet(_ []schema.Game, path string) error {
	f.parquetPath = path
	return nil
}

type fakeRelease struct {
	called bool
	tag    string
	asset  string
	path   string
	url    string
	err    error
}

func (f *fakeRelease) Upload(_ context.Context, _ schema.RepoIdentifier, tag, assetName, assetPath string) (string, error) {
	f.called = true
	f.tag = tag
	f.asset = assetName
	f.path = assetPath
	return f.url, f.err
}

func publishConfig() *contract.Config {
	return &contract.Config{
		Title:           "My Games",
		BGGUsername:     "alice",
		GithubRepo:      "alice/mygames",
		SnapshotTag:     contract.DefaultSnapshotTag,
		SnapshotAsset:   contract.DefaultSnapshotAsset,
		SkipUpdateCheck: true,
	}
}

func publishCollection() *schema.CollectionPayload {
	return &schema.CollectionPayload{
		TotalItems: 4,
		Items: []schema.CollectionItem{
			{ObjectID: 822, Name: "Carcassonne"},
			{ObjectID: 13, Name: "Catan"},
			{ObjectID: 822, Name: "Carcassonne (duplicate)"},
			{ObjectID: 4089, Name: "Carcassonne: Expansion", Subtype: "boardgameexpansion"},
		},
	}
}

func TestPublisherRun(t *testing.T) {
	indexer := &fakeIndexer{}
	release := &fakeRelease{url: "https://github.com/alice/mygames/releases/download/database/gamecache.sqlite.gz"}
	pub := NewPublisher(newFakeWeb(), &fakeBGG{collection: publishCollection()}, indexer, release)

	require.NoError(t, pub.Run(context.Background(), publishConfig()))

	// Dedupe kept the first occurrence only.
	require.Len(t, indexer.games, 2)
	assert.Equal(t, "Carcassonne", indexer.games[0].Name)
	assert.Equal(t, "Catan", indexer.games[1].Name)
	require.Len(t, indexer.expansions, 1)

	assert.Equal(t, contract.DefaultSnapshotDB, indexer.dbPath)
	assert.Equal(t, contract.DefaultSnapshotDB, indexer.compressSrc)
	assert.Equal(t, contract.DefaultSnapshotAsset, indexer.compressDst)
	assert.Empty(t, indexer.parquetPath)

	assert.True(t, release.called)
	assert.Equal(t, contract.DefaultSnapshotTag, release.tag)
	assert.Equal(t, contract.DefaultSnapshotAsset, release.asset)
}

func TestPublisherRunNoUpload(t *testing.T) {
	release := &fakeRelease{}
	pub := NewPublisher(newFakeWeb(), &fakeBGG{collection: publishCollection()}, &fakeIndexer{}, release)

	cfg := publishConfig()
	cfg.NoUpload = true
	require.NoError(t, pub.Run(context.Background(), cfg))
	assert.False(t, release.called)
}

func TestPublisherRunParquetExport(t *testing.T) {
	indexer := &fakeIndexer{}
	pub := NewPublisher(newFakeWeb(), &fakeBGG{collection: publishCollection()}, indexer, &fakeRelease{})

	cfg := publishConfig()
	cfg.NoUpload = true
	cfg.ParquetFile = "collection.parquet"
	require.NoError(t, pub.Run(context.Background(), cfg))
	assert.Equal(t, "collection.parquet", indexer.parquetPath)
}

func TestPublisherRunEmptyCollection(t *testing.T) {
	pub := NewPublisher(newFakeWeb(), &fakeBGG{collection: &schema.CollectionPayload{}}, &fakeIndexer{}, &fakeRelease{})

	err := pub.Run(context.Background(), publishConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no owned games")
}

func TestPublisherRunDownloadError(t *testing.T) {
	pub := NewPublisher(newFakeWeb(), &fakeBGG{collErr: errors.New("bgg is down")}, &fakeIndexer{}, &fakeRelease{})

	err := pub.Run(context.Background(), publishConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bgg is down")
}

func TestPublisherRunBadIdentifier(t *testing.T) {
	pub := NewPublisher(newFakeWeb(), &fakeBGG{}, &fakeIndexer{}, &fakeRelease{})

	cfg := publishConfig()
	cfg.GithubRepo = "nonsense"
	err := pub.Run(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OWNER/REPO")
}

func TestPublisherRunIndexError(t *testing.T) {
	pub := NewPublisher(newFakeWeb(), &fakeBGG{collection: publishCollection()}, &fakeIndexer{indexErr: errors.New("disk full")}, &fakeRelease{})

	err := pub.Run(context.Background(), publishConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestSplitCollectionDedupeOrder(t *testing.T) {
	games, expansions := SplitCollection(publishCollection())
	require.Len(t, games, 2)
	assert.Equal(t, int64(822), games[0].ID)
	assert.Equal(t, int64(13), games[1].ID)
	require.Len(t, expansions, 1)
	assert.Equal(t, int64(4089), expansions[0].ID)
}

func TestPublisherDriftNoticePrintsWhenBehind(t *testing.T) {
	web := newFakeWeb()
	web.stub("GET", upstreamRepoURL, 200, `{"default_branch":"main"}`)
	web.stub("GET", forkRepoURL, 200, `{"default_branch":"main"}`)
	web.stub("GET", compareURL("main", "main"), 200, `{"behind_by":7}`)

	pub := NewPublisher(web, &fakeBGG{collection: publishCollection()}, &fakeIndexer{}, &fakeRelease{})
	var notice bytes.Buffer
	pub.Notice = &notice

	cfg := publishConfig()
	cfg.SkipUpdateCheck = false
	cfg.NoUpload = true
	require.NoError(t, pub.Run(context.Background(), cfg))

	assert.Contains(t, notice.String(), "7 commit(s) behind")
	assert.Contains(t, notice.String(), contract.UpgradeInstructionsURL)
}

func TestPublisherDriftNoticeSilentWhenCurrent(t *testing.T) {
	web := newFakeWeb()
	web.stub("GET", upstreamRepoURL, 200, `{"default_branch":"main"}`)
	web.stub("GET", forkRepoURL, 200, `{"default_branch":"main"}`)
	web.stub("GET", compareURL("main", "main"), 200, `{"behind_by":0}`)

	pub := NewPublisher(web, &fakeBGG{collection: publishCollection()}, &fakeIndexer{}, &fakeRelease{})
	var notice bytes.Buffer
	pub.Notice = &notice

	cfg := publishConfig()
	cfg.SkipUpdateCheck = false
	cfg.NoUpload = true
	require.NoError(t, pub.Run(context.Background(), cfg))

	assert.Empty(t, notice.String())
}

func TestPublisherDriftNoticeNeverFails(t *testing.T) {
	// The drift check hits an unmapped route (500) and must stay silent
	// about the pipeline result.
	pub := NewPublisher(newFakeWeb(), &fakeBGG{collection: publishCollection()}, &fakeIndexer{}, &fakeRelease{})

	cfg := publishConfig()
	cfg.SkipUpdateCheck = false
	cfg.NoUpload = true
	require.NoError(t, pub.Run(context.Background(), cfg))
}
