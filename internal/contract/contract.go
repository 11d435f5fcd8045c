// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"io"
	"time"

	"github.com/EmilStenstrom/gamecache/schema"
)

// WebResponse is the decoded result of a single HTTP exchange. Body is fully
// read and the connection released before the response is returned.
type WebResponse struct {
	StatusCode int
	Body       []byte
}

// WebClient defines the single HTTP operation the setup checks need.
// Implementations return an error only for transport-level failures;
// any received status code, including 4xx and 5xx, yields a WebResponse
// so callers can read error bodies.
type WebClient interface {
	Do(ctx context.Context, method, url string, headers map[string]string, timeout time.Duration) (*WebResponse, error)
}

// WebUploader extends WebClient with exchanges that carry a request body.
// The release publishing flow needs it for creating releases and
// uploading assets.
type WebUploader interface {
	WebClient

	// DoUpload behaves like Do with a request body attached.
	DoUpload(ctx context.Context, method, url string, headers map[string]string, body io.Reader, timeout time.Duration) (*WebResponse, error)
}

// ImportProber checks whether a tooling dependency is importable in the
// scripting runtime. This allows the dependency audit to be tested without
// a Python interpreter on the host.
type ImportProber interface {
	// Probe returns nil when the module imports cleanly.
	Probe(ctx context.Context, importName string) error
}

// BGGClient defines the BoardGameGeek operations shared by the collection
// reachability check and the publish pipeline.
type BGGClient interface {
	// FetchUser resolves a BGG username. The raw body is returned alongside
	// the typed payload for substring fallbacks.
	FetchUser(ctx context.Context, username string) (*schema.UserPayload, []byte, error)

	// FetchCollection fetches the owned collection of a user, polling while
	// BGG responds 202 accepted-and-queued.
	FetchCollection(ctx context.Context, username string) (*schema.CollectionPayload, []byte, error)
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetResponseStore() CacheStore
}

// CacheStore defines the interface for cached BGG response storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Clear() error
	Close() error
}

// SnapshotIndexer turns a downloaded collection into the publishable
// snapshot artifacts.
type SnapshotIndexer interface {
	// Index writes games and expansions into the snapshot database.
	Index(ctx context.Context, dbPath string, games []schema.Game, expansions []schema.Expansion) error

	// Compress gzips the snapshot database into the release asset.
	Compress(srcPath, dstPath string) error

	// ExportParquet writes the optional columnar export of the collection.
	ExportParquet(games []schema.Game, path string) error
}

// ReleasePublisher uploads the compressed snapshot to a hosting release.
type ReleasePublisher interface {
	// Upload returns the public download URL of the uploaded asset.
	Upload(ctx context.Context, ident schema.RepoIdentifier, tag, assetName, assetPath string) (string, error)
}
