package mcp_test

import (
	"context"
	"testing"
	"time"

	"github.com/EmilStenstrom/gamecache/core"
	"github.com/EmilStenstrom/gamecache/internal/contract"
	"github.com/EmilStenstrom/gamecache/internal/iocache"
	mcp_internal "github.com/EmilStenstrom/gamecache/internal/mcp"
	"github.com/EmilStenstrom/gamecache/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// downWeb answers every exchange with a transport error substitute: a 500.
type downWeb struct{}

func (downWeb) Do(context.Context, string, string, map[string]string, time.Duration) (*contract.WebResponse, error) {
	return &contract.WebResponse{StatusCode: 500, Body: []byte("down")}, nil
}

type downBGG struct{}

func (downBGG) FetchUser(context.Context, string) (*schema.UserPayload, []byte, error) {
	return nil, nil, assert.AnError
}

func (downBGG) FetchCollection(context.Context, string) (*schema.CollectionPayload, []byte, error) {
	return nil, nil, assert.AnError
}

type okProber struct{}

func (okProber) Probe(context.Context, string) error { return nil }

func testConfig() *contract.Config {
	return &contract.Config{
		BGGUsername:  "alice",
		GithubRepo:   "alice/mygames",
		ManifestPath: "does-not-exist.in",
	}
}

func TestMCPServerTools(t *testing.T) {
	var mgr contract.CacheManager
	s := mcp_internal.NewMCPServer(testConfig(), core.NewEngine(downWeb{}, downBGG{}, okProber{}), mgr)
	ctx := context.Background()

	t.Run("check_github_repo valid value", func(t *testing.T) {
		tool := s.GetTool("check_github_repo")
		require.NotNil(t, tool, "Tool check_github_repo should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "check_github_repo",
				Arguments: map[string]any{"github_repo": "alice/mygames"},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.False(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "looks good")
	})

	t.Run("check_github_repo missing value", func(t *testing.T) {
		tool := s.GetTool("check_github_repo")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "check_github_repo",
				Arguments: map[string]any{},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "github_repo is required")
	})

	t.Run("check_github_repo bad format", func(t *testing.T) {
		tool := s.GetTool("check_github_repo")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "check_github_repo",
				Arguments: map[string]any{"github_repo": "not-a-repo"},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.False(t, res.IsError, "Grammar failures are reported as outcomes, not tool errors")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "OWNER/REPO")
	})

	t.Run("run_setup_validation reports failures", func(t *testing.T) {
		tool := s.GetTool("run_setup_validation")
		require.NotNil(t, tool, "Tool run_setup_validation should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "run_setup_validation",
				Arguments: map[string]any{},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.False(t, res.IsError)
		text := res.Content[0].(mcp.TextContent).Text
		assert.Contains(t, text, `"overall_pass": false`)
		assert.Contains(t, text, "BGG collection")
	})

	t.Run("get_cache_status without manager store", func(t *testing.T) {
		mockMgr := &iocache.MockCacheManager{}
		mockMgr.On("GetResponseStore").Return(nil)
		srv := mcp_internal.NewMCPServer(testConfig(), core.NewEngine(downWeb{}, downBGG{}, okProber{}), mockMgr)

		tool := srv.GetTool("get_cache_status")
		require.NotNil(t, tool, "Tool get_cache_status should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{Name: "get_cache_status"},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "not initialized")
	})

	t.Run("get_cache_status with connected store", func(t *testing.T) {
		mockStore := &iocache.MockCacheStore{}
		mockStore.On("GetStatus").Return(schema.CacheStatus{
			Backend:      string(schema.SQLiteBackend),
			Connected:    true,
			TotalEntries: 3,
		}, nil)
		mockMgr := &iocache.MockCacheManager{}
		mockMgr.On("GetResponseStore").Return(mockStore)
		srv := mcp_internal.NewMCPServer(testConfig(), core.NewEngine(downWeb{}, downBGG{}, okProber{}), mockMgr)

		tool := srv.GetTool("get_cache_status")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{Name: "get_cache_status"},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.False(t, res.IsError)
		text := res.Content[0].(mcp.TextContent).Text
		assert.Contains(t, text, `"total_entries": 3`)
	})
}
