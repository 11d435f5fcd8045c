package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/EmilStenstrom/gamecache/core"
	"github.com/EmilStenstrom/gamecache/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	engine  *core.Engine
	mgr     contract.CacheManager
}

func (h *toolHandler) handleRunSetupValidation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if u := request.GetString("bgg_username", ""); u != "" {
		cfg.BGGUsername = u
	}
	if r := request.GetString("github_repo", ""); r != "" {
		cfg.GithubRepo = r
	}

	report := h.engine.RunSetupValidation(ctx, cfg)

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleCheckGithubRepo(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := request.GetString("github_repo", "")
	if raw == "" {
		return mcp.NewToolResultError("github_repo is required"), nil
	}

	_, outcome := core.CheckIdentifier(raw)

	jsonData, _ := json.MarshalIndent(outcome, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetCacheStatus(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	store := h.mgr.GetResponseStore()
	if store == nil {
		return mcp.NewToolResultError("caching is not initialized"), nil
	}

	status, err := store.GetStatus()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cache status failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(status, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
