// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/EmilStenstrom/gamecache/core"
	"github.com/EmilStenstrom/gamecache/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the GameCache MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, engine *core.Engine, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"GameCache Setup Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		engine:  engine,
		mgr:     mgr,
	}

	// --- 1. Tool: run_setup_validation ---
	s.AddTool(mcp.NewTool("run_setup_validation",
		mcp.WithDescription("Run every gamecache setup check (repo identifier, GitHub account and repository, CORS proxy, tooling dependencies, BGG collection) and return the full report."),
		mcp.WithString("bgg_username", mcp.Description("BGG username to check (defaults to the configured one).")),
		mcp.WithString("github_repo", mcp.Description("GitHub repository in OWNER/REPO format (defaults to the configured one).")),
	), h.handleRunSetupValidation)

	// --- 2. Tool: check_github_repo ---
	s.AddTool(mcp.NewTool("check_github_repo",
		mcp.WithDescription("Validate a github_repo value against the OWNER/REPO grammar without calling any remote API."),
		mcp.WithString("github_repo", mcp.Description("The github_repo value to validate."), mcp.Required()),
	), h.handleCheckGithubRepo)

	// --- 3. Tool: get_cache_status ---
	s.AddTool(mcp.NewTool("get_cache_status",
		mcp.WithDescription("Report the status of the BGG response cache (backend, connectivity, entry counts)."),
	), h.handleGetCacheStatus)

	return s
}

// StartMCPServer starts the GameCache MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, engine *core.Engine, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, engine, mgr)
	return server.ServeStdio(s)
}
