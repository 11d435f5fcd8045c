package cmd

import (
	"github.com/EmilStenstrom/gamecache/core"
	"github.com/EmilStenstrom/gamecache/internal/bgg"
	"github.com/EmilStenstrom/gamecache/internal/contract"
	"github.com/EmilStenstrom/gamecache/internal/iocache"
	"github.com/EmilStenstrom/gamecache/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the GameCache MCP server",
	Long:  `Launch an MCP server that allows AI agents to run setup checks via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Keep stdout clean for the protocol; setup errors go to stderr.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		web := contract.NewLiveWebClient()
		engine := core.NewEngine(web, bgg.NewClient(web, nil, cfg.BGGToken), contract.NewPythonProber(""))
		return mcp.StartMCPServer(rootCtx, cfg, engine, iocache.Manager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
