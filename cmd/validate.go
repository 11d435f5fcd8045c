package cmd

import (
	"os"

	"github.com/EmilStenstrom/gamecache/core"
	"github.com/EmilStenstrom/gamecache/internal/bgg"
	"github.com/EmilStenstrom/gamecache/internal/contract"
	"github.com/EmilStenstrom/gamecache/internal/outwriter"
	"github.com/spf13/cobra"
)

// validateCmd runs every setup check and reports the results.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that your gamecache setup is ready to publish",
	Long: `Run every setup check in one pass and report the results.

Checks:
- github_repo follows the OWNER/REPO format
- The GitHub account and repository exist
- The CORS proxy can reach your published snapshot
- The tooling dependencies import cleanly
- Your BGG collection is reachable and has owned games

A failing check does not stop the run; you see every problem at once.
The command exits non-zero when any check fails, so it can gate CI.

Examples:
  # Validate with the config.ini in the current directory
  gamecache validate

  # Render the report as a table
  gamecache validate --detail

  # Machine-readable report
  gamecache validate --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		web := contract.NewLiveWebClient()
		engine := core.NewEngine(web, bgg.NewClient(web, nil, cfg.BGGToken), contract.NewPythonProber(""))

		report := engine.RunSetupValidation(rootCtx, cfg)

		if err := outwriter.NewOutWriter().WriteReport(report, cfg); err != nil {
			contract.LogFatal("Failed to write report", err)
		}
		if !report.OverallPass {
			os.Exit(1)
		}
	},
}
