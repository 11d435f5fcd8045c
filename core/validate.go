package core

import (
	"context"

	"github.com/EmilStenstrom/gamecache/internal/contract"
	"github.com/EmilStenstrom/gamecache/schema"
)

// Engine bundles the collaborators of a validation run. Tests inject fakes
// for all three; production wiring lives in the command layer.
type Engine struct {
	Web    contract.WebClient
	BGG    contract.BGGClient
	Prober contract.ImportProber
}

// NewEngine creates a validation engine with explicit collaborators.
func NewEngine(web contract.WebClient, bgg contract.BGGClient, prober contract.ImportProber) *Engine {
	return &Engine{Web: web, BGG: bgg, Prober: prober}
}

// RunSetupValidation runs every setup check in a fixed order and returns
// the full report. A failed identifier only skips the GitHub API stages it
// invalidated; everything after still runs so the user sees all problems in
// one pass. An account 404 skips the repository stage the same way. The
// overall result is reduced only after the last check.
func (e *Engine) RunSetupValidation(ctx context.Context, cfg *contract.Config) *schema.Report {
	report := &schema.Report{}

	ident, identOutcome := CheckIdentifier(cfg.GithubRepo)
	report.Outcomes = append(report.Outcomes, identOutcome)

	if identOutcome.Passed() {
		accountOutcome := CheckAccount(ctx, e.Web, ident, cfg.GithubToken)
		report.Outcomes = append(report.Outcomes, accountOutcome)

		if accountOutcome.Severity != schema.SeverityFail {
			report.Outcomes = append(report.Outcomes, CheckRepository(ctx, e.Web, ident, cfg.GithubToken))
		}
	}

	report.Outcomes = append(report.Outcomes, CheckProxy(ctx, e.Web, ident))
	report.Outcomes = append(report.Outcomes, CheckDependencies(ctx, e.Prober, cfg.ManifestPath))
	report.Outcomes = append(report.Outcomes, CheckCollection(ctx, e.BGG, cfg.BGGUsername))

	report.Reduce()
	return report
}
