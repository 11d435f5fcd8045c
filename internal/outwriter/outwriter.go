// Package outwriter has output and writer logic.
package outwriter

import (
	"io"
	"os"

	"github.com/EmilStenstrom/gamecache/internal/contract"
	"github.com/EmilStenstrom/gamecache/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteReport prints a validation report using the configured output format.
func (ow *OutWriter) WriteReport(report *schema.Report, cfg *contract.Config) error {
	return writeReport(os.Stdout, report, cfg)
}

// WriteCacheStatus prints the response cache status.
func (ow *OutWriter) WriteCacheStatus(status schema.CacheStatus, cfg *contract.Config) error {
	return writeCacheStatus(os.Stdout, status, cfg)
}

// writeReport dispatches on the output format.
func writeReport(w io.Writer, report *schema.Report, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, report)
	default:
		if cfg.Detail {
			return writeReportTable(w, report, cfg)
		}
		return writeReportLines(w, report, cfg)
	}
}

// getMaxTableMessageWidth calculates the maximum width for outcome messages
// in table output based on terminal width and table configuration.
func getMaxTableMessageWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the check and status columns plus borders/padding
	available := termWidth - 40
	if available < 20 {
		return 20
	}
	if available > 100 {
		return 100
	}
	return available
}

// truncateText truncates a message to a maximum width with an ellipsis
// suffix. Requires maxWidth > 3 so the ellipsis still leaves content.
func truncateText(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return s
}
