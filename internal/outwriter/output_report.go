package outwriter

import (
	"fmt"
	"io"

	"github.com/EmilStenstrom/gamecache/internal/contract"
	"github.com/EmilStenstrom/gamecache/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// severityGlyph returns the emoji prefix for an outcome line.
func severityGlyph(sev schema.Severity) string {
	switch sev {
	case schema.SeverityPass:
		return "✅"
	case schema.SeverityWarn:
		return "⚠️ "
	default:
		return "❌"
	}
}

// writeReportLines prints the default human-readable report: one emoji line
// per outcome with remediation details indented under it.
func writeReportLines(w io.Writer, report *schema.Report, cfg *contract.Config) error {
	for _, o := range report.Outcomes {
		if _, err := fmt.Fprintf(w, "%s %s\n", severityGlyph(o.Severity), o.Message); err != nil {
			return err
		}
		for _, d := range o.Details {
			if _, err := fmt.Fprintf(w, "   %s\n", d); err != nil {
				return err
			}
		}
	}
	return writeReportSummary(w, report, cfg)
}

// writeReportTable prints the detailed report as a table with one row per
// outcome.
func writeReportTable(w io.Writer, report *schema.Report, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Check", "Status", "Message"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	maxMsgWidth := getMaxTableMessageWidth(cfg)
	var data [][]string
	for _, o := range report.Outcomes {
		label := contract.GetPlainLabel(o.Severity)
		if cfg.UseColors {
			label = contract.GetColorLabel(o.Severity)
		}
		data = append(data, []string{
			o.CheckName,
			label,
			truncateText(o.Message, maxMsgWidth),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	return writeReportSummary(w, report, cfg)
}

// writeReportSummary prints the aggregate line under either report form.
func writeReportSummary(w io.Writer, report *schema.Report, _ *contract.Config) error {
	passed, warned, failed := 0, 0, 0
	for _, o := range report.Outcomes {
		switch o.Severity {
		case schema.SeverityPass:
			passed++
		case schema.SeverityWarn:
			warned++
		default:
			failed++
		}
	}
	if _, err := fmt.Fprintf(w, "\n%d checks: %d passed, %d warnings, %d failed\n", len(report.Outcomes), passed, warned, failed); err != nil {
		return err
	}

	if report.OverallPass {
		_, err := fmt.Fprintln(w, "✅ Setup looks good")
		return err
	}
	_, err := fmt.Fprintln(w, "❌ Setup has problems; fix the failures above and run validate again")
	return err
}

// writeCacheStatus prints the response cache status with padded labels.
func writeCacheStatus(w io.Writer, status schema.CacheStatus, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeJSON(w, status)
	}

	if _, err := fmt.Fprintln(w, "Response cache status:"); err != nil {
		return err
	}

	labels := []string{"Backend:", "Connected:", "Entries:"}
	values := []any{status.Backend, status.Connected, status.TotalEntries}
	if status.TotalEntries > 0 {
		labels = append(labels, "Oldest entry:", "Latest entry:")
		values = append(values, status.OldestEntryTime, status.LastEntryTime)
	}

	maxLabelLen := 0
	for _, label := range labels {
		if len(label) > maxLabelLen {
			maxLabelLen = len(label)
		}
	}
	for i, label := range labels {
		if _, err := fmt.Fprintf(w, "  %-*s %v\n", maxLabelLen+1, label, values[i]); err != nil {
			return err
		}
	}
	return nil
}
