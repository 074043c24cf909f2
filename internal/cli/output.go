package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/kojima2223-star/Fumotoppara/internal/availability"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// RunReport summarizes one run for the report written to stdout.
type RunReport struct {
	CheckedAt   time.Time `json:"checked_at"`
	CalendarURL string    `json:"calendar_url"`
	Category    string    `json:"category"`
	DateLabel   string    `json:"date_label"`
	Previous    string    `json:"previous"`
	Current     string    `json:"current"`
	Policy      string    `json:"policy"`
	Notified    bool      `json:"notified"`
	DryRun      bool      `json:"dry_run,omitempty"`
	CellText    string    `json:"cell_text,omitempty"`
}

// WriteOutput writes the report in the specified format
func WriteOutput(w io.Writer, report *RunReport, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, report)
	case FormatText:
		return writeText(w, report)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs the report as indented JSON
func writeJSON(w io.Writer, report *RunReport) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// writeText outputs the report as human-readable text
func writeText(w io.Writer, report *RunReport) error {
	fmt.Fprintf(w, "Checked %s %s\n", report.Category, report.DateLabel)
	fmt.Fprintf(w, "  URL:      %s\n", report.CalendarURL)
	fmt.Fprintf(w, "  Current:  %s\n", statusDisplay(report.Current))
	fmt.Fprintf(w, "  Previous: %s\n", statusDisplay(report.Previous))

	if report.Notified {
		if report.DryRun {
			fmt.Fprintf(w, "Dry run: notification would be sent (policy: %s)\n", report.Policy)
		} else {
			fmt.Fprintf(w, "Notification sent (policy: %s)\n", report.Policy)
		}
	} else {
		fmt.Fprintf(w, "No notification (policy: %s)\n", report.Policy)
	}

	return nil
}

// statusDisplay renders a status string with its english name, e.g. "△ (limited)".
func statusDisplay(s string) string {
	status := availability.ParseStatus(s)
	if status == availability.None {
		return "(none)"
	}
	return fmt.Sprintf("%s (%s)", string(status), status.Name())
}
