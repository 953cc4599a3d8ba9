// Package output renders run reports for humans and machines.
// The persisted row shape lives here so every sink (CSV file, Google
// Sheet, terminal) writes the same columns.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"porte-calc/core/types"
	"porte-calc/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable terminal table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatCSV is the persisted tabular shape
	FormatCSV Format = "csv"
)

// Header is the persisted column set: one row per route record plus a
// trailing summary section.
var Header = []string{"origin", "destination", "weight", "matched_rule_id", "charge", "reason"}

// ReportRows converts a report to the persisted row shape, without the
// header. Row i corresponds to report row i; summary rows follow.
func ReportRows(rep *types.Report) [][]string {
	rows := make([][]string, 0, len(rep.Rows)+3)
	for _, row := range rep.Rows {
		rows = append(rows, RecordRow(row))
	}
	rows = append(rows,
		[]string{"", "", "", "", "", ""},
		[]string{"summary", "", "", fmt.Sprintf("matched=%d", rep.Summary.Matched), rep.Summary.TotalCharge.StringFixed(2), fmt.Sprintf("unmatched=%d", rep.Summary.Unmatched)},
	)
	return rows
}

// RecordRow converts one report row to the persisted cell values.
func RecordRow(row types.ReportRow) []string {
	record := row.Record
	result := row.Result

	ruleID := "none"
	chargeCell := ""
	reason := ""
	if result.Matched {
		ruleID = result.Rule.ID
		chargeCell = result.Charge.StringFixed(2)
	} else {
		reason = string(result.Reason)
	}

	return []string{
		record.Origin,
		record.Destination,
		record.Weight.String(),
		ruleID,
		chargeCell,
		reason,
	}
}

// Render writes the report in the requested format
func Render(w io.Writer, format Format, rep *types.Report) error {
	switch format {
	case FormatCLI:
		return renderCLI(w, rep)
	case FormatJSON:
		return renderJSON(w, rep)
	case FormatCSV:
		return renderCSV(w, rep)
	default:
		return errors.Newf(errors.TypeConfig, "unknown output format: %s", format)
	}
}

func renderJSON(w io.Writer, rep *types.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

func renderCSV(w io.Writer, rep *types.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	if err := cw.WriteAll(ReportRows(rep)); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func renderCLI(w io.Writer, rep *types.Report) error {
	fmt.Fprintln(w, "┌──────────────────────────────────────────────────────────────────────┐")
	fmt.Fprintln(w, "│                           PORTE PER ROUTE                            │")
	fmt.Fprintln(w, "├──────────────────────────────────────────────────────────────────────┤")

	for _, row := range rep.Rows {
		label := fmt.Sprintf("%s → %s (%s)", row.Record.Origin, row.Record.Destination, row.Record.Weight)
		var amount string
		if row.Result.Matched {
			amount = row.Result.Charge.StringFixed(2)
		} else {
			amount = string(row.Result.Reason)
		}
		fmt.Fprintf(w, "│ %-48s %19s │\n", truncate(label, 48), truncate(amount, 19))
	}

	fmt.Fprintln(w, "├──────────────────────────────────────────────────────────────────────┤")
	fmt.Fprintf(w, "│ %-48s %19s │\n", "TOTAL", rep.Summary.TotalCharge.StringFixed(2))
	fmt.Fprintf(w, "│ %-48s %19s │\n",
		fmt.Sprintf("matched %d / unmatched %d", rep.Summary.Matched, rep.Summary.Unmatched), "")
	fmt.Fprintln(w, "└──────────────────────────────────────────────────────────────────────┘")
	return nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
