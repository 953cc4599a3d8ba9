package output

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"porte-calc/core/types"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func sampleReport() *types.Report {
	rule := types.TariffRule{ID: "r1", OriginPattern: "A", DestinationPattern: "B", MaxWeight: d("100")}
	return &types.Report{
		Rows: []types.ReportRow{
			{
				Record: types.RouteRecord{Origin: "A", Destination: "B", Weight: d("10"), Row: 2},
				Result: types.MatchedResult(rule, d("25.00")),
			},
			{
				Record: types.RouteRecord{Origin: "A", Destination: "C", Weight: d("10"), Row: 3},
				Result: types.UnmatchedResult(types.ReasonNoRuleFound),
			},
		},
		Summary: types.Summary{Matched: 1, Unmatched: 1, NoRuleFound: 1, TotalCharge: d("25.00")},
	}
}

func TestReportRowsShape(t *testing.T) {
	rows := ReportRows(sampleReport())
	// 2 record rows + separator + summary
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	matched := rows[0]
	if matched[3] != "r1" || matched[4] != "25.00" || matched[5] != "" {
		t.Fatalf("unexpected matched row: %v", matched)
	}
	unmatched := rows[1]
	if unmatched[3] != "none" || unmatched[4] != "" || unmatched[5] != "no_rule_found" {
		t.Fatalf("unexpected unmatched row: %v", unmatched)
	}
}

func TestRenderCSVRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, FormatCSV, sampleReport()); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	parsed, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(parsed) != 5 { // header + 4
		t.Fatalf("expected 5 CSV rows, got %d", len(parsed))
	}
	if parsed[0][0] != "origin" {
		t.Fatalf("unexpected header: %v", parsed[0])
	}
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, FormatJSON, sampleReport()); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(buf.String(), "\"total_charge\"") {
		t.Fatal("JSON output missing summary")
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, Format("xml"), sampleReport()); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestRenderCLIContainsTotal(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, FormatCLI, sampleReport()); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(buf.String(), "25.00") {
		t.Fatal("terminal output missing total")
	}
}
