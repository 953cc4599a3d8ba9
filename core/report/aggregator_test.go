package report

import (
	"bytes"
	"encoding/json"
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

func sampleInputs() ([]types.RouteRecord, []types.ResolutionResult) {
	rule := types.TariffRule{ID: "r1", OriginPattern: "A", DestinationPattern: "B", MaxWeight: d("100")}
	records := []types.RouteRecord{
		{Origin: "A", Destination: "B", Weight: d("10"), Row: 2},
		{Origin: "A", Destination: "C", Weight: d("10"), Row: 3},
		{Origin: "A", Destination: "B", Weight: d("2"), Row: 4},
	}
	results := []types.ResolutionResult{
		types.MatchedResult(rule, d("25.00")),
		types.UnmatchedResult(types.ReasonNoRuleFound),
		types.MatchedResult(rule, d("9.10")),
	}
	return records, results
}

func TestAggregatePreservesOrderAndCount(t *testing.T) {
	records, results := sampleInputs()
	rep, err := Aggregate(records, results)
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}
	if len(rep.Rows) != len(records) {
		t.Fatalf("row count %d != record count %d", len(rep.Rows), len(records))
	}
	for i := range records {
		if rep.Rows[i].Record.Row != records[i].Row {
			t.Fatalf("row %d out of order", i)
		}
	}
}

func TestAggregateSummary(t *testing.T) {
	records, results := sampleInputs()
	rep, err := Aggregate(records, results)
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}
	s := rep.Summary
	if s.Matched != 2 || s.Unmatched != 1 || s.NoRuleFound != 1 {
		t.Fatalf("unexpected summary: %+v", s)
	}
	if !s.TotalCharge.Equal(d("34.10")) {
		t.Fatalf("expected total 34.10, got %s", s.TotalCharge)
	}
}

func TestAggregateUnmatchedDoesNotAffectTotal(t *testing.T) {
	records, results := sampleInputs()
	before, _ := Aggregate(records[:1], results[:1])

	after, _ := Aggregate(records[:2], results[:2])
	if after.Summary.Unmatched != before.Summary.Unmatched+1 {
		t.Fatal("unmatched count must increment")
	}
	if !after.Summary.TotalCharge.Equal(before.Summary.TotalCharge) {
		t.Fatal("unmatched record must not change the total charge")
	}
}

func TestAggregateDeterministic(t *testing.T) {
	records, results := sampleInputs()

	first, err := Aggregate(records, results)
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}
	second, err := Aggregate(records, results)
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if !bytes.Equal(a, b) {
		t.Fatal("same inputs must produce a byte-identical report")
	}
}

func TestAggregateLengthMismatch(t *testing.T) {
	records, results := sampleInputs()
	if _, err := Aggregate(records, results[:1]); err == nil {
		t.Fatal("expected error on record/result mismatch")
	}
}
