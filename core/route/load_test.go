package route

import (
	"testing"

	"github.com/shopspring/decimal"

	"porte-calc/internal/errors"
)

func decimalFrom(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

var header = []string{"origin", "destination", "weight", "carrier", "volume"}

func TestLoadNormalizesRows(t *testing.T) {
	rows, err := Load(header, [][]string{
		{"A", "B", "10", "dhl", "1.5"},
	})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	r := rows[0]
	if r.Err != nil {
		t.Fatalf("unexpected row error: %v", r.Err)
	}
	if r.Record.Origin != "A" || r.Record.Destination != "B" || r.Record.Carrier != "dhl" {
		t.Fatalf("unexpected record: %+v", r.Record)
	}
	if !r.Record.Weight.Equal(decimalFrom(t, "10")) {
		t.Fatalf("unexpected weight: %s", r.Record.Weight)
	}
	if r.Record.Volume == nil || !r.Record.Volume.Equal(decimalFrom(t, "1.5")) {
		t.Fatal("volume not carried through")
	}
}

func TestLoadFlagsBadRowsWithoutDropping(t *testing.T) {
	rows, err := Load(header, [][]string{
		{"A", "B", "10", "", ""},
		{"", "B", "10", "", ""},       // empty origin
		{"A", "B", "heavy", "", ""},   // non-numeric weight
		{"A", "B", "-1", "", ""},      // negative weight
	})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("bad rows must be kept; got %d of 4", len(rows))
	}
	if rows[0].Err != nil {
		t.Fatalf("valid row flagged: %v", rows[0].Err)
	}
	for i := 1; i < 4; i++ {
		if rows[i].Err == nil {
			t.Fatalf("row %d should be flagged", i)
		}
		if !errors.IsType(rows[i].Err, errors.TypeMalformedRecord) {
			t.Fatalf("row %d: expected MALFORMED_RECORD, got %v", i, rows[i].Err)
		}
	}
}

func TestLoadMissingColumn(t *testing.T) {
	_, err := Load([]string{"origin", "destination"}, nil)
	if err == nil {
		t.Fatal("expected error for missing weight column")
	}
	if !errors.IsType(err, errors.TypeMalformedTable) {
		t.Fatalf("expected MALFORMED_TABLE, got %v", err)
	}
}
