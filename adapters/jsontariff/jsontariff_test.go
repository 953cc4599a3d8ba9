package jsontariff

import (
	"testing"

	"porte-calc/internal/errors"
)

const validDoc = `{
  "rules": [
    {"id": "r1", "origin": "A", "destination": "B", "carrier": "*",
     "min_weight": 0, "max_weight": 100, "rate_per_unit": 2.0, "fixed_fee": 5.0, "priority": 1},
    {"origin": "A", "destination": "*",
     "min_weight": 0, "max_weight": 50, "rate_per_unit": 3.5, "fixed_fee": 0}
  ]
}`

func TestParseValidDocument(t *testing.T) {
	table, err := Parse([]byte(validDoc))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("expected 2 rules, got %d", table.Len())
	}
	if table.At(0).ID != "r1" {
		t.Fatalf("unexpected first rule: %+v", table.At(0))
	}
	if table.At(1).ID != "rule-2" {
		t.Fatalf("expected positional id, got %q", table.At(1).ID)
	}
}

func TestParseRejectsNegativeRate(t *testing.T) {
	doc := `{"rules": [{"origin": "A", "destination": "B",
	  "min_weight": 0, "max_weight": 10, "rate_per_unit": -1, "fixed_fee": 0}]}`
	_, err := Parse([]byte(doc))
	if err == nil {
		t.Fatal("expected schema rejection")
	}
	if !errors.IsType(err, errors.TypeMalformedRule) {
		t.Fatalf("expected MALFORMED_RULE, got %v", err)
	}
}

func TestParseRejectsMissingField(t *testing.T) {
	doc := `{"rules": [{"origin": "A", "destination": "B"}]}`
	if _, err := Parse([]byte(doc)); err == nil {
		t.Fatal("expected schema rejection for missing bounds")
	}
}

func TestParseRejectsUnknownField(t *testing.T) {
	doc := `{"rules": [{"origin": "A", "destination": "B", "min_weight": 0,
	  "max_weight": 10, "rate_per_unit": 1, "fixed_fee": 0, "zone": 4}]}`
	if _, err := Parse([]byte(doc)); err == nil {
		t.Fatal("expected schema rejection for unknown field")
	}
}

func TestParseInvalidJSON(t *testing.T) {
	_, err := Parse([]byte(`{"rules": [`))
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
	if !errors.IsType(err, errors.TypeMalformedTable) {
		t.Fatalf("expected MALFORMED_TABLE, got %v", err)
	}
}

func TestParseRejectsInvertedBounds(t *testing.T) {
	// Passes the schema; caught by table validation.
	doc := `{"rules": [{"origin": "A", "destination": "B",
	  "min_weight": 100, "max_weight": 10, "rate_per_unit": 1, "fixed_fee": 0}]}`
	_, err := Parse([]byte(doc))
	if err == nil {
		t.Fatal("expected table validation rejection")
	}
	if !errors.IsType(err, errors.TypeMalformedRule) {
		t.Fatalf("expected MALFORMED_RULE, got %v", err)
	}
}
