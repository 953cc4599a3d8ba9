package hcltariff

import (
	"testing"

	"github.com/shopspring/decimal"

	"porte-calc/internal/errors"
)

const sampleDoc = `
rule "intra" {
  origin        = "Madrid"
  destination   = "Madrid"
  carrier       = "*"
  min_weight    = 0
  max_weight    = 1000
  rate_per_unit = 0.04
  fixed_fee     = 25
  priority      = 2
}

rule "regional" {
  origin        = "Madrid"
  destination   = "*"
  min_weight    = 0
  max_weight    = 500
  rate_per_unit = 0.1
  fixed_fee     = 35
}
`

func TestParseDocument(t *testing.T) {
	table, err := Parse([]byte(sampleDoc), "tariff.hcl")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("expected 2 rules, got %d", table.Len())
	}

	intra := table.At(0)
	if intra.ID != "intra" || intra.Priority != 2 {
		t.Fatalf("unexpected first rule: %+v", intra)
	}
	if !intra.RatePerUnit.Equal(decimal.RequireFromString("0.04")) {
		t.Fatalf("rate lost precision: %s", intra.RatePerUnit)
	}

	regional := table.At(1)
	if regional.ID != "regional" || regional.Priority != 0 || regional.CarrierPattern != "" {
		t.Fatalf("unexpected second rule: %+v", regional)
	}
}

func TestParseBlockOrderIsTableOrder(t *testing.T) {
	table, err := Parse([]byte(sampleDoc), "tariff.hcl")
	if err != nil {
		t.Fatal(err)
	}
	if table.At(0).ID != "intra" || table.At(1).ID != "regional" {
		t.Fatal("block order not preserved")
	}
}

func TestParseMissingAttribute(t *testing.T) {
	doc := `
rule "broken" {
  origin      = "A"
  destination = "B"
}
`
	if _, err := Parse([]byte(doc), "tariff.hcl"); err == nil {
		t.Fatal("expected error for missing attributes")
	}
}

func TestParseWrongType(t *testing.T) {
	doc := `
rule "broken" {
  origin        = "A"
  destination   = "B"
  min_weight    = "zero"
  max_weight    = 10
  rate_per_unit = 1
  fixed_fee     = 0
}
`
	_, err := Parse([]byte(doc), "tariff.hcl")
	if err == nil {
		t.Fatal("expected error for string weight")
	}
	if !errors.IsType(err, errors.TypeMalformedRule) {
		t.Fatalf("expected MALFORMED_RULE, got %v", err)
	}
}

func TestParseInvertedBounds(t *testing.T) {
	doc := `
rule "broken" {
  origin        = "A"
  destination   = "B"
  min_weight    = 100
  max_weight    = 10
  rate_per_unit = 1
  fixed_fee     = 0
}
`
	_, err := Parse([]byte(doc), "tariff.hcl")
	if err == nil {
		t.Fatal("expected error for inverted bounds")
	}
	if !errors.IsType(err, errors.TypeMalformedRule) {
		t.Fatalf("expected MALFORMED_RULE, got %v", err)
	}
}

func TestParseInvalidSyntax(t *testing.T) {
	_, err := Parse([]byte(`rule "x" {`), "tariff.hcl")
	if err == nil {
		t.Fatal("expected error for invalid HCL")
	}
	if !errors.IsType(err, errors.TypeMalformedTable) {
		t.Fatalf("expected MALFORMED_TABLE, got %v", err)
	}
}
