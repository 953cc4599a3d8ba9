// Package types - Tariff rule and table types
package types

import (
	"strings"

	"github.com/shopspring/decimal"

	"porte-calc/internal/errors"
)

// Wildcard matches any origin, destination or carrier.
const Wildcard = "*"

// TariffRule is one priced condition from which a matching route's
// charge is derived.
type TariffRule struct {
	// ID identifies the rule in reports; defaults to its table position
	ID string `json:"id"`

	// OriginPattern matches the record origin, exact or "*"
	OriginPattern string `json:"origin"`

	// DestinationPattern matches the record destination, exact or "*"
	DestinationPattern string `json:"destination"`

	// CarrierPattern matches the record carrier; empty or "*" matches all
	CarrierPattern string `json:"carrier,omitempty"`

	// MinWeight is the inclusive lower weight bound
	MinWeight decimal.Decimal `json:"min_weight"`

	// MaxWeight is the inclusive upper weight bound
	MaxWeight decimal.Decimal `json:"max_weight"`

	// RatePerUnit is the price per weight unit, never negative
	RatePerUnit decimal.Decimal `json:"rate_per_unit"`

	// FixedFee is the flat fee added to every matched charge
	FixedFee decimal.Decimal `json:"fixed_fee"`

	// Priority breaks ties among overlapping rules; higher wins
	Priority int `json:"priority"`
}

// Validate checks the rule invariants
func (r TariffRule) Validate() error {
	if strings.TrimSpace(r.OriginPattern) == "" {
		return errors.MalformedRule("origin pattern is empty")
	}
	if strings.TrimSpace(r.DestinationPattern) == "" {
		return errors.MalformedRule("destination pattern is empty")
	}
	if r.MinWeight.GreaterThan(r.MaxWeight) {
		return errors.MalformedRule("min_weight exceeds max_weight")
	}
	if r.RatePerUnit.IsNegative() {
		return errors.MalformedRule("rate_per_unit is negative")
	}
	if r.FixedFee.IsNegative() {
		return errors.MalformedRule("fixed_fee is negative")
	}
	return nil
}

// TariffTable is an ordered, immutable sequence of tariff rules.
// Insertion order is significant: it is the deterministic tie-break
// among rules of equal priority.
type TariffTable struct {
	rules []TariffRule
}

// NewTariffTable validates the rules and builds a table preserving
// their order. Any invalid rule fails the whole table.
func NewTariffTable(rules []TariffRule) (*TariffTable, error) {
	owned := make([]TariffRule, len(rules))
	copy(owned, rules)
	for i, rule := range owned {
		if err := rule.Validate(); err != nil {
			if e, ok := err.(*errors.Error); ok {
				return nil, e.WithContext("rule", i+1)
			}
			return nil, err
		}
	}
	return &TariffTable{rules: owned}, nil
}

// Len returns the number of rules
func (t *TariffTable) Len() int {
	return len(t.rules)
}

// At returns the rule at position i
func (t *TariffTable) At(i int) TariffRule {
	return t.rules[i]
}

// Rules returns a copy of the rules in table order
func (t *TariffTable) Rules() []TariffRule {
	out := make([]TariffRule, len(t.rules))
	copy(out, t.rules)
	return out
}
