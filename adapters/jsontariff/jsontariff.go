// Package jsontariff loads tariff tables from JSON documents.
package jsontariff

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"porte-calc/core/types"
	"porte-calc/internal/errors"
	"porte-calc/internal/validation"
)

type document struct {
	Rules []ruleDoc `json:"rules"`
}

type ruleDoc struct {
	ID          string          `json:"id"`
	Origin      string          `json:"origin"`
	Destination string          `json:"destination"`
	Carrier     string          `json:"carrier"`
	MinWeight   decimal.Decimal `json:"min_weight"`
	MaxWeight   decimal.Decimal `json:"max_weight"`
	RatePerUnit decimal.Decimal `json:"rate_per_unit"`
	FixedFee    decimal.Decimal `json:"fixed_fee"`
	Priority    int             `json:"priority"`
}

// Load reads a JSON tariff document from a file
func Load(path string) (*types.TariffTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.SourceUnavailable(path, err)
	}
	return Parse(raw)
}

// Parse validates a JSON tariff document against the schema and builds
// the table, preserving array order.
func Parse(raw []byte) (*types.TariffTable, error) {
	if err := validation.TariffDocument(raw); err != nil {
		return nil, err
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(errors.TypeMalformedTable, "invalid JSON", err)
	}

	rules := make([]types.TariffRule, 0, len(doc.Rules))
	for i, r := range doc.Rules {
		id := r.ID
		if id == "" {
			id = fmt.Sprintf("rule-%d", i+1)
		}
		rules = append(rules, types.TariffRule{
			ID:                 id,
			OriginPattern:      r.Origin,
			DestinationPattern: r.Destination,
			CarrierPattern:     r.Carrier,
			MinWeight:          r.MinWeight,
			MaxWeight:          r.MaxWeight,
			RatePerUnit:        r.RatePerUnit,
			FixedFee:           r.FixedFee,
			Priority:           r.Priority,
		})
	}

	return types.NewTariffTable(rules)
}
