// Package tariff loads tariff tables from tabular sources.
// Any malformed rule row fails the whole load: resolution never starts
// against a partially valid table.
package tariff

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"porte-calc/core/types"
	"porte-calc/internal/errors"
)

// Column names recognized in tariff table headers.
const (
	colID          = "id"
	colOrigin      = "origin"
	colDestination = "destination"
	colCarrier     = "carrier"
	colMinWeight   = "min_weight"
	colMaxWeight   = "max_weight"
	colRatePerUnit = "rate_per_unit"
	colFixedFee    = "fixed_fee"
	colPriority    = "priority"
)

// Load normalizes header-keyed rows into a TariffTable, preserving
// source order. id, carrier and priority are optional columns.
func Load(header []string, rows [][]string) (*types.TariffTable, error) {
	idx := indexHeader(header)
	for _, col := range []string{colOrigin, colDestination, colMinWeight, colMaxWeight, colRatePerUnit, colFixedFee} {
		if _, ok := idx[col]; !ok {
			return nil, errors.Newf(errors.TypeMalformedTable, "tariff table is missing column %q", col)
		}
	}

	rules := make([]types.TariffRule, 0, len(rows))
	for i, row := range rows {
		rule, err := parseRule(idx, row)
		if err != nil {
			if e, ok := err.(*errors.Error); ok {
				return nil, e.WithContext("row", i+2) // 1-based, after header
			}
			return nil, err
		}
		if rule.ID == "" {
			rule.ID = fmt.Sprintf("rule-%d", i+1)
		}
		rules = append(rules, rule)
	}

	return types.NewTariffTable(rules)
}

func parseRule(idx map[string]int, row []string) (types.TariffRule, error) {
	var rule types.TariffRule
	var err error

	rule.ID = cell(idx, row, colID)
	rule.OriginPattern = cell(idx, row, colOrigin)
	rule.DestinationPattern = cell(idx, row, colDestination)
	rule.CarrierPattern = cell(idx, row, colCarrier)

	if rule.MinWeight, err = parseDecimal(cell(idx, row, colMinWeight), colMinWeight); err != nil {
		return rule, err
	}
	if rule.MaxWeight, err = parseDecimal(cell(idx, row, colMaxWeight), colMaxWeight); err != nil {
		return rule, err
	}
	if rule.RatePerUnit, err = parseDecimal(cell(idx, row, colRatePerUnit), colRatePerUnit); err != nil {
		return rule, err
	}
	if rule.FixedFee, err = parseDecimal(cell(idx, row, colFixedFee), colFixedFee); err != nil {
		return rule, err
	}

	if raw := cell(idx, row, colPriority); raw != "" {
		rule.Priority, err = strconv.Atoi(raw)
		if err != nil {
			return rule, errors.MalformedRule("priority is not an integer").WithContext("value", raw)
		}
	}

	return rule, nil
}

func parseDecimal(raw, col string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, errors.MalformedRule(col + " is empty")
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errors.MalformedRule(col + " is not numeric").WithContext("value", raw)
	}
	return d, nil
}

func cell(idx map[string]int, row []string, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func indexHeader(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return idx
}
