// Package route normalizes loosely-typed source rows into RouteRecords.
// Rows are re-anchored to the record invariants here, at the boundary;
// untyped data never reaches the resolver. A bad row is kept, flagged,
// so the report still carries one output row per input row.
package route

import (
	"strings"

	"github.com/shopspring/decimal"

	"porte-calc/core/types"
	"porte-calc/internal/errors"
)

// Column names recognized in route table headers.
const (
	colOrigin      = "origin"
	colDestination = "destination"
	colWeight      = "weight"
	colVolume      = "volume"
	colCarrier     = "carrier"
)

// Row is one normalized source row. Err is set when the row failed
// normalization; such rows resolve to an invalid-record outcome
// without aborting the run.
type Row struct {
	Record types.RouteRecord
	Err    error
}

// Load normalizes header-keyed rows. The returned slice has exactly
// one entry per input row, in input order.
func Load(header []string, rows [][]string) ([]Row, error) {
	idx := indexHeader(header)
	for _, col := range []string{colOrigin, colDestination, colWeight} {
		if _, ok := idx[col]; !ok {
			return nil, errors.Newf(errors.TypeMalformedTable, "route table is missing column %q", col)
		}
	}

	out := make([]Row, 0, len(rows))
	for i, raw := range rows {
		record, err := parseRecord(idx, raw, i+2) // 1-based, after header
		out = append(out, Row{Record: record, Err: err})
	}
	return out, nil
}

func parseRecord(idx map[string]int, raw []string, sourceRow int) (types.RouteRecord, error) {
	record := types.RouteRecord{
		Origin:      cell(idx, raw, colOrigin),
		Destination: cell(idx, raw, colDestination),
		Carrier:     cell(idx, raw, colCarrier),
		Row:         sourceRow,
	}

	weightRaw := cell(idx, raw, colWeight)
	if weightRaw == "" {
		return record, errors.MalformedRecord("weight is empty").WithContext("row", sourceRow)
	}
	weight, err := decimal.NewFromString(weightRaw)
	if err != nil {
		return record, errors.MalformedRecord("weight is not numeric").WithContext("row", sourceRow).WithContext("value", weightRaw)
	}
	record.Weight = weight

	if volumeRaw := cell(idx, raw, colVolume); volumeRaw != "" {
		volume, err := decimal.NewFromString(volumeRaw)
		if err != nil {
			return record, errors.MalformedRecord("volume is not numeric").WithContext("row", sourceRow).WithContext("value", volumeRaw)
		}
		record.Volume = &volume
	}

	if err := record.Validate(); err != nil {
		return record, err
	}
	return record, nil
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
