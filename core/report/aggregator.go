// Package report aggregates per-record results into the run report.
package report

import (
	"github.com/shopspring/decimal"

	"porte-calc/core/types"
	"porte-calc/internal/errors"
)

// Aggregate pairs each record with its result in input order and
// computes the summary tallies. Output row i always corresponds to
// input record i. The function is pure: same inputs, identical report.
func Aggregate(records []types.RouteRecord, results []types.ResolutionResult) (*types.Report, error) {
	if len(records) != len(results) {
		return nil, errors.Newf(errors.TypeInternal, "record/result count mismatch: %d vs %d", len(records), len(results))
	}

	rep := &types.Report{
		Rows: make([]types.ReportRow, 0, len(records)),
		Summary: types.Summary{
			TotalCharge: decimal.Zero,
		},
	}

	for i, record := range records {
		result := results[i]
		rep.Rows = append(rep.Rows, types.ReportRow{Record: record, Result: result})

		if result.Matched {
			rep.Summary.Matched++
			rep.Summary.TotalCharge = rep.Summary.TotalCharge.Add(result.Charge)
			continue
		}

		rep.Summary.Unmatched++
		switch result.Reason {
		case types.ReasonNoRuleFound:
			rep.Summary.NoRuleFound++
		case types.ReasonInvalidRecord:
			rep.Summary.InvalidRecord++
		case types.ReasonInvalidCharge:
			rep.Summary.InvalidCharge++
		}
	}

	return rep, nil
}
