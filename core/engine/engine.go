// Package engine orchestrates one porte computation run.
// CLI and HTTP surfaces are thin wrappers around this engine; neither
// performs any charge logic of its own.
package engine

import (
	"context"

	"go.uber.org/zap"

	"porte-calc/core/charge"
	"porte-calc/core/report"
	"porte-calc/core/resolve"
	"porte-calc/core/route"
	"porte-calc/core/types"
	"porte-calc/internal/logging"
)

// Engine runs the resolve/compute/aggregate pipeline. It holds no
// state across runs; every Run receives its inputs explicitly and the
// resulting report is independently owned by the caller.
type Engine struct {
	resolver *resolve.Resolver
	log      *zap.Logger
}

// New creates an Engine
func New() *Engine {
	return &Engine{
		resolver: resolve.New(),
		log:      logging.Logger,
	}
}

// Run resolves every normalized row against the table, sequentially
// and in input order, then aggregates the results. Per-record failures
// never abort the run; they surface as unmatched rows in the report.
func (e *Engine) Run(ctx context.Context, table *types.TariffTable, rows []route.Row) (*types.Report, error) {
	records := make([]types.RouteRecord, 0, len(rows))
	results := make([]types.ResolutionResult, 0, len(rows))

	for _, row := range rows {
		records = append(records, row.Record)

		if row.Err != nil {
			e.log.Debug("skipping malformed record",
				zap.Int("row", row.Record.Row),
				zap.Error(row.Err))
			results = append(results, types.UnmatchedResult(types.ReasonInvalidRecord))
			continue
		}

		results = append(results, e.resolveOne(row.Record, table))
	}

	rep, err := report.Aggregate(records, results)
	if err != nil {
		return nil, err
	}

	e.log.Info("run complete",
		zap.Int("records", len(records)),
		zap.Int("matched", rep.Summary.Matched),
		zap.Int("unmatched", rep.Summary.Unmatched),
		zap.String("total_charge", rep.Summary.TotalCharge.StringFixed(2)))
	return rep, nil
}

// RunRecords runs the pipeline over already-typed records, validating
// each at the boundary. Used by the HTTP surface where records arrive
// as JSON rather than tabular rows.
func (e *Engine) RunRecords(ctx context.Context, table *types.TariffTable, records []types.RouteRecord) (*types.Report, error) {
	rows := make([]route.Row, 0, len(records))
	for _, record := range records {
		rows = append(rows, route.Row{Record: record, Err: record.Validate()})
	}
	return e.Run(ctx, table, rows)
}

func (e *Engine) resolveOne(record types.RouteRecord, table *types.TariffTable) types.ResolutionResult {
	res := e.resolver.Resolve(record, table)
	if !res.Matched {
		return res
	}

	amount, err := charge.Compute(record.Weight, res.Rule.RatePerUnit, res.Rule.FixedFee)
	if err != nil {
		e.log.Warn("charge invariant violated",
			zap.Int("row", record.Row),
			zap.String("rule", res.Rule.ID),
			zap.Error(err))
		return types.UnmatchedResult(types.ReasonInvalidCharge)
	}

	return types.MatchedResult(*res.Rule, amount)
}
