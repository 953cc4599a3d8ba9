// Package resolve matches route records against tariff tables.
package resolve

import (
	"github.com/shopspring/decimal"

	"porte-calc/core/match"
	"porte-calc/core/types"
)

// Resolver selects the applicable tariff rule for a record.
//
// Among all matching rules the highest priority wins; rules of equal
// priority are broken by table position, earliest first. Picking the
// first-in-order rule on an exact tie is intentional: the source order
// of the tariff table is part of its contract, so repeated runs over
// the same table and record always select the same rule.
type Resolver struct{}

// New creates a Resolver
func New() *Resolver {
	return &Resolver{}
}

// Resolve returns the applicable rule for the record, or an unmatched
// outcome when no rule applies. The charge is left zero; the engine
// fills it in from the calculator.
func (r *Resolver) Resolve(record types.RouteRecord, table *types.TariffTable) types.ResolutionResult {
	bestIdx := -1
	bestPriority := 0

	for i := 0; i < table.Len(); i++ {
		rule := table.At(i)
		if !matches(rule, record) {
			continue
		}
		if bestIdx == -1 || rule.Priority > bestPriority {
			bestIdx = i
			bestPriority = rule.Priority
		}
	}

	if bestIdx == -1 {
		return types.UnmatchedResult(types.ReasonNoRuleFound)
	}
	return types.MatchedResult(table.At(bestIdx), decimal.Zero)
}

func matches(rule types.TariffRule, record types.RouteRecord) bool {
	if !match.Value(rule.OriginPattern, record.Origin) {
		return false
	}
	if !match.Value(rule.DestinationPattern, record.Destination) {
		return false
	}
	if !match.Optional(rule.CarrierPattern, record.Carrier) {
		return false
	}
	// Weight bounds are inclusive on both ends.
	if record.Weight.LessThan(rule.MinWeight) || record.Weight.GreaterThan(rule.MaxWeight) {
		return false
	}
	return true
}
