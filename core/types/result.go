// Package types - Resolution results and the run report
package types

import (
	"github.com/shopspring/decimal"
)

// Reason explains why a record produced no charge
type Reason string

const (
	// ReasonNoRuleFound means no tariff rule matched the record
	ReasonNoRuleFound Reason = "no_rule_found"

	// ReasonInvalidRecord means the source row failed normalization
	ReasonInvalidRecord Reason = "invalid_record"

	// ReasonInvalidCharge means the computed charge failed the
	// non-negativity check
	ReasonInvalidCharge Reason = "invalid_charge"
)

// ResolutionResult is the outcome of resolving one record.
// Exactly one of Rule/Charge (matched) or Reason (unmatched) is set.
type ResolutionResult struct {
	// Matched reports whether a rule was applied
	Matched bool `json:"matched"`

	// Rule is the applied tariff rule when matched
	Rule *TariffRule `json:"rule,omitempty"`

	// Charge is the computed charge when matched
	Charge decimal.Decimal `json:"charge"`

	// Reason explains an unmatched outcome
	Reason Reason `json:"reason,omitempty"`
}

// MatchedResult builds a matched resolution
func MatchedResult(rule TariffRule, charge decimal.Decimal) ResolutionResult {
	return ResolutionResult{Matched: true, Rule: &rule, Charge: charge}
}

// UnmatchedResult builds an unmatched resolution
func UnmatchedResult(reason Reason) ResolutionResult {
	return ResolutionResult{Matched: false, Reason: reason}
}

// ReportRow pairs one record with its resolution. Row i of a report
// always corresponds to input record i.
type ReportRow struct {
	Record RouteRecord      `json:"record"`
	Result ResolutionResult `json:"result"`
}

// Summary holds the per-run tallies
type Summary struct {
	// Matched counts records with an applied rule
	Matched int `json:"matched"`

	// Unmatched counts records that produced no charge
	Unmatched int `json:"unmatched"`

	// NoRuleFound counts records no rule matched
	NoRuleFound int `json:"no_rule_found"`

	// InvalidRecord counts rows that failed normalization
	InvalidRecord int `json:"invalid_record"`

	// InvalidCharge counts records failing the charge check
	InvalidCharge int `json:"invalid_charge"`

	// TotalCharge is the sum of all matched charges
	TotalCharge decimal.Decimal `json:"total_charge"`
}

// Report is the final per-route result set plus the aggregate summary.
// It is built once per run and read-only afterwards.
type Report struct {
	Rows    []ReportRow `json:"rows"`
	Summary Summary     `json:"summary"`
}
