// Package charge computes the final porte for a matched record.
package charge

import (
	"github.com/shopspring/decimal"

	"porte-calc/internal/errors"
)

// Places is the decimal precision of every charge.
const Places = 2

// Compute applies a rule's pricing to a record weight:
//
//	charge = fixed_fee + rate_per_unit * weight
//
// rounded to two decimal places half-up. decimal.Round rounds half
// away from zero, which is half-up for the non-negative amounts this
// pipeline deals in.
//
// A negative result cannot occur with valid rules and records; when
// it does, the error is fatal for the record only, never for the run.
func Compute(weight decimal.Decimal, ratePerUnit, fixedFee decimal.Decimal) (decimal.Decimal, error) {
	raw := fixedFee.Add(ratePerUnit.Mul(weight))
	if raw.IsNegative() {
		return decimal.Zero, errors.Newf(errors.TypeNegativeCharge, "computed charge is negative: %s", raw)
	}
	return raw.Round(Places), nil
}
