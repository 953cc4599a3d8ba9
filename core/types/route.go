// Package types defines the data model for porte computation.
package types

import (
	"strings"

	"github.com/shopspring/decimal"

	"porte-calc/internal/errors"
)

// RouteRecord is one normalized shipment row awaiting a charge.
// Records are immutable once normalized; the pipeline owns them for
// the duration of a single run.
type RouteRecord struct {
	// Origin is the route origin
	Origin string `json:"origin"`

	// Destination is the route destination
	Destination string `json:"destination"`

	// Weight is the shipment weight, never negative
	Weight decimal.Decimal `json:"weight"`

	// Volume is the shipment volume, if the source provides one.
	// The calculator ignores it; it is carried for reporting only.
	Volume *decimal.Decimal `json:"volume,omitempty"`

	// Carrier is the carrier code, optional
	Carrier string `json:"carrier,omitempty"`

	// Row is the 1-based source row this record came from
	Row int `json:"row"`
}

// Validate checks the record invariants
func (r RouteRecord) Validate() error {
	if strings.TrimSpace(r.Origin) == "" {
		return errors.MalformedRecord("origin is empty").WithContext("row", r.Row)
	}
	if strings.TrimSpace(r.Destination) == "" {
		return errors.MalformedRecord("destination is empty").WithContext("row", r.Row)
	}
	if r.Weight.IsNegative() {
		return errors.MalformedRecord("weight is negative").WithContext("row", r.Row)
	}
	return nil
}
