// Package api exposes the computation engine over HTTP.
// The API is only responsible for input ingestion, engine
// orchestration and output serialization; it never performs charge
// logic.
package api

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"porte-calc/core/types"
)

// ComputeRequest is the POST /compute payload. Tariff is a JSON
// tariff document, validated against the same schema as file sources.
type ComputeRequest struct {
	Tariff json.RawMessage `json:"tariff"`
	Routes []RouteDoc      `json:"routes"`
}

// RouteDoc is one inline route row
type RouteDoc struct {
	Origin      string           `json:"origin"`
	Destination string           `json:"destination"`
	Weight      decimal.Decimal  `json:"weight"`
	Carrier     string           `json:"carrier,omitempty"`
	Volume      *decimal.Decimal `json:"volume,omitempty"`
}

// ComputeResponse is the POST /compute result
type ComputeResponse struct {
	RunID  string        `json:"run_id,omitempty"`
	Report *types.Report `json:"report"`
}

// ErrorResponse is the error envelope
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries the error type and message
type ErrorBody struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (r RouteDoc) record(row int) types.RouteRecord {
	return types.RouteRecord{
		Origin:      r.Origin,
		Destination: r.Destination,
		Weight:      r.Weight,
		Carrier:     r.Carrier,
		Volume:      r.Volume,
		Row:         row,
	}
}
