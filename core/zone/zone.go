// Package zone implements radial zone pricing: concentric distance
// bands around the warehouse, each with a flat price, plus a per-km
// surcharge beyond the outermost band.
package zone

import (
	"github.com/shopspring/decimal"

	"porte-calc/internal/config"
	"porte-calc/internal/errors"
)

// Band is one pricing band; LimitKM is its inclusive outer boundary.
type Band struct {
	LimitKM decimal.Decimal `json:"limit_km"`
	Price   decimal.Decimal `json:"price"`
}

// Schedule is an ordered set of bands, inner to outer. Beyond the last
// band the last price applies plus ExtraPerKM for every km past
// ExtraFromKM. The published tariff card counts extra kilometers from
// the second band boundary, not the last, so ExtraFromKM is explicit
// rather than derived.
type Schedule struct {
	Bands       []Band          `json:"bands"`
	ExtraPerKM  decimal.Decimal `json:"extra_per_km"`
	ExtraFromKM decimal.Decimal `json:"extra_from_km"`
}

// FromConfig builds a Schedule from the configured zone settings.
func FromConfig(cfg config.ZonesConfig) (*Schedule, error) {
	s := &Schedule{
		ExtraPerKM:  decimal.NewFromFloat(cfg.ExtraPerKM),
		ExtraFromKM: decimal.NewFromFloat(cfg.ExtraFromKM),
	}
	for _, band := range cfg.Bands {
		s.Bands = append(s.Bands, Band{
			LimitKM: decimal.NewFromFloat(band.LimitKM),
			Price:   decimal.NewFromFloat(band.Price),
		})
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the schedule invariants
func (s *Schedule) Validate() error {
	if len(s.Bands) == 0 {
		return errors.Config("zone schedule has no bands")
	}
	prev := decimal.Zero
	for i, band := range s.Bands {
		if !band.LimitKM.GreaterThan(prev) {
			return errors.Newf(errors.TypeConfig, "zone band %d limit must exceed the previous band", i+1)
		}
		if band.Price.IsNegative() {
			return errors.Newf(errors.TypeConfig, "zone band %d price is negative", i+1)
		}
		prev = band.LimitKM
	}
	if s.ExtraPerKM.IsNegative() {
		return errors.Config("extra_per_km is negative")
	}
	return nil
}

// Price returns the porte for a route of the given distance: the first
// band whose limit covers the distance, or past the last band the last
// band's price plus the per-km surcharge, rounded to two places.
func (s *Schedule) Price(distanceKM decimal.Decimal) decimal.Decimal {
	for _, band := range s.Bands {
		if distanceKM.LessThanOrEqual(band.LimitKM) {
			return band.Price.Round(2)
		}
	}
	last := s.Bands[len(s.Bands)-1]
	extraKM := distanceKM.Sub(s.ExtraFromKM)
	return last.Price.Add(extraKM.Mul(s.ExtraPerKM)).Round(2)
}
