// Package storage persists run history so reports can be re-read or
// re-uploaded without recomputation. Backends: memory, postgres.
package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"porte-calc/core/output"
	"porte-calc/core/types"
	"porte-calc/internal/errors"
)

// Run is one persisted computation run
type Run struct {
	// ID uniquely identifies the run
	ID string `json:"id"`

	// Source is the route source descriptor
	Source string `json:"source"`

	// CreatedAt is when the run completed
	CreatedAt time.Time `json:"created_at"`

	// Matched and Unmatched are the summary tallies
	Matched   int `json:"matched"`
	Unmatched int `json:"unmatched"`

	// TotalCharge is the summary total, two places
	TotalCharge string `json:"total_charge"`

	// Rows holds the persisted row shape of the report
	Rows [][]string `json:"rows"`
}

// NewRun snapshots a report for persistence
func NewRun(source string, rep *types.Report) *Run {
	return &Run{
		ID:          uuid.NewString(),
		Source:      source,
		CreatedAt:   time.Now().UTC(),
		Matched:     rep.Summary.Matched,
		Unmatched:   rep.Summary.Unmatched,
		TotalCharge: rep.Summary.TotalCharge.StringFixed(2),
		Rows:        output.ReportRows(rep),
	}
}

// Store is the run history interface
type Store interface {
	// Save persists a run
	Save(ctx context.Context, run *Run) error

	// Get retrieves a run by ID
	Get(ctx context.Context, id string) (*Run, error)

	// List returns runs newest first, up to limit
	List(ctx context.Context, limit int) ([]*Run, error)

	// Latest returns the most recent run for a source
	Latest(ctx context.Context, source string) (*Run, error)

	// Close releases the backend
	Close() error
}

// New creates a store for the configured backend
func New(ctx context.Context, backend, databaseURL string) (Store, error) {
	switch backend {
	case "", "memory":
		return NewMemory(), nil
	case "postgres":
		return NewPostgres(ctx, databaseURL)
	default:
		return nil, errors.Newf(errors.TypeConfig, "unknown storage backend: %s", backend)
	}
}
