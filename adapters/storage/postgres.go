package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"porte-calc/internal/errors"
)

const runsDDL = `
CREATE TABLE IF NOT EXISTS porte_runs (
    id           TEXT PRIMARY KEY,
    source       TEXT NOT NULL,
    created_at   TIMESTAMPTZ NOT NULL,
    matched      INTEGER NOT NULL,
    unmatched    INTEGER NOT NULL,
    total_charge TEXT NOT NULL,
    rows_json    JSONB NOT NULL
)`

// Postgres persists runs in a porte_runs table
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects a pool and ensures the schema
func NewPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	if databaseURL == "" {
		return nil, errors.Config("database_url is not set")
	}
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "invalid database_url", err)
	}
	// Conservative pool sizing; runs are written once per computation.
	cfg.MaxConns = 5
	cfg.MinConns = 0
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.ConnConfig.RuntimeParams["application_name"] = "porte-calc"
	cfg.ConnConfig.RuntimeParams["timezone"] = "UTC"

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, errors.DestinationUnavailable("postgres", err)
	}
	if _, err := pool.Exec(ctx, runsDDL); err != nil {
		pool.Close()
		return nil, errors.DestinationUnavailable("postgres", err)
	}
	return &Postgres{pool: pool}, nil
}

// Save persists a run
func (p *Postgres) Save(ctx context.Context, run *Run) error {
	rows, err := json.Marshal(run.Rows)
	if err != nil {
		return errors.Internal("cannot encode run rows", err)
	}
	_, err = p.pool.Exec(ctx,
		`INSERT INTO porte_runs (id, source, created_at, matched, unmatched, total_charge, rows_json)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		run.ID, run.Source, run.CreatedAt, run.Matched, run.Unmatched, run.TotalCharge, rows)
	if err != nil {
		return errors.DestinationUnavailable("postgres", err)
	}
	return nil
}

// Get retrieves a run by ID
func (p *Postgres) Get(ctx context.Context, id string) (*Run, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT id, source, created_at, matched, unmatched, total_charge, rows_json
		 FROM porte_runs WHERE id = $1`, id)
	return scanRun(row)
}

// List returns runs newest first, up to limit
func (p *Postgres) List(ctx context.Context, limit int) ([]*Run, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, source, created_at, matched, unmatched, total_charge, rows_json
		 FROM porte_runs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, errors.SourceUnavailable("postgres", err)
	}
	defer rows.Close()

	var out []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

// Latest returns the most recent run for a source
func (p *Postgres) Latest(ctx context.Context, source string) (*Run, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT id, source, created_at, matched, unmatched, total_charge, rows_json
		 FROM porte_runs WHERE source = $1 ORDER BY created_at DESC LIMIT 1`, source)
	return scanRun(row)
}

// Close releases the pool
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var rowsJSON []byte
	err := row.Scan(&run.ID, &run.Source, &run.CreatedAt, &run.Matched, &run.Unmatched, &run.TotalCharge, &rowsJSON)
	if err != nil {
		return nil, errors.SourceUnavailable("postgres", err)
	}
	if err := json.Unmarshal(rowsJSON, &run.Rows); err != nil {
		return nil, errors.Internal("cannot decode run rows", err)
	}
	return &run, nil
}
