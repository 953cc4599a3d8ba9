package storage

import (
	"context"
	"sync"

	"porte-calc/internal/errors"
)

// Memory is an in-process store, newest runs last.
type Memory struct {
	mu   sync.RWMutex
	runs []*Run
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{}
}

// Save persists a run
func (m *Memory) Save(ctx context.Context, run *Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, run)
	return nil
}

// Get retrieves a run by ID
func (m *Memory) Get(ctx context.Context, id string) (*Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, run := range m.runs {
		if run.ID == id {
			return run, nil
		}
	}
	return nil, errors.Newf(errors.TypeSourceUnavailable, "run not found: %s", id)
}

// List returns runs newest first, up to limit
func (m *Memory) List(ctx context.Context, limit int) ([]*Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Run, 0, limit)
	for i := len(m.runs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.runs[i])
	}
	return out, nil
}

// Latest returns the most recent run for a source
func (m *Memory) Latest(ctx context.Context, source string) (*Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := len(m.runs) - 1; i >= 0; i-- {
		if m.runs[i].Source == source {
			return m.runs[i], nil
		}
	}
	return nil, errors.Newf(errors.TypeSourceUnavailable, "no runs for source: %s", source)
}

// Close is a no-op for the memory store
func (m *Memory) Close() error {
	return nil
}
