package storage

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"porte-calc/core/types"
)

func sampleRun(source string) *Run {
	rep := &types.Report{
		Summary: types.Summary{Matched: 1, TotalCharge: decimal.RequireFromString("25.00")},
	}
	return NewRun(source, rep)
}

func TestMemorySaveAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	run := sampleRun("routes.csv")
	if err := store.Save(ctx, run); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := store.Get(ctx, run.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.TotalCharge != "25.00" {
		t.Fatalf("unexpected run: %+v", got)
	}
}

func TestMemoryGetMissing(t *testing.T) {
	if _, err := NewMemory().Get(context.Background(), "nope"); err == nil {
		t.Fatal("expected error for unknown run")
	}
}

func TestMemoryListNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	first := sampleRun("a.csv")
	second := sampleRun("b.csv")
	store.Save(ctx, first)
	store.Save(ctx, second)

	runs, err := store.List(ctx, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != second.ID {
		t.Fatal("expected newest run first")
	}

	limited, _ := store.List(ctx, 1)
	if len(limited) != 1 {
		t.Fatalf("limit not honored: %d", len(limited))
	}
}

func TestMemoryLatestBySource(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	store.Save(ctx, sampleRun("a.csv"))
	want := sampleRun("a.csv")
	store.Save(ctx, want)
	store.Save(ctx, sampleRun("b.csv"))

	got, err := store.Latest(ctx, "a.csv")
	if err != nil {
		t.Fatalf("latest failed: %v", err)
	}
	if got.ID != want.ID {
		t.Fatal("expected most recent run for the source")
	}
}

func TestNewRunSnapshotsSummary(t *testing.T) {
	run := sampleRun("routes.csv")
	if run.ID == "" || run.CreatedAt.IsZero() {
		t.Fatalf("run not initialized: %+v", run)
	}
	if run.Matched != 1 {
		t.Fatalf("summary not copied: %+v", run)
	}
}
