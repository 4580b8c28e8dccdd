//go:build sqlite

package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stu-smith/ctrnn/internal/model"
)

func TestSQLiteStoreGenomeAndRunRoundTrip(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "ctrnn.db")

	store := NewSQLiteStore(dbPath)
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	}()

	genome := model.GenomeRecord{
		VersionedRecord: Stamp(),
		ID:              "g1",
		NeuronCount:     2,
		Genes:           []float64{0.25, 0.75},
	}
	if err := store.SaveGenome(ctx, genome); err != nil {
		t.Fatalf("save genome: %v", err)
	}

	got, ok, err := store.GetGenome(ctx, "g1")
	if err != nil {
		t.Fatalf("get genome: %v", err)
	}
	if !ok {
		t.Fatal("expected persisted genome")
	}
	if got.NeuronCount != 2 || len(got.Genes) != 2 || got.Genes[0] != 0.25 {
		t.Fatalf("unexpected genome: %+v", got)
	}

	run := model.RunRecord{
		VersionedRecord: Stamp(),
		ID:              "r1",
		GenomeID:        "g1",
		Steps:           25,
		FinalState:      []float64{1.5, -1.5},
	}
	if err := store.SaveRun(ctx, run); err != nil {
		t.Fatalf("save run: %v", err)
	}

	gotRun, ok, err := store.GetRun(ctx, "r1")
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if !ok {
		t.Fatal("expected persisted run")
	}
	if gotRun.Steps != 25 || gotRun.GenomeID != "g1" {
		t.Fatalf("unexpected run: %+v", gotRun)
	}
}

func TestSQLiteStoreListNewestFirst(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "ctrnn.db")

	store := NewSQLiteStore(dbPath)
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer store.Close()

	for _, id := range []string{"g1", "g2", "g3"} {
		if err := store.SaveGenome(ctx, model.GenomeRecord{VersionedRecord: Stamp(), ID: id}); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	out, err := store.ListGenomes(ctx, 2)
	if err != nil {
		t.Fatalf("list genomes: %v", err)
	}
	if len(out) != 2 || out[0].ID != "g3" || out[1].ID != "g2" {
		t.Fatalf("unexpected listing: %+v", out)
	}
}

func TestSQLiteStoreMissingLookups(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "ctrnn.db")

	store := NewSQLiteStore(dbPath)
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer store.Close()

	if _, ok, err := store.GetGenome(ctx, "missing"); err != nil || ok {
		t.Fatalf("missing genome: ok=%v err=%v", ok, err)
	}
	if _, ok, err := store.GetRun(ctx, "missing"); err != nil || ok {
		t.Fatalf("missing run: ok=%v err=%v", ok, err)
	}
}
