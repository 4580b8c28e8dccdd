package storage

import (
	"context"
	"testing"

	"github.com/stu-smith/ctrnn/internal/model"
)

func TestMemoryStoreGenomeRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	input := model.GenomeRecord{
		VersionedRecord: Stamp(),
		ID:              "g1",
		NeuronCount:     2,
		Genes:           []float64{0.1, 0.9},
	}
	if err := store.SaveGenome(ctx, input); err != nil {
		t.Fatalf("save genome: %v", err)
	}

	output, ok, err := store.GetGenome(ctx, "g1")
	if err != nil {
		t.Fatalf("get genome: %v", err)
	}
	if !ok {
		t.Fatal("expected persisted genome")
	}
	if output.NeuronCount != 2 || len(output.Genes) != 2 || output.Genes[1] != 0.9 {
		t.Fatalf("unexpected genome: %+v", output)
	}

	_, ok, err = store.GetGenome(ctx, "missing")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if ok {
		t.Fatal("expected missing genome")
	}
}

func TestMemoryStoreCopiesRecords(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	input := model.GenomeRecord{VersionedRecord: Stamp(), ID: "g1", Genes: []float64{0.5}}
	if err := store.SaveGenome(ctx, input); err != nil {
		t.Fatalf("save genome: %v", err)
	}
	input.Genes[0] = 0.99

	output, _, err := store.GetGenome(ctx, "g1")
	if err != nil {
		t.Fatalf("get genome: %v", err)
	}
	output.Genes[0] = 0.42

	again, _, err := store.GetGenome(ctx, "g1")
	if err != nil {
		t.Fatalf("get genome again: %v", err)
	}
	if again.Genes[0] != 0.5 {
		t.Fatalf("stored genes aliased caller storage: got %v, want 0.5", again.Genes[0])
	}
}

func TestMemoryStoreListNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

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

	all, err := store.ListGenomes(ctx, 0)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("unexpected full listing length: %d", len(all))
	}
}

func TestMemoryStoreRunRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	input := model.RunRecord{
		VersionedRecord: Stamp(),
		ID:              "r1",
		GenomeID:        "g1",
		Steps:           10,
		FinalState:      []float64{0.5, -0.5},
	}
	if err := store.SaveRun(ctx, input); err != nil {
		t.Fatalf("save run: %v", err)
	}
	if err := store.SaveRun(ctx, model.RunRecord{VersionedRecord: Stamp(), ID: "r2", GenomeID: "g1"}); err != nil {
		t.Fatalf("save run 2: %v", err)
	}

	output, ok, err := store.GetRun(ctx, "r1")
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if !ok {
		t.Fatal("expected persisted run")
	}
	if output.Steps != 10 || len(output.FinalState) != 2 {
		t.Fatalf("unexpected run: %+v", output)
	}

	runs, err := store.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "r2" {
		t.Fatalf("unexpected run listing: %+v", runs)
	}
}
