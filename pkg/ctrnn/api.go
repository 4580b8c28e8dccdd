// Package ctrnn is the public surface over the genome and network internals:
// create and mutate genomes, persist them, and simulate their expressed
// networks.
package ctrnn

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/gofrs/uuid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/stu-smith/ctrnn/internal/genome"
	"github.com/stu-smith/ctrnn/internal/model"
	"github.com/stu-smith/ctrnn/internal/storage"
)

const defaultDBPath = "ctrnn.db"

var ErrNotFound = errors.New("record not found")

type Options struct {
	StoreKind string
	DBPath    string
}

// Client owns a store and exposes the operations a driver program needs.
type Client struct {
	store storage.Store
}

type CreateRequest struct {
	Neurons int
	Seed    int64
}

type MutateRequest struct {
	GenomeID string
	StdDev   float64
	Seed     int64
}

type SimulateRequest struct {
	GenomeID string
	Steps    int
	// Inputs holds one constant drive value per neuron; empty means all-zero.
	Inputs []float64
}

type GenomeSummary struct {
	ID           string
	ParentID     string
	Generation   int
	Neurons      int
	Genes        int
	CreatedAtUTC string
}

type RunSummary struct {
	RunID       string
	GenomeID    string
	Steps       int
	FinalState  []float64
	StateMean   float64
	StateStdDev float64
	StateMin    float64
	StateMax    float64
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}

	return &Client{store: store}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

func (c *Client) Init(ctx context.Context) error {
	return c.store.Init(ctx)
}

// CreateRandom builds a uniformly random genome and persists it.
func (c *Client) CreateRandom(ctx context.Context, req CreateRequest) (GenomeSummary, error) {
	if req.Neurons <= 0 {
		return GenomeSummary{}, fmt.Errorf("neuron count must be positive, got %d", req.Neurons)
	}

	g, err := genome.NewRandom(req.Neurons, newRand(req.Seed))
	if err != nil {
		return GenomeSummary{}, err
	}

	record, err := c.saveGenome(ctx, g, "", 0)
	if err != nil {
		return GenomeSummary{}, err
	}
	return summarize(record), nil
}

// MutateGenome loads a parent genome, applies gaussian mutation, and persists
// the child with lineage pointing back at the parent.
func (c *Client) MutateGenome(ctx context.Context, req MutateRequest) (GenomeSummary, error) {
	record, ok, err := c.store.GetGenome(ctx, req.GenomeID)
	if err != nil {
		return GenomeSummary{}, err
	}
	if !ok {
		return GenomeSummary{}, fmt.Errorf("genome %s: %w", req.GenomeID, ErrNotFound)
	}

	parent, err := genome.FromGenes(record.NeuronCount, record.Genes)
	if err != nil {
		return GenomeSummary{}, fmt.Errorf("load genome %s: %w", req.GenomeID, err)
	}

	child, err := parent.Mutate(newRand(req.Seed), req.StdDev)
	if err != nil {
		return GenomeSummary{}, err
	}

	childRecord, err := c.saveGenome(ctx, child, record.ID, record.Generation+1)
	if err != nil {
		return GenomeSummary{}, err
	}
	return summarize(childRecord), nil
}

// Simulate expresses a stored genome and advances it the requested number of
// steps under constant per-neuron inputs, recording the outcome.
func (c *Client) Simulate(ctx context.Context, req SimulateRequest) (RunSummary, error) {
	if req.Steps <= 0 {
		return RunSummary{}, fmt.Errorf("step count must be positive, got %d", req.Steps)
	}

	record, ok, err := c.store.GetGenome(ctx, req.GenomeID)
	if err != nil {
		return RunSummary{}, err
	}
	if !ok {
		return RunSummary{}, fmt.Errorf("genome %s: %w", req.GenomeID, ErrNotFound)
	}

	g, err := genome.FromGenes(record.NeuronCount, record.Genes)
	if err != nil {
		return RunSummary{}, fmt.Errorf("load genome %s: %w", req.GenomeID, err)
	}
	net, err := g.Express()
	if err != nil {
		return RunSummary{}, fmt.Errorf("express genome %s: %w", req.GenomeID, err)
	}

	inputs := req.Inputs
	if len(inputs) == 0 {
		inputs = make([]float64, record.NeuronCount)
	}
	if len(inputs) != record.NeuronCount {
		return RunSummary{}, fmt.Errorf("got %d inputs, want %d", len(inputs), record.NeuronCount)
	}
	for i, v := range inputs {
		if err := net.SetInput(i, v); err != nil {
			return RunSummary{}, err
		}
	}

	for step := 0; step < req.Steps; step++ {
		net.Update()
	}

	final := net.States()
	runID, err := newID()
	if err != nil {
		return RunSummary{}, err
	}

	run := model.RunRecord{
		VersionedRecord: storage.Stamp(),
		ID:              runID,
		GenomeID:        record.ID,
		Steps:           req.Steps,
		Inputs:          append([]float64(nil), req.Inputs...),
		FinalState:      final,
		StateMean:       stat.Mean(final, nil),
		StateStdDev:     stat.PopStdDev(final, nil),
		CreatedAtUTC:    nowUTC(),
	}
	if err := c.store.SaveRun(ctx, run); err != nil {
		return RunSummary{}, err
	}

	return RunSummary{
		RunID:       run.ID,
		GenomeID:    run.GenomeID,
		Steps:       run.Steps,
		FinalState:  final,
		StateMean:   run.StateMean,
		StateStdDev: run.StateStdDev,
		StateMin:    floats.Min(final),
		StateMax:    floats.Max(final),
	}, nil
}

// ShowGenome returns the full stored record for one genome.
func (c *Client) ShowGenome(ctx context.Context, id string) (model.GenomeRecord, error) {
	record, ok, err := c.store.GetGenome(ctx, id)
	if err != nil {
		return model.GenomeRecord{}, err
	}
	if !ok {
		return model.GenomeRecord{}, fmt.Errorf("genome %s: %w", id, ErrNotFound)
	}
	return record, nil
}

// Genomes lists stored genomes, newest first.
func (c *Client) Genomes(ctx context.Context, limit int) ([]GenomeSummary, error) {
	records, err := c.store.ListGenomes(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]GenomeSummary, len(records))
	for i, record := range records {
		out[i] = summarize(record)
	}
	return out, nil
}

// Runs lists stored simulation runs, newest first.
func (c *Client) Runs(ctx context.Context, limit int) ([]model.RunRecord, error) {
	return c.store.ListRuns(ctx, limit)
}

func (c *Client) saveGenome(ctx context.Context, g genome.Genome, parentID string, generation int) (model.GenomeRecord, error) {
	id, err := newID()
	if err != nil {
		return model.GenomeRecord{}, err
	}

	record := model.GenomeRecord{
		VersionedRecord: storage.Stamp(),
		ID:              id,
		ParentID:        parentID,
		Generation:      generation,
		NeuronCount:     g.NeuronCount(),
		Genes:           g.Genes(),
		CreatedAtUTC:    nowUTC(),
	}
	if err := c.store.SaveGenome(ctx, record); err != nil {
		return model.GenomeRecord{}, err
	}
	return record, nil
}

func summarize(record model.GenomeRecord) GenomeSummary {
	return GenomeSummary{
		ID:           record.ID,
		ParentID:     record.ParentID,
		Generation:   record.Generation,
		Neurons:      record.NeuronCount,
		Genes:        len(record.Genes),
		CreatedAtUTC: record.CreatedAtUTC,
	}
}

// newRand builds the injected random source for one operation. Seed 0 means
// derive from the clock.
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func newID() (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
