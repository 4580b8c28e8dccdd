package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/gosuri/uitable"

	"github.com/stu-smith/ctrnn/internal/storage"
	ctrnnapi "github.com/stu-smith/ctrnn/pkg/ctrnn"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "init":
		return runInit(ctx, args[1:])
	case "random":
		return runRandom(ctx, args[1:])
	case "mutate":
		return runMutate(ctx, args[1:])
	case "simulate":
		return runSimulate(ctx, args[1:])
	case "genomes":
		return runGenomes(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	case "show":
		return runShow(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func runInit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "ctrnn.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := ctrnnapi.New(ctrnnapi.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Init(ctx); err != nil {
		return err
	}

	fmt.Printf("initialized store=%s\n", *storeKind)
	return nil
}

func runRandom(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("random", flag.ContinueOnError)
	configPath := fs.String("config", "", "optional experiment config INI path")
	neurons := fs.Int("neurons", 0, "neuron count (overrides config)")
	seed := fs.Int64("seed", 0, "rng seed (0 derives from the clock)")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "ctrnn.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadOptionalConfig(*configPath)
	if err != nil {
		return err
	}
	req := ctrnnapi.CreateRequest{Neurons: cfg.Genome.Neurons, Seed: cfg.Genome.Seed}
	if *neurons > 0 {
		req.Neurons = *neurons
	}
	if *seed != 0 {
		req.Seed = *seed
	}

	client, err := openClient(ctx, *storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	summary, err := client.CreateRandom(ctx, req)
	if err != nil {
		return err
	}

	fmt.Printf("created genome id=%s neurons=%d genes=%d\n", summary.ID, summary.Neurons, summary.Genes)
	return nil
}

func runMutate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("mutate", flag.ContinueOnError)
	configPath := fs.String("config", "", "optional experiment config INI path")
	genomeID := fs.String("genome-id", "", "parent genome id")
	stdDev := fs.Float64("std-dev", 0, "gaussian mutation standard deviation (overrides config)")
	seed := fs.Int64("seed", 0, "rng seed (0 derives from the clock)")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "ctrnn.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *genomeID == "" {
		return usageError("mutate requires -genome-id")
	}

	cfg, err := loadOptionalConfig(*configPath)
	if err != nil {
		return err
	}
	req := ctrnnapi.MutateRequest{GenomeID: *genomeID, StdDev: cfg.Mutation.StdDev, Seed: *seed}
	if *stdDev > 0 {
		req.StdDev = *stdDev
	}

	client, err := openClient(ctx, *storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	summary, err := client.MutateGenome(ctx, req)
	if err != nil {
		return err
	}

	fmt.Printf("mutated genome id=%s parent=%s generation=%d\n", summary.ID, summary.ParentID, summary.Generation)
	return nil
}

func runSimulate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	configPath := fs.String("config", "", "optional experiment config INI path")
	genomeID := fs.String("genome-id", "", "genome id to express and simulate")
	steps := fs.Int("steps", 0, "update steps (overrides config)")
	inputs := fs.String("inputs", "", "space-separated per-neuron inputs (overrides config)")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "ctrnn.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *genomeID == "" {
		return usageError("simulate requires -genome-id")
	}

	cfg, err := loadOptionalConfig(*configPath)
	if err != nil {
		return err
	}
	req := ctrnnapi.SimulateRequest{
		GenomeID: *genomeID,
		Steps:    cfg.Simulation.Steps,
		Inputs:   cfg.Simulation.Inputs,
	}
	if *steps > 0 {
		req.Steps = *steps
	}
	if *inputs != "" {
		parsed, err := parseInputs(*inputs)
		if err != nil {
			return err
		}
		req.Inputs = parsed
	}

	client, err := openClient(ctx, *storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	summary, err := client.Simulate(ctx, req)
	if err != nil {
		return err
	}

	fmt.Printf("run id=%s genome=%s steps=%d\n", summary.RunID, summary.GenomeID, summary.Steps)
	fmt.Printf("final state: %s\n", formatStates(summary.FinalState))
	fmt.Printf("mean=%.6f stddev=%.6f min=%.6f max=%.6f\n",
		summary.StateMean, summary.StateStdDev, summary.StateMin, summary.StateMax)
	return nil
}

func runGenomes(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("genomes", flag.ContinueOnError)
	limit := fs.Int("limit", 20, "maximum rows (0 lists everything)")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "ctrnn.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := openClient(ctx, *storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	genomes, err := client.Genomes(ctx, *limit)
	if err != nil {
		return err
	}

	table := uitable.New()
	table.MaxColWidth = 40
	table.AddRow("ID", "NEURONS", "GENES", "GENERATION", "PARENT", "CREATED")
	for _, g := range genomes {
		table.AddRow(g.ID, g.Neurons, g.Genes, g.Generation, g.ParentID, g.CreatedAtUTC)
	}
	fmt.Println(table)
	return nil
}

func runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	limit := fs.Int("limit", 20, "maximum rows (0 lists everything)")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "ctrnn.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := openClient(ctx, *storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	runs, err := client.Runs(ctx, *limit)
	if err != nil {
		return err
	}

	table := uitable.New()
	table.MaxColWidth = 40
	table.AddRow("ID", "GENOME", "STEPS", "MEAN", "STDDEV", "CREATED")
	for _, r := range runs {
		table.AddRow(r.ID, r.GenomeID, r.Steps, fmt.Sprintf("%.6f", r.StateMean), fmt.Sprintf("%.6f", r.StateStdDev), r.CreatedAtUTC)
	}
	fmt.Println(table)
	return nil
}

func runShow(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	genomeID := fs.String("genome-id", "", "genome id")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "ctrnn.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *genomeID == "" {
		return usageError("show requires -genome-id")
	}

	client, err := openClient(ctx, *storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	record, err := client.ShowGenome(ctx, *genomeID)
	if err != nil {
		return err
	}

	fmt.Printf("id=%s neurons=%d generation=%d parent=%s created=%s\n",
		record.ID, record.NeuronCount, record.Generation, record.ParentID, record.CreatedAtUTC)
	fmt.Printf("genes: %s\n", formatStates(record.Genes))
	return nil
}

func openClient(ctx context.Context, storeKind, dbPath string) (*ctrnnapi.Client, error) {
	client, err := ctrnnapi.New(ctrnnapi.Options{StoreKind: storeKind, DBPath: dbPath})
	if err != nil {
		return nil, err
	}
	if err := client.Init(ctx); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func formatStates(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%.6f", v)
	}
	return strings.Join(parts, " ")
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: ctrnnctl <init|random|mutate|simulate|genomes|runs|show> [flags]", msg)
}
