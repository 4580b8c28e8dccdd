package storage

import (
	"context"

	"github.com/stu-smith/ctrnn/internal/model"
)

// Store defines persistence operations for genomes and simulation runs.
// Lookups return (zero, false, nil) when the record does not exist; list
// operations return newest-first, truncated to limit when limit > 0.
type Store interface {
	Init(ctx context.Context) error
	SaveGenome(ctx context.Context, genome model.GenomeRecord) error
	GetGenome(ctx context.Context, id string) (model.GenomeRecord, bool, error)
	ListGenomes(ctx context.Context, limit int) ([]model.GenomeRecord, error)
	SaveRun(ctx context.Context, run model.RunRecord) error
	GetRun(ctx context.Context, id string) (model.RunRecord, bool, error)
	ListRuns(ctx context.Context, limit int) ([]model.RunRecord, error)
}
