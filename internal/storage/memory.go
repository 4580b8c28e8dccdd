package storage

import (
	"context"
	"sync"

	"github.com/stu-smith/ctrnn/internal/model"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	genomes     map[string]model.GenomeRecord
	genomeOrder []string
	runs        map[string]model.RunRecord
	runOrder    []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.genomes = make(map[string]model.GenomeRecord)
	s.genomeOrder = nil
	s.runs = make(map[string]model.RunRecord)
	s.runOrder = nil
	return nil
}

func (s *MemoryStore) SaveGenome(_ context.Context, genome model.GenomeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.genomes[genome.ID]; !exists {
		s.genomeOrder = append(s.genomeOrder, genome.ID)
	}
	s.genomes[genome.ID] = copyGenome(genome)
	return nil
}

func (s *MemoryStore) GetGenome(_ context.Context, id string) (model.GenomeRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	genome, ok := s.genomes[id]
	if !ok {
		return model.GenomeRecord{}, false, nil
	}
	return copyGenome(genome), true, nil
}

func (s *MemoryStore) ListGenomes(_ context.Context, limit int) ([]model.GenomeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.GenomeRecord, 0, len(s.genomeOrder))
	for i := len(s.genomeOrder) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, copyGenome(s.genomes[s.genomeOrder[i]]))
	}
	return out, nil
}

func (s *MemoryStore) SaveRun(_ context.Context, run model.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.runs[run.ID]; !exists {
		s.runOrder = append(s.runOrder, run.ID)
	}
	s.runs[run.ID] = copyRun(run)
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, id string) (model.RunRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		return model.RunRecord{}, false, nil
	}
	return copyRun(run), true, nil
}

func (s *MemoryStore) ListRuns(_ context.Context, limit int) ([]model.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.RunRecord, 0, len(s.runOrder))
	for i := len(s.runOrder) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, copyRun(s.runs[s.runOrder[i]]))
	}
	return out, nil
}

func copyGenome(g model.GenomeRecord) model.GenomeRecord {
	g.Genes = append([]float64(nil), g.Genes...)
	return g
}

func copyRun(r model.RunRecord) model.RunRecord {
	r.Inputs = append([]float64(nil), r.Inputs...)
	r.FinalState = append([]float64(nil), r.FinalState...)
	return r
}
