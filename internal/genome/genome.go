package genome

import (
	"errors"
	"fmt"
	"math"

	"github.com/stu-smith/ctrnn/internal/nn"
)

var ErrInvalidGenome = errors.New("invalid genome")

// Source yields uniform doubles in [0, 1). A *rand.Rand satisfies it. Every
// operation that consumes randomness takes a Source explicitly; the package
// never reaches for a global generator.
type Source interface {
	Float64() float64
}

// Gene blocks, n genes each, addressed as block*n. The reserved block is
// allocated and mutated like any other but never expressed; compacting it
// out would change the genome length and the mutation statistics, so it
// stays. Weight genes follow the scalar blocks: row i at (weightBlock+i)*n.
const (
	timeConstantBlock = 0
	gainBlock         = 1
	biasBlock         = 2
	reservedBlock     = 3
	inputScalingBlock = 4
	weightBlock       = 5
)

// Length returns the gene count for a genome of n neurons: five scalar
// blocks of n genes followed by the n-by-n weight block.
func Length(n int) int {
	return weightBlock*n + n*n
}

// Genome is a flat vector of genes in [0, 1] encoding every parameter of one
// network. Instances are immutable: Mutate returns a fresh copy and never
// touches the receiver, so genomes are safe to share for reads.
type Genome struct {
	n     int
	genes []float64
}

// NewRandom draws every gene independently and uniformly from [0, 1).
func NewRandom(n int, src Source) (Genome, error) {
	if n <= 0 {
		return Genome{}, fmt.Errorf("%w: neuron count must be positive, got %d", ErrInvalidGenome, n)
	}
	if src == nil {
		return Genome{}, fmt.Errorf("%w: random source is required", ErrInvalidGenome)
	}

	genes := make([]float64, Length(n))
	for i := range genes {
		genes[i] = src.Float64()
	}
	return Genome{n: n, genes: genes}, nil
}

// FromGenes reconstructs a genome from persisted gene values, validating the
// length and the [0, 1] range. The slice is copied.
func FromGenes(n int, genes []float64) (Genome, error) {
	if n <= 0 {
		return Genome{}, fmt.Errorf("%w: neuron count must be positive, got %d", ErrInvalidGenome, n)
	}
	if len(genes) != Length(n) {
		return Genome{}, fmt.Errorf("%w: got %d genes, want %d for %d neurons", ErrInvalidGenome, len(genes), Length(n), n)
	}
	for i, g := range genes {
		if g < 0 || g > 1 {
			return Genome{}, fmt.Errorf("%w: gene %d = %v outside [0, 1]", ErrInvalidGenome, i, g)
		}
	}
	return Genome{n: n, genes: append([]float64(nil), genes...)}, nil
}

// NeuronCount returns the number of neurons this genome encodes.
func (g Genome) NeuronCount() int {
	return g.n
}

// Len returns the number of genes.
func (g Genome) Len() int {
	return len(g.genes)
}

// Gene returns the i-th gene value.
func (g Genome) Gene(i int) (float64, error) {
	if i < 0 || i >= len(g.genes) {
		return 0, fmt.Errorf("%w: gene index %d out of range (length %d)", ErrInvalidGenome, i, len(g.genes))
	}
	return g.genes[i], nil
}

// Genes returns a copy of the gene vector.
func (g Genome) Genes() []float64 {
	return append([]float64(nil), g.genes...)
}

// Mutate returns a copy with zero-mean gaussian noise of standard deviation
// stdDev added to every gene, clamped back into [0, 1]. Clamping biases
// repeated small mutations near a boundary toward that boundary; this is a
// property of the closed-range encoding, not an accident.
func (g Genome) Mutate(src Source, stdDev float64) (Genome, error) {
	if g.n == 0 {
		return Genome{}, fmt.Errorf("%w: zero-value genome", ErrInvalidGenome)
	}
	if src == nil {
		return Genome{}, fmt.Errorf("%w: random source is required", ErrInvalidGenome)
	}
	if stdDev < 0 {
		return Genome{}, fmt.Errorf("%w: standard deviation must be >= 0, got %v", ErrInvalidGenome, stdDev)
	}

	genes := make([]float64, len(g.genes))
	for i, v := range g.genes {
		genes[i] = clamp01(v + gaussian(src, stdDev))
	}
	return Genome{n: g.n, genes: genes}, nil
}

// Express decodes the genome into a freshly constructed network. Decoding is
// deterministic and pure: each scalar family rescales its gene block into
// the family's declared range, and weight row i comes from the i-th block of
// the weight region. The network constructor re-validates the decoded values
// as a defense-in-depth check.
func (g Genome) Express() (*nn.Network, error) {
	if g.n == 0 {
		return nil, fmt.Errorf("%w: zero-value genome", ErrInvalidGenome)
	}
	return nn.New(g.n, nn.Params{
		TimeConstant: g.decodeBlock(timeConstantBlock, nn.TimeConstantRange),
		Gain:         g.decodeBlock(gainBlock, nn.GainRange),
		Bias:         g.decodeBlock(biasBlock, nn.BiasRange),
		InputScaling: g.decodeBlock(inputScalingBlock, nn.InputScalingRange),
		Weight:       g.decodeWeights(),
	})
}

func (g Genome) decodeBlock(block int, r nn.Range) []float64 {
	out := make([]float64, g.n)
	offset := block * g.n
	for i := 0; i < g.n; i++ {
		out[i] = r.Rescale(g.genes[offset+i])
	}
	return out
}

func (g Genome) decodeWeights() [][]float64 {
	out := make([][]float64, g.n)
	for i := 0; i < g.n; i++ {
		row := make([]float64, g.n)
		offset := (weightBlock + i) * g.n
		for j := 0; j < g.n; j++ {
			row[j] = nn.WeightRange.Rescale(g.genes[offset+j])
		}
		out[i] = row
	}
	return out
}

// gaussian draws one zero-mean sample of the given standard deviation via
// the Box-Muller transform, keeping only the sine branch. The cosine branch
// is discarded since each call needs exactly one draw.
func gaussian(src Source, stdDev float64) float64 {
	u1 := src.Float64()
	for u1 == 0 {
		u1 = src.Float64()
	}
	u2 := src.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Sin(2*math.Pi*u2) * stdDev
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
