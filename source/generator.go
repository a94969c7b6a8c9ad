package source

import (
	"fmt"
	"math/bits"
	"math/rand/v2"
	"time"

	"github.com/arloliu/edgepart/internal/logger"
	"github.com/arloliu/edgepart/internal/metrics"
	"github.com/arloliu/edgepart/types"
)

// Generator draws random simple undirected graphs.
//
// A Generator owns its random source and is not safe for concurrent use.
type Generator struct {
	rng     types.Rand
	logger  types.Logger
	metrics types.GeneratorMetrics
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithSeed seeds a PCG source so that generation is reproducible.
func WithSeed(seed uint64) GeneratorOption {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewPCG(seed, seed))
	}
}

// WithRand sets the random source. It takes precedence over WithSeed when
// given later in the option list.
func WithRand(r types.Rand) GeneratorOption {
	return func(g *Generator) {
		if r != nil {
			g.rng = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l types.Logger) GeneratorOption {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithMetrics sets the generation metrics collector.
func WithMetrics(m types.GeneratorMetrics) GeneratorOption {
	return func(g *Generator) {
		if m != nil {
			g.metrics = m
		}
	}
}

// NewGenerator creates a generator.
//
// Without WithSeed or WithRand, a PCG source seeded from the runtime's
// entropy is used and every run differs.
//
// Example:
//
//	g := source.NewGenerator(source.WithSeed(42))
//	set, err := g.Generate(5, 4)
//	if err != nil { /* handle */ }
//	edges := set.Expand() // 8 ordered edges
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		logger:  logger.NewNop(),
		metrics: metrics.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return g
}

// Capacity returns the maximum number of undirected edges of a simple graph
// on vertexCount vertices, saturated at the largest int.
func Capacity(vertexCount int) int {
	if vertexCount < 2 {
		return 0
	}

	hi, lo := bits.Mul64(uint64(vertexCount), uint64(vertexCount-1))
	half := lo>>1 | hi<<63
	if hi>>1 != 0 || half > uint64(maxInt) {
		return maxInt
	}

	return int(half)
}

const maxInt = int(^uint(0) >> 1)

// Generate draws edgeCount distinct canonical pairs over [0, vertexCount).
//
// Vertex pairs are drawn uniformly; self-pairs and pairs already in the set
// are discarded and redrawn.
//
// Parameters:
//   - vertexCount: Size of the vertex universe
//   - edgeCount: Number of distinct undirected edges to produce
//
// Returns:
//   - *types.EdgeSet: Exactly edgeCount pairs in draw order
//   - error: ErrInvalidConfig for negative counts, ErrCapacityExceeded when
//     edgeCount exceeds vertexCount*(vertexCount-1)/2
func (g *Generator) Generate(vertexCount, edgeCount int) (*types.EdgeSet, error) {
	if vertexCount < 0 || edgeCount < 0 {
		return nil, fmt.Errorf("%w: vertex count %d and edge count %d must be non-negative",
			types.ErrInvalidConfig, vertexCount, edgeCount)
	}
	if capacity := Capacity(vertexCount); edgeCount > capacity {
		return nil, fmt.Errorf("%w: %d edges requested, %d vertices allow at most %d",
			types.ErrCapacityExceeded, edgeCount, vertexCount, capacity)
	}

	start := time.Now()
	set := types.NewEdgeSet(edgeCount)
	draws := 0
	for set.Len() < edgeCount {
		u := g.rng.IntN(vertexCount)
		v := g.rng.IntN(vertexCount)
		draws++
		set.Add(types.Edge{From: u, To: v})
	}

	elapsed := time.Since(start)
	g.metrics.RecordGeneration(set.Len(), draws, elapsed.Seconds())
	g.logger.Debug("generated edge set",
		"vertices", vertexCount,
		"pairs", set.Len(),
		"draws", draws,
		"duration", elapsed,
	)

	return set, nil
}
