package source

import (
	"time"

	"github.com/arloliu/edgepart/internal/edgefile"
	"github.com/arloliu/edgepart/internal/logger"
	"github.com/arloliu/edgepart/internal/metrics"
	"github.com/arloliu/edgepart/types"
)

// LoadResult is the outcome of reading an edge-list file.
type LoadResult struct {
	// Adjacency holds the distinct edges in the direction they were read.
	Adjacency *types.Adjacency
	// VertexCount is 1 + the largest vertex id seen, or 0 for an empty graph.
	VertexCount int
	// EdgeLines counts every parsed edge line, duplicates included.
	EdgeLines int
	// Skipped counts malformed lines.
	Skipped int
}

// LoadOption configures LoadFile.
type LoadOption func(*loadOptions)

type loadOptions struct {
	logger  types.Logger
	metrics types.LoaderMetrics
}

// WithLoadLogger sets the logger receiving skipped-line diagnostics.
func WithLoadLogger(l types.Logger) LoadOption {
	return func(o *loadOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithLoadMetrics sets the loader metrics collector.
func WithLoadMetrics(m types.LoaderMetrics) LoadOption {
	return func(o *loadOptions) {
		if m != nil {
			o.metrics = m
		}
	}
}

// LoadFile reads an edge-list file into a directed adjacency mapping.
//
// Each valid line "<u> <v> [ignored...]" adds u -> v only; mirroring is left
// to the partitioner. Blank lines and lines starting with "#" are passed over.
// Malformed lines are skipped and counted, never fatal. Files ending in
// ".zst" are decompressed.
//
// Parameters:
//   - path: Edge-list file
//   - opts: Optional logger and metrics
//
// Returns:
//   - *LoadResult: Adjacency, inferred vertex count and line counters
//   - error: ErrInputNotFound if path does not exist, ErrIO on read failure
func LoadFile(path string, opts ...LoadOption) (*LoadResult, error) {
	o := loadOptions{logger: logger.NewNop(), metrics: metrics.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	start := time.Now()
	sc, err := edgefile.Open(path, edgefile.WithLogger(o.logger))
	if err != nil {
		return nil, err
	}
	defer sc.Close()

	res := &LoadResult{Adjacency: types.NewAdjacency()}
	maxID := -1
	for sc.Scan() {
		e := sc.Edge()
		res.Adjacency.Add(e.From, e.To)
		maxID = max(maxID, e.From, e.To)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	res.VertexCount = maxID + 1
	res.EdgeLines = sc.Parsed()
	res.Skipped = sc.Skipped()

	o.metrics.RecordLoad(res.EdgeLines, res.Skipped)
	if res.Skipped > 0 {
		o.logger.Warn("skipped malformed edge lines", "path", path, "skipped", res.Skipped)
	}
	o.logger.Info("loaded edge list",
		"path", path,
		"vertices", res.VertexCount,
		"edge_lines", res.EdgeLines,
		"distinct_edges", res.Adjacency.EdgeCount(),
		"duration", time.Since(start),
	)

	return res, nil
}

// InferVertexCount returns the number of distinct endpoint ids in records.
//
// It sizes the vertex universe from the graph_config.edges list of a
// configuration document when graph_config.num_vertices is absent.
func InferVertexCount(records []types.Edge) int {
	seen := make(map[int]struct{}, 2*len(records))
	for _, e := range records {
		seen[e.From] = struct{}{}
		seen[e.To] = struct{}{}
	}

	return len(seen)
}
