package edgepart

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/arloliu/edgepart/internal/assignment"
	"github.com/arloliu/edgepart/internal/configdoc"
	"github.com/arloliu/edgepart/internal/edgefile"
	"github.com/arloliu/edgepart/internal/hooks"
	"github.com/arloliu/edgepart/internal/logger"
	"github.com/arloliu/edgepart/internal/metrics"
	"github.com/arloliu/edgepart/internal/natsutil"
	"github.com/arloliu/edgepart/source"
	"github.com/arloliu/edgepart/strategy"
	"github.com/arloliu/edgepart/types"
)

// Runner prepares per-worker edge files.
//
// A Runner is not safe for concurrent use; each run is synchronous.
type Runner struct {
	cfg        Config
	logger     Logger
	metrics    MetricsCollector
	rng        Rand
	hooks      Hooks
	manifestKV jetstream.KeyValue
}

// GenerateRequest describes a generate run.
type GenerateRequest struct {
	// ConfigPath is the job configuration document. Required.
	ConfigPath string

	// VertexCount overrides the document's graph_config. 0 means unset.
	VertexCount int

	// EdgeCount is the number of undirected edges. 0 means
	// Config.EdgesPerVertex * VertexCount.
	EdgeCount int

	// Seed makes the run reproducible. nil uses the Runner's random source.
	Seed *uint64

	// GlobalGraphPath, if set, also receives every ordered edge.
	GlobalGraphPath string

	// UpdateConfig publishes the resolved assignment back into ConfigPath.
	UpdateConfig bool
}

// RepartitionRequest describes a repartition run.
type RepartitionRequest struct {
	// InputPath is the edge-list file to partition. Required.
	InputPath string

	// WorkerCount is the number of workers. Must be > 0.
	WorkerCount int

	// VertexCount overrides the inferred vertex universe. 0 means infer.
	VertexCount int

	// ConfigPath, if set, receives the assignment. A missing document is
	// skipped with a warning.
	ConfigPath string
}

// Result summarizes a completed run.
type Result struct {
	VertexCount int
	WorkerCount int

	// Pairs is the number of undirected pairs generated (generate only).
	Pairs int
	// EdgeLines and Skipped count input lines (repartition only).
	EdgeLines int
	Skipped   int

	Assignment *VertexAssignment
	// Files holds one stat per worker, in worker order.
	Files []FileStat
	// GlobalFile is set when a global graph file was written.
	GlobalFile *FileStat
	// Workloads is the contiguous chunk sizing, for reporting.
	Workloads []strategy.Range

	ConfigUpdated   bool
	ManifestVersion int64
}

// TotalEdges returns the number of ordered edges written to worker files.
func (r *Result) TotalEdges() int {
	total := 0
	for _, f := range r.Files {
		total += f.Edges
	}

	return total
}

// NewRunner creates a Runner.
//
// Parameters:
//   - cfg: Configuration; missing values are filled with defaults
//   - opts: Optional logger, metrics, random source, hooks and manifest bucket
//
// Returns:
//   - *Runner: The runner
//   - error: ErrInvalidConfig if cfg is nil or invalid
//
// Example:
//
//	cfg := edgepart.DefaultConfig()
//	runner, err := edgepart.NewRunner(&cfg)
//	if err != nil { /* handle */ }
//	res, err := runner.Repartition(ctx, edgepart.RepartitionRequest{
//	    InputPath:   "graph.txt",
//	    WorkerCount: 4,
//	})
func NewRunner(cfg *Config, opts ...Option) (*Runner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}

	SetDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := &runnerOptions{}
	for _, opt := range opts {
		opt(options)
	}

	metricsCollector := options.metrics
	if metricsCollector == nil {
		metricsCollector = metrics.NewNop()
	}

	loggerInstance := options.logger
	if loggerInstance == nil {
		loggerInstance = logger.NewNop()
	}

	cfg.ValidateWithWarnings(loggerInstance)

	return &Runner{
		cfg:        *cfg,
		logger:     loggerInstance,
		metrics:    metricsCollector,
		rng:        options.rng,
		hooks:      hooks.Fill(options.hooks),
		manifestKV: options.manifestKV,
	}, nil
}

// Generate synthesizes a random undirected graph and partitions it.
//
// Worker count and overrides come from the job document's worker_config.
// The vertex count comes from the request, then graph_config.num_vertices,
// then the number of distinct ids in graph_config.edges, then
// Config.DefaultVertexCount. Every check runs before the output directory
// is created.
//
// Parameters:
//   - ctx: Context for cancellation and the manifest publish
//   - req: Run parameters
//
// Returns:
//   - *Result: Summary of the written files
//   - error: ErrInputNotFound, ErrInvalidConfig, ErrCapacityExceeded, ErrIO or ErrPublishFailed
func (r *Runner) Generate(ctx context.Context, req GenerateRequest) (*Result, error) {
	res, err := r.generate(ctx, req)
	if err != nil {
		r.fail(ctx, err)
		return nil, err
	}

	return res, nil
}

func (r *Runner) generate(ctx context.Context, req GenerateRequest) (*Result, error) {
	if req.ConfigPath == "" {
		return nil, fmt.Errorf("%w: configuration document path is required", ErrInvalidConfig)
	}
	if req.VertexCount < 0 || req.EdgeCount < 0 {
		return nil, fmt.Errorf("%w: vertex count %d and edge count %d must be non-negative",
			ErrInvalidConfig, req.VertexCount, req.EdgeCount)
	}

	doc, err := configdoc.Load(req.ConfigPath)
	if err != nil {
		if errors.Is(err, types.ErrConfigTargetMissing) {
			return nil, fmt.Errorf("%w: configuration document %s: %w", ErrInputNotFound, req.ConfigPath, err)
		}

		return nil, err
	}

	workerCount, overrides, err := r.workerSettings(doc)
	if err != nil {
		return nil, err
	}

	vertexCount, err := r.vertexCount(doc, req.VertexCount)
	if err != nil {
		return nil, err
	}

	edgeCount := req.EdgeCount
	if edgeCount == 0 {
		edgeCount = r.cfg.EdgesPerVertex * vertexCount
	}

	asg, err := strategy.NewModulo(
		strategy.WithLabelOverrides(overrides),
		strategy.WithLogger(r.logger),
		strategy.WithMetrics(r.metrics),
	).Assign(vertexCount, workerCount)
	if err != nil {
		return nil, err
	}

	genOpts := []source.GeneratorOption{
		source.WithLogger(r.logger),
		source.WithMetrics(r.metrics),
	}
	if r.rng != nil {
		genOpts = append(genOpts, source.WithRand(r.rng))
	}
	if req.Seed != nil {
		genOpts = append(genOpts, source.WithSeed(*req.Seed))
	}

	r.logger.Info("generating graph", "vertices", vertexCount, "edges", edgeCount, "workers", workerCount)

	set, err := source.NewGenerator(genOpts...).Generate(vertexCount, edgeCount)
	if err != nil {
		return nil, err
	}

	edges := set.Expand()
	part := PartitionEdges(edges, asg)

	res := &Result{
		VertexCount: vertexCount,
		WorkerCount: workerCount,
		Pairs:       set.Len(),
		Assignment:  asg,
		Workloads:   strategy.Workloads(vertexCount, workerCount),
	}
	r.logAssignment(asg, res.Workloads)

	if res.Files, err = r.writeWorkerFiles(ctx, part); err != nil {
		return nil, err
	}

	if req.GlobalGraphPath != "" {
		stat, err := r.writeFile(ctx, req.GlobalGraphPath, -1, edges)
		if err != nil {
			return nil, err
		}
		res.GlobalFile = &stat
		r.logger.Info("global graph written", "path", req.GlobalGraphPath, "edges", stat.Edges)
	}

	if req.UpdateConfig {
		ok, err := assignment.NewPublisher(r.logger).PublishFile(req.ConfigPath, asg)
		if err != nil {
			return nil, err
		}
		res.ConfigUpdated = ok
	}

	if err := r.publishManifests(ctx, res); err != nil {
		return nil, err
	}

	r.recordWorkerLoads(res)

	return res, nil
}

// Repartition loads an edge list and partitions it by the modulo rule.
//
// Every edge read is written in both directions, each to the worker owning
// its source vertex. Overrides are never applied.
//
// Parameters:
//   - ctx: Context for cancellation and the manifest publish
//   - req: Run parameters
//
// Returns:
//   - *Result: Summary of the written files
//   - error: ErrInvalidConfig, ErrInputNotFound, ErrIO or ErrPublishFailed
func (r *Runner) Repartition(ctx context.Context, req RepartitionRequest) (*Result, error) {
	res, err := r.repartition(ctx, req)
	if err != nil {
		r.fail(ctx, err)
		return nil, err
	}

	return res, nil
}

func (r *Runner) repartition(ctx context.Context, req RepartitionRequest) (*Result, error) {
	if req.WorkerCount <= 0 {
		return nil, fmt.Errorf("%w: worker count must be positive, got %d", ErrInvalidConfig, req.WorkerCount)
	}
	if req.VertexCount < 0 {
		return nil, fmt.Errorf("%w: graph size must be non-negative, got %d", ErrInvalidConfig, req.VertexCount)
	}
	if req.InputPath == "" {
		return nil, fmt.Errorf("%w: input edge list path is required", ErrInvalidConfig)
	}

	r.logger.Info("loading graph", "path", req.InputPath)

	loaded, err := source.LoadFile(req.InputPath,
		source.WithLoadLogger(r.logger),
		source.WithLoadMetrics(r.metrics),
	)
	if err != nil {
		return nil, err
	}

	vertexCount := loaded.VertexCount
	if req.VertexCount > 0 {
		vertexCount = req.VertexCount
		r.logger.Info("using provided graph size", "vertices", vertexCount, "inferred", loaded.VertexCount)
	} else {
		r.logger.Info("inferred graph size", "vertices", vertexCount)
	}

	asg, err := strategy.NewModulo(
		strategy.WithLogger(r.logger),
		strategy.WithMetrics(r.metrics),
	).Assign(vertexCount, req.WorkerCount)
	if err != nil {
		return nil, err
	}

	part := PartitionAdjacency(loaded.Adjacency, asg)

	res := &Result{
		VertexCount: vertexCount,
		WorkerCount: req.WorkerCount,
		EdgeLines:   loaded.EdgeLines,
		Skipped:     loaded.Skipped,
		Assignment:  asg,
		Workloads:   strategy.Workloads(vertexCount, req.WorkerCount),
	}
	r.logAssignment(asg, res.Workloads)

	if res.Files, err = r.writeWorkerFiles(ctx, part); err != nil {
		return nil, err
	}

	if req.ConfigPath != "" {
		ok, err := assignment.NewPublisher(r.logger).PublishFile(req.ConfigPath, asg)
		if err != nil {
			return nil, err
		}
		res.ConfigUpdated = ok
	}

	if err := r.publishManifests(ctx, res); err != nil {
		return nil, err
	}

	r.recordWorkerLoads(res)

	return res, nil
}

// workerSettings reads worker_config from the job document.
func (r *Runner) workerSettings(doc *configdoc.Document) (int, map[string]string, error) {
	workerCount, ok, err := doc.Int(configdoc.KeyWorkerConfig, configdoc.KeyNumWorkers)
	if err != nil {
		return 0, nil, err
	}
	if !ok {
		workerCount = r.cfg.DefaultWorkerCount
	}
	if workerCount <= 0 {
		return 0, nil, fmt.Errorf("%w: worker_config.num_workers must be positive, got %d", ErrInvalidConfig, workerCount)
	}

	overrides, err := doc.StringMap(configdoc.KeyWorkerConfig, configdoc.KeyVertexAssignment)
	if err != nil {
		return 0, nil, err
	}

	return workerCount, overrides, nil
}

// vertexCount resolves the generate vertex count.
func (r *Runner) vertexCount(doc *configdoc.Document, requested int) (int, error) {
	if requested > 0 {
		return requested, nil
	}

	n, ok, err := doc.Int(configdoc.KeyGraphConfig, configdoc.KeyNumVertices)
	if err != nil {
		return 0, err
	}
	if ok {
		if n < 0 {
			return 0, fmt.Errorf("%w: graph_config.num_vertices must be non-negative, got %d", ErrInvalidConfig, n)
		}

		return n, nil
	}

	records, err := doc.EdgeRecords(configdoc.KeyGraphConfig, configdoc.KeyEdges)
	if err != nil {
		return 0, err
	}
	if len(records) > 0 {
		n := source.InferVertexCount(records)
		r.logger.Debug("inferred vertex count from graph_config.edges", "vertices", n, "records", len(records))

		return n, nil
	}

	return r.cfg.DefaultVertexCount, nil
}

func (r *Runner) writeWorkerFiles(ctx context.Context, part *Partition) ([]FileStat, error) {
	if err := os.MkdirAll(r.cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create output directory %s: %w", ErrIO, r.cfg.OutputDir, err)
	}

	stats := make([]FileStat, 0, part.WorkerCount())
	for w := range part.WorkerCount() {
		path := edgefile.WorkerFilePath(r.cfg.OutputDir, w, r.cfg.Compression)
		stat, err := r.writeFile(ctx, path, w, part.Bucket(w))
		if err != nil {
			return nil, err
		}
		stats = append(stats, stat)

		r.logger.Info("worker file written",
			"worker", types.WorkerLabel(w),
			"path", path,
			"edges", stat.Edges,
			"unique", stat.UniqueEdges,
		)
	}

	return stats, nil
}

func (r *Runner) writeFile(ctx context.Context, path string, worker int, edges []Edge) (FileStat, error) {
	if err := ctx.Err(); err != nil {
		return FileStat{}, err
	}

	start := time.Now()
	stat, err := edgefile.Write(path, edges)
	if err != nil {
		r.metrics.RecordWriteFailure()
		return FileStat{}, err
	}
	stat.Worker = worker
	r.metrics.RecordFileWritten(stat.Edges, stat.Bytes, time.Since(start).Seconds())

	if err := r.hooks.OnFileWritten(ctx, stat); err != nil {
		r.logger.Warn("file written hook failed", "path", path, "error", err)
	}

	return stat, nil
}

func (r *Runner) publishManifests(ctx context.Context, res *Result) error {
	if r.manifestKV == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.KV.OperationTimeout)
	defer cancel()

	manifests := assignment.BuildManifests(res.Assignment, res.Files)
	version, err := assignment.NewKVPublisher(r.manifestKV, r.cfg.KV.KeyPrefix, r.logger).Publish(ctx, manifests)
	if err != nil {
		if natsutil.IsConnectivityError(err) {
			r.logger.Error("NATS unreachable, manifests not published", "bucket", r.manifestKV.Bucket(), "error", err)
		}

		return err
	}
	res.ManifestVersion = version

	for i := range manifests {
		manifests[i].Version = version
	}
	if err := r.hooks.OnManifestsPublished(ctx, version, manifests); err != nil {
		r.logger.Warn("manifests published hook failed", "version", version, "error", err)
	}

	return nil
}

func (r *Runner) logAssignment(asg *VertexAssignment, workloads []strategy.Range) {
	for w, count := range asg.Counts() {
		r.logger.Info("vertex assignment",
			"worker", types.WorkerLabel(w),
			"vertices", count,
			"chunk", workloads[w].Len(),
		)
	}
}

func (r *Runner) recordWorkerLoads(res *Result) {
	counts := res.Assignment.Counts()
	for _, f := range res.Files {
		r.metrics.RecordWorkerLoad(types.WorkerLabel(f.Worker), counts[f.Worker], f.Edges)
	}

	r.logger.Info("run complete",
		"workers", res.WorkerCount,
		"vertices", res.VertexCount,
		"edges_written", res.TotalEdges(),
		"output_dir", r.cfg.OutputDir,
	)
}

func (r *Runner) fail(ctx context.Context, err error) {
	if hookErr := r.hooks.OnError(ctx, err); hookErr != nil {
		r.logger.Warn("error hook failed", "error", hookErr)
	}
}
