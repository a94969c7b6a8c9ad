// Package main is the edgepart command.
//
// Usage:
//
//	edgepart generate -config job.yaml [-num-vertices N] [-num-edges M] [-seed S] ...
//	edgepart repartition [flags] INPUT NUM_WORKERS
//
// Both subcommands write one edge-list file per worker, 1.txt .. N.txt, into
// the output directory. Run a subcommand with -h for its flags.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arloliu/edgepart"
	"github.com/arloliu/edgepart/internal/kvutil"
	"github.com/arloliu/edgepart/internal/logging"
	"github.com/arloliu/edgepart/internal/metrics"
)

const usage = `usage: edgepart <command> [flags]

commands:
  generate     generate a random graph and partition it
  repartition  partition an existing edge list

Run "edgepart <command> -h" for command flags.
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// commonFlags are shared by both subcommands.
type commonFlags struct {
	runConfig   string
	outputDir   string
	compression string
	metricsFile string
	natsURL     string
	kvBucket    string
	verbose     bool
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.runConfig, "run-config", "", "YAML run configuration file")
	fs.StringVar(&c.outputDir, "output-dir", "", "directory for worker files (default \"data\")")
	fs.StringVar(&c.compression, "compression", "", "worker file compression: \"\" or \"zstd\"")
	fs.StringVar(&c.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile")
	fs.StringVar(&c.natsURL, "nats-url", "", "publish worker manifests to this NATS server")
	fs.StringVar(&c.kvBucket, "kv-bucket", "", "manifest KV bucket (default \"edgepart-manifests\")")
	fs.BoolVar(&c.verbose, "verbose", false, "enable debug logging")
}

// config merges the run configuration file with flag overrides.
func (c *commonFlags) config() (edgepart.Config, error) {
	cfg := edgepart.DefaultConfig()
	if c.runConfig != "" {
		loaded, err := edgepart.LoadConfig(c.runConfig)
		if err != nil {
			return edgepart.Config{}, err
		}
		cfg = loaded
	}

	if c.outputDir != "" {
		cfg.OutputDir = c.outputDir
	}
	if c.compression != "" {
		cfg.Compression = c.compression
	}
	if c.natsURL != "" {
		cfg.KV.URL = c.natsURL
	}
	if c.kvBucket != "" {
		cfg.KV.Bucket = c.kvBucket
	}

	return cfg, nil
}

// session holds the collaborators built from common flags.
type session struct {
	runner  *edgepart.Runner
	logger  *logging.SlogLogger
	reg     *prometheus.Registry
	cleanup func()
}

func (c *commonFlags) open(ctx context.Context, stderr io.Writer) (*session, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}

	level := slog.LevelInfo
	if c.verbose {
		level = slog.LevelDebug
	}
	logger := logging.NewText(stderr, level)

	reg := prometheus.NewRegistry()
	opts := []edgepart.Option{
		edgepart.WithLogger(logger),
		edgepart.WithMetrics(metrics.NewPrometheus(reg, "")),
	}

	cleanup := func() {}
	if cfg.KV.URL != "" {
		nc, kv, err := kvutil.Connect(ctx, cfg.KV.URL, cfg.KV.Bucket)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", edgepart.ErrPublishFailed, err)
		}
		cleanup = func() { _ = nc.Drain() }
		opts = append(opts, edgepart.WithManifestKV(kv))
	}

	runner, err := edgepart.NewRunner(&cfg, opts...)
	if err != nil {
		cleanup()
		return nil, err
	}

	return &session{runner: runner, logger: logger, reg: reg, cleanup: cleanup}, nil
}

func (s *session) close(metricsFile string) {
	s.cleanup()

	if metricsFile == "" {
		return
	}
	if err := prometheus.WriteToTextfile(metricsFile, s.reg); err != nil {
		s.logger.Warn("failed to write metrics textfile", "path", metricsFile, "error", err)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		_, _ = fmt.Fprint(stderr, usage)
		return 2
	}

	var err error
	switch args[0] {
	case "generate":
		err = runGenerate(ctx, args[1:], stdout, stderr)
	case "repartition":
		err = runRepartition(ctx, args[1:], stdout, stderr)
	case "-h", "-help", "--help", "help":
		_, _ = fmt.Fprint(stdout, usage)
		return 0
	default:
		_, _ = fmt.Fprintf(stderr, "edgepart: unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "edgepart: %v\n", err)
		return 1
	}

	return 0
}

func runGenerate(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var common commonFlags
	common.register(fs)
	configPath := fs.String("config", "", "job configuration document (required)")
	numVertices := fs.Int("num-vertices", 0, "vertex count (default from the job document, else 100)")
	numEdges := fs.Int("num-edges", 0, "undirected edge count (default 2 * vertices)")
	seed := fs.String("seed", "", "random seed for reproducible output")
	globalGraph := fs.String("global-graph", "", "also write every ordered edge to this file")
	updateConfig := fs.Bool("update-config", false, "write the resolved assignment back into the job document")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected arguments %v", edgepart.ErrInvalidConfig, fs.Args())
	}
	if *configPath == "" {
		return fmt.Errorf("%w: -config is required", edgepart.ErrInvalidConfig)
	}

	req := edgepart.GenerateRequest{
		ConfigPath:      *configPath,
		VertexCount:     *numVertices,
		EdgeCount:       *numEdges,
		GlobalGraphPath: *globalGraph,
		UpdateConfig:    *updateConfig,
	}
	if *seed != "" {
		s, err := strconv.ParseUint(*seed, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: invalid -seed %q: %w", edgepart.ErrInvalidConfig, *seed, err)
		}
		req.Seed = &s
	}

	sess, err := common.open(ctx, stderr)
	if err != nil {
		return err
	}
	defer sess.close(common.metricsFile)

	res, err := sess.runner.Generate(ctx, req)
	if err != nil {
		return err
	}

	printResult(stdout, res)

	return nil
}

func runRepartition(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("repartition", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		_, _ = fmt.Fprintln(fs.Output(), "usage: edgepart repartition [flags] INPUT NUM_WORKERS")
		fs.PrintDefaults()
	}

	var common commonFlags
	common.register(fs)
	graphSize := fs.Int("graph-size", 0, "vertex count (default 1 + largest vertex id)")
	configPath := fs.String("config", "", "job configuration document to receive the assignment")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("%w: expected INPUT and NUM_WORKERS", edgepart.ErrInvalidConfig)
	}

	workers, err := strconv.Atoi(fs.Arg(1))
	if err != nil {
		return fmt.Errorf("%w: invalid NUM_WORKERS %q", edgepart.ErrInvalidConfig, fs.Arg(1))
	}

	sess, err := common.open(ctx, stderr)
	if err != nil {
		return err
	}
	defer sess.close(common.metricsFile)

	res, err := sess.runner.Repartition(ctx, edgepart.RepartitionRequest{
		InputPath:   fs.Arg(0),
		WorkerCount: workers,
		VertexCount: *graphSize,
		ConfigPath:  *configPath,
	})
	if err != nil {
		return err
	}

	printResult(stdout, res)

	return nil
}

func printResult(w io.Writer, res *edgepart.Result) {
	counts := res.Assignment.Counts()
	for _, f := range res.Files {
		_, _ = fmt.Fprintf(w, "worker-%d\t%s\tvertices=%d\tedges=%d\tunique=%d\n",
			f.Worker, f.Path, counts[f.Worker], f.Edges, f.UniqueEdges)
	}
	if res.GlobalFile != nil {
		_, _ = fmt.Fprintf(w, "global\t%s\tedges=%d\n", res.GlobalFile.Path, res.GlobalFile.Edges)
	}
	if res.ManifestVersion > 0 {
		_, _ = fmt.Fprintf(w, "manifest version %d\n", res.ManifestVersion)
	}
}
