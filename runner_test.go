package edgepart

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/edgepart/internal/configdoc"
	"github.com/arloliu/edgepart/internal/edgefile"
	"github.com/arloliu/edgepart/internal/logger"
	edgetest "github.com/arloliu/edgepart/testing"
	"github.com/arloliu/edgepart/test/testutil"
	"github.com/arloliu/edgepart/types"
)

func newTestRunner(t *testing.T, outputDir string, opts ...Option) *Runner {
	t.Helper()

	cfg := DefaultConfig()
	cfg.OutputDir = outputDir

	runner, err := NewRunner(&cfg, append([]Option{WithLogger(logger.NewTest(t))}, opts...)...)
	require.NoError(t, err)

	return runner
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func seedPtr(seed uint64) *uint64 {
	return &seed
}

func TestNewRunner(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		_, err := NewRunner(nil)
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := Config{Compression: "bzip2"}
		_, err := NewRunner(&cfg)
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("fills defaults", func(t *testing.T) {
		cfg := Config{}
		runner, err := NewRunner(&cfg)
		require.NoError(t, err)
		require.Equal(t, DefaultConfig(), runner.cfg)
		require.NotNil(t, runner.logger)
		require.NotNil(t, runner.metrics)
		require.NotNil(t, runner.hooks.OnError)
	})
}

func TestRunner_Generate_ParityScenario(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	job := writeFile(t, filepath.Join(dir, "job.yaml"), "worker_config:\n  num_workers: 2\n")
	runner := newTestRunner(t, out)

	res, err := runner.Generate(t.Context(), GenerateRequest{
		ConfigPath:  job,
		VertexCount: 5,
		EdgeCount:   4,
		Seed:        seedPtr(42),
	})
	require.NoError(t, err)

	require.Equal(t, 5, res.VertexCount)
	require.Equal(t, 2, res.WorkerCount)
	require.Equal(t, 4, res.Pairs)
	require.Equal(t, 8, res.TotalEdges())
	require.Len(t, res.Files, 2)

	files := testutil.ReadWorkerFiles(t, out, 2, CompressionNone)
	var all []Edge
	for w, edges := range files {
		require.Equal(t, res.Files[w].Edges, len(edges))
		for _, e := range edges {
			require.Equal(t, w, e.From%2, "edge %s in worker %d", e, w)
		}
		all = append(all, edges...)
	}

	var pairs []Edge
	for _, e := range all {
		if e.From < e.To {
			pairs = append(pairs, e)
		}
		require.Contains(t, all, e.Reverse())
	}
	require.Len(t, pairs, 4)
	testutil.AssertSimpleGraph(t, pairs, 5)
}

func TestRunner_Generate_Reproducible(t *testing.T) {
	dir := t.TempDir()
	job := writeFile(t, filepath.Join(dir, "job.yaml"), "worker_config:\n  num_workers: 3\n")

	run := func(out string) [][]Edge {
		runner := newTestRunner(t, out)
		_, err := runner.Generate(t.Context(), GenerateRequest{
			ConfigPath:  job,
			VertexCount: 20,
			EdgeCount:   30,
			Seed:        seedPtr(7),
		})
		require.NoError(t, err)

		return testutil.ReadWorkerFiles(t, out, 3, CompressionNone)
	}

	require.Equal(t, run(filepath.Join(dir, "a")), run(filepath.Join(dir, "b")))
}

func TestRunner_Generate_CapacityExceeded(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	job := writeFile(t, filepath.Join(dir, "job.yaml"), "worker_config:\n  num_workers: 2\n")

	var hookErr error
	runner := newTestRunner(t, out, WithHooks(&Hooks{
		OnError: func(_ context.Context, err error) error {
			hookErr = err
			return nil
		},
	}))

	_, err := runner.Generate(t.Context(), GenerateRequest{
		ConfigPath:      job,
		VertexCount:     3,
		EdgeCount:       4,
		GlobalGraphPath: filepath.Join(dir, "global.txt"),
	})
	require.ErrorIs(t, err, ErrCapacityExceeded)
	require.ErrorIs(t, hookErr, ErrCapacityExceeded)

	require.NoDirExists(t, out)
	require.NoFileExists(t, filepath.Join(dir, "global.txt"))
}

func TestRunner_Generate_MissingJobDocument(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	runner := newTestRunner(t, out)

	_, err := runner.Generate(t.Context(), GenerateRequest{ConfigPath: filepath.Join(dir, "absent.yaml")})
	require.ErrorIs(t, err, ErrInputNotFound)
	require.NoDirExists(t, out)
}

func TestRunner_Generate_InvalidWorkerCount(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	job := writeFile(t, filepath.Join(dir, "job.yaml"), "worker_config:\n  num_workers: 0\n")
	runner := newTestRunner(t, out)

	_, err := runner.Generate(t.Context(), GenerateRequest{ConfigPath: job, VertexCount: 4, EdgeCount: 2})
	require.ErrorIs(t, err, ErrInvalidConfig)
	require.NoDirExists(t, out)
}

func TestRunner_Generate_VertexCountResolution(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		req  int
		want int
	}{
		{"request wins", "graph_config:\n  num_vertices: 9\n", 4, 4},
		{"num_vertices", "graph_config:\n  num_vertices: 9\n", 0, 9},
		{"inferred from edges", "graph_config:\n  edges:\n    - {u: 0, v: 1}\n    - {u: 1, v: 7}\n", 0, 3},
		{"config default", "worker_config:\n  num_workers: 1\n", 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			job := writeFile(t, filepath.Join(dir, "job.yaml"), tt.doc)
			runner := newTestRunner(t, filepath.Join(dir, "out"))

			res, err := runner.Generate(t.Context(), GenerateRequest{
				ConfigPath:  job,
				VertexCount: tt.req,
				EdgeCount:   1,
				Seed:        seedPtr(1),
			})
			require.NoError(t, err)
			require.Equal(t, tt.want, res.VertexCount)
			require.Equal(t, tt.want, res.Assignment.VertexCount())
		})
	}
}

func TestRunner_Generate_DefaultEdgeCount(t *testing.T) {
	dir := t.TempDir()
	job := writeFile(t, filepath.Join(dir, "job.yaml"), "graph_config:\n  num_vertices: 10\n")
	runner := newTestRunner(t, filepath.Join(dir, "out"))

	res, err := runner.Generate(t.Context(), GenerateRequest{ConfigPath: job, Seed: seedPtr(3)})
	require.NoError(t, err)
	require.Equal(t, 20, res.Pairs)
	require.Equal(t, 40, res.TotalEdges())
}

func TestRunner_Generate_OverridesAndUpdateConfig(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	job := writeFile(t, filepath.Join(dir, "job.yaml"), `foo: bar
worker_config:
  num_workers: 2
  vertex_assignment:
    "0": worker-1
    "1": worker-7
    "2": bogus
graph_config:
  num_vertices: 4
`)
	rec := logger.NewRecorder()
	runner := newTestRunner(t, out, WithLogger(rec))

	res, err := runner.Generate(t.Context(), GenerateRequest{
		ConfigPath:   job,
		EdgeCount:    6,
		Seed:         seedPtr(11),
		UpdateConfig: true,
	})
	require.NoError(t, err)
	require.True(t, res.ConfigUpdated)
	require.Equal(t, 2, rec.Count("DEBUG", "ignoring vertex override"))

	require.Equal(t, 1, res.Assignment.Worker(0))
	require.Equal(t, 1, res.Assignment.Worker(1))
	require.Equal(t, 0, res.Assignment.Worker(2))
	require.Equal(t, 1, res.Assignment.Worker(3))

	// K4 with every vertex but 2 on worker 1.
	files := testutil.ReadWorkerFiles(t, out, 2, CompressionNone)
	require.Len(t, files[0], 3)
	require.Len(t, files[1], 9)

	doc, err := configdoc.Load(job)
	require.NoError(t, err)

	foo, err := doc.StringMap()
	require.NoError(t, err)
	require.Equal(t, "bar", foo["foo"])

	labels, err := doc.StringMap(configdoc.KeyWorkerConfig, configdoc.KeyVertexAssignment)
	require.NoError(t, err)
	require.Equal(t, map[string]string{
		"0": "worker-1",
		"1": "worker-1",
		"2": "worker-0",
		"3": "worker-1",
	}, labels)

	n, ok, err := doc.Int(configdoc.KeyGraphConfig, configdoc.KeyNumVertices)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 4, n)
}

func TestRunner_Generate_GlobalGraph(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	global := filepath.Join(dir, "global.txt")
	job := writeFile(t, filepath.Join(dir, "job.yaml"), "worker_config:\n  num_workers: 3\n")
	runner := newTestRunner(t, out)

	res, err := runner.Generate(t.Context(), GenerateRequest{
		ConfigPath:      job,
		VertexCount:     8,
		EdgeCount:       10,
		Seed:            seedPtr(5),
		GlobalGraphPath: global,
	})
	require.NoError(t, err)
	require.NotNil(t, res.GlobalFile)
	require.Equal(t, -1, res.GlobalFile.Worker)
	require.Equal(t, 20, res.GlobalFile.Edges)

	all, err := edgefile.ReadAll(global)
	require.NoError(t, err)

	var sharded []Edge
	for _, edges := range testutil.ReadWorkerFiles(t, out, 3, CompressionNone) {
		sharded = append(sharded, edges...)
	}
	testutil.AssertSameEdges(t, all, sharded)
}

func TestRunner_Repartition_Triangle(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	input := writeFile(t, filepath.Join(dir, "graph.txt"), "0 1\n1 2\n2 0\n")
	runner := newTestRunner(t, out)

	res, err := runner.Repartition(t.Context(), RepartitionRequest{InputPath: input, WorkerCount: 3})
	require.NoError(t, err)
	require.Equal(t, 3, res.VertexCount)
	require.Equal(t, 3, res.EdgeLines)
	require.Equal(t, 6, res.TotalEdges())

	files := testutil.ReadWorkerFiles(t, out, 3, CompressionNone)
	require.Equal(t, []Edge{{From: 0, To: 1}, {From: 0, To: 2}}, files[0])
	require.Equal(t, []Edge{{From: 1, To: 0}, {From: 1, To: 2}}, files[1])
	require.Equal(t, []Edge{{From: 2, To: 1}, {From: 2, To: 0}}, files[2])

	data, err := os.ReadFile(filepath.Join(out, "1.txt"))
	require.NoError(t, err)
	require.Equal(t, "0 1\n0 2\n", string(data))
}

func TestRunner_Repartition_SkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	input := writeFile(t, filepath.Join(dir, "graph.txt"), "# comment\n0 1\nnot an edge\n\n3\n1 3\n")
	rec := logger.NewRecorder()
	runner := newTestRunner(t, out, WithLogger(rec))

	res, err := runner.Repartition(t.Context(), RepartitionRequest{InputPath: input, WorkerCount: 2})
	require.NoError(t, err)
	require.Equal(t, 2, res.EdgeLines)
	require.Equal(t, 4, res.VertexCount)
	require.Positive(t, res.Skipped)
	require.Equal(t, 1, rec.Count("WARN", "skipped malformed edge lines"))

	files := testutil.ReadWorkerFiles(t, out, 2, CompressionNone)
	require.Equal(t, []Edge{{From: 0, To: 1}}, files[0])
	require.Equal(t, []Edge{{From: 1, To: 0}, {From: 1, To: 3}, {From: 3, To: 1}}, files[1])
}

func TestRunner_Repartition_MissingInput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	runner := newTestRunner(t, out)

	_, err := runner.Repartition(t.Context(), RepartitionRequest{
		InputPath:   filepath.Join(dir, "absent.txt"),
		WorkerCount: 2,
	})
	require.ErrorIs(t, err, ErrInputNotFound)
	require.NoDirExists(t, out)
}

func TestRunner_Repartition_InvalidRequest(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, filepath.Join(dir, "graph.txt"), "0 1\n")
	runner := newTestRunner(t, filepath.Join(dir, "out"))

	_, err := runner.Repartition(t.Context(), RepartitionRequest{InputPath: input, WorkerCount: 0})
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = runner.Repartition(t.Context(), RepartitionRequest{InputPath: input, WorkerCount: 2, VertexCount: -1})
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = runner.Repartition(t.Context(), RepartitionRequest{WorkerCount: 2})
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestRunner_Repartition_ExplicitVertexCount(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	input := writeFile(t, filepath.Join(dir, "graph.txt"), "0 1\n")
	job := writeFile(t, filepath.Join(dir, "job.yaml"), "foo: bar\n")
	runner := newTestRunner(t, out)

	res, err := runner.Repartition(t.Context(), RepartitionRequest{
		InputPath:   input,
		WorkerCount: 2,
		VertexCount: 6,
		ConfigPath:  job,
	})
	require.NoError(t, err)
	require.Equal(t, 6, res.VertexCount)
	require.True(t, res.ConfigUpdated)
	require.Equal(t, []int{3, 3}, res.Assignment.Counts())

	doc, err := configdoc.Load(job)
	require.NoError(t, err)
	labels, err := doc.StringMap(configdoc.KeyWorkerConfig, configdoc.KeyVertexAssignment)
	require.NoError(t, err)
	require.Len(t, labels, 6)
	require.Equal(t, "worker-1", labels["5"])
}

func TestRunner_Repartition_MissingConfigTarget(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, filepath.Join(dir, "graph.txt"), "0 1\n")
	rec := logger.NewRecorder()
	runner := newTestRunner(t, filepath.Join(dir, "out"), WithLogger(rec))

	res, err := runner.Repartition(t.Context(), RepartitionRequest{
		InputPath:   input,
		WorkerCount: 2,
		ConfigPath:  filepath.Join(dir, "absent.yaml"),
	})
	require.NoError(t, err)
	require.False(t, res.ConfigUpdated)
	require.Equal(t, 1, rec.Count("WARN", "configuration document not found, skipping assignment publish"))
	require.NoFileExists(t, filepath.Join(dir, "absent.yaml"))
}

func TestRunner_Repartition_Zstd(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	input := writeFile(t, filepath.Join(dir, "graph.txt"), "0 1\n1 2\n")

	cfg := DefaultConfig()
	cfg.OutputDir = out
	cfg.Compression = CompressionZstd
	runner, err := NewRunner(&cfg)
	require.NoError(t, err)

	res, err := runner.Repartition(t.Context(), RepartitionRequest{InputPath: input, WorkerCount: 2})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(out, "1.txt.zst"), res.Files[0].Path)
	require.NoFileExists(t, filepath.Join(out, "1.txt"))

	files := testutil.ReadWorkerFiles(t, out, 2, CompressionZstd)
	require.Equal(t, []Edge{{From: 0, To: 1}, {From: 2, To: 1}}, files[0])
	require.Equal(t, []Edge{{From: 1, To: 0}, {From: 1, To: 2}}, files[1])
}

func TestRunner_Hooks(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, filepath.Join(dir, "graph.txt"), "0 1\n1 2\n")

	var written []FileStat
	runner := newTestRunner(t, filepath.Join(dir, "out"), WithHooks(&Hooks{
		OnFileWritten: func(_ context.Context, stat FileStat) error {
			written = append(written, stat)
			return errors.New("hook failure is only logged")
		},
	}))

	res, err := runner.Repartition(t.Context(), RepartitionRequest{InputPath: input, WorkerCount: 3})
	require.NoError(t, err)
	require.Equal(t, res.Files, written)
	for w, stat := range written {
		require.Equal(t, w, stat.Worker)
	}
}

func TestRunner_ManifestKV(t *testing.T) {
	_, nc := edgetest.StartEmbeddedNATS(t)
	kv := edgetest.CreateJetStreamKV(t, nc, "edgepart-manifests")

	dir := t.TempDir()
	input := writeFile(t, filepath.Join(dir, "graph.txt"), "0 1\n1 2\n2 3\n")

	var published []WorkerManifest
	runner := newTestRunner(t, filepath.Join(dir, "out"),
		WithManifestKV(kv),
		WithHooks(&Hooks{
			OnManifestsPublished: func(_ context.Context, _ int64, manifests []WorkerManifest) error {
				published = manifests
				return nil
			},
		}),
	)

	res, err := runner.Repartition(t.Context(), RepartitionRequest{InputPath: input, WorkerCount: 3})
	require.NoError(t, err)
	require.Equal(t, int64(1), res.ManifestVersion)
	require.Len(t, published, 3)
	for w, m := range published {
		require.Equal(t, int64(1), m.Version)
		require.Equal(t, types.WorkerLabel(w), m.Worker)
		require.Equal(t, res.Files[w], m.File)
	}

	for w := range 3 {
		_, err := kv.Get(t.Context(), "manifest."+types.WorkerLabel(w))
		require.NoError(t, err)
	}

	// A second run with fewer workers bumps the version and drops stale keys.
	res, err = runner.Repartition(t.Context(), RepartitionRequest{InputPath: input, WorkerCount: 2})
	require.NoError(t, err)
	require.Equal(t, int64(2), res.ManifestVersion)

	_, err = kv.Get(t.Context(), "manifest.worker-2")
	require.Error(t, err)
}
