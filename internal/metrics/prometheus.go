package metrics

import (
	"sync"

	"github.com/arloliu/edgepart/types"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
//
// Collectors are created and registered lazily on first use, so constructing
// one that is never exercised leaves the registry untouched.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	genPairs        prometheus.Counter
	genDraws        prometheus.Counter
	genDuration     prometheus.Histogram
	loadLines       prometheus.Counter
	loadSkipped     prometheus.Counter
	overrideIgnored *prometheus.CounterVec
	workerVertices  *prometheus.GaugeVec
	workerEdges     *prometheus.GaugeVec
	filesWritten    prometheus.Counter
	edgesWritten    prometheus.Counter
	bytesWritten    prometheus.Counter
	writeDuration   prometheus.Histogram
	writeFailures   prometheus.Counter
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer interface (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Prometheus metrics namespace (defaults to "edgepart" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "edgepart"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.genPairs = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "generator",
			Name:      "pairs_total",
			Help:      "Unique undirected pairs generated.",
		})
		p.genDraws = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "generator",
			Name:      "draws_total",
			Help:      "Vertex-pair draws, including rejected self-pairs and duplicates.",
		})
		p.genDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "generator",
			Name:      "duration_seconds",
			Help:      "Time spent generating an edge set.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10), // 1ms .. ~4.4m
		})

		p.loadLines = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "loader",
			Name:      "edge_lines_total",
			Help:      "Edge-list lines parsed successfully.",
		})
		p.loadSkipped = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "loader",
			Name:      "skipped_lines_total",
			Help:      "Malformed edge-list lines skipped.",
		})

		p.overrideIgnored = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "assignment",
			Name:      "overrides_ignored_total",
			Help:      "Vertex overrides that fell back to modulo assignment, by reason.",
		}, []string{"reason"})
		p.workerVertices = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "assignment",
			Name:      "worker_vertices",
			Help:      "Vertices owned by each worker in the last run.",
		}, []string{"worker"})
		p.workerEdges = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "assignment",
			Name:      "worker_edges",
			Help:      "Ordered edges owned by each worker in the last run.",
		}, []string{"worker"})

		p.filesWritten = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "writer",
			Name:      "files_total",
			Help:      "Edge files written.",
		})
		p.edgesWritten = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "writer",
			Name:      "edges_total",
			Help:      "Ordered edges written across all files.",
		})
		p.bytesWritten = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "writer",
			Name:      "bytes_total",
			Help:      "Uncompressed edge-list bytes written.",
		})
		p.writeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "writer",
			Name:      "duration_seconds",
			Help:      "Time spent writing one edge file.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		})
		p.writeFailures = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "writer",
			Name:      "failures_total",
			Help:      "Edge file writes that failed.",
		})

		p.reg.MustRegister(
			p.genPairs, p.genDraws, p.genDuration,
			p.loadLines, p.loadSkipped,
			p.overrideIgnored, p.workerVertices, p.workerEdges,
			p.filesWritten, p.edgesWritten, p.bytesWritten, p.writeDuration, p.writeFailures,
		)
	})
}

// RecordGeneration records a completed generation.
func (p *PrometheusCollector) RecordGeneration(pairs, draws int, duration float64) {
	p.ensureRegistered()
	p.genPairs.Add(float64(pairs))
	p.genDraws.Add(float64(draws))
	p.genDuration.Observe(duration)
}

// RecordLoad records a completed edge-list load.
func (p *PrometheusCollector) RecordLoad(lines, skipped int) {
	p.ensureRegistered()
	p.loadLines.Add(float64(lines))
	p.loadSkipped.Add(float64(skipped))
}

// RecordOverrideIgnored increments the ignored override counter for reason.
func (p *PrometheusCollector) RecordOverrideIgnored(reason string) {
	p.ensureRegistered()
	p.overrideIgnored.WithLabelValues(reason).Inc()
}

// RecordWorkerLoad sets the per-worker vertex and edge gauges.
func (p *PrometheusCollector) RecordWorkerLoad(worker string, vertices, edges int) {
	p.ensureRegistered()
	p.workerVertices.WithLabelValues(worker).Set(float64(vertices))
	p.workerEdges.WithLabelValues(worker).Set(float64(edges))
}

// RecordFileWritten records a written edge file.
func (p *PrometheusCollector) RecordFileWritten(edges int, bytes int64, duration float64) {
	p.ensureRegistered()
	p.filesWritten.Inc()
	p.edgesWritten.Add(float64(edges))
	p.bytesWritten.Add(float64(bytes))
	p.writeDuration.Observe(duration)
}

// RecordWriteFailure increments the write failure counter.
func (p *PrometheusCollector) RecordWriteFailure() {
	p.ensureRegistered()
	p.writeFailures.Inc()
}
