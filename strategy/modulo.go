package strategy

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/arloliu/edgepart/internal/logger"
	"github.com/arloliu/edgepart/internal/metrics"
	"github.com/arloliu/edgepart/types"
)

// Modulo assigns vertex v to worker v % workerCount, honoring valid overrides.
type Modulo struct {
	overrides map[int]string
	badKeys   []string
	logger    types.Logger
	metrics   types.AssignmentMetrics
}

var _ types.AssignmentStrategy = (*Modulo)(nil)

// ModuloOption configures a Modulo strategy.
type ModuloOption func(*Modulo)

// NewModulo creates a new modulo strategy.
//
// Parameters:
//   - opts: Optional configuration (WithOverrides, WithLogger, WithMetrics)
//
// Returns:
//   - *Modulo: Initialized modulo strategy
//
// Example:
//
//	s := strategy.NewModulo(
//	    strategy.WithOverrides(map[int]string{0: "worker-2"}),
//	)
//	asg, err := s.Assign(5, 3)
func NewModulo(opts ...ModuloOption) *Modulo {
	m := &Modulo{
		logger:  logger.NewNop(),
		metrics: metrics.NewNop(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// WithOverrides sets custom vertex to worker-label assignments.
//
// Parameters:
//   - overrides: Vertex id to label such as "worker-1"
//
// Returns:
//   - ModuloOption: Configuration option
func WithOverrides(overrides map[int]string) ModuloOption {
	return func(m *Modulo) {
		m.overrides = overrides
		m.badKeys = nil
	}
}

// WithLabelOverrides sets overrides keyed by vertex id text, as read from a
// configuration document. Keys that are not integers are ignored at Assign
// time with reason "malformed_vertex".
//
// Parameters:
//   - raw: Vertex id text to label such as "worker-1"
//
// Returns:
//   - ModuloOption: Configuration option
func WithLabelOverrides(raw map[string]string) ModuloOption {
	return func(m *Modulo) {
		m.overrides = make(map[int]string, len(raw))
		m.badKeys = nil
		for key, label := range raw {
			v, err := strconv.Atoi(strings.TrimSpace(key))
			if err != nil {
				m.badKeys = append(m.badKeys, key)
				continue
			}
			m.overrides[v] = label
		}
		slices.Sort(m.badKeys)
	}
}

// WithLogger sets the logger for ignored-override diagnostics.
func WithLogger(l types.Logger) ModuloOption {
	return func(m *Modulo) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithMetrics sets the collector counting ignored overrides.
func WithMetrics(c types.AssignmentMetrics) ModuloOption {
	return func(m *Modulo) {
		if c != nil {
			m.metrics = c
		}
	}
}

// Assign resolves the worker of every vertex in [0, vertexCount).
//
// The algorithm:
//  1. Fill every vertex with its fallback worker v % workerCount
//  2. Apply overrides in ascending vertex order, skipping invalid ones
//
// Parameters:
//   - vertexCount: Size of the vertex universe
//   - workerCount: Number of workers
//
// Returns:
//   - *types.VertexAssignment: Total vertex to worker mapping
//   - error: ErrNoWorkers for workerCount <= 0, ErrInvalidConfig for a negative vertexCount
func (m *Modulo) Assign(vertexCount, workerCount int) (*types.VertexAssignment, error) {
	if workerCount <= 0 {
		return nil, fmt.Errorf("%w: worker count %d", ErrNoWorkers, workerCount)
	}
	if vertexCount < 0 {
		return nil, fmt.Errorf("%w: negative vertex count %d", types.ErrInvalidConfig, vertexCount)
	}

	workers := make([]int, vertexCount)
	for v := range workers {
		workers[v] = v % workerCount
	}

	for _, key := range m.badKeys {
		m.logger.Debug("ignoring vertex override", "vertex", key, "label", "", "reason", ReasonMalformedVertex)
		m.metrics.RecordOverrideIgnored(ReasonMalformedVertex)
	}

	for _, v := range slices.Sorted(maps.Keys(m.overrides)) {
		label := m.overrides[v]
		if v < 0 || v >= vertexCount {
			m.ignore(ReasonVertexOutOfRange, v, label)
			continue
		}

		w, err := types.ParseWorkerLabel(label)
		if err != nil {
			m.ignore(ReasonMalformedLabel, v, label)
			continue
		}
		if w < 0 || w >= workerCount {
			m.ignore(ReasonWorkerOutOfRange, v, label)
			continue
		}

		workers[v] = w
	}

	return types.NewVertexAssignment(workers, workerCount)
}

func (m *Modulo) ignore(reason string, vertex int, label string) {
	m.logger.Debug("ignoring vertex override", "vertex", vertex, "label", label, "reason", reason)
	m.metrics.RecordOverrideIgnored(reason)
}
