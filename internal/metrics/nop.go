// Package metrics provides MetricsCollector implementations.
package metrics

import "github.com/arloliu/edgepart/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. Components use it when no collector is configured.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
//
// Example:
//
//	runner, err := edgepart.NewRunner(&cfg, edgepart.WithMetrics(metrics.NewNop()))
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// GeneratorMetrics implementation

// RecordGeneration discards the generation metric.
func (n *NopMetrics) RecordGeneration(_ /* pairs */, _ /* draws */ int, _ /* duration */ float64) {
	// No-op
}

// LoaderMetrics implementation

// RecordLoad discards the load metric.
func (n *NopMetrics) RecordLoad(_ /* lines */, _ /* skipped */ int) {
	// No-op
}

// AssignmentMetrics implementation

// RecordOverrideIgnored discards the ignored override metric.
func (n *NopMetrics) RecordOverrideIgnored(_ /* reason */ string) {
	// No-op
}

// RecordWorkerLoad discards the worker load metric.
func (n *NopMetrics) RecordWorkerLoad(_ /* worker */ string, _ /* vertices */, _ /* edges */ int) {
	// No-op
}

// WriterMetrics implementation

// RecordFileWritten discards the file written metric.
func (n *NopMetrics) RecordFileWritten(_ /* edges */ int, _ /* bytes */ int64, _ /* duration */ float64) {
	// No-op
}

// RecordWriteFailure discards the write failure metric.
func (n *NopMetrics) RecordWriteFailure() {
	// No-op
}
