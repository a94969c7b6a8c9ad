package types

// MetricsCollector defines methods for recording run metrics.
//
// A run is single-threaded, but implementations may be shared between runs
// in one process and should be safe for concurrent use.
//
// This interface composes smaller, domain-focused interfaces for better modularity.
type MetricsCollector interface {
	GeneratorMetrics
	LoaderMetrics
	AssignmentMetrics
	WriterMetrics
}

// GeneratorMetrics defines metrics for random edge generation.
type GeneratorMetrics interface {
	// RecordGeneration records a completed generation.
	//
	// Parameters:
	//   - pairs: Number of unique canonical pairs produced
	//   - draws: Number of vertex-pair draws, rejected ones included
	//   - duration: Time taken in seconds
	RecordGeneration(pairs, draws int, duration float64)
}

// LoaderMetrics defines metrics for edge-list loading.
type LoaderMetrics interface {
	// RecordLoad records a completed edge-list load.
	//
	// Parameters:
	//   - lines: Number of successfully parsed edge lines
	//   - skipped: Number of malformed lines skipped
	RecordLoad(lines, skipped int)
}

// AssignmentMetrics defines metrics for vertex assignment and partitioning.
type AssignmentMetrics interface {
	// RecordOverrideIgnored records an override that fell through to the fallback rule.
	//
	// Parameters:
	//   - reason: "malformed_label", "malformed_vertex", "worker_out_of_range" or "vertex_out_of_range"
	RecordOverrideIgnored(reason string)

	// RecordWorkerLoad sets the vertex and edge counts owned by a worker (gauge metrics).
	RecordWorkerLoad(worker string, vertices, edges int)
}

// WriterMetrics defines metrics for edge file output.
type WriterMetrics interface {
	// RecordFileWritten records a written edge file.
	//
	// Parameters:
	//   - edges: Number of ordered edges written
	//   - bytes: Uncompressed size in bytes
	//   - duration: Time taken in seconds
	RecordFileWritten(edges int, bytes int64, duration float64)

	// RecordWriteFailure records a failed file write.
	RecordWriteFailure()
}
