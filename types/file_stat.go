package types

// FileStat describes one edge-list file produced by a run.
type FileStat struct {
	// Worker is the zero-based owning worker, or -1 for the global graph file.
	Worker int `json:"worker"`

	// Path is the file location on disk.
	Path string `json:"path"`

	// Edges is the number of ordered edges written.
	Edges int `json:"edges"`

	// UniqueEdges is the number of distinct ordered edges written.
	UniqueEdges int `json:"uniqueEdges"`

	// Bytes is the size of the uncompressed edge-list text.
	Bytes int64 `json:"bytes"`

	// Digest is the xxh3 hash of the uncompressed edge-list text.
	Digest uint64 `json:"digest"`
}

// WorkerManifest is the per-worker record published to a key-value store
// after a run, so that workers can locate and verify their edge file.
type WorkerManifest struct {
	// Version increases by one on every publish to the same bucket.
	Version int64 `json:"version"`

	// Worker is the worker label, e.g. "worker-0".
	Worker string `json:"worker"`

	// WorkerCount is the total number of workers in the run.
	WorkerCount int `json:"workerCount"`

	// VertexCount is the size of the vertex universe.
	VertexCount int `json:"vertexCount"`

	// Vertices is the number of vertices assigned to this worker.
	Vertices int `json:"vertices"`

	// File is the worker's edge file.
	File FileStat `json:"file"`
}
