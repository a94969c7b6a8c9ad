// Package types provides core type definitions and interfaces for the edgepart library.
//
// This package contains shared types that are used across multiple packages in the
// edgepart library. By keeping these types in a separate package, we avoid import cycles
// between the main edgepart package and its internal implementations.
//
// Key types:
//   - Edge: Ordered (from, to) vertex pair
//   - EdgeSet: Unique canonical undirected pairs in insertion order
//   - Adjacency: Directed out-neighbor sets as read from an edge-list file
//   - VertexAssignment: Total vertex to worker mapping
//   - Partition: Ordered edges grouped by owning worker
//   - Logger: Structured logging interface
//   - MetricsCollector: Metrics recording interface
package types
