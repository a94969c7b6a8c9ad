// Package strategy provides the vertex assignment strategy.
//
// Modulo is the only ownership rule: vertex v belongs to worker
// v % workerCount unless a valid override pins it elsewhere.
//
//   - Overrides come from the worker_config.vertex_assignment section of a
//     configuration document, as vertex id to "worker-<n>" labels
//   - A label whose trailing integer does not parse, or names a worker
//     outside [0, workerCount), is ignored and the vertex keeps its
//     fallback worker
//   - Overrides for vertices outside the universe are ignored
//
// Workloads computes contiguous chunk ranges for reporting only. It never
// decides ownership.
//
// Custom strategies can be implemented by satisfying the types.AssignmentStrategy interface.
package strategy
