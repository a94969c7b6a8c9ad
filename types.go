package edgepart

import "github.com/arloliu/edgepart/types"

// Re-export types from the types package.
//
// Internal packages depend on types without importing the root package,
// while users get edgepart.Edge, edgepart.Logger and so on.
type (
	Edge             = types.Edge
	EdgeSet          = types.EdgeSet
	Adjacency        = types.Adjacency
	VertexAssignment = types.VertexAssignment
	Partition        = types.Partition
	FileStat         = types.FileStat
	WorkerManifest   = types.WorkerManifest
)

// Re-export interfaces from the types package for convenience.
type (
	AssignmentStrategy = types.AssignmentStrategy
	MetricsCollector   = types.MetricsCollector
	Logger             = types.Logger
	Hooks              = types.Hooks
	Rand               = types.Rand
)
