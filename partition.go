package edgepart

import "github.com/arloliu/edgepart/types"

// PartitionEdges routes each ordered edge (u,v) to the worker owning u.
//
// Edges keep their relative order within each bucket. No deduplication or
// validation is done.
//
// Parameters:
//   - edges: Ordered edges, typically EdgeSet.Expand()
//   - asg: Vertex to worker mapping
//
// Returns:
//   - *types.Partition: One bucket per worker, possibly empty
func PartitionEdges(edges []types.Edge, asg *types.VertexAssignment) *types.Partition {
	part := types.NewPartition(asg.WorkerCount())
	for _, e := range edges {
		part.Append(asg.Worker(e.From), e)
	}

	return part
}

// PartitionAdjacency mirrors and routes every edge of a loaded graph.
//
// For each stored edge (u,v), (u,v) goes to the worker owning u and then
// (v,u) to the worker owning v. Edges read in both directions therefore
// appear twice in the output.
//
// Parameters:
//   - adj: Adjacency as read from an edge list
//   - asg: Vertex to worker mapping
//
// Returns:
//   - *types.Partition: One bucket per worker, possibly empty
func PartitionAdjacency(adj *types.Adjacency, asg *types.VertexAssignment) *types.Partition {
	part := types.NewPartition(asg.WorkerCount())
	adj.Each(func(e types.Edge) {
		part.Append(asg.Worker(e.From), e)
		r := e.Reverse()
		part.Append(asg.Worker(r.From), r)
	})

	return part
}
