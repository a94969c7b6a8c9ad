package types

// AssignmentStrategy resolves which worker owns each vertex.
//
// Strategy implementations should:
//   - Be deterministic (same input → same output)
//   - Return a total mapping over [0, vertexCount)
//   - Reject workerCount <= 0 with ErrInvalidConfig
type AssignmentStrategy interface {
	// Assign calculates the vertex assignment.
	//
	// Parameters:
	//   - vertexCount: Size of the vertex universe [0, vertexCount)
	//   - workerCount: Number of workers
	//
	// Returns:
	//   - *VertexAssignment: Total vertex to worker mapping
	//   - error: ErrInvalidConfig for a non-positive worker count or negative vertex count
	Assign(vertexCount, workerCount int) (*VertexAssignment, error)
}
