package assignment

import "github.com/arloliu/edgepart/types"

// BuildManifests pairs each worker's file stat with its assignment counts.
//
// Parameters:
//   - asg: The resolved vertex assignment
//   - files: One FileStat per worker, indexed by worker
//
// Returns:
//   - []types.WorkerManifest: One manifest per file, Version left at zero
func BuildManifests(asg *types.VertexAssignment, files []types.FileStat) []types.WorkerManifest {
	counts := asg.Counts()
	out := make([]types.WorkerManifest, 0, len(files))
	for _, f := range files {
		m := types.WorkerManifest{
			Worker:      types.WorkerLabel(f.Worker),
			WorkerCount: asg.WorkerCount(),
			VertexCount: asg.VertexCount(),
			File:        f,
		}
		if f.Worker >= 0 && f.Worker < len(counts) {
			m.Vertices = counts[f.Worker]
		}
		out = append(out, m)
	}

	return out
}
