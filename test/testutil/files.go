package testutil

import (
	"testing"

	"github.com/arloliu/edgepart/internal/edgefile"
	"github.com/arloliu/edgepart/types"
)

// ReadWorkerFiles reads the per-worker files 1.txt .. N.txt from dir.
//
// Parameters:
//   - t: testing handle
//   - dir: output directory of a run
//   - workerCount: number of worker files expected
//   - compression: "" or "zstd", as configured for the run
//
// Returns:
//   - [][]types.Edge: edges of worker w at index w, in file order
func ReadWorkerFiles(t testing.TB, dir string, workerCount int, compression string) [][]types.Edge {
	t.Helper()

	out := make([][]types.Edge, workerCount)
	for w := range workerCount {
		edges, err := edgefile.ReadAll(edgefile.WorkerFilePath(dir, w, compression))
		if err != nil {
			t.Fatalf("read worker %d file: %v", w, err)
		}
		out[w] = edges
	}

	return out
}
