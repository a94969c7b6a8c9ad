package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/edgepart/types"
)

func testAssignment(t *testing.T, workers []int, workerCount int) *types.VertexAssignment {
	t.Helper()

	asg, err := types.NewVertexAssignment(workers, workerCount)
	require.NoError(t, err)

	return asg
}

func TestAssertOwnership_Passes(t *testing.T) {
	asg := testAssignment(t, []int{0, 1, 0}, 2)
	part := types.NewPartition(2)
	part.Append(0, types.Edge{From: 0, To: 1})
	part.Append(1, types.Edge{From: 1, To: 2})
	part.Append(0, types.Edge{From: 2, To: 0})
	part.Append(1, types.Edge{From: 3, To: 0})

	AssertOwnership(t, part, asg)
}

func TestAssertComplete_Passes(t *testing.T) {
	part := types.NewPartition(2)
	part.Append(1, types.Edge{From: 1, To: 0})
	part.Append(0, types.Edge{From: 0, To: 1})
	part.Append(0, types.Edge{From: 0, To: 1})

	AssertComplete(t, part, []types.Edge{{From: 0, To: 1}, {From: 1, To: 0}, {From: 0, To: 1}})
}

func TestAssertSimpleGraph_Passes(t *testing.T) {
	AssertSimpleGraph(t, []types.Edge{{From: 0, To: 1}, {From: 1, To: 3}, {From: 0, To: 2}}, 4)
}

func TestReadWorkerFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "1.txt"), []byte("0 1\n0 2\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2.txt"), nil, 0o644))

	files := ReadWorkerFiles(t, dir, 2, "")
	require.Equal(t, []types.Edge{{From: 0, To: 1}, {From: 0, To: 2}}, files[0])
	require.Empty(t, files[1])
}
