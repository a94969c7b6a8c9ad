package testutil

import (
	"slices"
	"testing"

	"github.com/arloliu/edgepart/types"
)

// AssertOwnership verifies that every edge in a worker's bucket has its
// source vertex owned by that worker.
//
// Parameters:
//   - t: testing handle
//   - part: partition under test
//   - asg: assignment the partition was built from
func AssertOwnership(t testing.TB, part *types.Partition, asg *types.VertexAssignment) {
	t.Helper()

	if part.WorkerCount() != asg.WorkerCount() {
		t.Fatalf("partition has %d buckets, assignment has %d workers", part.WorkerCount(), asg.WorkerCount())
	}

	for w := range part.WorkerCount() {
		for _, e := range part.Bucket(w) {
			if owner := asg.Worker(e.From); owner != w {
				t.Fatalf("edge %s in bucket %d, owner of %d is %d", e, w, e.From, owner)
			}
		}
	}
}

// AssertComplete verifies that the union of all buckets equals want as a
// multiset of ordered edges.
//
// Parameters:
//   - t: testing handle
//   - part: partition under test
//   - want: every ordered edge expected across all buckets, in any order
func AssertComplete(t testing.TB, part *types.Partition, want []types.Edge) {
	t.Helper()

	got := make([]types.Edge, 0, part.TotalEdges())
	for w := range part.WorkerCount() {
		got = append(got, part.Bucket(w)...)
	}

	AssertSameEdges(t, want, got)
}

// AssertSameEdges verifies that two edge slices hold the same multiset.
func AssertSameEdges(t testing.TB, want, got []types.Edge) {
	t.Helper()

	want = sortedCopy(want)
	got = sortedCopy(got)
	if !slices.Equal(want, got) {
		t.Fatalf("edge multiset mismatch:\nwant %v\n got %v", want, got)
	}
}

// AssertSimpleGraph verifies that pairs are canonical, distinct and free of
// self-loops, with every endpoint in [0, vertexCount).
func AssertSimpleGraph(t testing.TB, pairs []types.Edge, vertexCount int) {
	t.Helper()

	seen := make(map[types.Edge]struct{}, len(pairs))
	for _, p := range pairs {
		if p.IsSelfLoop() {
			t.Fatalf("self-loop %s", p)
		}
		if p != p.Canonical() {
			t.Fatalf("pair %s is not canonical", p)
		}
		if p.From < 0 || p.To >= vertexCount {
			t.Fatalf("pair %s outside vertex universe [0,%d)", p, vertexCount)
		}
		if _, dup := seen[p]; dup {
			t.Fatalf("duplicate pair %s", p)
		}
		seen[p] = struct{}{}
	}
}

func sortedCopy(edges []types.Edge) []types.Edge {
	out := slices.Clone(edges)
	slices.SortFunc(out, types.Edge.Compare)

	return out
}
