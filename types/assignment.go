package types

import (
	"fmt"
	"strconv"
	"strings"
)

// WorkerLabelPrefix is the prefix of worker labels in configuration documents.
const WorkerLabelPrefix = "worker"

// WorkerLabel formats a zero-based worker index as "worker-<index>".
func WorkerLabel(index int) string {
	return WorkerLabelPrefix + "-" + strconv.Itoa(index)
}

// ParseWorkerLabel extracts the worker index from a label such as "worker-3".
//
// Only the text after the last "-" is considered, so "pool-a-2" yields 2 and a
// bare "5" yields 5. The range is not checked here.
//
// Returns:
//   - int: Parsed index
//   - error: Non-nil if the trailing segment is not an integer
func ParseWorkerLabel(label string) (int, error) {
	tail := label
	if i := strings.LastIndexByte(label, '-'); i >= 0 {
		tail = label[i+1:]
	}

	idx, err := strconv.Atoi(strings.TrimSpace(tail))
	if err != nil {
		return 0, fmt.Errorf("malformed worker label %q: %w", label, err)
	}

	return idx, nil
}

// VertexAssignment is a total mapping from every vertex in [0, VertexCount)
// to a worker in [0, WorkerCount).
//
// Vertices beyond VertexCount resolve through the modulo fallback, so edge
// ownership is defined for any non-negative vertex id.
type VertexAssignment struct {
	workers     []int
	workerCount int
}

// NewVertexAssignment wraps a per-vertex worker slice.
//
// Parameters:
//   - workers: workers[v] is the worker of vertex v; every entry must be in [0, workerCount)
//   - workerCount: Number of workers (must be > 0)
//
// Returns:
//   - *VertexAssignment: The assignment
//   - error: ErrInvalidConfig if workerCount <= 0 or an entry is out of range
func NewVertexAssignment(workers []int, workerCount int) (*VertexAssignment, error) {
	if workerCount <= 0 {
		return nil, fmt.Errorf("%w: worker count must be positive, got %d", ErrInvalidConfig, workerCount)
	}
	for v, w := range workers {
		if w < 0 || w >= workerCount {
			return nil, fmt.Errorf("%w: vertex %d assigned to worker %d outside [0,%d)", ErrInvalidConfig, v, w, workerCount)
		}
	}

	return &VertexAssignment{workers: workers, workerCount: workerCount}, nil
}

// Worker returns the worker owning vertex v.
func (a *VertexAssignment) Worker(v int) int {
	if v >= 0 && v < len(a.workers) {
		return a.workers[v]
	}

	return v % a.workerCount
}

// VertexCount returns the size of the resolved vertex universe.
func (a *VertexAssignment) VertexCount() int {
	return len(a.workers)
}

// WorkerCount returns the number of workers.
func (a *VertexAssignment) WorkerCount() int {
	return a.workerCount
}

// Counts returns the number of vertices assigned to each worker.
func (a *VertexAssignment) Counts() []int {
	counts := make([]int, a.workerCount)
	for _, w := range a.workers {
		counts[w]++
	}

	return counts
}

// Vertices returns the vertices owned by worker w in ascending order.
func (a *VertexAssignment) Vertices(w int) []int {
	var out []int
	for v, owner := range a.workers {
		if owner == w {
			out = append(out, v)
		}
	}

	return out
}

// Labels renders the assignment as vertex-id string to "worker-<n>" label.
func (a *VertexAssignment) Labels() map[string]string {
	out := make(map[string]string, len(a.workers))
	for v, w := range a.workers {
		out[strconv.Itoa(v)] = WorkerLabel(w)
	}

	return out
}
