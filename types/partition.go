package types

// Partition groups ordered edges by owning worker.
//
// Every worker in [0, WorkerCount) has a bucket, possibly empty. Buckets keep
// insertion order, which is the order edges are written to worker files.
type Partition struct {
	buckets [][]Edge
}

// NewPartition creates a partition with workerCount empty buckets.
func NewPartition(workerCount int) *Partition {
	if workerCount < 0 {
		workerCount = 0
	}

	return &Partition{buckets: make([][]Edge, workerCount)}
}

// Append adds e to the bucket of worker w.
func (p *Partition) Append(w int, e Edge) {
	p.buckets[w] = append(p.buckets[w], e)
}

// Bucket returns the edges owned by worker w.
//
// The returned slice is shared with the partition and must not be modified.
func (p *Partition) Bucket(w int) []Edge {
	return p.buckets[w]
}

// WorkerCount returns the number of buckets.
func (p *Partition) WorkerCount() int {
	return len(p.buckets)
}

// TotalEdges returns the number of ordered edges across all buckets.
func (p *Partition) TotalEdges() int {
	total := 0
	for _, b := range p.buckets {
		total += len(b)
	}

	return total
}

// Sizes returns the number of edges in each bucket.
func (p *Partition) Sizes() []int {
	sizes := make([]int, len(p.buckets))
	for i, b := range p.buckets {
		sizes[i] = len(b)
	}

	return sizes
}
