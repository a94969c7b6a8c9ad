package strategy

// Range is a half-open vertex interval [Start, End).
type Range struct {
	Start int
	End   int
}

// Len returns the number of vertices in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Workloads splits [0, n) into workerCount contiguous chunks.
//
// Each worker receives n / workerCount vertices and the last worker also takes
// the remainder. The result is a sizing report; ownership is always decided
// by Modulo.
//
// Parameters:
//   - n: Number of vertices
//   - workerCount: Number of workers
//
// Returns:
//   - []Range: One range per worker, nil if workerCount <= 0 or n < 0
func Workloads(n, workerCount int) []Range {
	if workerCount <= 0 || n < 0 {
		return nil
	}

	chunk := n / workerCount
	ranges := make([]Range, workerCount)
	for i := range ranges {
		ranges[i] = Range{Start: i * chunk, End: (i + 1) * chunk}
	}
	ranges[workerCount-1].End = n

	return ranges
}
