package types

// EdgeSet holds unique undirected edges in canonical form.
//
// Pairs are kept in insertion order so that a seeded generation run produces
// the same output files byte for byte. The zero value is not usable; call
// NewEdgeSet.
type EdgeSet struct {
	pairs []Edge
	index map[Edge]struct{}
}

// NewEdgeSet creates an empty edge set with room for capacity pairs.
func NewEdgeSet(capacity int) *EdgeSet {
	if capacity < 0 {
		capacity = 0
	}

	return &EdgeSet{
		pairs: make([]Edge, 0, capacity),
		index: make(map[Edge]struct{}, capacity),
	}
}

// Add inserts the canonical form of e.
//
// Self-loops are rejected.
//
// Returns:
//   - bool: true if the pair was new, false if it was a duplicate or a self-loop
func (s *EdgeSet) Add(e Edge) bool {
	if e.IsSelfLoop() {
		return false
	}

	c := e.Canonical()
	if _, ok := s.index[c]; ok {
		return false
	}
	s.index[c] = struct{}{}
	s.pairs = append(s.pairs, c)

	return true
}

// Contains reports whether the undirected pair of e is in the set.
func (s *EdgeSet) Contains(e Edge) bool {
	_, ok := s.index[e.Canonical()]
	return ok
}

// Len returns the number of canonical pairs.
func (s *EdgeSet) Len() int {
	return len(s.pairs)
}

// Pairs returns a copy of the canonical pairs in insertion order.
func (s *EdgeSet) Pairs() []Edge {
	out := make([]Edge, len(s.pairs))
	copy(out, s.pairs)

	return out
}

// Expand materializes both directions of every pair.
//
// Each canonical pair (a,b) yields (a,b) followed by (b,a), in insertion
// order, so the result holds exactly 2*Len() ordered edges.
func (s *EdgeSet) Expand() []Edge {
	out := make([]Edge, 0, 2*len(s.pairs))
	for _, p := range s.pairs {
		out = append(out, p, p.Reverse())
	}

	return out
}
