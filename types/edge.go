package types

import "strconv"

// Edge is an ordered (From, To) vertex pair.
//
// An undirected logical edge is represented by two edges, (u,v) and (v,u).
// The worker owning From owns the edge.
type Edge struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Reverse returns the edge with its endpoints swapped.
func (e Edge) Reverse() Edge {
	return Edge{From: e.To, To: e.From}
}

// Canonical returns the edge with its smaller endpoint first.
//
// Canonical form identifies an undirected pair regardless of direction.
func (e Edge) Canonical() Edge {
	if e.From > e.To {
		return e.Reverse()
	}

	return e
}

// IsSelfLoop reports whether both endpoints are the same vertex.
func (e Edge) IsSelfLoop() bool {
	return e.From == e.To
}

// Compare orders edges by From, then To.
//
// Returns:
//   - int: -1 if e < f, 0 if equal, +1 if e > f
func (e Edge) Compare(f Edge) int {
	switch {
	case e.From < f.From:
		return -1
	case e.From > f.From:
		return 1
	case e.To < f.To:
		return -1
	case e.To > f.To:
		return 1
	default:
		return 0
	}
}

// String renders the edge in edge-list line form without the newline.
func (e Edge) String() string {
	return strconv.Itoa(e.From) + " " + strconv.Itoa(e.To)
}
