package types

// Adjacency maps each source vertex to its distinct out-neighbors.
//
// Only the direction that was read is stored. Vertices and their neighbors
// are iterated in first-seen order.
type Adjacency struct {
	order     []int
	neighbors map[int]*neighborSet
	edges     int
}

type neighborSet struct {
	order []int
	seen  map[int]struct{}
}

// NewAdjacency creates an empty adjacency mapping.
func NewAdjacency() *Adjacency {
	return &Adjacency{neighbors: make(map[int]*neighborSet)}
}

// Add records the directed edge u -> v.
//
// Returns:
//   - bool: false if v was already a neighbor of u
func (a *Adjacency) Add(u, v int) bool {
	ns, ok := a.neighbors[u]
	if !ok {
		ns = &neighborSet{seen: make(map[int]struct{})}
		a.neighbors[u] = ns
		a.order = append(a.order, u)
	}
	if _, dup := ns.seen[v]; dup {
		return false
	}
	ns.seen[v] = struct{}{}
	ns.order = append(ns.order, v)
	a.edges++

	return true
}

// Neighbors returns a copy of the out-neighbors of u in first-seen order.
func (a *Adjacency) Neighbors(u int) []int {
	ns, ok := a.neighbors[u]
	if !ok {
		return nil
	}
	out := make([]int, len(ns.order))
	copy(out, ns.order)

	return out
}

// Sources returns the vertices with at least one out-neighbor, in first-seen order.
func (a *Adjacency) Sources() []int {
	out := make([]int, len(a.order))
	copy(out, a.order)

	return out
}

// EdgeCount returns the number of distinct directed edges stored.
func (a *Adjacency) EdgeCount() int {
	return a.edges
}

// Each calls fn for every stored edge, grouped by source vertex.
func (a *Adjacency) Each(fn func(e Edge)) {
	for _, u := range a.order {
		for _, v := range a.neighbors[u].order {
			fn(Edge{From: u, To: v})
		}
	}
}
