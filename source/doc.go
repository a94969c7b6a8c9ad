// Package source produces the edges that get partitioned.
//
// Two sources are provided:
//
//   - Generator: seeded rejection sampling of unique undirected edges
//   - LoadFile: an existing edge-list file read into an adjacency mapping
//
// Both are deterministic for a given input, so a run can be reproduced
// byte for byte.
package source
