package graph

import "fmt"

// AdjacencyMap maps a node to its neighbours. It is always symmetric: if b is
// listed under a, a is listed under b. A missing key means no neighbours.
type AdjacencyMap map[int][]int

// BuildAdjacency builds the adjacency of every edge in the list
func BuildAdjacency(edges EdgeList) AdjacencyMap {
	adj := make(AdjacencyMap, len(edges))
	for _, e := range edges {
		adj.add(e)
	}
	return adj
}

// BuildMasked builds the adjacency of the edges whose mask bit is set.
// Cost is linear in the mask length; it runs once per fitness evaluation.
func BuildMasked(edges EdgeList, mask []bool) AdjacencyMap {
	if len(mask) != len(edges) {
		panic(fmt.Sprintf("graph: mask length %d does not match edge count %d", len(mask), len(edges)))
	}

	adj := make(AdjacencyMap)
	for i, on := range mask {
		if on {
			adj.add(edges[i])
		}
	}
	return adj
}

func (adj AdjacencyMap) add(e Edge) {
	if _, ok := adj[e.A]; !ok {
		adj[e.A] = nil
	}
	if _, ok := adj[e.B]; !ok {
		adj[e.B] = nil
	}
	adj[e.A] = append(adj[e.A], e.B)
	adj[e.B] = append(adj[e.B], e.A)
}

// Neighbours returns the neighbours of n, or nil when n has none
func (adj AdjacencyMap) Neighbours(n int) []int {
	return adj[n]
}
