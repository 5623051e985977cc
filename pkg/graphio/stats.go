package graphio

import "github.com/dd0wney/cluso-steiner/pkg/graph"

// LoadStats summarises a loaded edge list
type LoadStats struct {
	EdgeCount      int
	NodeCount      int
	SelfLoops      int
	DuplicateEdges int // edges whose endpoint pair appeared earlier, in either orientation
}

// Stats computes LoadStats for an edge list
func Stats(edges graph.EdgeList) LoadStats {
	stats := LoadStats{
		EdgeCount: len(edges),
		NodeCount: len(edges.Nodes()),
	}

	seen := make(map[graph.Edge]bool, len(edges))
	for _, e := range edges {
		if e.IsSelfLoop() {
			stats.SelfLoops++
		}
		k := e.Key()
		if seen[k] {
			stats.DuplicateEdges++
		}
		seen[k] = true
	}
	return stats
}
