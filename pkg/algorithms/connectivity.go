package algorithms

import (
	"github.com/dd0wney/cluso-steiner/pkg/graph"
)

// IsConnected reports whether every target lies in a single connected
// component of adj. An empty target set is trivially connected. Targets that
// are not keys of adj have no neighbours, so they are unreachable unless they
// are the only target.
func IsConnected(adj graph.AdjacencyMap, targets graph.NodeSet) bool {
	if len(targets) == 0 {
		return true
	}

	// Smallest target as seed keeps the traversal order reproducible
	seed := 0
	first := true
	for n := range targets {
		if first || n < seed {
			seed = n
			first = false
		}
	}

	visited := map[int]bool{seed: true}
	remaining := len(targets) - 1
	if remaining == 0 {
		return true
	}

	queue := []int{seed}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, next := range adj[current] {
			if visited[next] {
				continue
			}
			visited[next] = true
			if targets.Contains(next) {
				remaining--
				if remaining == 0 {
					return true
				}
			}
			queue = append(queue, next)
		}
	}

	return false
}
