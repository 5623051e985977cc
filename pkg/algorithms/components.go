package algorithms

import (
	"container/list"
	"sort"

	"github.com/dd0wney/cluso-steiner/pkg/graph"
)

// Component is one connected component of an undirected graph
type Component struct {
	ID    int
	Nodes []int // ascending
	Size  int
}

// ComponentsResult contains every connected component of a graph
type ComponentsResult struct {
	Components    []*Component
	NodeComponent map[int]int // node -> component ID
}

// SameComponent reports whether all given nodes sit in one component.
// Nodes absent from the graph are in no component.
func (r *ComponentsResult) SameComponent(nodes graph.NodeSet) bool {
	id := -1
	for n := range nodes {
		c, ok := r.NodeComponent[n]
		if !ok {
			return false
		}
		if id == -1 {
			id = c
		} else if c != id {
			return false
		}
	}
	return true
}

// ConnectedComponents finds all connected components of the adjacency.
// Components are ordered by their smallest node so the result is stable.
func ConnectedComponents(adj graph.AdjacencyMap) *ComponentsResult {
	nodeIDs := make([]int, 0, len(adj))
	for n := range adj {
		nodeIDs = append(nodeIDs, n)
	}
	sort.Ints(nodeIDs)

	visited := make(map[int]bool, len(nodeIDs))
	nodeComponent := make(map[int]int, len(nodeIDs))
	components := make([]*Component, 0)
	componentID := 0

	// BFS to find each component
	for _, startNode := range nodeIDs {
		if visited[startNode] {
			continue
		}

		component := &Component{
			ID:    componentID,
			Nodes: make([]int, 0),
		}

		queue := list.New()
		queue.PushBack(startNode)
		visited[startNode] = true

		for queue.Len() > 0 {
			nodeID, ok := queue.Remove(queue.Front()).(int)
			if !ok {
				continue
			}
			component.Nodes = append(component.Nodes, nodeID)
			nodeComponent[nodeID] = componentID

			for _, next := range adj[nodeID] {
				if !visited[next] {
					visited[next] = true
					queue.PushBack(next)
				}
			}
		}

		sort.Ints(component.Nodes)
		component.Size = len(component.Nodes)
		components = append(components, component)
		componentID++
	}

	return &ComponentsResult{
		Components:    components,
		NodeComponent: nodeComponent,
	}
}
