package visualization

import (
	"github.com/dd0wney/cluso-steiner/pkg/graph"
)

// HierarchicalLayout places nodes in rows by BFS depth from a root
type HierarchicalLayout struct {
	config *LayoutConfig
	root   int
	rooted bool
}

// NewHierarchicalLayout creates a layout rooted at the first node it is given
func NewHierarchicalLayout(config *LayoutConfig) *HierarchicalLayout {
	if config.Padding == 0 {
		config.Padding = 50
	}
	return &HierarchicalLayout{config: config}
}

// WithRoot sets the node placed on the top row, e.g. a target
func (hl *HierarchicalLayout) WithRoot(root int) *HierarchicalLayout {
	hl.root = root
	hl.rooted = true
	return hl
}

// ComputeLayout arranges nodes by BFS level. Nodes unreachable from the
// root share the bottom row.
func (hl *HierarchicalLayout) ComputeLayout(adj graph.AdjacencyMap, nodes []int) (map[int]Position, error) {
	positions := make(map[int]Position, len(nodes))

	if len(nodes) == 0 {
		return positions, nil
	}

	inLayout := make(map[int]bool, len(nodes))
	for _, n := range nodes {
		inLayout[n] = true
	}

	root := nodes[0]
	if hl.rooted && inLayout[hl.root] {
		root = hl.root
	}

	levels := make([][]int, 0)
	visited := map[int]bool{root: true}
	currentLevel := []int{root}

	for len(currentLevel) > 0 {
		levels = append(levels, currentLevel)
		nextLevel := make([]int, 0)

		for _, n := range currentLevel {
			for _, nb := range adj.Neighbours(n) {
				if inLayout[nb] && !visited[nb] {
					nextLevel = append(nextLevel, nb)
					visited[nb] = true
				}
			}
		}

		currentLevel = nextLevel
	}

	var rest []int
	for _, n := range nodes {
		if !visited[n] {
			rest = append(rest, n)
		}
	}
	if len(rest) > 0 {
		levels = append(levels, rest)
	}

	levelHeight := (hl.config.Height - 2*hl.config.Padding) / float64(len(levels))

	for levelIdx, level := range levels {
		y := hl.config.Padding + float64(levelIdx)*levelHeight + levelHeight/2
		levelWidth := hl.config.Width - 2*hl.config.Padding
		spacing := levelWidth / float64(len(level)+1)

		for nodeIdx, n := range level {
			x := hl.config.Padding + spacing*float64(nodeIdx+1)
			positions[n] = Position{X: x, Y: y}
		}
	}

	return positions, nil
}
