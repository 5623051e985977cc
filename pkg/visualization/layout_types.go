package visualization

import (
	"github.com/dd0wney/cluso-steiner/pkg/graph"
)

// Position represents a 2D coordinate
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LayoutConfig configures layout parameters
type LayoutConfig struct {
	Width      float64 // Canvas width
	Height     float64 // Canvas height
	Iterations int     // Number of iterations for iterative algorithms
	Padding    float64 // Padding from edges
	Seed       uint64  // Seed for the initial placement of iterative algorithms
}

// DefaultLayoutConfig returns an 800x600 canvas
func DefaultLayoutConfig() *LayoutConfig {
	return &LayoutConfig{Width: 800, Height: 600, Iterations: 100, Padding: 50, Seed: 1}
}

// Layout interface for different layout algorithms
type Layout interface {
	ComputeLayout(adj graph.AdjacencyMap, nodes []int) (map[int]Position, error)
}
