package visualization

import (
	"math"

	"github.com/dd0wney/cluso-steiner/pkg/graph"
)

// CircularLayout arranges nodes in a circle
type CircularLayout struct {
	config *LayoutConfig
}

// NewCircularLayout creates a new circular layout
func NewCircularLayout(config *LayoutConfig) *CircularLayout {
	if config.Padding == 0 {
		config.Padding = 50
	}
	return &CircularLayout{config: config}
}

// ComputeLayout places nodes on a circle in the order given
func (cl *CircularLayout) ComputeLayout(_ graph.AdjacencyMap, nodes []int) (map[int]Position, error) {
	positions := make(map[int]Position, len(nodes))

	if len(nodes) == 0 {
		return positions, nil
	}

	centerX := cl.config.Width / 2
	centerY := cl.config.Height / 2
	radius := math.Min(centerX, centerY) - cl.config.Padding

	angleStep := 2 * math.Pi / float64(len(nodes))

	for i, n := range nodes {
		angle := float64(i) * angleStep
		positions[n] = Position{
			X: centerX + radius*math.Cos(angle),
			Y: centerY + radius*math.Sin(angle),
		}
	}

	return positions, nil
}
