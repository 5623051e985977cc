package visualization

import (
	"math"
	"math/rand/v2"

	"github.com/dd0wney/cluso-steiner/pkg/graph"
)

// ForceDirectedLayout implements force-directed graph layout
type ForceDirectedLayout struct {
	config *LayoutConfig
}

// NewForceDirectedLayout creates a new force-directed layout
func NewForceDirectedLayout(config *LayoutConfig) *ForceDirectedLayout {
	if config.Iterations == 0 {
		config.Iterations = 50
	}
	if config.Padding == 0 {
		config.Padding = 50
	}
	return &ForceDirectedLayout{config: config}
}

// ComputeLayout computes positions using force-directed algorithm.
// The same seed, adjacency and node order always give the same positions.
func (fdl *ForceDirectedLayout) ComputeLayout(adj graph.AdjacencyMap, nodes []int) (map[int]Position, error) {
	if len(nodes) == 0 {
		return make(map[int]Position), nil
	}

	// Single node - center it
	if len(nodes) == 1 {
		return map[int]Position{
			nodes[0]: {
				X: fdl.config.Width / 2,
				Y: fdl.config.Height / 2,
			},
		}, nil
	}

	rng := rand.New(rand.NewPCG(fdl.config.Seed, 0))
	positions := make(map[int]Position, len(nodes))
	for _, n := range nodes {
		positions[n] = Position{
			X: rng.Float64()*(fdl.config.Width-2*fdl.config.Padding) + fdl.config.Padding,
			Y: rng.Float64()*(fdl.config.Height-2*fdl.config.Padding) + fdl.config.Padding,
		}
	}

	k := math.Sqrt((fdl.config.Width * fdl.config.Height) / float64(len(nodes))) // Optimal distance
	temperature := fdl.config.Width / 10.0

	forces := make(map[int]Position, len(nodes))
	for iter := 0; iter < fdl.config.Iterations; iter++ {
		for _, n := range nodes {
			forces[n] = Position{}
		}

		// Repulsion between all nodes
		for i, n1 := range nodes {
			for _, n2 := range nodes[i+1:] {
				dx := positions[n1].X - positions[n2].X
				dy := positions[n1].Y - positions[n2].Y
				dist := math.Sqrt(dx*dx + dy*dy)

				if dist < 0.01 {
					dist = 0.01
				}

				force := (k * k) / dist
				fx := (dx / dist) * force
				fy := (dy / dist) * force

				forces[n1] = Position{X: forces[n1].X + fx, Y: forces[n1].Y + fy}
				forces[n2] = Position{X: forces[n2].X - fx, Y: forces[n2].Y - fy}
			}
		}

		// Attraction between neighbours; each undirected edge pulls both ends
		for _, n1 := range nodes {
			for _, n2 := range adj.Neighbours(n1) {
				if _, exists := positions[n2]; !exists || n1 == n2 {
					continue
				}

				dx := positions[n1].X - positions[n2].X
				dy := positions[n1].Y - positions[n2].Y
				dist := math.Sqrt(dx*dx + dy*dy)

				if dist < 0.01 {
					continue
				}

				force := (dist * dist) / k
				fx := (dx / dist) * force
				fy := (dy / dist) * force

				forces[n1] = Position{X: forces[n1].X - fx, Y: forces[n1].Y - fy}
			}
		}

		// Apply forces with cooling
		cool := 1.0 - float64(iter)/float64(fdl.config.Iterations)
		for _, n := range nodes {
			fx := forces[n].X
			fy := forces[n].Y
			force := math.Sqrt(fx*fx + fy*fy)

			if force > 0 {
				step := math.Min(force, temperature) * cool
				positions[n] = Position{
					X: positions[n].X + (fx/force)*step,
					Y: positions[n].Y + (fy/force)*step,
				}
			}
		}

		temperature *= 0.95
	}

	return normalizePositions(positions, fdl.config.Width, fdl.config.Height, fdl.config.Padding), nil
}
