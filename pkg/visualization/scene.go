package visualization

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dd0wney/cluso-steiner/pkg/genetic"
	"github.com/dd0wney/cluso-steiner/pkg/graph"
)

var (
	// ErrMaskMismatch is returned when an individual does not match the edge list
	ErrMaskMismatch = errors.New("visualization: individual length does not match edge count")
	// ErrUnknownLayout is returned by NewLayout for unsupported names
	ErrUnknownLayout = errors.New("visualization: unknown layout")
)

// Layout names accepted by NewLayout
const (
	LayoutForce        = "force"
	LayoutCircular     = "circular"
	LayoutHierarchical = "hierarchical"
)

// Scene is a search result prepared for drawing
type Scene struct {
	Edges    graph.EdgeList
	Selected []bool
	Targets  graph.NodeSet

	// Nodes holds every edge endpoint and every target, ascending
	Nodes []int
	// Highlighted holds the endpoints of selected edges
	Highlighted graph.NodeSet
}

// NewScene builds a scene from the edge list, the chosen individual and the targets
func NewScene(edges graph.EdgeList, best genetic.Individual, targets graph.NodeSet) (*Scene, error) {
	if len(best) != len(edges) {
		return nil, fmt.Errorf("%w: %d bits, %d edges", ErrMaskMismatch, len(best), len(edges))
	}

	all := graph.NewNodeSet(edges.Nodes()...)
	for t := range targets {
		all[t] = struct{}{}
	}

	hl := graph.NewNodeSet()
	for i, on := range best {
		if on {
			hl[edges[i].A] = struct{}{}
			hl[edges[i].B] = struct{}{}
		}
	}

	return &Scene{
		Edges:       edges,
		Selected:    best,
		Targets:     targets,
		Nodes:       all.Sorted(),
		Highlighted: hl,
	}, nil
}

// NewLayout returns the layout registered under name
func NewLayout(name string, config *LayoutConfig) (Layout, error) {
	switch name {
	case LayoutForce, "":
		return NewForceDirectedLayout(config), nil
	case LayoutCircular:
		return NewCircularLayout(config), nil
	case LayoutHierarchical:
		return NewHierarchicalLayout(config), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLayout, name)
	}
}

// Positions runs the layout over the full graph
func (s *Scene) Positions(layout Layout) (map[int]Position, error) {
	if hl, ok := layout.(*HierarchicalLayout); ok && len(s.Targets) > 0 && !hl.rooted {
		hl = NewHierarchicalLayout(hl.config).WithRoot(s.Targets.Sorted()[0])
		layout = hl
	}
	return layout.ComputeLayout(graph.BuildAdjacency(s.Edges), s.Nodes)
}

// ExportJSON exports the scene with node positions to JSON
func (s *Scene) ExportJSON(positions map[int]Position) ([]byte, error) {
	type NodeViz struct {
		ID       int     `json:"id"`
		Target   bool    `json:"target"`
		Selected bool    `json:"selected"`
		X        float64 `json:"x"`
		Y        float64 `json:"y"`
	}

	type EdgeViz struct {
		From     int  `json:"from"`
		To       int  `json:"to"`
		Selected bool `json:"selected"`
	}

	type VizData struct {
		Nodes []NodeViz `json:"nodes"`
		Edges []EdgeViz `json:"edges"`
	}

	data := VizData{
		Nodes: make([]NodeViz, 0, len(s.Nodes)),
		Edges: make([]EdgeViz, 0, len(s.Edges)),
	}

	for _, n := range s.Nodes {
		pos := positions[n]
		data.Nodes = append(data.Nodes, NodeViz{
			ID:       n,
			Target:   s.Targets.Contains(n),
			Selected: s.Highlighted.Contains(n),
			X:        pos.X,
			Y:        pos.Y,
		})
	}

	for i, e := range s.Edges {
		data.Edges = append(data.Edges, EdgeViz{From: e.A, To: e.B, Selected: s.Selected[i]})
	}

	return json.Marshal(data)
}
