package visualization

import (
	"fmt"
	"io"
	"text/template"

	"github.com/dd0wney/cluso-steiner/pkg/genetic"
	"github.com/dd0wney/cluso-steiner/pkg/graph"
)

// Colours shared by the DOT and SVG renderers
const (
	colourSelectedEdge = "#e63946"
	colourPlainEdge    = "#c0c0c0"
	colourSelectedNode = "#f4a261"
	colourPlainNode    = "#ffffff"
	colourTarget       = "#1d3557"
)

type nodeView struct {
	ID       int
	X, Y     float64
	Fill     string
	Stroke   string
	Width    float64
	Target   bool
	Selected bool
}

type edgeView struct {
	A, B           int
	X1, Y1, X2, Y2 float64
	Colour         string
	Width          float64
	Selected       bool
}

func (s *Scene) nodeViews(positions map[int]Position) []nodeView {
	views := make([]nodeView, 0, len(s.Nodes))
	for _, n := range s.Nodes {
		v := nodeView{
			ID:       n,
			X:        positions[n].X,
			Y:        positions[n].Y,
			Fill:     colourPlainNode,
			Stroke:   colourPlainEdge,
			Width:    1,
			Target:   s.Targets.Contains(n),
			Selected: s.Highlighted.Contains(n),
		}
		if v.Selected {
			v.Fill = colourSelectedNode
		}
		if v.Target {
			v.Stroke = colourTarget
			v.Width = 3
		}
		views = append(views, v)
	}
	return views
}

// edgeViews lists unselected edges first so selected ones are drawn on top
func (s *Scene) edgeViews(positions map[int]Position) []edgeView {
	views := make([]edgeView, 0, len(s.Edges))
	for _, pass := range []bool{false, true} {
		for i, e := range s.Edges {
			if s.Selected[i] != pass {
				continue
			}
			v := edgeView{
				A: e.A, B: e.B,
				X1: positions[e.A].X, Y1: positions[e.A].Y,
				X2: positions[e.B].X, Y2: positions[e.B].Y,
				Colour:   colourPlainEdge,
				Width:    1,
				Selected: pass,
			}
			if pass {
				v.Colour = colourSelectedEdge
				v.Width = 3
			}
			views = append(views, v)
		}
	}
	return views
}

var dotTemplate = template.Must(template.New("dot").Parse(`graph steiner {
  node [shape=circle, style=filled, fillcolor="` + colourPlainNode + `"];
{{- range .Nodes}}
  {{.ID}} [fillcolor="{{.Fill}}"{{if .Target}}, shape=doublecircle, color="{{.Stroke}}", penwidth={{.Width}}{{end}}];
{{- end}}
{{- range .Edges}}
  {{.A}} -- {{.B}} [color="{{.Colour}}", penwidth={{.Width}}];
{{- end}}
}
`))

// WriteDOT writes the graph in Graphviz DOT form. Selected edges and their
// endpoints are highlighted; targets are drawn as double circles.
func WriteDOT(w io.Writer, edges graph.EdgeList, best genetic.Individual, targets graph.NodeSet) error {
	scene, err := NewScene(edges, best, targets)
	if err != nil {
		return err
	}

	data := struct {
		Nodes []nodeView
		Edges []edgeView
	}{
		Nodes: scene.nodeViews(nil),
		Edges: scene.edgeViews(nil),
	}
	if err := dotTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("visualization: write dot: %w", err)
	}
	return nil
}

var svgTemplate = template.Must(template.New("svg").Parse(`<svg xmlns="http://www.w3.org/2000/svg" width="{{.Width}}" height="{{.Height}}" viewBox="0 0 {{.Width}} {{.Height}}">
  <rect width="100%" height="100%" fill="#ffffff"/>
  <g class="edges">
{{- range .Edges}}
    <line x1="{{printf "%.2f" .X1}}" y1="{{printf "%.2f" .Y1}}" x2="{{printf "%.2f" .X2}}" y2="{{printf "%.2f" .Y2}}" stroke="{{.Colour}}" stroke-width="{{.Width}}"{{if .Selected}} class="selected"{{end}}/>
{{- end}}
  </g>
  <g class="nodes">
{{- range .Nodes}}
    <circle cx="{{printf "%.2f" .X}}" cy="{{printf "%.2f" .Y}}" r="{{$.Radius}}" fill="{{.Fill}}" stroke="{{.Stroke}}" stroke-width="{{.Width}}"{{if .Target}} class="target"{{end}}/>
    <text x="{{printf "%.2f" .X}}" y="{{printf "%.2f" .Y}}" text-anchor="middle" dominant-baseline="central" font-family="sans-serif" font-size="11">{{.ID}}</text>
{{- end}}
  </g>
</svg>
`))

// WriteSVG lays the graph out and writes it as a standalone SVG document
func WriteSVG(w io.Writer, edges graph.EdgeList, best genetic.Individual, targets graph.NodeSet, layout Layout) error {
	scene, err := NewScene(edges, best, targets)
	if err != nil {
		return err
	}

	cfg := DefaultLayoutConfig()
	if lc := configOf(layout); lc != nil {
		cfg = lc
	}

	positions, err := scene.Positions(layout)
	if err != nil {
		return fmt.Errorf("visualization: layout: %w", err)
	}

	data := struct {
		Width, Height float64
		Radius        float64
		Nodes         []nodeView
		Edges         []edgeView
	}{
		Width:  cfg.Width,
		Height: cfg.Height,
		Radius: 12,
		Nodes:  scene.nodeViews(positions),
		Edges:  scene.edgeViews(positions),
	}
	if err := svgTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("visualization: write svg: %w", err)
	}
	return nil
}

func configOf(layout Layout) *LayoutConfig {
	switch l := layout.(type) {
	case *ForceDirectedLayout:
		return l.config
	case *CircularLayout:
		return l.config
	case *HierarchicalLayout:
		return l.config
	}
	return nil
}
