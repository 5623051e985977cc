package visualization

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-steiner/pkg/genetic"
	"github.com/dd0wney/cluso-steiner/pkg/graph"
)

var (
	square  = graph.EdgeList{{A: 1, B: 2}, {A: 2, B: 3}, {A: 3, B: 4}, {A: 1, B: 4}}
	twoHops = genetic.Individual{true, true, false, false}
)

func TestNewScene(t *testing.T) {
	scene, err := NewScene(square, twoHops, graph.NewNodeSet(1, 3, 7))
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3, 4, 7}, scene.Nodes, "isolated targets are drawn too")
	assert.Equal(t, []int{1, 2, 3}, scene.Highlighted.Sorted())

	_, err = NewScene(square, genetic.Individual{true}, nil)
	assert.True(t, errors.Is(err, ErrMaskMismatch))
}

func TestWriteDOT(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDOT(&buf, square, twoHops, graph.NewNodeSet(1, 3)))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "graph steiner {"))
	assert.True(t, strings.HasSuffix(out, "}\n"))

	assert.Contains(t, out, `1 -- 2 [color="`+colourSelectedEdge+`", penwidth=3];`)
	assert.Contains(t, out, `2 -- 3 [color="`+colourSelectedEdge+`", penwidth=3];`)
	assert.Contains(t, out, `3 -- 4 [color="`+colourPlainEdge+`", penwidth=1];`)

	assert.Contains(t, out, `1 [fillcolor="`+colourSelectedNode+`", shape=doublecircle`)
	assert.Contains(t, out, `2 [fillcolor="`+colourSelectedNode+`"];`)
	assert.Contains(t, out, `4 [fillcolor="`+colourPlainNode+`"];`)

	// Selected edges come after the plain ones
	assert.Less(t, strings.Index(out, "3 -- 4"), strings.Index(out, "1 -- 2"))
}

func TestWriteDOT_Mismatch(t *testing.T) {
	var buf bytes.Buffer
	err := WriteDOT(&buf, square, genetic.Individual{true, false}, nil)
	assert.ErrorIs(t, err, ErrMaskMismatch)
	assert.Zero(t, buf.Len())
}

func TestWriteSVG(t *testing.T) {
	for _, name := range []string{LayoutForce, LayoutCircular, LayoutHierarchical} {
		t.Run(name, func(t *testing.T) {
			layout, err := NewLayout(name, &LayoutConfig{Width: 300, Height: 200, Seed: 3})
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, WriteSVG(&buf, square, twoHops, graph.NewNodeSet(1, 3), layout))
			out := buf.String()

			assert.True(t, strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" width="300" height="200"`))
			assert.Equal(t, 4, strings.Count(out, "<line "))
			assert.Equal(t, 2, strings.Count(out, `class="selected"`))
			assert.Equal(t, 4, strings.Count(out, "<circle "))
			assert.Equal(t, 2, strings.Count(out, `class="target"`))
			assert.Contains(t, out, "</svg>")
		})
	}
}

func TestExportJSON(t *testing.T) {
	scene, err := NewScene(square, twoHops, graph.NewNodeSet(1, 3))
	require.NoError(t, err)

	positions, err := scene.Positions(NewCircularLayout(DefaultLayoutConfig()))
	require.NoError(t, err)

	data, err := scene.ExportJSON(positions)
	require.NoError(t, err)

	var decoded struct {
		Nodes []struct {
			ID       int  `json:"id"`
			Target   bool `json:"target"`
			Selected bool `json:"selected"`
		} `json:"nodes"`
		Edges []struct {
			Selected bool `json:"selected"`
		} `json:"edges"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))

	require.Len(t, decoded.Nodes, 4)
	require.Len(t, decoded.Edges, 4)
	assert.True(t, decoded.Nodes[0].Target)
	assert.False(t, decoded.Nodes[3].Selected)
	assert.True(t, decoded.Edges[0].Selected)
	assert.False(t, decoded.Edges[3].Selected)
}
