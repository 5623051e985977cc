package algorithms

import (
	"reflect"
	"testing"

	"github.com/dd0wney/cluso-steiner/pkg/graph"
)

func TestConnectedComponents_EmptyGraph(t *testing.T) {
	result := ConnectedComponents(graph.AdjacencyMap{})

	if len(result.Components) != 0 {
		t.Errorf("Expected 0 components for empty graph, got %d", len(result.Components))
	}
}

func TestConnectedComponents_TwoComponents(t *testing.T) {
	adj := graph.BuildAdjacency(graph.EdgeList{{5, 6}, {1, 2}, {2, 3}, {6, 7}})

	result := ConnectedComponents(adj)

	if len(result.Components) != 2 {
		t.Fatalf("Expected 2 components, got %d", len(result.Components))
	}
	if !reflect.DeepEqual(result.Components[0].Nodes, []int{1, 2, 3}) {
		t.Errorf("First component = %v, want [1 2 3]", result.Components[0].Nodes)
	}
	if !reflect.DeepEqual(result.Components[1].Nodes, []int{5, 6, 7}) {
		t.Errorf("Second component = %v, want [5 6 7]", result.Components[1].Nodes)
	}
	if result.Components[1].Size != 3 {
		t.Errorf("Expected size 3, got %d", result.Components[1].Size)
	}
	if result.NodeComponent[7] != 1 {
		t.Errorf("Node 7 should be in component 1, got %d", result.NodeComponent[7])
	}
}

func TestComponentsResult_SameComponent(t *testing.T) {
	adj := graph.BuildAdjacency(graph.EdgeList{{1, 2}, {3, 4}})
	result := ConnectedComponents(adj)

	if !result.SameComponent(graph.NewNodeSet(1, 2)) {
		t.Error("1 and 2 share a component")
	}
	if result.SameComponent(graph.NewNodeSet(1, 3)) {
		t.Error("1 and 3 are in different components")
	}
	if result.SameComponent(graph.NewNodeSet(1, 99)) {
		t.Error("absent node is in no component")
	}
}
