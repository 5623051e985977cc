package main

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dd0wney/cluso-steiner/pkg/algorithms"
	"github.com/dd0wney/cluso-steiner/pkg/graph"
)

func TestRingWithChords(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 0))
	edges := ringWithChords(rng, 20, 15)

	assert.Len(t, edges, 35)
	for _, e := range edges {
		assert.False(t, e.IsSelfLoop())
	}

	all := graph.NewNodeSet(edges.Nodes()...)
	assert.True(t, algorithms.IsConnected(graph.BuildAdjacency(edges), all))
}

func TestCheckGraphFlags(t *testing.T) {
	tests := []struct {
		name   string
		nodes  int
		chords int
		ok     bool
	}{
		{"defaults", 200, 400, true},
		{"smallest ring", 2, 5, true},
		{"no chords", 10, 0, true},
		{"single node", 1, 5, false},
		{"no nodes", 0, 0, false},
		{"negative chords", 10, -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkGraphFlags(tt.nodes, tt.chords)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestRingWithChords_SmallestRing(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 0))
	edges := ringWithChords(rng, 2, 3)

	assert.Len(t, edges, 5)
	for _, e := range edges {
		assert.False(t, e.IsSelfLoop())
	}
}

func TestPickTargets(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 0))
	assert.Len(t, pickTargets(rng, 10, 4), 4)
	assert.Len(t, pickTargets(rng, 3, 9), 3)
}

func TestWorkerCounts(t *testing.T) {
	assert.Equal(t, []int{1}, workerCounts(1))
	assert.Equal(t, []int{1, 2}, workerCounts(2))
	assert.Equal(t, []int{1, 2, 4, 6}, workerCounts(6))
	assert.Equal(t, []int{1, 2, 4, 8}, workerCounts(8))
}
