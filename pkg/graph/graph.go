// Package graph holds the undirected edge-list model shared by the loader,
// the connectivity algorithms and the genetic search.
//
// An EdgeList is ordered: the position of an edge is the index of the gene
// that switches it on or off in a candidate solution, so nothing in this
// package ever sorts or de-duplicates edges.
package graph

import (
	"fmt"
	"sort"
	"strings"
)

// Edge is an unordered pair of node identifiers
type Edge struct {
	A int `json:"a" yaml:"a"`
	B int `json:"b" yaml:"b"`
}

// IsSelfLoop reports whether both endpoints are the same node
func (e Edge) IsSelfLoop() bool {
	return e.A == e.B
}

// Key returns the endpoints ordered low-high, so (2,1) and (1,2) compare equal
func (e Edge) Key() Edge {
	if e.A > e.B {
		return Edge{A: e.B, B: e.A}
	}
	return e
}

func (e Edge) String() string {
	return fmt.Sprintf("(%d,%d)", e.A, e.B)
}

// EdgeList is the ordered edge sequence of a graph
type EdgeList []Edge

// Nodes returns every node that appears in the list, ascending
func (el EdgeList) Nodes() []int {
	seen := make(map[int]struct{}, len(el)*2)
	for _, e := range el {
		seen[e.A] = struct{}{}
		seen[e.B] = struct{}{}
	}

	nodes := make([]int, 0, len(seen))
	for n := range seen {
		nodes = append(nodes, n)
	}
	sort.Ints(nodes)
	return nodes
}

// Select returns the edges whose mask bit is set, keeping their order.
// It panics if the mask length differs from the edge count.
func (el EdgeList) Select(mask []bool) EdgeList {
	if len(mask) != len(el) {
		panic(fmt.Sprintf("graph: mask length %d does not match edge count %d", len(mask), len(el)))
	}

	selected := make(EdgeList, 0, len(el))
	for i, on := range mask {
		if on {
			selected = append(selected, el[i])
		}
	}
	return selected
}

func (el EdgeList) String() string {
	parts := make([]string, len(el))
	for i, e := range el {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// NodeSet is a set of node identifiers
type NodeSet map[int]struct{}

// NewNodeSet builds a set from the given nodes
func NewNodeSet(nodes ...int) NodeSet {
	s := make(NodeSet, len(nodes))
	for _, n := range nodes {
		s[n] = struct{}{}
	}
	return s
}

// Contains reports set membership
func (s NodeSet) Contains(n int) bool {
	_, ok := s[n]
	return ok
}

// Sorted returns the members ascending
func (s NodeSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}
