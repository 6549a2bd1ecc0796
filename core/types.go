// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Node, Edge, Graph, GraphOption, sentinel errors and NewGraph.

package core

import "errors"

// Sentinel errors for core graph operations.
var (
	// ErrNodeNotFound indicates an index outside [0, NodeCount()).
	ErrNodeNotFound = errors.New("core: node not found")

	// ErrLoopNotAllowed indicates an attempt to list a node as its own neighbour.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrDuplicateNeighbor indicates the neighbour is already in the owner's list.
	ErrDuplicateNeighbor = errors.New("core: neighbor already listed")

	// ErrBadPosition indicates a NaN or infinite coordinate.
	ErrBadPosition = errors.New("core: position is not finite")
)

// Node is a point of the visualization graph.
//
// ID equals the node's index in its Graph. Neighbors is the ordered
// connectivity list (owner→neighbour pairs). Size is a visual attribute
// (sphere radius / dot size) and carries no topological meaning.
type Node struct {
	ID        int     `json:"id"`
	Position  Vec3    `json:"position"`
	Neighbors []int   `json:"neighbors"`
	Size      float64 `json:"size"`
}

// Edge is the directed pair From→To derived from From's neighbour list.
type Edge struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Reverse returns the pair with endpoints swapped.
func (e Edge) Reverse() Edge { return Edge{From: e.To, To: e.From} }

// GraphOption configures a Graph before its first node is added.
type GraphOption func(g *Graph)

// WithCapacity pre-sizes node storage for n nodes. Negative values are ignored.
func WithCapacity(n int) GraphOption {
	return func(g *Graph) {
		if n > 0 {
			g.nodes = make([]Node, 0, n)
			g.incoming = make([][]int, 0, n)
		}
	}
}

// WithPlanar marks the graph as two-dimensional. AddNode then forces Z to 0.
func WithPlanar() GraphOption {
	return func(g *Graph) { g.planar = true }
}

// Graph is the spatial connectivity graph.
//
// nodes[i].Neighbors holds the outgoing list of node i; incoming[i] mirrors
// it so that Adjacent can answer undirected queries without an O(E) scan.
type Graph struct {
	planar bool

	nodes     []Node
	incoming  [][]int
	edgeCount int
}

// NewGraph creates an empty Graph with the given options.
// Complexity: O(1) plus any pre-allocation requested by WithCapacity.
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{}
	for _, opt := range opts {
		opt(g)
	}

	return g
}
