// SPDX-License-Identifier: MIT
//
// File: methods.go
// Role: Node/edge lifecycle and read-only queries.
//
// Determinism:
//   - Edges() enumerates owners in index order and each owner's neighbours in
//     insertion order, so a graph built deterministically enumerates
//     deterministically.
//   - Adjacent() returns a sorted, de-duplicated slice.
//
// Ownership:
//   - Every query returns copies; callers may mutate returned slices freely.

package core

import (
	"fmt"
	"sort"
)

// Planar reports whether the graph was created WithPlanar.
func (g *Graph) Planar() bool { return g.planar }

// NodeCount returns the number of nodes.
// Complexity: O(1).
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of directed owner→neighbour pairs.
// Complexity: O(1).
func (g *Graph) EdgeCount() int { return g.edgeCount }

// HasNode reports whether id is a valid node index.
func (g *Graph) HasNode(id int) bool { return id >= 0 && id < len(g.nodes) }

// AddNode appends a node at pos and returns its index.
//
// Planar graphs force pos.Z to 0. A non-finite coordinate is rejected with
// ErrBadPosition and leaves the graph unchanged.
//
// Complexity: O(1) amortized.
func (g *Graph) AddNode(pos Vec3, size float64) (int, error) {
	if g.planar {
		pos.Z = 0
	}
	if !pos.IsFinite() {
		return -1, fmt.Errorf("AddNode: %+v: %w", pos, ErrBadPosition)
	}

	id := len(g.nodes)
	g.nodes = append(g.nodes, Node{ID: id, Position: pos, Size: size})
	g.incoming = append(g.incoming, nil)

	return id, nil
}

// Connect appends to to from's neighbour list.
//
// Errors:
//   - ErrNodeNotFound if either index is invalid.
//   - ErrLoopNotAllowed if from == to.
//   - ErrDuplicateNeighbor if to is already listed by from. The reverse pair
//     to→from is independent and allowed.
//
// Complexity: O(deg(from)).
func (g *Graph) Connect(from, to int) error {
	if !g.HasNode(from) {
		return fmt.Errorf("Connect: from=%d: %w", from, ErrNodeNotFound)
	}
	if !g.HasNode(to) {
		return fmt.Errorf("Connect: to=%d: %w", to, ErrNodeNotFound)
	}
	if from == to {
		return fmt.Errorf("Connect: %d→%d: %w", from, to, ErrLoopNotAllowed)
	}
	for _, nb := range g.nodes[from].Neighbors {
		if nb == to {
			return fmt.Errorf("Connect: %d→%d: %w", from, to, ErrDuplicateNeighbor)
		}
	}

	g.nodes[from].Neighbors = append(g.nodes[from].Neighbors, to)
	g.incoming[to] = append(g.incoming[to], from)
	g.edgeCount++

	return nil
}

// Node returns a copy of node id.
// Complexity: O(deg(id)) for the neighbour copy.
func (g *Graph) Node(id int) (Node, error) {
	if !g.HasNode(id) {
		return Node{}, fmt.Errorf("Node: id=%d: %w", id, ErrNodeNotFound)
	}
	n := g.nodes[id]
	n.Neighbors = append([]int(nil), n.Neighbors...)

	return n, nil
}

// Position returns the stored (undrifted) position of node id.
func (g *Graph) Position(id int) (Vec3, error) {
	if !g.HasNode(id) {
		return Vec3{}, fmt.Errorf("Position: id=%d: %w", id, ErrNodeNotFound)
	}

	return g.nodes[id].Position, nil
}

// Positions returns the stored positions of all nodes in index order.
// Complexity: O(V).
func (g *Graph) Positions() []Vec3 {
	out := make([]Vec3, len(g.nodes))
	for i := range g.nodes {
		out[i] = g.nodes[i].Position
	}

	return out
}

// Neighbors returns a copy of the outgoing neighbour list of id.
// Complexity: O(deg(id)).
func (g *Graph) Neighbors(id int) ([]int, error) {
	if !g.HasNode(id) {
		return nil, fmt.Errorf("Neighbors: id=%d: %w", id, ErrNodeNotFound)
	}

	return append([]int(nil), g.nodes[id].Neighbors...), nil
}

// Degree returns the outgoing degree of id, or 0 for an invalid index.
func (g *Graph) Degree(id int) int {
	if !g.HasNode(id) {
		return 0
	}

	return len(g.nodes[id].Neighbors)
}

// Adjacent returns every node connected to id in either direction, sorted
// ascending and without duplicates.
// Complexity: O((in+out) log(in+out)).
func (g *Graph) Adjacent(id int) ([]int, error) {
	if !g.HasNode(id) {
		return nil, fmt.Errorf("Adjacent: id=%d: %w", id, ErrNodeNotFound)
	}

	seen := make(map[int]struct{}, len(g.nodes[id].Neighbors)+len(g.incoming[id]))
	out := make([]int, 0, len(g.nodes[id].Neighbors)+len(g.incoming[id]))
	for _, list := range [][]int{g.nodes[id].Neighbors, g.incoming[id]} {
		for _, nb := range list {
			if _, dup := seen[nb]; dup {
				continue
			}
			seen[nb] = struct{}{}
			out = append(out, nb)
		}
	}
	sort.Ints(out)

	return out, nil
}

// HasEdge reports whether to appears in from's neighbour list.
// Complexity: O(deg(from)).
func (g *Graph) HasEdge(from, to int) bool {
	if !g.HasNode(from) {
		return false
	}
	for _, nb := range g.nodes[from].Neighbors {
		if nb == to {
			return true
		}
	}

	return false
}

// Edges returns every owner→neighbour pair, owners ascending, neighbours in
// insertion order.
// Complexity: O(E).
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, g.edgeCount)
	for i := range g.nodes {
		for _, nb := range g.nodes[i].Neighbors {
			out = append(out, Edge{From: i, To: nb})
		}
	}

	return out
}
