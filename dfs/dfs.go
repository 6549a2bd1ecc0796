// SPDX-License-Identifier: MIT
// Package: nexus/dfs
//
// dfs.go - Preorder and Components.
//
// Contract:
//   - g must be non-nil (else ErrGraphNil).
//   - Preorder: start must exist (else ErrStartNotFound).
//   - Directed: follow stored edges only. Undirected: also follow incoming
//     edges, which is how connectivity of an asymmetric graph is judged.
//
// Complexity:
//   - Time: O(V + E). Undirected mode builds a reverse index in O(V + E).
//   - Space: O(V).

package dfs

import (
	"errors"
	"fmt"

	"github.com/A5-Website/atom-5-nexus/core"
)

var (
	// ErrGraphNil is returned when the graph argument is nil.
	ErrGraphNil = errors.New("dfs: graph is nil")
	// ErrStartNotFound is returned when the start node does not exist.
	ErrStartNotFound = errors.New("dfs: start node not found")
)

// Mode selects which edges a traversal follows.
type Mode int

const (
	// Directed follows A→B edges from A only.
	Directed Mode = iota
	// Undirected treats every edge as two-way.
	Undirected
)

// adjacency returns the successor lists used by mode.
func adjacency(g *core.Graph, mode Mode) [][]int {
	n := g.NodeCount()
	adj := make([][]int, n)
	for i := 0; i < n; i++ {
		adj[i], _ = g.Neighbors(i)
	}
	if mode == Undirected {
		out := make([][]int, n)
		for i := range adj {
			out[i] = append(out[i], adj[i]...)
		}
		for from := range adj {
			for _, to := range adj[from] {
				out[to] = append(out[to], from)
			}
		}
		adj = out
	}
	return adj
}

// walk appends to order every unvisited node reachable from root.
func walk(adj [][]int, root int, visited []bool, order []int) []int {
	stack := []int{root}
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[u] {
			continue
		}
		visited[u] = true
		order = append(order, u)
		// push in reverse so the first neighbour is visited first
		for i := len(adj[u]) - 1; i >= 0; i-- {
			if v := adj[u][i]; !visited[v] {
				stack = append(stack, v)
			}
		}
	}
	return order
}

// Preorder returns the nodes reachable from start in depth-first preorder.
func Preorder(g *core.Graph, start int, mode Mode) ([]int, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if !g.HasNode(start) {
		return nil, fmt.Errorf("dfs: Preorder(%d): %w", start, ErrStartNotFound)
	}
	adj := adjacency(g, mode)
	return walk(adj, start, make([]bool, len(adj)), nil), nil
}

// Components returns the weakly connected components of g, each in
// preorder from its smallest node, ordered by that node.
func Components(g *core.Graph) ([][]int, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	adj := adjacency(g, Undirected)
	visited := make([]bool, len(adj))

	var comps [][]int
	for root := range adj {
		if visited[root] {
			continue
		}
		comps = append(comps, walk(adj, root, visited, nil))
	}
	return comps, nil
}

// Isolated returns the nodes with no incoming and no outgoing edges.
func Isolated(g *core.Graph) ([]int, error) {
	comps, err := Components(g)
	if err != nil {
		return nil, err
	}
	var out []int
	for _, c := range comps {
		if len(c) == 1 {
			out = append(out, c[0])
		}
	}
	return out, nil
}
