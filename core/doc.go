// Package core provides the spatial graph that every other nexus package
// works on: a dense, index-addressed set of nodes with fixed positions and
// per-node neighbour lists.
//
// The Graph G = (V,E) has these properties:
//
//   - Nodes are addressed by their integer index 0..N-1 (Node.ID == index).
//   - Each node owns an ordered neighbour list; an edge is the directed pair
//     owner→neighbour. Renderers treat edges as undirected.
//   - A→B and B→A are independent entries and are not de-duplicated.
//   - Self-loops and repeated entries in one node's list are rejected.
//   - Positions are fixed once the node is added. Cosmetic motion lives in
//     the animation package as a derived display position.
//
// Core Methods:
//
//	// Construction
//	NewGraph(opts ...GraphOption) *Graph
//	AddNode(pos Vec3, size float64) (int, error)   // O(1) amortized
//	Connect(from, to int) error                    // O(deg(from))
//
//	// Queries
//	NodeCount() int / EdgeCount() int               // O(1)
//	Node(id int) (Node, error)                      // O(deg)
//	Neighbors(id int) ([]int, error)                // O(deg)
//	Adjacent(id int) ([]int, error)                 // O(in+out) sorted union
//	HasEdge(from, to int) bool                      // O(deg(from))
//	Edges() []Edge                                  // O(E), owner order
//
// Concurrency:
//
//	Graph carries no locks. It is built once, eagerly, by a single goroutine
//	(see package builder) and is read-only afterwards, which makes concurrent
//	readers safe. Do not call AddNode/Connect after publishing a graph.
//
// Errors:
//
//	ErrNodeNotFound       - index outside [0, N).
//	ErrLoopNotAllowed     - Connect(i, i).
//	ErrDuplicateNeighbor  - neighbour already listed for that owner.
//	ErrBadPosition        - NaN or infinite coordinate.
package core
