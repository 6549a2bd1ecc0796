// Package builder generates the node/edge structure of the network scene.
//
// The package follows the functional-options pattern:
//
//   - BuilderOption mutates an internal builderConfig before use:
//     – WithSeed / WithRand: explicit RNG (no global randomness).
//     – WithNodeSize:       visual size range of generated nodes.
//   - Constructor is a deterministic graph mutation; BuildGraph applies a
//     list of them to a fresh core.Graph.
//   - Constructors:
//     – Proximity(p):       random placement in a cube plus a greedy
//                           nearest-neighbour proximity graph.
//     – Complete(n, e):     every ordered pair connected; test fixture.
//   - Build(p, seed) is the one-call proximity form used by the scene layer.
//
// Guarantees:
//
//   - Same parameters and seed ⇒ identical graph (positions, neighbour order).
//   - Every neighbour index is valid, no node lists itself, and a node's
//     out-degree never exceeds MaxConnections.
//   - Every proximity edge is strictly shorter than MaxConnectionDistance.
//   - Fast-fail on invalid option parameters via panics in option constructors;
//     constructors themselves return sentinel errors (see errors.go).
//
// Degenerate inputs are accepted: N = 0 yields an empty graph and D = 0
// yields nodes without edges.
package builder
