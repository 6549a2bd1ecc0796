// Package dfs implements depth-first traversals over core.Graph.
//
// Proximity graphs are not spanning structures: a scene usually has a few
// isolated islands, and a trigger on one island never reaches another.
// Components reports those islands; Preorder walks the nodes a cascade
// could reach from one root, ignoring generation limits.
//
// Traversals are iterative (explicit stack), so deep chains cannot overflow
// the goroutine stack. Neighbours are visited in stored order, which makes
// every result deterministic for a given graph.
package dfs
