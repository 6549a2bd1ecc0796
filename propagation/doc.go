// Package propagation turns a single node trigger into a cascade of pulses
// that spread outward through the proximity graph.
//
// What
//
//   - Trigger(g, node, now) performs a breadth-first traversal from node,
//     bounded by MaxGenerations hops.
//   - At every dequeued node, each unvisited neighbour independently receives
//     a pulse with probability FlowProbability (Bernoulli per edge).
//   - Pulses of generation k+1 start k·StaggerInterval after the trigger, so
//     the cascade visibly ripples outward.
//   - A neighbour is visited at most once per trigger; only neighbours that
//     actually received a pulse continue the cascade.
//
// Cleanup window
//
//	Every batch of pulses is removed together after Window() seconds. The
//	window must cover the last staggered pulse, so it is never shorter than
//	MaxGenerations·StaggerInterval + Duration. A shorter configured
//	TriggerDuration is raised to that value and a warning is logged.
//
// Determinism
//
//	Neighbours are visited in the graph's stored order and Bernoulli draws
//	come from the Engine's own *rand.Rand, so a seeded Engine replays the same
//	cascades for the same trigger sequence.
//
// Complexity (V = nodes, E = edges)
//
//   - Time:   O(V + E) per trigger
//   - Memory: O(V) for the queue and visited set
//
// Usage
//
//	eng, err := propagation.New(
//	    propagation.WithSeed(42),
//	    propagation.WithFlowProbability(0.7),
//	    propagation.WithMaxGenerations(3),
//	)
//	pulses, err := eng.Trigger(g, 0, clock)
package propagation
