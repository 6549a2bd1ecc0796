// Package nexus is the animated "neural network" behind the Atom 5 site:
// a seeded proximity graph of glowing nodes, curved edges, and pulse
// cascades that ripple out from a triggered node.
//
// What is in the box?
//
//	A deterministic engine plus the thin surfaces that host it:
//		• Graph generation: nodes in a cube, nearest-neighbour links
//		• Edge geometry: quadratic Bézier curves with fade profiles
//		• Propagation: BFS cascades with Bernoulli branching and stagger
//		• Animation: pulse phases, glow, node drift, expiry windows
//		• Rendering: SVG, terminal and websocket adapters behind a guard
//		• Site: contact relay, navigation state, scene API, metrics
//
// Same seed, same config ⇒ same graph, same curves, same cascades.
//
// Packages:
//
//	core/        Vec3, Node, Edge and the index-based Graph
//	builder/     Proximity and Complete constructors, seeded options
//	geometry/    curves, sampling, fade profiles, per-edge geometry cache
//	propagation/ cascade engine producing scheduled pulses
//	animation/   AnimationState: phases, heads, drift, expiry, frames
//	dfs/         components and reachability of the generated graph
//	scene/       scene assembly, the tick Driver, spontaneous triggers
//	render/      Renderer adapters and the fallback Guard
//	contact/     contact-form validation and mail relay
//	site/        HTTP surface (JSON API, websocket frames, /metrics)
//	config/      YAML + environment configuration with validation
//	logging/     structured JSON logger
//	metrics/     Prometheus registry
//
// Binaries live under cmd/: nexus-server, nexus-tui and nexus-svg.
//
// Quick start:
//
//	sc, _ := scene.Build(scene.Params{Graph: builder.ProximityParams{
//		NodeCount: 100, RegionHalfExtent: 7.5, MaxConnectionDistance: 8,
//		MinConnections: 4, MaxConnections: 6,
//	}, Seed: 1})
//	d, _ := scene.NewDriver(sc)
//	_ = d.Trigger(0, scene.SourceAPI)
//	frame := d.Step(0.5)
package nexus
