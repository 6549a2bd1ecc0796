// Package geometry turns graph edges into renderable curves.
//
// Every edge becomes a quadratic Bézier curve whose control point is the
// chord midpoint displaced by a small random offset. The curve is sampled
// into S segments (S+1 points) and each sample carries a radius and an
// opacity derived from the fade law
//
//	Fade(t) = 1 − (2t − 1)²,  t ∈ [0,1]
//
// which is 0 at both endpoints and 1 at the midpoint. FadeCenter uses it
// directly; FadeEnds uses 1 − Fade(t) so the curve is brightest where it
// meets its nodes. A Range{Min,Max} maps the [0,1] value into world units.
//
// Build is pure: its output depends only on (start, end, offset, segments)
// and the profile, so a 2D line renderer and a 3D tube renderer receive
// identical samples. Builder is the only stateful type: it draws one offset
// per edge, in core.Graph.Edges() order, from a seeded RNG and keeps it for
// the graph's lifetime.
//
// Complexity: Build is O(S); NewBuilder is O(E); All is O(E·S).
package geometry
