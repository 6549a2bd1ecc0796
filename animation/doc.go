// Package animation owns the time-dependent state of a scene: the animation
// clock, the active pulse set, the batch expiry schedule and per-node drift.
//
// State is changed only through its transition functions:
//
//	Trigger(node)        start a cascade at the current clock
//	Advance(clock)       move the clock forward and recompute drift
//	ExpirePulses(clock)  drop every batch whose cleanup time has passed
//
// Frame() returns a snapshot that never aliases mutable state. A pulse moves
// through Scheduled → Active → Expired purely as a function of the clock;
// removal from the active set is the separate batch cleanup, so an Expired
// pulse can appear (invisible) in a few frames before it is dropped.
//
// State is not safe for concurrent use. The scene package serialises access.
package animation
