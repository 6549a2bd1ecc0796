// Package builder defines shared constants used by graph constructors.
package builder

//-----------------------------------------------------------------------------
// Builder Method Name Constants
//   used to prefix errors with the constructor name for context.
//-----------------------------------------------------------------------------

const (
	// MethodProximity is the canonical name for the Proximity constructor.
	MethodProximity = "Proximity"
	// MethodComplete is the canonical name for the Complete constructor.
	MethodComplete = "Complete"
)

//-----------------------------------------------------------------------------
// Minimum sizes
//-----------------------------------------------------------------------------

// MinProximityNodes is the smallest accepted node count. Zero is valid and
// yields an empty graph.
const MinProximityNodes = 0

// MinCompleteNodes is the smallest accepted node count for Complete.
const MinCompleteNodes = 0
