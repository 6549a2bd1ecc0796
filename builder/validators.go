// Package builder provides validation helpers to enforce parameter
// contracts in Constructor factories.
//
// Each function returns a sentinel-wrapped error when its precondition is
// violated, prefixed with the constructor method name.
package builder

import (
	"fmt"
	"math"
)

// validateMin ensures that got ≥ min, wrapping ErrTooFewNodes otherwise.
// Complexity: O(1).
func validateMin(method string, got, min int) error {
	if got < min {
		return fmt.Errorf("%s: n=%d < min=%d: %w", method, got, min, ErrTooFewNodes)
	}

	return nil
}

// validateCapRange ensures 0 ≤ lo ≤ hi.
// Complexity: O(1).
func validateCapRange(method string, lo, hi int) error {
	if lo < 0 || hi < lo {
		return fmt.Errorf("%s: cap range [%d,%d]: %w", method, lo, hi, ErrBadCapRange)
	}

	return nil
}

// validateNonNegative ensures v is a finite number ≥ 0, wrapping sentinel.
// Complexity: O(1).
func validateNonNegative(method, field string, v float64, sentinel error) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("%s: %s=%g: %w", method, field, v, sentinel)
	}

	return nil
}
