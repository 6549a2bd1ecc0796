// SPDX-License-Identifier: MIT
package geometry

import "golang.org/x/exp/constraints"

// Clamp limits v to [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}

// Mix linearly interpolates between a and b at t without clamping.
func Mix[T constraints.Float](a, b, t T) T {
	return a + (b-a)*t
}
