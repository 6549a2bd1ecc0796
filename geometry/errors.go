// SPDX-License-Identifier: MIT
package geometry

import "errors"

var (
	// ErrBadSegments is returned for a segment count below 1.
	ErrBadSegments = errors.New("geometry: segments must be ≥ 1")

	// ErrEdgeNotFound is returned when a Builder is asked for an edge the
	// graph does not contain.
	ErrEdgeNotFound = errors.New("geometry: edge not found")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("geometry: invalid option supplied")

	// ErrGraphNil is returned if a nil graph pointer is passed.
	ErrGraphNil = errors.New("geometry: graph is nil")
)
