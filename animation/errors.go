package animation

import "errors"

var (
	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("animation: invalid option supplied")

	// ErrGraphNil is returned if a nil graph or engine is passed.
	ErrGraphNil = errors.New("animation: graph or engine is nil")

	// ErrClockRegressed is returned by Advance when the clock moves backwards.
	ErrClockRegressed = errors.New("animation: clock moved backwards")

	// ErrNeedCurves is returned when HeadCurve is selected without WithCurves.
	ErrNeedCurves = errors.New("animation: curve heads need a geometry builder")
)
