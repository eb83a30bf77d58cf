package curve

import "errors"

var (
	// ErrCurveNotFound indicates the curve name is not in the registry
	ErrCurveNotFound = errors.New("curve: curve not found")

	// ErrInvalidScalar indicates a scalar outside [1, order)
	ErrInvalidScalar = errors.New("curve: invalid scalar")

	// ErrPointNotOnCurve indicates coordinates that do not satisfy the curve equation
	ErrPointNotOnCurve = errors.New("curve: point not on curve")

	// ErrPointAtInfinity indicates the identity element where a finite point is required
	ErrPointAtInfinity = errors.New("curve: point at infinity")

	// ErrInvalidPoint indicates an x-coordinate with no matching y
	ErrInvalidPoint = errors.New("curve: invalid point")

	// ErrTweakOverflow indicates a tweak whose result is zero or the identity
	ErrTweakOverflow = errors.New("curve: tweak overflow")

	// ErrRandomSource indicates a missing or failing random source
	ErrRandomSource = errors.New("curve: random source failed")
)
