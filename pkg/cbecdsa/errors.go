package cbecdsa

import (
	"errors"
	"fmt"

	"github.com/coinbase/cb-ecdsa-go/pkg/cbecdsa/codec"
	"github.com/coinbase/cb-ecdsa-go/pkg/cbecdsa/curve"
	"github.com/coinbase/cb-ecdsa-go/pkg/cbecdsa/ecdsa"
)

// Sentinel errors. Every error returned by an Engine method is an *Error
// wrapping at least one of these; match with errors.Is.
var (
	ErrCurveNotFound         = curve.ErrCurveNotFound
	ErrInvalidLength         = codec.ErrInvalidLength
	ErrInvalidEncoding       = codec.ErrInvalidEncoding
	ErrInvalidScalar         = curve.ErrInvalidScalar
	ErrPointNotOnCurve       = curve.ErrPointNotOnCurve
	ErrPointAtInfinity       = curve.ErrPointAtInfinity
	ErrInvalidPoint          = curve.ErrInvalidPoint
	ErrTweakOverflow         = curve.ErrTweakOverflow
	ErrSignatureInvalidRange = ecdsa.ErrSignatureInvalidRange
	ErrInvalidRecoveryID     = ecdsa.ErrInvalidRecoveryID
	ErrRandomSource          = curve.ErrRandomSource
	ErrNilParams             = errors.New("cbecdsa: nil params")
)

// Error wraps an underlying error with the failing operation and curve name.
type Error struct {
	Op    string // Operation that failed
	Curve string // Curve name as supplied by the caller
	Err   error  // Underlying error
}

func (e *Error) Error() string {
	if e.Curve == "" {
		return fmt.Sprintf("cbecdsa.%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("cbecdsa.%s(%s): %v", e.Op, e.Curve, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
