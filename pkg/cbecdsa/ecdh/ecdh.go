// Package ecdh computes raw elliptic-curve Diffie-Hellman shared points.
//
// The result is the point d*Q itself. Callers must pass it through a KDF
// before using it as key material; no hashing is done here.
package ecdh

import (
	"math/big"

	"github.com/coinbase/cb-ecdsa-go/pkg/cbecdsa/curve"
)

// SharedPoint returns d * peer after validating both inputs. An identity
// result fails with curve.ErrPointAtInfinity.
func SharedPoint(c curve.Curve, d *big.Int, peer curve.Point) (curve.Point, error) {
	if !c.ValidScalar(d) {
		return curve.Point{}, curve.ErrInvalidScalar
	}
	if err := c.Validate(peer); err != nil {
		return curve.Point{}, err
	}
	s := c.ScalarMult(peer, d)
	if s.IsInfinity() {
		return curve.Point{}, curve.ErrPointAtInfinity
	}
	return s, nil
}
