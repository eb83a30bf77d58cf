package curve

import (
	"fmt"
	"math/big"
)

// Point is an affine curve point. The zero value is the point at infinity.
//
// Arithmetic never hands an unvalidated point to the backend curve; callers
// that build points from untrusted coordinates must go through Validate or
// the codec package first.
type Point struct {
	X *big.Int
	Y *big.Int
}

// Infinity returns the identity element.
func Infinity() Point {
	return Point{}
}

// IsInfinity reports whether p is the identity element.
func (p Point) IsInfinity() bool {
	return p.X == nil || p.Y == nil
}

// Clone returns a deep copy of p.
func (p Point) Clone() Point {
	if p.IsInfinity() {
		return Point{}
	}
	return Point{X: new(big.Int).Set(p.X), Y: new(big.Int).Set(p.Y)}
}

// Equal reports whether p and q are the same point.
func (p Point) Equal(q Point) bool {
	if p.IsInfinity() || q.IsInfinity() {
		return p.IsInfinity() && q.IsInfinity()
	}
	return p.X.Cmp(q.X) == 0 && p.Y.Cmp(q.Y) == 0
}

// Generator returns the base point G.
func (c Curve) Generator() Point {
	p := c.mustParams()
	return Point{X: new(big.Int).Set(p.Gx), Y: new(big.Int).Set(p.Gy)}
}

// IsOnCurve reports whether p is a finite point with coordinates in [0, P)
// satisfying y^2 = x^3 + ax + b.
func (c Curve) IsOnCurve(p Point) bool {
	if p.IsInfinity() {
		return false
	}
	params := c.mustParams()
	if p.X.Sign() < 0 || p.X.Cmp(params.P) >= 0 || p.Y.Sign() < 0 || p.Y.Cmp(params.P) >= 0 {
		return false
	}
	lhs := new(big.Int).Mul(p.Y, p.Y)
	lhs.Mod(lhs, params.P)
	return lhs.Cmp(c.rhs(p.X)) == 0
}

// Validate returns nil if p is a usable public point.
func (c Curve) Validate(p Point) error {
	if p.IsInfinity() {
		return ErrPointAtInfinity
	}
	if !c.IsOnCurve(p) {
		return ErrPointNotOnCurve
	}
	return nil
}

// rhs computes x^3 + ax + b mod P.
func (c Curve) rhs(x *big.Int) *big.Int {
	params := c.mustParams()
	y2 := new(big.Int).Mul(x, x)
	y2.Add(y2, params.A)
	y2.Mul(y2, x)
	y2.Add(y2, params.B)
	return y2.Mod(y2, params.P)
}

// Decompress recovers the point with the given x-coordinate and y parity.
// It fails with ErrInvalidPoint when x^3 + ax + b has no square root.
func (c Curve) Decompress(x *big.Int, odd bool) (Point, error) {
	params := c.mustParams()
	if x.Sign() < 0 || x.Cmp(params.P) >= 0 {
		return Point{}, fmt.Errorf("%w: x out of field range", ErrInvalidPoint)
	}
	y := new(big.Int).ModSqrt(c.rhs(x), params.P)
	if y == nil {
		return Point{}, ErrInvalidPoint
	}
	if odd != (y.Bit(0) == 1) {
		if y.Sign() == 0 {
			return Point{}, ErrInvalidPoint
		}
		y.Sub(params.P, y)
	}
	return Point{X: new(big.Int).Set(x), Y: y}, nil
}

// Negate returns -p.
func (c Curve) Negate(p Point) Point {
	if p.IsInfinity() {
		return Point{}
	}
	params := c.mustParams()
	y := new(big.Int).Sub(params.P, p.Y)
	y.Mod(y, params.P)
	return Point{X: new(big.Int).Set(p.X), Y: y}
}

// Add returns p + q. Both inputs must be on the curve or the identity.
func (c Curve) Add(p, q Point) Point {
	if p.IsInfinity() {
		return q.Clone()
	}
	if q.IsInfinity() {
		return p.Clone()
	}
	if p.X.Cmp(q.X) == 0 && p.Y.Cmp(q.Y) != 0 {
		return Point{}
	}
	x, y := c.mustParams().backend.Add(p.X, p.Y, q.X, q.Y)
	return fromBackend(x, y)
}

// ScalarMult returns k*p. k is reduced modulo N.
func (c Curve) ScalarMult(p Point, k *big.Int) Point {
	params := c.mustParams()
	kb, ok := params.scalarBytes(k)
	if !ok || p.IsInfinity() {
		return Point{}
	}
	defer zeroizeBytes(kb)
	x, y := params.backend.ScalarMult(p.X, p.Y, kb)
	return fromBackend(x, y)
}

// ScalarBaseMult returns k*G. k is reduced modulo N.
func (c Curve) ScalarBaseMult(k *big.Int) Point {
	params := c.mustParams()
	kb, ok := params.scalarBytes(k)
	if !ok {
		return Point{}
	}
	defer zeroizeBytes(kb)
	x, y := params.backend.ScalarBaseMult(kb)
	return fromBackend(x, y)
}

// CombinedMult returns u1*G + u2*p.
func (c Curve) CombinedMult(p Point, u1, u2 *big.Int) Point {
	return c.Add(c.ScalarBaseMult(u1), c.ScalarMult(p, u2))
}

// scalarBytes reduces k mod N and encodes it at ScalarLen. It reports false
// for a zero result, which maps to the identity.
func (p *Params) scalarBytes(k *big.Int) ([]byte, bool) {
	r := new(big.Int).Mod(k, p.N)
	if r.Sign() == 0 {
		return nil, false
	}
	return r.FillBytes(make([]byte, p.ScalarLen)), true
}

// Backends report the identity as (0, 0), which is never on these curves.
func fromBackend(x, y *big.Int) Point {
	if x.Sign() == 0 && y.Sign() == 0 {
		return Point{}
	}
	return Point{X: x, Y: y}
}
