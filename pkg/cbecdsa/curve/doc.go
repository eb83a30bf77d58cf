// Package curve is the curve registry and the point and scalar arithmetic
// shared by the signing, recovery and key-agreement packages.
//
// # Supported Curves
//
//   - P192 (NIST P-192 / secp192r1)
//   - P224 (NIST P-224 / secp224r1)
//   - P256 (NIST P-256 / secp256r1)
//   - P384 (NIST P-384 / secp384r1)
//   - P521 (NIST P-521 / secp521r1)
//   - SECP256K1 (Bitcoin curve)
//
// Curves are selected by registry name:
//
//	c, err := curve.Resolve("P256")
//	if err != nil {
//	    return err // wraps curve.ErrCurveNotFound
//	}
//
// # Backends
//
// The NIST curves P-224 through P-521 use crypto/elliptic, secp256k1 uses
// btcec, and P-192 runs on the generic elliptic.CurveParams formulas. All of
// them sit behind the same Curve methods, so callers never branch on the
// curve.
//
// # Common Operations
//
//	// Q = d*G
//	q := c.ScalarBaseMult(d)
//
//	// Tweak a key pair consistently
//	d2, err := c.TweakAdd(d, t)
//	q2, err := c.TweakAddPoint(q, t)
//
// Scalars are *big.Int values. math/big is not constant time; see the
// repository DESIGN.md for the threat model.
package curve
