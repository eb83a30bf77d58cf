package curve

import (
	"encoding/asn1"
	"fmt"
)

// Curve represents a named short-Weierstrass curve supported by the engine.
// This is a closed enum; every switch over it is exhaustive.
type Curve int

// Supported curves.
const (
	Unknown   Curve = iota // Unknown or unsupported curve
	P192                   // NIST P-192 (secp192r1)
	P224                   // NIST P-224 (secp224r1)
	P256                   // NIST P-256 (secp256r1)
	P384                   // NIST P-384 (secp384r1)
	P521                   // NIST P-521 (secp521r1)
	Secp256k1              // Bitcoin secp256k1
)

// String returns a human-readable name for the curve.
func (c Curve) String() string {
	switch c {
	case P192:
		return "P-192"
	case P224:
		return "P-224"
	case P256:
		return "P-256"
	case P384:
		return "P-384"
	case P521:
		return "P-521"
	case Secp256k1:
		return "secp256k1"
	default:
		return "Unknown"
	}
}

// Name returns the registry name accepted by Resolve.
func (c Curve) Name() string {
	switch c {
	case P192:
		return "P192"
	case P224:
		return "P224"
	case P256:
		return "P256"
	case P384:
		return "P384"
	case P521:
		return "P521"
	case Secp256k1:
		return "SECP256K1"
	default:
		return ""
	}
}

// Curves returns every supported curve in registry order.
func Curves() []Curve {
	return []Curve{P192, P224, P256, P384, P521, Secp256k1}
}

// Resolve looks up a curve by its registry name. The lookup is
// case-sensitive; unknown names fail with ErrCurveNotFound.
func Resolve(name string) (Curve, error) {
	switch name {
	case "P192":
		return P192, nil
	case "P224":
		return P224, nil
	case "P256":
		return P256, nil
	case "P384":
		return P384, nil
	case "P521":
		return P521, nil
	case "SECP256K1":
		return Secp256k1, nil
	default:
		return Unknown, fmt.Errorf("%w: %q", ErrCurveNotFound, name)
	}
}

// FromOID maps a named-curve object identifier to a Curve.
func FromOID(oid asn1.ObjectIdentifier) (Curve, error) {
	for _, c := range Curves() {
		if c.Params().OID.Equal(oid) {
			return c, nil
		}
	}
	return Unknown, fmt.Errorf("%w: oid %s", ErrCurveNotFound, oid)
}

// Params returns the shared parameters for c, or nil for Unknown.
func (c Curve) Params() *Params {
	switch c {
	case P192:
		return p192
	case P224:
		return p224
	case P256:
		return p256
	case P384:
		return p384
	case P521:
		return p521
	case Secp256k1:
		return secp256k1
	default:
		return nil
	}
}

func (c Curve) mustParams() *Params {
	p := c.Params()
	if p == nil {
		panic("curve: operation on unknown curve")
	}
	return p
}
