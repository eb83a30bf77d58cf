package curve

import (
	"crypto"
	"crypto/elliptic"
	_ "crypto/sha256" // registers SHA-224 and SHA-256
	_ "crypto/sha512" // registers SHA-384 and SHA-512
	"encoding/asn1"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
)

// Params holds the immutable domain parameters of a curve together with the
// encoding sizes derived from them.
//
// The exported *big.Int fields are shared by every caller.
// IMPORTANT: Do not mutate them; copy with new(big.Int).Set first.
type Params struct {
	Curve Curve

	P  *big.Int // field prime
	N  *big.Int // group order
	A  *big.Int // a coefficient, reduced mod P
	B  *big.Int // b coefficient
	Gx *big.Int
	Gy *big.Int
	H  int // cofactor

	BitSize   int // bit length of N
	ScalarLen int // bytes needed for a scalar mod N
	FieldLen  int // bytes needed for a field element mod P

	OID  asn1.ObjectIdentifier // SEC 2 named-curve identifier
	Hash crypto.Hash           // HMAC hash for deterministic nonces

	backend elliptic.Curve
	halfN   *big.Int
}

// HalfOrder returns floor(N/2). Signatures with s above it are high-S.
func (p *Params) HalfOrder() *big.Int {
	return new(big.Int).Set(p.halfN)
}

var (
	oidP192      = asn1.ObjectIdentifier{1, 2, 840, 10045, 3, 1, 1}
	oidP224      = asn1.ObjectIdentifier{1, 3, 132, 0, 33}
	oidP256      = asn1.ObjectIdentifier{1, 2, 840, 10045, 3, 1, 7}
	oidP384      = asn1.ObjectIdentifier{1, 3, 132, 0, 34}
	oidP521      = asn1.ObjectIdentifier{1, 3, 132, 0, 35}
	oidSecp256k1 = asn1.ObjectIdentifier{1, 3, 132, 0, 10}
)

var (
	p192      = newParams(P192, p192Curve(), minusThree, oidP192, crypto.SHA256)
	p224      = newParams(P224, elliptic.P224(), minusThree, oidP224, crypto.SHA224)
	p256      = newParams(P256, elliptic.P256(), minusThree, oidP256, crypto.SHA256)
	p384      = newParams(P384, elliptic.P384(), minusThree, oidP384, crypto.SHA384)
	p521      = newParams(P521, elliptic.P521(), minusThree, oidP521, crypto.SHA512)
	secp256k1 = newParams(Secp256k1, btcec.S256(), big.NewInt(0), oidSecp256k1, crypto.SHA256)
)

var minusThree = big.NewInt(-3)

// p192Curve builds NIST P-192 on the generic CurveParams arithmetic, which
// assumes a = -3 and therefore fits this curve. The standard library does not
// ship P-192.
func p192Curve() elliptic.Curve {
	return &elliptic.CurveParams{
		Name:    "P-192",
		BitSize: 192,
		P:       hexInt("fffffffffffffffffffffffffffffffeffffffffffffffff"),
		N:       hexInt("ffffffffffffffffffffffff99def836146bc9b1b4d22831"),
		B:       hexInt("64210519e59c80e70fa7e9ab72243049feb8deecc146b9b1"),
		Gx:      hexInt("188da80eb03090f67cbf20eb43a18800f4ff0afd82ff1012"),
		Gy:      hexInt("07192b95ffc8da78631011ed6b24cdd573f977a11e794811"),
	}
}

func newParams(c Curve, backend elliptic.Curve, a *big.Int, oid asn1.ObjectIdentifier, h crypto.Hash) *Params {
	cp := backend.Params()
	p := &Params{
		Curve:   c,
		P:       new(big.Int).Set(cp.P),
		N:       new(big.Int).Set(cp.N),
		A:       new(big.Int).Mod(a, cp.P),
		B:       new(big.Int).Set(cp.B),
		Gx:      new(big.Int).Set(cp.Gx),
		Gy:      new(big.Int).Set(cp.Gy),
		H:       1,
		OID:     oid,
		Hash:    h,
		backend: backend,
	}
	p.BitSize = p.N.BitLen()
	p.ScalarLen = (p.BitSize + 7) / 8
	p.FieldLen = (p.P.BitLen() + 7) / 8
	p.halfN = new(big.Int).Rsh(p.N, 1)
	return p
}

func hexInt(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("curve: bad constant " + s)
	}
	return v
}
