package ecdsa

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/coinbase/cb-ecdsa-go/pkg/cbecdsa/curve"
)

var (
	// ErrSignatureInvalidRange indicates r or s outside [1, N)
	ErrSignatureInvalidRange = errors.New("ecdsa: signature out of range")

	// ErrInvalidDigest indicates an empty digest
	ErrInvalidDigest = errors.New("ecdsa: empty digest")

	// ErrInvalidRecoveryID indicates a recovery id outside 0..3
	ErrInvalidRecoveryID = errors.New("ecdsa: invalid recovery id")
)

// maxNonceCandidates bounds the signing loop. Each rejection has negligible
// probability on every supported curve.
const maxNonceCandidates = 64

// RecoveryID identifies the ephemeral point R among the candidates sharing
// x-coordinate r. Bit 0 is the parity of R.y; bit 1 is set when R.x >= N.
type RecoveryID byte

// Valid reports whether id is in 0..3.
func (id RecoveryID) Valid() bool {
	return id <= 3
}

// Signature is an ECDSA (r, s) pair.
type Signature struct {
	R *big.Int
	S *big.Int
}

// Validate checks that both components are in [1, N).
func (sig *Signature) Validate(c curve.Curve) error {
	if sig == nil || !c.ValidScalar(sig.R) || !c.ValidScalar(sig.S) {
		return ErrSignatureInvalidRange
	}
	return nil
}

// IsLowS reports whether s <= N/2.
func (sig *Signature) IsLowS(c curve.Curve) bool {
	return !c.IsHighS(sig.S)
}

// Normalize returns the low-S form of sig.
func (sig *Signature) Normalize(c curve.Curve) *Signature {
	out := &Signature{R: new(big.Int).Set(sig.R), S: new(big.Int).Set(sig.S)}
	if c.IsHighS(out.S) {
		out.S = c.NegateScalar(out.S)
	}
	return out
}

// Sign produces a deterministic low-S signature over digest with private
// scalar d. Digests longer than the order are truncated to its bit length.
func Sign(c curve.Curve, digest []byte, d *big.Int) (*Signature, error) {
	sig, _, err := SignRecoverable(c, digest, d)
	return sig, err
}

// SignRecoverable is Sign that also returns the recovery id of the emitted
// (normalized) signature.
func SignRecoverable(c curve.Curve, digest []byte, d *big.Int) (*Signature, RecoveryID, error) {
	if !c.ValidScalar(d) {
		return nil, 0, curve.ErrInvalidScalar
	}
	if len(digest) == 0 {
		return nil, 0, ErrInvalidDigest
	}
	n := c.Params().N
	e := hashToScalar(c, digest)

	nonces := NewNonceGenerator(c, d, digest)
	defer nonces.Close()

	for i := 0; i < maxNonceCandidates; i++ {
		k := nonces.Next()

		rp := c.ScalarBaseMult(k)
		r := new(big.Int).Mod(rp.X, n)
		if r.Sign() == 0 {
			continue
		}

		s := new(big.Int).Mul(r, d)
		s.Add(s, e)
		s.Mul(s, c.Inverse(k))
		s.Mod(s, n)
		if s.Sign() == 0 {
			continue
		}

		var id RecoveryID
		if rp.Y.Bit(0) == 1 {
			id |= 1
		}
		if rp.X.Cmp(n) >= 0 {
			id |= 2
		}
		if c.IsHighS(s) {
			s.Sub(n, s)
			id ^= 1
		}
		return &Signature{R: r, S: s}, id, nil
	}
	return nil, 0, fmt.Errorf("ecdsa: no valid nonce after %d candidates", maxNonceCandidates)
}

// VerifyOptions carries the verification policy.
type VerifyOptions struct {
	// AllowHighS accepts signatures with s > N/2. Off by default so that
	// each message and key admit a single valid encoding.
	AllowHighS bool
}

// Verify reports whether sig is a valid signature of digest under pub.
// Invalid material of any kind yields false, never an error.
func Verify(c curve.Curve, digest []byte, sig *Signature, pub curve.Point, opts VerifyOptions) bool {
	if len(digest) == 0 || sig.Validate(c) != nil {
		return false
	}
	if !opts.AllowHighS && c.IsHighS(sig.S) {
		return false
	}
	if c.Validate(pub) != nil {
		return false
	}
	n := c.Params().N
	e := hashToScalar(c, digest)
	w := c.Inverse(sig.S)

	u1 := new(big.Int).Mul(e, w)
	u1.Mod(u1, n)
	u2 := new(big.Int).Mul(sig.R, w)
	u2.Mod(u2, n)

	p := c.CombinedMult(pub, u1, u2)
	if p.IsInfinity() {
		return false
	}
	v := new(big.Int).Mod(p.X, n)
	return v.Cmp(sig.R) == 0
}

// Recover reconstructs the public key that produced sig over digest. The
// boolean is false when no key can be recovered for this id; that is an
// expected outcome for attacker-supplied input, not an error.
func Recover(c curve.Curve, digest []byte, sig *Signature, id RecoveryID) (curve.Point, bool) {
	if !id.Valid() || len(digest) == 0 || sig.Validate(c) != nil {
		return curve.Point{}, false
	}
	params := c.Params()
	n := params.N

	x := new(big.Int).Set(sig.R)
	if id&2 != 0 {
		x.Add(x, n)
	}
	if x.Cmp(params.P) >= 0 {
		return curve.Point{}, false
	}
	rp, err := c.Decompress(x, id&1 == 1)
	if err != nil {
		return curve.Point{}, false
	}

	// Q = r^-1 (sR - eG)
	e := hashToScalar(c, digest)
	rInv := c.Inverse(sig.R)
	u1 := new(big.Int).Mul(e, rInv)
	u1.Neg(u1)
	u1.Mod(u1, n)
	u2 := new(big.Int).Mul(sig.S, rInv)
	u2.Mod(u2, n)

	q := c.CombinedMult(rp, u1, u2)
	if q.IsInfinity() {
		return curve.Point{}, false
	}
	if !Verify(c, digest, sig, q, VerifyOptions{AllowHighS: true}) {
		return curve.Point{}, false
	}
	return q, true
}
