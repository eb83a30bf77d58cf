package ecdsa

import (
	"crypto/hmac"
	"hash"
	"math/big"
	"runtime"

	"github.com/coinbase/cb-ecdsa-go/pkg/cbecdsa/curve"
)

// NonceGenerator produces the RFC 6979 section 3.2 candidate sequence for one
// (private key, digest) pair. It is not safe for concurrent use; each signing
// call owns its own generator.
type NonceGenerator struct {
	c      curve.Curve
	newH   func() hash.Hash
	k, v   []byte
	primed bool
}

// NewNonceGenerator seeds the HMAC-DRBG with int2octets(d) and
// bits2octets(digest), using the curve's nonce hash.
func NewNonceGenerator(c curve.Curve, d *big.Int, digest []byte) *NonceGenerator {
	params := c.Params()
	g := &NonceGenerator{c: c, newH: params.Hash.New}
	size := params.Hash.Size()

	g.v = make([]byte, size)
	for i := range g.v {
		g.v[i] = 0x01
	}
	g.k = make([]byte, size)

	x := c.ScalarBytes(d)
	defer zeroizeBytes(x)
	h1 := bits2octets(c, digest)
	defer zeroizeBytes(h1)

	g.k = g.mac(g.k, g.v, []byte{0x00}, x, h1)
	g.v = g.mac(g.k, g.v)
	g.k = g.mac(g.k, g.v, []byte{0x01}, x, h1)
	g.v = g.mac(g.k, g.v)
	return g
}

// Next returns the next candidate nonce in [1, N). Every call after the first
// applies the K = HMAC_K(V || 0x00), V = HMAC_K(V) update, so a caller that
// rejects a candidate (r == 0 or s == 0) simply calls Next again.
func (g *NonceGenerator) Next() *big.Int {
	params := g.c.Params()
	for {
		if g.primed {
			g.k = g.mac(g.k, g.v, []byte{0x00})
			g.v = g.mac(g.k, g.v)
		}
		g.primed = true

		var t []byte
		for len(t) < params.ScalarLen {
			g.v = g.mac(g.k, g.v)
			t = append(t, g.v...)
		}
		k := bits2int(g.c, t)
		zeroizeBytes(t)
		if g.c.ValidScalar(k) {
			return k
		}
	}
}

// Close zeroizes the DRBG state.
func (g *NonceGenerator) Close() {
	zeroizeBytes(g.k)
	zeroizeBytes(g.v)
}

func (g *NonceGenerator) mac(key []byte, parts ...[]byte) []byte {
	m := hmac.New(g.newH, key)
	for _, p := range parts {
		m.Write(p)
	}
	return m.Sum(nil)
}

// bits2int keeps the leftmost BitSize bits of b.
func bits2int(c curve.Curve, b []byte) *big.Int {
	x := new(big.Int).SetBytes(b)
	if excess := len(b)*8 - c.Params().BitSize; excess > 0 {
		x.Rsh(x, uint(excess))
	}
	return x
}

func bits2octets(c curve.Curve, b []byte) []byte {
	z := bits2int(c, b)
	z.Mod(z, c.Params().N)
	return c.ScalarBytes(z)
}

// hashToScalar is the digest-to-scalar conversion used for e in signing,
// verification and recovery.
func hashToScalar(c curve.Curve, digest []byte) *big.Int {
	e := bits2int(c, digest)
	return e.Mod(e, c.Params().N)
}

func zeroizeBytes(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
	runtime.KeepAlive(buf)
}
