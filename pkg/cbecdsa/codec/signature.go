package codec

import (
	"fmt"
	"math/big"
	"runtime"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"

	"github.com/coinbase/cb-ecdsa-go/pkg/cbecdsa/curve"
)

// EncodeSignature serializes (r, s) as fixed-width r || s. Both values must
// fit in the curve's scalar size.
func EncodeSignature(c curve.Curve, r, s *big.Int) ([]byte, error) {
	params := c.Params()
	if params == nil {
		return nil, curve.ErrCurveNotFound
	}
	sl := params.ScalarLen
	if r.Sign() < 0 || s.Sign() < 0 || r.BitLen() > 8*sl || s.BitLen() > 8*sl {
		return nil, fmt.Errorf("%w: signature component does not fit %d bytes", ErrInvalidLength, sl)
	}
	out := make([]byte, 2*sl)
	r.FillBytes(out[:sl])
	s.FillBytes(out[sl:])
	return out, nil
}

// DecodeSignature splits a fixed-width r || s signature. No range checks are
// applied; verification treats out-of-range values as a failed signature.
func DecodeSignature(c curve.Curve, b []byte) (r, s *big.Int, err error) {
	params := c.Params()
	if params == nil {
		return nil, nil, curve.ErrCurveNotFound
	}
	sl := params.ScalarLen
	if len(b) != 2*sl {
		return nil, nil, fmt.Errorf("%w: signature is %d bytes, want %d", ErrInvalidLength, len(b), 2*sl)
	}
	return new(big.Int).SetBytes(b[:sl]), new(big.Int).SetBytes(b[sl:]), nil
}

// MarshalDERSignature encodes SEQUENCE { INTEGER r, INTEGER s }.
func MarshalDERSignature(r, s *big.Int) ([]byte, error) {
	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1BigInt(r)
		b.AddASN1BigInt(s)
	})
	return b.Bytes()
}

// ParseDERSignature decodes a strict DER signature. Integers must be minimally
// encoded and non-negative, and no trailing data is allowed.
func ParseDERSignature(der []byte) (r, s *big.Int, err error) {
	r, s = new(big.Int), new(big.Int)
	var inner cryptobyte.String
	input := cryptobyte.String(der)
	if !input.ReadASN1(&inner, asn1.SEQUENCE) ||
		!input.Empty() ||
		!inner.ReadASN1Integer(r) ||
		!inner.ReadASN1Integer(s) ||
		!inner.Empty() {
		return nil, nil, fmt.Errorf("%w: malformed DER signature", ErrInvalidEncoding)
	}
	if r.Sign() < 0 || s.Sign() < 0 {
		return nil, nil, fmt.Errorf("%w: negative signature component", ErrInvalidEncoding)
	}
	return r, s, nil
}

func zeroizeBytes(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
	runtime.KeepAlive(buf)
}
