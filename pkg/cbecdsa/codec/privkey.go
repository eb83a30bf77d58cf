package codec

import (
	encoding_asn1 "encoding/asn1"
	"fmt"
	"math/big"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"

	"github.com/coinbase/cb-ecdsa-go/pkg/cbecdsa/curve"
)

const ecPrivKeyVersion = 1

var (
	tagParameters = asn1.Tag(0).Constructed().ContextSpecific()
	tagPublicKey  = asn1.Tag(1).Constructed().ContextSpecific()
)

// DecodePrivateKey parses a raw big-endian private scalar. The buffer must be
// exactly the curve's scalar size and the value must lie in [1, N).
func DecodePrivateKey(c curve.Curve, b []byte) (*big.Int, error) {
	params := c.Params()
	if params == nil {
		return nil, curve.ErrCurveNotFound
	}
	if len(b) != params.ScalarLen {
		return nil, fmt.Errorf("%w: private key is %d bytes, want %d", ErrInvalidLength, len(b), params.ScalarLen)
	}
	d := new(big.Int).SetBytes(b)
	if !c.ValidScalar(d) {
		return nil, curve.ErrInvalidScalar
	}
	return d, nil
}

// EncodePrivateKey serializes d big-endian at the curve's scalar size.
func EncodePrivateKey(c curve.Curve, d *big.Int) []byte {
	return c.ScalarBytes(d)
}

// ExportPrivateKey wraps d in a SEC1 ECPrivateKey structure (RFC 5915)
// carrying the named-curve OID and the public key in the given format.
func ExportPrivateKey(c curve.Curve, d *big.Int, format PointFormat) ([]byte, error) {
	params := c.Params()
	if params == nil {
		return nil, curve.ErrCurveNotFound
	}
	if !c.ValidScalar(d) {
		return nil, curve.ErrInvalidScalar
	}
	pub, err := EncodePublicKey(c, c.ScalarBaseMult(d), format)
	if err != nil {
		return nil, err
	}
	priv := c.ScalarBytes(d)
	defer zeroizeBytes(priv)

	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1Int64(ecPrivKeyVersion)
		b.AddASN1OctetString(priv)
		b.AddASN1(tagParameters, func(b *cryptobyte.Builder) {
			b.AddASN1ObjectIdentifier(params.OID)
		})
		b.AddASN1(tagPublicKey, func(b *cryptobyte.Builder) {
			b.AddASN1BitString(pub)
		})
	})
	return b.Bytes()
}

// ImportPrivateKey parses a SEC1 ECPrivateKey. The optional parameters must
// name c and the optional public key must match the private scalar.
func ImportPrivateKey(c curve.Curve, der []byte) (*big.Int, error) {
	params := c.Params()
	if params == nil {
		return nil, curve.ErrCurveNotFound
	}

	var (
		input      = cryptobyte.String(der)
		inner      cryptobyte.String
		version    int64
		privOctets cryptobyte.String
	)
	if !input.ReadASN1(&inner, asn1.SEQUENCE) || !input.Empty() {
		return nil, fmt.Errorf("%w: malformed ECPrivateKey", ErrInvalidEncoding)
	}
	if !inner.ReadASN1Integer(&version) || version != ecPrivKeyVersion {
		return nil, fmt.Errorf("%w: unsupported ECPrivateKey version", ErrInvalidEncoding)
	}
	if !inner.ReadASN1(&privOctets, asn1.OCTET_STRING) {
		return nil, fmt.Errorf("%w: missing private key octets", ErrInvalidEncoding)
	}

	var (
		paramsField cryptobyte.String
		hasParams   bool
	)
	if !inner.ReadOptionalASN1(&paramsField, &hasParams, tagParameters) {
		return nil, fmt.Errorf("%w: malformed parameters", ErrInvalidEncoding)
	}
	if hasParams {
		var oid encoding_asn1.ObjectIdentifier
		if !paramsField.ReadASN1ObjectIdentifier(&oid) || !paramsField.Empty() {
			return nil, fmt.Errorf("%w: parameters are not a named curve", ErrInvalidEncoding)
		}
		if !oid.Equal(params.OID) {
			other, err := curve.FromOID(oid)
			if err != nil {
				return nil, fmt.Errorf("%w: unsupported curve oid %s", ErrInvalidEncoding, oid)
			}
			return nil, fmt.Errorf("%w: key is for curve %s, not %s", ErrInvalidEncoding, other, c)
		}
	}

	var (
		pubField cryptobyte.String
		hasPub   bool
	)
	if !inner.ReadOptionalASN1(&pubField, &hasPub, tagPublicKey) {
		return nil, fmt.Errorf("%w: malformed public key field", ErrInvalidEncoding)
	}
	if !inner.Empty() {
		return nil, fmt.Errorf("%w: trailing data in ECPrivateKey", ErrInvalidEncoding)
	}

	priv := []byte(privOctets)
	for len(priv) > params.ScalarLen {
		if priv[0] != 0 {
			return nil, fmt.Errorf("%w: private key too long", ErrInvalidEncoding)
		}
		priv = priv[1:]
	}
	padded := make([]byte, params.ScalarLen)
	copy(padded[params.ScalarLen-len(priv):], priv)
	defer zeroizeBytes(padded)

	d, err := DecodePrivateKey(c, padded)
	if err != nil {
		return nil, err
	}

	if hasPub {
		var bits encoding_asn1.BitString
		if !pubField.ReadASN1BitString(&bits) || !pubField.Empty() || bits.BitLength%8 != 0 {
			return nil, fmt.Errorf("%w: malformed public key bit string", ErrInvalidEncoding)
		}
		embedded, err := DecodePublicKey(c, bits.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: embedded public key: %w", ErrInvalidEncoding, err)
		}
		if !embedded.Equal(c.ScalarBaseMult(d)) {
			return nil, fmt.Errorf("%w: embedded public key does not match private key", ErrInvalidEncoding)
		}
	}
	return d, nil
}
