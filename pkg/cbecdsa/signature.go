package cbecdsa

import (
	"context"

	"github.com/coinbase/cb-ecdsa-go/pkg/cbecdsa/codec"
	"github.com/coinbase/cb-ecdsa-go/pkg/cbecdsa/curve"
	"github.com/coinbase/cb-ecdsa-go/pkg/cbecdsa/ecdsa"
)

// decodeRawSignature parses r || s and enforces 1 <= r, s < N.
func decodeRawSignature(c curve.Curve, raw []byte) (*ecdsa.Signature, error) {
	r, s, err := codec.DecodeSignature(c, raw)
	if err != nil {
		return nil, err
	}
	sig := &ecdsa.Signature{R: r, S: s}
	if err := sig.Validate(c); err != nil {
		return nil, err
	}
	return sig, nil
}

// SignatureNormalize rewrites a raw r || s signature into low-S form.
func (e *Engine) SignatureNormalize(ctx context.Context, curveName string, raw []byte) ([]byte, error) {
	const op = "signatureNormalize"
	c, err := e.resolve(ctx, op, curveName)
	if err != nil {
		return nil, err
	}
	sig, err := decodeRawSignature(c, raw)
	if err != nil {
		return nil, e.fail(ctx, op, curveName, err)
	}
	norm := sig.Normalize(c)
	out, err := codec.EncodeSignature(c, norm.R, norm.S)
	if err != nil {
		return nil, e.fail(ctx, op, curveName, err)
	}
	return out, nil
}

// IsLowS reports whether a raw r || s signature is in low-S form.
func (e *Engine) IsLowS(ctx context.Context, curveName string, raw []byte) (bool, error) {
	const op = "isLowS"
	c, err := e.resolve(ctx, op, curveName)
	if err != nil {
		return false, err
	}
	sig, err := decodeRawSignature(c, raw)
	if err != nil {
		return false, e.fail(ctx, op, curveName, err)
	}
	return sig.IsLowS(c), nil
}

// SignatureExport converts a raw r || s signature to DER.
func (e *Engine) SignatureExport(ctx context.Context, curveName string, raw []byte) ([]byte, error) {
	const op = "signatureExport"
	c, err := e.resolve(ctx, op, curveName)
	if err != nil {
		return nil, err
	}
	sig, err := decodeRawSignature(c, raw)
	if err != nil {
		return nil, e.fail(ctx, op, curveName, err)
	}
	der, err := codec.MarshalDERSignature(sig.R, sig.S)
	if err != nil {
		return nil, e.fail(ctx, op, curveName, err)
	}
	return der, nil
}

// SignatureImport converts a strict DER signature to raw r || s.
func (e *Engine) SignatureImport(ctx context.Context, curveName string, der []byte) ([]byte, error) {
	const op = "signatureImport"
	c, err := e.resolve(ctx, op, curveName)
	if err != nil {
		return nil, err
	}
	r, s, err := codec.ParseDERSignature(der)
	if err != nil {
		return nil, e.fail(ctx, op, curveName, err)
	}
	sig := &ecdsa.Signature{R: r, S: s}
	if err := sig.Validate(c); err != nil {
		return nil, e.fail(ctx, op, curveName, err)
	}
	raw, err := codec.EncodeSignature(c, r, s)
	if err != nil {
		return nil, e.fail(ctx, op, curveName, err)
	}
	return raw, nil
}
