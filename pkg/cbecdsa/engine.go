package cbecdsa

import (
	"context"
	"fmt"
	"math/big"

	"github.com/coinbase/cb-ecdsa-go/pkg/cbecdsa/codec"
	"github.com/coinbase/cb-ecdsa-go/pkg/cbecdsa/curve"
	"github.com/coinbase/cb-ecdsa-go/pkg/cbecdsa/ecdh"
	"github.com/coinbase/cb-ecdsa-go/pkg/cbecdsa/ecdsa"
	"github.com/coinbase/cb-ecdsa-go/pkg/cbecdsa/logging"
)

// Engine is the byte-oriented boundary over the curve, codec, ecdsa and ecdh
// packages. Every method takes a curve registry name, resolves it first, and
// returns freshly allocated buffers. An Engine holds no per-call state and is
// safe for concurrent use.
type Engine struct {
	cfg Config
	log logging.Logger
}

// New returns an Engine for cfg. See Config for defaults.
func New(cfg Config) (*Engine, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg, log: cfg.Logger}, nil
}

// fail wraps err for op and records it at debug level. Arguments are never
// logged, so failures on private keys leak nothing.
func (e *Engine) fail(ctx context.Context, op, curveName string, err error) error {
	e.log.Debug(ctx, "operation failed", "op", op, "curve", curveName, "error", err)
	return &Error{Op: op, Curve: curveName, Err: err}
}

func (e *Engine) resolve(ctx context.Context, op, curveName string) (curve.Curve, error) {
	c, err := curve.Resolve(curveName)
	if err != nil {
		return curve.Unknown, e.fail(ctx, op, curveName, err)
	}
	return c, nil
}

// decodeTweak parses a tweak of exactly the scalar size. Zero is allowed.
func decodeTweak(c curve.Curve, b []byte) (*big.Int, error) {
	if len(b) != c.Params().ScalarLen {
		return nil, fmt.Errorf("%w: tweak is %d bytes, want %d", ErrInvalidLength, len(b), c.Params().ScalarLen)
	}
	return new(big.Int).SetBytes(b), nil
}

// decodeRS parses the two signature halves. Each must be exactly ScalarLen
// bytes so that one signature has one encoding.
func decodeRS(c curve.Curve, r, s []byte) (*ecdsa.Signature, bool) {
	n := c.Params().ScalarLen
	if len(r) != n || len(s) != n {
		return nil, false
	}
	return &ecdsa.Signature{R: new(big.Int).SetBytes(r), S: new(big.Int).SetBytes(s)}, true
}

// GeneratePrivateKey draws a uniformly random private key from Config.Rand.
func (e *Engine) GeneratePrivateKey(ctx context.Context, curveName string) ([]byte, error) {
	const op = "generate"
	c, err := e.resolve(ctx, op, curveName)
	if err != nil {
		return nil, err
	}
	d, err := c.GenerateScalar(e.cfg.Rand, e.cfg.MaxGenerateAttempts)
	if err != nil {
		return nil, e.fail(ctx, op, curveName, err)
	}
	return codec.EncodePrivateKey(c, d), nil
}

// PrivateKeyVerify reports whether priv is a well-formed private key.
func (e *Engine) PrivateKeyVerify(ctx context.Context, curveName string, priv []byte) (bool, error) {
	c, err := e.resolve(ctx, "privateKeyVerify", curveName)
	if err != nil {
		return false, err
	}
	_, err = codec.DecodePrivateKey(c, priv)
	return err == nil, nil
}

// ExportPrivateKey encodes priv as a SEC1 ECPrivateKey whose embedded public
// key uses format.
func (e *Engine) ExportPrivateKey(ctx context.Context, curveName string, priv []byte, format PointFormat) ([]byte, error) {
	const op = "exportPrivateKey"
	c, err := e.resolve(ctx, op, curveName)
	if err != nil {
		return nil, err
	}
	d, err := codec.DecodePrivateKey(c, priv)
	if err != nil {
		return nil, e.fail(ctx, op, curveName, err)
	}
	der, err := codec.ExportPrivateKey(c, d, format)
	if err != nil {
		return nil, e.fail(ctx, op, curveName, err)
	}
	return der, nil
}

// ImportPrivateKey decodes a SEC1 ECPrivateKey into raw private key bytes.
func (e *Engine) ImportPrivateKey(ctx context.Context, curveName string, der []byte) ([]byte, error) {
	const op = "importPrivateKey"
	c, err := e.resolve(ctx, op, curveName)
	if err != nil {
		return nil, err
	}
	d, err := codec.ImportPrivateKey(c, der)
	if err != nil {
		return nil, e.fail(ctx, op, curveName, err)
	}
	return codec.EncodePrivateKey(c, d), nil
}

// TweakPrivateKey returns (priv + tweak) mod N.
func (e *Engine) TweakPrivateKey(ctx context.Context, curveName string, priv, tweak []byte) ([]byte, error) {
	const op = "tweakPrivateKey"
	c, err := e.resolve(ctx, op, curveName)
	if err != nil {
		return nil, err
	}
	d, err := codec.DecodePrivateKey(c, priv)
	if err != nil {
		return nil, e.fail(ctx, op, curveName, err)
	}
	t, err := decodeTweak(c, tweak)
	if err != nil {
		return nil, e.fail(ctx, op, curveName, err)
	}
	r, err := c.TweakAdd(d, t)
	if err != nil {
		return nil, e.fail(ctx, op, curveName, err)
	}
	return codec.EncodePrivateKey(c, r), nil
}

// NegatePrivateKey returns N - priv.
func (e *Engine) NegatePrivateKey(ctx context.Context, curveName string, priv []byte) ([]byte, error) {
	const op = "privateKeyNegate"
	c, err := e.resolve(ctx, op, curveName)
	if err != nil {
		return nil, err
	}
	d, err := codec.DecodePrivateKey(c, priv)
	if err != nil {
		return nil, e.fail(ctx, op, curveName, err)
	}
	return codec.EncodePrivateKey(c, c.NegateScalar(d)), nil
}

// CreatePublicKey derives priv * G.
func (e *Engine) CreatePublicKey(ctx context.Context, curveName string, priv []byte, format PointFormat) ([]byte, error) {
	const op = "createPublicKey"
	c, err := e.resolve(ctx, op, curveName)
	if err != nil {
		return nil, err
	}
	d, err := codec.DecodePrivateKey(c, priv)
	if err != nil {
		return nil, e.fail(ctx, op, curveName, err)
	}
	pub, err := codec.EncodePublicKey(c, c.ScalarBaseMult(d), format)
	if err != nil {
		return nil, e.fail(ctx, op, curveName, err)
	}
	return pub, nil
}

// ConvertPublicKey re-encodes pub in format.
func (e *Engine) ConvertPublicKey(ctx context.Context, curveName string, pub []byte, format PointFormat) ([]byte, error) {
	const op = "convertPublicKey"
	c, err := e.resolve(ctx, op, curveName)
	if err != nil {
		return nil, err
	}
	out, err := codec.ConvertPublicKey(c, pub, format)
	if err != nil {
		return nil, e.fail(ctx, op, curveName, err)
	}
	return out, nil
}

// VerifyPublicKey reports whether pub decodes to a finite point on the curve.
// Only an unknown curve is an error.
func (e *Engine) VerifyPublicKey(ctx context.Context, curveName string, pub []byte) (bool, error) {
	c, err := e.resolve(ctx, "verifyPublicKey", curveName)
	if err != nil {
		return false, err
	}
	_, err = codec.DecodePublicKey(c, pub)
	return err == nil, nil
}

// TweakPublicKey returns pub + tweak*G, matching TweakPrivateKey.
func (e *Engine) TweakPublicKey(ctx context.Context, curveName string, pub, tweak []byte, format PointFormat) ([]byte, error) {
	const op = "tweakPublicKey"
	c, err := e.resolve(ctx, op, curveName)
	if err != nil {
		return nil, err
	}
	pt, err := codec.DecodePublicKey(c, pub)
	if err != nil {
		return nil, e.fail(ctx, op, curveName, err)
	}
	t, err := decodeTweak(c, tweak)
	if err != nil {
		return nil, e.fail(ctx, op, curveName, err)
	}
	r, err := c.TweakAddPoint(pt, t)
	if err != nil {
		return nil, e.fail(ctx, op, curveName, err)
	}
	out, err := codec.EncodePublicKey(c, r, format)
	if err != nil {
		return nil, e.fail(ctx, op, curveName, err)
	}
	return out, nil
}

// NegatePublicKey returns -pub.
func (e *Engine) NegatePublicKey(ctx context.Context, curveName string, pub []byte, format PointFormat) ([]byte, error) {
	const op = "publicKeyNegate"
	c, err := e.resolve(ctx, op, curveName)
	if err != nil {
		return nil, err
	}
	pt, err := codec.DecodePublicKey(c, pub)
	if err != nil {
		return nil, e.fail(ctx, op, curveName, err)
	}
	out, err := codec.EncodePublicKey(c, c.Negate(pt), format)
	if err != nil {
		return nil, e.fail(ctx, op, curveName, err)
	}
	return out, nil
}

// SignParams contains parameters for deterministic signing.
type SignParams struct {
	Curve      string
	Digest     []byte
	PrivateKey []byte
}

// SignResult contains a low-S signature and its recovery id.
type SignResult struct {
	R          []byte // fixed-width big-endian
	S          []byte // fixed-width big-endian
	RecoveryID int
}

// Signature returns the raw r || s encoding.
func (r *SignResult) Signature() []byte {
	out := make([]byte, 0, len(r.R)+len(r.S))
	out = append(out, r.R...)
	return append(out, r.S...)
}

// Sign produces a deterministic (RFC 6979) low-S signature over Digest.
// Digests longer than the group order are truncated to its bit length.
func (e *Engine) Sign(ctx context.Context, params *SignParams) (*SignResult, error) {
	const op = "sign"
	if params == nil {
		return nil, e.fail(ctx, op, "", ErrNilParams)
	}
	c, err := e.resolve(ctx, op, params.Curve)
	if err != nil {
		return nil, err
	}
	d, err := codec.DecodePrivateKey(c, params.PrivateKey)
	if err != nil {
		return nil, e.fail(ctx, op, params.Curve, err)
	}
	if len(params.Digest) == 0 {
		return nil, e.fail(ctx, op, params.Curve, fmt.Errorf("%w: empty digest", ErrInvalidLength))
	}
	sig, id, err := ecdsa.SignRecoverable(c, params.Digest, d)
	if err != nil {
		return nil, e.fail(ctx, op, params.Curve, err)
	}
	return &SignResult{
		R:          c.ScalarBytes(sig.R),
		S:          c.ScalarBytes(sig.S),
		RecoveryID: int(id),
	}, nil
}

// VerifyParams contains parameters for signature verification.
type VerifyParams struct {
	Curve     string
	Digest    []byte
	R         []byte
	S         []byte
	PublicKey []byte
}

// Verify reports whether (R, S) is a valid signature of Digest under
// PublicKey. R and S must each be exactly the curve's scalar size. Malformed
// or out-of-range material yields false; errors are reserved for an unknown
// curve or nil params. High-S signatures are rejected unless
// Config.AllowHighS is set.
func (e *Engine) Verify(ctx context.Context, params *VerifyParams) (bool, error) {
	const op = "verify"
	if params == nil {
		return false, e.fail(ctx, op, "", ErrNilParams)
	}
	c, err := e.resolve(ctx, op, params.Curve)
	if err != nil {
		return false, err
	}
	pub, err := codec.DecodePublicKey(c, params.PublicKey)
	if err != nil {
		return false, nil
	}
	sig, ok := decodeRS(c, params.R, params.S)
	if !ok {
		return false, nil
	}
	return ecdsa.Verify(c, params.Digest, sig, pub, ecdsa.VerifyOptions{AllowHighS: e.cfg.AllowHighS}), nil
}

// RecoverParams contains parameters for public key recovery.
type RecoverParams struct {
	Curve      string
	Digest     []byte
	R          []byte
	S          []byte
	RecoveryID int
	Format     PointFormat // encoding of the recovered key
}

// RecoverResult distinguishes a recovered key from an unrecoverable input.
type RecoverResult struct {
	Found     bool
	PublicKey []byte // nil unless Found
}

// Recover reconstructs the signer's public key. An unrecoverable signature is
// reported as Found == false, not as an error; this includes R or S of the
// wrong width. Errors are reserved for an unknown curve or a RecoveryID
// outside 0..3.
func (e *Engine) Recover(ctx context.Context, params *RecoverParams) (*RecoverResult, error) {
	const op = "recover"
	if params == nil {
		return nil, e.fail(ctx, op, "", ErrNilParams)
	}
	c, err := e.resolve(ctx, op, params.Curve)
	if err != nil {
		return nil, err
	}
	if params.RecoveryID < 0 || params.RecoveryID > 3 {
		return nil, e.fail(ctx, op, params.Curve, fmt.Errorf("%w: %d", ErrInvalidRecoveryID, params.RecoveryID))
	}
	sig, ok := decodeRS(c, params.R, params.S)
	if !ok {
		return &RecoverResult{}, nil
	}
	pt, ok := ecdsa.Recover(c, params.Digest, sig, ecdsa.RecoveryID(params.RecoveryID))
	if !ok {
		return &RecoverResult{}, nil
	}
	pub, err := codec.EncodePublicKey(c, pt, params.Format)
	if err != nil {
		return nil, e.fail(ctx, op, params.Curve, err)
	}
	return &RecoverResult{Found: true, PublicKey: pub}, nil
}

// ECDH returns the encoded shared point priv * peer. The output is not
// hashed; derive keys from it with a KDF.
func (e *Engine) ECDH(ctx context.Context, curveName string, priv, peer []byte, format PointFormat) ([]byte, error) {
	const op = "ecdh"
	c, err := e.resolve(ctx, op, curveName)
	if err != nil {
		return nil, err
	}
	d, err := codec.DecodePrivateKey(c, priv)
	if err != nil {
		return nil, e.fail(ctx, op, curveName, err)
	}
	pt, err := codec.DecodePublicKey(c, peer)
	if err != nil {
		return nil, e.fail(ctx, op, curveName, err)
	}
	s, err := ecdh.SharedPoint(c, d, pt)
	if err != nil {
		return nil, e.fail(ctx, op, curveName, err)
	}
	out, err := codec.EncodePublicKey(c, s, format)
	if err != nil {
		return nil, e.fail(ctx, op, curveName, err)
	}
	return out, nil
}
