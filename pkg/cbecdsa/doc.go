// Package cbecdsa is a curve-agnostic ECDSA and ECDH engine over named
// short-Weierstrass curves.
//
// The Engine exposes one method per operation. Each takes a curve registry
// name and byte buffers, so a host binding only has to marshal arguments:
//
//	eng, err := cbecdsa.New(cbecdsa.Config{})
//	if err != nil {
//	    return err
//	}
//	priv, err := eng.GeneratePrivateKey(ctx, cbecdsa.CurveSecp256k1)
//	defer cbecdsa.ZeroizeBytes(priv)
//
//	digest := sha256.Sum256(msg)
//	sig, err := eng.Sign(ctx, &cbecdsa.SignParams{
//	    Curve:      cbecdsa.CurveSecp256k1,
//	    Digest:     digest[:],
//	    PrivateKey: priv,
//	})
//
// # Supported Curves
//
// P192, P224, P256, P384, P521 and SECP256K1. Names are case-sensitive.
//
// # Key Operations
//
//   - Keys: GeneratePrivateKey, PrivateKeyVerify, ExportPrivateKey,
//     ImportPrivateKey, TweakPrivateKey, NegatePrivateKey
//   - Public keys: CreatePublicKey, ConvertPublicKey, VerifyPublicKey,
//     TweakPublicKey, NegatePublicKey
//   - Signatures: Sign, Verify, Recover, SignatureNormalize, IsLowS,
//     SignatureExport, SignatureImport
//   - Key agreement: ECDH
//
// # Errors and Negative Outcomes
//
// Malformed input fails with an *Error wrapping one of the Err* sentinels.
// Verification and recovery are different: a signature that does not verify
// or a key that cannot be recovered is reported as false or
// RecoverResult.Found == false, never as an error, because such input is
// routinely attacker-controlled.
//
// # Point Formats
//
// Methods that emit a public key take a PointFormat. Its zero value,
// Compressed, is the default.
//
// # Concurrency
//
// Operations are synchronous and keep all state local to the call. An
// Engine may be shared freely between goroutines.
package cbecdsa
