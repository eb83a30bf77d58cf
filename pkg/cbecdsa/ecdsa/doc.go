// Package ecdsa implements deterministic ECDSA signing, verification and
// public key recovery over the curves in the curve package.
//
// # Nonces
//
// Nonces follow RFC 6979 section 3.2. The HMAC hash is fixed per curve
// (curve.Params.Hash) and is independent of the hash used to produce the
// digest:
//
//   - P192, P256, SECP256K1: SHA-256
//   - P224: SHA-224
//   - P384: SHA-384
//   - P521: SHA-512
//
// Digests longer than the group order are truncated to its bit length by
// keeping the leftmost bits (RFC 6979 bits2int). The same conversion is used
// for the message scalar e.
//
// # Canonical Form
//
// Sign always emits low-S signatures and adjusts the recovery id to match.
// Verify rejects high-S signatures unless VerifyOptions.AllowHighS is set.
//
// # Usage Example
//
//	digest := sha256.Sum256(msg)
//	sig, id, err := ecdsa.SignRecoverable(curve.Secp256k1, digest[:], d)
//	if err != nil {
//	    return err
//	}
//	pub, ok := ecdsa.Recover(curve.Secp256k1, digest[:], sig, id)
//	// ok is false only for malformed or forged input
package ecdsa
