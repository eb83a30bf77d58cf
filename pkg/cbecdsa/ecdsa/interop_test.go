package ecdsa_test

import (
	"crypto/rand"
	"crypto/sha256"
	"math/big"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	btcecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	dcrecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinbase/cb-ecdsa-go/pkg/cbecdsa/codec"
	"github.com/coinbase/cb-ecdsa-go/pkg/cbecdsa/curve"
	"github.com/coinbase/cb-ecdsa-go/pkg/cbecdsa/ecdsa"
)

// TestSecp256k1MatchesBtcec signs random digests with both implementations
// and requires byte-identical DER output. Both apply RFC 6979 and low-S.
func TestSecp256k1MatchesBtcec(t *testing.T) {
	c := curve.Secp256k1
	for i := 0; i < 16; i++ {
		d, err := c.GenerateScalar(rand.Reader, 0)
		require.NoError(t, err)
		keyBytes := c.ScalarBytes(d)
		priv, pub := btcec.PrivKeyFromBytes(keyBytes)

		digest := sha256.Sum256([]byte{byte(i), 0x17, 0x2a})

		sig, err := ecdsa.Sign(c, digest[:], d)
		require.NoError(t, err)
		der, err := codec.MarshalDERSignature(sig.R, sig.S)
		require.NoError(t, err)

		want := btcecdsa.Sign(priv, digest[:]).Serialize()
		require.Equal(t, want, der, "iteration %d", i)

		parsed, err := btcecdsa.ParseDERSignature(der)
		require.NoError(t, err)
		assert.True(t, parsed.Verify(digest[:], pub))

		comp, err := codec.EncodePublicKey(c, c.ScalarBaseMult(d), codec.Compressed)
		require.NoError(t, err)
		assert.Equal(t, pub.SerializeCompressed(), comp)
	}
}

// TestNonceMatchesDecred compares the generic generator against decred's
// secp256k1-specific RFC 6979 implementation.
func TestNonceMatchesDecred(t *testing.T) {
	c := curve.Secp256k1
	for i := 0; i < 16; i++ {
		d, err := c.GenerateScalar(rand.Reader, 0)
		require.NoError(t, err)
		digest := sha256.Sum256([]byte{0x99, byte(i)})

		g := ecdsa.NewNonceGenerator(c, d, digest[:])
		k := g.Next()
		g.Close()

		want := secp256k1.NonceRFC6979(c.ScalarBytes(d), digest[:], nil, nil, 0)
		got := c.ScalarBytes(k)
		wantBytes := want.Bytes()
		require.Equal(t, wantBytes[:], got, "iteration %d", i)
	}
}

// TestRecoveryIDMatchesDecred checks the recovery id against the compact
// signature format, whose header byte is 27 + id + 4 for compressed keys.
func TestRecoveryIDMatchesDecred(t *testing.T) {
	c := curve.Secp256k1
	for i := 0; i < 16; i++ {
		d, err := c.GenerateScalar(rand.Reader, 0)
		require.NoError(t, err)
		digest := sha256.Sum256([]byte{0x55, byte(i)})

		sig, id, err := ecdsa.SignRecoverable(c, digest[:], d)
		require.NoError(t, err)

		compact := dcrecdsa.SignCompact(secp256k1.PrivKeyFromBytes(c.ScalarBytes(d)), digest[:], true)
		require.Len(t, compact, 65)
		assert.Equal(t, byte(27+4)+byte(id), compact[0], "iteration %d", i)
		assert.Equal(t, 0, sig.R.Cmp(new(big.Int).SetBytes(compact[1:33])))
		assert.Equal(t, 0, sig.S.Cmp(new(big.Int).SetBytes(compact[33:])))

		recovered, _, err := dcrecdsa.RecoverCompact(compact, digest[:])
		require.NoError(t, err)
		ours, ok := ecdsa.Recover(c, digest[:], sig, id)
		require.True(t, ok)
		enc, err := codec.EncodePublicKey(c, ours, codec.Compressed)
		require.NoError(t, err)
		assert.Equal(t, recovered.SerializeCompressed(), enc)
	}
}
