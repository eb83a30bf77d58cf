package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinbase/cb-ecdsa-go/pkg/cbecdsa"
)

const (
	secp256k1G = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
	p256G      = "036b17d1f2e12c4247f8bce6e563a440f277037d812deb33a0f4a13945d898c296"
)

// one returns the hex encoding of the scalar 1 at n bytes.
func one(n int) string {
	return strings.Repeat("00", n-1) + "01"
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return strings.TrimSpace(out.String()), err
}

func TestVersionAndCurves(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, cbecdsa.EngineVersion())

	out, err = execute(t, "curves")
	require.NoError(t, err)
	assert.Equal(t, cbecdsa.CurveNames(), strings.Split(out, "\n"))
}

func TestPubkeyFormats(t *testing.T) {
	out, err := execute(t, "pubkey", one(32))
	require.NoError(t, err)
	assert.Equal(t, secp256k1G, out)

	out, err = execute(t, "--format", "uncompressed", "pubkey", one(32))
	require.NoError(t, err)
	assert.Len(t, out, 2*65)
	assert.True(t, strings.HasPrefix(out, "04"))

	back, err := execute(t, "convert", out)
	require.NoError(t, err)
	assert.Equal(t, secp256k1G, back)
}

func TestEnvironmentSelectsCurve(t *testing.T) {
	t.Setenv("CBECDSA_CURVE", cbecdsa.CurveP256)

	out, err := execute(t, "pubkey", one(32))
	require.NoError(t, err)
	assert.Equal(t, p256G, out)

	// An explicit flag wins over the environment.
	out, err = execute(t, "--curve", cbecdsa.CurveSecp256k1, "pubkey", one(32))
	require.NoError(t, err)
	assert.Equal(t, secp256k1G, out)
}

func TestConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("cbecdsa.yaml", []byte("curve: P384\nformat: uncompressed\n"), 0o600))

	out, err := execute(t, "--config", "cbecdsa.yaml", "pubkey", one(48))
	require.NoError(t, err)
	assert.Len(t, out, 2*(1+2*48))

	out, err = execute(t, "--config", "cbecdsa.yaml", "--curve", cbecdsa.CurveP256, "--format", "compressed", "pubkey", one(32))
	require.NoError(t, err)
	assert.Equal(t, p256G, out)

	_, err = execute(t, "--config", filepath.Join("..", "cbecdsa.yaml"), "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "escapes working directory")
}

func TestSignVerifyRecover(t *testing.T) {
	priv := strings.Repeat("11", 32)
	digest := strings.Repeat("ab", 32)

	pub, err := execute(t, "pubkey", priv)
	require.NoError(t, err)

	out, err := execute(t, "sign", priv, digest)
	require.NoError(t, err)
	var sig signOutput
	require.NoError(t, json.Unmarshal([]byte(out), &sig))
	assert.Equal(t, sig.R+sig.S, sig.Signature)

	out, err = execute(t, "verify", pub, digest, sig.Signature)
	require.NoError(t, err)
	assert.Equal(t, "true", out)

	out, err = execute(t, "verify", pub, strings.Repeat("cd", 32), sig.Signature)
	require.NoError(t, err)
	assert.Equal(t, "false", out)

	out, err = execute(t, "verify", pub, digest, sig.Signature[:len(sig.Signature)-2])
	require.NoError(t, err)
	assert.Equal(t, "false", out)

	out, err = execute(t, "recover", "--recid", strconv.Itoa(sig.RecoveryID), digest, sig.Signature)
	require.NoError(t, err)
	assert.Equal(t, pub, out)

	out, err = execute(t, "sig-is-low-s", sig.Signature)
	require.NoError(t, err)
	assert.Equal(t, "true", out)

	der, err := execute(t, "sig-export", sig.Signature)
	require.NoError(t, err)
	raw, err := execute(t, "sig-import", der)
	require.NoError(t, err)
	assert.Equal(t, sig.Signature, raw)
}

func TestRecoverNotFound(t *testing.T) {
	_, err := execute(t, "recover", strings.Repeat("ab", 32), strings.Repeat("00", 64))
	assert.ErrorIs(t, err, errNotRecovered)

	_, err = execute(t, "recover", "--recid", "7", strings.Repeat("ab", 32), strings.Repeat("00", 64))
	assert.ErrorIs(t, err, cbecdsa.ErrInvalidRecoveryID)
}

func TestCommandErrors(t *testing.T) {
	_, err := execute(t, "--curve", "nope", "pubkey", one(32))
	assert.ErrorIs(t, err, cbecdsa.ErrCurveNotFound)

	_, err = execute(t, "pubkey", "zz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not hex")

	_, err = execute(t, "--format", "sideways", "pubkey", one(32))
	require.Error(t, err)

	_, err = execute(t, "pubkey")
	require.Error(t, err)
}

func TestSecurePath(t *testing.T) {
	t.Chdir(t.TempDir())
	wd, err := os.Getwd()
	require.NoError(t, err)

	cases := []struct {
		path string
		ok   bool
	}{
		{"config.yaml", true},
		{"nested/../config.yaml", true},
		{"./a/b.json", true},
		{"..", false},
		{"../config.yaml", false},
		{"a/../../config.yaml", false},
	}
	for _, tc := range cases {
		got, err := SecurePath(tc.path)
		if !tc.ok {
			assert.Error(t, err, tc.path)
			continue
		}
		require.NoError(t, err, tc.path)
		assert.True(t, strings.HasPrefix(got, wd), tc.path)
	}
}

func TestParseFormat(t *testing.T) {
	f, err := parseFormat("Hybrid")
	require.NoError(t, err)
	assert.Equal(t, cbecdsa.Hybrid, f)

	_, err = parseFormat("")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, cbecdsa.ErrInvalidEncoding))
}
