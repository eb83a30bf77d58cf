package cbecdsa_test

import (
	"context"
	"crypto/sha256"
	"fmt"

	"github.com/coinbase/cb-ecdsa-go/pkg/cbecdsa"
)

func ExampleEngine_Sign() {
	ctx := context.Background()
	eng, err := cbecdsa.New(cbecdsa.Config{})
	if err != nil {
		panic(err)
	}

	priv := make([]byte, 32)
	priv[31] = 1
	pub, err := eng.CreatePublicKey(ctx, cbecdsa.CurveSecp256k1, priv, cbecdsa.Compressed)
	if err != nil {
		panic(err)
	}

	digest := sha256.Sum256([]byte("Satoshi Nakamoto"))
	sig, err := eng.Sign(ctx, &cbecdsa.SignParams{
		Curve:      cbecdsa.CurveSecp256k1,
		Digest:     digest[:],
		PrivateKey: priv,
	})
	if err != nil {
		panic(err)
	}

	ok, err := eng.Verify(ctx, &cbecdsa.VerifyParams{
		Curve:     cbecdsa.CurveSecp256k1,
		Digest:    digest[:],
		R:         sig.R,
		S:         sig.S,
		PublicKey: pub,
	})
	if err != nil {
		panic(err)
	}
	fmt.Printf("pub=%d bytes sig=%d bytes valid=%v\n", len(pub), len(sig.Signature()), ok)
	// Output: pub=33 bytes sig=64 bytes valid=true
}

func ExampleEngine_Recover() {
	ctx := context.Background()
	eng, _ := cbecdsa.New(cbecdsa.Config{})

	res, err := eng.Recover(ctx, &cbecdsa.RecoverParams{
		Curve:  cbecdsa.CurveP256,
		Digest: []byte{0x01},
		R:      make([]byte, 32),
		S:      make([]byte, 32),
	})
	fmt.Println(res.Found, err)
	// Output: false <nil>
}
