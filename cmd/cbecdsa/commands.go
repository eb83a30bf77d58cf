package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coinbase/cb-ecdsa-go/pkg/cbecdsa"
)

var errNotRecovered = errors.New("no public key recoverable from signature")

// request is the decoded input of one hex subcommand.
type request struct {
	curve  string
	format cbecdsa.PointFormat
	args   [][]byte
}

type hexRunFunc func(ctx context.Context, req *request) (string, error)

// hexCmd builds a subcommand whose positional arguments are hex strings.
// The argument count is taken from the <placeholders> in use.
func (a *app) hexCmd(use, short string, run hexRunFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(strings.Count(use, "<")),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseFormat(a.v.GetString("format"))
			if err != nil {
				return err
			}
			req := &request{curve: a.v.GetString("curve"), format: format, args: make([][]byte, len(args))}
			defer func() {
				for _, b := range req.args {
					cbecdsa.ZeroizeBytes(b)
				}
			}()
			for i, s := range args {
				b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
				if err != nil {
					return fmt.Errorf("argument %d is not hex: %w", i+1, err)
				}
				req.args[i] = b
			}

			out, err := run(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func hexOut(b []byte, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func boolOut(ok bool, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return strconv.FormatBool(ok), nil
}

func (a *app) keyCmds() []*cobra.Command {
	return []*cobra.Command{
		a.hexCmd("generate", "Generate a private key", func(ctx context.Context, req *request) (string, error) {
			return hexOut(a.eng.GeneratePrivateKey(ctx, req.curve))
		}),
		a.hexCmd("verify-priv <priv>", "Check that a private key is in range", func(ctx context.Context, req *request) (string, error) {
			return boolOut(a.eng.PrivateKeyVerify(ctx, req.curve, req.args[0]))
		}),
		a.hexCmd("export-priv <priv>", "Encode a private key as SEC1 DER", func(ctx context.Context, req *request) (string, error) {
			return hexOut(a.eng.ExportPrivateKey(ctx, req.curve, req.args[0], req.format))
		}),
		a.hexCmd("import-priv <der>", "Decode a SEC1 DER private key", func(ctx context.Context, req *request) (string, error) {
			return hexOut(a.eng.ImportPrivateKey(ctx, req.curve, req.args[0]))
		}),
		a.hexCmd("tweak-priv <priv> <tweak>", "Add a tweak to a private key", func(ctx context.Context, req *request) (string, error) {
			return hexOut(a.eng.TweakPrivateKey(ctx, req.curve, req.args[0], req.args[1]))
		}),
		a.hexCmd("negate-priv <priv>", "Negate a private key", func(ctx context.Context, req *request) (string, error) {
			return hexOut(a.eng.NegatePrivateKey(ctx, req.curve, req.args[0]))
		}),
		a.hexCmd("pubkey <priv>", "Derive the public key", func(ctx context.Context, req *request) (string, error) {
			return hexOut(a.eng.CreatePublicKey(ctx, req.curve, req.args[0], req.format))
		}),
		a.hexCmd("convert <pub>", "Re-encode a public key in --format", func(ctx context.Context, req *request) (string, error) {
			return hexOut(a.eng.ConvertPublicKey(ctx, req.curve, req.args[0], req.format))
		}),
		a.hexCmd("verify-pub <pub>", "Check that a public key is a valid point", func(ctx context.Context, req *request) (string, error) {
			return boolOut(a.eng.VerifyPublicKey(ctx, req.curve, req.args[0]))
		}),
		a.hexCmd("tweak-pub <pub> <tweak>", "Add tweak*G to a public key", func(ctx context.Context, req *request) (string, error) {
			return hexOut(a.eng.TweakPublicKey(ctx, req.curve, req.args[0], req.args[1], req.format))
		}),
		a.hexCmd("negate-pub <pub>", "Negate a public key", func(ctx context.Context, req *request) (string, error) {
			return hexOut(a.eng.NegatePublicKey(ctx, req.curve, req.args[0], req.format))
		}),
		a.hexCmd("ecdh <priv> <pub>", "Compute the shared point", func(ctx context.Context, req *request) (string, error) {
			return hexOut(a.eng.ECDH(ctx, req.curve, req.args[0], req.args[1], req.format))
		}),
	}
}

// signOutput is the JSON printed by the sign command.
type signOutput struct {
	Signature  string `json:"signature"`
	R          string `json:"r"`
	S          string `json:"s"`
	RecoveryID int    `json:"recovery_id"`
}

func (a *app) signatureCmds() []*cobra.Command {
	var recoverCmd *cobra.Command
	recoverCmd = a.hexCmd("recover <digest> <sig>", "Recover the signer's public key", func(ctx context.Context, req *request) (string, error) {
		id, err := recoverCmd.Flags().GetInt("recid")
		if err != nil {
			return "", err
		}
		return a.recoverKey(ctx, req, id)
	})
	recoverCmd.Flags().Int("recid", 0, "recovery id (0..3)")

	return []*cobra.Command{
		a.hexCmd("sign <priv> <digest>", "Sign a digest deterministically", func(ctx context.Context, req *request) (string, error) {
			res, err := a.eng.Sign(ctx, &cbecdsa.SignParams{Curve: req.curve, PrivateKey: req.args[0], Digest: req.args[1]})
			if err != nil {
				return "", err
			}
			out, err := json.Marshal(signOutput{
				Signature:  hex.EncodeToString(res.Signature()),
				R:          hex.EncodeToString(res.R),
				S:          hex.EncodeToString(res.S),
				RecoveryID: res.RecoveryID,
			})
			if err != nil {
				return "", fmt.Errorf("marshal signature: %w", err)
			}
			return string(out), nil
		}),
		a.hexCmd("verify <pub> <digest> <sig>", "Verify a raw r||s signature", func(ctx context.Context, req *request) (string, error) {
			r, s, ok := splitSignature(req.args[2])
			if !ok {
				return strconv.FormatBool(false), nil
			}
			return boolOut(a.eng.Verify(ctx, &cbecdsa.VerifyParams{
				Curve: req.curve, PublicKey: req.args[0], Digest: req.args[1], R: r, S: s,
			}))
		}),
		recoverCmd,
		a.hexCmd("sig-normalize <sig>", "Rewrite a signature into low-S form", func(ctx context.Context, req *request) (string, error) {
			return hexOut(a.eng.SignatureNormalize(ctx, req.curve, req.args[0]))
		}),
		a.hexCmd("sig-is-low-s <sig>", "Report whether a signature is low-S", func(ctx context.Context, req *request) (string, error) {
			return boolOut(a.eng.IsLowS(ctx, req.curve, req.args[0]))
		}),
		a.hexCmd("sig-export <sig>", "Convert a raw signature to DER", func(ctx context.Context, req *request) (string, error) {
			return hexOut(a.eng.SignatureExport(ctx, req.curve, req.args[0]))
		}),
		a.hexCmd("sig-import <der>", "Convert a DER signature to raw r||s", func(ctx context.Context, req *request) (string, error) {
			return hexOut(a.eng.SignatureImport(ctx, req.curve, req.args[0]))
		}),
	}
}

func (a *app) recoverKey(ctx context.Context, req *request, id int) (string, error) {
	r, s, ok := splitSignature(req.args[1])
	if !ok {
		return "", errNotRecovered
	}
	res, err := a.eng.Recover(ctx, &cbecdsa.RecoverParams{
		Curve: req.curve, Digest: req.args[0], R: r, S: s, RecoveryID: id, Format: req.format,
	})
	if err != nil {
		return "", err
	}
	if !res.Found {
		return "", errNotRecovered
	}
	return hex.EncodeToString(res.PublicKey), nil
}

// splitSignature halves a raw r || s buffer.
func splitSignature(sig []byte) (r, s []byte, ok bool) {
	if len(sig)%2 != 0 {
		return nil, nil, false
	}
	half := len(sig) / 2
	return sig[:half], sig[half:], true
}
