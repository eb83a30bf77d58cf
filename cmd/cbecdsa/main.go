// Command cbecdsa exposes the engine operations on the command line. Keys,
// digests and signatures are passed and printed as hex.
//
// Global settings resolve in the order flag, CBECDSA_* environment variable,
// config file, default:
//
//	cbecdsa --curve P256 pubkey 0123...
//	CBECDSA_CURVE=P384 cbecdsa generate
//	cbecdsa --config cbecdsa.yaml sign <priv> <digest>
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/coinbase/cb-ecdsa-go/pkg/cbecdsa"
	"github.com/coinbase/cb-ecdsa-go/pkg/cbecdsa/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "cbecdsa: %v\n", err)
		return 1
	}
	return 0
}

// app carries the state shared by all subcommands of one invocation.
type app struct {
	v   *viper.Viper
	log *zap.Logger
	eng *cbecdsa.Engine
}

func newRootCmd() *cobra.Command {
	a := &app{v: newViper()}

	root := &cobra.Command{
		Use:               "cbecdsa",
		Short:             "ECDSA and ECDH over named short-Weierstrass curves",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: a.teardown,
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (yaml, json or toml) inside the working directory")
	flags.String("curve", cbecdsa.CurveSecp256k1, "curve name: P192, P224, P256, P384, P521 or SECP256K1")
	flags.String("format", cbecdsa.Compressed.String(), "public key output format: compressed, uncompressed or hybrid")
	flags.Bool("allow-high-s", false, "accept signatures with s above N/2 in verify")
	flags.Bool("verbose", false, "log failed operations at debug level")
	if err := bindFlags(a.v, flags); err != nil {
		panic(err)
	}

	root.AddCommand(versionCmd(), curvesCmd())
	root.AddCommand(a.keyCmds()...)
	root.AddCommand(a.signatureCmds()...)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if path := a.v.GetString("config"); path != "" {
		if err := readConfigFile(a.v, path); err != nil {
			return err
		}
	}

	logger, err := newLogger(a.v.GetBool("verbose"))
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	a.log = logger

	eng, err := cbecdsa.New(cbecdsa.Config{
		Logger:     logging.NewZap(logger),
		AllowHighS: a.v.GetBool("allow_high_s"),
	})
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}
	a.eng = eng
	a.log.Debug("engine ready",
		zap.String("curve", a.v.GetString("curve")),
		zap.Bool("allow_high_s", a.v.GetBool("allow_high_s")),
		zap.String("command", cmd.Name()))
	return nil
}

func (a *app) teardown(_ *cobra.Command, _ []string) {
	if a.log != nil {
		_ = a.log.Sync()
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the engine version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cbecdsa version: %s\n", cbecdsa.EngineVersion())
		},
	}
}

func curvesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "curves",
		Short: "List supported curve names",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range cbecdsa.CurveNames() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
