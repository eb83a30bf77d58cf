package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/coinbase/cb-ecdsa-go/pkg/cbecdsa"
)

const envPrefix = "CBECDSA"

// newViper returns a viper instance that reads CBECDSA_* environment
// variables, with dashes in flag names mapped to underscores.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// bindFlags registers every flag in fs with v under its underscored name.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var bindErr error
	fs.VisitAll(func(f *pflag.Flag) {
		if bindErr != nil {
			return
		}
		key := strings.ReplaceAll(f.Name, "-", "_")
		if err := v.BindPFlag(key, f); err != nil {
			bindErr = fmt.Errorf("bind flag %s: %w", f.Name, err)
		}
	})
	return bindErr
}

// readConfigFile merges a YAML, JSON or TOML file into v. Flags and
// environment variables still take precedence over file values.
func readConfigFile(v *viper.Viper, path string) error {
	absPath, err := SecurePath(path)
	if err != nil {
		return fmt.Errorf("secure path: %w", err)
	}
	v.SetConfigFile(absPath)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// SecurePath validates that a file path doesn't escape the working directory.
// This prevents path traversal attacks when loading user-specified config files.
func SecurePath(path string) (string, error) {
	clean := filepath.Clean(path)
	absPath, err := filepath.Abs(clean)
	if err != nil {
		return "", fmt.Errorf("absolute path: %w", err)
	}
	base, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	rel, err := filepath.Rel(base, absPath)
	if err != nil {
		return "", fmt.Errorf("relative path: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("path %q escapes working directory", path)
	}
	return absPath, nil
}

func parseFormat(s string) (cbecdsa.PointFormat, error) {
	for _, f := range []cbecdsa.PointFormat{cbecdsa.Compressed, cbecdsa.Uncompressed, cbecdsa.Hybrid} {
		if strings.EqualFold(s, f.String()) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown point format %q", s)
}

// newLogger logs failed operations to stderr. Verbose mode lowers the level
// to debug so that per-operation failure records from the engine show up.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}
