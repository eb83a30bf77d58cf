package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/coinbase/cb-ecdsa-go/pkg/cbecdsa/logging"
)

func TestSlogLoggerRedacts(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := logging.New(slog.New(handler)).With("curve", "P256")

	logger.Debug(context.Background(), "key imported", logging.Redacted("private_key"))

	out := buf.String()
	assert.Contains(t, out, "curve=P256")
	assert.Contains(t, out, "private_key="+logging.Placeholder())
	assert.Contains(t, out, "key imported")
}

func TestZapLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := logging.NewZap(zap.New(core)).With("op", "sign")

	ctx := context.Background()
	logger.Debug(ctx, "d", "curve", "SECP256K1")
	logger.Info(ctx, "i")
	logger.Warn(ctx, "w", logging.Redacted("nonce"))
	logger.Error(ctx, "e")

	entries := logs.All()
	require.Len(t, entries, 4)

	first := entries[0].ContextMap()
	assert.Equal(t, "sign", first["op"])
	assert.Equal(t, "SECP256K1", first["curve"])
	assert.Equal(t, logging.Placeholder(), entries[2].ContextMap()["nonce"])
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
}

func TestNilBackends(t *testing.T) {
	ctx := context.Background()
	logging.NewZap(nil).Info(ctx, "dropped")
	logging.Discard().Error(ctx, "dropped")
	assert.True(t, strings.HasPrefix(logging.Placeholder(), "["))
}
