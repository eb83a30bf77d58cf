// Package logging provides a minimal logging facade for the ECDSA engine.
//
// # Logger Interface
//
// The Logger interface provides context-aware logging methods:
//
//	type Logger interface {
//	    Debug(ctx context.Context, msg string, args ...any)
//	    Info(ctx context.Context, msg string, args ...any)
//	    Warn(ctx context.Context, msg string, args ...any)
//	    Error(ctx context.Context, msg string, args ...any)
//	    With(args ...any) Logger
//	}
//
// # Implementations
//
//	// slog, bound to slog.Default() when nil
//	logger := logging.New(nil)
//
//	// zap, for hosts that already configure zap
//	zl, _ := zap.NewProduction()
//	logger := logging.NewZap(zl)
//
//	// drop everything (the engine default)
//	logger := logging.Discard()
//
// # Redaction Support
//
//	logger.Debug(ctx, "key imported", logging.Redacted("private_key"), "curve", "P256")
//	// Logs: private_key="[redacted]" curve=P256
//
// # Security Considerations
//
//   - Never log private keys, nonces, or shared secrets
//   - Use logging.Redacted() to mark sensitive attributes
//   - Digests and public keys are not secret but may still identify users
package logging
