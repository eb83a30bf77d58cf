package cbecdsa

import (
	"crypto/rand"
	"errors"
	"io"

	"github.com/coinbase/cb-ecdsa-go/pkg/cbecdsa/curve"
	"github.com/coinbase/cb-ecdsa-go/pkg/cbecdsa/logging"
)

// Config expresses the engine-wide policy. The zero value is ready to use.
type Config struct {
	// Rand is the entropy source for GeneratePrivateKey. Nil selects
	// crypto/rand.Reader. Signing never reads from it.
	Rand io.Reader

	// Logger receives a debug record for every failed operation. Secrets are
	// never logged. Nil discards all records.
	Logger logging.Logger

	// AllowHighS makes Verify accept signatures whose s lies above N/2.
	// Off by default: only the low-S form that Sign emits is valid.
	AllowHighS bool

	// MaxGenerateAttempts bounds rejection sampling in GeneratePrivateKey.
	// Zero selects 64.
	MaxGenerateAttempts int
}

func (c Config) withDefaults() (Config, error) {
	if c.MaxGenerateAttempts < 0 {
		return Config{}, errors.New("cbecdsa: MaxGenerateAttempts must not be negative")
	}
	if c.MaxGenerateAttempts == 0 {
		c.MaxGenerateAttempts = curve.DefaultGenerateAttempts
	}
	if c.Rand == nil {
		c.Rand = rand.Reader
	}
	if c.Logger == nil {
		c.Logger = logging.Discard()
	}
	return c, nil
}
