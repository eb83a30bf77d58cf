package curve

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"runtime"
)

// DefaultGenerateAttempts bounds the rejection-sampling loop in GenerateScalar.
const DefaultGenerateAttempts = 64

// zeroizeBytes overwrites the provided slice with zeros and prevents compiler
// dead store elimination using runtime.KeepAlive.
// Local duplicate to avoid import cycles with the top-level cbecdsa package.
func zeroizeBytes(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
	runtime.KeepAlive(buf)
}

// ValidScalar reports whether 1 <= k < N.
func (c Curve) ValidScalar(k *big.Int) bool {
	if k == nil {
		return false
	}
	return k.Sign() > 0 && k.Cmp(c.mustParams().N) < 0
}

// ScalarBytes encodes k big-endian at exactly ScalarLen bytes.
// k must already be in [0, N).
func (c Curve) ScalarBytes(k *big.Int) []byte {
	return k.FillBytes(make([]byte, c.mustParams().ScalarLen))
}

// NegateScalar returns N - k for a valid scalar k.
func (c Curve) NegateScalar(k *big.Int) *big.Int {
	n := c.mustParams().N
	r := new(big.Int).Sub(n, k)
	return r.Mod(r, n)
}

// Inverse returns k^-1 mod N. N is prime, so this is k^(N-2).
func (c Curve) Inverse(k *big.Int) *big.Int {
	n := c.mustParams().N
	e := new(big.Int).Sub(n, big.NewInt(2))
	return new(big.Int).Exp(k, e, n)
}

// IsHighS reports whether s lies in the upper half of the order.
func (c Curve) IsHighS(s *big.Int) bool {
	return s.Cmp(c.mustParams().halfN) > 0
}

// TweakAdd returns (d + t) mod N.
//
// d must be a valid private scalar. t may be zero but must be below N.
// A sum congruent to zero fails with ErrTweakOverflow.
func (c Curve) TweakAdd(d, t *big.Int) (*big.Int, error) {
	if !c.ValidScalar(d) {
		return nil, ErrInvalidScalar
	}
	if err := c.checkTweak(t); err != nil {
		return nil, err
	}
	n := c.mustParams().N
	r := new(big.Int).Add(d, t)
	r.Mod(r, n)
	if r.Sign() == 0 {
		return nil, ErrTweakOverflow
	}
	return r, nil
}

// TweakAddPoint returns p + t*G, the public counterpart of TweakAdd.
func (c Curve) TweakAddPoint(p Point, t *big.Int) (Point, error) {
	if err := c.Validate(p); err != nil {
		return Point{}, err
	}
	if err := c.checkTweak(t); err != nil {
		return Point{}, err
	}
	r := c.Add(p, c.ScalarBaseMult(t))
	if r.IsInfinity() {
		return Point{}, ErrTweakOverflow
	}
	return r, nil
}

func (c Curve) checkTweak(t *big.Int) error {
	if t == nil || t.Sign() < 0 || t.Cmp(c.mustParams().N) >= 0 {
		return fmt.Errorf("%w: tweak out of range", ErrInvalidScalar)
	}
	return nil
}

var errGenerateExhausted = errors.New("curve: rejection sampling exhausted")

// GenerateScalar draws a uniformly random scalar in [1, N) from rand.
//
// Each attempt reads ScalarLen bytes and masks the bits above the order's
// bit length, then rejects zero and values >= N. After maxAttempts
// rejections it fails; maxAttempts <= 0 selects DefaultGenerateAttempts.
func (c Curve) GenerateScalar(rand io.Reader, maxAttempts int) (*big.Int, error) {
	if rand == nil {
		return nil, fmt.Errorf("%w: nil reader", ErrRandomSource)
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultGenerateAttempts
	}
	params := c.mustParams()
	buf := make([]byte, params.ScalarLen)
	defer zeroizeBytes(buf)

	excess := uint(params.ScalarLen*8 - params.BitSize)
	for i := 0; i < maxAttempts; i++ {
		if _, err := io.ReadFull(rand, buf); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRandomSource, err)
		}
		buf[0] &= byte(0xff >> excess)
		k := new(big.Int).SetBytes(buf)
		if c.ValidScalar(k) {
			return k, nil
		}
	}
	return nil, fmt.Errorf("%w: %w after %d attempts", ErrInvalidScalar, errGenerateExhausted, maxAttempts)
}
