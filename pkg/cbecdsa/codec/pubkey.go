package codec

import (
	"fmt"
	"math/big"

	"github.com/coinbase/cb-ecdsa-go/pkg/cbecdsa/curve"
)

// PointFormat selects the SEC1 public key encoding. The zero value is
// Compressed.
type PointFormat int

const (
	Compressed   PointFormat = iota // 0x02/0x03 || x
	Uncompressed                    // 0x04 || x || y
	Hybrid                          // 0x06/0x07 || x || y
)

func (f PointFormat) String() string {
	switch f {
	case Compressed:
		return "compressed"
	case Uncompressed:
		return "uncompressed"
	case Hybrid:
		return "hybrid"
	default:
		return "unknown"
	}
}

const (
	prefixInfinity     = 0x00
	prefixEven         = 0x02
	prefixOdd          = 0x03
	prefixUncompressed = 0x04
	prefixHybridEven   = 0x06
	prefixHybridOdd    = 0x07
)

// DecodePublicKey parses a SEC1 point in any of the three formats and
// returns it only if it is a finite point on c.
func DecodePublicKey(c curve.Curve, b []byte) (curve.Point, error) {
	if len(b) == 0 {
		return curve.Point{}, fmt.Errorf("%w: empty public key", ErrInvalidLength)
	}
	params := c.Params()
	if params == nil {
		return curve.Point{}, curve.ErrCurveNotFound
	}
	fl := params.FieldLen

	switch b[0] {
	case prefixInfinity:
		if len(b) != 1 {
			return curve.Point{}, fmt.Errorf("%w: infinity encoding must be one byte", ErrInvalidEncoding)
		}
		return curve.Point{}, curve.ErrPointAtInfinity

	case prefixEven, prefixOdd:
		if len(b) != 1+fl {
			return curve.Point{}, fmt.Errorf("%w: compressed key is %d bytes, want %d", ErrInvalidLength, len(b), 1+fl)
		}
		x := new(big.Int).SetBytes(b[1:])
		if x.Cmp(params.P) >= 0 {
			return curve.Point{}, fmt.Errorf("%w: x-coordinate not reduced", ErrInvalidEncoding)
		}
		return c.Decompress(x, b[0] == prefixOdd)

	case prefixUncompressed, prefixHybridEven, prefixHybridOdd:
		if len(b) != 1+2*fl {
			return curve.Point{}, fmt.Errorf("%w: uncompressed key is %d bytes, want %d", ErrInvalidLength, len(b), 1+2*fl)
		}
		x := new(big.Int).SetBytes(b[1 : 1+fl])
		y := new(big.Int).SetBytes(b[1+fl:])
		if x.Cmp(params.P) >= 0 || y.Cmp(params.P) >= 0 {
			return curve.Point{}, fmt.Errorf("%w: coordinate not reduced", ErrInvalidEncoding)
		}
		if b[0] != prefixUncompressed && (b[0] == prefixHybridOdd) != (y.Bit(0) == 1) {
			return curve.Point{}, fmt.Errorf("%w: hybrid prefix does not match y parity", ErrInvalidEncoding)
		}
		pt := curve.Point{X: x, Y: y}
		if !c.IsOnCurve(pt) {
			return curve.Point{}, curve.ErrPointNotOnCurve
		}
		return pt, nil

	default:
		return curve.Point{}, fmt.Errorf("%w: unknown prefix 0x%02x", ErrInvalidEncoding, b[0])
	}
}

// EncodePublicKey serializes a finite point in the requested format.
func EncodePublicKey(c curve.Curve, pt curve.Point, format PointFormat) ([]byte, error) {
	params := c.Params()
	if params == nil {
		return nil, curve.ErrCurveNotFound
	}
	if pt.IsInfinity() {
		return nil, curve.ErrPointAtInfinity
	}
	fl := params.FieldLen
	odd := pt.Y.Bit(0) == 1

	switch format {
	case Compressed:
		out := make([]byte, 1+fl)
		out[0] = prefixEven
		if odd {
			out[0] = prefixOdd
		}
		pt.X.FillBytes(out[1:])
		return out, nil
	case Uncompressed, Hybrid:
		out := make([]byte, 1+2*fl)
		switch {
		case format == Uncompressed:
			out[0] = prefixUncompressed
		case odd:
			out[0] = prefixHybridOdd
		default:
			out[0] = prefixHybridEven
		}
		pt.X.FillBytes(out[1 : 1+fl])
		pt.Y.FillBytes(out[1+fl:])
		return out, nil
	default:
		return nil, fmt.Errorf("%w: unknown point format %d", ErrInvalidEncoding, int(format))
	}
}

// ConvertPublicKey re-encodes a public key in another format.
func ConvertPublicKey(c curve.Curve, b []byte, format PointFormat) ([]byte, error) {
	pt, err := DecodePublicKey(c, b)
	if err != nil {
		return nil, err
	}
	return EncodePublicKey(c, pt, format)
}
