package cbecdsa

import (
	"github.com/coinbase/cb-ecdsa-go/pkg/cbecdsa/codec"
	"github.com/coinbase/cb-ecdsa-go/pkg/cbecdsa/curve"
)

// PointFormat selects the public key encoding. The zero value is Compressed.
type PointFormat = codec.PointFormat

const (
	Compressed   = codec.Compressed
	Uncompressed = codec.Uncompressed
	Hybrid       = codec.Hybrid
)

// Curve registry names accepted by every Engine method.
const (
	CurveP192      = "P192"
	CurveP224      = "P224"
	CurveP256      = "P256"
	CurveP384      = "P384"
	CurveP521      = "P521"
	CurveSecp256k1 = "SECP256K1"
)

// CurveNames lists the supported curve names in registry order.
func CurveNames() []string {
	curves := curve.Curves()
	names := make([]string, len(curves))
	for i, c := range curves {
		names[i] = c.Name()
	}
	return names
}
