// Package codec converts keys and signatures between byte encodings and the
// curve package's scalars and points.
//
// # Public Keys
//
// SEC1 points in compressed (0x02/0x03), uncompressed (0x04) and hybrid
// (0x06/0x07) form. Decoding always validates: the result is a finite point
// on the curve or an error.
//
// # Private Keys
//
// Raw keys are fixed-width big-endian scalars. ExportPrivateKey and
// ImportPrivateKey handle the SEC1 ECPrivateKey DER structure from RFC 5915.
//
// # Signatures
//
// Raw signatures are r || s at twice the scalar size. DER signatures are
// SEQUENCE { INTEGER r, INTEGER s }.
package codec
