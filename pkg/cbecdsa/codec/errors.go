package codec

import "errors"

var (
	// ErrInvalidLength indicates a buffer whose size does not match its format
	ErrInvalidLength = errors.New("codec: invalid length")

	// ErrInvalidEncoding indicates a malformed prefix, structure or field value
	ErrInvalidEncoding = errors.New("codec: invalid encoding")
)
