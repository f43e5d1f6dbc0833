package huff

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedTree reports a tree section that is truncated or
	// self-inconsistent.
	ErrMalformedTree = errors.New("huff: malformed tree")

	// ErrCorruptPayload reports a payload whose bits do not decode to exactly
	// the recorded number of symbols.
	ErrCorruptPayload = errors.New("huff: corrupt payload")

	// ErrUnsupportedInput reports input larger than MaxInputSize.
	ErrUnsupportedInput = errors.New("huff: unsupported input")

	// ErrInvalidMagic reports a blob that was not written by this codec
	// version. It matches ErrCorruptPayload under errors.Is.
	ErrInvalidMagic = fmt.Errorf("%w: invalid magic", ErrCorruptPayload)
)

// MaxInputSize is the largest input, in bytes, the codec accepts.
// Frequencies are uint64 so counts cannot overflow below it.
const MaxInputSize = 1 << 48

func malformedTree(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrMalformedTree}, args...)...)
}

func corruptPayload(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrCorruptPayload}, args...)...)
}
