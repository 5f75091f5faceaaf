// Package codec centralizes the wire encodings of value-set bitmasks.
//
// Codec selection is a breaking-change boundary: bytes written by one
// codec decode only with the same codec. Self-describing containers can
// store the codec name and recover the codec via ByName.
package codec

import (
	"errors"
	"io"

	"github.com/hupe1980/enumgo/core"
)

// Codec encodes and decodes value-set bitmasks.
// Implementations must be safe for concurrent use.
type Codec interface {
	// Name returns the stable name of the codec.
	Name() string

	// Encode writes the mask to w.
	Encode(w io.Writer, m core.Mask) error

	// Decode reads a mask from r. Decoding the bytes produced by Encode
	// yields a membership-identical mask, not necessarily an identical
	// word count beyond the minimum needed.
	Decode(r io.Reader) (core.Mask, error)
}

// ErrCorrupted is returned when encoded bytes fail structural validation.
var ErrCorrupted = errors.New("codec: corrupted mask data")

// Default is the codec used when none is configured.
var Default Codec = Raw{}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "raw":
		return Raw{}, true
	case "roaring":
		return Roaring{}, true
	case "json":
		return JSON{}, true
	case "raw+zstd":
		return Compressed{Inner: Raw{}, Type: CompressionZSTD}, true
	case "raw+lz4":
		return Compressed{Inner: Raw{}, Type: CompressionLZ4}, true
	default:
		return nil, false
	}
}
