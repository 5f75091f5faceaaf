package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/enumgo/core"
)

// CompressionType defines the compression algorithm used by Compressed.
type CompressionType uint8

const (
	// CompressionZSTD indicates ZSTD block compression (better ratio).
	CompressionZSTD CompressionType = 1
	// CompressionLZ4 indicates LZ4 block compression (fast).
	CompressionLZ4 CompressionType = 2
)

func (t CompressionType) String() string {
	switch t {
	case CompressionZSTD:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return "unknown"
	}
}

// ZSTD encoder/decoder pools for efficiency
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// Compressed wraps another codec's payload in a compressed block.
//
// Block format: [UncompressedSize: 4 bytes] [CompressedSize: 4 bytes]
// [Data...]. If CompressedSize == 0 the data is stored uncompressed,
// which happens when compression does not pay for itself.
type Compressed struct {
	Inner Codec
	Type  CompressionType
}

const blockHeaderSize = 8

// Name returns the composed codec name, e.g. "raw+zstd".
func (c Compressed) Name() string {
	return c.Inner.Name() + "+" + c.Type.String()
}

// Encode writes the mask to w.
func (c Compressed) Encode(w io.Writer, m core.Mask) error {
	var buf bytes.Buffer
	if err := c.Inner.Encode(&buf, m); err != nil {
		return err
	}
	data := buf.Bytes()

	var compressed []byte
	var err error
	switch c.Type {
	case CompressionLZ4:
		compressed, err = compressLZ4(data)
	case CompressionZSTD:
		compressed, err = compressZSTD(data)
	default:
		return fmt.Errorf("unsupported compression type: %d", c.Type)
	}
	if err != nil {
		return err
	}

	// If compression doesn't help, store uncompressed
	if len(compressed) == 0 || len(compressed) >= len(data) {
		compressed = nil
	}

	header := make([]byte, blockHeaderSize)
	binary.LittleEndian.PutUint32(header[0:], uint32(len(data)))
	binary.LittleEndian.PutUint32(header[4:], uint32(len(compressed)))
	if _, err := w.Write(header); err != nil {
		return err
	}
	if compressed == nil {
		_, err = w.Write(data)
	} else {
		_, err = w.Write(compressed)
	}
	return err
}

// Decode reads a mask from r.
func (c Compressed) Decode(r io.Reader) (core.Mask, error) {
	header := make([]byte, blockHeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return core.Mask{}, err
	}
	uncompressedSize := binary.LittleEndian.Uint32(header[0:])
	compressedSize := binary.LittleEndian.Uint32(header[4:])

	if compressedSize == 0 {
		data := make([]byte, uncompressedSize)
		if _, err := io.ReadFull(r, data); err != nil {
			return core.Mask{}, err
		}
		return c.Inner.Decode(bytes.NewReader(data))
	}

	compressed := make([]byte, compressedSize)
	if _, err := io.ReadFull(r, compressed); err != nil {
		return core.Mask{}, err
	}

	data := make([]byte, uncompressedSize)
	switch c.Type {
	case CompressionLZ4:
		n, err := lz4.UncompressBlock(compressed, data)
		if err != nil {
			return core.Mask{}, fmt.Errorf("%w: %w", ErrCorrupted, err)
		}
		data = data[:n]
	case CompressionZSTD:
		dec := getZstdDecoder()
		out, err := dec.DecodeAll(compressed, data[:0])
		putZstdDecoder(dec)
		if err != nil {
			return core.Mask{}, fmt.Errorf("%w: %w", ErrCorrupted, err)
		}
		data = out
	default:
		return core.Mask{}, fmt.Errorf("unsupported compression type: %d", c.Type)
	}

	return c.Inner.Decode(bytes.NewReader(data))
}

func compressLZ4(data []byte) ([]byte, error) {
	compressed := make([]byte, lz4.CompressBlockBound(len(data)))

	n, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil // Incompressible
	}
	return compressed[:n], nil
}

func compressZSTD(data []byte) ([]byte, error) {
	enc := getZstdEncoder()
	defer putZstdEncoder(enc)

	return enc.EncodeAll(data, nil), nil
}
