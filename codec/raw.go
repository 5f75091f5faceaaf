package codec

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hupe1980/enumgo/core"
)

const (
	rawMagic   uint32 = 0x4B53414D // "MASK"
	rawVersion byte   = 1
)

// Raw is the canonical codec: the bitmask words verbatim, little-endian.
//
// Format: [Magic: 4 bytes] [Version: 1 byte] [Base: 8 bytes]
// [WordCount: 4 bytes] [Words: 8 bytes each]
type Raw struct{}

// Name returns the unique name of the codec ("raw").
func (Raw) Name() string { return "raw" }

// Encode writes the mask to w.
func (Raw) Encode(w io.Writer, m core.Mask) error {
	m = m.Normalize()

	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, rawMagic); err != nil {
		return err
	}
	if err := bw.WriteByte(rawVersion); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, int64(m.Base)); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(m.Words))); err != nil {
		return err
	}
	for _, word := range m.Words {
		if err := binary.Write(bw, binary.LittleEndian, word); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Decode reads a mask from r.
func (Raw) Decode(r io.Reader) (core.Mask, error) {
	br := bufio.NewReader(r)

	var magic uint32
	if err := binary.Read(br, binary.LittleEndian, &magic); err != nil {
		return core.Mask{}, err
	}
	if magic != rawMagic {
		return core.Mask{}, fmt.Errorf("%w: bad magic %#x", ErrCorrupted, magic)
	}

	version, err := br.ReadByte()
	if err != nil {
		return core.Mask{}, err
	}
	if version != rawVersion {
		return core.Mask{}, fmt.Errorf("%w: unsupported version %d", ErrCorrupted, version)
	}

	var base int64
	if err := binary.Read(br, binary.LittleEndian, &base); err != nil {
		return core.Mask{}, err
	}

	var count uint32
	if err := binary.Read(br, binary.LittleEndian, &count); err != nil {
		return core.Mask{}, err
	}

	// The word count is untrusted input. Grow the slice as words arrive
	// instead of sizing an allocation from it.
	words := make([]uint64, 0, min(int(count), 4096))
	for i := uint32(0); i < count; i++ {
		var word uint64
		if err := binary.Read(br, binary.LittleEndian, &word); err != nil {
			return core.Mask{}, err
		}
		words = append(words, word)
	}

	return core.Mask{Base: int(base), Words: words}.Normalize(), nil
}
