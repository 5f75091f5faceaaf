package codec

import (
	"encoding/binary"
	"io"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/enumgo/core"
)

// Roaring stores the mask's bit offsets as a roaring bitmap. It is the
// compact choice for sparse memberships over wide id ranges, where raw
// words waste most of their bits.
//
// Format: [Base: 8 bytes] [roaring serialization]
type Roaring struct{}

// Name returns the unique name of the codec ("roaring").
func (Roaring) Name() string { return "roaring" }

// Encode writes the mask to w.
func (Roaring) Encode(w io.Writer, m core.Mask) error {
	rb := roaring.New()
	for k := range m.Bits() {
		rb.Add(uint32(k))
	}

	if err := binary.Write(w, binary.LittleEndian, int64(m.Base)); err != nil {
		return err
	}
	_, err := rb.WriteTo(w)
	return err
}

// Decode reads a mask from r.
func (Roaring) Decode(r io.Reader) (core.Mask, error) {
	var base int64
	if err := binary.Read(r, binary.LittleEndian, &base); err != nil {
		return core.Mask{}, err
	}

	rb := roaring.New()
	if _, err := rb.ReadFrom(r); err != nil {
		return core.Mask{}, err
	}

	var words []uint64
	it := rb.Iterator()
	for it.HasNext() {
		k := int(it.Next())
		word := k / core.WordBits
		for word >= len(words) {
			words = append(words, 0)
		}
		words[word] |= 1 << (k % core.WordBits)
	}

	return core.Mask{Base: int(base), Words: words}, nil
}
