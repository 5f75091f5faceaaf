package core

import (
	"iter"
	"math/bits"
)

// WordBits is the number of bits per mask word.
const WordBits = 64

// Mask is the canonical export of a value-set bitmap. Bit k of the
// concatenated word sequence represents membership of id Base+k, with
// little-endian bit ordering inside each 64-bit word. Words holds the
// minimum number of words needed for the highest member when produced by
// Set.Mask; decoders accept trailing zero words.
type Mask struct {
	Base  int
	Words []uint64
}

// Count returns the number of set bits.
func (m Mask) Count() int {
	n := 0
	for _, w := range m.Words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Test reports whether bit k is set.
func (m Mask) Test(k int) bool {
	if k < 0 || k >= len(m.Words)*WordBits {
		return false
	}
	return m.Words[k/WordBits]&(1<<(k%WordBits)) != 0
}

// Bits iterates the set bit indices in ascending order.
func (m Mask) Bits() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i, w := range m.Words {
			for w != 0 {
				k := i*WordBits + bits.TrailingZeros64(w)
				if !yield(k) {
					return
				}
				w &= w - 1
			}
		}
	}
}

// Normalize returns a copy of m trimmed to the minimum word count.
func (m Mask) Normalize() Mask {
	words := m.Words
	for len(words) > 0 && words[len(words)-1] == 0 {
		words = words[:len(words)-1]
	}
	out := make([]uint64, len(words))
	copy(out, words)
	return Mask{Base: m.Base, Words: out}
}
