package codec_test

import (
	"bytes"
	"testing"

	"github.com/hupe1980/enumgo/core"
)

func benchMask() core.Mask {
	words := make([]uint64, 64)
	for i := range words {
		words[i] = 0xaaaaaaaaaaaaaaaa
	}
	return core.Mask{Base: -32, Words: words}
}

func BenchmarkCodecEncode(b *testing.B) {
	m := benchMask()

	for _, c := range allCodecs() {
		b.Run(c.Name(), func(b *testing.B) {
			var buf bytes.Buffer
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				buf.Reset()
				if err := c.Encode(&buf, m); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkCodecDecode(b *testing.B) {
	m := benchMask()

	for _, c := range allCodecs() {
		b.Run(c.Name(), func(b *testing.B) {
			var buf bytes.Buffer
			if err := c.Encode(&buf, m); err != nil {
				b.Fatal(err)
			}
			data := buf.Bytes()

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := c.Decode(bytes.NewReader(data)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
