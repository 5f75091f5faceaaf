package codec

import (
	"io"

	gojson "github.com/goccy/go-json"

	"github.com/hupe1980/enumgo/core"
)

// JSON is a human-readable codec backed by github.com/goccy/go-json.
//
// Use it for debugging and for interop with systems that cannot consume
// the binary formats. The document shape is stable:
//
//	{"base": -2, "words": [1297036692682702848]}
type JSON struct{}

type jsonMask struct {
	Base  int      `json:"base"`
	Words []uint64 `json:"words"`
}

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Encode writes the mask to w.
func (JSON) Encode(w io.Writer, m core.Mask) error {
	m = m.Normalize()
	return gojson.NewEncoder(w).Encode(jsonMask{Base: m.Base, Words: m.Words})
}

// Decode reads a mask from r.
func (JSON) Decode(r io.Reader) (core.Mask, error) {
	var doc jsonMask
	if err := gojson.NewDecoder(r).Decode(&doc); err != nil {
		return core.Mask{}, err
	}
	return core.Mask{Base: doc.Base, Words: doc.Words}.Normalize(), nil
}
