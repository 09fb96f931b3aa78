package transform

import "github.com/golang/snappy"

// Snappy decompresses a Snappy block into its original bytes (Transform)
// and re-compresses bytes back into a Snappy block (Untransform).
// Supplements the Hex/Base32/Base64/XorByConstant/BitReverse/Deflate list
// spec.md §4.4 gives with a trailing "...": a second, genuinely distinct
// compression format, backed by github.com/golang/snappy (vendored by
// ethereum-go-ethereum to compress devp2p wire messages).
type Snappy struct{}

func (Snappy) Name() string { return "snappy" }

func (Snappy) CanTransform(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	_, err := snappy.Decode(nil, b)
	return err == nil
}

func (s Snappy) Transform(b []byte) ([]byte, error) {
	out, err := snappy.Decode(nil, b)
	if err != nil {
		return nil, DecodeFailureError{Name: s.Name(), Err: err}
	}
	return out, nil
}

func (Snappy) Untransform(b []byte) ([]byte, error) {
	return snappy.Encode(nil, b), nil
}

func (Snappy) IsTwoWay() bool { return true }
