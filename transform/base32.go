package transform

import (
	"encoding/base32"
	"strings"
)

// Base32 decodes RFC 4648 base32 text into raw bytes (Transform) and
// re-encodes raw bytes back into canonical uppercase, padded base32
// (Untransform).
type Base32 struct{}

func (Base32) Name() string { return "base32" }

func (Base32) CanTransform(b []byte) bool {
	if len(b) == 0 || len(b)%8 != 0 {
		return false
	}
	for _, c := range b {
		switch {
		case c >= 'A' && c <= 'Z':
		case c >= 'a' && c <= 'z':
		case c >= '2' && c <= '7':
		case c == '=':
		default:
			return false
		}
	}
	return true
}

func (t Base32) Transform(b []byte) ([]byte, error) {
	enc := base32.StdEncoding
	out := make([]byte, enc.DecodedLen(len(b)))
	n, err := enc.Decode(out, []byte(strings.ToUpper(string(b))))
	if err != nil {
		return nil, DecodeFailureError{Name: t.Name(), Err: err}
	}
	return out[:n], nil
}

func (Base32) Untransform(b []byte) ([]byte, error) {
	enc := base32.StdEncoding
	out := make([]byte, enc.EncodedLen(len(b)))
	enc.Encode(out, b)
	return out, nil
}

func (Base32) IsTwoWay() bool { return true }
