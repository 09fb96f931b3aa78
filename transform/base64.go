package transform

import "encoding/base64"

// Base64 decodes standard base64 text into raw bytes (Transform) and
// re-encodes raw bytes back into canonical padded standard base64
// (Untransform).
type Base64 struct{}

func (Base64) Name() string { return "base64" }

func (Base64) CanTransform(b []byte) bool {
	if len(b) == 0 || len(b)%4 != 0 {
		return false
	}
	for _, c := range b {
		switch {
		case c >= 'A' && c <= 'Z':
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case c == '+' || c == '/' || c == '=':
		default:
			return false
		}
	}
	return true
}

func (t Base64) Transform(b []byte) ([]byte, error) {
	enc := base64.StdEncoding
	out := make([]byte, enc.DecodedLen(len(b)))
	n, err := enc.Decode(out, b)
	if err != nil {
		return nil, DecodeFailureError{Name: t.Name(), Err: err}
	}
	return out[:n], nil
}

func (Base64) Untransform(b []byte) ([]byte, error) {
	enc := base64.StdEncoding
	out := make([]byte, enc.EncodedLen(len(b)))
	enc.Encode(out, b)
	return out, nil
}

func (Base64) IsTwoWay() bool { return true }
