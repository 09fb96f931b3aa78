package transform

import "encoding/hex"

// Hex decodes ASCII hex-digit text into raw bytes (Transform) and
// re-encodes raw bytes back into lowercase hex text (Untransform).
type Hex struct{}

func (Hex) Name() string { return "hex" }

func (Hex) CanTransform(b []byte) bool {
	if len(b) == 0 || len(b)%2 != 0 {
		return false
	}
	for _, c := range b {
		if !isHexDigit(c) {
			return false
		}
	}
	return true
}

func isHexDigit(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c >= 'a' && c <= 'f':
		return true
	case c >= 'A' && c <= 'F':
		return true
	default:
		return false
	}
}

func (h Hex) Transform(b []byte) ([]byte, error) {
	out := make([]byte, hex.DecodedLen(len(b)))
	n, err := hex.Decode(out, b)
	if err != nil {
		return nil, DecodeFailureError{Name: h.Name(), Err: err}
	}
	return out[:n], nil
}

func (h Hex) Untransform(b []byte) ([]byte, error) {
	out := make([]byte, hex.EncodedLen(len(b)))
	hex.Encode(out, b)
	return out, nil
}

func (Hex) IsTwoWay() bool { return true }
