package transform

import (
	"bytes"
	"compress/flate"
	"io"
)

// Deflate decompresses a raw DEFLATE stream into its original bytes
// (Transform) and re-compresses bytes back into a DEFLATE stream
// (Untransform). Backed by the standard library's compress/flate: no
// third-party deflate-compatible codec appears anywhere in the retrieved
// example pack, so there is no ecosystem alternative to prefer.
type Deflate struct{}

func (Deflate) Name() string { return "deflate" }

func (Deflate) CanTransform(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	r := flate.NewReader(bytes.NewReader(b))
	defer r.Close()
	_, err := io.Copy(io.Discard, r)
	return err == nil
}

func (d Deflate) Transform(b []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(b))
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, DecodeFailureError{Name: d.Name(), Err: err}
	}
	return out, nil
}

func (Deflate) Untransform(b []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(b); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (Deflate) IsTwoWay() bool { return true }
