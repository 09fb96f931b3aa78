package transform

import (
	stdjson "encoding/json"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// envelope is the on-disk shape of an encoded Transformation: a "kind"
// discriminator (its Name()) plus whatever fields the concrete variant
// needs, the same shape wagon gives SectionID (a small tagged value with a
// String() method), extended one layer further since a Transformation
// round-trips through a file instead of staying in memory.
type envelope struct {
	Kind string          `json:"kind"`
	Data stdjson.RawMessage `json:"data,omitempty"`
}

// UnknownKindError is returned by Decode when the envelope's kind
// discriminator does not match any registered Transformation variant.
type UnknownKindError struct {
	Kind string
}

func (e UnknownKindError) Error() string {
	return "transform: unknown kind " + e.Kind
}

// Encode serialises t to its envelope form: its Name() as the
// discriminator, plus its own fields (only XorByConstant carries any).
func Encode(t Transformation) ([]byte, error) {
	env := envelope{Kind: t.Name()}
	switch v := t.(type) {
	case XorByConstant:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		env.Data = data
	}
	return json.Marshal(env)
}

// Decode reconstructs the Transformation an Encode call produced. Every
// built-in variant round-trips: none of them close over anything that
// cannot survive a JSON field.
func Decode(data []byte) (Transformation, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	switch env.Kind {
	case (Hex{}).Name():
		return Hex{}, nil
	case (Base32{}).Name():
		return Base32{}, nil
	case (Base64{}).Name():
		return Base64{}, nil
	case (Deflate{}).Name():
		return Deflate{}, nil
	case (Snappy{}).Name():
		return Snappy{}, nil
	case (BitReverse{}).Name():
		return BitReverse{}, nil
	case (XorByConstant{}).Name():
		var v XorByConstant
		if len(env.Data) > 0 {
			if err := json.Unmarshal(env.Data, &v); err != nil {
				return nil, err
			}
		}
		return v, nil
	default:
		return nil, UnknownKindError{Kind: env.Kind}
	}
}
