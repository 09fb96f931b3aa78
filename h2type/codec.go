package h2type

import (
	stdjson "encoding/json"

	jsoniter "github.com/json-iterator/go"

	"github.com/h2gb/h2core/bytecontext"
	"github.com/h2gb/h2core/datareg"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// envelope is the on-disk shape of an encoded H2Type: a "kind"
// discriminator plus a kind-specific payload, mirroring
// transform.envelope (and, further back, wasm/types.go's tagged
// ValueType/BlockType rendering).
type envelope struct {
	Kind   string              `json:"kind"`
	Data   stdjson.RawMessage `json:"data"`
	Fields []fieldEnvelope     `json:"fields,omitempty"`
}

type fieldEnvelope struct {
	Name string          `json:"name"`
	Type stdjson.RawMessage `json:"type"`
}

// UnknownKindError is returned by Decode when the envelope's kind
// discriminator names no known H2Type variant.
type UnknownKindError struct {
	Kind string
}

func (e UnknownKindError) Error() string {
	return "h2type: unknown kind " + e.Kind
}

// NotSerializableError is returned by Encode for constructs that close
// over host callbacks rather than plain data: a Pointer with a Deref
// resolver, or an Array whose count function fails when evaluated at
// Static(0). (A count function that succeeds there is encoded as the
// fixed count it returned.) Neither can survive a round trip through a file the way a func value
// never can in Go; project.Save surfaces this rather than silently
// dropping the behavior it can't reproduce on Load.
type NotSerializableError struct {
	Kind   string
	Reason string
}

func (e NotSerializableError) Error() string {
	return "h2type: " + e.Kind + " is not serializable: " + e.Reason
}

type numberData struct {
	Reader    bytecontext.Reader    `json:"reader"`
	Formatter bytecontext.Formatter `json:"formatter"`
	Align     Alignment             `json:"align"`
}

type characterData struct {
	Reader *bytecontext.Reader `json:"reader,omitempty"`
	Align  Alignment           `json:"align"`
}

type arrayData struct {
	Count   int64     `json:"count"`
	Element stdjson.RawMessage `json:"element"`
	Align   Alignment `json:"align"`
}

type structData struct {
	Fields []fieldEnvelope `json:"fields"`
	Align  Alignment       `json:"align"`
}

type enumData struct {
	Reader    bytecontext.Reader    `json:"reader"`
	Formatter bytecontext.Formatter `json:"formatter"`
	Namespace string                `json:"namespace"`
	Name      string                `json:"name"`
	Align     Alignment             `json:"align"`
}

type bitmaskData struct {
	Reader    bytecontext.Reader `json:"reader"`
	Namespace string             `json:"namespace"`
	Name      string             `json:"name"`
	Align     Alignment          `json:"align"`
}

type pointerData struct {
	Reader       bytecontext.Reader `json:"reader"`
	TargetBuffer string             `json:"target_buffer"`
	Align        Alignment          `json:"align"`
}

type lpstringData struct {
	LengthReader bytecontext.Reader `json:"length_reader"`
	CharWidth    int                `json:"char_width"`
	Align        Alignment          `json:"align"`
}

type ntstringData struct {
	CharWidth  int       `json:"char_width"`
	Terminator []byte    `json:"terminator,omitempty"`
	MaxScan    int       `json:"max_scan"`
	Align      Alignment `json:"align"`
}

type unionData struct {
	Variants []fieldEnvelope `json:"variants"`
	Align    Alignment       `json:"align"`
}

// Encode serialises t to its envelope form. An encoded Enum/Bitmask
// payload carries only the (namespace, name) it resolves against, not the
// registry itself; Decode re-binds it to whichever *datareg.Registry the
// caller passes in.
func Encode(t H2Type) ([]byte, error) {
	switch v := t.(type) {
	case Number:
		return marshalEnvelope("number", numberData{Reader: v.Reader, Formatter: v.Formatter, Align: v.align})
	case Character:
		return marshalEnvelope("character", characterData{Reader: v.Reader, Align: v.align})
	case Array:
		n, err := v.Count(Static(0))
		if err != nil {
			return nil, NotSerializableError{Kind: "array", Reason: "late-bound count cannot be resolved without a live offset"}
		}
		elem, err := Encode(v.Element)
		if err != nil {
			return nil, err
		}
		return marshalEnvelope("array", arrayData{Count: n, Element: elem, Align: v.align})
	case Struct:
		fields, err := encodeFields(v.Fields)
		if err != nil {
			return nil, err
		}
		return marshalEnvelope("struct", structData{Fields: fields, Align: v.align})
	case Enum:
		return marshalEnvelope("enum", enumData{Reader: v.Reader, Formatter: v.Formatter, Namespace: v.Namespace, Name: v.Name, Align: v.align})
	case Bitmask:
		return marshalEnvelope("bitmask", bitmaskData{Reader: v.Reader, Namespace: v.Namespace, Name: v.Name, Align: v.align})
	case Pointer:
		if v.Deref != nil || v.Pointee != nil {
			return nil, NotSerializableError{Kind: "pointer", Reason: "a dereferencing pointer closes over a host Resolver func"}
		}
		return marshalEnvelope("pointer", pointerData{Reader: v.Reader, TargetBuffer: v.TargetBuffer, Align: v.align})
	case LPString:
		return marshalEnvelope("lpstring", lpstringData{LengthReader: v.LengthReader, CharWidth: v.CharWidth, Align: v.align})
	case NTString:
		return marshalEnvelope("ntstring", ntstringData{CharWidth: v.CharWidth, Terminator: v.Terminator, MaxScan: v.MaxScan, Align: v.align})
	case Union:
		variants := make([]fieldEnvelope, 0, len(v.Variants))
		for _, uv := range v.Variants {
			data, err := Encode(uv.Type)
			if err != nil {
				return nil, err
			}
			variants = append(variants, fieldEnvelope{Name: uv.Name, Type: data})
		}
		return marshalEnvelope("union", unionData{Variants: variants, Align: v.align})
	default:
		return nil, NotSerializableError{Kind: "unknown", Reason: "no concrete H2Type case matched"}
	}
}

func marshalEnvelope(kind string, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{Kind: kind, Data: raw})
}

func encodeFields(fields []StructField) ([]fieldEnvelope, error) {
	out := make([]fieldEnvelope, 0, len(fields))
	for _, f := range fields {
		data, err := Encode(f.Type)
		if err != nil {
			return nil, err
		}
		out = append(out, fieldEnvelope{Name: f.Name, Type: data})
	}
	return out, nil
}

// Decode reconstructs the H2Type an Encode call produced. registry is
// bound into any decoded Enum or Bitmask; pass nil if the tree contains
// neither.
func Decode(data []byte, registry *datareg.Registry) (H2Type, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	switch env.Kind {
	case "number":
		var d numberData
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return nil, err
		}
		return NewNumber(d.Reader, d.Formatter, d.Align), nil
	case "character":
		var d characterData
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return nil, err
		}
		if d.Reader != nil {
			return NewFixedCharacter(*d.Reader, d.Align), nil
		}
		return NewUTF8Character(d.Align), nil
	case "array":
		var d arrayData
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return nil, err
		}
		elem, err := Decode(d.Element, registry)
		if err != nil {
			return nil, err
		}
		return NewArray(d.Count, elem, d.Align), nil
	case "struct":
		var d structData
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return nil, err
		}
		fields, err := decodeFields(d.Fields, registry)
		if err != nil {
			return nil, err
		}
		structFields := make([]StructField, len(fields))
		for i, f := range fields {
			structFields[i] = StructField{Name: f.Name, Type: f.Type}
		}
		return NewStruct(structFields, d.Align), nil
	case "enum":
		var d enumData
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return nil, err
		}
		return NewEnum(d.Reader, d.Formatter, registry, d.Namespace, d.Name, d.Align), nil
	case "bitmask":
		var d bitmaskData
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return nil, err
		}
		return NewBitmask(d.Reader, registry, d.Namespace, d.Name, d.Align), nil
	case "pointer":
		var d pointerData
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return nil, err
		}
		return NewPointer(d.Reader, d.TargetBuffer, nil, nil, d.Align), nil
	case "lpstring":
		var d lpstringData
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return nil, err
		}
		return NewLPString(d.LengthReader, d.CharWidth, d.Align), nil
	case "ntstring":
		var d ntstringData
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return nil, err
		}
		nt := NewNTString(d.CharWidth, d.Terminator, d.Align)
		nt.MaxScan = d.MaxScan
		return nt, nil
	case "union":
		var d unionData
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return nil, err
		}
		variants := make([]UnionVariant, 0, len(d.Variants))
		for _, fv := range d.Variants {
			t, err := Decode(fv.Type, registry)
			if err != nil {
				return nil, err
			}
			variants = append(variants, UnionVariant{Name: fv.Name, Type: t})
		}
		return NewUnion(variants, d.Align), nil
	default:
		return nil, UnknownKindError{Kind: env.Kind}
	}
}

type decodedField struct {
	Name string
	Type H2Type
}

func decodeFields(fields []fieldEnvelope, registry *datareg.Registry) ([]decodedField, error) {
	out := make([]decodedField, 0, len(fields))
	for _, f := range fields {
		t, err := Decode(f.Type, registry)
		if err != nil {
			return nil, err
		}
		out = append(out, decodedField{Name: f.Name, Type: t})
	}
	return out, nil
}
