package project

import (
	stdjson "encoding/json"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/h2gb/h2core/buffer"
	"github.com/h2gb/h2core/bumpy"
	"github.com/h2gb/h2core/bytecontext"
	"github.com/h2gb/h2core/datareg"
	"github.com/h2gb/h2core/h2type"
	"github.com/h2gb/h2core/multivector"
	"github.com/h2gb/h2core/transform"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SchemaVersion identifies the shape of the persisted project record.
// Save/Load compatibility is governed by this number, not by the concrete
// encoding (spec.md §6): a future schema bump gets its own decode branch
// in Load rather than breaking the one below.
const SchemaVersion = 1

// record is the self-describing nested shape spec.md §6 asks for:
// { metadata, buffers[], data_registry, action_log, schema_version }.
type record struct {
	SchemaVersion int                  `json:"schema_version"`
	ID            string               `json:"id"`
	Metadata      map[string]string    `json:"metadata"`
	DataRegistry  datareg.Dump         `json:"data_registry"`
	Buffers       []bufferRecord       `json:"buffers"`
	ActionLog     []logEntryRecord     `json:"action_log"`
}

type bufferRecord struct {
	ID              string                `json:"id"`
	Name            string                `json:"name"`
	BaseAddress     uint64                `json:"base_address"`
	Bytes           []byte                `json:"bytes"`
	IsEditable      bool                  `json:"is_editable"`
	Transformations []stdjson.RawMessage `json:"transformations,omitempty"`
	Parent          *buffer.ParentLink    `json:"parent,omitempty"`
	Children        []string              `json:"children,omitempty"`
	Refs            map[string]string     `json:"refs,omitempty"`
	ShowUndefined   map[string]bool       `json:"show_undefined,omitempty"`
	Inbound         []buffer.XRef         `json:"inbound,omitempty"`
	Layers          []layerRecord         `json:"layers,omitempty"`
}

type layerRecord struct {
	Name    string        `json:"name"`
	Entries []entryRecord `json:"entries"`
}

type entryRecord struct {
	Range      bumpy.Range         `json:"range"`
	Creator    buffer.CreatorKind  `json:"creator"`
	Display    string              `json:"display"`
	References []buffer.XRef       `json:"references,omitempty"`
	Recreator  stdjson.RawMessage `json:"recreator,omitempty"`
}

type logEntryRecord struct {
	Action  actionRecord `json:"action"`
	Inverse actionRecord `json:"inverse"`
}

// actionRecord mirrors Action field-for-field, substituting encoded
// envelopes for the two interface-typed fields (Type, Transform) that
// need h2type.Encode/transform.Encode to become JSON at all.
type actionRecord struct {
	Kind            Kind                  `json:"kind"`
	Buffer          string                `json:"buffer,omitempty"`
	NewName         string                `json:"new_name,omitempty"`
	Bytes           []byte                `json:"bytes,omitempty"`
	BaseAddress     uint64                `json:"base_address,omitempty"`
	Range           bumpy.Range           `json:"range"`
	Layer           string                `json:"layer,omitempty"`
	Offset          uint64                `json:"offset,omitempty"`
	Endian          int                   `json:"endian,omitempty"`
	Type            stdjson.RawMessage   `json:"type,omitempty"`
	CapturedEntries []capturedEntryRecord `json:"captured_entries,omitempty"`
	Transform       stdjson.RawMessage   `json:"transform,omitempty"`
	FromBuffer      string                `json:"from_buffer,omitempty"`
	FromAddr        uint64                `json:"from_addr,omitempty"`
}

type capturedEntryRecord struct {
	Range bumpy.Range `json:"range"`
	Value entryRecord `json:"value"`
}

// Save serialises p's state (buffers, layers, entries, the data
// registry's constants, enums and bitmasks, action log) to w as one JSON
// document. Registered named types are not written.
func (p *Project) Save(w io.Writer) error {
	rec := record{
		SchemaVersion: SchemaVersion,
		ID:            p.ID,
		Metadata:      p.Metadata,
		DataRegistry:  p.DataRegistry.Dump(),
	}

	for name, b := range p.Buffers {
		br, err := encodeBuffer(name, b)
		if err != nil {
			return err
		}
		rec.Buffers = append(rec.Buffers, br)
	}

	for _, le := range p.ActionLog {
		a, err := encodeAction(le.Action)
		if err != nil {
			return err
		}
		inv, err := encodeAction(le.Inverse)
		if err != nil {
			return err
		}
		rec.ActionLog = append(rec.ActionLog, logEntryRecord{Action: a, Inverse: inv})
	}

	enc := json.NewEncoder(w)
	return enc.Encode(rec)
}

// Load builds a new Project from the project record read from r. A record
// whose schema version differs from SchemaVersion is rejected.
func Load(r io.Reader) (*Project, error) {
	var rec record
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return nil, err
	}
	if rec.SchemaVersion != SchemaVersion {
		return nil, fmt.Errorf("project: unsupported schema version %d", rec.SchemaVersion)
	}

	p := &Project{
		ID:           rec.ID,
		Buffers:      make(map[string]*buffer.Buffer),
		DataRegistry: datareg.New(),
		Metadata:     rec.Metadata,
	}
	if p.Metadata == nil {
		p.Metadata = make(map[string]string)
	}
	if err := p.DataRegistry.Load(rec.DataRegistry); err != nil {
		return nil, err
	}

	for _, br := range rec.Buffers {
		b, err := decodeBuffer(br, p.DataRegistry)
		if err != nil {
			return nil, err
		}
		p.Buffers[br.Name] = b
	}

	for _, ler := range rec.ActionLog {
		a, err := decodeAction(ler.Action, p.DataRegistry)
		if err != nil {
			return nil, err
		}
		inv, err := decodeAction(ler.Inverse, p.DataRegistry)
		if err != nil {
			return nil, err
		}
		p.ActionLog = append(p.ActionLog, LogEntry{Action: a, Inverse: inv})
	}

	return p, nil
}

func encodeBuffer(name string, b *buffer.Buffer) (bufferRecord, error) {
	br := bufferRecord{
		ID:            b.ID,
		Name:          name,
		BaseAddress:   b.BaseAddress,
		Bytes:         b.Bytes,
		IsEditable:    b.IsEditable,
		Parent:        b.Parent,
		Refs:          b.Refs,
		ShowUndefined: b.ShowUndefined,
		Inbound:       b.Inbound,
	}
	for child := range b.Children {
		br.Children = append(br.Children, child)
	}
	for _, t := range b.Transformations {
		data, err := transform.Encode(t.Variant)
		if err != nil {
			return bufferRecord{}, err
		}
		br.Transformations = append(br.Transformations, data)
	}
	for _, layerName := range b.Layers.VectorNames() {
		entries, err := b.Layers.All(layerName)
		if err != nil {
			return bufferRecord{}, err
		}
		lr := layerRecord{Name: layerName}
		for _, e := range entries {
			er, err := encodeEntry(e.Range, e.Value)
			if err != nil {
				return bufferRecord{}, err
			}
			lr.Entries = append(lr.Entries, er)
		}
		br.Layers = append(br.Layers, lr)
	}
	return br, nil
}

func encodeEntry(r bumpy.Range, e buffer.Entry) (entryRecord, error) {
	er := entryRecord{Range: r, Creator: e.Creator, Display: e.Display, References: e.References}
	if e.Recreator != nil {
		data, err := h2type.Encode(e.Recreator)
		if err != nil {
			return entryRecord{}, err
		}
		er.Recreator = data
	}
	return er, nil
}

func decodeBuffer(br bufferRecord, registry *datareg.Registry) (*buffer.Buffer, error) {
	b := buffer.New(br.Name, br.Bytes, br.BaseAddress)
	b.ID = br.ID
	b.IsEditable = br.IsEditable
	b.Parent = br.Parent
	if br.Refs != nil {
		b.Refs = br.Refs
	}
	if br.ShowUndefined != nil {
		b.ShowUndefined = br.ShowUndefined
	}
	b.Inbound = br.Inbound
	for _, child := range br.Children {
		b.Children[child] = struct{}{}
	}
	for _, data := range br.Transformations {
		v, err := transform.Decode(data)
		if err != nil {
			return nil, err
		}
		b.Transformations = append(b.Transformations, buffer.AppliedTransform{Variant: v})
	}
	for _, lr := range br.Layers {
		if err := b.AddLayer(lr.Name); err != nil {
			return nil, err
		}
		for _, er := range lr.Entries {
			entry, err := decodeEntry(er, registry)
			if err != nil {
				return nil, err
			}
			ins := []multivector.Insertion[buffer.Entry]{{Vector: lr.Name, Range: er.Range, Value: entry}}
			if _, err := b.Layers.InsertEntries(ins); err != nil {
				return nil, err
			}
		}
	}
	return b, nil
}

func decodeEntry(er entryRecord, registry *datareg.Registry) (buffer.Entry, error) {
	e := buffer.Entry{Creator: er.Creator, Display: er.Display, References: er.References}
	if len(er.Recreator) > 0 {
		t, err := h2type.Decode(er.Recreator, registry)
		if err != nil {
			return buffer.Entry{}, err
		}
		e.Recreator = t
	}
	return e, nil
}

func encodeAction(a Action) (actionRecord, error) {
	ar := actionRecord{
		Kind:            a.Kind,
		Buffer:          a.Buffer,
		NewName:         a.NewName,
		Bytes:           a.Bytes,
		BaseAddress:     a.BaseAddress,
		Range:           a.Range,
		Layer:           a.Layer,
		Offset:          a.Offset,
		Endian:          int(a.Endian),
		FromBuffer:      a.FromBuffer,
		FromAddr:        a.FromAddr,
	}
	if a.Type != nil {
		data, err := h2type.Encode(a.Type)
		if err != nil {
			return actionRecord{}, err
		}
		ar.Type = data
	}
	if a.Transform != nil {
		data, err := transform.Encode(a.Transform)
		if err != nil {
			return actionRecord{}, err
		}
		ar.Transform = data
	}
	for _, ce := range a.CapturedEntries {
		er, err := encodeEntry(ce.Range, ce.Value)
		if err != nil {
			return actionRecord{}, err
		}
		ar.CapturedEntries = append(ar.CapturedEntries, capturedEntryRecord{Range: ce.Range, Value: er})
	}
	return ar, nil
}

func decodeAction(ar actionRecord, registry *datareg.Registry) (Action, error) {
	a := Action{
		Kind:        ar.Kind,
		Buffer:      ar.Buffer,
		NewName:     ar.NewName,
		Bytes:       ar.Bytes,
		BaseAddress: ar.BaseAddress,
		Range:       ar.Range,
		Layer:       ar.Layer,
		Offset:      ar.Offset,
		Endian:      bytecontext.Endian(ar.Endian),
		FromBuffer:  ar.FromBuffer,
		FromAddr:    ar.FromAddr,
	}
	if len(ar.Type) > 0 {
		t, err := h2type.Decode(ar.Type, registry)
		if err != nil {
			return Action{}, err
		}
		a.Type = t
	}
	if len(ar.Transform) > 0 {
		v, err := transform.Decode(ar.Transform)
		if err != nil {
			return Action{}, err
		}
		a.Transform = v
	}
	for _, cer := range ar.CapturedEntries {
		e, err := decodeEntry(cer.Value, registry)
		if err != nil {
			return Action{}, err
		}
		a.CapturedEntries = append(a.CapturedEntries, CapturedEntry{Range: cer.Range, Value: e})
	}
	return a, nil
}
