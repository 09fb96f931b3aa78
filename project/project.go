package project

import (
	"github.com/google/uuid"

	"github.com/h2gb/h2core/buffer"
	"github.com/h2gb/h2core/bumpy"
	"github.com/h2gb/h2core/bytecontext"
	"github.com/h2gb/h2core/datareg"
	"github.com/h2gb/h2core/h2type"
	"github.com/h2gb/h2core/internal/logx"
	"github.com/h2gb/h2core/multivector"
	"github.com/h2gb/h2core/transform"
)

var logger = logx.New("project")

// Project is the aggregate root: it owns every Buffer by name, the shared
// Data registry, and the ordered log of applied Actions (plus the stack
// of undone ones available to Redo). No Buffer, Layer or Entry is ever
// reached except through a Project.
type Project struct {
	ID           string
	Buffers      map[string]*buffer.Buffer
	DataRegistry *datareg.Registry
	Metadata     map[string]string

	ActionLog []LogEntry
	RedoStack []LogEntry
	truncated bool
}

// New returns an empty Project with a fresh ID and an empty Data registry.
func New() *Project {
	return &Project{
		ID:           uuid.NewString(),
		Buffers:      make(map[string]*buffer.Buffer),
		DataRegistry: datareg.New(),
		Metadata:     make(map[string]string),
	}
}

// dispatch executes a, without touching the log, returning its inverse and
// (for EditBytes only) the re-resolution Notices the host should display.
func (p *Project) dispatch(a Action) (Action, []buffer.Notice, error) {
	switch a.Kind {
	case KindCreateBuffer:
		inv, err := p.applyCreateBuffer(a)
		return inv, nil, err
	case KindDeleteBuffer:
		inv, err := p.applyDeleteBuffer(a)
		return inv, nil, err
	case KindCloneBuffer:
		inv, err := p.applyCloneBuffer(a)
		return inv, nil, err
	case KindExtractBuffer:
		inv, err := p.applyExtractBuffer(a)
		return inv, nil, err
	case KindAddLayer:
		inv, err := p.applyAddLayer(a)
		return inv, nil, err
	case KindRemoveLayer:
		inv, err := p.applyRemoveLayer(a)
		return inv, nil, err
	case KindCreateEntry:
		inv, err := p.applyCreateEntry(a)
		return inv, nil, err
	case KindUndefineRange:
		inv, err := p.applyUndefineRange(a)
		return inv, nil, err
	case KindRestoreEntries:
		inv, err := p.applyRestoreEntries(a)
		return inv, nil, err
	case KindTransform:
		inv, err := p.applyTransform(a)
		return inv, nil, err
	case KindUntransform:
		inv, err := p.applyUntransform(a)
		return inv, nil, err
	case KindEditBytes:
		return p.applyEditBytes(a)
	case KindAddXref:
		inv, err := p.applyAddXref(a)
		return inv, nil, err
	case KindRemoveXref:
		inv, err := p.applyRemoveXref(a)
		return inv, nil, err
	default:
		return Action{}, nil, UnknownActionError{Kind: a.Kind}
	}
}

// Apply executes a, appends it (with its computed inverse) to the action
// log, and clears the redo stack. If a is a one-way Transform, the log is
// truncated immediately afterward (spec.md §9's Open Question, resolved
// in DESIGN.md: fail fast rather than merely mark future undo invalid).
func (p *Project) Apply(a Action) ([]buffer.Notice, error) {
	inverse, notices, err := p.dispatch(a)
	if err != nil {
		return nil, err
	}
	p.ActionLog = append(p.ActionLog, LogEntry{Action: a, Inverse: inverse})
	p.RedoStack = nil
	if a.Kind == KindTransform && a.Transform != nil && !a.Transform.IsTwoWay() {
		p.ClearUndo()
	}
	return notices, nil
}

// Undo pops the most recent LogEntry and applies its inverse, pushing the
// popped entry onto the redo stack.
func (p *Project) Undo() error {
	if len(p.ActionLog) == 0 {
		if p.truncated {
			return UndoTruncatedError{}
		}
		return NothingToUndoError{}
	}
	last := p.ActionLog[len(p.ActionLog)-1]
	p.ActionLog = p.ActionLog[:len(p.ActionLog)-1]
	if _, _, err := p.dispatch(last.Inverse); err != nil {
		p.ActionLog = append(p.ActionLog, last)
		return err
	}
	p.RedoStack = append(p.RedoStack, last)
	return nil
}

// Redo pops the most recently undone LogEntry and re-applies its original
// Action, pushing it back onto the action log.
func (p *Project) Redo() error {
	if len(p.RedoStack) == 0 {
		return NothingToRedoError{}
	}
	last := p.RedoStack[len(p.RedoStack)-1]
	p.RedoStack = p.RedoStack[:len(p.RedoStack)-1]
	if _, _, err := p.dispatch(last.Action); err != nil {
		p.RedoStack = append(p.RedoStack, last)
		return err
	}
	p.ActionLog = append(p.ActionLog, last)
	return nil
}

// ClearUndo truncates the action log, used after an irreversible
// transformation commits. A later Undo call on an empty, truncated log
// reports UndoTruncatedError instead of the plain NothingToUndoError a
// freshly created Project would give, so a host can tell "nothing has
// happened yet" from "something happened that can't be undone" apart.
func (p *Project) ClearUndo() {
	p.ActionLog = nil
	p.truncated = true
}

// GetUpdatesSince returns every Action applied at or after log index rev,
// letting an external viewer incrementally resync (spec.md §4.8, §5's
// ordering guarantee: log order is observation order).
func (p *Project) GetUpdatesSince(rev int) []Action {
	if rev < 0 || rev > len(p.ActionLog) {
		return nil
	}
	out := make([]Action, 0, len(p.ActionLog)-rev)
	for _, e := range p.ActionLog[rev:] {
		out = append(out, e.Action)
	}
	return out
}

// GetActions returns every Action applied so far, in application order.
func (p *Project) GetActions() []Action {
	return p.GetUpdatesSince(0)
}

// GetBuffers returns the names of every buffer the project holds.
func (p *Project) GetBuffers() []string {
	out := make([]string, 0, len(p.Buffers))
	for name := range p.Buffers {
		out = append(out, name)
	}
	return out
}

// GetLayers returns the layer names defined on buf.
func (p *Project) GetLayers(buf string) ([]string, error) {
	b, ok := p.Buffers[buf]
	if !ok {
		return nil, NameMissingError{Name: buf}
	}
	return b.Layers.VectorNames(), nil
}

// GetEntries returns every entry currently stored in buf's named layer.
func (p *Project) GetEntries(buf, layer string) ([]bumpy.Entry[buffer.Entry], error) {
	b, ok := p.Buffers[buf]
	if !ok {
		return nil, NameMissingError{Name: buf}
	}
	return b.Layers.All(layer)
}

// Snapshot is the shape GetEverything hands a host: every buffer name
// paired with the buffer itself, for read-only inspection.
type Snapshot struct {
	ID       string
	Buffers  map[string]*buffer.Buffer
	Metadata map[string]string
}

// GetEverything returns a read-only snapshot of the whole project.
func (p *Project) GetEverything() Snapshot {
	return Snapshot{ID: p.ID, Buffers: p.Buffers, Metadata: p.Metadata}
}

// --- convenience wrappers: build an Action and Apply it ---

// CreateBuffer adds a new buffer named name over bytes.
func (p *Project) CreateBuffer(name string, bytes []byte, baseAddress uint64) error {
	_, err := p.Apply(Action{Kind: KindCreateBuffer, Buffer: name, Bytes: bytes, BaseAddress: baseAddress})
	return err
}

// DeleteBuffer removes buffer name entirely, along with its layers and
// entries. Its inverse recreates an empty, unannotated buffer with the
// same bytes; layers and entries existing at the time of deletion are not
// restored by Undo, the one intentional fidelity gap in the action model
// (deleting a buffer is a coarser operation than anything else in this
// package, matching how dropping a wasm.Module section loses its contents
// for good rather than keeping them parked).
func (p *Project) DeleteBuffer(name string) error {
	_, err := p.Apply(Action{Kind: KindDeleteBuffer, Buffer: name})
	return err
}

// CloneBuffer copies buffer src's bytes into a new buffer named newName.
func (p *Project) CloneBuffer(src, newName string) error {
	_, err := p.Apply(Action{Kind: KindCloneBuffer, Buffer: src, NewName: newName})
	return err
}

// ExtractBuffer carves r out of buffer src into a new child buffer named
// newName.
func (p *Project) ExtractBuffer(src string, r bumpy.Range, newName string) error {
	_, err := p.Apply(Action{Kind: KindExtractBuffer, Buffer: src, Range: r, NewName: newName})
	return err
}

// SplitBuffer cuts src's bytes at each address in cuts, extracting
// len(cuts)+1 children named by newNames, each applied as its own
// ExtractBuffer Action (so Undo can peel children off split one at a
// time, matching §4.8's one-Action-per-mutation discipline).
func (p *Project) SplitBuffer(src string, cuts []uint64, newNames []string) error {
	b, ok := p.Buffers[src]
	if !ok {
		return NameMissingError{Name: src}
	}
	if len(newNames) != len(cuts)+1 {
		return buffer.NameCountMismatchError{Cuts: len(cuts), Names: len(newNames)}
	}
	bounds := append([]uint64{0}, cuts...)
	bounds = append(bounds, uint64(len(b.Bytes)))
	for i := 1; i < len(bounds); i++ {
		if bounds[i] <= bounds[i-1] {
			return buffer.InvalidCutsError{Cuts: cuts}
		}
	}
	for i, name := range newNames {
		r := bumpy.Range{Start: bounds[i], End: bounds[i+1]}
		if err := p.ExtractBuffer(src, r, name); err != nil {
			return err
		}
	}
	return nil
}

// AddLayer creates a new, empty layer named layer on buffer buf.
func (p *Project) AddLayer(buf, layer string) error {
	_, err := p.Apply(Action{Kind: KindAddLayer, Buffer: buf, Layer: layer})
	return err
}

// RemoveLayer deletes layer from buf, destroying every entry it holds.
func (p *Project) RemoveLayer(buf, layer string) error {
	_, err := p.Apply(Action{Kind: KindRemoveLayer, Buffer: buf, Layer: layer})
	return err
}

// CreateEntry resolves typ against buf's bytes at offset and inserts it
// into layer.
func (p *Project) CreateEntry(buf, layer string, typ h2type.H2Type, offset uint64, endian bytecontext.Endian) error {
	_, err := p.Apply(Action{Kind: KindCreateEntry, Buffer: buf, Layer: layer, Type: typ, Offset: offset, Endian: endian})
	return err
}

// UndefineRange removes every entry in buf's layer intersecting r.
func (p *Project) UndefineRange(buf, layer string, r bumpy.Range) error {
	_, err := p.Apply(Action{Kind: KindUndefineRange, Buffer: buf, Layer: layer, Range: r})
	return err
}

// Transform applies variant to buffer buf's bytes.
func (p *Project) Transform(buf string, variant transform.Transformation) error {
	_, err := p.Apply(Action{Kind: KindTransform, Buffer: buf, Transform: variant})
	return err
}

// EditBytes overwrites buffer buf's bytes in r with newBytes, returning
// any re-resolution Notices (spec.md §4.7).
func (p *Project) EditBytes(buf string, r bumpy.Range, newBytes []byte, endian bytecontext.Endian) ([]buffer.Notice, error) {
	return p.Apply(Action{Kind: KindEditBytes, Buffer: buf, Range: r, Bytes: newBytes, Endian: endian})
}

// AddXref records that fromAddr in buffer fromBuffer references toAddr in
// buffer toBuffer, stored (per spec.md §4.7) on the target buffer.
func (p *Project) AddXref(toBuffer string, fromBuffer string, fromAddr uint64) error {
	_, err := p.Apply(Action{Kind: KindAddXref, Buffer: toBuffer, FromBuffer: fromBuffer, FromAddr: fromAddr})
	return err
}

// RemoveXref deletes a previously recorded cross-reference.
func (p *Project) RemoveXref(toBuffer string, fromBuffer string, fromAddr uint64) error {
	_, err := p.Apply(Action{Kind: KindRemoveXref, Buffer: toBuffer, FromBuffer: fromBuffer, FromAddr: fromAddr})
	return err
}

// --- per-kind apply implementations ---

func (p *Project) applyCreateBuffer(a Action) (Action, error) {
	if _, exists := p.Buffers[a.Buffer]; exists {
		return Action{}, NameExistsError{Name: a.Buffer}
	}
	p.Buffers[a.Buffer] = buffer.New(a.Buffer, a.Bytes, a.BaseAddress)
	logger.Printf("created buffer %q", a.Buffer)
	return Action{Kind: KindDeleteBuffer, Buffer: a.Buffer}, nil
}

func (p *Project) applyDeleteBuffer(a Action) (Action, error) {
	b, ok := p.Buffers[a.Buffer]
	if !ok {
		return Action{}, NameMissingError{Name: a.Buffer}
	}
	delete(p.Buffers, a.Buffer)
	if b.Parent != nil {
		if parent, ok := p.Buffers[b.Parent.Buffer]; ok {
			delete(parent.Children, a.Buffer)
		}
	}
	snapshot := make([]byte, len(b.Bytes))
	copy(snapshot, b.Bytes)
	return Action{Kind: KindCreateBuffer, Buffer: a.Buffer, Bytes: snapshot, BaseAddress: b.BaseAddress}, nil
}

func (p *Project) applyCloneBuffer(a Action) (Action, error) {
	src, ok := p.Buffers[a.Buffer]
	if !ok {
		return Action{}, NameMissingError{Name: a.Buffer}
	}
	if _, exists := p.Buffers[a.NewName]; exists {
		return Action{}, NameExistsError{Name: a.NewName}
	}
	p.Buffers[a.NewName] = src.CloneAs(a.NewName)
	return Action{Kind: KindDeleteBuffer, Buffer: a.NewName}, nil
}

func (p *Project) applyExtractBuffer(a Action) (Action, error) {
	src, ok := p.Buffers[a.Buffer]
	if !ok {
		return Action{}, NameMissingError{Name: a.Buffer}
	}
	if _, exists := p.Buffers[a.NewName]; exists {
		return Action{}, NameExistsError{Name: a.NewName}
	}
	child, err := src.Extract(a.Range, a.NewName)
	if err != nil {
		return Action{}, err
	}
	p.Buffers[a.NewName] = child
	return Action{Kind: KindDeleteBuffer, Buffer: a.NewName}, nil
}

func (p *Project) applyAddLayer(a Action) (Action, error) {
	b, ok := p.Buffers[a.Buffer]
	if !ok {
		return Action{}, NameMissingError{Name: a.Buffer}
	}
	if err := b.AddLayer(a.Layer); err != nil {
		return Action{}, err
	}
	for _, ce := range a.CapturedEntries {
		ins := []multivector.Insertion[buffer.Entry]{{Vector: a.Layer, Range: ce.Range, Value: ce.Value}}
		if _, err := b.Layers.InsertEntries(ins); err != nil {
			return Action{}, err
		}
	}
	return Action{Kind: KindRemoveLayer, Buffer: a.Buffer, Layer: a.Layer}, nil
}

func (p *Project) applyRemoveLayer(a Action) (Action, error) {
	b, ok := p.Buffers[a.Buffer]
	if !ok {
		return Action{}, NameMissingError{Name: a.Buffer}
	}
	all, err := b.Layers.All(a.Layer)
	if err != nil {
		return Action{}, err
	}
	if err := b.RemoveLayer(a.Layer); err != nil {
		return Action{}, err
	}
	captured := make([]CapturedEntry, len(all))
	for i, e := range all {
		captured[i] = CapturedEntry{Range: e.Range, Value: e.Value}
	}
	return Action{Kind: KindAddLayer, Buffer: a.Buffer, Layer: a.Layer, CapturedEntries: captured}, nil
}

func (p *Project) applyCreateEntry(a Action) (Action, error) {
	b, ok := p.Buffers[a.Buffer]
	if !ok {
		return Action{}, NameMissingError{Name: a.Buffer}
	}
	if _, err := b.CreateEntry(a.Layer, a.Type, a.Offset, a.Endian); err != nil {
		return Action{}, err
	}
	deleteRange := bumpy.Range{Start: a.Offset, End: a.Offset + 1}
	return Action{Kind: KindUndefineRange, Buffer: a.Buffer, Layer: a.Layer, Range: deleteRange}, nil
}

func (p *Project) applyUndefineRange(a Action) (Action, error) {
	b, ok := p.Buffers[a.Buffer]
	if !ok {
		return Action{}, NameMissingError{Name: a.Buffer}
	}
	removed, err := b.UndefineRange(a.Layer, a.Range)
	if err != nil {
		return Action{}, err
	}
	captured := make([]CapturedEntry, len(removed))
	for i, e := range removed {
		captured[i] = CapturedEntry{Range: e.Range, Value: e.Value}
	}
	return Action{Kind: KindRestoreEntries, Buffer: a.Buffer, Layer: a.Layer, CapturedEntries: captured, Range: a.Range}, nil
}

func (p *Project) applyRestoreEntries(a Action) (Action, error) {
	b, ok := p.Buffers[a.Buffer]
	if !ok {
		return Action{}, NameMissingError{Name: a.Buffer}
	}
	for _, ce := range a.CapturedEntries {
		ins := []multivector.Insertion[buffer.Entry]{{Vector: a.Layer, Range: ce.Range, Value: ce.Value}}
		if _, err := b.Layers.InsertEntries(ins); err != nil {
			return Action{}, err
		}
	}
	return Action{Kind: KindUndefineRange, Buffer: a.Buffer, Layer: a.Layer, Range: a.Range}, nil
}

func (p *Project) applyTransform(a Action) (Action, error) {
	b, ok := p.Buffers[a.Buffer]
	if !ok {
		return Action{}, NameMissingError{Name: a.Buffer}
	}
	if err := b.Transform(a.Transform); err != nil {
		return Action{}, err
	}
	return Action{Kind: KindUntransform, Buffer: a.Buffer, Transform: a.Transform}, nil
}

func (p *Project) applyUntransform(a Action) (Action, error) {
	b, ok := p.Buffers[a.Buffer]
	if !ok {
		return Action{}, NameMissingError{Name: a.Buffer}
	}
	if err := b.Untransform(); err != nil {
		return Action{}, err
	}
	return Action{Kind: KindTransform, Buffer: a.Buffer, Transform: a.Transform}, nil
}

func (p *Project) applyEditBytes(a Action) (Action, []buffer.Notice, error) {
	b, ok := p.Buffers[a.Buffer]
	if !ok {
		return Action{}, nil, NameMissingError{Name: a.Buffer}
	}
	old, notices, err := b.EditBytes(a.Range, a.Bytes, a.Endian)
	if err != nil {
		return Action{}, nil, err
	}
	inverse := Action{Kind: KindEditBytes, Buffer: a.Buffer, Range: a.Range, Bytes: old, Endian: a.Endian}
	return inverse, notices, nil
}

func (p *Project) applyAddXref(a Action) (Action, error) {
	target, ok := p.Buffers[a.Buffer]
	if !ok {
		return Action{}, NameMissingError{Name: a.Buffer}
	}
	target.AddXref(a.FromBuffer, a.FromAddr)
	return Action{Kind: KindRemoveXref, Buffer: a.Buffer, FromBuffer: a.FromBuffer, FromAddr: a.FromAddr}, nil
}

func (p *Project) applyRemoveXref(a Action) (Action, error) {
	target, ok := p.Buffers[a.Buffer]
	if !ok {
		return Action{}, NameMissingError{Name: a.Buffer}
	}
	target.RemoveXref(a.FromBuffer, a.FromAddr)
	return Action{Kind: KindAddXref, Buffer: a.Buffer, FromBuffer: a.FromBuffer, FromAddr: a.FromAddr}, nil
}
