package shader

import (
	"fmt"
	"sort"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
	"go.uber.org/zap"

	gpulayout "github.com/wippyai/gpu-layout"
	"github.com/wippyai/gpu-layout/content"
	"github.com/wippyai/gpu-layout/errors"
	"github.com/wippyai/gpu-layout/internal/std140"
	"github.com/wippyai/gpu-layout/layout"
)

// Input is one vertex shader input.
type Input struct {
	Name     string
	Location uint32
}

// Binding is the resource slot of a buffer variable.
type Binding struct {
	Group   uint32
	Binding uint32
}

// Reflection is what a shader module declares about its buffer layouts and
// vertex inputs. It is immutable and safe for concurrent use.
type Reflection struct {
	blocks       map[string]*layout.Struct
	storage      map[string]*layout.Struct
	descriptors  map[string]content.Descriptor
	bindings     map[string]Binding
	inputs       map[string]uint32
	blockNames   []string
	storageNames []string
	inputList    []Input
}

// Option configures Reflect.
type Option func(*options)

type options struct {
	entryPoint string
}

// EntryPoint limits vertex input collection to the named entry point. By
// default all vertex entry points are merged.
func EntryPoint(name string) Option {
	return func(o *options) {
		o.entryPoint = name
	}
}

// ReflectWGSL parses, lowers and reflects WGSL source.
func ReflectWGSL(src string, opts ...Option) (*Reflection, error) {
	ast, err := naga.Parse(src)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseReflect, errors.KindInvalidInput, err, "parse WGSL")
	}
	module, err := naga.LowerWithSource(ast, src)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseReflect, errors.KindInvalidInput, err, "lower WGSL")
	}
	return Reflect(module, opts...)
}

// Reflect collects uniform blocks, storage buffers and vertex inputs from m.
func Reflect(m *ir.Module, opts ...Option) (*Reflection, error) {
	if m == nil {
		return nil, errors.NilPointer(errors.PhaseReflect, nil, "*ir.Module")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	r := &Reflection{
		blocks:      make(map[string]*layout.Struct),
		storage:     make(map[string]*layout.Struct),
		descriptors: make(map[string]content.Descriptor),
		bindings:    make(map[string]Binding),
		inputs:      make(map[string]uint32),
	}

	for _, gv := range m.GlobalVariables {
		switch gv.Space {
		case ir.SpaceUniform:
			if err := r.addUniform(m, gv); err != nil {
				return nil, err
			}
		case ir.SpaceStorage:
			if err := r.addStorage(m, gv); err != nil {
				return nil, err
			}
		}
	}

	if err := r.addInputs(m, o.entryPoint); err != nil {
		return nil, err
	}

	Logger().Debug("reflected shader module",
		zap.Int("uniform_blocks", len(r.blockNames)),
		zap.Int("storage_buffers", len(r.storageNames)),
		zap.Int("vertex_inputs", len(r.inputList)))

	return r, nil
}

func (r *Reflection) addUniform(m *ir.Module, gv ir.GlobalVariable) error {
	c := newConverter(m, std140.Uniform)
	t, err := c.typ(gv.Type, []string{gv.Name})
	if err != nil {
		return err
	}
	st, ok := t.Inner.(ir.StructType)
	if !ok {
		Logger().Debug("skipping non-struct uniform", zap.String("name", gv.Name))
		return nil
	}

	block, err := c.structBlock(st, 0, []string{gv.Name})
	if err != nil {
		return err
	}

	r.blocks[gv.Name] = block
	r.blockNames = append(r.blockNames, gv.Name)
	if t.Name != "" && t.Name != gv.Name {
		if _, taken := r.blocks[t.Name]; !taken {
			r.blocks[t.Name] = block
		}
	}
	r.addBinding(gv)
	return nil
}

func (r *Reflection) addStorage(m *ir.Module, gv ir.GlobalVariable) error {
	c := newConverter(m, std140.Storage)
	path := []string{gv.Name}
	t, err := c.typ(gv.Type, path)
	if err != nil {
		return err
	}

	switch inner := t.Inner.(type) {
	case ir.StructType:
		block, err := c.structBlock(inner, 0, path)
		if err != nil {
			return err
		}
		r.storage[gv.Name] = block
		r.storageNames = append(r.storageNames, gv.Name)
		if n := len(inner.Members); n > 0 {
			last := block.Members[n-1].Block
			if stride, ok := unsizedStride(last); ok {
				r.descriptors[gv.Name] = content.Descriptor{
					FixedSize: int(offsetOf(last)),
					Stride:    int(stride),
				}
			}
		}
	case ir.ArrayType:
		b, err := c.arrayBlock(inner, 0, path)
		if err != nil {
			return err
		}
		r.storage[gv.Name] = (&layout.Struct{}).Add(gv.Name, b)
		r.storageNames = append(r.storageNames, gv.Name)
		if stride, ok := unsizedStride(b); ok {
			r.descriptors[gv.Name] = content.Descriptor{FixedSize: 0, Stride: int(stride)}
		}
	default:
		return nil
	}
	r.addBinding(gv)
	return nil
}

func (r *Reflection) addBinding(gv ir.GlobalVariable) {
	if gv.Binding != nil {
		r.bindings[gv.Name] = Binding{Group: gv.Binding.Group, Binding: gv.Binding.Binding}
	}
}

func unsizedStride(b layout.Block) (uintptr, bool) {
	switch n := b.(type) {
	case layout.Leaf:
		return n.Stride, n.Count == layout.Unsized
	case *layout.Array:
		return n.Stride, n.Count == layout.Unsized
	}
	return 0, false
}

func offsetOf(b layout.Block) uintptr {
	switch n := b.(type) {
	case layout.Leaf:
		return n.Offset
	case *layout.Array:
		return n.Offset
	}
	return 0
}

func (r *Reflection) addInputs(m *ir.Module, entryPoint string) error {
	found := entryPoint == ""
	for _, ep := range m.EntryPoints {
		if ep.Stage != ir.StageVertex {
			continue
		}
		if entryPoint != "" && ep.Name != entryPoint {
			continue
		}
		found = true

		for _, arg := range ep.Function.Arguments {
			if loc, ok := locationOf(arg.Binding); ok {
				if err := r.addInput(ep.Name, arg.Name, loc); err != nil {
					return err
				}
				continue
			}
			if int(arg.Type) >= len(m.Types) {
				continue
			}
			st, ok := m.Types[arg.Type].Inner.(ir.StructType)
			if !ok {
				continue
			}
			for _, member := range st.Members {
				if loc, ok := locationOf(member.Binding); ok {
					if err := r.addInput(ep.Name, member.Name, loc); err != nil {
						return err
					}
				}
			}
		}
	}

	if !found {
		return errors.NotFound(errors.PhaseReflect, "vertex entry point", entryPoint)
	}

	sort.Slice(r.inputList, func(i, j int) bool {
		return r.inputList[i].Location < r.inputList[j].Location
	})
	return nil
}

func (r *Reflection) addInput(entryPoint, name string, loc uint32) error {
	if prev, ok := r.inputs[name]; ok {
		if prev != loc {
			e := errors.InvalidInput(errors.PhaseReflect, fmt.Sprintf("input declared at locations %d and %d", prev, loc))
			e.Path = []string{entryPoint, name}
			return e
		}
		return nil
	}
	r.inputs[name] = loc
	r.inputList = append(r.inputList, Input{Name: name, Location: loc})
	return nil
}

func locationOf(b *ir.Binding) (uint32, bool) {
	if b == nil || *b == nil {
		return 0, false
	}
	switch v := (*b).(type) {
	case ir.LocationBinding:
		return v.Location, true
	case *ir.LocationBinding:
		return v.Location, true
	}
	return 0, false
}

// UniformBlock returns a uniform block by variable or struct type name.
func (r *Reflection) UniformBlock(name string) (*layout.Struct, bool) {
	b, ok := r.blocks[name]
	return b, ok
}

// UniformBlocks returns uniform variable names in declaration order.
func (r *Reflection) UniformBlocks() []string {
	return append([]string(nil), r.blockNames...)
}

// StorageBlock returns the layout of a storage variable.
func (r *Reflection) StorageBlock(name string) (*layout.Struct, bool) {
	b, ok := r.storage[name]
	return b, ok
}

// StorageBuffers returns storage variable names in declaration order.
func (r *Reflection) StorageBuffers() []string {
	return append([]string(nil), r.storageNames...)
}

// StorageBuffer returns the content descriptor of a storage variable ending
// in a runtime-sized array.
func (r *Reflection) StorageBuffer(name string) (content.Descriptor, bool) {
	d, ok := r.descriptors[name]
	return d, ok
}

// AttributeLocation returns the location of a vertex input.
func (r *Reflection) AttributeLocation(name string) (uint32, bool) {
	loc, ok := r.inputs[name]
	return loc, ok
}

// Inputs returns vertex inputs ordered by location.
func (r *Reflection) Inputs() []Input {
	return append([]Input(nil), r.inputList...)
}

// BindingOf returns the group and binding of a uniform or storage variable.
func (r *Reflection) BindingOf(name string) (Binding, bool) {
	b, ok := r.bindings[name]
	return b, ok
}

var _ gpulayout.Reflector = (*Reflection)(nil)
