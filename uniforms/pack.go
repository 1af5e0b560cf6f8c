package uniforms

import (
	"reflect"
	"unsafe"

	"github.com/wippyai/gpu-layout/errors"
	"github.com/wippyai/gpu-layout/internal/std140"
	"github.com/wippyai/gpu-layout/internal/structtag"
	"github.com/wippyai/gpu-layout/layout"
	"github.com/wippyai/gpu-layout/typetag"
)

var calc = std140.NewCalculator(std140.Uniform)

// Pack writes every value at the offset of the block member with the same
// name. Members without a value stay zero. A value with no matching member
// is an error.
func (v *Values) Pack(block *layout.Struct) ([]byte, error) {
	if block == nil {
		return nil, errors.NilPointer(errors.PhasePack, nil, "*layout.Struct")
	}

	p := &packer{buf: make([]byte, Size(block))}
	for _, name := range v.names {
		member, ok := block.Member(name)
		if !ok {
			return nil, errors.FieldMissing(errors.PhasePack, nil, name)
		}
		if err := p.pack(member, reflect.ValueOf(v.values[name]), 0, []string{name}); err != nil {
			return nil, err
		}
	}
	return p.buf, nil
}

// Size returns the byte size of a block, rounded up to 16. Runtime-sized
// arrays count as empty.
func Size(b layout.Block) int {
	return int(std140.AlignTo(uint32(extent(b)), 16))
}

func extent(b layout.Block) uintptr {
	switch n := b.(type) {
	case *layout.Struct:
		var end uintptr
		for _, m := range n.Members {
			if e := extent(m.Block); e > end {
				end = e
			}
		}
		return end
	case *layout.Array:
		if n.Count <= 0 {
			return n.Offset
		}
		return n.Offset + n.Stride*uintptr(n.Count)
	case layout.Leaf:
		if n.Count == layout.Unsized {
			return n.Offset
		}
		if n.Count > 0 {
			return n.Offset + n.Stride*uintptr(n.Count)
		}
		return n.Offset + leafSize(n.Type)
	}
	return 0
}

func leafSize(t typetag.Tag) uintptr {
	if t.IsMatrix() {
		return uintptr(calc.ColumnStride(t)) * uintptr(t.Columns())
	}
	return uintptr(t.Size())
}

type packer struct {
	buf []byte
}

// pack writes rv into block. shift is added to the absolute offsets of
// block, which is how array elements after the first are placed.
func (p *packer) pack(block layout.Block, rv reflect.Value, shift uintptr, path []string) error {
	if !rv.IsValid() {
		return errors.NilPointer(errors.PhasePack, path, "nil")
	}
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return errors.NilPointer(errors.PhasePack, path, rv.Type().String())
		}
		rv = rv.Elem()
	}

	switch b := block.(type) {
	case layout.Leaf:
		if b.IsArray() {
			return p.leafArray(b, rv, shift, path)
		}
		return p.leaf(b.Type, b.Offset+shift, rv, path)
	case *layout.Struct:
		return p.structValue(b, rv, shift, path)
	case *layout.Array:
		return p.array(b, rv, shift, path)
	default:
		return errors.New(errors.PhasePack, errors.KindUnsupported).
			Path(path...).
			Detail("cannot pack into %T", block).
			Build()
	}
}

func (p *packer) leaf(tag typetag.Tag, offset uintptr, rv reflect.Value, path []string) error {
	got, err := typetag.Of(rv.Type())
	if err != nil {
		return errors.New(errors.PhasePack, errors.KindUnsupported).
			Path(path...).
			GoType(rv.Type().String()).
			Cause(err).
			Detail("value has no GPU type").
			Build()
	}
	if got != tag {
		return errors.TypeMismatch(errors.PhasePack, path, rv.Type().String(), tag.String())
	}

	src := rawBytes(rv)
	if !tag.IsMatrix() {
		p.write(offset, src)
		return nil
	}

	colSize := uintptr(tag.Column().Size())
	stride := uintptr(calc.ColumnStride(tag))
	for c := 0; c < tag.Columns(); c++ {
		start := uintptr(c) * colSize
		p.write(offset+uintptr(c)*stride, src[start:start+colSize])
	}
	return nil
}

func (p *packer) leafArray(b layout.Leaf, rv reflect.Value, shift uintptr, path []string) error {
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return errors.TypeMismatch(errors.PhasePack, path, rv.Type().String(), b.String())
	}
	if err := checkCount(rv.Len(), b.Count, path); err != nil {
		return err
	}
	for i := 0; i < rv.Len(); i++ {
		if err := p.leaf(b.Type, b.Offset+shift+uintptr(i)*b.Stride, rv.Index(i), path); err != nil {
			return err
		}
	}
	return nil
}

func (p *packer) array(b *layout.Array, rv reflect.Value, shift uintptr, path []string) error {
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return errors.TypeMismatch(errors.PhasePack, path, rv.Type().String(), b.String())
	}
	if err := checkCount(rv.Len(), b.Count, path); err != nil {
		return err
	}
	for i := 0; i < rv.Len(); i++ {
		if err := p.pack(b.Elem, rv.Index(i), shift+uintptr(i)*b.Stride, path); err != nil {
			return err
		}
	}
	return nil
}

func (p *packer) structValue(b *layout.Struct, rv reflect.Value, shift uintptr, path []string) error {
	if rv.Kind() != reflect.Struct {
		return errors.TypeMismatch(errors.PhasePack, path, rv.Type().String(), "struct")
	}
	fields, err := structtag.Fields(rv.Type())
	if err != nil {
		return err
	}
	for _, f := range fields {
		fieldPath := append(append([]string{}, path...), f.Name)
		member, ok := b.Member(f.Name)
		if !ok {
			return errors.FieldMissing(errors.PhasePack, path, f.Name)
		}
		if err := p.pack(member, rv.Field(f.Index), shift, fieldPath); err != nil {
			return err
		}
	}
	return nil
}

func checkCount(n, count int, path []string) error {
	if count != layout.Unsized && n > count {
		return errors.New(errors.PhasePack, errors.KindInvalidSize).
			Path(path...).
			Value(n).
			Detail("%d elements do not fit an array of %d", n, count).
			Build()
	}
	return nil
}

// write copies src to offset, growing the buffer for runtime-sized arrays.
func (p *packer) write(offset uintptr, src []byte) {
	end := int(offset) + len(src)
	if end > len(p.buf) {
		grown := make([]byte, int(std140.AlignTo(uint32(end), 16)))
		copy(grown, p.buf)
		p.buf = grown
	}
	copy(p.buf[offset:], src)
}

// rawBytes returns a copy of the in-memory representation of rv.
func rawBytes(rv reflect.Value) []byte {
	tmp := reflect.New(rv.Type())
	tmp.Elem().Set(rv)
	return append([]byte(nil), unsafe.Slice((*byte)(tmp.UnsafePointer()), rv.Type().Size())...)
}
