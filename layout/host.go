package layout

import (
	stderrors "errors"
	"reflect"
	"sync"

	"github.com/wippyai/gpu-layout/errors"
	"github.com/wippyai/gpu-layout/internal/structtag"
	"github.com/wippyai/gpu-layout/typetag"
)

type fieldKind uint8

const (
	fieldLeaf fieldKind = iota
	fieldLeafArray
	fieldStruct
	fieldStructArray
)

func (k fieldKind) String() string {
	switch k {
	case fieldLeaf:
		return "leaf"
	case fieldLeafArray:
		return "leaf array"
	case fieldStruct:
		return "struct"
	case fieldStructArray:
		return "struct array"
	default:
		return "unknown"
	}
}

type hostField struct {
	elem   *Host
	name   string
	goName string
	offset uintptr
	stride uintptr
	count  int
	tag    typetag.Tag
	kind   fieldKind
}

// Host is the compiled field shape of one Go struct type. Hosts are
// immutable and shared.
type Host struct {
	typ    reflect.Type
	fields []hostField
}

var hosts sync.Map // reflect.Type -> *Host

// Compile returns the Host of struct type t. Results are cached per type.
func Compile(t reflect.Type) (*Host, error) {
	if t == nil {
		return nil, errors.NilPointer(errors.PhaseRegister, nil, "nil")
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if cached, ok := hosts.Load(t); ok {
		return cached.(*Host), nil
	}

	h, err := compile(t, []string{t.Name()})
	if err != nil {
		return nil, err
	}

	actual, _ := hosts.LoadOrStore(t, h)
	return actual.(*Host), nil
}

// HostOf returns the Host of T.
func HostOf[T any]() (*Host, error) {
	return Compile(reflect.TypeFor[T]())
}

// MustHostOf is like HostOf but panics on error.
func MustHostOf[T any]() *Host {
	h, err := HostOf[T]()
	if err != nil {
		panic(err)
	}
	return h
}

func compile(t reflect.Type, path []string) (*Host, error) {
	fields, err := structtag.Fields(t)
	if err != nil {
		return nil, err
	}

	h := &Host{typ: t, fields: make([]hostField, 0, len(fields))}
	for _, f := range fields {
		fieldPath := append(append([]string{}, path...), f.Name)
		hf, err := compileField(f, fieldPath)
		if err != nil {
			return nil, err
		}
		h.fields = append(h.fields, hf)
	}
	return h, nil
}

func compileField(f structtag.Field, path []string) (hostField, error) {
	hf := hostField{
		name:   f.Name,
		goName: f.GoName,
		offset: f.Offset,
	}
	ft := f.Type

	if !f.Array {
		if tag, err := typetag.Of(ft); err == nil {
			hf.kind = fieldLeaf
			hf.tag = tag
			return hf, nil
		}
	}

	switch ft.Kind() {
	case reflect.Struct:
		if f.Array {
			break
		}
		elem, err := compile(ft, path)
		if err != nil {
			return hf, err
		}
		hf.kind = fieldStruct
		hf.elem = elem
		return hf, nil

	case reflect.Array:
		et := ft.Elem()
		hf.count = ft.Len()
		hf.stride = et.Size()
		if tag, err := typetag.Of(et); err == nil {
			hf.kind = fieldLeafArray
			hf.tag = tag
			return hf, nil
		}
		if et.Kind() == reflect.Struct {
			elem, err := compile(et, path)
			if err != nil {
				return hf, err
			}
			hf.kind = fieldStructArray
			hf.elem = elem
			return hf, nil
		}
	}

	if f.Array {
		return hf, errors.InvalidTag(path, "array", "field of type "+ft.String()+" is not an array of GPU types")
	}
	return hf, errors.Unsupported(errors.PhaseRegister, path, ft.String(), "no GPU type for field")
}

// Type returns the Go struct type.
func (h *Host) Type() reflect.Type {
	return h.typ
}

// Len is the number of fields that take part in matching.
func (h *Host) Len() int {
	return len(h.fields)
}

// Names returns the GPU-side field names in declaration order.
func (h *Host) Names() []string {
	names := make([]string, len(h.fields))
	for i, f := range h.fields {
		names[i] = f.name
	}
	return names
}

func (h *Host) field(name string) (*hostField, bool) {
	for i := range h.fields {
		if h.fields[i].name == name {
			return &h.fields[i], true
		}
	}
	return nil, false
}

// Layout synthesizes the block layout h demands with its first byte at base.
func (h *Host) Layout(base uintptr) Block {
	s := &Struct{Members: make([]Member, 0, len(h.fields))}
	for i := range h.fields {
		f := &h.fields[i]
		s.Members = append(s.Members, Member{Name: f.name, Block: f.layout(base)})
	}
	return s
}

func (f *hostField) layout(base uintptr) Block {
	off := base + f.offset
	switch f.kind {
	case fieldLeafArray:
		return Leaf{Offset: off, Type: f.tag, Stride: f.stride, Count: f.count}
	case fieldStruct:
		return f.elem.Layout(off)
	case fieldStructArray:
		return &Array{Offset: off, Elem: f.elem.Layout(off), Stride: f.stride, Count: f.count}
	default:
		return Leaf{Offset: off, Type: f.tag}
	}
}

// Match checks h against a reflected block whose first byte is at base.
// It stops at the first difference.
func (h *Host) Match(reflected Block, base uintptr) error {
	r, ok := reflected.(*Struct)
	if !ok || r == nil {
		return &LayoutMismatchError{Expected: h.Layout(base), Obtained: reflected}
	}

	for _, m := range r.Members {
		if _, ok := h.field(m.Name); !ok {
			return &MissingFieldError{Name: m.Name}
		}
	}

	for i := range h.fields {
		f := &h.fields[i]
		member, ok := r.Member(f.name)
		if !ok {
			return &MissingFieldError{Name: f.name}
		}
		if err := f.match(member, base); err != nil {
			return &MemberMismatchError{Member: f.name, Cause: err}
		}
	}
	return nil
}

func (f *hostField) match(reflected Block, base uintptr) error {
	switch f.kind {
	case fieldStruct:
		return f.elem.Match(reflected, base+f.offset)
	case fieldStructArray:
		r, ok := reflected.(*Array)
		if !ok || r == nil || r.Count != f.count || r.Stride != f.stride || r.Offset != base+f.offset {
			return &LayoutMismatchError{Expected: f.layout(base), Obtained: reflected}
		}
		return f.elem.Match(r.Elem, base+f.offset)
	default:
		expected := f.layout(base)
		if r, ok := reflected.(Leaf); !ok || r != expected {
			return &LayoutMismatchError{Expected: expected, Obtained: reflected}
		}
		return nil
	}
}

// MatchAll is like Match but reports every difference instead of the first.
// It returns nil when the layouts match.
func (h *Host) MatchAll(reflected Block, base uintptr) []error {
	r, ok := reflected.(*Struct)
	if !ok || r == nil {
		return []error{&LayoutMismatchError{Expected: h.Layout(base), Obtained: reflected}}
	}

	var errs []error
	for _, m := range r.Members {
		if _, ok := h.field(m.Name); !ok {
			errs = append(errs, &MissingFieldError{Name: m.Name})
		}
	}

	for i := range h.fields {
		f := &h.fields[i]
		member, ok := r.Member(f.name)
		if !ok {
			errs = append(errs, &MissingFieldError{Name: f.name})
			continue
		}
		for _, err := range f.matchAll(member, base) {
			errs = append(errs, &MemberMismatchError{Member: f.name, Cause: err})
		}
	}
	return errs
}

func (f *hostField) matchAll(reflected Block, base uintptr) []error {
	switch f.kind {
	case fieldStruct:
		return f.elem.MatchAll(reflected, base+f.offset)
	case fieldStructArray:
		if r, ok := reflected.(*Array); ok && r != nil && r.Count == f.count && r.Stride == f.stride && r.Offset == base+f.offset {
			return f.elem.MatchAll(r.Elem, base+f.offset)
		}
	}
	if err := f.match(reflected, base); err != nil {
		return []error{err}
	}
	return nil
}

// Join combines MatchAll results into one error, or nil.
func Join(errs []error) error {
	return stderrors.Join(errs...)
}
