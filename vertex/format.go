package vertex

import (
	stderrors "errors"
	"reflect"
	"strings"

	"github.com/wippyai/gpu-layout/errors"
	"github.com/wippyai/gpu-layout/internal/structtag"
	"github.com/wippyai/gpu-layout/typetag"
)

// Format is the immutable vertex format of one struct type.
type Format struct {
	typ    reflect.Type
	index  map[string]int
	attrs  []Attribute
	stride uintptr
}

// Build derives the Format of struct type t. Most callers want a Registry,
// which caches the result.
func Build(t reflect.Type, overrides ...Override) (*Format, error) {
	if t == nil {
		return nil, errors.NilPointer(errors.PhaseRegister, nil, "nil")
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	fields, err := structtag.Fields(t)
	if err != nil {
		return nil, err
	}

	f := &Format{
		typ:    t,
		stride: t.Size(),
		attrs:  make([]Attribute, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}

	byGoName := make(map[string]int, len(fields))
	for _, field := range fields {
		path := []string{t.Name(), field.Name}
		if field.Array {
			return nil, errors.InvalidTag(path, "array", "vertex attributes cannot be arrays, field is "+field.Type.String())
		}

		tag, err := typetag.Of(field.Type)
		if err != nil {
			return nil, atPath(err, path)
		}

		attr := Attribute{
			Name:      field.Name,
			Offset:    field.Offset,
			Location:  AutoLocation,
			Type:      tag,
			Normalize: field.Normalize,
		}
		if field.HasLocation {
			attr.Location = field.Location
		}
		if attr.Normalize && !tag.IsInteger() {
			return nil, errors.InvalidTag(path, "normalize", "only integer types can be normalized, field is "+tag.String())
		}

		f.index[field.Name] = len(f.attrs)
		byGoName[field.GoName] = len(f.attrs)
		f.attrs = append(f.attrs, attr)
	}

	for _, o := range overrides {
		i, ok := f.index[o.field]
		if !ok {
			i, ok = byGoName[o.field]
		}
		if !ok {
			return nil, errors.FieldMissing(errors.PhaseRegister, []string{t.Name()}, o.field)
		}
		a := &f.attrs[i]
		if err := o.apply(a); err != nil {
			return nil, errors.New(errors.PhaseRegister, errors.KindInvalidInput).
				Path(t.Name(), a.Name).
				Cause(err).
				Detail("override").
				Build()
		}
		if a.Normalize && !a.Type.IsInteger() {
			return nil, errors.InvalidTag([]string{t.Name(), a.Name}, "normalize", "only integer types can be normalized, field is "+a.Type.String())
		}
	}

	return f, nil
}

func atPath(err error, path []string) error {
	var e *errors.Error
	if stderrors.As(err, &e) {
		cp := *e
		cp.Path = path
		return &cp
	}
	return err
}

// Type returns the Go struct type the format was built from.
func (f *Format) Type() reflect.Type {
	return f.typ
}

// Stride is the byte size of one vertex.
func (f *Format) Stride() uintptr {
	return f.stride
}

func (f *Format) Len() int {
	return len(f.attrs)
}

// At returns the i-th attribute in declaration order.
func (f *Format) At(i int) Attribute {
	return f.attrs[i]
}

// Attributes returns a copy of all attributes.
func (f *Format) Attributes() []Attribute {
	out := make([]Attribute, len(f.attrs))
	copy(out, f.attrs)
	return out
}

// Lookup finds an attribute by its GPU-side name.
func (f *Format) Lookup(name string) (Attribute, bool) {
	i, ok := f.index[name]
	if !ok {
		return Attribute{}, false
	}
	return f.attrs[i], true
}

// Equal reports whether both formats describe the same attributes and stride.
func (f *Format) Equal(other *Format) bool {
	if f == other {
		return true
	}
	if f == nil || other == nil || f.stride != other.stride || len(f.attrs) != len(other.attrs) {
		return false
	}
	for i := range f.attrs {
		if f.attrs[i] != other.attrs[i] {
			return false
		}
	}
	return true
}

func (f *Format) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, a := range f.attrs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	b.WriteByte(']')
	return b.String()
}
