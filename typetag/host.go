package typetag

import (
	"reflect"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/wippyai/gpu-layout/errors"
)

// Attribute lets a Go type declare its own GPU type, for example a packed
// color stored in a uint32 that the shader reads as a normalized u8vec4.
// The method must work on the zero value and the tag size must equal the Go
// type size.
type Attribute interface {
	AttributeTag() Tag
}

var attributeType = reflect.TypeFor[Attribute]()

// mathgl matrices are flat arrays, so they cannot be recognized structurally.
var named = map[reflect.Type]Tag{
	reflect.TypeFor[mgl32.Vec2]():   Vec2,
	reflect.TypeFor[mgl32.Vec3]():   Vec3,
	reflect.TypeFor[mgl32.Vec4]():   Vec4,
	reflect.TypeFor[mgl32.Mat2]():   Mat2,
	reflect.TypeFor[mgl32.Mat2x3](): Mat3x2,
	reflect.TypeFor[mgl32.Mat2x4](): Mat4x2,
	reflect.TypeFor[mgl32.Mat3x2](): Mat2x3,
	reflect.TypeFor[mgl32.Mat3]():   Mat3,
	reflect.TypeFor[mgl32.Mat3x4](): Mat4x3,
	reflect.TypeFor[mgl32.Mat4x2](): Mat2x4,
	reflect.TypeFor[mgl32.Mat4x3](): Mat3x4,
	reflect.TypeFor[mgl32.Mat4]():   Mat4,
	reflect.TypeFor[mgl64.Vec2]():   DVec2,
	reflect.TypeFor[mgl64.Vec3]():   DVec3,
	reflect.TypeFor[mgl64.Vec4]():   DVec4,
	reflect.TypeFor[mgl64.Mat2]():   DMat2,
	reflect.TypeFor[mgl64.Mat3]():   DMat3,
	reflect.TypeFor[mgl64.Mat4]():   DMat4,
}

// ScalarOf maps a Go scalar kind to its Scalar.
func ScalarOf(t reflect.Type) (Scalar, bool) {
	switch t.Kind() {
	case reflect.Int8:
		return Int8, true
	case reflect.Uint8:
		return Uint8, true
	case reflect.Int16:
		return Int16, true
	case reflect.Uint16:
		return Uint16, true
	case reflect.Int32:
		return Int32, true
	case reflect.Uint32:
		return Uint32, true
	case reflect.Float32:
		return Float32, true
	case reflect.Float64:
		return Float64, true
	default:
		return ScalarInvalid, false
	}
}

// Of returns the Tag for a Go type.
func Of(t reflect.Type) (Tag, error) {
	if t == nil {
		return Invalid, errors.NilPointer(errors.PhaseRegister, nil, "nil")
	}

	if t.Kind() != reflect.Pointer && t.Kind() != reflect.Interface && t.Implements(attributeType) {
		tag := reflect.Zero(t).Interface().(Attribute).AttributeTag()
		if !tag.Valid() {
			return Invalid, errors.New(errors.PhaseRegister, errors.KindUnsupported).
				GoType(t.String()).
				Detail("AttributeTag returned an invalid tag").
				Build()
		}
		if uintptr(tag.Size()) != t.Size() {
			return Invalid, errors.New(errors.PhaseRegister, errors.KindTypeMismatch).
				GoType(t.String()).
				GPUType(tag.String()).
				Detail("Go size %d, GPU size %d", t.Size(), tag.Size()).
				Build()
		}
		return tag, nil
	}

	if tag, ok := named[t]; ok {
		return tag, nil
	}

	if s, ok := ScalarOf(t); ok {
		tag, _ := Vector(s, 1)
		return tag, nil
	}

	if t.Kind() == reflect.Array {
		if tag, ok := arrayTag(t); ok {
			return tag, nil
		}
	}

	return Invalid, errors.Unsupported(errors.PhaseRegister, nil, t.String(), "no GPU type for Go type")
}

// MustOf is like Of but panics on unmapped types.
func MustOf(t reflect.Type) Tag {
	tag, err := Of(t)
	if err != nil {
		panic(err)
	}
	return tag
}

// For returns the Tag of T.
func For[T any]() (Tag, error) {
	return Of(reflect.TypeFor[T]())
}

func arrayTag(t reflect.Type) (Tag, bool) {
	n := t.Len()
	if n < 2 || n > 4 {
		return Invalid, false
	}
	elem := t.Elem()
	if s, ok := ScalarOf(elem); ok {
		return Vector(s, n)
	}
	if elem.Kind() == reflect.Array {
		s, ok := ScalarOf(elem.Elem())
		if !ok {
			return Invalid, false
		}
		return Matrix(s, n, elem.Len())
	}
	return Invalid, false
}
