package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseRegister Phase = "register" // host type registration
	PhaseMatch    Phase = "match"    // host layout vs reflected block
	PhaseResolve  Phase = "resolve"  // attribute location resolution
	PhaseContent  Phase = "content"  // variable-length buffer views
	PhaseReflect  Phase = "reflect"  // shader reflection
	PhasePack     Phase = "pack"     // uniform value packing
)

// Kind categorizes the error
type Kind string

const (
	KindTypeMismatch       Kind = "type_mismatch"
	KindUnsupported        Kind = "unsupported"
	KindFieldMissing       Kind = "field_missing"
	KindMemberMismatch     Kind = "member_mismatch"
	KindLayoutMismatch     Kind = "layout_mismatch"
	KindDuplicateField     Kind = "duplicate_field"
	KindInvalidTag         Kind = "invalid_tag"
	KindInvalidSize        Kind = "invalid_size"
	KindMisaligned         Kind = "misaligned"
	KindNotFound           Kind = "not_found"
	KindUnresolvedLocation Kind = "unresolved_location"
	KindInvalidInput       Kind = "invalid_input"
	KindNilPointer         Kind = "nil_pointer"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value   any
	Cause   error
	Phase   Phase
	Kind    Kind
	GoType  string
	GPUType string
	Detail  string
	Path    []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.GPUType != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.GPUType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", GPU type ")
			b.WriteString(e.GPUType)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("GPU type ")
			b.WriteString(e.GPUType)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.GPUType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the member path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// GPUType sets the GPU-side type name
func (b *Builder) GPUType(t string) *Builder {
	b.err.GPUType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, gpuType string) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindTypeMismatch,
		Path:    path,
		GoType:  goType,
		GPUType: gpuType,
	}
}

// FieldMissing creates a missing field error
func FieldMissing(phase Phase, path []string, fieldName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFieldMissing,
		Path:   path,
		Detail: fmt.Sprintf("field %q not found", fieldName),
	}
}

// Duplicate creates a duplicate field name error
func Duplicate(phase Phase, path []string, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDuplicateField,
		Path:   path,
		Detail: fmt.Sprintf("field name %q declared more than once", name),
		Value:  name,
	}
}

// Unsupported creates an unsupported type or operation error
func Unsupported(phase Phase, path []string, goType, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Path:   path,
		GoType: goType,
		Detail: what,
	}
}

// InvalidTag creates a malformed struct tag error
func InvalidTag(path []string, tag, detail string) *Error {
	return &Error{
		Phase:  PhaseRegister,
		Kind:   KindInvalidTag,
		Path:   path,
		Detail: fmt.Sprintf("tag %q: %s", tag, detail),
		Value:  tag,
	}
}

// InvalidSize creates a size error for variable-length views
func InvalidSize(phase Phase, size, fixed, stride int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidSize,
		Detail: fmt.Sprintf("size %d does not fit fixed size %d plus a multiple of stride %d", size, fixed, stride),
		Value:  size,
	}
}

// Misaligned creates an alignment error for raw regions
func Misaligned(phase Phase, addr uintptr, align uintptr) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindMisaligned,
		Detail: fmt.Sprintf("address %#x is not aligned to %d", addr, align),
		Value:  addr,
	}
}

// NilPointer creates a nil pointer error
func NilPointer(phase Phase, path []string, goType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNilPointer,
		Path:   path,
		GoType: goType,
		Detail: "nil pointer",
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
		Value:  name,
	}
}

// UnresolvedLocation creates an error for an attribute the shader does not declare
func UnresolvedLocation(path []string, name string) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindUnresolvedLocation,
		Path:   path,
		Detail: fmt.Sprintf("shader declares no input named %q", name),
		Value:  name,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
