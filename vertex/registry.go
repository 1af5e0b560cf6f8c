package vertex

import (
	"reflect"
	"sync"

	"github.com/wippyai/gpu-layout/errors"
)

// Registry caches one Format per Go type. It is safe for concurrent use.
type Registry struct {
	cache sync.Map // reflect.Type -> *Format
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Default is the registry used by FormatOf and MustRegister.
var Default = NewRegistry()

// Format returns the cached Format of t, building it on first use.
// Overrides passed after t is cached must produce the cached Format;
// different overrides are an error rather than being ignored.
func (r *Registry) Format(t reflect.Type, overrides ...Override) (*Format, error) {
	if t == nil {
		return nil, errors.NilPointer(errors.PhaseRegister, nil, "nil")
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if cached, ok := r.cache.Load(t); ok {
		if len(overrides) == 0 {
			return cached.(*Format), nil
		}
		f, err := Build(t, overrides...)
		if err != nil {
			return nil, err
		}
		return checkCached(cached.(*Format), f)
	}

	f, err := Build(t, overrides...)
	if err != nil {
		return nil, err
	}

	actual, loaded := r.cache.LoadOrStore(t, f)
	if loaded && len(overrides) > 0 {
		return checkCached(actual.(*Format), f)
	}
	return actual.(*Format), nil
}

func checkCached(cached, built *Format) (*Format, error) {
	if !cached.Equal(built) {
		return nil, errors.New(errors.PhaseRegister, errors.KindInvalidInput).
			Path(cached.typ.Name()).
			GoType(cached.typ.String()).
			Detail("format already registered as %s, overrides give %s", cached, built).
			Build()
	}
	return cached, nil
}

// Lookup returns the Format of t if it has been built.
func (r *Registry) Lookup(t reflect.Type) (*Format, bool) {
	if t == nil {
		return nil, false
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	cached, ok := r.cache.Load(t)
	if !ok {
		return nil, false
	}
	return cached.(*Format), true
}

// FormatOf returns the Format of T from the Default registry.
func FormatOf[T any](overrides ...Override) (*Format, error) {
	return Default.Format(reflect.TypeFor[T](), overrides...)
}

// MustRegister is like FormatOf but panics on error. Use it in package-level
// variable declarations so unsupported field types fail at program start.
func MustRegister[T any](overrides ...Override) *Format {
	f, err := FormatOf[T](overrides...)
	if err != nil {
		panic(err)
	}
	return f
}
