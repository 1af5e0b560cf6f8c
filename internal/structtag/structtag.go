// Package structtag reads the `gpu:"..."` struct tag and derives GPU-side
// field names.
//
// Tag grammar: `gpu:"name,opt,opt"` where name may be empty and options are
// location=N, normalize and array. `gpu:"-"` skips the field.
package structtag

import (
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/wippyai/gpu-layout/errors"
)

const Key = "gpu"

// Field is one exported, non-skipped struct field.
type Field struct {
	Type        reflect.Type
	Name        string // GPU-side name
	GoName      string
	Offset      uintptr
	Index       int
	Location    int32
	HasLocation bool
	Normalize   bool
	Array       bool
}

// Options are the parsed parts of one tag.
type Options struct {
	Name        string
	Location    int32
	HasLocation bool
	Normalize   bool
	Array       bool
	Skip        bool
}

// Parse parses a gpu tag value. path is used for error reporting only.
func Parse(tag string, path []string) (Options, error) {
	var o Options
	if tag == "-" {
		o.Skip = true
		return o, nil
	}
	if tag == "" {
		return o, nil
	}

	parts := strings.Split(tag, ",")
	o.Name = strings.TrimSpace(parts[0])

	for _, part := range parts[1:] {
		part = strings.TrimSpace(part)
		key, value, hasValue := strings.Cut(part, "=")
		switch key {
		case "location":
			if !hasValue {
				return o, errors.InvalidTag(path, tag, "location needs a value")
			}
			n, err := strconv.ParseInt(value, 10, 32)
			if err != nil || n < 0 {
				return o, errors.InvalidTag(path, tag, "location must be a non-negative integer")
			}
			o.Location = int32(n)
			o.HasLocation = true
		case "normalize":
			if hasValue {
				return o, errors.InvalidTag(path, tag, "normalize takes no value")
			}
			o.Normalize = true
		case "array":
			if hasValue {
				return o, errors.InvalidTag(path, tag, "array takes no value")
			}
			o.Array = true
		case "":
		default:
			return o, errors.InvalidTag(path, tag, "unknown option "+strconv.Quote(key))
		}
	}
	return o, nil
}

// Fields returns the exported fields of struct type t in declaration order,
// with tags applied. Field names must be unique after renaming.
func Fields(t reflect.Type) ([]Field, error) {
	if t == nil {
		return nil, errors.NilPointer(errors.PhaseRegister, nil, "nil")
	}
	if t.Kind() != reflect.Struct {
		return nil, errors.TypeMismatch(errors.PhaseRegister, []string{t.String()}, t.String(), "struct")
	}

	fields := make([]Field, 0, t.NumField())
	seen := make(map[string]struct{}, t.NumField())

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		path := []string{t.Name(), sf.Name}
		opts, err := Parse(sf.Tag.Get(Key), path)
		if err != nil {
			return nil, err
		}
		if opts.Skip {
			continue
		}

		name := opts.Name
		if name == "" {
			name = SnakeCase(sf.Name)
		}
		if _, dup := seen[name]; dup {
			return nil, errors.Duplicate(errors.PhaseRegister, []string{t.Name()}, name)
		}
		seen[name] = struct{}{}

		fields = append(fields, Field{
			Type:        sf.Type,
			Name:        name,
			GoName:      sf.Name,
			Offset:      sf.Offset,
			Index:       i,
			Location:    opts.Location,
			HasLocation: opts.HasLocation,
			Normalize:   opts.Normalize,
			Array:       opts.Array,
		})
	}
	return fields, nil
}

// SnakeCase converts a Go identifier to snake_case. Acronyms stay together:
// TexCoord -> tex_coord, UVOffset -> uv_offset, Color0 -> color0.
func SnakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s) + 4)

	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
