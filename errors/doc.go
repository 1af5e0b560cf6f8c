// Package errors provides structured error types for the gpu-layout library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: member path, Go/GPU type names, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseRegister, errors.KindUnsupported).
//		Path("Light", "color").
//		GoType("complex64").
//		Detail("no GPU type for Go type").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.TypeMismatch(errors.PhaseMatch, path, "[3]float32", "vec4")
//	err := errors.InvalidSize(errors.PhaseContent, 18, 4, 4)
//
// Layout mismatches reported by the layout package are their own types, but
// they compare equal under errors.Is to an *Error with PhaseMatch and the
// matching Kind, so callers can test by category without type assertions.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
