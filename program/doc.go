// Package program caches the bind-time checks between Go types and one
// reflected shader program.
//
// A Program wraps a gpulayout.Reflector and answers three questions, each
// computed once per Go type and then served from a cache:
//
//	layout, err := program.BindVertex[Vertex](p, vertex.PerVertex)
//	err = program.BindUniform[Camera](p, "camera")
//	adapter, err := program.BindStorage[Header, Particle](p, "particles")
//
// Uniform mismatches are reported as *errors.Error with PhaseMatch and
// KindLayoutMismatch; the layout error that caused it is kept as the
// Cause, so errors.Is(err, &errors.Error{Phase: errors.PhaseMatch, Kind:
// errors.KindFieldMissing}) still works and layout.Describe(errors.Unwrap(err))
// renders the details.
package program
