// Package vertex derives vertex attribute formats from Go struct types.
//
// A Format lists one Attribute per exported struct field, in declaration
// order, with the field's real memory offset and its GPU type tag. Formats are
// computed once per type and cached by a Registry:
//
//	type Vertex struct {
//		Position mgl32.Vec2
//		Color    [3]float32
//		Tint     uint32 `gpu:",location=3,normalize"`
//	}
//
//	var vertexFormat = vertex.MustRegister[Vertex]()
//
// Attribute names default to the snake_case field name. Locations default to
// AutoLocation, which is resolved by name against the shader's declared inputs
// when a gputypes.VertexBufferLayout is produced:
//
//	layout, err := vertexFormat.BufferLayout(vertex.PerVertex, reflection)
//
// Field types without a GPU type make registration fail, so a package-level
// MustRegister turns them into init-time panics.
package vertex
