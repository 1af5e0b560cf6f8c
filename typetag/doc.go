// Package typetag defines the GPU type vocabulary shared by the vertex,
// layout and content packages.
//
// A Tag names a scalar, vector or matrix type as a shader sees it. Tags are
// packed values (scalar kind, columns, rows), so they compare with == and can
// be used as map keys.
//
// # Host Mapping
//
// Of maps a Go type to its Tag through a closed table:
//
//	Go type                       Tag
//	──────────────────────────────────────────
//	float32, float64              float, double
//	int8..int32, uint8..uint32    int8_t .. uint
//	[N]S  (N = 2..4)              vecN of S
//	[C][R]float32                 matCxR
//	mgl32.Vec3, mgl32.Mat4 ...    vec3, mat4 ...
//	types implementing Attribute  AttributeTag()
//
// Matrices are column-major. mathgl names matrices rows-by-columns, so
// mgl32.Mat2x3 (2 rows, 3 columns) is mat3x2.
//
// Types outside the table are rejected when a host type is registered, never
// at bind time.
package typetag
