// Package std140 computes GPU buffer layouts for scalar, vector, matrix,
// array and struct types.
//
// # Layout Rules
//
// The rules follow WGSL's host-shareable layout, which for the uniform address
// space is the std140 layout of GLSL:
//   - Scalars: size equals alignment
//   - vec2: align 2N, vec3 and vec4: align 4N (N is the scalar size)
//   - matCxR: C columns of vecR, column stride is vecR size rounded to its alignment
//   - Arrays: element stride is element size rounded to element alignment
//   - Structs: members placed in order at their alignment, size rounded to the
//     largest member alignment
//
// In the Uniform space array strides and struct alignments are additionally
// rounded up to 16 bytes. The Storage space omits that rounding.
//
// # Usage
//
//	c := std140.NewCalculator(std140.Uniform)
//	info := c.Struct([]std140.Info{c.Leaf(typetag.Vec3), c.Leaf(typetag.Float)})
//	// info.Offsets == [0 12], info.Size == 16
//
// This package is internal to gpu-layout.
package std140
