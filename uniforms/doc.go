// Package uniforms stores named uniform values and packs them into the byte
// image of a reflected uniform block.
//
//	v := uniforms.New().
//		Add("view_proj", camera.ViewProj).
//		Add("light_dir", mgl32.Vec3{0, -1, 0})
//	data, err := v.Pack(block)
//
// Values are placed at the offsets the shader declares, so Go values do not
// need std140 padding. Matrices are written column by column using the
// column stride of the block layout. Struct values fill nested struct
// members by GPU name, and slices or arrays fill array members.
package uniforms
