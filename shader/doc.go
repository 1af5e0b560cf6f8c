// Package shader reflects layouts out of WGSL shaders.
//
// Reflect walks a naga IR module and collects:
//   - uniform blocks (var<uniform> of struct type) as layout.Struct trees,
//     keyed by both variable name and struct type name
//   - vertex inputs: @location arguments of vertex entry points, including
//     members of struct-typed arguments
//   - storage buffers that end in a runtime-sized array, as
//     content.Descriptor values
//
// ReflectWGSL parses and lowers WGSL source first. The result implements
// gpulayout.Reflector and can be handed to program.New.
//
//	refl, err := shader.ReflectWGSL(src)
//	block, ok := refl.UniformBlock("camera")
//
// Array strides and struct offsets that the IR leaves at zero are computed
// with WGSL host-shareable layout rules.
package shader
