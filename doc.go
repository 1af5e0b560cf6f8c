// Package gpulayout bridges Go struct layouts and GPU data layouts.
//
// The library derives vertex formats from struct types, checks Go structs
// against reflected uniform blocks, and views variable-length buffers as a
// typed head plus trailing elements. It never talks to a GPU: reflection data
// comes in through the interfaces in this package and descriptors go out as
// gputypes values.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	gpulayout/           Root package with the reflection interfaces
//	├── typetag/         GPU scalar, vector and matrix type tags; Go type mapping
//	├── vertex/          Vertex formats derived from struct fields
//	├── layout/          Block layout trees and the host-vs-reflected matcher
//	├── content/         Head-plus-trailing-array buffer views
//	├── shader/          WGSL and naga IR reflection
//	├── program/         Per-program cache of vertex layouts and block matches
//	├── uniforms/        Named uniform values packed into a reflected block
//	├── errors/          Structured error types for diagnostics
//	└── cmd/layoutinspect  CLI to inspect a WGSL shader's layouts
//
// # Quick Start
//
// Reflect a shader and bind Go types to it:
//
//	refl, err := shader.ReflectWGSL(src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	prog := program.New("sprite", refl)
//
//	vbuf, err := program.BindVertex[Vertex](prog, vertex.PerVertex)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := program.BindUniform[Camera](prog, "camera"); err != nil {
//	    fmt.Println(layout.Describe(errors.Unwrap(err)))
//	}
//
// # Field Tags
//
// Struct fields are matched by name. The default name is the snake_case form
// of the Go field name; the gpu tag overrides it and adds options:
//
//	type Vertex struct {
//	    Position mgl32.Vec2
//	    UV       [2]float32 `gpu:"tex_coord,location=1"`
//	    Tint     [4]uint8   `gpu:",normalize"`
//	    Scratch  float32    `gpu:"-"`
//	}
//
// # Thread Safety
//
// Formats, hosts and adapters are immutable once built and safe to share.
// Registries and Program caches are safe for concurrent use.
package gpulayout
