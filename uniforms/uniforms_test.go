package uniforms

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/gpu-layout/errors"
	"github.com/wippyai/gpu-layout/layout"
	"github.com/wippyai/gpu-layout/typetag"
)

type pointLight struct {
	Color mgl32.Vec3
	Range float32
}

// sceneBlock mirrors
//
//	struct PointLight { color: vec3<f32>, range: f32 }
//	struct Scene {
//	    view_proj: mat4x4<f32>, normal: mat3x3<f32>, light_dir: vec3<f32>,
//	    intensity: f32, weights: array<f32, 3>, lights: array<PointLight, 2>,
//	}
func sceneBlock() *layout.Struct {
	light := func(base uintptr) *layout.Struct {
		return (&layout.Struct{}).
			Add("color", layout.Leaf{Offset: base, Type: typetag.Vec3}).
			Add("range", layout.Leaf{Offset: base + 12, Type: typetag.Float})
	}
	return (&layout.Struct{}).
		Add("view_proj", layout.Leaf{Offset: 0, Type: typetag.Mat4}).
		Add("normal", layout.Leaf{Offset: 64, Type: typetag.Mat3}).
		Add("light_dir", layout.Leaf{Offset: 112, Type: typetag.Vec3}).
		Add("intensity", layout.Leaf{Offset: 124, Type: typetag.Float}).
		Add("weights", layout.Leaf{Offset: 128, Type: typetag.Float, Stride: 16, Count: 3}).
		Add("lights", &layout.Array{Offset: 176, Elem: light(176), Stride: 32, Count: 2})
}

func f32At(b []byte, off int) float32 {
	return math.Float32frombits(binary.NativeEndian.Uint32(b[off:]))
}

func TestValues(t *testing.T) {
	v := New().Add("a", 1).Add("b", 2).Add("a", 3)

	assert.Equal(t, 2, v.Len())
	assert.Equal(t, []string{"a", "b"}, v.Names())

	got, ok := v.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 3, got)

	assert.True(t, v.Set("b", 4))
	assert.False(t, v.Set("c", 5))
	_, ok = v.Get("c")
	assert.False(t, ok)

	var zero Values
	assert.Equal(t, 0, zero.Len())
	assert.False(t, zero.Set("a", 1))
}

func TestSize(t *testing.T) {
	assert.Equal(t, 240, Size(sceneBlock()))

	tail := (&layout.Struct{}).
		Add("count", layout.Leaf{Offset: 0, Type: typetag.Uint}).
		Add("items", layout.Leaf{Offset: 16, Type: typetag.Vec4, Stride: 16, Count: layout.Unsized})
	assert.Equal(t, 16, Size(tail))
}

func TestPack(t *testing.T) {
	v := New().
		Add("view_proj", mgl32.Ident4()).
		Add("normal", mgl32.Mat3{1, 2, 3, 4, 5, 6, 7, 8, 9}).
		Add("light_dir", mgl32.Vec3{0, -1, 0}).
		Add("weights", []float32{0.25, 0.5, 0.75}).
		Add("lights", []pointLight{
			{Color: mgl32.Vec3{1, 0, 0}, Range: 10},
			{Color: mgl32.Vec3{0, 0, 1}, Range: 20},
		})

	buf, err := v.Pack(sceneBlock())
	require.NoError(t, err)
	require.Len(t, buf, 240)

	assert.Equal(t, float32(1), f32At(buf, 0))
	assert.Equal(t, float32(1), f32At(buf, 60))

	assert.Equal(t, float32(3), f32At(buf, 72))
	assert.Equal(t, float32(0), f32At(buf, 76), "column padding")
	assert.Equal(t, float32(4), f32At(buf, 80))
	assert.Equal(t, float32(9), f32At(buf, 104))

	assert.Equal(t, float32(-1), f32At(buf, 116))
	assert.Equal(t, float32(0), f32At(buf, 124), "intensity was not set")

	assert.Equal(t, float32(0.25), f32At(buf, 128))
	assert.Equal(t, float32(0.5), f32At(buf, 144))
	assert.Equal(t, float32(0.75), f32At(buf, 160))

	assert.Equal(t, float32(1), f32At(buf, 176))
	assert.Equal(t, float32(10), f32At(buf, 188))
	assert.Equal(t, float32(1), f32At(buf, 216))
	assert.Equal(t, float32(20), f32At(buf, 220))
}

func TestPack_Struct(t *testing.T) {
	type params struct {
		LightDir  mgl32.Vec3
		Intensity float32
	}
	block := (&layout.Struct{}).
		Add("params", (&layout.Struct{}).
			Add("light_dir", layout.Leaf{Offset: 16, Type: typetag.Vec3}).
			Add("intensity", layout.Leaf{Offset: 28, Type: typetag.Float}))

	buf, err := New().Add("params", &params{LightDir: mgl32.Vec3{1, 2, 3}, Intensity: 4}).Pack(block)
	require.NoError(t, err)
	require.Len(t, buf, 32)
	assert.Equal(t, float32(3), f32At(buf, 24))
	assert.Equal(t, float32(4), f32At(buf, 28))
}

func TestPack_RuntimeArray(t *testing.T) {
	block := (&layout.Struct{}).
		Add("items", layout.Leaf{Offset: 16, Type: typetag.Vec2, Stride: 16, Count: layout.Unsized})

	buf, err := New().Add("items", [][2]float32{{1, 2}, {3, 4}, {5, 6}}).Pack(block)
	require.NoError(t, err)
	assert.Len(t, buf, 64)
	assert.Equal(t, float32(6), f32At(buf, 52))
}

func TestPack_Errors(t *testing.T) {
	tests := []struct {
		name  string
		value any
		field string
		kind  errors.Kind
	}{
		{"absent member", float32(1), "exposure", errors.KindFieldMissing},
		{"wrong type", int32(1), "intensity", errors.KindTypeMismatch},
		{"matrix for vector", mgl32.Ident3(), "light_dir", errors.KindTypeMismatch},
		{"too many elements", []float32{1, 2, 3, 4}, "weights", errors.KindInvalidSize},
		{"scalar for array", float32(1), "weights", errors.KindTypeMismatch},
		{"no GPU type", "bright", "intensity", errors.KindUnsupported},
		{"nil value", nil, "intensity", errors.KindNilPointer},
		{"nil pointer", (*mgl32.Vec3)(nil), "light_dir", errors.KindNilPointer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Add(tt.field, tt.value).Pack(sceneBlock())
			assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhasePack, Kind: tt.kind})
		})
	}

	_, err := New().Pack(nil)
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhasePack, Kind: errors.KindNilPointer})
}
