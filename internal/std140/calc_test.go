package std140

import (
	"testing"

	"github.com/wippyai/gpu-layout/typetag"
)

func TestLeaf(t *testing.T) {
	c := NewCalculator(Uniform)

	tests := []struct {
		tag    typetag.Tag
		size   uint32
		align  uint32
		stride uint32
	}{
		{typetag.Float, 4, 4, 0},
		{typetag.Int, 4, 4, 0},
		{typetag.Vec2, 8, 8, 0},
		{typetag.Vec3, 12, 16, 0},
		{typetag.Vec4, 16, 16, 0},
		{typetag.DVec3, 24, 32, 0},
		{typetag.Mat2, 16, 8, 8},
		{typetag.Mat3, 48, 16, 16},
		{typetag.Mat4, 64, 16, 16},
		{typetag.Mat4x3, 64, 16, 16},
		{typetag.Mat3x2, 24, 8, 8},
		{typetag.Invalid, 0, 1, 0},
	}

	for _, tc := range tests {
		t.Run(tc.tag.String(), func(t *testing.T) {
			info := c.Leaf(tc.tag)
			if info.Size != tc.size {
				t.Errorf("size: got %d, want %d", info.Size, tc.size)
			}
			if info.Align != tc.align {
				t.Errorf("align: got %d, want %d", info.Align, tc.align)
			}
			if info.Stride != tc.stride {
				t.Errorf("stride: got %d, want %d", info.Stride, tc.stride)
			}
		})
	}
}

func TestColumnStride(t *testing.T) {
	c := NewCalculator(Uniform)
	if got := c.ColumnStride(typetag.Mat3); got != 16 {
		t.Errorf("mat3 column stride: got %d, want 16", got)
	}
	if got := c.ColumnStride(typetag.Vec3); got != 16 {
		t.Errorf("vec3 stride: got %d, want 16", got)
	}
	if got := c.ColumnStride(typetag.Float); got != 4 {
		t.Errorf("float stride: got %d, want 4", got)
	}
}

func TestArray(t *testing.T) {
	t.Run("uniform_float", func(t *testing.T) {
		c := NewCalculator(Uniform)
		info := c.Array(c.Leaf(typetag.Float), 4)
		if info.Stride != 16 {
			t.Errorf("stride: got %d, want 16", info.Stride)
		}
		if info.Size != 64 {
			t.Errorf("size: got %d, want 64", info.Size)
		}
		if info.Align != 16 {
			t.Errorf("align: got %d, want 16", info.Align)
		}
	})

	t.Run("storage_float", func(t *testing.T) {
		c := NewCalculator(Storage)
		info := c.Array(c.Leaf(typetag.Float), 4)
		if info.Stride != 4 {
			t.Errorf("stride: got %d, want 4", info.Stride)
		}
		if info.Size != 16 {
			t.Errorf("size: got %d, want 16", info.Size)
		}
	})

	t.Run("storage_vec3", func(t *testing.T) {
		c := NewCalculator(Storage)
		info := c.Array(c.Leaf(typetag.Vec3), 2)
		if info.Stride != 16 {
			t.Errorf("stride: got %d, want 16", info.Stride)
		}
	})

	t.Run("runtime_sized", func(t *testing.T) {
		c := NewCalculator(Storage)
		info := c.Array(c.Leaf(typetag.Vec2), 0)
		if info.Size != 0 || info.Stride != 8 {
			t.Errorf("got size %d stride %d, want 0 and 8", info.Size, info.Stride)
		}
	})
}

func TestStruct(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		c := NewCalculator(Storage)
		info := c.Struct(nil)
		if info.Size != 0 || info.Align != 1 {
			t.Errorf("got size %d align %d", info.Size, info.Align)
		}
	})

	t.Run("vec3_then_float", func(t *testing.T) {
		c := NewCalculator(Uniform)
		info := c.Struct([]Info{c.Leaf(typetag.Vec3), c.Leaf(typetag.Float)})
		if info.Offsets[0] != 0 || info.Offsets[1] != 12 {
			t.Errorf("offsets: got %v, want [0 12]", info.Offsets)
		}
		if info.Size != 16 {
			t.Errorf("size: got %d, want 16", info.Size)
		}
	})

	t.Run("float_then_vec3", func(t *testing.T) {
		c := NewCalculator(Uniform)
		info := c.Struct([]Info{c.Leaf(typetag.Float), c.Leaf(typetag.Vec3)})
		if info.Offsets[1] != 16 {
			t.Errorf("vec3 offset: got %d, want 16", info.Offsets[1])
		}
		if info.Size != 32 {
			t.Errorf("size: got %d, want 32", info.Size)
		}
	})

	t.Run("nested_struct_uniform", func(t *testing.T) {
		c := NewCalculator(Uniform)
		inner := c.Struct([]Info{c.Leaf(typetag.Float)})
		outer := c.Struct([]Info{c.Leaf(typetag.Float), inner})
		if inner.Size != 16 || inner.Align != 16 {
			t.Errorf("inner: got size %d align %d, want 16 16", inner.Size, inner.Align)
		}
		if outer.Offsets[1] != 16 {
			t.Errorf("inner offset: got %d, want 16", outer.Offsets[1])
		}
	})

	t.Run("nested_struct_storage", func(t *testing.T) {
		c := NewCalculator(Storage)
		inner := c.Struct([]Info{c.Leaf(typetag.Float)})
		outer := c.Struct([]Info{c.Leaf(typetag.Float), inner})
		if outer.Offsets[1] != 4 || outer.Size != 8 {
			t.Errorf("got offsets %v size %d", outer.Offsets, outer.Size)
		}
	})
}

func TestAlignTo(t *testing.T) {
	tests := []struct {
		offset, align, want uint32
	}{
		{0, 4, 0},
		{1, 4, 4},
		{12, 16, 16},
		{16, 16, 16},
		{7, 0, 7},
	}
	for _, tc := range tests {
		if got := AlignTo(tc.offset, tc.align); got != tc.want {
			t.Errorf("AlignTo(%d, %d) = %d, want %d", tc.offset, tc.align, got, tc.want)
		}
	}
}
