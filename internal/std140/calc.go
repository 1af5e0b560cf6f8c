package std140

import "github.com/wippyai/gpu-layout/typetag"

// Space selects the address space rules.
type Space uint8

const (
	Uniform Space = iota
	Storage
)

// uniformAlign is the minimum alignment of arrays and structs in the
// uniform address space.
const uniformAlign = 16

// Info describes the buffer layout of one type.
type Info struct {
	// Offsets holds member offsets for structs.
	Offsets []uint32
	Size    uint32
	Align   uint32
	// Stride is the element stride for arrays and the column stride for
	// matrices. Zero for everything else.
	Stride uint32
}

type Calculator struct {
	space Space
}

func NewCalculator(space Space) *Calculator {
	return &Calculator{space: space}
}

func (c *Calculator) Space() Space {
	return c.space
}

// Leaf returns the layout of a scalar, vector or matrix tag.
func (c *Calculator) Leaf(t typetag.Tag) Info {
	if !t.Valid() {
		return Info{Size: 0, Align: 1}
	}
	n := uint32(t.Scalar().Size())
	col := vector(n, t.Rows())
	if !t.IsMatrix() {
		return col
	}
	stride := AlignTo(col.Size, col.Align)
	return Info{
		Size:   stride * uint32(t.Columns()),
		Align:  col.Align,
		Stride: stride,
	}
}

func vector(n uint32, rows int) Info {
	switch rows {
	case 1:
		return Info{Size: n, Align: n}
	case 2:
		return Info{Size: 2 * n, Align: 2 * n}
	case 3:
		return Info{Size: 3 * n, Align: 4 * n}
	default:
		return Info{Size: 4 * n, Align: 4 * n}
	}
}

// ColumnStride returns the byte distance between matrix columns. For
// vectors and scalars it is the aligned size of the value itself.
func (c *Calculator) ColumnStride(t typetag.Tag) uint32 {
	info := c.Leaf(t)
	if info.Stride != 0 {
		return info.Stride
	}
	return AlignTo(info.Size, info.Align)
}

// Array returns the layout of count elements of elem. A count of zero
// describes a runtime-sized array: Stride is set and Size is zero.
func (c *Calculator) Array(elem Info, count uint32) Info {
	align := elem.Align
	if c.space == Uniform && align < uniformAlign {
		align = uniformAlign
	}
	stride := AlignTo(elem.Size, elem.Align)
	if c.space == Uniform {
		stride = AlignTo(stride, uniformAlign)
	}
	return Info{
		Size:   stride * count,
		Align:  align,
		Stride: stride,
	}
}

// Struct lays members out in order and returns their offsets.
func (c *Calculator) Struct(members []Info) Info {
	if len(members) == 0 {
		return Info{Size: 0, Align: 1}
	}

	offsets := make([]uint32, len(members))
	maxAlign := uint32(1)
	offset := uint32(0)

	for i, m := range members {
		offset = AlignTo(offset, m.Align)
		offsets[i] = offset

		if m.Align > maxAlign {
			maxAlign = m.Align
		}

		offset += m.Size
	}

	if c.space == Uniform && maxAlign < uniformAlign {
		maxAlign = uniformAlign
	}

	return Info{
		Size:    AlignTo(offset, maxAlign),
		Align:   maxAlign,
		Offsets: offsets,
	}
}

func AlignTo(offset, align uint32) uint32 {
	if align == 0 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}
