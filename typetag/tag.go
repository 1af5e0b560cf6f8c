package typetag

import "strconv"

// Tag identifies a GPU scalar, vector or matrix type.
//
// Bits 8-15 hold the Scalar, bits 4-7 the column count and bits 0-3 the row
// count. Scalars and vectors have one column. The zero Tag is invalid.
type Tag uint16

const Invalid Tag = 0

const (
	Float Tag = Tag(Float32)<<8 | 1<<4 | 1
	Vec2  Tag = Tag(Float32)<<8 | 1<<4 | 2
	Vec3  Tag = Tag(Float32)<<8 | 1<<4 | 3
	Vec4  Tag = Tag(Float32)<<8 | 1<<4 | 4

	Double Tag = Tag(Float64)<<8 | 1<<4 | 1
	DVec2  Tag = Tag(Float64)<<8 | 1<<4 | 2
	DVec3  Tag = Tag(Float64)<<8 | 1<<4 | 3
	DVec4  Tag = Tag(Float64)<<8 | 1<<4 | 4

	Int   Tag = Tag(Int32)<<8 | 1<<4 | 1
	IVec2 Tag = Tag(Int32)<<8 | 1<<4 | 2
	IVec3 Tag = Tag(Int32)<<8 | 1<<4 | 3
	IVec4 Tag = Tag(Int32)<<8 | 1<<4 | 4

	Uint  Tag = Tag(Uint32)<<8 | 1<<4 | 1
	UVec2 Tag = Tag(Uint32)<<8 | 1<<4 | 2
	UVec3 Tag = Tag(Uint32)<<8 | 1<<4 | 3
	UVec4 Tag = Tag(Uint32)<<8 | 1<<4 | 4

	I16     Tag = Tag(Int16)<<8 | 1<<4 | 1
	I16Vec2 Tag = Tag(Int16)<<8 | 1<<4 | 2
	I16Vec3 Tag = Tag(Int16)<<8 | 1<<4 | 3
	I16Vec4 Tag = Tag(Int16)<<8 | 1<<4 | 4

	U16     Tag = Tag(Uint16)<<8 | 1<<4 | 1
	U16Vec2 Tag = Tag(Uint16)<<8 | 1<<4 | 2
	U16Vec3 Tag = Tag(Uint16)<<8 | 1<<4 | 3
	U16Vec4 Tag = Tag(Uint16)<<8 | 1<<4 | 4

	I8     Tag = Tag(Int8)<<8 | 1<<4 | 1
	I8Vec2 Tag = Tag(Int8)<<8 | 1<<4 | 2
	I8Vec3 Tag = Tag(Int8)<<8 | 1<<4 | 3
	I8Vec4 Tag = Tag(Int8)<<8 | 1<<4 | 4

	U8     Tag = Tag(Uint8)<<8 | 1<<4 | 1
	U8Vec2 Tag = Tag(Uint8)<<8 | 1<<4 | 2
	U8Vec3 Tag = Tag(Uint8)<<8 | 1<<4 | 3
	U8Vec4 Tag = Tag(Uint8)<<8 | 1<<4 | 4
)

// Matrices, named matCxR (C columns, R rows).
const (
	Mat2   Tag = Tag(Float32)<<8 | 2<<4 | 2
	Mat2x3 Tag = Tag(Float32)<<8 | 2<<4 | 3
	Mat2x4 Tag = Tag(Float32)<<8 | 2<<4 | 4
	Mat3x2 Tag = Tag(Float32)<<8 | 3<<4 | 2
	Mat3   Tag = Tag(Float32)<<8 | 3<<4 | 3
	Mat3x4 Tag = Tag(Float32)<<8 | 3<<4 | 4
	Mat4x2 Tag = Tag(Float32)<<8 | 4<<4 | 2
	Mat4x3 Tag = Tag(Float32)<<8 | 4<<4 | 3
	Mat4   Tag = Tag(Float32)<<8 | 4<<4 | 4

	DMat2 Tag = Tag(Float64)<<8 | 2<<4 | 2
	DMat3 Tag = Tag(Float64)<<8 | 3<<4 | 3
	DMat4 Tag = Tag(Float64)<<8 | 4<<4 | 4
)

// Vector returns the n-component vector of s; n == 1 yields the scalar tag.
func Vector(s Scalar, n int) (Tag, bool) {
	return Matrix(s, 1, n)
}

// Matrix returns the cols x rows matrix of s. Matrices of integers are not
// GPU types and are rejected.
func Matrix(s Scalar, cols, rows int) (Tag, bool) {
	if !s.Valid() || cols < 1 || cols > 4 || rows < 1 || rows > 4 {
		return Invalid, false
	}
	if cols > 1 && (rows < 2 || !s.IsFloat()) {
		return Invalid, false
	}
	return Tag(s)<<8 | Tag(cols)<<4 | Tag(rows), true
}

func (t Tag) Scalar() Scalar {
	return Scalar(t >> 8)
}

// Rows is the component count of a vector, or the row count of a matrix.
func (t Tag) Rows() int {
	return int(t & 0xf)
}

func (t Tag) Columns() int {
	return int(t >> 4 & 0xf)
}

// Components is the total number of scalars in the type.
func (t Tag) Components() int {
	return t.Rows() * t.Columns()
}

func (t Tag) Valid() bool {
	_, ok := Matrix(t.Scalar(), t.Columns(), t.Rows())
	return ok
}

func (t Tag) IsScalar() bool {
	return t.Valid() && t.Columns() == 1 && t.Rows() == 1
}

func (t Tag) IsVector() bool {
	return t.Valid() && t.Columns() == 1 && t.Rows() > 1
}

func (t Tag) IsMatrix() bool {
	return t.Valid() && t.Columns() > 1
}

// IsInteger reports whether the tag is backed by integers, which is when a
// normalize flag has meaning.
func (t Tag) IsInteger() bool {
	return t.Valid() && t.Scalar().IsInteger()
}

// Size is the tightly packed byte size of the type on the host.
func (t Tag) Size() int {
	if !t.Valid() {
		return 0
	}
	return t.Scalar().Size() * t.Components()
}

// Column returns the tag of one matrix column, or t itself for vectors.
func (t Tag) Column() Tag {
	if !t.IsMatrix() {
		return t
	}
	c, _ := Vector(t.Scalar(), t.Rows())
	return c
}

func (t Tag) String() string {
	if !t.Valid() {
		return "invalid"
	}
	s := t.Scalar()
	cols, rows := t.Columns(), t.Rows()
	switch {
	case cols == 1 && rows == 1:
		return s.String()
	case cols == 1:
		return scalarPrefixes[s] + "vec" + strconv.Itoa(rows)
	case cols == rows:
		return scalarPrefixes[s] + "mat" + strconv.Itoa(cols)
	default:
		return scalarPrefixes[s] + "mat" + strconv.Itoa(cols) + "x" + strconv.Itoa(rows)
	}
}
