package typetag

// Scalar is the element kind of a Tag.
type Scalar uint8

const (
	ScalarInvalid Scalar = iota
	Int8
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Float32
	Float64
)

var scalarNames = [...]string{
	ScalarInvalid: "invalid",
	Int8:          "int8_t",
	Uint8:         "uint8_t",
	Int16:         "int16_t",
	Uint16:        "uint16_t",
	Int32:         "int",
	Uint32:        "uint",
	Float32:       "float",
	Float64:       "double",
}

// vector and matrix name prefixes, GLSL style
var scalarPrefixes = [...]string{
	Int8:    "i8",
	Uint8:   "u8",
	Int16:   "i16",
	Uint16:  "u16",
	Int32:   "i",
	Uint32:  "u",
	Float32: "",
	Float64: "d",
}

var scalarSizes = [...]int{
	Int8:    1,
	Uint8:   1,
	Int16:   2,
	Uint16:  2,
	Int32:   4,
	Uint32:  4,
	Float32: 4,
	Float64: 8,
}

func (s Scalar) String() string {
	if int(s) < len(scalarNames) {
		return scalarNames[s]
	}
	return "unknown"
}

func (s Scalar) Valid() bool {
	return s > ScalarInvalid && s <= Float64
}

// Size returns the scalar's byte size, or 0 for invalid scalars.
func (s Scalar) Size() int {
	if !s.Valid() {
		return 0
	}
	return scalarSizes[s]
}

func (s Scalar) IsInteger() bool {
	return s >= Int8 && s <= Uint32
}

func (s Scalar) IsSigned() bool {
	switch s {
	case Int8, Int16, Int32, Float32, Float64:
		return true
	default:
		return false
	}
}

func (s Scalar) IsFloat() bool {
	return s == Float32 || s == Float64
}
