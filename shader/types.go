package shader

import (
	"fmt"

	"github.com/gogpu/naga/ir"

	"github.com/wippyai/gpu-layout/errors"
	"github.com/wippyai/gpu-layout/internal/std140"
	"github.com/wippyai/gpu-layout/layout"
	"github.com/wippyai/gpu-layout/typetag"
)

// converter turns IR types into layout blocks for one address space.
type converter struct {
	module *ir.Module
	calc   *std140.Calculator
}

func newConverter(m *ir.Module, space std140.Space) *converter {
	return &converter{module: m, calc: std140.NewCalculator(space)}
}

func (c *converter) typ(h ir.TypeHandle, path []string) (ir.Type, error) {
	if int(h) >= len(c.module.Types) {
		return ir.Type{}, errors.New(errors.PhaseReflect, errors.KindInvalidInput).
			Path(path...).
			Value(h).
			Detail("type handle %d out of range", h).
			Build()
	}
	return c.module.Types[h], nil
}

func scalarOf(s ir.ScalarType) (typetag.Scalar, bool) {
	switch {
	case s.Kind == ir.ScalarFloat && s.Width == 4:
		return typetag.Float32, true
	case s.Kind == ir.ScalarFloat && s.Width == 8:
		return typetag.Float64, true
	case s.Kind == ir.ScalarSint && s.Width == 4:
		return typetag.Int32, true
	case s.Kind == ir.ScalarUint && s.Width == 4:
		return typetag.Uint32, true
	case s.Kind == ir.ScalarSint && s.Width == 2:
		return typetag.Int16, true
	case s.Kind == ir.ScalarUint && s.Width == 2:
		return typetag.Uint16, true
	case s.Kind == ir.ScalarSint && s.Width == 1:
		return typetag.Int8, true
	case s.Kind == ir.ScalarUint && s.Width == 1:
		return typetag.Uint8, true
	default:
		return typetag.ScalarInvalid, false
	}
}

func scalarName(s ir.ScalarType) string {
	switch s.Kind {
	case ir.ScalarSint:
		return fmt.Sprintf("i%d", int(s.Width)*8)
	case ir.ScalarUint:
		return fmt.Sprintf("u%d", int(s.Width)*8)
	case ir.ScalarFloat:
		return fmt.Sprintf("f%d", int(s.Width)*8)
	case ir.ScalarBool:
		return "bool"
	default:
		return "abstract"
	}
}

// tag returns the type tag of a scalar, vector, matrix or atomic type.
func (c *converter) tag(inner ir.TypeInner, path []string) (typetag.Tag, bool, error) {
	var (
		scalar     ir.ScalarType
		cols, rows = 1, 1
	)
	switch t := inner.(type) {
	case ir.ScalarType:
		scalar = t
	case ir.AtomicType:
		scalar = t.Scalar
	case ir.VectorType:
		scalar, rows = t.Scalar, int(t.Size)
	case ir.MatrixType:
		scalar, cols, rows = t.Scalar, int(t.Columns), int(t.Rows)
	default:
		return typetag.Invalid, false, nil
	}

	s, ok := scalarOf(scalar)
	if !ok {
		return typetag.Invalid, true, errors.New(errors.PhaseReflect, errors.KindUnsupported).
			Path(path...).
			GPUType(scalarName(scalar)).
			Detail("scalar type has no host representation").
			Build()
	}
	tag, ok := typetag.Matrix(s, cols, rows)
	if !ok {
		return typetag.Invalid, true, errors.New(errors.PhaseReflect, errors.KindUnsupported).
			Path(path...).
			Detail("no type tag for %d x %d %s", cols, rows, s).
			Build()
	}
	return tag, true, nil
}

// block converts type h placed at offset into a layout block.
func (c *converter) block(h ir.TypeHandle, offset uintptr, path []string) (layout.Block, error) {
	t, err := c.typ(h, path)
	if err != nil {
		return nil, err
	}

	if tag, ok, err := c.tag(t.Inner, path); ok {
		if err != nil {
			return nil, err
		}
		return layout.Leaf{Offset: offset, Type: tag}, nil
	}

	switch inner := t.Inner.(type) {
	case ir.StructType:
		return c.structBlock(inner, offset, path)
	case ir.ArrayType:
		return c.arrayBlock(inner, offset, path)
	default:
		return nil, errors.New(errors.PhaseReflect, errors.KindUnsupported).
			Path(path...).
			GPUType(fmt.Sprintf("%T", t.Inner)).
			Detail("type cannot appear in a buffer layout").
			Build()
	}
}

func (c *converter) structBlock(st ir.StructType, offset uintptr, path []string) (*layout.Struct, error) {
	offsets, err := c.memberOffsets(st, path)
	if err != nil {
		return nil, err
	}

	s := &layout.Struct{Members: make([]layout.Member, 0, len(st.Members))}
	for i, m := range st.Members {
		memberPath := append(append([]string{}, path...), m.Name)
		b, err := c.block(m.Type, offset+uintptr(offsets[i]), memberPath)
		if err != nil {
			return nil, err
		}
		s.Members = append(s.Members, layout.Member{Name: m.Name, Block: b})
	}
	return s, nil
}

// memberOffsets uses the IR offsets unless the struct was never laid out.
func (c *converter) memberOffsets(st ir.StructType, path []string) ([]uint32, error) {
	offsets := make([]uint32, len(st.Members))
	laidOut := st.Span != 0 || len(st.Members) < 2
	if laidOut {
		for i, m := range st.Members {
			offsets[i] = m.Offset
		}
		return offsets, nil
	}

	info, err := c.measure(ir.StructType{Members: st.Members}, path)
	if err != nil {
		return nil, err
	}
	copy(offsets, info.Offsets)
	return offsets, nil
}

func (c *converter) arrayBlock(arr ir.ArrayType, offset uintptr, path []string) (layout.Block, error) {
	stride, err := c.stride(arr, path)
	if err != nil {
		return nil, err
	}

	count := layout.Unsized
	if arr.Size.Constant != nil {
		count = int(*arr.Size.Constant)
	}

	base, err := c.typ(arr.Base, path)
	if err != nil {
		return nil, err
	}
	if tag, ok, err := c.tag(base.Inner, path); ok {
		if err != nil {
			return nil, err
		}
		return layout.Leaf{Offset: offset, Type: tag, Stride: uintptr(stride), Count: count}, nil
	}

	st, ok := base.Inner.(ir.StructType)
	if !ok {
		return nil, errors.New(errors.PhaseReflect, errors.KindUnsupported).
			Path(path...).
			Detail("arrays of %T are not supported", base.Inner).
			Build()
	}
	elem, err := c.structBlock(st, offset, path)
	if err != nil {
		return nil, err
	}
	return &layout.Array{Offset: offset, Elem: elem, Stride: uintptr(stride), Count: count}, nil
}

func (c *converter) stride(arr ir.ArrayType, path []string) (uint32, error) {
	if arr.Stride != 0 {
		return arr.Stride, nil
	}
	info, err := c.measure(ir.ArrayType{Base: arr.Base, Size: ir.ArraySize{}}, path)
	if err != nil {
		return 0, err
	}
	return info.Stride, nil
}

// measure computes size and alignment of an IR type with the converter's
// address space rules.
func (c *converter) measure(inner ir.TypeInner, path []string) (std140.Info, error) {
	if tag, ok, err := c.tag(inner, path); ok {
		if err != nil {
			return std140.Info{}, err
		}
		return c.calc.Leaf(tag), nil
	}

	switch t := inner.(type) {
	case ir.StructType:
		infos := make([]std140.Info, len(t.Members))
		for i, m := range t.Members {
			mt, err := c.typ(m.Type, path)
			if err != nil {
				return std140.Info{}, err
			}
			if infos[i], err = c.measure(mt.Inner, path); err != nil {
				return std140.Info{}, err
			}
		}
		return c.calc.Struct(infos), nil
	case ir.ArrayType:
		bt, err := c.typ(t.Base, path)
		if err != nil {
			return std140.Info{}, err
		}
		elem, err := c.measure(bt.Inner, path)
		if err != nil {
			return std140.Info{}, err
		}
		var count uint32
		if t.Size.Constant != nil {
			count = *t.Size.Constant
		}
		return c.calc.Array(elem, count), nil
	default:
		return std140.Info{}, errors.New(errors.PhaseReflect, errors.KindUnsupported).
			Path(path...).
			Detail("cannot measure %T", inner).
			Build()
	}
}
