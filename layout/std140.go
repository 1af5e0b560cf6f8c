package layout

import (
	"github.com/wippyai/gpu-layout/errors"
	"github.com/wippyai/gpu-layout/internal/std140"
)

// Std140 returns the layout a uniform block declaring h's fields in order
// would reflect. Matching h against it tells whether the Go struct can be
// uploaded byte for byte.
func Std140(h *Host) (Block, error) {
	if h == nil {
		return nil, errors.NilPointer(errors.PhaseMatch, nil, "*layout.Host")
	}
	c := std140.NewCalculator(std140.Uniform)
	return std140Block(c, h, 0, []string{h.typ.Name()})
}

// Std140Size is the byte size of the uniform block Std140 describes.
func Std140Size(h *Host) (int, error) {
	if h == nil {
		return 0, errors.NilPointer(errors.PhaseMatch, nil, "*layout.Host")
	}
	c := std140.NewCalculator(std140.Uniform)
	info, err := structInfo(c, h, []string{h.typ.Name()})
	if err != nil {
		return 0, err
	}
	return int(info.Size), nil
}

func std140Block(c *std140.Calculator, h *Host, base uintptr, path []string) (Block, error) {
	info, err := structInfo(c, h, path)
	if err != nil {
		return nil, err
	}

	s := &Struct{Members: make([]Member, 0, len(h.fields))}
	for i := range h.fields {
		f := &h.fields[i]
		off := base + uintptr(info.Offsets[i])
		fieldPath := append(append([]string{}, path...), f.name)

		var b Block
		switch f.kind {
		case fieldLeaf:
			b = Leaf{Offset: off, Type: f.tag}
		case fieldLeafArray:
			fi, _ := fieldInfo(c, f, fieldPath)
			b = Leaf{Offset: off, Type: f.tag, Stride: uintptr(fi.Stride), Count: f.count}
		case fieldStruct:
			b, err = std140Block(c, f.elem, off, fieldPath)
		case fieldStructArray:
			fi, _ := fieldInfo(c, f, fieldPath)
			var elem Block
			elem, err = std140Block(c, f.elem, off, fieldPath)
			b = &Array{Offset: off, Elem: elem, Stride: uintptr(fi.Stride), Count: f.count}
		}
		if err != nil {
			return nil, err
		}
		s.Members = append(s.Members, Member{Name: f.name, Block: b})
	}
	return s, nil
}

func structInfo(c *std140.Calculator, h *Host, path []string) (std140.Info, error) {
	infos := make([]std140.Info, len(h.fields))
	for i := range h.fields {
		f := &h.fields[i]
		info, err := fieldInfo(c, f, append(append([]string{}, path...), f.name))
		if err != nil {
			return std140.Info{}, err
		}
		infos[i] = info
	}
	return c.Struct(infos), nil
}

func fieldInfo(c *std140.Calculator, f *hostField, path []string) (std140.Info, error) {
	switch f.kind {
	case fieldStruct:
		return structInfo(c, f.elem, path)
	case fieldStructArray:
		elem, err := structInfo(c, f.elem, path)
		if err != nil {
			return std140.Info{}, err
		}
		return c.Array(elem, uint32(f.count)), nil
	}

	if f.tag.Scalar().Size() < 4 {
		return std140.Info{}, errors.New(errors.PhaseMatch, errors.KindUnsupported).
			Path(path...).
			GPUType(f.tag.String()).
			Detail("8 and 16-bit types cannot be declared in a uniform block").
			Build()
	}
	leaf := c.Leaf(f.tag)
	if f.kind == fieldLeafArray {
		return c.Array(leaf, uint32(f.count)), nil
	}
	return leaf, nil
}
