package content

import (
	"reflect"
	"unsafe"

	"github.com/wippyai/gpu-layout/errors"
)

// Adapter gives typed access to regions laid out as one H followed by any
// number of E. H and E must not contain Go pointers.
type Adapter[H, E any] struct {
	desc  Descriptor
	align uintptr
}

// NewAdapter computes the descriptor of H followed by E: FixedSize is the
// size of H rounded up to the alignment of E, Stride is the size of E.
func NewAdapter[H, E any]() (*Adapter[H, E], error) {
	ht := reflect.TypeFor[H]()
	et := reflect.TypeFor[E]()

	for _, t := range []reflect.Type{ht, et} {
		if hasPointers(t) {
			return nil, errors.Unsupported(errors.PhaseContent, nil, t.String(),
				"type holds Go pointers and cannot overlay raw memory")
		}
	}
	if et.Size() == 0 {
		return nil, errors.Unsupported(errors.PhaseContent, nil, et.String(),
			"trailing element type has zero size")
	}

	align := uintptr(ht.Align())
	if a := uintptr(et.Align()); a > align {
		align = a
	}

	return &Adapter[H, E]{
		desc: Descriptor{
			FixedSize: int(alignUp(ht.Size(), uintptr(et.Align()))),
			Stride:    int(et.Size()),
		},
		align: align,
	}, nil
}

// MustAdapter is like NewAdapter but panics on error.
func MustAdapter[H, E any]() *Adapter[H, E] {
	a, err := NewAdapter[H, E]()
	if err != nil {
		panic(err)
	}
	return a
}

func (a *Adapter[H, E]) Descriptor() Descriptor {
	return a.desc
}

// FixedSize is the byte size of the zero-element form.
func (a *Adapter[H, E]) FixedSize() int {
	return a.desc.FixedSize
}

// Align is the alignment a region needs to be viewed.
func (a *Adapter[H, E]) Align() uintptr {
	return a.align
}

func (a *Adapter[H, E]) IsSizeSuitable(size int) bool {
	return a.desc.IsSizeSuitable(size)
}

func (a *Adapter[H, E]) ElementCount(size int) (int, bool) {
	return a.desc.ElementCount(size)
}

func (a *Adapter[H, E]) SizeFor(n int) int {
	return a.desc.SizeFor(n)
}

// Read allocates size zeroed bytes, runs init over them and returns the
// view. It panics if size is not suitable. If init fails the region is
// dropped and init's error is returned.
func (a *Adapter[H, E]) Read(size int, init func(*View[H, E]) error) (*View[H, E], error) {
	a.desc.check(size)

	v := a.newView(allocate(size), size)
	if init != nil {
		if err := init(v); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// View retypes b without copying. b must have a suitable length and be
// aligned for H and E. The view shares memory with b.
func (a *Adapter[H, E]) View(b []byte) (*View[H, E], error) {
	if !a.desc.IsSizeSuitable(len(b)) {
		return nil, errors.InvalidSize(errors.PhaseContent, len(b), a.desc.FixedSize, a.desc.Stride)
	}
	if len(b) > 0 {
		if addr := uintptr(unsafe.Pointer(unsafe.SliceData(b))); addr%a.align != 0 {
			return nil, errors.Misaligned(errors.PhaseContent, addr, a.align)
		}
	}
	return a.newView(b, len(b)), nil
}

func (a *Adapter[H, E]) newView(b []byte, size int) *View[H, E] {
	n, _ := a.desc.ElementCount(size)
	return &View[H, E]{buf: b, fixed: a.desc.FixedSize, n: n}
}

// allocate returns size zeroed bytes backed by uint64 words, so the start is
// 8-byte aligned.
func allocate(size int) []byte {
	words := make([]uint64, (size+7)/8+1)
	return unsafe.Slice((*byte)(unsafe.Pointer(&words[0])), size)
}

func alignUp(n, align uintptr) uintptr {
	if align == 0 {
		return n
	}
	return (n + align - 1) &^ (align - 1)
}

func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Slice, reflect.String,
		reflect.Interface, reflect.Chan, reflect.Func:
		return true
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
	}
	return false
}
