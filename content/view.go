package content

import "unsafe"

// View is a region seen as one H followed by Len() values of E.
type View[H, E any] struct {
	buf   []byte
	fixed int
	n     int
}

// Head returns the fixed-size head.
func (v *View[H, E]) Head() *H {
	return (*H)(unsafe.Pointer(unsafe.SliceData(v.buf)))
}

// Elems returns the trailing elements. The slice aliases the region.
func (v *View[H, E]) Elems() []E {
	if v.n == 0 {
		return nil
	}
	return unsafe.Slice((*E)(unsafe.Pointer(&v.buf[v.fixed])), v.n)
}

// Len is the number of trailing elements.
func (v *View[H, E]) Len() int {
	return v.n
}

// Size is the region size in bytes.
func (v *View[H, E]) Size() int {
	return len(v.buf)
}

// Bytes returns the whole region.
func (v *View[H, E]) Bytes() []byte {
	return v.buf
}

// Pointer returns the address of the first byte, for handing the region to
// a transfer API. It carries no ownership.
func (v *View[H, E]) Pointer() unsafe.Pointer {
	return unsafe.Pointer(unsafe.SliceData(v.buf))
}
