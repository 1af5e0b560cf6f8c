package content

import (
	"fmt"

	"github.com/wippyai/gpu-layout/errors"
)

// Descriptor is the size shape of a head-plus-trailing-elements type.
type Descriptor struct {
	FixedSize int // bytes of the zero-element form
	Stride    int // bytes per trailing element
}

// Validate checks Stride > 0 and FixedSize >= 0.
func (d Descriptor) Validate() error {
	if d.Stride <= 0 {
		return errors.New(errors.PhaseContent, errors.KindInvalidInput).
			Value(d.Stride).
			Detail("stride must be positive, got %d", d.Stride).
			Build()
	}
	if d.FixedSize < 0 {
		return errors.New(errors.PhaseContent, errors.KindInvalidInput).
			Value(d.FixedSize).
			Detail("fixed size must not be negative, got %d", d.FixedSize).
			Build()
	}
	return nil
}

// IsSizeSuitable reports whether size bytes hold the head plus a whole number
// of elements. size == FixedSize is suitable and holds zero elements.
func (d Descriptor) IsSizeSuitable(size int) bool {
	if d.Stride <= 0 || size < d.FixedSize {
		return false
	}
	return (size-d.FixedSize)%d.Stride == 0
}

// ElementCount returns the number of trailing elements in size bytes, or
// false when the size is not suitable.
func (d Descriptor) ElementCount(size int) (int, bool) {
	if !d.IsSizeSuitable(size) {
		return 0, false
	}
	return (size - d.FixedSize) / d.Stride, true
}

// SizeFor returns the byte size holding n trailing elements.
func (d Descriptor) SizeFor(n int) int {
	return d.FixedSize + n*d.Stride
}

// check panics unless size is suitable.
func (d Descriptor) check(size int) {
	if !d.IsSizeSuitable(size) {
		panic(errors.InvalidSize(errors.PhaseContent, size, d.FixedSize, d.Stride))
	}
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%d + n*%d", d.FixedSize, d.Stride)
}
