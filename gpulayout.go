package gpulayout

import (
	"github.com/wippyai/gpu-layout/content"
	"github.com/wippyai/gpu-layout/layout"
)

// LocationResolver maps vertex input names to shader locations.
type LocationResolver interface {
	AttributeLocation(name string) (uint32, bool)
}

// BlockReflector supplies reflected uniform block layouts by name.
type BlockReflector interface {
	UniformBlock(name string) (*layout.Struct, bool)
}

// StorageReflector supplies the head and stride of storage buffers that end
// in a runtime-sized array.
type StorageReflector interface {
	StorageBuffer(name string) (content.Descriptor, bool)
}

// Reflector is everything a linked program reports about itself.
type Reflector interface {
	LocationResolver
	BlockReflector
	StorageReflector
}

// Locations is a LocationResolver backed by a map.
type Locations map[string]uint32

func (l Locations) AttributeLocation(name string) (uint32, bool) {
	loc, ok := l[name]
	return loc, ok
}
