// Package content handles buffers made of a fixed-size head followed by a
// variable number of trailing elements, such as a storage buffer declared as
//
//	struct Particles { count: u32, items: array<Particle> }
//
// Descriptor answers size questions (is a byte count admissible, how many
// elements does it hold). Adapter[H, E] adds typed access: Read allocates and
// initializes a new region, View retypes an existing one after validating its
// size and alignment.
//
//	a := content.MustAdapter[Header, Particle]()
//	v, err := a.Read(a.SizeFor(128), func(v *content.View[Header, Particle]) error {
//		v.Head().Count = uint32(v.Len())
//		return nil
//	})
//
// Read panics when the size is not admissible: sizes come from GPU-reported
// byte counts and a bad one is a programming error. View returns an error
// because the region is caller data.
package content
