package vertex

import (
	"fmt"

	"github.com/wippyai/gpu-layout/typetag"
)

// AutoLocation marks an attribute whose shader location is looked up by name.
const AutoLocation int32 = -1

// Attribute describes how one struct field binds to a vertex input.
type Attribute struct {
	Name      string
	Offset    uintptr
	Location  int32
	Type      typetag.Tag
	Normalize bool
}

// Explicit reports whether the location was chosen by the author.
func (a Attribute) Explicit() bool {
	return a.Location >= 0
}

func (a Attribute) String() string {
	return fmt.Sprintf("(%q,%d,%d,%s,%t)", a.Name, a.Offset, a.Location, a.Type, a.Normalize)
}

// Override adjusts one attribute while a Format is built. It is the
// alternative to struct tags for types the caller does not own.
type Override struct {
	apply func(*Attribute) error
	field string
}

// Location pins field to an explicit shader location.
func Location(field string, location int32) Override {
	return Override{
		field: field,
		apply: func(a *Attribute) error {
			if location < 0 {
				return fmt.Errorf("location %d is negative", location)
			}
			a.Location = location
			return nil
		},
	}
}

// Normalize sets the normalize flag of field.
func Normalize(field string, on bool) Override {
	return Override{
		field: field,
		apply: func(a *Attribute) error {
			a.Normalize = on
			return nil
		},
	}
}
