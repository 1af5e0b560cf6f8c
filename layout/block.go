package layout

import (
	"fmt"
	"strings"

	"github.com/wippyai/gpu-layout/typetag"
)

// Unsized is the Count of a runtime-sized array.
const Unsized = -1

// Block is a node of a block layout tree: *Struct, Leaf or *Array.
type Block interface {
	fmt.Stringer
	block()
}

// Member is one named member of a Struct.
type Member struct {
	Block Block
	Name  string
}

// Struct maps member names to nested layouts. Member order follows the
// source but is not significant for matching.
type Struct struct {
	Members []Member
}

// Leaf is a scalar, vector or matrix at Offset. Count is 0 for a single
// value, the element count for arrays, or Unsized.
type Leaf struct {
	Offset uintptr
	Stride uintptr
	Count  int
	Type   typetag.Tag
}

// Array is an array of aggregates. Elem is the layout of element zero, with
// offsets absolute like every other node.
type Array struct {
	Elem   Block
	Offset uintptr
	Stride uintptr
	Count  int
}

func (*Struct) block() {}
func (Leaf) block()    {}
func (*Array) block()  {}

// Member returns the first member called name.
func (s *Struct) Member(name string) (Block, bool) {
	for _, m := range s.Members {
		if m.Name == name {
			return m.Block, true
		}
	}
	return nil, false
}

// Add appends a member and returns s.
func (s *Struct) Add(name string, b Block) *Struct {
	s.Members = append(s.Members, Member{Name: name, Block: b})
	return s
}

func (s *Struct) String() string {
	var b strings.Builder
	b.WriteString("Struct{")
	for i, m := range s.Members {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(m.Name)
		b.WriteString(": ")
		if m.Block == nil {
			b.WriteString("<nil>")
			continue
		}
		b.WriteString(m.Block.String())
	}
	b.WriteByte('}')
	return b.String()
}

// IsArray reports whether the leaf is an array of its Type.
func (l Leaf) IsArray() bool {
	return l.Count != 0
}

func (l Leaf) String() string {
	switch {
	case l.Count == Unsized:
		return fmt.Sprintf("%s[]/%d@%d", l.Type, l.Stride, l.Offset)
	case l.Count > 0:
		return fmt.Sprintf("%s[%d]/%d@%d", l.Type, l.Count, l.Stride, l.Offset)
	default:
		return fmt.Sprintf("%s@%d", l.Type, l.Offset)
	}
}

func (a *Array) String() string {
	count := "[]"
	if a.Count != Unsized {
		count = fmt.Sprintf("[%d]", a.Count)
	}
	return fmt.Sprintf("Array%s/%d@%d %s", count, a.Stride, a.Offset, a.Elem)
}

// Tree renders b as an indented multi-line tree.
func Tree(b Block) string {
	var sb strings.Builder
	writeTree(&sb, "", b, 0)
	return sb.String()
}

func writeTree(sb *strings.Builder, name string, b Block, depth int) {
	indent := strings.Repeat("  ", depth)
	label := name
	if label != "" {
		label += ": "
	}

	switch n := b.(type) {
	case *Struct:
		sb.WriteString(indent + label + "struct\n")
		for _, m := range n.Members {
			writeTree(sb, m.Name, m.Block, depth+1)
		}
	case *Array:
		count := "[]"
		if n.Count != Unsized {
			count = fmt.Sprintf("[%d]", n.Count)
		}
		fmt.Fprintf(sb, "%s%sarray%s stride %d @%d\n", indent, label, count, n.Stride, n.Offset)
		writeTree(sb, "", n.Elem, depth+1)
	case Leaf:
		sb.WriteString(indent + label + n.String() + "\n")
	case nil:
		sb.WriteString(indent + label + "<nil>\n")
	}
}
