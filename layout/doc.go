// Package layout matches Go struct types against GPU block layouts.
//
// A Block is a tree of three node kinds: *Struct (named members), Leaf (a
// scalar, vector or matrix tag, optionally an array of them) and *Array (an
// array of structs). Blocks come from two sources: shader reflection, which
// reports what a compiled uniform block actually contains, and Host.Layout,
// which synthesizes the tree a Go struct demands from its real field offsets.
//
// Match compares the two and returns the first difference as a typed,
// path-carrying error:
//
//	host := layout.MustHostOf[Camera]()
//	if err := host.Match(reflected, 0); err != nil {
//		fmt.Println(layout.Path(err)) // [xf rot]
//		fmt.Println(layout.Describe(err))
//	}
//
// The errors are *MissingFieldError, *MemberMismatchError (wrapping a nested
// cause) and *LayoutMismatchError (the expected and obtained subtrees). Each
// also matches the corresponding errors.Error category under errors.Is.
//
// MatchAll is the accumulating variant. Std140 builds the tree a uniform
// block declaring the same fields would reflect, which shows whether a Go
// struct's natural packing can be uploaded as is.
package layout
