package layout

import (
	"fmt"
	"strings"

	"github.com/wippyai/gpu-layout/errors"
)

// MissingFieldError reports a member present on one side only.
type MissingFieldError struct {
	Name string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %q", e.Name)
}

func (e *MissingFieldError) Is(target error) bool {
	return isMatchKind(target, errors.KindFieldMissing)
}

// MemberMismatchError reports that the layout of a named member did not
// match. Cause is the nested error, so a chain of these forms the path.
type MemberMismatchError struct {
	Cause  error
	Member string
}

func (e *MemberMismatchError) Error() string {
	return fmt.Sprintf("member %q: %v", e.Member, e.Cause)
}

func (e *MemberMismatchError) Unwrap() error {
	return e.Cause
}

func (e *MemberMismatchError) Is(target error) bool {
	return isMatchKind(target, errors.KindMemberMismatch)
}

// LayoutMismatchError reports two layouts of different shape. Expected is
// the layout the Go type demands, Obtained the reflected one.
type LayoutMismatchError struct {
	Expected Block
	Obtained Block
}

func (e *LayoutMismatchError) Error() string {
	return fmt.Sprintf("layout mismatch: expected %v, obtained %v", e.Expected, e.Obtained)
}

func (e *LayoutMismatchError) Is(target error) bool {
	return isMatchKind(target, errors.KindLayoutMismatch)
}

func isMatchKind(target error, kind errors.Kind) bool {
	t, ok := target.(*errors.Error)
	return ok && t.Phase == errors.PhaseMatch && t.Kind == kind
}

// Path returns the member names from the root to the failing member. For a
// missing field the last element is the missing name.
func Path(err error) []string {
	var path []string
	for err != nil {
		switch e := err.(type) {
		case *MemberMismatchError:
			path = append(path, e.Member)
			err = e.Cause
		case *MissingFieldError:
			return append(path, e.Name)
		default:
			return path
		}
	}
	return path
}

// Describe renders a match error for humans, one fact per line.
func Describe(err error) string {
	if err == nil {
		return "ok"
	}

	var b strings.Builder
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for i, e := range joined.Unwrap() {
			if i > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(Describe(e))
		}
		return b.String()
	}

	path := strings.Join(Path(err), ".")
	switch e := innermost(err).(type) {
	case *MissingFieldError:
		fmt.Fprintf(&b, "%s: missing field", path)
	case *LayoutMismatchError:
		if path == "" {
			path = "<root>"
		}
		fmt.Fprintf(&b, "%s: layout mismatch\n  expected: %v\n  obtained: %v", path, e.Expected, e.Obtained)
	default:
		b.WriteString(err.Error())
	}
	return b.String()
}

func innermost(err error) error {
	for {
		m, ok := err.(*MemberMismatchError)
		if !ok {
			return err
		}
		err = m.Cause
	}
}
