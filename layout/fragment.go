// Package layout resolves a directory tree following the module naming
// convention into fragments and extracts their values.
//
// All paths are slash separated and relative to the fs.FS being resolved.
package layout

import (
	"errors"
	"fmt"
)

var (
	// ErrExpectedDirectory is returned when a directory is required but a file
	// was found.
	ErrExpectedDirectory = errors.New("expected directory")
	// ErrMissingRequiredEntry is returned when a reserved entry is absent.
	ErrMissingRequiredEntry = errors.New("missing required entry")
	// ErrRootNotObject is returned when the root marker of a sparse directory
	// does not hold an object.
	ErrRootNotObject = errors.New("root is not an object")
	// ErrNoIdentifier is returned when a fragment path cannot be expressed
	// relative to its collection base.
	ErrNoIdentifier = errors.New("unable to derive identifier")
)

// Kind discriminates fragment shapes.
type Kind int

const (
	// KindFile is a single file holding the whole value.
	KindFile Kind = iota
	// KindSparse is a directory with a root marker and sibling files.
	KindSparse
	// KindRendering is a sparse directory with attached rendering templates.
	KindRendering
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindSparse:
		return "sparse"
	case KindRendering:
		return "rendering"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Fragment is one resolved filesystem unit representing a single value.
// Siblings and Rendering are only populated for sparse kinds.
type Fragment struct {
	Kind      Kind
	Root      string
	Siblings  []string
	Rendering []string
}

// File returns a single file fragment.
func File(p string) *Fragment {
	return &Fragment{Kind: KindFile, Root: p}
}

// Sparse returns a sparse directory fragment.
func Sparse(root string, siblings []string) *Fragment {
	return &Fragment{Kind: KindSparse, Root: root, Siblings: siblings}
}

// RenderingSparse returns a sparse directory fragment with templates.
func RenderingSparse(root string, siblings, rendering []string) *Fragment {
	return &Fragment{Kind: KindRendering, Root: root, Siblings: siblings, Rendering: rendering}
}

// Anchor returns path identifier of the fragment is derived from.
func (f *Fragment) Anchor() string {
	return f.Root
}

// Paths returns every file fragment consists of in extraction order.
func (f *Fragment) Paths() []string {
	out := make([]string, 0, 1+len(f.Siblings)+len(f.Rendering))
	out = append(out, f.Root)
	out = append(out, f.Siblings...)
	out = append(out, f.Rendering...)
	return out
}

func (f *Fragment) String() string {
	switch f.Kind {
	case KindFile:
		return fmt.Sprintf("file(%s)", f.Root)
	case KindSparse:
		return fmt.Sprintf("sparse(%s, %d siblings)", f.Root, len(f.Siblings))
	default:
		return fmt.Sprintf("rendering(%s, %d siblings, %d templates)", f.Root, len(f.Siblings), len(f.Rendering))
	}
}
