package layout

import (
	"path"
	"strings"
)

// Names holds reserved names of the directory convention. They are passed
// around by value so the resolver never depends on global state.
type Names struct {
	// Root is the stem of the file which turns its directory into a sparse
	// fragment.
	Root string
	// Module is the name of the module descriptor entry at the top of the tree.
	Module string
	// Types is the name of the directory holding type definitions.
	Types string
	// Contents is the name of the directory holding content items.
	Contents string
	// Rendering is the name of the template directory next to a root marker
	// and the key templates are stored under.
	Rendering string
}

// DefaultNames returns the stock convention.
func DefaultNames() Names {
	return Names{
		Root:      "_",
		Module:    "module",
		Types:     "types",
		Contents:  "contents",
		Rendering: "rendering",
	}
}

// Stem returns base name of p without its last extension.
func Stem(p string) string {
	name := path.Base(p)
	return strings.TrimSuffix(name, path.Ext(name))
}

// IsRoot reports whether p names a root marker file.
func (n Names) IsRoot(p string) bool {
	return Stem(p) == n.Root
}
