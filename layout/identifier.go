package layout

import (
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Identifier derives stable key for fragment anchored at anchor relative to
// base. Root marker is replaced by its directory, path components are joined
// with underscore and trailing extension is dropped. False is returned only
// when anchor cannot be expressed relative to base, sparse base itself gets
// empty identifier.
func Identifier(anchor, base string, names Names) (string, bool) {
	if names.IsRoot(anchor) {
		anchor = path.Dir(anchor)
	}

	rel, err := filepath.Rel(filepath.FromSlash(base), filepath.FromSlash(anchor))
	if err != nil {
		return "", false
	}

	parts := make([]string, 0, 4)
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if part == "" || part == "." || part == ".." {
			continue
		}
		parts = append(parts, part)
	}
	if len(parts) == 0 {
		return "", true
	}

	id := strings.Join(parts, "_")
	id = strings.TrimSuffix(id, path.Ext(parts[len(parts)-1]))
	return norm.NFC.String(id), true
}
