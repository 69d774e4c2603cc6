// Package archive exposes zip archives holding module trees as fs.FS.
package archive

import (
	"archive/zip"
	"fmt"
	"path"
	"strings"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
)

// Archive is an opened zip archive. It satisfies fs.FS and must be closed
// after use.
type Archive struct {
	*zip.ReadCloser
	Path string
}

// IsArchive reports whether file looks like zip archive by its content rather
// than name.
func IsArchive(name string) (bool, error) {
	kind, err := filetype.MatchFile(name)
	if err != nil {
		return false, fmt.Errorf("unable to detect type of '%s': %w", name, err)
	}
	return kind == matchers.TypeZip, nil
}

// Open opens archive and makes sure none of its entries could escape the tree
// (Zip Slip).
func Open(name string) (*Archive, error) {
	r, err := zip.OpenReader(name)
	if err != nil {
		return nil, fmt.Errorf("unable to open archive '%s': %w", name, err)
	}
	for _, f := range r.File {
		if !isSafePath(f.Name) {
			r.Close()
			return nil, fmt.Errorf("archive '%s' entry %q: unsafe path (absolute or contains path traversal)", name, f.Name)
		}
	}
	return &Archive{ReadCloser: r, Path: name}, nil
}

// Files returns names of regular files in archive which start with prefix,
// in archive order.
func (a *Archive) Files(prefix string) []string {
	var out []string
	for _, f := range a.File {
		if !f.FileInfo().IsDir() && strings.HasPrefix(f.Name, prefix) {
			out = append(out, f.Name)
		}
	}
	return out
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return false
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
