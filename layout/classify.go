package layout

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
)

// entry is a directory child with symlinks resolved.
type entry struct {
	name string
	path string
	dir  bool
	file bool
}

// list returns children of dir in lexicographic order. Missing directory is
// not an error, it simply has no children.
func list(fsys fs.FS, dir string) ([]entry, error) {
	des, err := fs.ReadDir(fsys, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("unable to list directory '%s': %w", dir, err)
	}

	out := make([]entry, 0, len(des))
	for _, de := range des {
		e := entry{name: de.Name(), path: path.Join(dir, de.Name())}
		mode := de.Type()
		if mode&fs.ModeSymlink != 0 {
			info, err := fs.Stat(fsys, e.path)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					// dangling link
					continue
				}
				return nil, fmt.Errorf("unable to stat '%s': %w", e.path, err)
			}
			mode = info.Mode()
		}
		e.dir = mode.IsDir()
		e.file = mode.IsRegular()
		out = append(out, e)
	}
	return out, nil
}

func stat(fsys fs.FS, p string) (fs.FileInfo, error) {
	info, err := fs.Stat(fsys, p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("unable to stat '%s': %w", p, err)
	}
	return info, nil
}

// Classify resolves name inside dir. A file whose stem equals name wins over a
// directory called name. Nil fragment means name does not resolve to anything.
func Classify(fsys fs.FS, dir, name string, names Names) (*Fragment, error) {
	entries, err := list(fsys, dir)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.file && Stem(e.name) == name {
			return File(e.path), nil
		}
	}
	for _, e := range entries {
		if e.dir && e.name == name {
			return classifyDir(fsys, e.path, names)
		}
	}
	return nil, nil
}

// ClassifyPath resolves existing path p directly: a file is a single file
// fragment, a directory is a sparse fragment if it holds a root marker.
func ClassifyPath(fsys fs.FS, p string, names Names) (*Fragment, error) {
	info, err := stat(fsys, p)
	if err != nil || info == nil {
		return nil, err
	}
	switch {
	case info.Mode().IsRegular():
		return File(p), nil
	case info.IsDir():
		return classifyDir(fsys, p, names)
	}
	return nil, nil
}

func classifyDir(fsys fs.FS, dir string, names Names) (*Fragment, error) {
	entries, err := list(fsys, dir)
	if err != nil {
		return nil, err
	}

	var (
		root      string
		siblings  []string
		rendering string
	)
	for _, e := range entries {
		switch {
		case e.file && names.IsRoot(e.name):
			// only first marker counts, others are not siblings either
			if root == "" {
				root = e.path
			}
		case e.file:
			siblings = append(siblings, e.path)
		case e.dir && e.name == names.Rendering:
			rendering = e.path
		}
	}
	if root == "" {
		return nil, nil
	}
	if rendering == "" {
		return Sparse(root, siblings), nil
	}

	templates, err := list(fsys, rendering)
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(templates))
	for _, e := range templates {
		if e.file {
			files = append(files, e.path)
		}
	}
	return RenderingSparse(root, siblings, files), nil
}
