package layout

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"

	"go.uber.org/zap"

	"pd6/archive"
)

// Tree is a module directory resolved into fragments. Types and Contents are
// nil when the corresponding directory is absent.
type Tree struct {
	FS       fs.FS
	Root     string
	Names    Names
	Module   *Fragment
	Types    *Collection
	Contents *Collection

	closer io.Closer
}

// Load resolves module tree rooted at root inside fsys.
func Load(fsys fs.FS, root string, names Names, opts ...Option) (*Tree, error) {
	info, err := stat(fsys, root)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, fmt.Errorf("unable to access module root '%s': %w", root, fs.ErrNotExist)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w '%s'", ErrExpectedDirectory, root)
	}

	module, err := Classify(fsys, root, names.Module, names)
	if err != nil {
		return nil, err
	}
	if module == nil {
		return nil, fmt.Errorf("%w '%s' in '%s'", ErrMissingRequiredEntry, names.Module, root)
	}

	t := &Tree{FS: fsys, Root: root, Names: names, Module: module}
	if t.Types, err = Collect(fsys, path.Join(root, names.Types), names, opts...); err != nil {
		return nil, err
	}
	if t.Contents, err = Collect(fsys, path.Join(root, names.Contents), names, opts...); err != nil {
		return nil, err
	}
	return t, nil
}

// Open resolves module tree from a directory or zip archive on disk. Archive
// may hold the tree at its top or inside a single top level directory. Tree
// must be closed after use.
func Open(source string, names Names, opts ...Option) (*Tree, error) {
	o := newOptions(opts)

	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("unable to access source '%s': %w", source, err)
	}
	if info.IsDir() {
		o.log.Debug("Opening module directory", zap.String("path", source))
		return Load(os.DirFS(source), ".", names, opts...)
	}

	isZip, err := archive.IsArchive(source)
	if err != nil {
		return nil, err
	}
	if !isZip {
		return nil, fmt.Errorf("%w '%s'", ErrExpectedDirectory, source)
	}

	o.log.Debug("Opening module archive", zap.String("path", source))
	a, err := archive.Open(source)
	if err != nil {
		return nil, err
	}
	root, err := archiveRoot(a, names)
	if err != nil {
		a.Close()
		return nil, err
	}
	t, err := Load(a, root, names, opts...)
	if err != nil {
		a.Close()
		return nil, err
	}
	t.closer = a
	return t, nil
}

// archiveRoot steps into single top level directory when archive does not
// hold module descriptor at its top.
func archiveRoot(fsys fs.FS, names Names) (string, error) {
	module, err := Classify(fsys, ".", names.Module, names)
	if err != nil || module != nil {
		return ".", err
	}
	entries, err := list(fsys, ".")
	if err != nil {
		return "", err
	}
	if len(entries) == 1 && entries[0].dir {
		return entries[0].path, nil
	}
	return ".", nil
}

// Close releases archive backing the tree, if any.
func (t *Tree) Close() error {
	if t == nil || t.closer == nil {
		return nil
	}
	err := t.closer.Close()
	t.closer = nil
	if errors.Is(err, fs.ErrClosed) {
		return nil
	}
	return err
}
