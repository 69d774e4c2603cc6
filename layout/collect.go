package layout

import (
	"fmt"
	"io/fs"

	"go.uber.org/zap"
)

// Collection is an ordered list of fragments found under Base. Identifiers of
// all fragments are derived relative to Base, no matter how deep they were
// found.
type Collection struct {
	Base      string
	Fragments []*Fragment
}

// Len is safe to call on nil collection.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Fragments)
}

// Option configures tree resolution.
type Option func(*options)

type options struct {
	log *zap.Logger
}

// WithLogger sets logger used to report ignored parts of the tree.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Collect recursively resolves base into a flat list of fragments. It returns
// nil collection when base does not exist.
//
// Directory holding a root marker becomes a single sparse fragment, otherwise
// each of its files is a fragment of its own. Subdirectories other than
// rendering are always descended into and their fragments appended in
// lexicographic order.
func Collect(fsys fs.FS, base string, names Names, opts ...Option) (*Collection, error) {
	info, err := stat(fsys, base)
	if err != nil || info == nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w '%s'", ErrExpectedDirectory, base)
	}

	o := newOptions(opts)
	c := &Collection{Base: base}
	if err := collect(fsys, base, names, o, c); err != nil {
		return nil, err
	}
	o.log.Debug("Collected fragments", zap.String("base", base), zap.Int("count", len(c.Fragments)))
	return c, nil
}

func collect(fsys fs.FS, dir string, names Names, o *options, c *Collection) error {
	entries, err := list(fsys, dir)
	if err != nil {
		return err
	}

	sparse, err := classifyDir(fsys, dir, names)
	if err != nil {
		return err
	}
	if sparse != nil {
		c.Fragments = append(c.Fragments, sparse)
	} else {
		for _, e := range entries {
			if e.file {
				c.Fragments = append(c.Fragments, File(e.path))
			}
		}
	}

	for _, e := range entries {
		if !e.dir {
			continue
		}
		if e.name == names.Rendering {
			if sparse == nil {
				o.log.Warn("Ignoring rendering directory without root marker", zap.String("path", e.path))
			}
			continue
		}
		if err := collect(fsys, e.path, names, o, c); err != nil {
			return err
		}
	}
	return nil
}
