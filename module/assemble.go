package module

import (
	"fmt"
	"io/fs"
	"maps"

	"go.uber.org/zap"

	"pd6/layout"
)

// Option configures assembly.
type Option func(*options)

type options struct {
	log             *zap.Logger
	failOnCollision bool
}

// WithLogger sets logger for warnings produced during assembly.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithCollisionError makes two fragments deriving the same identifier an
// error instead of letting the last one win.
func WithCollisionError(fail bool) Option {
	return func(o *options) {
		o.failOnCollision = fail
	}
}

func newOptions(opts []Option) *options {
	o := &options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Assemble builds module document from module descriptor fragment and
// optional type and content collections. Definitions found on the
// filesystem replace inline definitions with the same identifier. First
// error aborts assembly.
func Assemble(fsys fs.FS, names layout.Names, module *layout.Fragment, types, contents *layout.Collection, opts ...Option) (*Document, error) {
	o := newOptions(opts)

	v, err := layout.Extract(fsys, module, names)
	if err != nil {
		return nil, fmt.Errorf("unable to extract module: %w", err)
	}
	doc, err := decodeDocument(v, module.Root)
	if err != nil {
		return nil, err
	}

	fsTypes, err := gather(fsys, names, types, o, "type", decodeType)
	if err != nil {
		return nil, err
	}
	fsContents, err := gather(fsys, names, contents, o, "content", decodeContent)
	if err != nil {
		return nil, err
	}

	doc.Types = merge(doc.Types, fsTypes)
	doc.Contents = merge(doc.Contents, fsContents)

	o.log.Debug("Module assembled",
		zap.String("title", doc.Title),
		zap.Int("types", len(doc.Types)),
		zap.Int("contents", len(doc.Contents)))
	return doc, nil
}

// Build assembles module from loaded tree.
func Build(tree *layout.Tree, opts ...Option) (*Document, error) {
	return Assemble(tree.FS, tree.Names, tree.Module, tree.Types, tree.Contents, opts...)
}

// Load resolves tree rooted at root inside fsys and assembles module from it.
func Load(fsys fs.FS, root string, names layout.Names, opts ...Option) (*Document, error) {
	o := newOptions(opts)
	tree, err := layout.Load(fsys, root, names, layout.WithLogger(o.log))
	if err != nil {
		return nil, err
	}
	return Build(tree, opts...)
}

func gather[T any](fsys fs.FS, names layout.Names, c *layout.Collection, o *options, kind string, decode func(any, string) (T, error)) (map[string]T, error) {
	if c.Len() == 0 {
		return nil, nil
	}

	out := make(map[string]T, c.Len())
	origin := make(map[string]string, c.Len())
	for _, f := range c.Fragments {
		id, ok := layout.Identifier(f.Anchor(), c.Base, names)
		if !ok {
			return nil, fmt.Errorf("%w for %s '%s' relative to '%s'", layout.ErrNoIdentifier, kind, f.Anchor(), c.Base)
		}
		if prev, dup := origin[id]; dup {
			if o.failOnCollision {
				return nil, fmt.Errorf("%w: %s '%s' is defined by '%s' and '%s'", ErrIdentifierCollision, kind, id, prev, f.Root)
			}
			o.log.Warn("Identifier collision, last definition wins",
				zap.String(kind, id), zap.String("previous", prev), zap.String("current", f.Root))
		}

		v, err := layout.Extract(fsys, f, names)
		if err != nil {
			return nil, fmt.Errorf("unable to extract %s '%s': %w", kind, id, err)
		}
		item, err := decode(v, f.Root)
		if err != nil {
			return nil, fmt.Errorf("%s '%s': %w", kind, id, err)
		}
		origin[id] = f.Root
		out[id] = item
	}
	return out, nil
}

// merge inserts discovered definitions over a copy of inline ones.
func merge[T any](inline, discovered map[string]T) map[string]T {
	if len(inline) == 0 && len(discovered) == 0 {
		return nil
	}
	out := maps.Clone(inline)
	if out == nil {
		out = make(map[string]T, len(discovered))
	}
	maps.Copy(out, discovered)
	return out
}
