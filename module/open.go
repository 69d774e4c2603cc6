package module

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"

	"pd6/layout"
)

// Open returns module from source on disk. Built module (json file) is read
// as is, directories and archives are resolved and assembled.
func Open(source string, names layout.Names, opts ...Option) (doc *Document, err error) {
	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("unable to access source '%s': %w", source, err)
	}
	if !info.IsDir() && strings.EqualFold(filepath.Ext(source), ".json") {
		return ReadFile(source)
	}

	o := newOptions(opts)
	tree, err := layout.Open(source, names, layout.WithLogger(o.log))
	if err != nil {
		return nil, err
	}
	defer func() {
		err = multierr.Append(err, tree.Close())
	}()
	return Build(tree, opts...)
}
