package layout

import (
	"fmt"
	"io/fs"

	"pd6/reader"
)

// Extract produces merged value of fragment. Sparse fragments start from the
// root marker object, each sibling is stored under its stem and templates
// are stored as a map under the rendering key, overwriting what root had.
func Extract(fsys fs.FS, f *Fragment, names Names) (any, error) {
	if f.Kind == KindFile {
		return reader.Read(fsys, f.Root)
	}

	v, err := reader.Read(fsys, f.Root)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w '%s' (found %s)", ErrRootNotObject, f.Root, describe(v))
	}

	for _, s := range f.Siblings {
		sv, err := reader.Read(fsys, s)
		if err != nil {
			return nil, err
		}
		obj[Stem(s)] = sv
	}

	if f.Kind == KindRendering {
		templates := make(map[string]any, len(f.Rendering))
		for _, r := range f.Rendering {
			rv, err := reader.Read(fsys, r)
			if err != nil {
				return nil, err
			}
			templates[Stem(r)] = rv
		}
		obj[names.Rendering] = templates
	}
	return obj, nil
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "number"
	}
}
