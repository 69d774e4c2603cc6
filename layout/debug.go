package layout

import (
	"pd6/utils/debug"
)

// String returns readable dump of resolved tree for the debug report.
func (t *Tree) String() string {
	if t == nil {
		return "<nil Tree>"
	}

	tw := debug.NewTreeWriter()
	tw.Line(0, "Module tree at %q", t.Root)
	tw.Line(1, "Module: %s", t.Module)
	writeCollection(tw, t.Names, t.Names.Types, t.Types)
	writeCollection(tw, t.Names, t.Names.Contents, t.Contents)
	return tw.String()
}

func writeCollection(tw *debug.TreeWriter, names Names, label string, c *Collection) {
	if c == nil {
		tw.Line(1, "%s: absent", label)
		return
	}
	tw.Line(1, "%s: %d fragments relative to %q", label, len(c.Fragments), c.Base)
	for _, f := range c.Fragments {
		id, ok := Identifier(f.Anchor(), c.Base, names)
		if !ok {
			id = "<none>"
		}
		tw.Line(2, "[%s] %s", id, f.Kind)
		for _, p := range f.Paths() {
			tw.Line(3, "%s", p)
		}
	}
}
