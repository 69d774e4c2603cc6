// Package debug renders indented human readable dumps of resolved module
// trees and documents. Output is only meant for the debug report.
package debug

import (
	"fmt"
	"maps"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/maruel/natural"
)

type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) indent(depth int) {
	for range depth {
		tw.w.WriteString("  ")
	}
}

func (tw TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

func (tw TreeWriter) TextBlock(depth int, label, value string) {
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

// Value dumps generic decoded value under label. Object keys are listed in
// natural order so "item2" comes before "item10".
func (tw TreeWriter) Value(depth int, label string, v any) {
	switch t := v.(type) {
	case map[string]any:
		tw.Line(depth, "%s: object(%d)", label, len(t))
		for _, k := range SortedKeys(t) {
			tw.Value(depth+1, k, t[k])
		}
	case []any:
		tw.Line(depth, "%s: array(%d)", label, len(t))
		for i, e := range t {
			tw.Value(depth+1, fmt.Sprintf("[%d]", i), e)
		}
	case string:
		tw.TextBlock(depth, label, t)
	case nil:
		tw.Line(depth, "%s: null", label)
	default:
		tw.Line(depth, "%s: %v", label, t)
	}
}

// SortedKeys returns keys of m in natural order.
func SortedKeys[V any](m map[string]V) []string {
	keys := slices.Collect(maps.Keys(m))
	sort.Sort(natural.StringSlice(keys))
	return keys
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
