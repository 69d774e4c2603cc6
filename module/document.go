// Package module defines module document and assembles it from resolved
// directory tree.
package module

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"slices"

	"pd6/utils/debug"
)

var (
	// ErrShape is returned when decoded value does not fit expected document
	// shape.
	ErrShape = errors.New("unexpected shape")
	// ErrMissingField accompanies ErrShape when required field is absent.
	ErrMissingField = errors.New("missing required field")
	// ErrIdentifierCollision is returned when two fragments derive the same
	// identifier and collisions are not allowed.
	ErrIdentifierCollision = errors.New("identifier collision")
)

// Document is a fully assembled module.
type Document struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Source      string             `json:"source"`
	Types       map[string]*Type   `json:"types,omitempty"`
	Contents    map[string]Content `json:"contents,omitempty"`
}

// Type describes a class of content items.
type Type struct {
	Description string `json:"description"`
	// Schema is JSON schema content items of this type must satisfy.
	Schema any `json:"schema,omitempty"`
	// Rendering maps format name to template source.
	Rendering map[string]string `json:"rendering,omitempty"`
}

// Content is a single content item.
type Content map[string]any

// TypeField is the content item field naming its type.
const TypeField = "type"

// TypeName returns name of the type governing content item.
func (c Content) TypeName() (string, bool) {
	name, ok := c[TypeField].(string)
	return name, ok && name != ""
}

// ContentIDs returns content identifiers in lexicographic order.
func (d *Document) ContentIDs() []string {
	ids := make([]string, 0, len(d.Contents))
	for id := range d.Contents {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// TypeIDs returns type identifiers in lexicographic order.
func (d *Document) TypeIDs() []string {
	ids := make([]string, 0, len(d.Types))
	for id := range d.Types {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Marshal serializes document. Map keys are always sorted so the same
// document produces the same bytes.
func (d *Document) Marshal(pretty bool) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("unable to serialize module: %w", err)
	}
	if !pretty {
		return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
	}
	return buf.Bytes(), nil
}

// Value returns document as generic decoded JSON value, the way templates
// and schema validation see it.
func (d *Document) Value() (map[string]any, error) {
	data, err := d.Marshal(false)
	if err != nil {
		return nil, err
	}
	v, err := decodeJSON(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return v.(map[string]any), nil
}

// Read parses serialized module document.
func Read(r io.Reader) (*Document, error) {
	v, err := decodeJSON(r)
	if err != nil {
		return nil, fmt.Errorf("unable to parse module: %w", err)
	}
	return decodeDocument(v, "module")
}

// ReadFile parses serialized module document from file.
func ReadFile(name string) (*Document, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("unable to open module '%s': %w", name, err)
	}
	defer f.Close()

	doc, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("'%s': %w", name, err)
	}
	return doc, nil
}

func decodeJSON(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// String returns readable dump of document for the debug report.
func (d *Document) String() string {
	if d == nil {
		return "<nil Document>"
	}

	tw := debug.NewTreeWriter()
	tw.Line(0, "Module %q", d.Title)
	tw.TextBlock(1, "description", d.Description)
	tw.Line(1, "source: %s", d.Source)
	tw.Line(1, "types: %d", len(d.Types))
	for _, id := range debug.SortedKeys(d.Types) {
		t := d.Types[id]
		tw.Line(2, "%s: schema=%t formats=%v", id, t.Schema != nil, debug.SortedKeys(t.Rendering))
	}
	tw.Line(1, "contents: %d", len(d.Contents))
	for _, id := range debug.SortedKeys(d.Contents) {
		tw.Value(2, id, map[string]any(d.Contents[id]))
	}
	return tw.String()
}

func checkSource(source string) error {
	u, err := url.Parse(source)
	if err != nil {
		return fmt.Errorf("%w: invalid source URL %q: %w", ErrShape, source, err)
	}
	if !u.IsAbs() {
		return fmt.Errorf("%w: source URL %q is not absolute", ErrShape, source)
	}
	return nil
}
