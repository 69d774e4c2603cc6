// Package render compiles per type templates of a module and renders its
// content items with them.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"text/template"

	"go.uber.org/zap"

	"pd6/module"
)

var (
	// ErrNoRenderableTypes is returned when module defines no types at all.
	ErrNoRenderableTypes = errors.New("module has no types to render")
	// ErrContentHasNoType is returned for content item without type field.
	ErrContentHasNoType = errors.New("content item declares no type")
	// ErrNoTemplate is returned when type has no template for requested format.
	ErrNoTemplate = errors.New("no template")
	// ErrMissingContents is returned when rendering module without contents.
	ErrMissingContents = errors.New("found no contents in the module")
)

type key struct {
	typ, format string
}

// Renderer holds compiled templates of a single module.
type Renderer struct {
	doc   *module.Document
	value map[string]any
	tmpl  *template.Template
	names map[key]string
	log   *zap.Logger
}

// TemplateName returns name template for type and format is registered
// under, templates could include each other with it.
func TemplateName(typ, format string) string {
	return typ + "_" + format
}

// Compile parses every template found in module type definitions. Types
// without templates are skipped with a warning.
func Compile(doc *module.Document, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if len(doc.Types) == 0 {
		return nil, ErrNoRenderableTypes
	}

	value, err := doc.Value()
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		doc:   doc,
		value: value,
		tmpl:  template.New("module").Funcs(funcMap()),
		names: make(map[key]string),
		log:   log,
	}

	type source struct {
		key
		name string
		text string
	}
	var sources []source
	owners := make(map[string]key)
	for _, id := range doc.TypeIDs() {
		t := doc.Types[id]
		if len(t.Rendering) == 0 {
			log.Warn("Type has no rendering, skipping", zap.String("type", id))
			continue
		}
		formats := make([]string, 0, len(t.Rendering))
		for f := range t.Rendering {
			formats = append(formats, f)
		}
		slices.Sort(formats)

		for _, format := range formats {
			name := TemplateName(id, format)
			if _, taken := owners[name]; taken {
				return nil, fmt.Errorf("template name '%s' is ambiguous (type '%s', format '%s')", name, id, format)
			}
			owners[name] = key{id, format}
			sources = append(sources, source{key: key{id, format}, name: name, text: t.Rendering[format]})
		}
	}

	// Every template is parsed on its own first, so nested definitions cannot
	// silently replace templates of other types.
	for _, src := range sources {
		set, err := template.New(src.name).Funcs(funcMap()).Parse(src.text)
		if err != nil {
			return nil, fmt.Errorf("unable to parse template for type '%s' format '%s': %w", src.typ, src.format, err)
		}
		defined := set.Templates()
		for _, d := range defined {
			if d.Name() == src.name {
				continue
			}
			if _, taken := owners[d.Name()]; taken || r.tmpl.Lookup(d.Name()) != nil {
				return nil, fmt.Errorf("template for type '%s' format '%s' redefines '%s'", src.typ, src.format, d.Name())
			}
		}
		for _, d := range defined {
			if _, err := r.tmpl.AddParseTree(d.Name(), d.Tree); err != nil {
				return nil, fmt.Errorf("unable to register template '%s': %w", d.Name(), err)
			}
		}
		r.names[src.key] = src.name
		log.Debug("Template compiled", zap.String("name", src.name))
	}
	return r, nil
}

// Formats returns sorted list of formats type could be rendered to.
func (r *Renderer) Formats(typ string) []string {
	var out []string
	for k := range r.names {
		if k.typ == typ {
			out = append(out, k.format)
		}
	}
	slices.Sort(out)
	return out
}

// Render renders content item with template of its type for format. Template
// sees the item as .self and the whole module as .module.
func (r *Renderer) Render(item module.Content, format string) (string, error) {
	typ, ok := item.TypeName()
	if !ok {
		return "", ErrContentHasNoType
	}
	name, ok := r.names[key{typ, format}]
	if !ok {
		return "", fmt.Errorf("%w for type '%s' format '%s'", ErrNoTemplate, typ, format)
	}

	data := map[string]any{
		"self":   map[string]any(item),
		"module": r.value,
	}
	buf := new(bytes.Buffer)
	if err := r.tmpl.ExecuteTemplate(buf, name, data); err != nil {
		return "", fmt.Errorf("unable to render template '%s': %w", name, err)
	}
	return buf.String(), nil
}

// Rendered is a single rendered content item.
type Rendered struct {
	ID   string
	Text string
}

// RenderEach renders every content item of the module in identifier order.
func (r *Renderer) RenderEach(format string) ([]Rendered, error) {
	if len(r.doc.Contents) == 0 {
		return nil, ErrMissingContents
	}

	out := make([]Rendered, 0, len(r.doc.Contents))
	for _, id := range r.doc.ContentIDs() {
		text, err := r.Render(r.doc.Contents[id], format)
		if err != nil {
			return nil, fmt.Errorf("content '%s': %w", id, err)
		}
		out = append(out, Rendered{ID: id, Text: text})
	}
	return out, nil
}

// RenderAll renders every content item of the module, each followed by a
// newline.
func (r *Renderer) RenderAll(format string) (string, error) {
	items, err := r.RenderEach(format)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	for _, item := range items {
		buf.WriteString(item.Text)
		buf.WriteByte('\n')
	}
	return buf.String(), nil
}
