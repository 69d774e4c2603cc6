package module

import (
	"bytes"
	"encoding/json"
	"fmt"
)

func object(v any, origin string) (map[string]any, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: '%s' must hold an object", ErrShape, origin)
	}
	return obj, nil
}

func require(obj map[string]any, origin string, fields ...string) error {
	for _, f := range fields {
		if v, ok := obj[f]; !ok || v == nil {
			return fmt.Errorf("%w: %w '%s' in '%s'", ErrShape, ErrMissingField, f, origin)
		}
	}
	return nil
}

// remarshal moves generic value into typed shape keeping numbers intact.
func remarshal(v any, target any, origin string) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: '%s': %w", ErrShape, origin, err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(target); err != nil {
		return fmt.Errorf("%w: '%s': %w", ErrShape, origin, err)
	}
	return nil
}

func decodeDocument(v any, origin string) (*Document, error) {
	obj, err := object(v, origin)
	if err != nil {
		return nil, err
	}
	if err := require(obj, origin, "title", "description", "source"); err != nil {
		return nil, err
	}

	doc := &Document{}
	if err := remarshal(obj, doc, origin); err != nil {
		return nil, err
	}
	if err := checkSource(doc.Source); err != nil {
		return nil, fmt.Errorf("'%s': %w", origin, err)
	}
	rawTypes, _ := obj["types"].(map[string]any)
	for id, t := range doc.Types {
		raw, _ := rawTypes[id].(map[string]any)
		if t == nil || raw == nil {
			return nil, fmt.Errorf("%w: type '%s' in '%s' must hold an object", ErrShape, id, origin)
		}
		if err := require(raw, fmt.Sprintf("%s: type %s", origin, id), "description"); err != nil {
			return nil, err
		}
	}
	for id, c := range doc.Contents {
		if c == nil {
			return nil, fmt.Errorf("%w: content '%s' in '%s' must hold an object", ErrShape, id, origin)
		}
	}
	return doc, nil
}

func decodeType(v any, origin string) (*Type, error) {
	obj, err := object(v, origin)
	if err != nil {
		return nil, err
	}
	if err := require(obj, origin, "description"); err != nil {
		return nil, err
	}
	t := &Type{}
	if err := remarshal(obj, t, origin); err != nil {
		return nil, err
	}
	return t, nil
}

func decodeContent(v any, origin string) (Content, error) {
	obj, err := object(v, origin)
	if err != nil {
		return nil, err
	}
	return Content(obj), nil
}
