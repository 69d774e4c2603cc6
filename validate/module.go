package validate

import (
	"fmt"

	"go.uber.org/zap"

	"pd6/module"
)

// Module validates module document against optional module schema, then
// every content item against schema of its type. Returned error means
// validation could not be performed at all.
func Module(doc *module.Document, moduleSchema *Schema, log *zap.Logger) ([]Violation, error) {
	if log == nil {
		log = zap.NewNop()
	}

	var out []Violation
	if moduleSchema != nil {
		v, err := doc.Value()
		if err != nil {
			return nil, fmt.Errorf("unable to prepare module for validation: %w", err)
		}
		vs, err := moduleSchema.Check("module", v)
		if err != nil {
			return nil, err
		}
		log.Debug("Module checked", zap.String("schema", moduleSchema.Name()), zap.Int("violations", len(vs)))
		out = append(out, vs...)
	}

	schemas := make(map[string]*Schema, len(doc.Types))
	for _, id := range doc.TypeIDs() {
		t := doc.Types[id]
		if t.Schema == nil {
			continue
		}
		location := "types." + id
		s, err := CompileValue(location+".schema", t.Schema)
		if err != nil {
			out = append(out, Violation{Location: location, Path: "schema", Message: err.Error()})
			continue
		}
		schemas[id] = s
	}

	for _, id := range doc.ContentIDs() {
		item := doc.Contents[id]
		location := "contents." + id

		typ, ok := item.TypeName()
		if !ok {
			out = append(out, Violation{Location: location, Path: module.TypeField, Message: "content item does not name its type"})
			continue
		}
		if _, declared := doc.Types[typ]; !declared {
			out = append(out, Violation{Location: location, Path: module.TypeField, Message: fmt.Sprintf("unknown type '%s'", typ)})
			continue
		}
		s, ok := schemas[typ]
		if !ok {
			continue
		}
		vs, err := s.Check(location, map[string]any(item))
		if err != nil {
			return nil, err
		}
		log.Debug("Content checked", zap.String("content", id), zap.String("type", typ), zap.Int("violations", len(vs)))
		out = append(out, vs...)
	}
	return out, nil
}
