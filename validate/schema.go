// Package validate checks assembled modules against JSON schemas.
package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cuejson "cuelang.org/go/encoding/json"
	"cuelang.org/go/encoding/jsonschema"
)

// ErrInvalidSchema is returned when schema document cannot be compiled.
var ErrInvalidSchema = errors.New("invalid schema")

// Violation is a single place where value does not satisfy schema.
type Violation struct {
	// Location names validated value, e.g. "module" or "contents.hello".
	Location string
	// Path is JSON path inside validated value, empty for value itself.
	Path    string
	Message string
}

func (v Violation) Error() string {
	if v.Path != "" {
		return fmt.Sprintf("%s: %s: %s", v.Location, v.Path, v.Message)
	}
	return fmt.Sprintf("%s: %s", v.Location, v.Message)
}

// Schema is a compiled JSON schema.
type Schema struct {
	name  string
	value cue.Value
}

// Compile translates JSON schema document into CUE and builds it.
func Compile(name string, data []byte) (*Schema, error) {
	expr, err := cuejson.Extract(name, data)
	if err != nil {
		return nil, fmt.Errorf("%w '%s': %w", ErrInvalidSchema, name, err)
	}

	ctx := cuecontext.New()
	raw := ctx.BuildExpr(expr)
	if err := raw.Err(); err != nil {
		return nil, fmt.Errorf("%w '%s': %w", ErrInvalidSchema, name, err)
	}
	file, err := jsonschema.Extract(raw, &jsonschema.Config{})
	if err != nil {
		return nil, fmt.Errorf("%w '%s': %w", ErrInvalidSchema, name, err)
	}
	value := ctx.BuildFile(file)
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("%w '%s': %w", ErrInvalidSchema, name, err)
	}
	return &Schema{name: name, value: value}, nil
}

// CompileValue compiles schema held as decoded JSON value.
func CompileValue(name string, v any) (*Schema, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w '%s': %w", ErrInvalidSchema, name, err)
	}
	return Compile(name, data)
}

// Name returns name schema was compiled under.
func (s *Schema) Name() string {
	return s.name
}

// Check validates v, which must be JSON serializable, and reports every
// violation found under location.
func (s *Schema) Check(location string, v any) ([]Violation, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("unable to serialize %s: %w", location, err)
	}
	expr, err := cuejson.Extract(location, data)
	if err != nil {
		return nil, fmt.Errorf("unable to prepare %s: %w", location, err)
	}
	value := s.value.Context().BuildExpr(expr)
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("unable to prepare %s: %w", location, err)
	}

	if err := s.value.Unify(value).Validate(cue.Concrete(true)); err != nil {
		return violations(location, err), nil
	}
	return nil, nil
}

func violations(location string, err error) []Violation {
	var out []Violation
	for _, e := range cueerrors.Errors(err) {
		format, args := e.Msg()
		out = append(out, Violation{
			Location: location,
			Path:     formatPath(cueerrors.Path(e)),
			Message:  fmt.Sprintf(format, args...),
		})
	}
	if len(out) == 0 {
		out = append(out, Violation{Location: location, Message: err.Error()})
	}
	slices.SortFunc(out, func(a, b Violation) int {
		if c := strings.Compare(a.Path, b.Path); c != 0 {
			return c
		}
		return strings.Compare(a.Message, b.Message)
	})
	return slices.Compact(out)
}

// formatPath turns ["items", "0", "name"] into "items[0].name".
func formatPath(path []string) string {
	var b strings.Builder
	for i, part := range path {
		if i > 0 && isIndex(part) {
			b.WriteString("[" + part + "]")
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
