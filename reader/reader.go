// Package reader turns leaf files of a module tree into generic values.
//
// Values produced here follow the shape of decoded JSON: map[string]any,
// []any, string, json.Number or other numeric types, bool and nil.
package reader

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

var (
	// ErrUnsupportedFileType is returned before any read is attempted when file
	// extension does not map to a known format.
	ErrUnsupportedFileType = errors.New("unsupported file type")
	// ErrUnableToOpen means file could not be opened or read.
	ErrUnableToOpen = errors.New("unable to open file")
	// ErrInvalidContents means file was read but could not be parsed.
	ErrInvalidContents = errors.New("invalid file contents")
)

// FileType is a format of a leaf file.
type FileType int

const (
	FileTypeJSON FileType = iota
	FileTypeYAML
	FileTypeText
)

var fileTypeNames = map[FileType]string{
	FileTypeJSON: "json",
	FileTypeYAML: "yaml",
	FileTypeText: "text",
}

func (t FileType) String() string {
	if n, ok := fileTypeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("FileType(%d)", int(t))
}

// extensions is the closed set of recognized file extensions.
var extensions = map[string]FileType{
	"json": FileTypeJSON,
	"yaml": FileTypeYAML,
	"yml":  FileTypeYAML,
	"txt":  FileTypeText,
	"md":   FileTypeText,
	"hjs":  FileTypeText,
	"tmpl": FileTypeText,
}

// Extensions returns sorted list of recognized file extensions.
func Extensions() []string {
	out := make([]string, 0, len(extensions))
	for ext := range extensions {
		out = append(out, ext)
	}
	slices.Sort(out)
	return out
}

// Detect selects file format by name extension. It never touches the file.
func Detect(name string) (FileType, error) {
	ext := strings.TrimPrefix(path.Ext(name), ".")
	if t, ok := extensions[ext]; ok {
		return t, nil
	}
	return 0, fmt.Errorf("%w '%s' (expected one of %s)", ErrUnsupportedFileType, name, strings.Join(Extensions(), ", "))
}

// Read parses file name from fsys according to its extension.
func Read(fsys fs.FS, name string) (any, error) {
	t, err := Detect(name)
	if err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w '%s': %w", ErrUnableToOpen, name, err)
	}
	return t.Decode(name, data)
}

// Decode parses data according to file type, name is only used for error
// reporting.
func (t FileType) Decode(name string, data []byte) (any, error) {
	var (
		v   any
		err error
	)
	switch t {
	case FileTypeJSON:
		v, err = decodeJSON(data)
	case FileTypeYAML:
		v, err = decodeYAML(data)
	case FileTypeText:
		v, err = decodeText(data)
	default:
		return nil, fmt.Errorf("%w '%s'", ErrUnsupportedFileType, name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w '%s' (%s): %w", ErrInvalidContents, name, t, err)
	}
	return v, nil
}
