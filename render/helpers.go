package render

import (
	"bytes"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/gosimple/slug"
	"github.com/yuin/goldmark"
)

// funcMap returns slim-sprig functions extended with our own helpers.
func funcMap() template.FuncMap {
	funcs := sprig.FuncMap()
	funcs["splitLines"] = splitLines
	funcs["markdown"] = markdown
	funcs["slugify"] = slug.Make
	return funcs
}

// splitLines breaks text into lines. Line endings are not kept and final
// newline does not produce an empty line.
func splitLines(s string) []string {
	if s == "" {
		return []string{}
	}
	s = strings.TrimSuffix(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	return strings.Split(s, "\n")
}

// markdown converts CommonMark text to HTML.
func markdown(s string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(s), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
