package config

import (
	"strings"

	"github.com/gosimple/slug"
)

// CleanFileName removes characters not allowed in file names on this
// platform.
func CleanFileName(in string) string {
	out := strings.TrimLeft(strings.Map(func(sym rune) rune {
		if sym == 0 || strings.ContainsRune(forbiddenFileNameChars, sym) {
			return -1
		}
		return sym
	}, in), trimFileNamePrefix)
	if len(out) == 0 {
		out = "_bad_file_name_"
	}
	return out
}

// OutputFileName makes file name for output named name with extension ext,
// name is transliterated first when requested.
func OutputFileName(name, ext string, transliterate bool) string {
	if transliterate {
		name = slug.Make(name)
	}
	return CleanFileName(name) + "." + strings.TrimPrefix(ext, ".")
}
