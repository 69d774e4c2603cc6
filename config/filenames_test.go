//go:build !windows

package config

import "testing"

func TestCleanFileName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"module", "module"},
		{"a/b:c", "abc"},
		{"..hidden", "hidden"},
		{"/", "_bad_file_name_"},
		{"nul\x00byte", "nulbyte"},
	}
	for _, tt := range tests {
		if got := CleanFileName(tt.in); got != tt.want {
			t.Errorf("CleanFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOutputFileName(t *testing.T) {
	tests := []struct {
		name, ext     string
		transliterate bool
		want          string
	}{
		{"module", "json", false, "module.json"},
		{"module", ".md", false, "module.md"},
		{"Crème Brûlée", "html", true, "creme-brulee.html"},
		{"notes/part_1", "txt", false, "notespart_1.txt"},
	}
	for _, tt := range tests {
		if got := OutputFileName(tt.name, tt.ext, tt.transliterate); got != tt.want {
			t.Errorf("OutputFileName(%q, %q, %v) = %q, want %q", tt.name, tt.ext, tt.transliterate, got, tt.want)
		}
	}
}
