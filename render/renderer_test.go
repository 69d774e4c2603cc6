package render

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"pd6/module"
)

const moduleJSON = `{
	"title": "Greetings",
	"description": "d",
	"source": "https://example.com/greetings",
	"types": {
		"greeting": {
			"description": "a greeting",
			"rendering": {
				"txt": "{{ .self.word }}, {{ .self.name | upper }} from {{ .module.title }}",
				"md": "{{ range splitLines .self.body }}> {{ . }}\n{{ end }}",
				"html": "{{ markdown .self.body }}",
				"slug": "{{ slugify .self.name }}"
			}
		},
		"plain": {"description": "no templates"}
	},
	"contents": {
		"b": {"type": "greeting", "word": "Hello", "name": "world", "body": "line *one*\nline two\n"},
		"a": {"type": "greeting", "word": "Hi", "name": "Crème Brûlée", "body": "x"}
	}
}`

func compile(t *testing.T, src string) *Renderer {
	t.Helper()
	doc, err := module.Read(strings.NewReader(src))
	if err != nil {
		t.Fatalf("module.Read() error = %v", err)
	}
	r, err := Compile(doc, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	return r
}

func TestRender(t *testing.T) {
	r := compile(t, moduleJSON)
	b := r.doc.Contents["b"]
	a := r.doc.Contents["a"]

	tests := []struct {
		name   string
		item   module.Content
		format string
		want   string
	}{
		{"bindings and sprig", b, "txt", "Hello, WORLD from Greetings"},
		{"split lines", b, "md", "> line *one*\n> line two\n"},
		{"markdown", b, "html", "<p>line <em>one</em>\nline two</p>\n"},
		{"slugify", a, "slug", "creme-brulee"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Render(tt.item, tt.format)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}

	t.Run("no type", func(t *testing.T) {
		_, err := r.Render(module.Content{"word": "x"}, "txt")
		if !errors.Is(err, ErrContentHasNoType) {
			t.Errorf("Render() error = %v, want ErrContentHasNoType", err)
		}
	})

	t.Run("no template for format", func(t *testing.T) {
		_, err := r.Render(b, "pdf")
		if !errors.Is(err, ErrNoTemplate) {
			t.Errorf("Render() error = %v, want ErrNoTemplate", err)
		}
	})

	t.Run("type without rendering", func(t *testing.T) {
		_, err := r.Render(module.Content{"type": "plain"}, "txt")
		if !errors.Is(err, ErrNoTemplate) {
			t.Errorf("Render() error = %v, want ErrNoTemplate", err)
		}
	})

	t.Run("execution failure", func(t *testing.T) {
		_, err := r.Render(module.Content{"type": "greeting", "body": 1}, "md")
		if err == nil {
			t.Error("Render() expected error when splitLines gets a number")
		}
	})
}

func TestRenderAll(t *testing.T) {
	r := compile(t, moduleJSON)

	got, err := r.RenderAll("txt")
	if err != nil {
		t.Fatalf("RenderAll() error = %v", err)
	}
	want := "Hi, CRÈME BRÛLÉE from Greetings\nHello, WORLD from Greetings\n"
	if got != want {
		t.Errorf("RenderAll() = %q, want %q", got, want)
	}

	items, err := r.RenderEach("slug")
	if err != nil {
		t.Fatalf("RenderEach() error = %v", err)
	}
	if len(items) != 2 || items[0].ID != "a" || items[1].ID != "b" {
		t.Errorf("RenderEach() = %v", items)
	}

	if _, err := r.RenderAll("pdf"); !errors.Is(err, ErrNoTemplate) {
		t.Errorf("RenderAll() error = %v, want ErrNoTemplate", err)
	}
}

func TestCompile(t *testing.T) {
	t.Run("no types", func(t *testing.T) {
		doc, err := module.Read(strings.NewReader(`{"title":"t","description":"d","source":"https://example.com"}`))
		if err != nil {
			t.Fatalf("module.Read() error = %v", err)
		}
		if _, err := Compile(doc, nil); !errors.Is(err, ErrNoRenderableTypes) {
			t.Errorf("Compile() error = %v, want ErrNoRenderableTypes", err)
		}
	})

	t.Run("warns about types without rendering", func(t *testing.T) {
		doc, err := module.Read(strings.NewReader(moduleJSON))
		if err != nil {
			t.Fatalf("module.Read() error = %v", err)
		}
		core, logs := observer.New(zapcore.WarnLevel)
		r, err := Compile(doc, zap.New(core))
		if err != nil {
			t.Fatalf("Compile() error = %v", err)
		}
		if logs.Len() != 1 {
			t.Errorf("logged %d warnings, want 1", logs.Len())
		}
		if got := r.Formats("greeting"); !slices.Equal(got, []string{"html", "md", "slug", "txt"}) {
			t.Errorf("Formats() = %v", got)
		}
	})

	t.Run("broken template", func(t *testing.T) {
		doc, err := module.Read(strings.NewReader(`{"title":"t","description":"d","source":"https://example.com",
			"types":{"x":{"description":"d","rendering":{"txt":"{{ .self.a "}}}}`))
		if err != nil {
			t.Fatalf("module.Read() error = %v", err)
		}
		if _, err := Compile(doc, nil); err == nil {
			t.Error("Compile() expected parse error")
		}
	})

	t.Run("nested definition cannot replace other templates", func(t *testing.T) {
		doc, err := module.Read(strings.NewReader(`{"title":"t","description":"d","source":"https://example.com",
			"types":{
				"a":{"description":"d","rendering":{"md":"A{{define \"b_md\"}}hijacked{{end}}"}},
				"b":{"description":"d","rendering":{"md":"B"}}}}`))
		if err != nil {
			t.Fatalf("module.Read() error = %v", err)
		}
		if _, err := Compile(doc, nil); err == nil || !strings.Contains(err.Error(), "redefines 'b_md'") {
			t.Errorf("Compile() error = %v, want redefinition error", err)
		}
	})

	t.Run("helpers and includes", func(t *testing.T) {
		doc, err := module.Read(strings.NewReader(`{"title":"t","description":"d","source":"https://example.com",
			"types":{
				"a":{"description":"d","rendering":{"md":"{{define \"bold\"}}**{{.}}**{{end}}{{template \"bold\" .self.v}}"}},
				"b":{"description":"d","rendering":{"md":"[{{template \"a_md\" .}}]"}}},
			"contents":{"x":{"type":"b","v":"hi"}}}`))
		if err != nil {
			t.Fatalf("module.Read() error = %v", err)
		}
		r, err := Compile(doc, nil)
		if err != nil {
			t.Fatalf("Compile() error = %v", err)
		}
		got, err := r.Render(doc.Contents["x"], "md")
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if got != "[**hi**]" {
			t.Errorf("Render() = %q, want %q", got, "[**hi**]")
		}
	})

	t.Run("no contents", func(t *testing.T) {
		doc, err := module.Read(strings.NewReader(`{"title":"t","description":"d","source":"https://example.com",
			"types":{"x":{"description":"d","rendering":{"txt":"{{ .self.a }}"}}}}`))
		if err != nil {
			t.Fatalf("module.Read() error = %v", err)
		}
		r, err := Compile(doc, nil)
		if err != nil {
			t.Fatalf("Compile() error = %v", err)
		}
		if _, err := r.RenderAll("txt"); !errors.Is(err, ErrMissingContents) {
			t.Errorf("RenderAll() error = %v, want ErrMissingContents", err)
		}
	})
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"one", []string{"one"}},
		{"one\ntwo\n", []string{"one", "two"}},
		{"one\r\ntwo", []string{"one", "two"}},
		{"one\n\nthree", []string{"one", "", "three"}},
	}
	for _, tt := range tests {
		if got := splitLines(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("splitLines(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
