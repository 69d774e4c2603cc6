package build

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"pd6/config"
	"pd6/state"
)

// setupTestEnv creates a test environment with proper context and logger
func setupTestEnv(t *testing.T) (context.Context, *state.LocalEnv) {
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	env.Log = zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	env.Cfg = cfg
	return ctx, env
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, data := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func sampleTree(t *testing.T) string {
	return writeTree(t, map[string]string{
		"module.yaml":                      "title: Greetings\ndescription: Ways to say hello\nsource: https://example.com/greetings\n",
		"types/greeting/_.json":            `{"description": "A greeting"}`,
		"types/greeting/rendering/md.tmpl": "# {{ .self.text }}",
		"contents/en/hello.yaml":           "type: greeting\ntext: Hello\n",
		"contents/fr/bonjour/_.json":       `{"type": "greeting"}`,
		"contents/fr/bonjour/text.txt":     "Bonjour",
	})
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:   "build",
		Action: Run,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "style"},
			&cli.StringFlag{Name: "output"},
			&cli.BoolFlag{Name: "overwrite"},
		},
	}
}

func readModule(t *testing.T, name string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	return m
}

func TestRun(t *testing.T) {
	ctx, _ := setupTestEnv(t)
	src, dst := sampleTree(t), t.TempDir()

	if err := newCommand().Run(ctx, []string{"build", src, dst}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	out := filepath.Join(dst, "module.json")
	m := readModule(t, out)
	if m["title"] != "Greetings" {
		t.Errorf("title = %v, want Greetings", m["title"])
	}
	contents, _ := m["contents"].(map[string]any)
	for _, id := range []string{"en_hello", "fr_bonjour"} {
		if _, ok := contents[id]; !ok {
			t.Errorf("contents missing %q: %v", id, contents)
		}
	}
	bonjour, _ := contents["fr_bonjour"].(map[string]any)
	if bonjour["text"] != "Bonjour" {
		t.Errorf("fr_bonjour.text = %v, want Bonjour", bonjour["text"])
	}

	data, _ := os.ReadFile(out)
	if !strings.Contains(string(data), "\n  ") {
		t.Errorf("default style is not pretty: %s", data)
	}

	// second run must not replace existing output
	if err := newCommand().Run(ctx, []string{"build", src, dst}); err == nil {
		t.Error("Run() over existing output succeeded without --overwrite")
	}
	if err := newCommand().Run(ctx, []string{"build", "--overwrite", "--style", "minimized", src, dst}); err != nil {
		t.Fatalf("Run() with --overwrite error = %v", err)
	}
	data, _ = os.ReadFile(out)
	if strings.Contains(string(data), "\n") {
		t.Errorf("minimized output contains new lines: %s", data)
	}
}

func TestRun_OutputName(t *testing.T) {
	ctx, _ := setupTestEnv(t)
	src, dst := sampleTree(t), t.TempDir()

	if err := newCommand().Run(ctx, []string{"build", "--output", "greetings", src, dst}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dst, "greetings.json")); err != nil {
		t.Errorf("expected greetings.json: %v", err)
	}
}

func TestRun_Errors(t *testing.T) {
	ctx, _ := setupTestEnv(t)

	if err := newCommand().Run(ctx, []string{"build"}); err == nil {
		t.Error("Run() without source succeeded")
	}

	missing := filepath.Join(t.TempDir(), "missing")
	if err := newCommand().Run(ctx, []string{"build", missing, t.TempDir()}); err == nil {
		t.Error("Run() with missing source succeeded")
	}

	noModule := writeTree(t, map[string]string{"types/a.json": `{"description": "a"}`})
	if err := newCommand().Run(ctx, []string{"build", noModule, t.TempDir()}); err == nil {
		t.Error("Run() without module descriptor succeeded")
	}
}

func TestProcess_CollisionPolicy(t *testing.T) {
	_, env := setupTestEnv(t)
	src := writeTree(t, map[string]string{
		"module.json":       `{"title": "t", "description": "d", "source": "https://example.com"}`,
		"contents/a_b.json": `{"type": "x", "from": "file"}`,
		"contents/a/b.json": `{"type": "x", "from": "dir"}`,
	})
	out := filepath.Join(t.TempDir(), "module.json")

	if err := process(src, out, config.OutputStylePretty, env, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}

	env.Cfg.Layout.Collisions = config.CollisionPolicyError
	env.Overwrite = true
	if err := process(src, out, config.OutputStylePretty, env, env.Log); err == nil {
		t.Error("process() with colliding identifiers succeeded under error policy")
	}
}
