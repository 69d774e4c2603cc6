package validate

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pd6/config"
)

func TestFetch_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/schema.json":
			if got := r.Header.Get("Authorization"); got != "Bearer s3cr3t" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			_, _ = w.Write([]byte(personSchema))
		case "/open.json":
			if r.Header.Get("Authorization") != "" {
				http.Error(w, "unexpected credentials", http.StatusBadRequest)
				return
			}
			_, _ = w.Write([]byte(`{}`))
		case "/big.json":
			_, _ = w.Write([]byte(strings.Repeat(" ", 2048)))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	limits := Limits{Timeout: 5 * time.Second, MaxSize: 1024, Token: config.SecretString("s3cr3t")}

	t.Run("authorized", func(t *testing.T) {
		data, err := Fetch(context.Background(), srv.URL+"/schema.json", limits)
		if err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
		if string(data) != personSchema {
			t.Errorf("Fetch() = %q, want schema", data)
		}
	})

	t.Run("no token", func(t *testing.T) {
		if _, err := Fetch(context.Background(), srv.URL+"/open.json", Limits{Timeout: 5 * time.Second}); err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
	})

	t.Run("unauthorized", func(t *testing.T) {
		_, err := Fetch(context.Background(), srv.URL+"/schema.json", Limits{Timeout: 5 * time.Second})
		if err == nil || !strings.Contains(err.Error(), "HTTP 401") {
			t.Errorf("Fetch() error = %v, want HTTP 401", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := Fetch(context.Background(), srv.URL+"/missing.json", limits)
		if err == nil || !strings.Contains(err.Error(), "HTTP 404") {
			t.Errorf("Fetch() error = %v, want HTTP 404", err)
		}
	})

	t.Run("too large", func(t *testing.T) {
		_, err := Fetch(context.Background(), srv.URL+"/big.json", limits)
		if !errors.Is(err, ErrTooLarge) {
			t.Errorf("Fetch() error = %v, want %v", err, ErrTooLarge)
		}
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := Fetch(ctx, srv.URL+"/schema.json", limits); err == nil {
			t.Error("Fetch() with canceled context succeeded")
		}
	})
}

func TestFetch_File(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "schema.json")
	if err := os.WriteFile(name, []byte(personSchema), 0o644); err != nil {
		t.Fatal(err)
	}

	data, err := Fetch(context.Background(), name, Limits{MaxSize: 1024})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(data) != personSchema {
		t.Errorf("Fetch() = %q, want schema", data)
	}

	if _, err := Fetch(context.Background(), name, Limits{MaxSize: 10}); !errors.Is(err, ErrTooLarge) {
		t.Errorf("Fetch() error = %v, want %v", err, ErrTooLarge)
	}

	if _, err := Fetch(context.Background(), filepath.Join(dir, "missing.json"), Limits{}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Fetch() error = %v, want %v", err, os.ErrNotExist)
	}
}

func TestLimitsFrom(t *testing.T) {
	cfg := &config.ValidateConfig{Timeout: time.Second, MaxSchemaSize: 42, AuthToken: "x"}
	got := LimitsFrom(cfg)
	if got.Timeout != time.Second || got.MaxSize != 42 || got.Token != "x" {
		t.Errorf("LimitsFrom() = %+v", got)
	}
}
