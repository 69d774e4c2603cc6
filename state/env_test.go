package state

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"pd6/config"
	"pd6/layout"
)

func TestContextWithEnv(t *testing.T) {
	ctx := ContextWithEnv(context.Background())
	env := EnvFromContext(ctx)
	if env == nil {
		t.Fatal("EnvFromContext() returned nil")
	}
	if env.start.IsZero() {
		t.Error("start time not initialized")
	}
}

func TestEnvFromContext_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("EnvFromContext() did not panic on empty context")
		}
	}()
	EnvFromContext(context.Background())
}

func TestLocalEnv_Uptime(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))

	time.Sleep(10 * time.Millisecond)
	uptime := env.Uptime()

	if uptime < 10*time.Millisecond {
		t.Errorf("Uptime() = %v, expected at least 10ms", uptime)
	}
}

func TestLocalEnv_Names(t *testing.T) {
	env := &LocalEnv{}
	if got := env.Names(); got != layout.DefaultNames() {
		t.Errorf("Names() = %+v, want defaults", got)
	}

	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	cfg.Layout.Types = "kinds"
	env.Cfg = cfg
	if got := env.Names().Types; got != "kinds" {
		t.Errorf("Names().Types = %q, want %q", got, "kinds")
	}
}

func TestLocalEnv_AssemblyOptions(t *testing.T) {
	env := &LocalEnv{}
	if got := len(env.AssemblyOptions(zap.NewNop())); got != 1 {
		t.Errorf("AssemblyOptions() without config returned %d options, want 1", got)
	}

	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	cfg.Layout.Collisions = config.CollisionPolicyError
	env.Cfg = cfg
	if got := len(env.AssemblyOptions(zap.NewNop())); got != 2 {
		t.Errorf("AssemblyOptions() with config returned %d options, want 2", got)
	}
}

func TestLocalEnv_RedirectStdLog(t *testing.T) {
	t.Run("with logger", func(t *testing.T) {
		env := &LocalEnv{
			Log: zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1))),
		}

		env.RedirectStdLog()
		if env.restoreStdLog == nil {
			t.Error("Expected restoreStdLog to be set")
		}
		env.RestoreStdLog()
	})

	t.Run("without logger", func(t *testing.T) {
		env := &LocalEnv{}

		env.RedirectStdLog()
		if env.restoreStdLog != nil {
			t.Error("Expected restoreStdLog to remain nil")
		}
		// Should not panic
		env.RestoreStdLog()
	})
}

func TestLocalEnv_RedirectAndRestore(t *testing.T) {
	env := &LocalEnv{
		Log: zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1))),
	}

	for i := range 3 {
		env.RedirectStdLog()
		if env.restoreStdLog == nil {
			t.Errorf("Iteration %d: restoreStdLog not set", i)
		}
		env.RestoreStdLog()
	}
}
