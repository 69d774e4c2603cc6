// Package state defines shared program state.
package state

import (
	"context"
	"time"

	"go.uber.org/zap"

	"pd6/config"
	"pd6/layout"
	"pd6/module"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// Overwrite allows commands to replace existing output files.
	Overwrite bool

	start         time.Time
	restoreStdLog func()
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, &LocalEnv{start: time.Now()})
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// Names returns configured directory layout names.
func (e *LocalEnv) Names() layout.Names {
	if e.Cfg == nil {
		return layout.DefaultNames()
	}
	return e.Cfg.Layout.Names()
}

// AssemblyOptions returns module assembly options following configuration.
func (e *LocalEnv) AssemblyOptions(log *zap.Logger) []module.Option {
	opts := []module.Option{module.WithLogger(log)}
	if e.Cfg != nil {
		opts = append(opts, module.WithCollisionError(e.Cfg.Layout.Collisions == config.CollisionPolicyError))
	}
	return opts
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
	}
}
