// Package build implements command assembling module from directory tree.
package build

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"pd6/config"
	"pd6/layout"
	"pd6/module"
	"pd6/state"
)

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("build")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	style := env.Cfg.Build.Style
	if s := cmd.String("style"); len(s) > 0 {
		if style, err = config.ParseOutputStyle(s); err != nil {
			log.Warn("Unknown output style requested, using configured one", zap.Error(err), zap.Stringer("style", env.Cfg.Build.Style))
			style = env.Cfg.Build.Style
		}
	}
	name := env.Cfg.Build.Output
	if n := cmd.String("output"); len(n) > 0 {
		name = n
	}
	env.Overwrite = cmd.Bool("overwrite")

	log.Info("Build starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("style", style))
	defer func(start time.Time) {
		log.Info("Build completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	if err := env.Rpt.StoreCopy("source/"+filepath.Base(src), src); err != nil {
		log.Warn("Unable to store source in the report", zap.Error(err))
	}

	out := filepath.Join(dst, config.OutputFileName(name, "json", false))
	return process(src, out, style, env, log)
}

// process assembles module from src and writes it to out.
func process(src, out string, style config.OutputStyle, env *state.LocalEnv, log *zap.Logger) (err error) {
	if !env.Overwrite {
		if _, err := os.Stat(out); err == nil {
			return fmt.Errorf("output file already exists: %s", out)
		}
	}

	tree, err := layout.Open(src, env.Names(), layout.WithLogger(log))
	if err != nil {
		return fmt.Errorf("unable to resolve module tree: %w", err)
	}
	defer func() {
		if er := tree.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close source '%s': %w", src, er))
		}
	}()
	env.Rpt.StoreData("tree.txt", []byte(tree.String()))

	doc, err := module.Build(tree, env.AssemblyOptions(log)...)
	if err != nil {
		return fmt.Errorf("unable to assemble module: %w", err)
	}
	env.Rpt.StoreData("module.txt", []byte(doc.String()))

	data, err := doc.Marshal(style.Pretty())
	if err != nil {
		return fmt.Errorf("unable to serialize module: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("unable to write module: %w", err)
	}

	log.Info("Module written",
		zap.String("title", doc.Title),
		zap.Int("types", len(doc.Types)),
		zap.Int("contents", len(doc.Contents)),
		zap.String("file", out))
	return nil
}
