package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"pd6/config"
	"pd6/module"
	"pd6/state"
)

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("render")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}
	format := cmd.Args().Get(1)
	if len(format) == 0 {
		return errors.New("no output format has been specified")
	}

	dst := cmd.Args().Get(2)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 3 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[3:]))
	}

	rc := env.Cfg.Render
	if n := cmd.String("output"); len(n) > 0 {
		rc.Output = n
	}
	rc.Split = rc.Split || cmd.Bool("split")
	rc.Transliterate = rc.Transliterate || cmd.Bool("transliterate")
	env.Overwrite = cmd.Bool("overwrite")

	log.Info("Rendering starting", zap.String("source", src), zap.String("format", format), zap.String("destination", dst), zap.Bool("split", rc.Split))
	defer func(start time.Time) {
		log.Info("Rendering completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	doc, err := module.Open(src, env.Names(), env.AssemblyOptions(log)...)
	if err != nil {
		return err
	}
	r, err := Compile(doc, log)
	if err != nil {
		return err
	}
	return process(r, format, dst, &rc, env, log)
}

func process(r *Renderer, format, dst string, rc *config.RenderConfig, env *state.LocalEnv, log *zap.Logger) error {
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	if !rc.Split {
		text, err := r.RenderAll(format)
		if err != nil {
			return err
		}
		out := filepath.Join(dst, config.OutputFileName(rc.Output, format, rc.Transliterate))
		return writeOutput(out, text, env, log)
	}

	items, err := r.RenderEach(format)
	if err != nil {
		return err
	}
	written := make(map[string]string, len(items))
	for _, item := range items {
		name := config.OutputFileName(item.ID, format, true)
		if prev, dup := written[name]; dup {
			return fmt.Errorf("contents '%s' and '%s' would both be written to '%s'", prev, item.ID, name)
		}
		written[name] = item.ID
		if err := writeOutput(filepath.Join(dst, name), item.Text+"\n", env, log); err != nil {
			return err
		}
	}
	return nil
}

func writeOutput(out, text string, env *state.LocalEnv, log *zap.Logger) error {
	if !env.Overwrite {
		if _, err := os.Stat(out); err == nil {
			return fmt.Errorf("output file already exists: %s", out)
		}
	}
	if err := os.WriteFile(out, []byte(text), 0o644); err != nil {
		return fmt.Errorf("unable to write rendered output: %w", err)
	}
	env.Rpt.Store("output/"+filepath.Base(out), out)
	log.Debug("Rendered output written", zap.String("file", out), zap.Int("size", len(text)))
	return nil
}
