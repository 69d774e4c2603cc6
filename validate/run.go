package validate

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"pd6/module"
	"pd6/state"
)

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("validate")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many sources", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	location := cmd.String("schema")
	if len(location) == 0 {
		location = env.Cfg.Validate.ModuleSchema
	}

	log.Info("Validation starting", zap.String("source", src), zap.String("schema", location))
	defer func(start time.Time) {
		log.Info("Validation completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	var schema *Schema
	if len(location) > 0 {
		data, err := Fetch(ctx, location, LimitsFrom(&env.Cfg.Validate))
		if err != nil {
			return fmt.Errorf("unable to fetch module schema: %w", err)
		}
		env.Rpt.StoreData("schema/"+filepath.Base(location), data)
		if schema, err = Compile(location, data); err != nil {
			return err
		}
	}

	doc, err := module.Open(src, env.Names(), env.AssemblyOptions(log)...)
	if err != nil {
		return err
	}

	violations, err := Module(doc, schema, log)
	if err != nil {
		return err
	}
	if len(violations) == 0 {
		log.Info("Module is valid", zap.String("title", doc.Title), zap.Int("contents", len(doc.Contents)))
		return nil
	}

	var errs error
	for _, v := range violations {
		log.Warn("Violation", zap.String("location", v.Location), zap.String("path", v.Path), zap.String("message", v.Message))
		errs = multierr.Append(errs, v)
	}
	return fmt.Errorf("module '%s' has %d violation(s): %w", doc.Title, len(violations), errs)
}
