package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/football-etl/internal/app"
	"github.com/riskibarqy/football-etl/internal/config"
	"github.com/riskibarqy/football-etl/internal/observability"
	"github.com/riskibarqy/football-etl/internal/platform/logging"
)

// runtime is the process-wide state shared by every subcommand.
type runtime struct {
	cfg      config.Config
	logger   *logging.Logger
	app      *app.App
	shutdown observability.Shutdown
}

func newRuntime() (*runtime, error) {
	if err := config.LoadDotEnv(globalEnvFile); err != nil {
		return nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile}).
		With("service", cfg.ServiceName, "env", cfg.AppEnv)
	logging.SetDefault(logger)

	return &runtime{
		cfg:      cfg,
		logger:   logger,
		shutdown: observability.Setup(cfg, logger),
	}, nil
}

// withRuntime builds the runtime, wires the app when opts is non-nil, runs
// fn and always tears everything down.
func withRuntime(ctx context.Context, opts *app.Options, fn func(context.Context, *runtime) error) (err error) {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := rt.close(ctx); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if opts != nil {
		rt.app, err = app.New(ctx, rt.cfg, rt.logger, *opts)
		if err != nil {
			return err
		}
	}
	return fn(ctx, rt)
}

func (rt *runtime) close(ctx context.Context) error {
	var errs []error
	if rt.app != nil {
		errs = append(errs, rt.app.Close())
	}
	errs = append(errs, rt.shutdown(context.WithoutCancel(ctx)))
	// Sync reports EINVAL for a stdout that is a pipe or terminal.
	_ = rt.logger.Sync()
	return errors.Join(errs...)
}

func printJSON(v any) error {
	out, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	_, err = fmt.Fprintln(os.Stdout, string(out))
	return err
}
