package schedule

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/riskibarqy/football-etl/internal/platform/logging"
)

// DefaultSpec runs the pipeline every Wednesday at 02:00.
const DefaultSpec = "0 2 * * 3"

// Job is one scheduled pipeline execution.
type Job func(ctx context.Context) error

// Runner triggers a job on a cron schedule. A trigger that fires while the
// previous run is still going is skipped.
type Runner struct {
	cron   *cron.Cron
	spec   string
	entry  cron.EntryID
	logger *logging.Logger
}

func NewRunner(ctx context.Context, spec string, job Job, logger *logging.Logger) (*Runner, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if job == nil {
		return nil, fmt.Errorf("schedule job is required")
	}
	spec = strings.TrimSpace(spec)
	if spec == "" {
		spec = DefaultSpec
	}
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("parse schedule %q: %w", spec, err)
	}

	cronLogger := logging.NewCronLogger(logger)
	c := cron.New(
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)

	r := &Runner{cron: c, spec: spec, logger: logger}
	entry, err := c.AddFunc(spec, func() {
		started := time.Now()
		logger.InfoContext(ctx, "scheduled run started", "schedule", spec)
		if err := job(ctx); err != nil {
			logger.ErrorContext(ctx, "scheduled run failed", "schedule", spec, "error", err)
			return
		}
		logger.InfoContext(ctx, "scheduled run finished",
			"schedule", spec,
			"duration", time.Since(started).String(),
		)
	})
	if err != nil {
		return nil, fmt.Errorf("register schedule %q: %w", spec, err)
	}
	r.entry = entry
	return r, nil
}

// Next returns the next activation time. It is zero until Start.
func (r *Runner) Next() time.Time {
	return r.cron.Entry(r.entry).Next
}

func (r *Runner) Start() {
	r.cron.Start()
	r.logger.Info("scheduler started", "schedule", r.spec, "next_run", r.Next())
}

// Stop halts the schedule and waits for a running job until ctx expires.
func (r *Runner) Stop(ctx context.Context) error {
	done := r.cron.Stop()
	select {
	case <-done.Done():
		r.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("wait for running job: %w", ctx.Err())
	}
}

// Run starts the schedule and blocks until ctx is cancelled.
func (r *Runner) Run(ctx context.Context, shutdownTimeout time.Duration) error {
	r.Start()
	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return r.Stop(stopCtx)
}
