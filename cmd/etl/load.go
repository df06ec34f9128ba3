package main

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/football-etl/internal/app"
	"github.com/riskibarqy/football-etl/internal/domain/warehouse"
	"github.com/riskibarqy/football-etl/internal/platform/resilience"
	"github.com/riskibarqy/football-etl/internal/platform/tabular"
	"github.com/riskibarqy/football-etl/internal/usecase"
)

func newLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Upsert the processed tables into the warehouse database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(cmd.Context(), &app.Options{Warehouse: true}, func(ctx context.Context, rt *runtime) error {
				summary, err := rt.app.Load.Load(ctx)
				if err != nil {
					return fmt.Errorf("loading warehouse: %w", err)
				}
				return printJSON(summary)
			})
		},
	}
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Transform and load once, retrying transient failures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(cmd.Context(), &app.Options{Warehouse: true}, func(ctx context.Context, rt *runtime) error {
				report, err := runPipeline(ctx, rt)
				if err != nil {
					return err
				}
				return printJSON(report)
			})
		},
	}
}

// runPipeline runs transform and load under the configured retry policy.
func runPipeline(ctx context.Context, rt *runtime) (usecase.RunReport, error) {
	policy := resilience.RetryPolicy{Retries: rt.cfg.PipelineRetries, Delay: rt.cfg.PipelineRetryDelay}
	report, err := resilience.Retry(ctx, policy, rt.logger, "pipeline", permanentRunError, rt.app.Pipeline.Run)
	if err != nil {
		return report, fmt.Errorf("pipeline run: %w", err)
	}
	return report, nil
}

// permanentRunError reports failures that a retry cannot fix: bad inputs
// and data that violates the warehouse contract.
func permanentRunError(err error) bool {
	for _, target := range []error{
		usecase.ErrInvalidInput,
		usecase.ErrRequiredSourceMissing,
		tabular.ErrSchemaMismatch,
		warehouse.ErrDuplicateKey,
		warehouse.ErrDanglingKey,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
