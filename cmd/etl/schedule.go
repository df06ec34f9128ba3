package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/football-etl/internal/app"
	"github.com/riskibarqy/football-etl/internal/interfaces/schedule"
)

const scheduleShutdownTimeout = 30 * time.Second

func newScheduleCmd() *cobra.Command {
	var spec string

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run the pipeline on a cron schedule until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(cmd.Context(), &app.Options{Warehouse: true}, func(ctx context.Context, rt *runtime) error {
				if spec == "" {
					spec = rt.cfg.PipelineSchedule
				}
				job := func(ctx context.Context) error {
					_, err := runPipeline(ctx, rt)
					return err
				}
				runner, err := schedule.NewRunner(ctx, spec, job, rt.logger)
				if err != nil {
					return err
				}
				return runner.Run(ctx, scheduleShutdownTimeout)
			})
		},
	}

	cmd.Flags().StringVar(&spec, "cron", "", "Cron expression overriding PIPELINE_SCHEDULE")
	return cmd
}
