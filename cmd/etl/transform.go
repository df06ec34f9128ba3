package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/football-etl/internal/app"
)

func newDimensionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dimensions",
		Short: "Rebuild the dimension tables from the raw extracts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(cmd.Context(), &app.Options{}, func(ctx context.Context, rt *runtime) error {
				_, report, err := rt.app.Dimensions.BuildDimensions(ctx)
				if err != nil {
					return fmt.Errorf("building dimensions: %w", err)
				}
				return printJSON(report)
			})
		},
	}
}

func newFactsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "facts",
		Short: "Rebuild the fact tables against the processed dimensions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(cmd.Context(), &app.Options{}, func(ctx context.Context, rt *runtime) error {
				_, report, err := rt.app.Facts.BuildFacts(ctx)
				if err != nil {
					return fmt.Errorf("building facts: %w", err)
				}
				return printJSON(report)
			})
		},
	}
}

func newTransformCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transform",
		Short: "Rebuild dimensions then facts and write the run report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(cmd.Context(), &app.Options{}, func(ctx context.Context, rt *runtime) error {
				report, err := rt.app.Pipeline.Transform(ctx)
				if err != nil {
					return fmt.Errorf("transform: %w", err)
				}
				return printJSON(report)
			})
		},
	}
}
