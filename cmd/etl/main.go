// Package main is the football warehouse ETL command line.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version       = "0.1.0-dev"
	globalEnvFile string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "etl",
		Short:         "Weekly football warehouse transform and load",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&globalEnvFile, "env-file", ".env", "Dotenv file read before the environment")

	rootCmd.AddCommand(
		newDimensionsCmd(),
		newFactsCmd(),
		newTransformCmd(),
		newMergeCmd(),
		newLoadCmd(),
		newRunCmd(),
		newScheduleCmd(),
		newMigrateCmd(),
	)
	return rootCmd
}
