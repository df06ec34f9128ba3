package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/football-etl/internal/app"
	"github.com/riskibarqy/football-etl/internal/infrastructure/migration"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the warehouse schema",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMigrator(cmd.Context(), func(rt *runtime, m *migration.Migrator) error {
					applied, err := m.Up()
					if err != nil {
						return err
					}
					logChange(rt, applied, "migrations applied")
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "down [steps]",
			Short: "Roll back migrations, one by default",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				steps, err := migration.ParseSteps(args)
				if err != nil {
					return err
				}
				return withMigrator(cmd.Context(), func(rt *runtime, m *migration.Migrator) error {
					rolled, err := m.Down(steps)
					if err != nil {
						return err
					}
					logChange(rt, rolled, fmt.Sprintf("rolled back %d migration(s)", steps))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the applied schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMigrator(cmd.Context(), func(_ *runtime, m *migration.Migrator) error {
					v, err := m.Version()
					if err != nil {
						return err
					}
					if !v.Applied {
						fmt.Println("version: none")
						fmt.Println("dirty: false")
						return nil
					}
					fmt.Printf("version: %d\n", v.Version)
					fmt.Printf("dirty: %t\n", v.Dirty)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "force <version>",
			Short: "Set the schema version without running migrations",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				version, err := migration.ParseVersion(args[0])
				if err != nil {
					return err
				}
				return withMigrator(cmd.Context(), func(rt *runtime, m *migration.Migrator) error {
					if err := m.Force(version); err != nil {
						return err
					}
					rt.logger.Info("forced schema version", "version", version)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:     "goto <version>",
			Aliases: []string{"migrate"},
			Short:   "Migrate up or down to a target version",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				target, err := migration.ParseTarget(args[0])
				if err != nil {
					return err
				}
				return withMigrator(cmd.Context(), func(rt *runtime, m *migration.Migrator) error {
					moved, err := m.Goto(target)
					if err != nil {
						return err
					}
					logChange(rt, moved, fmt.Sprintf("migrated to version %d", target))
					return nil
				})
			},
		},
	)
	return cmd
}

func withMigrator(ctx context.Context, fn func(*runtime, *migration.Migrator) error) error {
	return withRuntime(ctx, nil, func(_ context.Context, rt *runtime) error {
		dbURL, err := app.MigrationURL(rt.cfg)
		if err != nil {
			return err
		}
		m, err := migration.New(dbURL)
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := m.Close(); closeErr != nil {
				rt.logger.Warn("close migrator", "error", closeErr)
			}
		}()
		return fn(rt, m)
	})
}

func logChange(rt *runtime, changed bool, msg string) {
	if !changed {
		rt.logger.Info("no migration changes")
		return
	}
	rt.logger.Info(msg)
}
