package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/football-etl/internal/app"
)

func newMergeCmd() *cobra.Command {
	var (
		newPath      string
		existingPath string
		keys         []string
	)

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Fold a freshly scraped batch into a persisted raw file",
		Long: "Reads the new batch and the existing file, replaces superseded rows by key " +
			"(or de-duplicates whole rows when no key is usable) and rewrites the existing file.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(cmd.Context(), &app.Options{}, func(ctx context.Context, rt *runtime) error {
				result, err := rt.app.Merge.MergeFile(ctx, newPath, existingPath, keys)
				if err != nil {
					return fmt.Errorf("merging %s: %w", newPath, err)
				}
				return printJSON(map[string]any{
					"mode":       string(result.Mode),
					"rows":       len(result.Table.Rows),
					"superseded": result.Superseded,
					"duplicates": result.Duplicates,
					"keys":       strings.Join(keys, ","),
				})
			})
		},
	}

	cmd.Flags().StringVar(&newPath, "new", "", "CSV file holding the new batch")
	cmd.Flags().StringVar(&existingPath, "existing", "", "Persisted CSV file to update")
	cmd.Flags().StringSliceVar(&keys, "keys", nil, "Key columns identifying a row")
	_ = cmd.MarkFlagRequired("new")
	_ = cmd.MarkFlagRequired("existing")
	return cmd
}
