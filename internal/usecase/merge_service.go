package usecase

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/riskibarqy/football-etl/internal/platform/logging"
	"github.com/riskibarqy/football-etl/internal/platform/tabular"
)

// MergeService folds a freshly scraped raw batch into the persisted one so
// extraction can run incrementally.
type MergeService struct {
	logger *logging.Logger
}

func NewMergeService(logger *logging.Logger) *MergeService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MergeService{logger: logger}
}

// Merge combines incoming with the table stored at existingPath. The file is
// not modified.
func (s *MergeService) Merge(ctx context.Context, incoming *tabular.Table, existingPath string, keyColumns []string) (tabular.MergeResult, error) {
	if incoming == nil {
		return tabular.MergeResult{}, fmt.Errorf("%w: incoming batch is required", ErrInvalidInput)
	}
	ctx, span := startUsecaseSpan(ctx, "usecase.MergeService.Merge")
	defer span.End()

	keys := cleanKeys(keyColumns)
	existing, err := tabular.ReadFile(existingPath, tabular.ReadOptions{})
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		existing = nil
	case errors.Is(err, tabular.ErrEmptyFile):
		s.logger.WarnContext(ctx, "existing batch is empty, treating it as missing", "path", existingPath)
		existing = nil
	default:
		return tabular.MergeResult{}, fmt.Errorf("read existing batch: %w", err)
	}

	result := tabular.Merge(existing, incoming, keys)
	switch result.Mode {
	case tabular.MergeSchemaDrift:
		s.logger.WarnContext(ctx, "existing batch has different columns, keeping only the new batch",
			"path", existingPath,
			"existing_columns", existing.Names(),
			"new_columns", incoming.Names(),
			"discarded_rows", len(existing.Rows),
		)
	case tabular.MergeAppendDedup:
		s.logger.InfoContext(ctx, "merge keys unusable, appended with full-row dedup",
			"path", existingPath,
			"keys", keys,
			"duplicates", result.Duplicates,
		)
	}
	s.logger.InfoContext(ctx, "batch merged",
		"path", existingPath,
		"mode", string(result.Mode),
		"superseded", result.Superseded,
		"rows", len(result.Table.Rows),
	)
	return result, nil
}

// MergeFile merges the batch at newPath into existingPath and replaces it.
func (s *MergeService) MergeFile(ctx context.Context, newPath, existingPath string, keyColumns []string) (tabular.MergeResult, error) {
	incoming, err := tabular.ReadFile(newPath, tabular.ReadOptions{})
	if err != nil {
		return tabular.MergeResult{}, fmt.Errorf("read new batch: %w", err)
	}
	result, err := s.Merge(ctx, incoming, existingPath, keyColumns)
	if err != nil {
		return tabular.MergeResult{}, err
	}
	if err := tabular.WriteFile(existingPath, result.Table.Names(), result.Table.Rows); err != nil {
		return tabular.MergeResult{}, fmt.Errorf("write merged batch: %w", err)
	}
	return result, nil
}

func cleanKeys(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		if key = strings.TrimSpace(key); key != "" {
			out = append(out, key)
		}
	}
	return out
}
