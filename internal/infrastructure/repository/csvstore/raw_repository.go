package csvstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/riskibarqy/football-etl/internal/domain/rawdata"
	"github.com/riskibarqy/football-etl/internal/platform/tabular"
)

// RawRepository reads extracts from a directory of CSV files.
type RawRepository struct {
	dir string
}

func NewRawRepository(dir string) *RawRepository {
	return &RawRepository{dir: dir}
}

func (r *RawRepository) Path(source rawdata.Source) string {
	return filepath.Join(r.dir, source.String())
}

func (r *RawRepository) Open(ctx context.Context, source rawdata.Source) (*tabular.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	table, err := tabular.ReadFile(r.Path(source), tabular.ReadOptions{})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", rawdata.ErrSourceNotFound, r.Path(source))
		}
		return nil, fmt.Errorf("open raw source %s: %w", source, err)
	}
	return table, nil
}

// Save writes table with a flattened header, replacing the file atomically.
func (r *RawRepository) Save(ctx context.Context, source rawdata.Source, table *tabular.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := tabular.WriteFile(r.Path(source), table.Names(), table.Rows); err != nil {
		return fmt.Errorf("save raw source %s: %w", source, err)
	}
	return nil
}
