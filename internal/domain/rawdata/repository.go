package rawdata

import (
	"context"
	"errors"

	"github.com/riskibarqy/football-etl/internal/platform/tabular"
)

// ErrSourceNotFound is returned by Open when the extract file is absent.
var ErrSourceNotFound = errors.New("raw source not found")

// Repository reads and replaces raw extracts.
type Repository interface {
	Open(ctx context.Context, source Source) (*tabular.Table, error)
	Save(ctx context.Context, source Source, table *tabular.Table) error
	Path(source Source) string
}
