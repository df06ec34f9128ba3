package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/football-etl/internal/config"
	"github.com/riskibarqy/football-etl/internal/domain/surrogate"
	"github.com/riskibarqy/football-etl/internal/infrastructure/reference"
	"github.com/riskibarqy/football-etl/internal/infrastructure/repository/csvstore"
	"github.com/riskibarqy/football-etl/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/football-etl/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/football-etl/internal/infrastructure/repository/sqlite"
	"github.com/riskibarqy/football-etl/internal/platform/logging"
	"github.com/riskibarqy/football-etl/internal/platform/normalize"
	"github.com/riskibarqy/football-etl/internal/usecase"
)

// Options selects which optional adapters New connects.
type Options struct {
	// Warehouse opens the database and wires the load stage.
	Warehouse bool
}

// App holds the wired use cases of one process.
type App struct {
	Dimensions *usecase.DimensionService
	Facts      *usecase.FactService
	Merge      *usecase.MergeService
	Load       *usecase.LoadService
	Pipeline   *usecase.PipelineService

	closers []func() error
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger, opts Options) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	a := &App{}

	catalog, err := reference.NewYAMLSource(cfg.ReferenceCatalogPath).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load reference catalog: %w", err)
	}
	normalizer := normalize.New(catalog)

	var allocator surrogate.Allocator = memory.NewSurrogateAllocator()
	if cfg.KeyRegistryEnabled {
		registry, err := sqlite.Open(ctx, cfg.KeyRegistryPath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, registry.Close)
		allocator = registry
		logger.Info("persistent surrogate keys enabled", "path", cfg.KeyRegistryPath)
	}

	raw := csvstore.NewRawRepository(cfg.RawDir)
	store := csvstore.NewWarehouseRepository(cfg.ProcessedDir)

	a.Dimensions = usecase.NewDimensionService(raw, store, normalizer, allocator, logger, cfg.UnmatchedSampleSize)
	a.Facts = usecase.NewFactService(raw, store, normalizer, logger, cfg.UnmatchedSampleSize)
	a.Merge = usecase.NewMergeService(logger)

	if opts.Warehouse {
		db, err := OpenWarehouseDB(ctx, cfg)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		a.Load = usecase.NewLoadService(store, postgres.NewWarehouseSink(db, cfg.DBLoadBatchSize), logger)
	}

	a.Pipeline = usecase.NewPipelineService(a.Dimensions, a.Facts, a.Load, cfg.ProcessedDir, logger)
	return a, nil
}

// Close releases every adapter opened by New.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// OpenWarehouseDB connects to the warehouse with query tracing enabled.
func OpenWarehouseDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	if err := cfg.RequireDB(); err != nil {
		return nil, err
	}

	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open warehouse db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping warehouse db: %w", err)
	}
	return db, nil
}

// MigrationURL is the database URL handed to the schema migrator.
func MigrationURL(cfg config.Config) (string, error) {
	if err := cfg.RequireDB(); err != nil {
		return "", err
	}
	return normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary), nil
}
