package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/football-etl/internal/domain/warehouse"
	qb "github.com/riskibarqy/football-etl/internal/platform/querybuilder"
)

const DefaultLoadBatchSize = 500

const (
	pqForeignKeyViolation = "23503"
	pqUniqueViolation     = "23505"
)

// WarehouseSink upserts processed tables into the warehouse schema created by
// the embedded migrations.
type WarehouseSink struct {
	db        *sqlx.DB
	batchSize int
}

func NewWarehouseSink(db *sqlx.DB, batchSize int) *WarehouseSink {
	if batchSize <= 0 {
		batchSize = DefaultLoadBatchSize
	}
	return &WarehouseSink{db: db, batchSize: batchSize}
}

// replaceOrder lists the warehouse tables children first. Dimensions are
// rebuilt in full every run and their dense ids may shift, so a load clears
// every table in this order before inserting.
var replaceOrder = []string{
	warehouse.TablePlayerMatch,
	warehouse.TableTeamPoint,
	warehouse.TableTeamMatch,
	warehouse.TableSeason,
	warehouse.TablePlayer,
	warehouse.TableMatch,
	warehouse.TableTeam,
	warehouse.TableStadium,
}

// Load replaces every table inside one transaction: rows are deleted
// children first, then inserted in dependency order. Readers see either the
// previous build or the new one.
func (s *WarehouseSink) Load(ctx context.Context, dims warehouse.Dimensions, facts warehouse.Facts) (warehouse.LoadSummary, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin load tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := clearTables(ctx, tx); err != nil {
		return nil, err
	}

	summary := warehouse.LoadSummary{}
	steps := []func() error{
		func() error {
			return upsertBatches(ctx, tx, summary, warehouse.TableStadium, stadiumModels(dims.Stadiums), s.batchSize, "stadium_id")
		},
		func() error {
			return upsertBatches(ctx, tx, summary, warehouse.TableTeam, teamModels(dims.Teams), s.batchSize, "team_id")
		},
		func() error {
			return upsertBatches(ctx, tx, summary, warehouse.TableMatch, matchModels(dims.Matches), s.batchSize, "match_id")
		},
		func() error {
			return upsertBatches(ctx, tx, summary, warehouse.TablePlayer, playerModels(dims.Players), s.batchSize, "player_id")
		},
		func() error {
			return upsertBatches(ctx, tx, summary, warehouse.TableSeason, seasonModels(dims.Seasons), s.batchSize, "season_id")
		},
		func() error {
			return upsertBatches(ctx, tx, summary, warehouse.TableTeamMatch, teamMatchModels(facts.TeamMatches), s.batchSize,
				"season", "match_id", "team_id")
		},
		func() error {
			return upsertBatches(ctx, tx, summary, warehouse.TableTeamPoint, teamPointModels(facts.TeamPoints), s.batchSize,
				"season_id", "team_id", "match_category")
		},
		func() error {
			return upsertBatches(ctx, tx, summary, warehouse.TablePlayerMatch, playerMatchModels(facts.PlayerMatches), s.batchSize,
				"season", "match_id", "team_id", "player_id")
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit load tx: %w", err)
	}
	return summary, nil
}

// Count returns the number of rows currently stored in table.
func (s *WarehouseSink) Count(ctx context.Context, table string) (int64, error) {
	query, args, err := qb.Select("COUNT(*)").From(table).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count %s query: %w", table, err)
	}

	var total int64
	if err := s.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return total, nil
}

func clearTables(ctx context.Context, tx *sqlx.Tx) error {
	for _, table := range replaceOrder {
		query, args, err := qb.DeleteFrom(table).ToSQL()
		if err != nil {
			return fmt.Errorf("build delete %s query: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("clear %s: %w", table, classifyPQError(err))
		}
	}
	return nil
}

func upsertBatches[T any](ctx context.Context, tx *sqlx.Tx, summary warehouse.LoadSummary, table string, rows []T, batchSize int, keyColumns ...string) error {
	summary[table] = 0
	for start := 0; start < len(rows); start += batchSize {
		end := min(start+batchSize, len(rows))
		query, args, err := qb.InsertModels(table, rows[start:end], keyColumns...)
		if err != nil {
			return fmt.Errorf("build upsert %s query: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert %s rows %d-%d: %w", table, start, end, classifyPQError(err))
		}
		summary[table] += end - start
	}
	return nil
}

func classifyPQError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch string(pqErr.Code) {
	case pqForeignKeyViolation:
		return fmt.Errorf("%w: %s (%s)", warehouse.ErrDanglingKey, pqErr.Constraint, pqErr.Detail)
	case pqUniqueViolation:
		return fmt.Errorf("%w: %s (%s)", warehouse.ErrDuplicateKey, pqErr.Constraint, pqErr.Detail)
	default:
		return err
	}
}
