package csvstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/riskibarqy/football-etl/internal/domain/warehouse"
	"github.com/riskibarqy/football-etl/internal/platform/tabular"
)

// WarehouseRepository keeps processed tables as <dir>/<table>.csv.
type WarehouseRepository struct {
	dir string
}

func NewWarehouseRepository(dir string) *WarehouseRepository {
	return &WarehouseRepository{dir: dir}
}

func (r *WarehouseRepository) Path(table string) string {
	return filepath.Join(r.dir, table+".csv")
}

func save[T any](ctx context.Context, r *WarehouseRepository, c codec[T], items []T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := tabular.WriteFile(r.Path(c.table), c.columns, c.encodeAll(items)); err != nil {
		return fmt.Errorf("save %s: %w", c.table, err)
	}
	return nil
}

func list[T any](ctx context.Context, r *WarehouseRepository, c codec[T]) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t, err := tabular.ReadFile(r.Path(c.table), tabular.ReadOptions{HeaderDepth: 1})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", warehouse.ErrTableMissing, r.Path(c.table))
		}
		return nil, fmt.Errorf("read %s: %w", c.table, err)
	}
	items, err := c.decodeAll(t)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.table, err)
	}
	return items, nil
}

func (r *WarehouseRepository) SavePlayers(ctx context.Context, items []warehouse.Player) error {
	return save(ctx, r, playerCodec, items)
}

func (r *WarehouseRepository) SaveTeams(ctx context.Context, items []warehouse.Team) error {
	return save(ctx, r, teamCodec, items)
}

func (r *WarehouseRepository) SaveStadiums(ctx context.Context, items []warehouse.Stadium) error {
	return save(ctx, r, stadiumCodec, items)
}

func (r *WarehouseRepository) SaveMatches(ctx context.Context, items []warehouse.Match) error {
	return save(ctx, r, matchCodec, items)
}

func (r *WarehouseRepository) SaveSeasons(ctx context.Context, items []warehouse.Season) error {
	return save(ctx, r, seasonCodec, items)
}

func (r *WarehouseRepository) SaveTeamMatches(ctx context.Context, items []warehouse.TeamMatch) error {
	return save(ctx, r, teamMatchCodec, items)
}

func (r *WarehouseRepository) SavePlayerMatches(ctx context.Context, items []warehouse.PlayerMatch) error {
	return save(ctx, r, playerMatchCodec, items)
}

func (r *WarehouseRepository) SaveTeamPoints(ctx context.Context, items []warehouse.TeamPoint) error {
	return save(ctx, r, teamPointCodec, items)
}

func (r *WarehouseRepository) ListPlayers(ctx context.Context) ([]warehouse.Player, error) {
	return list(ctx, r, playerCodec)
}

func (r *WarehouseRepository) ListTeams(ctx context.Context) ([]warehouse.Team, error) {
	return list(ctx, r, teamCodec)
}

func (r *WarehouseRepository) ListStadiums(ctx context.Context) ([]warehouse.Stadium, error) {
	return list(ctx, r, stadiumCodec)
}

func (r *WarehouseRepository) ListMatches(ctx context.Context) ([]warehouse.Match, error) {
	return list(ctx, r, matchCodec)
}

func (r *WarehouseRepository) ListSeasons(ctx context.Context) ([]warehouse.Season, error) {
	return list(ctx, r, seasonCodec)
}

func (r *WarehouseRepository) ListTeamMatches(ctx context.Context) ([]warehouse.TeamMatch, error) {
	return list(ctx, r, teamMatchCodec)
}

func (r *WarehouseRepository) ListPlayerMatches(ctx context.Context) ([]warehouse.PlayerMatch, error) {
	return list(ctx, r, playerMatchCodec)
}

func (r *WarehouseRepository) ListTeamPoints(ctx context.Context) ([]warehouse.TeamPoint, error) {
	return list(ctx, r, teamPointCodec)
}
