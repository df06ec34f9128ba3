package postgres

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/riskibarqy/football-etl/internal/domain/warehouse"
	qb "github.com/riskibarqy/football-etl/internal/platform/querybuilder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyPQError(t *testing.T) {
	t.Parallel()

	fk := fmt.Errorf("exec: %w", &pq.Error{Code: "23503", Constraint: "fact_team_match_clean_team_id_fkey"})
	assert.ErrorIs(t, classifyPQError(fk), warehouse.ErrDanglingKey)

	dup := &pq.Error{Code: "23505", Constraint: "dim_season_season_name_key"}
	assert.ErrorIs(t, classifyPQError(dup), warehouse.ErrDuplicateKey)

	other := errors.New("connection reset")
	assert.Same(t, other, classifyPQError(other))
}

func TestModelColumnsMatchMigrations(t *testing.T) {
	t.Parallel()

	cols, err := qb.Columns(teamPointTableModel{})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"season_id", "match_category", "rank", "team_id", "mp", "w", "d", "l",
		"gf", "ga", "gd", "pts", "recent_form",
	}, cols)

	cols, err = qb.Columns(teamMatchTableModel{})
	require.NoError(t, err)
	assert.Len(t, cols, 15)

	cols, err = qb.Columns(playerMatchTableModel{})
	require.NoError(t, err)
	assert.Len(t, cols, 27)
}

func TestSeasonModelsKeepNullDates(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 8, 16, 0, 0, 0, 0, time.UTC)
	rows := seasonModels([]warehouse.Season{
		{ID: 2425, Name: "2024/2025", StartYear: 2024, EndYear: 2025, ActualStartDate: &start},
		{ID: 2021, Name: "2020/2021", StartYear: 2020, EndYear: 2021},
	})
	require.Len(t, rows, 2)
	assert.Equal(t, &start, rows[0].ActualStartDate)
	assert.Nil(t, rows[1].ActualStartDate)
	assert.Nil(t, rows[1].ActualEndDate)

	query, args, err := qb.InsertModels(warehouse.TableSeason, rows, "season_id")
	require.NoError(t, err)
	assert.Contains(t, query, "ON CONFLICT (season_id) DO UPDATE SET season_name = EXCLUDED.season_name")
	assert.Len(t, args, 12)
}
