package csvstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/football-etl/internal/domain/rawdata"
	"github.com/riskibarqy/football-etl/internal/domain/warehouse"
	"github.com/riskibarqy/football-etl/internal/platform/tabular"
)

func ptr[T any](v T) *T { return &v }

func TestWarehouseRepositoryWritesDeclaredColumnOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewWarehouseRepository(t.TempDir())

	require.NoError(t, repo.SaveTeams(ctx, []warehouse.Team{
		{ID: 123, Name: "Arsenal", FoundedYear: ptr(int64(1886)), StadiumID: ptr(int64(55)), ShortName: "ARS"},
		{ID: 456, Name: "Nott'ham Forest", ShortName: "NOT"},
	}))

	data, err := os.ReadFile(repo.Path(warehouse.TableTeam))
	require.NoError(t, err)
	want := "team_id,team_name,founded_year,stadium_id,short_name\n" +
		"123,Arsenal,1886,55,ARS\n" +
		"456,Nott'ham Forest,,,NOT\n"
	assert.Equal(t, want, string(data))
}

func TestWarehouseRepositoryReadsBackWhatItWrites(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewWarehouseRepository(t.TempDir())

	start := time.Date(2024, time.August, 16, 0, 0, 0, 0, time.UTC)
	seasons := []warehouse.Season{
		{ID: 2425, Name: "2024/2025", StartYear: 2024, EndYear: 2025, ActualStartDate: &start, ActualEndDate: &start},
		{ID: 2021, Name: "2020/2021", StartYear: 2020, EndYear: 2021},
	}
	require.NoError(t, repo.SaveSeasons(ctx, seasons))

	got, err := repo.ListSeasons(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(seasons, got); diff != "" {
		t.Fatalf("seasons mismatch (-want +got):\n%s", diff)
	}

	facts := []warehouse.TeamMatch{{
		Season: 2425, MatchID: 1, TeamID: 123, OpponentID: 456, Round: "07", Venue: "home", Result: "W",
		GoalsFor: ptr(int64(2)), GoalsAgainst: ptr(int64(0)), XG: ptr(1.7), Possession: ptr(57.0),
		Formation: "4-3-3", OppFormation: "4-2-3-1",
	}}
	require.NoError(t, repo.SaveTeamMatches(ctx, facts))
	gotFacts, err := repo.ListTeamMatches(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(facts, gotFacts); diff != "" {
		t.Fatalf("team matches mismatch (-want +got):\n%s", diff)
	}
}

func TestWarehouseRepositoryMissingTable(t *testing.T) {
	t.Parallel()

	repo := NewWarehouseRepository(t.TempDir())
	_, err := repo.ListPlayers(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, warehouse.ErrTableMissing)
}

func TestRawRepositoryOpenAndSave(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	repo := NewRawRepository(dir)

	_, err := repo.Open(ctx, rawdata.SourceStandings)
	assert.ErrorIs(t, err, rawdata.ErrSourceNotFound)

	table := &tabular.Table{
		Header: tabular.Hierarchical{{"season", ""}, {"Performance", "Gls"}},
		Rows:   [][]string{{"2024/2025", "3"}},
	}
	require.NoError(t, repo.Save(ctx, rawdata.SourcePlayerMatch, table))

	data, err := os.ReadFile(filepath.Join(dir, rawdata.SourcePlayerMatch.String()))
	require.NoError(t, err)
	assert.Equal(t, "season,Performance_Gls\n2024/2025,3\n", string(data))

	reopened, err := repo.Open(ctx, rawdata.SourcePlayerMatch)
	require.NoError(t, err)
	assert.Equal(t, []string{"season", "Performance_Gls"}, reopened.Names())
}
