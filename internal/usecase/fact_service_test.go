package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/football-etl/internal/domain/rawdata"
	"github.com/riskibarqy/football-etl/internal/domain/warehouse"
)

func buildAll(t *testing.T, f fixture) (warehouse.Dimensions, warehouse.Facts, StageReport) {
	t.Helper()

	ctx := context.Background()
	dims, _, err := f.dimensionService().BuildDimensions(ctx)
	require.NoError(t, err)
	facts, report, err := f.factService().BuildFacts(ctx)
	require.NoError(t, err)
	return dims, facts, report
}

func TestBuildFactsTeamMatches(t *testing.T) {
	t.Parallel()

	_, facts, report := buildAll(t, newFixture(t))

	require.Len(t, facts.TeamMatches, 3)
	want := warehouse.TeamMatch{
		Season:       2425,
		MatchID:      1,
		TeamID:       123,
		OpponentID:   200,
		Round:        "01",
		Venue:        "home",
		Result:       "W",
		GoalsFor:     ptr(int64(2)),
		GoalsAgainst: ptr(int64(0)),
		XG:           ptr(1.8),
		XGA:          ptr(0.5),
		Possession:   ptr(55.0),
		CaptainID:    ptr(int64(2)),
		Formation:    "4-3-3",
		OppFormation: "4-4-2",
	}
	if diff := cmp.Diff(want, facts.TeamMatches[0]); diff != "" {
		t.Fatalf("team match mismatch (-want +got):\n%s", diff)
	}

	assert.Nil(t, facts.TeamMatches[1].CaptainID)
	assert.Equal(t, "away", facts.TeamMatches[1].Venue)
	assert.Equal(t, int64(300), facts.TeamMatches[2].TeamID)
	assert.Nil(t, facts.TeamMatches[2].XG)

	stats := statsFor(t, report, warehouse.TableTeamMatch)
	assert.Equal(t, 1, stats.Nulled[reasonCaptainGap])
	var samples []string
	for _, sample := range stats.Unmatched {
		if sample.Reason == reasonCaptainGap {
			samples = append(samples, sample.Value)
		}
	}
	assert.Equal(t, []string{"Unknown Skipper"}, samples)
}

func TestBuildFactsTeamPoints(t *testing.T) {
	t.Parallel()

	_, facts, report := buildAll(t, newFixture(t))

	want := []warehouse.TeamPoint{{
		SeasonID:     2425,
		Category:     warehouse.CategoryOverall,
		Rank:         ptr(int64(5)),
		TeamID:       200,
		Played:       ptr(int64(38)),
		Won:          ptr(int64(20)),
		Drawn:        ptr(int64(6)),
		Lost:         ptr(int64(12)),
		GoalsFor:     ptr(int64(86)),
		GoalsAgainst: ptr(int64(41)),
		GoalDiff:     ptr(int64(45)),
		Points:       ptr(int64(66)),
		RecentForm:   "WWLDW",
	}}
	if diff := cmp.Diff(want, facts.TeamPoints); diff != "" {
		t.Fatalf("team points mismatch (-want +got):\n%s", diff)
	}

	stats := statsFor(t, report, warehouse.TableTeamPoint)
	assert.Equal(t, 1, stats.Dropped[reasonInvalidCat])
	assert.Equal(t, 1, stats.Dropped[reasonTeamGap])
}

func TestBuildFactsPlayerMatchesDropHeaderRows(t *testing.T) {
	t.Parallel()

	_, facts, report := buildAll(t, newFixture(t))

	require.Len(t, facts.PlayerMatches, 3)
	assert.Equal(t, ptr(int64(90)), facts.PlayerMatches[0].MinPlayed)
	assert.Equal(t, 1, statsFor(t, report, warehouse.TablePlayerMatch).Dropped[reasonHeaderLeak])
}

func TestBuildFactsExcludesUnresolvedPlayer(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	dims, _, err := f.dimensionService().BuildDimensions(ctx)
	require.NoError(t, err)

	var kept []warehouse.Player
	for _, p := range dims.Players {
		if p.Name != "Cole Palmer" {
			kept = append(kept, p)
		}
	}
	require.NoError(t, f.store.SavePlayers(ctx, kept))

	facts, report, err := f.factService().BuildFacts(ctx)
	require.NoError(t, err)

	require.Len(t, facts.PlayerMatches, 2)
	for _, row := range facts.PlayerMatches {
		assert.NotEqual(t, int64(300), row.TeamID)
	}
	stats := statsFor(t, report, warehouse.TablePlayerMatch)
	assert.Equal(t, 1, stats.Dropped[reasonPlayerGap])
	require.NotEmpty(t, stats.Unmatched)
	assert.Equal(t, "Cole Palmer", stats.Unmatched[0].Value)
}

func TestBuildFactsKeepsReferentialIntegrity(t *testing.T) {
	t.Parallel()

	dims, facts, _ := buildAll(t, newFixture(t))
	require.NoError(t, warehouse.CheckIntegrity(dims, facts))
}

func TestBuildFactsWithoutStandingsWritesHeaderOnlyTable(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	require.NoError(t, os.Remove(filepath.Join(f.rawDir, rawdata.SourceStandings.String())))

	_, facts, _ := buildAll(t, f)
	assert.Empty(t, facts.TeamPoints)

	data, err := os.ReadFile(f.store.Path(warehouse.TableTeamPoint))
	require.NoError(t, err)
	assert.Equal(t, "season_id,match_category,rank,team_id,mp,w,d,l,gf,ga,gd,pts,recent_form\n", string(data))
}

func TestBuildFactsRequiresDimensions(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	_, _, err := f.factService().BuildFacts(context.Background())
	require.ErrorIs(t, err, ErrDimensionMissing)
	assert.ErrorIs(t, err, warehouse.ErrTableMissing)
}

func TestNearestNameSuggestsCloseDimensionName(t *testing.T) {
	t.Parallel()

	candidates := []string{"Arsenal", "Newcastle Utd", "Chelsea"}
	assert.Equal(t, "Newcastle Utd", nearestName("Newcastle Utd.", candidates))
	assert.Empty(t, nearestName("Atlantis Town", candidates))
	assert.Empty(t, nearestName("Arsenal", nil))
}
