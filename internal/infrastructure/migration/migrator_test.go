package migration

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	t.Parallel()

	entries, err := fs.ReadDir(files, "sql")
	require.NoError(t, err)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, entry := range entries {
		name := entry.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		default:
			t.Fatalf("unexpected migration file %s", name)
		}
	}
	assert.NotEmpty(t, ups)
	assert.Equal(t, ups, downs)
}

func TestFactTablesReferenceDimensions(t *testing.T) {
	t.Parallel()

	data, err := fs.ReadFile(files, "sql/1776297660_create_fact_tables.up.sql")
	require.NoError(t, err)
	ddl := string(data)
	for _, ref := range []string{
		"REFERENCES dim_season (season_id)",
		"REFERENCES dim_match (match_id)",
		"REFERENCES dim_team (team_id)",
		"REFERENCES dim_player (player_id)",
	} {
		assert.Contains(t, ddl, ref)
	}
}

func TestParseSteps(t *testing.T) {
	t.Parallel()

	steps, err := ParseSteps(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, steps)

	steps, err = ParseSteps([]string{" 3 "})
	require.NoError(t, err)
	assert.Equal(t, 3, steps)

	_, err = ParseSteps([]string{"0"})
	assert.Error(t, err)
	_, err = ParseSteps([]string{"two"})
	assert.Error(t, err)
}

func TestParseVersionAndTarget(t *testing.T) {
	t.Parallel()

	v, err := ParseVersion("1776297600")
	require.NoError(t, err)
	assert.Equal(t, 1776297600, v)

	_, err = ParseVersion("-1")
	assert.Error(t, err)

	target, err := ParseTarget("1776297660")
	require.NoError(t, err)
	assert.Equal(t, uint(1776297660), target)
}

func TestNewRequiresURL(t *testing.T) {
	t.Parallel()

	_, err := New("  ")
	assert.Error(t, err)
}
