package app

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDBURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		disable bool
		want    string
	}{
		{
			name:    "appends flag",
			in:      "postgres://etl:pw@localhost:5432/warehouse?sslmode=disable",
			disable: true,
			want:    "postgres://etl:pw@localhost:5432/warehouse?disable_prepared_binary_result=yes&sslmode=disable",
		},
		{
			name:    "keeps explicit value",
			in:      "postgres://etl:pw@localhost:5432/warehouse?disable_prepared_binary_result=no",
			disable: true,
			want:    "postgres://etl:pw@localhost:5432/warehouse?disable_prepared_binary_result=no",
		},
		{
			name: "toggle off",
			in:   "postgres://etl:pw@localhost:5432/warehouse",
			want: "postgres://etl:pw@localhost:5432/warehouse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, normalizeDBURL(tt.in, tt.disable))
		})
	}
}

func TestDBNameFromURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "warehouse", dbNameFromURL("postgres://etl:pw@localhost:5432/warehouse?sslmode=disable"))
	assert.Equal(t, "warehouse", dbNameFromURL("host=localhost user=etl dbname='warehouse' sslmode=disable"))
	assert.Empty(t, dbNameFromURL("host=localhost user=etl"))
}

func TestFormatDBQueryForTrace(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "SELECT COUNT(*) FROM dim_team", formatDBQueryForTrace("  SELECT COUNT(*)\n\tFROM   dim_team "))

	batch := "INSERT INTO dim_stadium (stadium_id, stadium_name, capacity) VALUES ($1, $2, $3), ($4, $5, $6), ($7, $8, $9) " +
		"ON CONFLICT (stadium_id) DO UPDATE SET capacity = EXCLUDED.capacity"
	assert.Equal(t,
		"INSERT INTO dim_stadium (stadium_id, stadium_name, capacity) VALUES ($1, $2, $3) /* +2 rows */ "+
			"ON CONFLICT (stadium_id) DO UPDATE SET capacity = EXCLUDED.capacity",
		formatDBQueryForTrace(batch))

	single := "INSERT INTO dim_season (season_id) VALUES ($1) ON CONFLICT (season_id) DO NOTHING"
	assert.Equal(t, single, formatDBQueryForTrace(single))

	long := formatDBQueryForTrace("SELECT " + strings.Repeat("capacity, ", 100) + "1 FROM dim_stadium")
	assert.Len(t, long, maxTracedQueryLength+3)
}
