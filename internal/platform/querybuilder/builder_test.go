package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("COUNT(*)").From("dim_team").ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT COUNT(*) FROM dim_team"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 0 {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := Select("COUNT(*)").ToSQL(); err == nil {
		t.Fatalf("expected error for missing table")
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("fact_team_point").ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	if query != "DELETE FROM fact_team_point" || len(args) != 0 {
		t.Fatalf("unexpected delete: %s %+v", query, args)
	}

	if _, _, err := DeleteFrom(" ").ToSQL(); err == nil {
		t.Fatalf("expected error for missing table")
	}
}

func TestInsertBuilderUpsert(t *testing.T) {
	query, args, err := InsertInto("dim_stadium").
		Columns("stadium_id", "stadium_name", "capacity").
		Values(int64(55), "Emirates Stadium", int64(60704)).
		Values(int64(56), "Stamford Bridge", int64(40173)).
		OnConflictDoUpdate("stadium_id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO dim_stadium (stadium_id, stadium_name, capacity) VALUES ($1, $2, $3), ($4, $5, $6) " +
		"ON CONFLICT (stadium_id) DO UPDATE SET stadium_name = EXCLUDED.stadium_name, capacity = EXCLUDED.capacity"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 6 || args[0] != int64(55) || args[4] != "Stamford Bridge" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilderRejectsRaggedRows(t *testing.T) {
	_, _, err := InsertInto("dim_team").
		Columns("team_id", "team_name").
		Values(int64(1)).
		ToSQL()
	if err == nil {
		t.Fatalf("expected error for ragged row")
	}
}

func TestUpsertSuffixAllKeyColumns(t *testing.T) {
	got := UpsertSuffix([]string{"a", "b"}, []string{"a", "b"})
	want := "ON CONFLICT (a, b) DO NOTHING"
	if got != want {
		t.Fatalf("unexpected suffix:\nwant: %s\ngot:  %s", want, got)
	}
}

type seasonRow struct {
	SeasonID   int64   `db:"season_id"`
	SeasonName string  `db:"season_name"`
	StartDate  *string `db:"actual_start_date"`
	internal   int
	Skipped    string `db:"-"`
}

func TestInsertModels(t *testing.T) {
	rows := []seasonRow{
		{SeasonID: 2324, SeasonName: "2023/2024"},
		{SeasonID: 2425, SeasonName: "2024/2025"},
	}
	query, args, err := InsertModels("dim_season", rows, "season_id")
	if err != nil {
		t.Fatalf("build insert models: %v", err)
	}

	wantQuery := "INSERT INTO dim_season (season_id, season_name, actual_start_date) VALUES ($1, $2, $3), ($4, $5, $6) " +
		"ON CONFLICT (season_id) DO UPDATE SET season_name = EXCLUDED.season_name, actual_start_date = EXCLUDED.actual_start_date"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 6 || args[3] != int64(2425) {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := InsertModels[seasonRow]("dim_season", nil); err == nil {
		t.Fatalf("expected error for empty models")
	}
}
