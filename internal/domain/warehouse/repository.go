package warehouse

import "context"

// Table names, shared by the processed files and the warehouse schema.
const (
	TablePlayer      = "dim_player"
	TableTeam        = "dim_team"
	TableStadium     = "dim_stadium"
	TableMatch       = "dim_match"
	TableSeason      = "dim_season"
	TableTeamMatch   = "fact_team_match_clean"
	TablePlayerMatch = "fact_player_match_clean"
	TableTeamPoint   = "fact_team_point"
)

// Repository persists the processed tables of a build. Every Save replaces
// the whole table.
type Repository interface {
	SavePlayers(ctx context.Context, items []Player) error
	SaveTeams(ctx context.Context, items []Team) error
	SaveStadiums(ctx context.Context, items []Stadium) error
	SaveMatches(ctx context.Context, items []Match) error
	SaveSeasons(ctx context.Context, items []Season) error
	SaveTeamMatches(ctx context.Context, items []TeamMatch) error
	SavePlayerMatches(ctx context.Context, items []PlayerMatch) error
	SaveTeamPoints(ctx context.Context, items []TeamPoint) error

	ListPlayers(ctx context.Context) ([]Player, error)
	ListTeams(ctx context.Context) ([]Team, error)
	ListStadiums(ctx context.Context) ([]Stadium, error)
	ListMatches(ctx context.Context) ([]Match, error)
	ListSeasons(ctx context.Context) ([]Season, error)
	ListTeamMatches(ctx context.Context) ([]TeamMatch, error)
	ListPlayerMatches(ctx context.Context) ([]PlayerMatch, error)
	ListTeamPoints(ctx context.Context) ([]TeamPoint, error)
}

// LoadSummary counts rows written per table.
type LoadSummary map[string]int

// Sink upserts a complete build into the warehouse database.
type Sink interface {
	Load(ctx context.Context, dims Dimensions, facts Facts) (LoadSummary, error)
}
