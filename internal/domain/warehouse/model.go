package warehouse

import "time"

// Player is a row of dim_player. IDs are dense and assigned after sorting
// by canonical name.
type Player struct {
	ID        int64
	Name      string
	Position  string
	Nation    string
	BirthYear *int64
}

// Team is a row of dim_team. ID and StadiumID come from the prefixed
// external identifiers of the reference extract.
type Team struct {
	ID          int64
	Name        string
	FoundedYear *int64
	StadiumID   *int64
	ShortName   string
}

type Stadium struct {
	ID       int64
	Name     string
	Capacity int64
}

// Match is a row of dim_match. Label is the natural key shared with the
// fact extracts.
type Match struct {
	ID      int64
	Label   string
	Date    time.Time
	Round   string
	Weekday string
}

// Season is a row of dim_season. Dates are only known for seasons that
// have match-level data.
type Season struct {
	ID              int64
	Name            string
	StartYear       int
	EndYear         int
	ActualStartDate *time.Time
	ActualEndDate   *time.Time
}

// TeamMatch is a row of fact_team_match_clean, keyed by
// (Season, MatchID, TeamID).
type TeamMatch struct {
	Season       int64
	MatchID      int64
	TeamID       int64
	OpponentID   int64
	Round        string
	Venue        string
	Result       string
	GoalsFor     *int64
	GoalsAgainst *int64
	XG           *float64
	XGA          *float64
	Possession   *float64
	CaptainID    *int64
	Formation    string
	OppFormation string
}

// PlayerMatch is a row of fact_player_match_clean, keyed by
// (Season, MatchID, TeamID, PlayerID).
type PlayerMatch struct {
	Season                int64
	MatchID               int64
	TeamID                int64
	PlayerID              int64
	MinPlayed             *int64
	Goals                 *int64
	Assists               *int64
	PenaltyMade           *int64
	PenaltyAttempted      *int64
	Shots                 *int64
	ShotsOnTarget         *int64
	YellowCards           *int64
	RedCards              *int64
	Touches               *int64
	Tackles               *int64
	Interceptions         *int64
	Blocks                *int64
	ShotCreatingActions   *int64
	GoalCreatingActions   *int64
	PassesCompleted       *int64
	PassesAttempted       *int64
	PassCompletionPercent *float64
	ProgressivePasses     *int64
	Carries               *int64
	ProgressiveCarries    *int64
	TakeOnsAttempted      *int64
	TakeOnsSuccessful     *int64
}

// Standings categories of fact_team_point.
const (
	CategoryOverall = "overall"
	CategoryHome    = "home"
	CategoryAway    = "away"
)

// TeamPoint is a row of fact_team_point, keyed by
// (SeasonID, TeamID, Category).
type TeamPoint struct {
	SeasonID     int64
	Category     string
	Rank         *int64
	TeamID       int64
	Played       *int64
	Won          *int64
	Drawn        *int64
	Lost         *int64
	GoalsFor     *int64
	GoalsAgainst *int64
	GoalDiff     *int64
	Points       *int64
	RecentForm   string
}

// Dimensions is the full set of dimension tables of one build.
type Dimensions struct {
	Players  []Player
	Teams    []Team
	Stadiums []Stadium
	Matches  []Match
	Seasons  []Season
}

// Facts is the full set of fact tables of one build.
type Facts struct {
	TeamMatches   []TeamMatch
	PlayerMatches []PlayerMatch
	TeamPoints    []TeamPoint
}
