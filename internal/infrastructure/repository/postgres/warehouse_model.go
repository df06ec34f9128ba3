package postgres

import (
	"time"

	"github.com/riskibarqy/football-etl/internal/domain/warehouse"
)

type stadiumTableModel struct {
	StadiumID   int64  `db:"stadium_id"`
	StadiumName string `db:"stadium_name"`
	Capacity    int64  `db:"capacity"`
}

type teamTableModel struct {
	TeamID      int64  `db:"team_id"`
	TeamName    string `db:"team_name"`
	FoundedYear *int64 `db:"founded_year"`
	StadiumID   *int64 `db:"stadium_id"`
	ShortName   string `db:"short_name"`
}

type matchTableModel struct {
	MatchID    int64     `db:"match_id"`
	MatchLabel string    `db:"match_label"`
	MatchDate  time.Time `db:"match_date"`
	Round      string    `db:"round"`
	Weekday    string    `db:"weekday"`
}

type playerTableModel struct {
	PlayerID   int64  `db:"player_id"`
	PlayerName string `db:"player_name"`
	Position   string `db:"position"`
	Nation     string `db:"nation"`
	BirthYear  *int64 `db:"birth_year"`
}

type seasonTableModel struct {
	SeasonID        int64      `db:"season_id"`
	SeasonName      string     `db:"season_name"`
	StartYear       int        `db:"start_year"`
	EndYear         int        `db:"end_year"`
	ActualStartDate *time.Time `db:"actual_start_date"`
	ActualEndDate   *time.Time `db:"actual_end_date"`
}

type teamMatchTableModel struct {
	Season       int64    `db:"season"`
	MatchID      int64    `db:"match_id"`
	TeamID       int64    `db:"team_id"`
	OpponentID   int64    `db:"opponent_id"`
	Round        string   `db:"round"`
	Venue        string   `db:"venue"`
	Result       string   `db:"result"`
	GF           *int64   `db:"gf"`
	GA           *int64   `db:"ga"`
	XG           *float64 `db:"xg"`
	XGA          *float64 `db:"xga"`
	Possession   *float64 `db:"possession"`
	CaptainID    *int64   `db:"captain_id"`
	Formation    string   `db:"formation"`
	OppFormation string   `db:"opp_formation"`
}

type playerMatchTableModel struct {
	Season                int64    `db:"season"`
	MatchID               int64    `db:"match_id"`
	TeamID                int64    `db:"team_id"`
	PlayerID              int64    `db:"player_id"`
	MinPlayed             *int64   `db:"min_played"`
	Goals                 *int64   `db:"goals"`
	Assists               *int64   `db:"assists"`
	PenaltyMade           *int64   `db:"penalty_made"`
	PenaltyAttempted      *int64   `db:"penalty_attempted"`
	Shots                 *int64   `db:"shots"`
	ShotsOnTarget         *int64   `db:"shots_on_target"`
	YellowCards           *int64   `db:"yellow_cards"`
	RedCards              *int64   `db:"red_cards"`
	Touches               *int64   `db:"touches"`
	Tackles               *int64   `db:"tackles"`
	Interceptions         *int64   `db:"interceptions"`
	Blocks                *int64   `db:"blocks"`
	ShotCreatingActions   *int64   `db:"shot_creating_actions"`
	GoalCreatingActions   *int64   `db:"goal_creating_actions"`
	PassesCompleted       *int64   `db:"passes_completed"`
	PassesAttempted       *int64   `db:"passes_attempted"`
	PassCompletionPercent *float64 `db:"pass_completion_percent"`
	ProgressivePasses     *int64   `db:"progressive_passes"`
	Carries               *int64   `db:"carries"`
	ProgressiveCarries    *int64   `db:"progressive_carries"`
	TakeOnsAttempted      *int64   `db:"take_ons_attempted"`
	TakeOnsSuccessful     *int64   `db:"take_ons_successful"`
}

type teamPointTableModel struct {
	SeasonID      int64  `db:"season_id"`
	MatchCategory string `db:"match_category"`
	Rank          *int64 `db:"rank"`
	TeamID        int64  `db:"team_id"`
	MP            *int64 `db:"mp"`
	W             *int64 `db:"w"`
	D             *int64 `db:"d"`
	L             *int64 `db:"l"`
	GF            *int64 `db:"gf"`
	GA            *int64 `db:"ga"`
	GD            *int64 `db:"gd"`
	Pts           *int64 `db:"pts"`
	RecentForm    string `db:"recent_form"`
}

func stadiumModels(items []warehouse.Stadium) []stadiumTableModel {
	out := make([]stadiumTableModel, 0, len(items))
	for _, s := range items {
		out = append(out, stadiumTableModel{StadiumID: s.ID, StadiumName: s.Name, Capacity: s.Capacity})
	}
	return out
}

func teamModels(items []warehouse.Team) []teamTableModel {
	out := make([]teamTableModel, 0, len(items))
	for _, t := range items {
		out = append(out, teamTableModel{
			TeamID:      t.ID,
			TeamName:    t.Name,
			FoundedYear: t.FoundedYear,
			StadiumID:   t.StadiumID,
			ShortName:   t.ShortName,
		})
	}
	return out
}

func matchModels(items []warehouse.Match) []matchTableModel {
	out := make([]matchTableModel, 0, len(items))
	for _, m := range items {
		out = append(out, matchTableModel{
			MatchID:    m.ID,
			MatchLabel: m.Label,
			MatchDate:  m.Date,
			Round:      m.Round,
			Weekday:    m.Weekday,
		})
	}
	return out
}

func playerModels(items []warehouse.Player) []playerTableModel {
	out := make([]playerTableModel, 0, len(items))
	for _, p := range items {
		out = append(out, playerTableModel{
			PlayerID:   p.ID,
			PlayerName: p.Name,
			Position:   p.Position,
			Nation:     p.Nation,
			BirthYear:  p.BirthYear,
		})
	}
	return out
}

func seasonModels(items []warehouse.Season) []seasonTableModel {
	out := make([]seasonTableModel, 0, len(items))
	for _, s := range items {
		out = append(out, seasonTableModel{
			SeasonID:        s.ID,
			SeasonName:      s.Name,
			StartYear:       s.StartYear,
			EndYear:         s.EndYear,
			ActualStartDate: s.ActualStartDate,
			ActualEndDate:   s.ActualEndDate,
		})
	}
	return out
}

func teamMatchModels(items []warehouse.TeamMatch) []teamMatchTableModel {
	out := make([]teamMatchTableModel, 0, len(items))
	for _, f := range items {
		out = append(out, teamMatchTableModel{
			Season:       f.Season,
			MatchID:      f.MatchID,
			TeamID:       f.TeamID,
			OpponentID:   f.OpponentID,
			Round:        f.Round,
			Venue:        f.Venue,
			Result:       f.Result,
			GF:           f.GoalsFor,
			GA:           f.GoalsAgainst,
			XG:           f.XG,
			XGA:          f.XGA,
			Possession:   f.Possession,
			CaptainID:    f.CaptainID,
			Formation:    f.Formation,
			OppFormation: f.OppFormation,
		})
	}
	return out
}

func playerMatchModels(items []warehouse.PlayerMatch) []playerMatchTableModel {
	out := make([]playerMatchTableModel, 0, len(items))
	for _, f := range items {
		out = append(out, playerMatchTableModel{
			Season:                f.Season,
			MatchID:               f.MatchID,
			TeamID:                f.TeamID,
			PlayerID:              f.PlayerID,
			MinPlayed:             f.MinPlayed,
			Goals:                 f.Goals,
			Assists:               f.Assists,
			PenaltyMade:           f.PenaltyMade,
			PenaltyAttempted:      f.PenaltyAttempted,
			Shots:                 f.Shots,
			ShotsOnTarget:         f.ShotsOnTarget,
			YellowCards:           f.YellowCards,
			RedCards:              f.RedCards,
			Touches:               f.Touches,
			Tackles:               f.Tackles,
			Interceptions:         f.Interceptions,
			Blocks:                f.Blocks,
			ShotCreatingActions:   f.ShotCreatingActions,
			GoalCreatingActions:   f.GoalCreatingActions,
			PassesCompleted:       f.PassesCompleted,
			PassesAttempted:       f.PassesAttempted,
			PassCompletionPercent: f.PassCompletionPercent,
			ProgressivePasses:     f.ProgressivePasses,
			Carries:               f.Carries,
			ProgressiveCarries:    f.ProgressiveCarries,
			TakeOnsAttempted:      f.TakeOnsAttempted,
			TakeOnsSuccessful:     f.TakeOnsSuccessful,
		})
	}
	return out
}

func teamPointModels(items []warehouse.TeamPoint) []teamPointTableModel {
	out := make([]teamPointTableModel, 0, len(items))
	for _, f := range items {
		out = append(out, teamPointTableModel{
			SeasonID:      f.SeasonID,
			MatchCategory: f.Category,
			Rank:          f.Rank,
			TeamID:        f.TeamID,
			MP:            f.Played,
			W:             f.Won,
			D:             f.Drawn,
			L:             f.Lost,
			GF:            f.GoalsFor,
			GA:            f.GoalsAgainst,
			GD:            f.GoalDiff,
			Pts:           f.Points,
			RecentForm:    f.RecentForm,
		})
	}
	return out
}
