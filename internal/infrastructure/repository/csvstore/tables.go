package csvstore

import (
	"github.com/riskibarqy/football-etl/internal/domain/warehouse"
)

var playerCodec = codec[warehouse.Player]{
	table:   warehouse.TablePlayer,
	columns: []string{"player_id", "player_name", "position", "nation", "birth_year"},
	encode: func(p warehouse.Player) []string {
		return []string{fmtInt(p.ID), p.Name, p.Position, p.Nation, fmtIntPtr(p.BirthYear)}
	},
	decode: func(r *record) (warehouse.Player, error) {
		p := warehouse.Player{
			ID:        r.int("player_id"),
			Name:      r.str("player_name"),
			Position:  r.str("position"),
			Nation:    r.str("nation"),
			BirthYear: r.intPtr("birth_year"),
		}
		return p, r.err
	},
}

var teamCodec = codec[warehouse.Team]{
	table:   warehouse.TableTeam,
	columns: []string{"team_id", "team_name", "founded_year", "stadium_id", "short_name"},
	encode: func(t warehouse.Team) []string {
		return []string{fmtInt(t.ID), t.Name, fmtIntPtr(t.FoundedYear), fmtIntPtr(t.StadiumID), t.ShortName}
	},
	decode: func(r *record) (warehouse.Team, error) {
		t := warehouse.Team{
			ID:          r.int("team_id"),
			Name:        r.str("team_name"),
			FoundedYear: r.intPtr("founded_year"),
			StadiumID:   r.intPtr("stadium_id"),
			ShortName:   r.str("short_name"),
		}
		return t, r.err
	},
}

var stadiumCodec = codec[warehouse.Stadium]{
	table:   warehouse.TableStadium,
	columns: []string{"stadium_id", "stadium_name", "capacity"},
	encode: func(s warehouse.Stadium) []string {
		return []string{fmtInt(s.ID), s.Name, fmtInt(s.Capacity)}
	},
	decode: func(r *record) (warehouse.Stadium, error) {
		s := warehouse.Stadium{
			ID:       r.int("stadium_id"),
			Name:     r.str("stadium_name"),
			Capacity: r.int("capacity"),
		}
		return s, r.err
	},
}

var matchCodec = codec[warehouse.Match]{
	table:   warehouse.TableMatch,
	columns: []string{"match_id", "match_label", "match_date", "round", "weekday"},
	encode: func(m warehouse.Match) []string {
		return []string{fmtInt(m.ID), m.Label, fmtDate(m.Date), m.Round, m.Weekday}
	},
	decode: func(r *record) (warehouse.Match, error) {
		m := warehouse.Match{
			ID:      r.int("match_id"),
			Label:   r.str("match_label"),
			Date:    r.date("match_date"),
			Round:   r.str("round"),
			Weekday: r.str("weekday"),
		}
		return m, r.err
	},
}

var seasonCodec = codec[warehouse.Season]{
	table:   warehouse.TableSeason,
	columns: []string{"season_id", "season_name", "start_year", "end_year", "actual_start_date", "actual_end_date"},
	encode: func(s warehouse.Season) []string {
		return []string{
			fmtInt(s.ID), s.Name, fmtInt(int64(s.StartYear)), fmtInt(int64(s.EndYear)),
			fmtDatePtr(s.ActualStartDate), fmtDatePtr(s.ActualEndDate),
		}
	},
	decode: func(r *record) (warehouse.Season, error) {
		s := warehouse.Season{
			ID:              r.int("season_id"),
			Name:            r.str("season_name"),
			StartYear:       int(r.int("start_year")),
			EndYear:         int(r.int("end_year")),
			ActualStartDate: r.datePtr("actual_start_date"),
			ActualEndDate:   r.datePtr("actual_end_date"),
		}
		return s, r.err
	},
}

var teamMatchCodec = codec[warehouse.TeamMatch]{
	table: warehouse.TableTeamMatch,
	columns: []string{
		"season", "match_id", "team_id", "opponent_id", "round", "venue", "result",
		"gf", "ga", "xg", "xga", "possession", "captain_id", "formation", "opp_formation",
	},
	encode: func(f warehouse.TeamMatch) []string {
		return []string{
			fmtInt(f.Season), fmtInt(f.MatchID), fmtInt(f.TeamID), fmtInt(f.OpponentID),
			f.Round, f.Venue, f.Result,
			fmtIntPtr(f.GoalsFor), fmtIntPtr(f.GoalsAgainst),
			fmtFloatPtr(f.XG), fmtFloatPtr(f.XGA), fmtFloatPtr(f.Possession),
			fmtIntPtr(f.CaptainID), f.Formation, f.OppFormation,
		}
	},
	decode: func(r *record) (warehouse.TeamMatch, error) {
		f := warehouse.TeamMatch{
			Season:       r.int("season"),
			MatchID:      r.int("match_id"),
			TeamID:       r.int("team_id"),
			OpponentID:   r.int("opponent_id"),
			Round:        r.str("round"),
			Venue:        r.str("venue"),
			Result:       r.str("result"),
			GoalsFor:     r.intPtr("gf"),
			GoalsAgainst: r.intPtr("ga"),
			XG:           r.floatPtr("xg"),
			XGA:          r.floatPtr("xga"),
			Possession:   r.floatPtr("possession"),
			CaptainID:    r.intPtr("captain_id"),
			Formation:    r.str("formation"),
			OppFormation: r.str("opp_formation"),
		}
		return f, r.err
	},
}

var playerMatchCodec = codec[warehouse.PlayerMatch]{
	table: warehouse.TablePlayerMatch,
	columns: []string{
		"season", "match_id", "team_id", "player_id", "min_played",
		"goals", "assists", "penalty_made", "penalty_attempted", "shots", "shots_on_target",
		"yellow_cards", "red_cards", "touches", "tackles", "interceptions", "blocks",
		"shot_creating_actions", "goal_creating_actions",
		"passes_completed", "passes_attempted", "pass_completion_percent", "progressive_passes",
		"carries", "progressive_carries", "take_ons_attempted", "take_ons_successful",
	},
	encode: func(f warehouse.PlayerMatch) []string {
		return []string{
			fmtInt(f.Season), fmtInt(f.MatchID), fmtInt(f.TeamID), fmtInt(f.PlayerID),
			fmtIntPtr(f.MinPlayed),
			fmtIntPtr(f.Goals), fmtIntPtr(f.Assists), fmtIntPtr(f.PenaltyMade), fmtIntPtr(f.PenaltyAttempted),
			fmtIntPtr(f.Shots), fmtIntPtr(f.ShotsOnTarget),
			fmtIntPtr(f.YellowCards), fmtIntPtr(f.RedCards), fmtIntPtr(f.Touches),
			fmtIntPtr(f.Tackles), fmtIntPtr(f.Interceptions), fmtIntPtr(f.Blocks),
			fmtIntPtr(f.ShotCreatingActions), fmtIntPtr(f.GoalCreatingActions),
			fmtIntPtr(f.PassesCompleted), fmtIntPtr(f.PassesAttempted),
			fmtFloatPtr(f.PassCompletionPercent), fmtIntPtr(f.ProgressivePasses),
			fmtIntPtr(f.Carries), fmtIntPtr(f.ProgressiveCarries),
			fmtIntPtr(f.TakeOnsAttempted), fmtIntPtr(f.TakeOnsSuccessful),
		}
	},
	decode: func(r *record) (warehouse.PlayerMatch, error) {
		f := warehouse.PlayerMatch{
			Season:                r.int("season"),
			MatchID:               r.int("match_id"),
			TeamID:                r.int("team_id"),
			PlayerID:              r.int("player_id"),
			MinPlayed:             r.intPtr("min_played"),
			Goals:                 r.intPtr("goals"),
			Assists:               r.intPtr("assists"),
			PenaltyMade:           r.intPtr("penalty_made"),
			PenaltyAttempted:      r.intPtr("penalty_attempted"),
			Shots:                 r.intPtr("shots"),
			ShotsOnTarget:         r.intPtr("shots_on_target"),
			YellowCards:           r.intPtr("yellow_cards"),
			RedCards:              r.intPtr("red_cards"),
			Touches:               r.intPtr("touches"),
			Tackles:               r.intPtr("tackles"),
			Interceptions:         r.intPtr("interceptions"),
			Blocks:                r.intPtr("blocks"),
			ShotCreatingActions:   r.intPtr("shot_creating_actions"),
			GoalCreatingActions:   r.intPtr("goal_creating_actions"),
			PassesCompleted:       r.intPtr("passes_completed"),
			PassesAttempted:       r.intPtr("passes_attempted"),
			PassCompletionPercent: r.floatPtr("pass_completion_percent"),
			ProgressivePasses:     r.intPtr("progressive_passes"),
			Carries:               r.intPtr("carries"),
			ProgressiveCarries:    r.intPtr("progressive_carries"),
			TakeOnsAttempted:      r.intPtr("take_ons_attempted"),
			TakeOnsSuccessful:     r.intPtr("take_ons_successful"),
		}
		return f, r.err
	},
}

var teamPointCodec = codec[warehouse.TeamPoint]{
	table: warehouse.TableTeamPoint,
	columns: []string{
		"season_id", "match_category", "rank", "team_id", "mp", "w", "d", "l",
		"gf", "ga", "gd", "pts", "recent_form",
	},
	encode: func(f warehouse.TeamPoint) []string {
		return []string{
			fmtInt(f.SeasonID), f.Category, fmtIntPtr(f.Rank), fmtInt(f.TeamID),
			fmtIntPtr(f.Played), fmtIntPtr(f.Won), fmtIntPtr(f.Drawn), fmtIntPtr(f.Lost),
			fmtIntPtr(f.GoalsFor), fmtIntPtr(f.GoalsAgainst), fmtIntPtr(f.GoalDiff), fmtIntPtr(f.Points),
			f.RecentForm,
		}
	},
	decode: func(r *record) (warehouse.TeamPoint, error) {
		f := warehouse.TeamPoint{
			SeasonID:     r.int("season_id"),
			Category:     r.str("match_category"),
			Rank:         r.intPtr("rank"),
			TeamID:       r.int("team_id"),
			Played:       r.intPtr("mp"),
			Won:          r.intPtr("w"),
			Drawn:        r.intPtr("d"),
			Lost:         r.intPtr("l"),
			GoalsFor:     r.intPtr("gf"),
			GoalsAgainst: r.intPtr("ga"),
			GoalDiff:     r.intPtr("gd"),
			Points:       r.intPtr("pts"),
			RecentForm:   r.str("recent_form"),
		}
		return f, r.err
	},
}
