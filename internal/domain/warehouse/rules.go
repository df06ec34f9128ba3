package warehouse

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateKey = errors.New("duplicate primary key")
	ErrDanglingKey  = errors.New("dangling foreign key")
	ErrTableMissing = errors.New("processed table missing")
)

// CheckIntegrity verifies key uniqueness of every dimension and that every
// non-null fact foreign key resolves to a dimension row.
func CheckIntegrity(dims Dimensions, facts Facts) error {
	players := make(map[int64]struct{}, len(dims.Players))
	for _, p := range dims.Players {
		if _, ok := players[p.ID]; ok {
			return fmt.Errorf("%w: %s.player_id=%d", ErrDuplicateKey, TablePlayer, p.ID)
		}
		players[p.ID] = struct{}{}
	}
	stadiums := make(map[int64]struct{}, len(dims.Stadiums))
	for _, s := range dims.Stadiums {
		if _, ok := stadiums[s.ID]; ok {
			return fmt.Errorf("%w: %s.stadium_id=%d", ErrDuplicateKey, TableStadium, s.ID)
		}
		stadiums[s.ID] = struct{}{}
	}
	teams := make(map[int64]struct{}, len(dims.Teams))
	for _, t := range dims.Teams {
		if _, ok := teams[t.ID]; ok {
			return fmt.Errorf("%w: %s.team_id=%d", ErrDuplicateKey, TableTeam, t.ID)
		}
		teams[t.ID] = struct{}{}
		if t.StadiumID != nil {
			if _, ok := stadiums[*t.StadiumID]; !ok {
				return fmt.Errorf("%w: %s.stadium_id=%d", ErrDanglingKey, TableTeam, *t.StadiumID)
			}
		}
	}
	matches := make(map[int64]struct{}, len(dims.Matches))
	for _, m := range dims.Matches {
		if _, ok := matches[m.ID]; ok {
			return fmt.Errorf("%w: %s.match_id=%d", ErrDuplicateKey, TableMatch, m.ID)
		}
		matches[m.ID] = struct{}{}
	}
	seasons := make(map[int64]struct{}, len(dims.Seasons))
	for _, s := range dims.Seasons {
		if _, ok := seasons[s.ID]; ok {
			return fmt.Errorf("%w: %s.season_id=%d", ErrDuplicateKey, TableSeason, s.ID)
		}
		seasons[s.ID] = struct{}{}
	}

	for _, row := range facts.TeamMatches {
		if err := firstDangling(TableTeamMatch,
			ref{"match_id", row.MatchID, matches},
			ref{"team_id", row.TeamID, teams},
			ref{"opponent_id", row.OpponentID, teams},
			ref{"season", row.Season, seasons},
		); err != nil {
			return err
		}
		if row.CaptainID != nil {
			if _, ok := players[*row.CaptainID]; !ok {
				return fmt.Errorf("%w: %s.captain_id=%d", ErrDanglingKey, TableTeamMatch, *row.CaptainID)
			}
		}
	}
	for _, row := range facts.PlayerMatches {
		if err := firstDangling(TablePlayerMatch,
			ref{"match_id", row.MatchID, matches},
			ref{"team_id", row.TeamID, teams},
			ref{"player_id", row.PlayerID, players},
			ref{"season", row.Season, seasons},
		); err != nil {
			return err
		}
	}
	for _, row := range facts.TeamPoints {
		if err := firstDangling(TableTeamPoint,
			ref{"team_id", row.TeamID, teams},
			ref{"season_id", row.SeasonID, seasons},
		); err != nil {
			return err
		}
	}
	return nil
}

type ref struct {
	column string
	value  int64
	keys   map[int64]struct{}
}

func firstDangling(table string, refs ...ref) error {
	for _, r := range refs {
		if _, ok := r.keys[r.value]; !ok {
			return fmt.Errorf("%w: %s.%s=%d", ErrDanglingKey, table, r.column, r.value)
		}
	}
	return nil
}
