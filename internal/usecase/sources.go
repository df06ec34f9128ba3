package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/football-etl/internal/domain/rawdata"
	"github.com/riskibarqy/football-etl/internal/platform/tabular"
)

// Field keys shared by the raw schemas below.
const (
	fSeason       = "season"
	fGame         = "game"
	fTeam         = "team"
	fOpponent     = "opponent"
	fPlayer       = "player"
	fPosition     = "pos"
	fNation       = "nation"
	fBorn         = "born"
	fRound        = "round"
	fVenue        = "venue"
	fResult       = "result"
	fGF           = "gf"
	fGA           = "ga"
	fXG           = "xg"
	fXGA          = "xga"
	fPossession   = "poss"
	fCaptain      = "captain"
	fFormation    = "formation"
	fOppFormation = "opp_formation"
	fDate         = "date"
	fDay          = "day"

	fClubID     = "club_id"
	fClubLabel  = "club_label"
	fFounded    = "founding_year"
	fVenueID    = "venue_id"
	fVenueLabel = "venue_label"
	fCapacity   = "capacity"
	fShortCode  = "short_code"
	fCategory   = "category"
	fRank       = "rank"
	fPlayed     = "mp"
	fWon        = "w"
	fDrawn      = "d"
	fLost       = "l"
	fGoalPair   = "gf_ga"
	fGoalDiff   = "gd"
	fPoints     = "pts"
	fRecentForm = "recent_form"
	fMinutes    = "min"
	fGoals      = "gls"
	fAssists    = "ast"
	fPK         = "pk"
	fPKAtt      = "pkatt"
	fShots      = "sh"
	fSoT        = "sot"
	fYellow     = "crdy"
	fRed        = "crdr"
	fTouches    = "touches"
	fTackles    = "tkl"
	fIntercepts = "int"
	fBlocks     = "blocks"
	fSCA        = "sca"
	fGCA        = "gca"
	fPassCmp    = "pass_cmp"
	fPassAtt    = "pass_att"
	fPassPct    = "pass_pct"
	fPrgP       = "prgp"
	fCarries    = "carries"
	fPrgC       = "prgc"
	fTakeOnAtt  = "takeon_att"
	fTakeOnSucc = "takeon_succ"
)

func required(key string, candidates ...tabular.ColumnRef) tabular.Field {
	return tabular.Field{Key: key, Candidates: candidates}
}

func optional(key string, candidates ...tabular.ColumnRef) tabular.Field {
	return tabular.Field{Key: key, Candidates: candidates, Optional: true}
}

var playerSeasonSchema = tabular.Schema{
	Source: rawdata.SourcePlayerSeason.String(),
	Fields: []tabular.Field{
		required(fPlayer, tabular.Col("player")),
		optional(fPosition, tabular.Col("pos")),
		optional(fNation, tabular.Col("nation")),
		optional(fBorn, tabular.Col("born")),
	},
}

var playerMatchSchema = tabular.Schema{
	Source: rawdata.SourcePlayerMatch.String(),
	Fields: []tabular.Field{
		required(fSeason, tabular.Col("season")),
		required(fGame, tabular.Col("game")),
		required(fTeam, tabular.Col("team")),
		required(fPlayer, tabular.Col("player")),
		optional(fPosition, tabular.Col("pos")),
		optional(fNation, tabular.Col("nation")),
		optional(fMinutes, tabular.Col("min"), tabular.Sub("Playing Time", "Min")),
		optional(fGoals, tabular.Sub("Performance", "Gls")),
		optional(fAssists, tabular.Sub("Performance", "Ast")),
		optional(fPK, tabular.Sub("Performance", "PK")),
		optional(fPKAtt, tabular.Sub("Performance", "PKatt")),
		optional(fShots, tabular.Sub("Performance", "Sh")),
		optional(fSoT, tabular.Sub("Performance", "SoT")),
		optional(fYellow, tabular.Sub("Performance", "CrdY")),
		optional(fRed, tabular.Sub("Performance", "CrdR")),
		optional(fTouches, tabular.Sub("Performance", "Touches")),
		optional(fTackles, tabular.Sub("Performance", "Tkl")),
		optional(fIntercepts, tabular.Sub("Performance", "Int")),
		optional(fBlocks, tabular.Sub("Performance", "Blocks")),
		optional(fSCA, tabular.Sub("SCA", "SCA")),
		optional(fGCA, tabular.Sub("SCA", "GCA")),
		optional(fPassCmp, tabular.Sub("Passes", "Cmp")),
		optional(fPassAtt, tabular.Sub("Passes", "Att")),
		optional(fPassPct, tabular.Sub("Passes", "Cmp%")),
		optional(fPrgP, tabular.Sub("Passes", "PrgP")),
		optional(fCarries, tabular.Sub("Carries", "Carries")),
		optional(fPrgC, tabular.Sub("Carries", "PrgC")),
		optional(fTakeOnAtt, tabular.Sub("Take-Ons", "Att")),
		optional(fTakeOnSucc, tabular.Sub("Take-Ons", "Succ")),
	},
}

var teamMatchSchema = tabular.Schema{
	Source: rawdata.SourceTeamMatch.String(),
	Fields: []tabular.Field{
		required(fSeason, tabular.Col("season")),
		required(fGame, tabular.Col("game")),
		required(fTeam, tabular.Col("team")),
		required(fOpponent, tabular.Col("opponent")),
		required(fDate, tabular.Col("date")),
		optional(fRound, tabular.Col("round")),
		optional(fVenue, tabular.Col("venue")),
		optional(fResult, tabular.Col("result")),
		optional(fGF, tabular.Col("GF")),
		optional(fGA, tabular.Col("GA")),
		optional(fXG, tabular.Col("xG")),
		optional(fXGA, tabular.Col("xGA")),
		optional(fPossession, tabular.Col("Poss")),
		optional(fCaptain, tabular.Col("Captain")),
		optional(fFormation, tabular.Col("Formation")),
		optional(fOppFormation, tabular.Col("Opp Formation"), tabular.Col("opp_formation")),
		optional(fDay, tabular.Col("day")),
	},
}

var teamRefSchema = tabular.Schema{
	Source: rawdata.SourceTeamRef.String(),
	Fields: []tabular.Field{
		required(fClubID, tabular.Col("club_id")),
		required(fClubLabel, tabular.Col("club_label")),
		optional(fFounded, tabular.Col("founding_year")),
		optional(fVenueID, tabular.Col("venue_id")),
		optional(fShortCode, tabular.Col("short_name"), tabular.Col("short_code")),
	},
}

var stadiumRefSchema = tabular.Schema{
	Source: rawdata.SourceTeamRef.String(),
	Fields: []tabular.Field{
		required(fVenueID, tabular.Col("venue_id")),
		required(fVenueLabel, tabular.Col("venue_label")),
		required(fCapacity, tabular.Col("capacity")),
	},
}

var standingsSchema = tabular.Schema{
	Source: rawdata.SourceStandings.String(),
	Fields: []tabular.Field{
		required(fSeason, tabular.Col("Mùa giải"), tabular.Col("season")),
		required(fCategory, tabular.Col("Match_Category"), tabular.Col("category")),
		required(fTeam, tabular.Col("Team")),
		optional(fRank, tabular.Col("Rank")),
		optional(fPlayed, tabular.Col("MP")),
		optional(fWon, tabular.Col("W")),
		optional(fDrawn, tabular.Col("D")),
		optional(fLost, tabular.Col("L")),
		optional(fGoalPair, tabular.Col("GF:GA")),
		optional(fGoalDiff, tabular.Col("GD")),
		optional(fPoints, tabular.Col("Pts")),
		optional(fRecentForm, tabular.Col("Recent_Form"), tabular.Col("recent_form")),
	},
}

// boundSource is a raw table bound to its schema.
type boundSource struct {
	table   *tabular.Table
	binding tabular.Binding
}

func (s boundSource) get(row []string, key string) string {
	return s.binding.Get(row, key)
}

// openRequired opens and binds a raw source whose absence aborts the run.
func openRequired(ctx context.Context, repo rawdata.Repository, source rawdata.Source, schema tabular.Schema) (boundSource, error) {
	table, err := repo.Open(ctx, source)
	if err != nil {
		if errors.Is(err, rawdata.ErrSourceNotFound) {
			return boundSource{}, fmt.Errorf("%w: %s", ErrRequiredSourceMissing, repo.Path(source))
		}
		return boundSource{}, fmt.Errorf("open %s: %w", source, err)
	}
	return bind(table, schema)
}

// openOptional is openRequired for sources whose absence is tolerated; ok
// is false when the file does not exist.
func openOptional(ctx context.Context, repo rawdata.Repository, source rawdata.Source, schema tabular.Schema) (boundSource, bool, error) {
	table, err := repo.Open(ctx, source)
	if err != nil {
		if errors.Is(err, rawdata.ErrSourceNotFound) {
			return boundSource{}, false, nil
		}
		return boundSource{}, false, fmt.Errorf("open %s: %w", source, err)
	}
	bound, err := bind(table, schema)
	if err != nil {
		return boundSource{}, false, err
	}
	return bound, true, nil
}

func bind(table *tabular.Table, schema tabular.Schema) (boundSource, error) {
	binding, err := tabular.Bind(table, schema)
	if err != nil {
		return boundSource{}, fmt.Errorf("bind %s: %w", schema.Source, err)
	}
	return boundSource{table: table, binding: binding}, nil
}

// isHeaderLeak reports whether row repeats the header names, which happens
// when several exports are concatenated.
func isHeaderLeak(row []string, names []string) bool {
	if len(row) != len(names) || len(row) == 0 {
		return false
	}
	for i, cell := range row {
		if !equalFoldTrim(cell, names[i]) {
			return false
		}
	}
	return true
}
