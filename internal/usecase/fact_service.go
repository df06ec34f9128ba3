package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/football-etl/internal/domain/rawdata"
	"github.com/riskibarqy/football-etl/internal/domain/warehouse"
	"github.com/riskibarqy/football-etl/internal/platform/fieldparse"
	"github.com/riskibarqy/football-etl/internal/platform/logging"
	"github.com/riskibarqy/football-etl/internal/platform/normalize"
)

// FactService joins the raw fact extracts against the processed dimensions.
type FactService struct {
	raw        rawdata.Repository
	store      warehouse.Repository
	normalizer *normalize.Normalizer
	logger     *logging.Logger
	sampleSize int
}

func NewFactService(
	raw rawdata.Repository,
	store warehouse.Repository,
	normalizer *normalize.Normalizer,
	logger *logging.Logger,
	sampleSize int,
) *FactService {
	if logger == nil {
		logger = logging.Default()
	}
	if sampleSize <= 0 {
		sampleSize = DefaultUnmatchedSampleSize
	}
	return &FactService{
		raw:        raw,
		store:      store,
		normalizer: normalizer,
		logger:     logger,
		sampleSize: sampleSize,
	}
}

// dimensionIndex resolves normalized natural keys to dimension keys.
type dimensionIndex struct {
	teams       map[string]int64
	players     map[string]int64
	matches     map[string]int64
	seasons     map[int64]struct{}
	teamNames   []string
	playerNames []string
	matchLabels []string
}

// BuildFacts builds team-match, player-match and team-point facts in that
// order from the processed dimensions and replaces their files.
func (s *FactService) BuildFacts(ctx context.Context) (warehouse.Facts, StageReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FactService.BuildFacts")
	var err error
	defer func() { endSpan(span, err) }()

	report := StageReport{Stage: "facts"}
	idx, err := s.loadIndex(ctx)
	if err != nil {
		return warehouse.Facts{}, report, err
	}

	var facts warehouse.Facts
	var stats TableStats
	if facts.TeamMatches, stats, err = s.buildTeamMatches(ctx, idx); err != nil {
		return warehouse.Facts{}, report, err
	}
	report.Tables = append(report.Tables, stats)

	if facts.PlayerMatches, stats, err = s.buildPlayerMatches(ctx, idx); err != nil {
		return warehouse.Facts{}, report, err
	}
	report.Tables = append(report.Tables, stats)

	if facts.TeamPoints, stats, err = s.buildTeamPoints(ctx, idx); err != nil {
		return warehouse.Facts{}, report, err
	}
	report.Tables = append(report.Tables, stats)

	if err = s.store.SaveTeamMatches(ctx, facts.TeamMatches); err != nil {
		return warehouse.Facts{}, report, fmt.Errorf("save team matches: %w", err)
	}
	if err = s.store.SavePlayerMatches(ctx, facts.PlayerMatches); err != nil {
		return warehouse.Facts{}, report, fmt.Errorf("save player matches: %w", err)
	}
	if err = s.store.SaveTeamPoints(ctx, facts.TeamPoints); err != nil {
		return warehouse.Facts{}, report, fmt.Errorf("save team points: %w", err)
	}
	return facts, report, nil
}

func (s *FactService) loadIndex(ctx context.Context) (dimensionIndex, error) {
	wrap := func(table string, err error) error {
		if errors.Is(err, warehouse.ErrTableMissing) {
			return fmt.Errorf("%w: %s: %w", ErrDimensionMissing, table, err)
		}
		return fmt.Errorf("list %s: %w", table, err)
	}

	teams, err := s.store.ListTeams(ctx)
	if err != nil {
		return dimensionIndex{}, wrap(warehouse.TableTeam, err)
	}
	players, err := s.store.ListPlayers(ctx)
	if err != nil {
		return dimensionIndex{}, wrap(warehouse.TablePlayer, err)
	}
	matches, err := s.store.ListMatches(ctx)
	if err != nil {
		return dimensionIndex{}, wrap(warehouse.TableMatch, err)
	}
	seasons, err := s.store.ListSeasons(ctx)
	if err != nil {
		return dimensionIndex{}, wrap(warehouse.TableSeason, err)
	}

	idx := dimensionIndex{
		teams:   make(map[string]int64, len(teams)),
		players: make(map[string]int64, len(players)),
		matches: make(map[string]int64, len(matches)),
		seasons: make(map[int64]struct{}, len(seasons)),
	}
	for _, t := range teams {
		key := s.normalizer.TeamKey(t.Name)
		if _, dup := idx.teams[key]; !dup {
			idx.teams[key] = t.ID
		}
		idx.teamNames = append(idx.teamNames, t.Name)
	}
	for _, p := range players {
		idx.players[s.normalizer.PlayerKey(p.Name)] = p.ID
		idx.playerNames = append(idx.playerNames, p.Name)
	}
	for _, m := range matches {
		idx.matches[s.normalizer.MatchKey(m.Label)] = m.ID
		idx.matchLabels = append(idx.matchLabels, m.Label)
	}
	for _, season := range seasons {
		idx.seasons[season.ID] = struct{}{}
	}
	return idx, nil
}

func (idx dimensionIndex) season(raw string) (int64, string) {
	code, ok := fieldparse.ParseSeason(raw)
	if !ok {
		return 0, reasonInvalidSeason
	}
	if _, ok := idx.seasons[int64(code)]; !ok {
		return 0, reasonSeasonGap
	}
	return int64(code), ""
}

type teamMatchKey struct {
	season, match, team int64
}

func (s *FactService) buildTeamMatches(ctx context.Context, idx dimensionIndex) ([]warehouse.TeamMatch, TableStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FactService.buildTeamMatches",
		attribute.String("table", warehouse.TableTeamMatch))
	defer span.End()

	src, err := openRequired(ctx, s.raw, rawdata.SourceTeamMatch, teamMatchSchema)
	if err != nil {
		return nil, TableStats{}, err
	}

	q := newTableQuality(warehouse.TableTeamMatch, s.sampleSize)
	q.dropN(reasonMalformed, src.table.Malformed)
	q.suggestFrom(reasonTeamGap, idx.teamNames)
	q.suggestFrom(reasonOpponentGap, idx.teamNames)
	q.suggestFrom(reasonMatchGap, idx.matchLabels)
	q.suggestFrom(reasonCaptainGap, idx.playerNames)

	names := src.table.Names()
	seen := make(map[teamMatchKey]struct{})
	var out []warehouse.TeamMatch
	for _, row := range src.table.Rows {
		if isHeaderLeak(row, names) {
			q.drop(reasonHeaderLeak)
			continue
		}

		// Captain first: it is optional and must not affect the team joins.
		var captainID *int64
		if captain := cleanText(src.get(row, fCaptain)); captain != "" {
			if id, ok := idx.players[s.normalizer.PlayerKey(captain)]; ok {
				captainID = &id
			} else {
				q.nullify(reasonCaptainGap, captain)
			}
		}

		team := src.get(row, fTeam)
		teamID, ok := idx.teams[s.normalizer.TeamKey(team)]
		if !ok {
			q.unmatched(reasonTeamGap, team)
			continue
		}
		opponent := src.get(row, fOpponent)
		opponentID, ok := idx.teams[s.normalizer.TeamKey(opponent)]
		if !ok {
			q.unmatched(reasonOpponentGap, opponent)
			continue
		}
		game := src.get(row, fGame)
		matchID, ok := idx.matches[s.normalizer.MatchKey(game)]
		if !ok {
			q.unmatched(reasonMatchGap, game)
			continue
		}
		season, reason := idx.season(src.get(row, fSeason))
		if reason != "" {
			q.unmatched(reason, src.get(row, fSeason))
			continue
		}

		key := teamMatchKey{season: season, match: matchID, team: teamID}
		if _, dup := seen[key]; dup {
			q.drop(reasonDuplicate)
			continue
		}
		seen[key] = struct{}{}

		fact := warehouse.TeamMatch{
			Season:       season,
			MatchID:      matchID,
			TeamID:       teamID,
			OpponentID:   opponentID,
			GoalsFor:     intPtr(src.get(row, fGF)),
			GoalsAgainst: intPtr(src.get(row, fGA)),
			XG:           floatPtr(src.get(row, fXG)),
			XGA:          floatPtr(src.get(row, fXGA)),
			Possession:   floatPtr(src.get(row, fPossession)),
			CaptainID:    captainID,
			Formation:    cleanText(src.get(row, fFormation)),
			OppFormation: cleanText(src.get(row, fOppFormation)),
		}
		if round, ok := fieldparse.ParseRound(src.get(row, fRound)); ok {
			fact.Round = round
		} else {
			fact.Round = cleanText(src.get(row, fRound))
		}
		if venue, ok := fieldparse.ParseVenue(src.get(row, fVenue)); ok {
			fact.Venue = venue
		} else {
			fact.Venue = strings.ToLower(cleanText(src.get(row, fVenue)))
		}
		if result, ok := fieldparse.ParseResult(src.get(row, fResult)); ok {
			fact.Result = result
		}
		out = append(out, fact)
	}
	return out, q.finish(ctx, s.logger, len(out)), nil
}

type playerMatchKey struct {
	season, match, team, player int64
}

func (s *FactService) buildPlayerMatches(ctx context.Context, idx dimensionIndex) ([]warehouse.PlayerMatch, TableStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FactService.buildPlayerMatches",
		attribute.String("table", warehouse.TablePlayerMatch))
	defer span.End()

	src, err := openRequired(ctx, s.raw, rawdata.SourcePlayerMatch, playerMatchSchema)
	if err != nil {
		return nil, TableStats{}, err
	}

	q := newTableQuality(warehouse.TablePlayerMatch, s.sampleSize)
	q.dropN(reasonMalformed, src.table.Malformed)
	q.suggestFrom(reasonPlayerGap, idx.playerNames)
	q.suggestFrom(reasonTeamGap, idx.teamNames)
	q.suggestFrom(reasonMatchGap, idx.matchLabels)

	names := src.table.Names()
	seen := make(map[playerMatchKey]struct{})
	var out []warehouse.PlayerMatch
	for _, row := range src.table.Rows {
		// Multi-level exports sometimes repeat the header as the first data row.
		if isHeaderLeak(row, names) || equalFoldTrim(src.get(row, fSeason), "season") {
			q.drop(reasonHeaderLeak)
			continue
		}

		player := src.get(row, fPlayer)
		playerID, ok := idx.players[s.normalizer.PlayerKey(player)]
		if !ok {
			q.unmatched(reasonPlayerGap, player)
			continue
		}
		game := src.get(row, fGame)
		matchID, ok := idx.matches[s.normalizer.MatchKey(game)]
		if !ok {
			q.unmatched(reasonMatchGap, game)
			continue
		}
		team := src.get(row, fTeam)
		teamID, ok := idx.teams[s.normalizer.TeamKey(team)]
		if !ok {
			q.unmatched(reasonTeamGap, team)
			continue
		}
		season, reason := idx.season(src.get(row, fSeason))
		if reason != "" {
			q.unmatched(reason, src.get(row, fSeason))
			continue
		}

		key := playerMatchKey{season: season, match: matchID, team: teamID, player: playerID}
		if _, dup := seen[key]; dup {
			q.drop(reasonDuplicate)
			continue
		}
		seen[key] = struct{}{}

		get := func(field string) *int64 { return intPtr(src.get(row, field)) }
		out = append(out, warehouse.PlayerMatch{
			Season:                season,
			MatchID:               matchID,
			TeamID:                teamID,
			PlayerID:              playerID,
			MinPlayed:             get(fMinutes),
			Goals:                 get(fGoals),
			Assists:               get(fAssists),
			PenaltyMade:           get(fPK),
			PenaltyAttempted:      get(fPKAtt),
			Shots:                 get(fShots),
			ShotsOnTarget:         get(fSoT),
			YellowCards:           get(fYellow),
			RedCards:              get(fRed),
			Touches:               get(fTouches),
			Tackles:               get(fTackles),
			Interceptions:         get(fIntercepts),
			Blocks:                get(fBlocks),
			ShotCreatingActions:   get(fSCA),
			GoalCreatingActions:   get(fGCA),
			PassesCompleted:       get(fPassCmp),
			PassesAttempted:       get(fPassAtt),
			PassCompletionPercent: floatPtr(src.get(row, fPassPct)),
			ProgressivePasses:     get(fPrgP),
			Carries:               get(fCarries),
			ProgressiveCarries:    get(fPrgC),
			TakeOnsAttempted:      get(fTakeOnAtt),
			TakeOnsSuccessful:     get(fTakeOnSucc),
		})
	}
	return out, q.finish(ctx, s.logger, len(out)), nil
}

type teamPointKey struct {
	season   int64
	team     int64
	category string
}

// buildTeamPoints tolerates a missing standings extract and then writes a
// header-only table.
func (s *FactService) buildTeamPoints(ctx context.Context, idx dimensionIndex) ([]warehouse.TeamPoint, TableStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FactService.buildTeamPoints",
		attribute.String("table", warehouse.TableTeamPoint))
	defer span.End()

	q := newTableQuality(warehouse.TableTeamPoint, s.sampleSize)
	src, ok, err := openOptional(ctx, s.raw, rawdata.SourceStandings, standingsSchema)
	if err != nil {
		return nil, TableStats{}, err
	}
	if !ok {
		s.logger.WarnContext(ctx, "standings source missing, writing empty table",
			"table", warehouse.TableTeamPoint,
			"path", s.raw.Path(rawdata.SourceStandings),
		)
		return []warehouse.TeamPoint{}, q.finish(ctx, s.logger, 0), nil
	}

	q.dropN(reasonMalformed, src.table.Malformed)
	q.suggestFrom(reasonTeamGap, idx.teamNames)

	names := src.table.Names()
	seen := make(map[teamPointKey]struct{})
	out := []warehouse.TeamPoint{}
	for _, row := range src.table.Rows {
		if isHeaderLeak(row, names) {
			q.drop(reasonHeaderLeak)
			continue
		}
		category := strings.ToLower(cleanText(src.get(row, fCategory)))
		switch category {
		case warehouse.CategoryOverall, warehouse.CategoryHome, warehouse.CategoryAway:
		default:
			q.drop(reasonInvalidCat)
			continue
		}

		team := src.get(row, fTeam)
		teamID, ok := idx.teams[s.normalizer.TeamKey(team)]
		if !ok {
			q.unmatched(reasonTeamGap, team)
			continue
		}
		season, reason := idx.season(src.get(row, fSeason))
		if reason != "" {
			q.unmatched(reason, src.get(row, fSeason))
			continue
		}

		key := teamPointKey{season: season, team: teamID, category: category}
		if _, dup := seen[key]; dup {
			q.drop(reasonDuplicate)
			continue
		}
		seen[key] = struct{}{}

		point := warehouse.TeamPoint{
			SeasonID:   season,
			Category:   category,
			Rank:       intPtr(src.get(row, fRank)),
			TeamID:     teamID,
			Played:     intPtr(src.get(row, fPlayed)),
			Won:        intPtr(src.get(row, fWon)),
			Drawn:      intPtr(src.get(row, fDrawn)),
			Lost:       intPtr(src.get(row, fLost)),
			GoalDiff:   intPtr(src.get(row, fGoalDiff)),
			Points:     intPtr(src.get(row, fPoints)),
			RecentForm: strings.ToUpper(strings.Join(strings.Fields(cleanText(src.get(row, fRecentForm))), "")),
		}
		if gf, ga, ok := fieldparse.ParseGoalPair(src.get(row, fGoalPair)); ok {
			point.GoalsFor = &gf
			point.GoalsAgainst = &ga
		}
		out = append(out, point)
	}
	return out, q.finish(ctx, s.logger, len(out)), nil
}
