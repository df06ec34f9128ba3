package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/football-etl/internal/domain/rawdata"
	"github.com/riskibarqy/football-etl/internal/domain/surrogate"
	"github.com/riskibarqy/football-etl/internal/domain/warehouse"
	"github.com/riskibarqy/football-etl/internal/platform/fieldparse"
	"github.com/riskibarqy/football-etl/internal/platform/logging"
	"github.com/riskibarqy/football-etl/internal/platform/normalize"
)

// DefaultUnmatchedSampleSize bounds the unmatched values kept per reason.
const DefaultUnmatchedSampleSize = 5

// DimensionService rebuilds every dimension table from the raw extracts.
type DimensionService struct {
	raw        rawdata.Repository
	store      warehouse.Repository
	normalizer *normalize.Normalizer
	allocator  surrogate.Allocator
	logger     *logging.Logger
	sampleSize int
}

func NewDimensionService(
	raw rawdata.Repository,
	store warehouse.Repository,
	normalizer *normalize.Normalizer,
	allocator surrogate.Allocator,
	logger *logging.Logger,
	sampleSize int,
) *DimensionService {
	if logger == nil {
		logger = logging.Default()
	}
	if sampleSize <= 0 {
		sampleSize = DefaultUnmatchedSampleSize
	}
	return &DimensionService{
		raw:        raw,
		store:      store,
		normalizer: normalizer,
		allocator:  allocator,
		logger:     logger,
		sampleSize: sampleSize,
	}
}

// BuildDimensions builds players, teams, stadiums, matches and seasons in
// that order and replaces their processed files. Nothing is written unless
// every table was built.
func (s *DimensionService) BuildDimensions(ctx context.Context) (warehouse.Dimensions, StageReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DimensionService.BuildDimensions")
	var err error
	defer func() { endSpan(span, err) }()

	report := StageReport{Stage: "dimensions"}
	var dims warehouse.Dimensions

	var stats TableStats
	if dims.Players, stats, err = s.buildPlayers(ctx); err != nil {
		return warehouse.Dimensions{}, report, err
	}
	report.Tables = append(report.Tables, stats)

	teams, teamQuality, err := s.buildTeams(ctx)
	if err != nil {
		return warehouse.Dimensions{}, report, err
	}

	if dims.Stadiums, stats, err = s.buildStadiums(ctx); err != nil {
		return warehouse.Dimensions{}, report, err
	}
	dims.Teams = s.linkStadiums(teams, dims.Stadiums, teamQuality)
	report.Tables = append(report.Tables, teamQuality.finish(ctx, s.logger, len(dims.Teams)), stats)

	matchRows, err := openRequired(ctx, s.raw, rawdata.SourceTeamMatch, teamMatchSchema)
	if err != nil {
		return warehouse.Dimensions{}, report, err
	}
	if dims.Matches, stats, err = s.buildMatches(ctx, matchRows); err != nil {
		return warehouse.Dimensions{}, report, err
	}
	report.Tables = append(report.Tables, stats)

	if dims.Seasons, stats, err = s.buildSeasons(ctx, matchRows); err != nil {
		return warehouse.Dimensions{}, report, err
	}
	report.Tables = append(report.Tables, stats)

	if err = s.save(ctx, dims); err != nil {
		return warehouse.Dimensions{}, report, err
	}
	return dims, report, nil
}

func (s *DimensionService) save(ctx context.Context, dims warehouse.Dimensions) error {
	if err := s.store.SavePlayers(ctx, dims.Players); err != nil {
		return fmt.Errorf("save players: %w", err)
	}
	if err := s.store.SaveTeams(ctx, dims.Teams); err != nil {
		return fmt.Errorf("save teams: %w", err)
	}
	if err := s.store.SaveStadiums(ctx, dims.Stadiums); err != nil {
		return fmt.Errorf("save stadiums: %w", err)
	}
	if err := s.store.SaveMatches(ctx, dims.Matches); err != nil {
		return fmt.Errorf("save matches: %w", err)
	}
	if err := s.store.SaveSeasons(ctx, dims.Seasons); err != nil {
		return fmt.Errorf("save seasons: %w", err)
	}
	return nil
}

type playerCandidate struct {
	key    string
	player warehouse.Player
}

// buildPlayers merges the season-aggregate source (which carries birth
// years) with the match-level source. The first occurrence of a name wins,
// so season attributes take precedence.
func (s *DimensionService) buildPlayers(ctx context.Context) ([]warehouse.Player, TableStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DimensionService.buildPlayers",
		attribute.String("table", warehouse.TablePlayer))
	defer span.End()

	seasonRows, err := openRequired(ctx, s.raw, rawdata.SourcePlayerSeason, playerSeasonSchema)
	if err != nil {
		return nil, TableStats{}, err
	}
	matchRows, err := openRequired(ctx, s.raw, rawdata.SourcePlayerMatch, playerMatchSchema)
	if err != nil {
		return nil, TableStats{}, err
	}

	q := newTableQuality(warehouse.TablePlayer, s.sampleSize)
	q.dropN(reasonMalformed, seasonRows.table.Malformed+matchRows.table.Malformed)

	seen := make(map[string]struct{})
	var candidates []playerCandidate
	collect := func(src boundSource, withBirth bool) {
		names := src.table.Names()
		for _, row := range src.table.Rows {
			if isHeaderLeak(row, names) || equalFoldTrim(src.get(row, fPlayer), "player") {
				q.drop(reasonHeaderLeak)
				continue
			}
			name := strings.Join(strings.Fields(src.get(row, fPlayer)), " ")
			if isMissing(name) {
				q.drop(reasonMissingName)
				continue
			}
			key := s.normalizer.PlayerKey(name)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			p := warehouse.Player{
				Name:     name,
				Position: cleanText(src.get(row, fPosition)),
				Nation:   cleanText(src.get(row, fNation)),
			}
			if withBirth {
				p.BirthYear = intPtr(src.get(row, fBorn))
			}
			candidates = append(candidates, playerCandidate{key: key, player: p})
		}
	}
	collect(seasonRows, true)
	collect(matchRows, false)

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].key != candidates[j].key {
			return candidates[i].key < candidates[j].key
		}
		return candidates[i].player.Name < candidates[j].player.Name
	})

	keys := make([]string, len(candidates))
	for i, c := range candidates {
		keys[i] = c.key
	}
	ids, err := s.allocator.Assign(ctx, surrogate.EntityPlayer, keys)
	if err != nil {
		return nil, TableStats{}, fmt.Errorf("assign player ids: %w", err)
	}

	players := make([]warehouse.Player, len(candidates))
	for i, c := range candidates {
		c.player.ID = ids[c.key]
		players[i] = c.player
	}
	return players, q.finish(ctx, s.logger, len(players)), nil
}

// buildTeams reads the team reference extract. Stadium links are resolved
// later by linkStadiums, so the returned quality tracker is left open.
func (s *DimensionService) buildTeams(ctx context.Context) ([]warehouse.Team, *tableQuality, error) {
	src, err := openRequired(ctx, s.raw, rawdata.SourceTeamRef, teamRefSchema)
	if err != nil {
		return nil, nil, err
	}

	q := newTableQuality(warehouse.TableTeam, s.sampleSize)
	q.dropN(reasonMalformed, src.table.Malformed)

	names := src.table.Names()
	seen := make(map[int64]struct{})
	var teams []warehouse.Team
	for _, row := range src.table.Rows {
		if isHeaderLeak(row, names) {
			q.drop(reasonHeaderLeak)
			continue
		}
		rawID := src.get(row, fClubID)
		id, ok := s.normalizer.ExternalID(rawID)
		if !ok {
			q.drop(reasonInvalidID)
			continue
		}
		if _, dup := seen[id]; dup {
			q.drop(reasonDuplicate)
			continue
		}
		label := src.get(row, fClubLabel)
		if isMissing(label) {
			q.drop(reasonMissingName)
			continue
		}
		seen[id] = struct{}{}

		team := warehouse.Team{
			ID:          id,
			Name:        s.normalizer.TeamDisplayName(label),
			FoundedYear: intPtr(src.get(row, fFounded)),
		}
		if stadiumID, ok := s.normalizer.ExternalID(src.get(row, fVenueID)); ok {
			team.StadiumID = &stadiumID
		}
		// The extract's own code wins; the catalog only fills gaps.
		team.ShortName = strings.ToUpper(cleanText(src.get(row, fShortCode)))
		if team.ShortName == "" {
			team.ShortName, _ = s.normalizer.ShortCode(label)
		}
		teams = append(teams, team)
	}
	return teams, q, nil
}

// linkStadiums clears stadium references that did not survive the stadium
// filters; stadium_id is optional, so the team row is kept.
func (s *DimensionService) linkStadiums(teams []warehouse.Team, stadiums []warehouse.Stadium, q *tableQuality) []warehouse.Team {
	known := make(map[int64]struct{}, len(stadiums))
	for _, st := range stadiums {
		known[st.ID] = struct{}{}
	}
	out := make([]warehouse.Team, len(teams))
	for i, team := range teams {
		if team.StadiumID != nil {
			if _, ok := known[*team.StadiumID]; !ok {
				q.nullify(reasonStadiumGap, fmt.Sprintf("Q%d", *team.StadiumID))
				team.StadiumID = nil
			}
		}
		out[i] = team
	}
	return out
}

func (s *DimensionService) buildStadiums(ctx context.Context) ([]warehouse.Stadium, TableStats, error) {
	src, err := openRequired(ctx, s.raw, rawdata.SourceTeamRef, stadiumRefSchema)
	if err != nil {
		return nil, TableStats{}, err
	}

	q := newTableQuality(warehouse.TableStadium, s.sampleSize)
	q.dropN(reasonMalformed, src.table.Malformed)

	names := src.table.Names()
	seen := make(map[int64]struct{})
	var stadiums []warehouse.Stadium
	for _, row := range src.table.Rows {
		capacity := src.get(row, fCapacity)
		if isHeaderLeak(row, names) || equalFoldTrim(capacity, "capacity") {
			q.drop(reasonHeaderLeak)
			continue
		}
		id, ok := s.normalizer.ExternalID(src.get(row, fVenueID))
		if !ok {
			q.drop(reasonInvalidID)
			continue
		}
		seats, ok := fieldparse.Int(capacity)
		if !ok {
			q.drop(reasonInvalidCap)
			continue
		}
		if _, dup := seen[id]; dup {
			q.drop(reasonDuplicate)
			continue
		}
		seen[id] = struct{}{}

		stadiums = append(stadiums, warehouse.Stadium{
			ID:       id,
			Name:     cleanText(src.get(row, fVenueLabel)),
			Capacity: seats,
		})
	}
	return stadiums, q.finish(ctx, s.logger, len(stadiums)), nil
}

// buildMatches derives the match dimension from the team-match extract:
// dedup by label (first kept), drop unparseable dates, then number densely.
func (s *DimensionService) buildMatches(ctx context.Context, src boundSource) ([]warehouse.Match, TableStats, error) {
	q := newTableQuality(warehouse.TableMatch, s.sampleSize)
	q.dropN(reasonMalformed, src.table.Malformed)

	names := src.table.Names()
	seen := make(map[string]struct{})
	var keys []string
	var matches []warehouse.Match
	for _, row := range src.table.Rows {
		if isHeaderLeak(row, names) {
			q.drop(reasonHeaderLeak)
			continue
		}
		label := strings.TrimSpace(src.get(row, fGame))
		if isMissing(label) {
			q.drop(reasonMissingLabel)
			continue
		}
		key := s.normalizer.MatchKey(label)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		date, ok := fieldparse.ParseDate(src.get(row, fDate))
		if !ok {
			q.drop(reasonInvalidDate)
			continue
		}
		round, ok := fieldparse.ParseRound(src.get(row, fRound))
		if !ok {
			round = cleanText(src.get(row, fRound))
		}
		weekday := cleanText(src.get(row, fDay))
		if weekday == "" {
			weekday = date.Weekday().String()[:3]
		}

		keys = append(keys, key)
		matches = append(matches, warehouse.Match{
			Label:   label,
			Date:    date,
			Round:   round,
			Weekday: weekday,
		})
	}

	ids, err := s.allocator.Assign(ctx, surrogate.EntityMatch, keys)
	if err != nil {
		return nil, TableStats{}, fmt.Errorf("assign match ids: %w", err)
	}
	for i := range matches {
		matches[i].ID = ids[keys[i]]
	}
	return matches, q.finish(ctx, s.logger, len(matches)), nil
}

// buildSeasons collects every season referenced by the fact sources. Seasons
// seen in match data carry their first and last match dates.
func (s *DimensionService) buildSeasons(ctx context.Context, teamMatches boundSource) ([]warehouse.Season, TableStats, error) {
	q := newTableQuality(warehouse.TableSeason, s.sampleSize)

	type span struct{ first, last *time.Time }
	seasons := make(map[fieldparse.Season]*span)
	note := func(raw string, date *time.Time) {
		if equalFoldTrim(raw, "season") {
			return
		}
		code, ok := fieldparse.ParseSeason(raw)
		if !ok {
			q.sample(reasonInvalidSeason, raw)
			return
		}
		sp, ok := seasons[code]
		if !ok {
			sp = &span{}
			seasons[code] = sp
		}
		if date == nil {
			return
		}
		if sp.first == nil || date.Before(*sp.first) {
			d := *date
			sp.first = &d
		}
		if sp.last == nil || date.After(*sp.last) {
			d := *date
			sp.last = &d
		}
	}

	for _, row := range teamMatches.table.Rows {
		var date *time.Time
		if d, ok := fieldparse.ParseDate(teamMatches.get(row, fDate)); ok {
			date = &d
		}
		note(teamMatches.get(row, fSeason), date)
	}

	playerMatches, err := openRequired(ctx, s.raw, rawdata.SourcePlayerMatch, playerMatchSchema)
	if err != nil {
		return nil, TableStats{}, err
	}
	for _, row := range playerMatches.table.Rows {
		note(playerMatches.get(row, fSeason), nil)
	}

	standings, ok, err := openOptional(ctx, s.raw, rawdata.SourceStandings, standingsSchema)
	if err != nil {
		return nil, TableStats{}, err
	}
	if ok {
		for _, row := range standings.table.Rows {
			note(standings.get(row, fSeason), nil)
		}
	}

	out := make([]warehouse.Season, 0, len(seasons))
	for code, sp := range seasons {
		out = append(out, warehouse.Season{
			ID:              int64(code),
			Name:            code.Name(),
			StartYear:       code.StartYear(),
			EndYear:         code.EndYear(),
			ActualStartDate: sp.first,
			ActualEndDate:   sp.last,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartYear < out[j].StartYear
	})
	return out, q.finish(ctx, s.logger, len(out)), nil
}

func cleanText(v string) string {
	if isMissing(v) {
		return ""
	}
	return strings.Join(strings.Fields(v), " ")
}
