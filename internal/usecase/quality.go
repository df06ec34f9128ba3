package usecase

import (
	"context"
	"sort"

	"github.com/antzucaro/matchr"

	"github.com/riskibarqy/football-etl/internal/platform/logging"
	"github.com/riskibarqy/football-etl/internal/platform/normalize"
)

// Drop reasons recorded per table.
const (
	reasonMalformed     = "malformed_row"
	reasonHeaderLeak    = "header_row"
	reasonMissingName   = "missing_name"
	reasonMissingLabel  = "missing_label"
	reasonInvalidID     = "invalid_id"
	reasonInvalidCap    = "invalid_capacity"
	reasonInvalidDate   = "invalid_date"
	reasonInvalidSeason = "invalid_season"
	reasonInvalidCat    = "invalid_category"
	reasonDuplicate     = "duplicate_key"
	reasonTeamGap       = "team_unmatched"
	reasonOpponentGap   = "opponent_unmatched"
	reasonMatchGap      = "match_unmatched"
	reasonPlayerGap     = "player_unmatched"
	reasonSeasonGap     = "season_unmatched"
	reasonCaptainGap    = "captain_unmatched"
	reasonStadiumGap    = "stadium_unmatched"
)

// suggestionThreshold is the minimum Jaro-Winkler similarity for a
// dimension name to be offered as the likely intended match.
const suggestionThreshold = 0.85

// TableStats summarizes one output table of a build.
type TableStats struct {
	Table     string            `json:"table"`
	Rows      int               `json:"rows"`
	Dropped   map[string]int    `json:"dropped,omitempty"`
	Nulled    map[string]int    `json:"nulled,omitempty"`
	Unmatched []UnmatchedSample `json:"unmatched,omitempty"`
}

// UnmatchedSample is a join key that found no dimension row.
type UnmatchedSample struct {
	Reason     string `json:"reason"`
	Value      string `json:"value"`
	Suggestion string `json:"suggestion,omitempty"`
}

// StageReport collects the table stats of one stage.
type StageReport struct {
	Stage  string       `json:"stage"`
	Tables []TableStats `json:"tables"`
}

// tableQuality tracks recoverable problems while one table is built.
type tableQuality struct {
	table      string
	sampleSize int
	dropped    map[string]int
	nulled     map[string]int
	samples    map[string][]string
	seen       map[string]map[string]struct{}
	candidates map[string][]string
}

func newTableQuality(table string, sampleSize int) *tableQuality {
	return &tableQuality{
		table:      table,
		sampleSize: sampleSize,
		dropped:    make(map[string]int),
		nulled:     make(map[string]int),
		samples:    make(map[string][]string),
		seen:       make(map[string]map[string]struct{}),
		candidates: make(map[string][]string),
	}
}

// drop counts a filtered row.
func (q *tableQuality) drop(reason string) {
	q.dropped[reason]++
}

func (q *tableQuality) dropN(reason string, n int) {
	if n > 0 {
		q.dropped[reason] += n
	}
}

// unmatched counts a row dropped for a join gap and samples its key.
func (q *tableQuality) unmatched(reason, value string) {
	q.dropped[reason]++
	q.sample(reason, value)
}

// nullify counts an optional foreign key that was left empty.
func (q *tableQuality) nullify(reason, value string) {
	q.nulled[reason]++
	q.sample(reason, value)
}

func (q *tableQuality) sample(reason, value string) {
	if value == "" {
		return
	}
	seen := q.seen[reason]
	if seen == nil {
		seen = make(map[string]struct{})
		q.seen[reason] = seen
	}
	if _, ok := seen[value]; ok || len(q.samples[reason]) >= q.sampleSize {
		return
	}
	seen[value] = struct{}{}
	q.samples[reason] = append(q.samples[reason], value)
}

// suggestFrom registers the dimension names unmatched values of reason are
// compared against.
func (q *tableQuality) suggestFrom(reason string, names []string) {
	q.candidates[reason] = names
}

// finish logs every drop and returns the table stats.
func (q *tableQuality) finish(ctx context.Context, logger *logging.Logger, rows int) TableStats {
	stats := TableStats{Table: q.table, Rows: rows}
	if len(q.dropped) > 0 {
		stats.Dropped = q.dropped
	}
	if len(q.nulled) > 0 {
		stats.Nulled = q.nulled
	}

	for _, reason := range sortedKeys(q.samples) {
		for _, value := range q.samples[reason] {
			stats.Unmatched = append(stats.Unmatched, UnmatchedSample{
				Reason:     reason,
				Value:      value,
				Suggestion: nearestName(value, q.candidates[reason]),
			})
		}
	}

	for _, reason := range sortedKeys(q.dropped) {
		logger.WarnContext(ctx, "rows dropped",
			"table", q.table,
			"reason", reason,
			"count", q.dropped[reason],
			"sample", q.samples[reason],
		)
	}
	for _, reason := range sortedKeys(q.nulled) {
		logger.WarnContext(ctx, "foreign key left empty",
			"table", q.table,
			"reason", reason,
			"count", q.nulled[reason],
			"sample", q.samples[reason],
		)
	}
	logger.InfoContext(ctx, "table built", "table", q.table, "rows", rows)
	return stats
}

// nearestName returns the candidate most similar to value, compared on
// normalized keys, or "" when nothing is close enough.
func nearestName(value string, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	key := normalize.Key(value)
	best, bestScore := "", 0.0
	for _, candidate := range candidates {
		score := matchr.JaroWinkler(key, normalize.Key(candidate), false)
		if score > bestScore {
			best, bestScore = candidate, score
		}
	}
	if bestScore < suggestionThreshold {
		return ""
	}
	return best
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
