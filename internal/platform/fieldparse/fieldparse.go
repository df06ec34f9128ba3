// Package fieldparse parses the composite and loosely typed cells found in
// scraped football extracts. Every parser reports failure through its ok
// result; none of them panic on dirty input.
package fieldparse

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Season is a season code formed from the last two digits of the start and
// end years, e.g. 2425 for "2024/2025".
type Season int

func (s Season) String() string {
	return strconv.Itoa(int(s))
}

// seasonPivot splits start halves between centuries: 69 through 99 begin in
// the 1900s, 00 through 68 in the 2000s.
const seasonPivot = 69

// StartYear expands the first half of the code within 1969..2068.
func (s Season) StartYear() int {
	start := int(s) / 100
	if start >= seasonPivot {
		return 1900 + start
	}
	return 2000 + start
}

// EndYear is the year after StartYear; codes always span consecutive years.
func (s Season) EndYear() int {
	return s.StartYear() + 1
}

// Name renders the long form, e.g. "2024/2025".
func (s Season) Name() string {
	return strconv.Itoa(s.StartYear()) + "/" + strconv.Itoa(s.EndYear())
}

var (
	seasonPair     = regexp.MustCompile(`^(\d{2}|\d{4})\s*[/\-–]\s*(\d{2}|\d{4})$`)
	trailingNumber = regexp.MustCompile(`(\d+)\s*$`)
)

// ParseSeason accepts "2024/2025", "2024-2025", "24/25", "2425" and a single
// start year such as "2024" (meaning 2024/2025).
func ParseSeason(raw string) (Season, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	if m := seasonPair.FindStringSubmatch(raw); m != nil {
		start, _ := strconv.Atoi(m[1])
		end, _ := strconv.Atoi(m[2])
		season, ok := seasonCode(start%100, end%100)
		if !ok || (len(m[1]) == 4 && season.StartYear() != start) || (len(m[2]) == 4 && season.EndYear() != end) {
			return 0, false
		}
		return season, true
	}
	if len(raw) != 4 || !isDigits(raw) {
		if n, ok := Int(raw); ok && n >= 1000 && n <= 9999 {
			raw = strconv.FormatInt(n, 10)
		} else {
			return 0, false
		}
	}

	first, _ := strconv.Atoi(raw[:2])
	second, _ := strconv.Atoi(raw[2:])
	if (first+1)%100 == second {
		return seasonCode(first, second)
	}
	year, _ := strconv.Atoi(raw)
	season, ok := seasonCode(year%100, (year+1)%100)
	if !ok || season.StartYear() != year {
		return 0, false
	}
	return season, true
}

func seasonCode(start, end int) (Season, bool) {
	if (start+1)%100 != end {
		return 0, false
	}
	return Season(start*100 + end), true
}

// ParseGoalPair splits a combined "for:against" token such as "86:41".
func ParseGoalPair(raw string) (goalsFor, goalsAgainst int64, ok bool) {
	left, right, found := strings.Cut(strings.TrimSpace(raw), ":")
	if !found {
		return 0, 0, false
	}
	gf, okFor := Int(left)
	ga, okAgainst := Int(right)
	if !okFor || !okAgainst {
		return 0, 0, false
	}
	return gf, ga, true
}

// ParseRound extracts the trailing number of a round descriptor and pads it
// to two digits: "Matchweek 7" becomes "07".
func ParseRound(raw string) (string, bool) {
	m := trailingNumber.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return "", false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return "", false
	}
	if n < 10 {
		return "0" + strconv.Itoa(n), true
	}
	return strconv.Itoa(n), true
}

// ParsePrefixedID strips the non-digit prefix of an external identifier
// ("Q9617") and parses the remainder.
func ParsePrefixedID(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	digits := strings.TrimLeftFunc(raw, func(r rune) bool { return !unicode.IsDigit(r) })
	if digits == "" || !isDigits(digits) {
		return 0, false
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Int parses an integer cell. Thousands separators and an integral float
// rendering ("1997.0") are accepted; fractional values are rejected.
func Int(raw string) (int64, bool) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if raw == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}

// Float parses a decimal cell; a trailing percent sign is ignored.
func Float(raw string) (float64, bool) {
	raw = strings.TrimSuffix(strings.ReplaceAll(strings.TrimSpace(raw), ",", ""), "%")
	if raw == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

var dateLayouts = []string{
	time.DateOnly,
	time.DateTime,
	"2006-01-02T15:04:05",
	time.RFC3339,
	"02/01/2006",
	"2006/01/02",
}

// ParseDate accepts the calendar date layouts seen in the extracts and
// returns the date at UTC midnight.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			y, m, d := ts.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// ParseResult reduces a result cell ("W", "L 0-2", "d") to W, D or L.
func ParseResult(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	switch r := unicode.ToUpper([]rune(raw)[0]); r {
	case 'W', 'D', 'L':
		return string(r), true
	default:
		return "", false
	}
}

// ParseVenue normalizes a venue cell to "home" or "away".
func ParseVenue(raw string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "home", "h":
		return "home", true
	case "away", "a":
		return "away", true
	default:
		return "", false
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
