package fieldparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseSeason(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want Season
		ok   bool
	}{
		{"2024/2025", 2425, true},
		{"2024-2025", 2425, true},
		{" 24/25 ", 2425, true},
		{"2425", 2425, true},
		{"2024", 2425, true},
		{"2024.0", 2425, true},
		{"1999/2000", 9900, true},
		{"99/00", 9900, true},
		{"1998", 9899, true},
		{"2099/2100", 0, false},
		{"1899", 0, false},
		{"2000/1999", 0, false},
		{"2024/2026", 0, false},
		{"season", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseSeason(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ParseSeason(%q) = %d, %v; want %d, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestSeasonYears(t *testing.T) {
	t.Parallel()

	s := Season(2425)
	assert.Equal(t, 2024, s.StartYear())
	assert.Equal(t, 2025, s.EndYear())
	assert.Equal(t, "2024/2025", s.Name())
	assert.Equal(t, "2425", s.String())

	turn := Season(9900)
	assert.Equal(t, 1999, turn.StartYear())
	assert.Equal(t, 2000, turn.EndYear())
	assert.Equal(t, "1999/2000", turn.Name())
	assert.Equal(t, "2068/2069", Season(6869).Name())
	assert.Equal(t, "1969/1970", Season(6970).Name())
}

func TestParseGoalPair(t *testing.T) {
	t.Parallel()

	gf, ga, ok := ParseGoalPair("86:41")
	assert.True(t, ok)
	assert.Equal(t, int64(86), gf)
	assert.Equal(t, int64(41), ga)

	for _, bad := range []string{"", "86", "86:", "x:1", "86-41"} {
		_, _, ok := ParseGoalPair(bad)
		assert.False(t, ok, bad)
	}
}

func TestParseRound(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Matchweek 7":  "07",
		"Matchweek 12": "12",
		"7":            "07",
		" Round 03 ":   "03",
	}
	for in, want := range cases {
		got, ok := ParseRound(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := ParseRound("Final")
	assert.False(t, ok)
}

func TestParsePrefixedID(t *testing.T) {
	t.Parallel()

	id, ok := ParsePrefixedID("Q9617")
	assert.True(t, ok)
	assert.Equal(t, int64(9617), id)

	id, ok = ParsePrefixedID("55")
	assert.True(t, ok)
	assert.Equal(t, int64(55), id)

	for _, bad := range []string{"", "Q", "club_id", "Q12x"} {
		_, ok := ParsePrefixedID(bad)
		assert.False(t, ok, bad)
	}
}

func TestIntAndFloat(t *testing.T) {
	t.Parallel()

	n, ok := Int("1997.0")
	assert.True(t, ok)
	assert.Equal(t, int64(1997), n)

	n, ok = Int("60,704")
	assert.True(t, ok)
	assert.Equal(t, int64(60704), n)

	_, ok = Int("capacity")
	assert.False(t, ok)
	_, ok = Int("1.5")
	assert.False(t, ok)

	f, ok := Float("57.3%")
	assert.True(t, ok)
	assert.InDelta(t, 57.3, f, 1e-9)

	_, ok = Float("NaN")
	assert.False(t, ok)
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	want := time.Date(2024, time.August, 17, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2024-08-17", "2024-08-17 15:00:00", "17/08/2024", "2024/08/17"} {
		got, ok := ParseDate(in)
		assert.True(t, ok, in)
		assert.True(t, want.Equal(got), in)
	}

	_, ok := ParseDate("2024-02-30")
	assert.False(t, ok)
}

func TestParseResultAndVenue(t *testing.T) {
	t.Parallel()

	r, ok := ParseResult("w")
	assert.True(t, ok)
	assert.Equal(t, "W", r)

	r, ok = ParseResult("L 0–2")
	assert.True(t, ok)
	assert.Equal(t, "L", r)

	_, ok = ParseResult("?")
	assert.False(t, ok)

	v, ok := ParseVenue(" Home ")
	assert.True(t, ok)
	assert.Equal(t, "home", v)

	_, ok = ParseVenue("neutral")
	assert.False(t, ok)
}
