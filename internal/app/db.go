package app

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

const maxTracedQueryLength = 512

var (
	queryWhitespaceRegex = regexp.MustCompile(`\s+`)
	// Matches the tuple list of a batched INSERT up to the ON CONFLICT clause.
	insertValuesRegex = regexp.MustCompile(`(?i)\bVALUES (\([^)]*\))((?:, \([^)]*\))*)`)
	valueTupleRegex   = regexp.MustCompile(`\([^)]*\)`)
)

// formatDBQueryForTrace collapses whitespace and keeps only the first tuple
// of a batched VALUES list.
func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	normalized := queryWhitespaceRegex.ReplaceAllString(query, " ")
	normalized = insertValuesRegex.ReplaceAllStringFunc(normalized, func(m string) string {
		parts := insertValuesRegex.FindStringSubmatch(m)
		extra := len(valueTupleRegex.FindAllString(parts[2], -1))
		if extra == 0 {
			return m
		}
		return "VALUES " + parts[1] + " /* +" + strconv.Itoa(extra) + " rows */"
	})
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}
	return normalized[:maxTracedQueryLength] + "..."
}

// normalizeDBURL asks pgbouncer-style poolers for text results when
// disablePreparedBinary is set. An explicit value in the URL wins.
func normalizeDBURL(raw string, disablePreparedBinary bool) string {
	if !disablePreparedBinary {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil {
		return raw
	}
	query := parsed.Query()
	if query.Get("disable_prepared_binary_result") == "" {
		query.Set("disable_prepared_binary_result", "yes")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

// dbNameFromURL accepts both URL and key=value DSNs.
func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if parsed, err := url.Parse(trimmed); err == nil && parsed.Scheme != "" {
		if name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/")); name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(trimmed) {
		name, ok := strings.CutPrefix(token, "dbname=")
		if !ok {
			continue
		}
		if name = strings.Trim(strings.TrimSpace(name), `"'`); name != "" {
			return name
		}
	}
	return ""
}
