package usecase

import (
	"strings"

	"github.com/riskibarqy/football-etl/internal/platform/fieldparse"
)

func equalFoldTrim(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func intPtr(raw string) *int64 {
	n, ok := fieldparse.Int(raw)
	if !ok {
		return nil
	}
	return &n
}

func floatPtr(raw string) *float64 {
	f, ok := fieldparse.Float(raw)
	if !ok {
		return nil
	}
	return &f
}

// isMissing treats blank cells and pandas NaN renderings as absent.
func isMissing(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "nan", "none", "null", "<na>":
		return true
	default:
		return false
	}
}
