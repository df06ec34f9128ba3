package tabular

import (
	"regexp"
	"strings"
)

// Header is either a Flat header (one name per column) or a Hierarchical one
// (one path of level names per column), as produced by multi-level CSV exports.
type Header interface {
	Width() int
	// Flatten returns one name per column; hierarchical paths are joined with "_".
	Flatten() []string
	isHeader()
}

type Flat []string

func (h Flat) Width() int { return len(h) }

func (h Flat) Flatten() []string {
	out := make([]string, len(h))
	for i, name := range h {
		out[i] = strings.TrimSpace(name)
	}
	return out
}

func (Flat) isHeader() {}

// Hierarchical holds, for each column, its header levels from top to bottom.
type Hierarchical [][]string

func (h Hierarchical) Width() int { return len(h) }

func (h Hierarchical) Flatten() []string {
	out := make([]string, len(h))
	for i, path := range h {
		segments := make([]string, 0, len(path))
		for _, level := range path {
			level = cleanLevel(level)
			if level == "" {
				continue
			}
			segments = append(segments, level)
		}
		out[i] = strings.Join(segments, "_")
	}
	return out
}

func (Hierarchical) isHeader() {}

// Depth is the number of header levels.
func (h Hierarchical) Depth() int {
	depth := 0
	for _, path := range h {
		if len(path) > depth {
			depth = len(path)
		}
	}
	return depth
}

func (h Hierarchical) level(col, level int) string {
	if col < 0 || col >= len(h) || level >= len(h[col]) {
		return ""
	}
	return cleanLevel(h[col][level])
}

var (
	placeholderLevel = regexp.MustCompile(`^Unnamed: \d+_level_\d+$`)
	levelSuffix      = regexp.MustCompile(`_level_\d+$`)
)

// cleanLevel blanks pandas placeholder names ("Unnamed: 3_level_1") and strips
// a dangling "_level_N" suffix.
func cleanLevel(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || placeholderLevel.MatchString(v) {
		return ""
	}
	return strings.TrimSpace(levelSuffix.ReplaceAllString(v, ""))
}

func isPlaceholder(v string) bool {
	return cleanLevel(v) == ""
}
