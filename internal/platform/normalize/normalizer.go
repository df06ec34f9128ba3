// Package normalize canonicalizes the free-text identifiers used as join
// keys: team names, player names and match labels.
package normalize

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/riskibarqy/football-etl/internal/domain/reference"
	"github.com/riskibarqy/football-etl/internal/platform/fieldparse"
)

// Normalizer is immutable after construction and safe to share.
type Normalizer struct {
	aliases      map[string]string
	shortCodes   map[string]string
	canonCodes   map[string]string
	legalTokens  []string
	strayMarkers []string
}

func New(catalog reference.Catalog) *Normalizer {
	n := &Normalizer{
		aliases:      make(map[string]string, len(catalog.TeamAliases)),
		shortCodes:   make(map[string]string, len(catalog.ShortCodes)),
		canonCodes:   make(map[string]string, len(catalog.ShortCodes)),
		legalTokens:  append([]string(nil), catalog.LegalTokens...),
		strayMarkers: append([]string(nil), catalog.StrayMarkers...),
	}
	for from, to := range catalog.TeamAliases {
		n.aliases[Key(from)] = strings.TrimSpace(to)
	}
	// Longest tokens first so "A.F.C." is removed before "F.C.".
	sort.SliceStable(n.legalTokens, func(i, j int) bool {
		return len(n.legalTokens[i]) > len(n.legalTokens[j])
	})
	for name, code := range catalog.ShortCodes {
		code = strings.ToUpper(strings.TrimSpace(code))
		n.shortCodes[Key(name)] = code
		n.canonCodes[n.TeamKey(name)] = code
	}
	return n
}

// Key trims, case-folds and collapses inner whitespace.
func Key(raw string) string {
	folded := cases.Fold().String(strings.TrimSpace(raw))
	return strings.Join(strings.Fields(folded), " ")
}

// PlayerKey is the join key for player names.
func (n *Normalizer) PlayerKey(raw string) string {
	return Key(raw)
}

// MatchKey is the join key for match labels.
func (n *Normalizer) MatchKey(raw string) string {
	return Key(raw)
}

// TeamKey is the join key for team names. Aliases are consulted before and
// after the legal-token cleanup because some variants only match the raw
// spelling.
func (n *Normalizer) TeamKey(raw string) string {
	return Key(n.TeamDisplayName(raw))
}

// TeamDisplayName returns the canonical spelling written to the team
// dimension, e.g. "Newcastle United F.C." becomes "Newcastle Utd".
func (n *Normalizer) TeamDisplayName(raw string) string {
	name := strings.Join(strings.Fields(raw), " ")
	if alias, ok := n.aliases[Key(name)]; ok {
		name = alias
	}
	name = n.StripLegalTokens(name)
	if alias, ok := n.aliases[Key(name)]; ok {
		name = alias
	}
	return name
}

// StripLegalTokens removes legal-entity tokens as literal substrings and then
// leading or trailing stray markers.
func (n *Normalizer) StripLegalTokens(name string) string {
	for _, token := range n.legalTokens {
		name = strings.ReplaceAll(name, token, "")
	}
	name = strings.TrimSpace(name)
	for changed := true; changed; {
		changed = false
		for _, marker := range n.strayMarkers {
			if trimmed, ok := strings.CutPrefix(name, marker+" "); ok {
				name, changed = strings.TrimSpace(trimmed), true
			}
			if trimmed, ok := strings.CutSuffix(name, " "+marker); ok {
				name, changed = strings.TrimSpace(trimmed), true
			}
			if name == marker {
				name, changed = "", true
			}
		}
	}
	return strings.Join(strings.Fields(name), " ")
}

// ShortCode looks up the three-letter code of a club by its legal name or
// by its canonical name.
func (n *Normalizer) ShortCode(raw string) (string, bool) {
	if code, ok := n.shortCodes[Key(raw)]; ok {
		return code, true
	}
	if code, ok := n.canonCodes[n.TeamKey(raw)]; ok {
		return code, true
	}
	return "", false
}

// ExternalID parses a prefixed source identifier such as "Q9617".
func (n *Normalizer) ExternalID(raw string) (int64, bool) {
	return fieldparse.ParsePrefixedID(raw)
}
