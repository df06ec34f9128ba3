package reference

import (
	"fmt"
	"strings"
)

// Catalog is the static club reference data the normalizer and the team
// dimension read from. It is loaded once and never mutated.
type Catalog struct {
	// TeamAliases maps a spelling variant to the spelling the match-level
	// sources use.
	TeamAliases map[string]string `yaml:"team_aliases" validate:"dive,keys,required,endkeys,required"`
	// ShortCodes maps a club's legal name to its three-letter code.
	ShortCodes   map[string]string `yaml:"short_codes" validate:"dive,keys,required,endkeys,len=3"`
	LegalTokens  []string          `yaml:"legal_tokens" validate:"min=1,dive,required"`
	StrayMarkers []string          `yaml:"stray_markers" validate:"dive,required"`
}

// Validate checks structural rules that tags cannot express.
func (c Catalog) Validate() error {
	sources := make(map[string]string, len(c.TeamAliases))
	for from := range c.TeamAliases {
		sources[strings.ToLower(strings.TrimSpace(from))] = from
	}
	for from, to := range c.TeamAliases {
		if strings.EqualFold(strings.TrimSpace(from), strings.TrimSpace(to)) {
			return fmt.Errorf("%w: alias %q maps to itself", ErrInvalidCatalog, from)
		}
		// Targets must be final so that normalizing a canonical name is a no-op.
		if chained, ok := sources[strings.ToLower(strings.TrimSpace(to))]; ok {
			return fmt.Errorf("%w: alias %q points at alias %q", ErrInvalidCatalog, from, chained)
		}
	}
	for code := range c.ShortCodes {
		if strings.TrimSpace(code) == "" {
			return fmt.Errorf("%w: empty short code key", ErrInvalidCatalog)
		}
	}
	return nil
}

// Clone returns a deep copy so callers can derive test catalogs safely.
func (c Catalog) Clone() Catalog {
	out := Catalog{
		TeamAliases:  make(map[string]string, len(c.TeamAliases)),
		ShortCodes:   make(map[string]string, len(c.ShortCodes)),
		LegalTokens:  append([]string(nil), c.LegalTokens...),
		StrayMarkers: append([]string(nil), c.StrayMarkers...),
	}
	for k, v := range c.TeamAliases {
		out.TeamAliases[k] = v
	}
	for k, v := range c.ShortCodes {
		out.ShortCodes[k] = v
	}
	return out
}
