package reference

import (
	"bytes"
	"context"
	_ "embed"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	domain "github.com/riskibarqy/football-etl/internal/domain/reference"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// YAMLSource reads the catalog from Path, or from the built-in copy when
// Path is empty.
type YAMLSource struct {
	Path      string
	validator *validator.Validate
}

func NewYAMLSource(path string) *YAMLSource {
	return &YAMLSource{
		Path:      strings.TrimSpace(path),
		validator: validator.New(),
	}
}

func (s *YAMLSource) Load(ctx context.Context) (domain.Catalog, error) {
	data := defaultCatalog
	origin := "built-in catalog"
	if s.Path != "" {
		raw, err := os.ReadFile(s.Path)
		if err != nil {
			return domain.Catalog{}, errors.Wrapf(err, "read reference catalog %s", s.Path)
		}
		data = raw
		origin = s.Path
	}

	catalog, err := Decode(data)
	if err != nil {
		return domain.Catalog{}, errors.Wrapf(err, "decode %s", origin)
	}
	if err := s.validator.StructCtx(ctx, catalog); err != nil {
		return domain.Catalog{}, errors.Mark(errors.Wrapf(err, "validate %s", origin), domain.ErrInvalidCatalog)
	}
	if err := catalog.Validate(); err != nil {
		return domain.Catalog{}, errors.Wrapf(err, "validate %s", origin)
	}
	return catalog, nil
}

// Decode parses catalog YAML. Unknown keys are rejected so typos in a
// hand-edited file surface immediately.
func Decode(data []byte) (domain.Catalog, error) {
	var catalog domain.Catalog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&catalog); err != nil {
		return domain.Catalog{}, errors.Wrap(err, "parse yaml")
	}
	return catalog, nil
}

// Default returns the built-in catalog.
func Default() (domain.Catalog, error) {
	return NewYAMLSource("").Load(context.Background())
}
