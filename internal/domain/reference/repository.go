package reference

import "context"

// Source loads the club reference catalog.
type Source interface {
	Load(ctx context.Context) (Catalog, error)
}
