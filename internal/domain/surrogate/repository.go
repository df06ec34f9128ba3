package surrogate

import "context"

// Entities that receive allocated surrogate keys.
const (
	EntityPlayer = "player"
	EntityMatch  = "match"
)

// Allocator assigns integer keys to natural keys. Keys are passed in the
// order new IDs should be handed out; the result maps every natural key to
// its ID.
type Allocator interface {
	Assign(ctx context.Context, entity string, naturalKeys []string) (map[string]int64, error)
}
