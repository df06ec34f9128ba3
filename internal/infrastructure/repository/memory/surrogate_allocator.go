package memory

import (
	"context"
)

// SurrogateAllocator hands out dense IDs starting at 1 on every call, so a
// rebuild numbers entities purely by the order it is given.
type SurrogateAllocator struct{}

func NewSurrogateAllocator() *SurrogateAllocator {
	return &SurrogateAllocator{}
}

func (a *SurrogateAllocator) Assign(_ context.Context, _ string, naturalKeys []string) (map[string]int64, error) {
	out := make(map[string]int64, len(naturalKeys))
	next := int64(1)
	for _, key := range naturalKeys {
		if _, ok := out[key]; ok {
			continue
		}
		out[key] = next
		next++
	}
	return out, nil
}
