package tabular

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrColumnNotFound marks every ColumnNotFoundError.
var ErrColumnNotFound = errors.New("column not found")

// ColumnRef addresses a column by group and field. Field is empty for
// identity columns that have no sub-level (e.g. "player").
type ColumnRef struct {
	Group string
	Field string
}

func Col(group string) ColumnRef {
	return ColumnRef{Group: group}
}

func Sub(group, field string) ColumnRef {
	return ColumnRef{Group: group, Field: field}
}

func (r ColumnRef) String() string {
	if r.Field == "" {
		return r.Group
	}
	return r.Group + "/" + r.Field
}

func (r ColumnRef) composite() string {
	if r.Field == "" {
		return r.Group
	}
	return r.Group + "_" + r.Field
}

type ColumnNotFoundError struct {
	Ref       ColumnRef
	Available []string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %q not found (available: %s)", e.Ref.String(), strings.Join(e.Available, ", "))
}

func (e *ColumnNotFoundError) Is(target error) bool {
	return target == ErrColumnNotFound
}

// Resolve returns the index of the column addressed by ref.
//
// Flat headers match case-insensitively on "group_field" first and on the
// bare field second (bare group when ref has no field). Hierarchical headers
// match level 0 against the group and level 1 against the field, or level 0
// against "group_field" when level 1 is empty.
//
// When several columns match, the first one in column order wins. Duplicate
// names are therefore not an error; callers that care must de-duplicate the
// source first.
func Resolve(h Header, ref ColumnRef) (int, error) {
	idx := -1
	switch header := h.(type) {
	case Flat:
		idx = resolveFlat(header, ref)
	case Hierarchical:
		idx = resolveHierarchical(header, ref)
	}
	if idx >= 0 {
		return idx, nil
	}

	var available []string
	if h != nil {
		available = h.Flatten()
	}
	return -1, &ColumnNotFoundError{Ref: ref, Available: available}
}

// ResolveAny tries each candidate in order and returns the first hit.
func ResolveAny(h Header, candidates ...ColumnRef) (int, error) {
	if len(candidates) == 0 {
		return -1, errors.New("no column candidates given")
	}
	var firstErr error
	for _, ref := range candidates {
		idx, err := Resolve(h, ref)
		if err == nil {
			return idx, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return -1, firstErr
}

func resolveFlat(h Flat, ref ColumnRef) int {
	names := h.Flatten()
	if idx := indexFold(names, ref.composite()); idx >= 0 {
		return idx
	}
	if ref.Field != "" {
		return indexFold(names, ref.Field)
	}
	return -1
}

func resolveHierarchical(h Hierarchical, ref ColumnRef) int {
	group := strings.TrimSpace(ref.Group)
	field := strings.TrimSpace(ref.Field)
	for col := range h {
		top := h.level(col, 0)
		sub := h.level(col, 1)
		if strings.EqualFold(top, group) {
			if field == "" && sub == "" {
				return col
			}
			if field != "" && strings.EqualFold(sub, field) {
				return col
			}
		}
		if field != "" && sub == "" && strings.EqualFold(top, ref.composite()) {
			return col
		}
	}
	return -1
}

func indexFold(names []string, want string) int {
	want = strings.TrimSpace(want)
	if want == "" {
		return -1
	}
	for i, name := range names {
		if strings.EqualFold(name, want) {
			return i
		}
	}
	return -1
}
