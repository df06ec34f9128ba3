package tabular

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrSchemaMismatch marks every SchemaMismatchError.
var ErrSchemaMismatch = errors.New("schema mismatch")

// Field declares one logical column of a source. Candidates are tried in
// order, which lets a source carry several known spellings of the same column.
type Field struct {
	Key        string
	Candidates []ColumnRef
	Optional   bool
}

// Schema is the declared shape a raw source must satisfy before typed records
// are built from it.
type Schema struct {
	Source string
	Fields []Field
}

type SchemaMismatchError struct {
	Source  string
	Missing []ColumnRef
	Header  []string
}

func (e *SchemaMismatchError) Error() string {
	missing := make([]string, len(e.Missing))
	for i, ref := range e.Missing {
		missing[i] = ref.String()
	}
	return fmt.Sprintf("source %s: missing required columns [%s] (header: %s)",
		e.Source, strings.Join(missing, ", "), strings.Join(e.Header, ", "))
}

func (e *SchemaMismatchError) Is(target error) bool {
	return target == ErrSchemaMismatch
}

// Binding maps field keys to column indexes of one table.
type Binding struct {
	index map[string]int
}

// Bind classifies t against schema. It fails closed: any required field that
// cannot be resolved yields a SchemaMismatchError listing all of them.
func Bind(t *Table, schema Schema) (Binding, error) {
	b := Binding{index: make(map[string]int, len(schema.Fields))}
	var missing []ColumnRef
	for _, field := range schema.Fields {
		if len(field.Candidates) == 0 {
			field.Candidates = []ColumnRef{Col(field.Key)}
		}
		idx, err := ResolveAny(t.Header, field.Candidates...)
		if err != nil {
			if !field.Optional {
				missing = append(missing, field.Candidates[0])
			}
			continue
		}
		b.index[field.Key] = idx
	}
	if len(missing) > 0 {
		return Binding{}, &SchemaMismatchError{
			Source:  schema.Source,
			Missing: missing,
			Header:  t.Header.Flatten(),
		}
	}
	return b, nil
}

func (b Binding) Has(key string) bool {
	_, ok := b.index[key]
	return ok
}

// Get returns the trimmed cell for key, or "" when the field is unbound.
func (b Binding) Get(row []string, key string) string {
	idx, ok := b.index[key]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
