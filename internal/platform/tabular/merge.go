package tabular

import (
	"strings"
)

type MergeMode string

const (
	MergeNoExisting  MergeMode = "no_existing"
	MergeSchemaDrift MergeMode = "schema_drift"
	MergeByKey       MergeMode = "by_key"
	MergeAppendDedup MergeMode = "append_dedup"
)

// MergeResult is the outcome of reconciling a new batch with persisted rows.
type MergeResult struct {
	Table      *Table
	Mode       MergeMode
	Superseded int
	Duplicates int
}

// Merge combines existing (may be nil) with incoming. Both are compared on
// flattened column names; the result always uses incoming's column order.
//
// With a complete key, existing rows whose key tuple occurs in incoming are
// replaced. Without one, rows are appended and exact duplicates collapse to
// their last occurrence.
func Merge(existing, incoming *Table, keyColumns []string) MergeResult {
	next := incoming.Flattened()
	if existing == nil {
		return MergeResult{Table: next, Mode: MergeNoExisting}
	}

	prev := existing.Flattened()
	names := next.Names()
	order, ok := alignColumns(prev.Names(), names)
	if !ok {
		return MergeResult{Table: next, Mode: MergeSchemaDrift}
	}
	prevRows := make([][]string, len(prev.Rows))
	for i, row := range prev.Rows {
		prevRows[i] = reorder(row, order)
	}

	keyIdx, keyed := keyIndexes(names, keyColumns)
	if !keyed {
		combined := append(prevRows, next.Rows...)
		deduped := dedupKeepLast(combined)
		return MergeResult{
			Table:      &Table{Header: Flat(names), Rows: deduped},
			Mode:       MergeAppendDedup,
			Duplicates: len(combined) - len(deduped),
		}
	}

	incomingKeys := make(map[string]struct{}, len(next.Rows))
	for _, row := range next.Rows {
		incomingKeys[rowKey(row, keyIdx)] = struct{}{}
	}

	out := make([][]string, 0, len(prevRows)+len(next.Rows))
	superseded := 0
	for _, row := range prevRows {
		if _, ok := incomingKeys[rowKey(row, keyIdx)]; ok {
			superseded++
			continue
		}
		out = append(out, row)
	}
	out = append(out, next.Rows...)

	return MergeResult{
		Table:      &Table{Header: Flat(names), Rows: out},
		Mode:       MergeByKey,
		Superseded: superseded,
	}
}

// alignColumns maps each target column to its position in source. It fails
// when the two column sets differ.
func alignColumns(source, target []string) ([]int, bool) {
	if len(source) != len(target) {
		return nil, false
	}
	pos := make(map[string][]int, len(source))
	for i, name := range source {
		pos[name] = append(pos[name], i)
	}
	order := make([]int, len(target))
	for i, name := range target {
		candidates := pos[name]
		if len(candidates) == 0 {
			return nil, false
		}
		order[i] = candidates[0]
		pos[name] = candidates[1:]
	}
	return order, true
}

func reorder(row []string, order []int) []string {
	out := make([]string, len(order))
	for i, src := range order {
		out[i] = row[src]
	}
	return out
}

func keyIndexes(names, keyColumns []string) ([]int, bool) {
	if len(keyColumns) == 0 {
		return nil, false
	}
	idx := make([]int, 0, len(keyColumns))
	for _, key := range keyColumns {
		found := -1
		for i, name := range names {
			if name == key {
				found = i
				break
			}
		}
		if found < 0 {
			return nil, false
		}
		idx = append(idx, found)
	}
	return idx, true
}

func rowKey(row []string, idx []int) string {
	parts := make([]string, len(idx))
	for i, col := range idx {
		parts[i] = row[col]
	}
	return strings.Join(parts, "\x1f")
}

func dedupKeepLast(rows [][]string) [][]string {
	last := make(map[string]int, len(rows))
	for i, row := range rows {
		last[strings.Join(row, "\x1f")] = i
	}
	out := make([][]string, 0, len(last))
	for i, row := range rows {
		if last[strings.Join(row, "\x1f")] == i {
			out = append(out, row)
		}
	}
	return out
}
