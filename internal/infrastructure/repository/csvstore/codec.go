package csvstore

import (
	"fmt"
	"strconv"
	"time"

	"github.com/riskibarqy/football-etl/internal/platform/fieldparse"
	"github.com/riskibarqy/football-etl/internal/platform/tabular"
)

const dateLayout = "2006-01-02"

// codec describes how one processed table maps to CSV. Column order is part
// of the load contract and must not change.
type codec[T any] struct {
	table   string
	columns []string
	encode  func(T) []string
	decode  func(r *record) (T, error)
}

func (c codec[T]) encodeAll(items []T) [][]string {
	rows := make([][]string, len(items))
	for i, item := range items {
		rows[i] = c.encode(item)
	}
	return rows
}

func (c codec[T]) decodeAll(t *tabular.Table) ([]T, error) {
	fields := make([]tabular.Field, len(c.columns))
	for i, col := range c.columns {
		fields[i] = tabular.Field{Key: col}
	}
	binding, err := tabular.Bind(t, tabular.Schema{Source: c.table, Fields: fields})
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(t.Rows))
	for i, row := range t.Rows {
		item, err := c.decode(&record{binding: binding, row: row})
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", c.table, i+1, err)
		}
		out = append(out, item)
	}
	return out, nil
}

// record reads typed values from one bound row. The first failure is kept
// in err and later reads return zero values.
type record struct {
	binding tabular.Binding
	row     []string
	err     error
}

func (r *record) str(col string) string {
	return r.binding.Get(r.row, col)
}

func (r *record) int(col string) int64 {
	v := r.str(col)
	n, ok := fieldparse.Int(v)
	if !ok && r.err == nil {
		r.err = fmt.Errorf("column %s: invalid integer %q", col, v)
	}
	return n
}

func (r *record) intPtr(col string) *int64 {
	v := r.str(col)
	if v == "" {
		return nil
	}
	n, ok := fieldparse.Int(v)
	if !ok {
		if r.err == nil {
			r.err = fmt.Errorf("column %s: invalid integer %q", col, v)
		}
		return nil
	}
	return &n
}

func (r *record) floatPtr(col string) *float64 {
	v := r.str(col)
	if v == "" {
		return nil
	}
	f, ok := fieldparse.Float(v)
	if !ok {
		if r.err == nil {
			r.err = fmt.Errorf("column %s: invalid number %q", col, v)
		}
		return nil
	}
	return &f
}

func (r *record) date(col string) time.Time {
	v := r.str(col)
	d, ok := fieldparse.ParseDate(v)
	if !ok && r.err == nil {
		r.err = fmt.Errorf("column %s: invalid date %q", col, v)
	}
	return d
}

func (r *record) datePtr(col string) *time.Time {
	if r.str(col) == "" {
		return nil
	}
	d := r.date(col)
	return &d
}

func fmtInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

func fmtIntPtr(v *int64) string {
	if v == nil {
		return ""
	}
	return fmtInt(*v)
}

func fmtFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func fmtDate(v time.Time) string {
	return v.Format(dateLayout)
}

func fmtDatePtr(v *time.Time) string {
	if v == nil {
		return ""
	}
	return fmtDate(*v)
}
