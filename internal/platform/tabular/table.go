package tabular

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrEmptyFile is returned for input without a single record.
var ErrEmptyFile = errors.New("empty file: no header row")

// maxHeaderDepth bounds header detection; multi-level exports never use more.
const maxHeaderDepth = 3

// Table is a raw delimited source after header detection. Rows whose width
// differs from the header are not kept; they are counted in Malformed.
type Table struct {
	Header    Header
	Rows      [][]string
	Malformed int
}

// ReadOptions tunes header detection. HeaderDepth 0 means detect.
type ReadOptions struct {
	HeaderDepth int
}

func ReadFile(path string, opts ReadOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	t, err := Read(f, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return t, nil
}

// Read parses CSV content, tolerating a UTF-8 byte order mark.
func Read(r io.Reader, opts ReadOptions) (*Table, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "parse csv")
	}
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	depth := opts.HeaderDepth
	if depth <= 0 {
		depth = detectHeaderDepth(records)
	}
	if depth > len(records) {
		depth = len(records)
	}

	width := len(records[0])
	t := &Table{Header: buildHeader(records[:depth], width)}
	for _, record := range records[depth:] {
		if len(record) != width {
			t.Malformed++
			continue
		}
		if isBlankRecord(record) {
			continue
		}
		t.Rows = append(t.Rows, record)
	}
	return t, nil
}

// detectHeaderDepth counts header levels. A multi-level export repeats group
// names on the first row and leaves the identity columns blank (or pandas
// placeholders) on the following header rows. A candidate row only counts as
// a level when it carries a pandas placeholder or names the sub-columns of at
// least two groups; anything less is read as data under a flat header.
func detectHeaderDepth(records [][]string) int {
	if len(records) < 2 {
		return 1
	}
	groups := repeatedNames(records[0])
	if len(groups) == 0 {
		return 1
	}
	depth := 1
	for depth < len(records) && depth < maxHeaderDepth {
		if !isHeaderLevel(records[0], records[depth], groups) {
			break
		}
		depth++
	}
	return depth
}

func isHeaderLevel(top, row []string, groups map[string]int) bool {
	if len(row) == 0 || len(row) != len(top) {
		return false
	}
	marked := false
	subNames := make(map[string]map[string]struct{}, len(groups))
	for col, cell := range row {
		if placeholderLevel.MatchString(strings.TrimSpace(cell)) {
			marked = true
		}
		group := strings.TrimSpace(top[col])
		if _, ok := groups[group]; !ok {
			if !isPlaceholder(cell) {
				return false
			}
			continue
		}
		if subNames[group] == nil {
			subNames[group] = make(map[string]struct{})
		}
		if name := cleanLevel(cell); name != "" {
			subNames[group][name] = struct{}{}
		}
	}
	if marked {
		return true
	}
	if len(groups) < 2 {
		return false
	}
	for group, span := range groups {
		if len(subNames[group]) != span {
			return false
		}
	}
	return true
}

// repeatedNames maps every name that occurs more than once to its column count.
func repeatedNames(row []string) map[string]int {
	counts := make(map[string]int, len(row))
	for _, name := range row {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		counts[name]++
	}
	for name, n := range counts {
		if n < 2 {
			delete(counts, name)
		}
	}
	return counts
}

func buildHeader(rows [][]string, width int) Header {
	if len(rows) == 1 {
		flat := make(Flat, width)
		copy(flat, rows[0])
		return flat
	}
	h := make(Hierarchical, width)
	for col := 0; col < width; col++ {
		path := make([]string, len(rows))
		for level, row := range rows {
			if col < len(row) {
				path[level] = row[col]
			}
		}
		h[col] = path
	}
	return h
}

func isBlankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Names returns the flattened column names of t.
func (t *Table) Names() []string {
	if t == nil || t.Header == nil {
		return nil
	}
	return t.Header.Flatten()
}

// Flattened returns a copy of t whose header is Flat.
func (t *Table) Flattened() *Table {
	rows := make([][]string, len(t.Rows))
	copy(rows, t.Rows)
	return &Table{Header: Flat(t.Names()), Rows: rows, Malformed: t.Malformed}
}
