package tabular

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFlatSkipsMalformedAndBlankRows(t *testing.T) {
	t.Parallel()

	input := "club_id,club_label,capacity\n" +
		"Q9617,Arsenal F.C.,60704\n" +
		"Q1,broken\n" +
		",,\n" +
		"Q18656,Chelsea F.C.,40173\n"

	table, err := Read(strings.NewReader(input), ReadOptions{})
	require.NoError(t, err)

	require.IsType(t, Flat{}, table.Header)
	assert.Equal(t, 1, table.Malformed)
	assert.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"club_id", "club_label", "capacity"}, table.Names())
}

func TestReadDetectsMultiLevelHeader(t *testing.T) {
	t.Parallel()

	input := "season,player,Performance,Performance\n" +
		"Unnamed: 0_level_1,Unnamed: 1_level_1,Gls,Ast\n" +
		"2024/2025,Bukayo Saka,1,2\n"

	table, err := Read(strings.NewReader(input), ReadOptions{})
	require.NoError(t, err)

	h, ok := table.Header.(Hierarchical)
	require.True(t, ok, "expected hierarchical header, got %T", table.Header)
	assert.Equal(t, 2, h.Depth())

	want := []string{"season", "player", "Performance_Gls", "Performance_Ast"}
	if diff := cmp.Diff(want, table.Names()); diff != "" {
		t.Fatalf("flattened names mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, table.Rows, 1)
}

func TestReadThreeLevelHeader(t *testing.T) {
	t.Parallel()

	input := "player,pos,Performance,Performance\n" +
		"Unnamed: 0_level_1,,Gls,Ast\n" +
		"Unnamed: 0_level_2,,,\n" +
		"Declan Rice,MF,3,4\n"

	table, err := Read(strings.NewReader(input), ReadOptions{})
	require.NoError(t, err)

	h, ok := table.Header.(Hierarchical)
	require.True(t, ok)
	assert.Equal(t, 3, h.Depth())
	assert.Equal(t, [][]string{{"Declan Rice", "MF", "3", "4"}}, table.Rows)
}

func TestReadDetectsBlankLevelUnderSeveralGroups(t *testing.T) {
	t.Parallel()

	input := "player,Playing Time,Playing Time,Performance,Performance\n" +
		",MP,Min,Gls,Ast\n" +
		"Declan Rice,10,900,3,4\n"

	table, err := Read(strings.NewReader(input), ReadOptions{})
	require.NoError(t, err)

	h, ok := table.Header.(Hierarchical)
	require.True(t, ok, "expected hierarchical header, got %T", table.Header)
	assert.Equal(t, 2, h.Depth())
	assert.Equal(t, []string{"player", "Playing Time_MP", "Playing Time_Min", "Performance_Gls", "Performance_Ast"}, table.Names())
}

func TestReadKeepsFlatHeaderWhenSecondRowIsData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		rows  int
	}{
		{name: "blank leading id", input: "id,name,name\n,Arsenal,x\n1,Chelsea,y\n", rows: 2},
		{name: "group cells not distinct", input: "id,a,a,b,b\n,x,x,y,z\n1,2,3,4,5\n", rows: 2},
		{name: "identity cell filled", input: "id,a,a,b,b\n7,x,y,y,z\n1,2,3,4,5\n", rows: 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			table, err := Read(strings.NewReader(tc.input), ReadOptions{})
			require.NoError(t, err)
			require.IsType(t, Flat{}, table.Header)
			assert.Len(t, table.Rows, tc.rows)
		})
	}
}

func TestReadEmptyInput(t *testing.T) {
	t.Parallel()

	_, err := Read(strings.NewReader(""), ReadOptions{})
	require.ErrorIs(t, err, ErrEmptyFile)
}

func TestReadStripsByteOrderMark(t *testing.T) {
	t.Parallel()

	input := "\ufeffMùa giải,Team\n2024/2025,Newcastle\n"
	table, err := Read(strings.NewReader(input), ReadOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Mùa giải", "Team"}, table.Names())
	idx, err := Resolve(table.Header, Col("mùa giải"))
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
}

func TestReadFileMissingKeepsNotExist(t *testing.T) {
	t.Parallel()

	_, err := ReadFile(filepath.Join(t.TempDir(), "absent.csv"), ReadOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteFileIsAtomicAndEndsWithNewline(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out", "dim_team.csv")
	require.NoError(t, WriteFile(path, []string{"team_id", "team_name"}, [][]string{{"1", "Arsenal"}}))
	require.NoError(t, WriteFile(path, []string{"team_id", "team_name"}, [][]string{{"2", "Brighton, Hove"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "team_id,team_name\n2,\"Brighton, Hove\"\n", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestWriteRejectsRaggedRows(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	err := Write(&buf, []string{"a", "b"}, [][]string{{"1"}})
	require.Error(t, err)
}
