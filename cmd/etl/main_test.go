package main

import (
	"fmt"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/football-etl/internal/domain/warehouse"
	"github.com/riskibarqy/football-etl/internal/platform/tabular"
	"github.com/riskibarqy/football-etl/internal/usecase"
)

func TestRootCommandTree(t *testing.T) {
	t.Parallel()

	root := newRootCmd()
	for _, path := range [][]string{
		{"dimensions"}, {"facts"}, {"transform"}, {"merge"}, {"load"}, {"run"}, {"schedule"},
		{"migrate", "up"}, {"migrate", "down"}, {"migrate", "version"}, {"migrate", "force"}, {"migrate", "goto"},
	} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}

	merge, _, err := root.Find([]string{"merge"})
	require.NoError(t, err)
	for _, name := range []string{"new", "existing", "keys"} {
		assert.NotNil(t, merge.Flags().Lookup(name), name)
	}
}

func TestPermanentRunError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "missing source", err: fmt.Errorf("teams: %w", usecase.ErrRequiredSourceMissing), want: true},
		{name: "schema mismatch", err: &tabular.SchemaMismatchError{}, want: true},
		{name: "dangling key", err: errors.Wrap(warehouse.ErrDanglingKey, "load"), want: true},
		{name: "duplicate key", err: warehouse.ErrDuplicateKey, want: true},
		{name: "invalid input", err: usecase.ErrInvalidInput, want: true},
		{name: "transient", err: errors.New("connection reset by peer"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, permanentRunError(tt.err))
		})
	}
}
