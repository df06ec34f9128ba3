package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/football-etl/internal/domain/surrogate"
	"github.com/riskibarqy/football-etl/internal/domain/warehouse"
	surrogatemock "github.com/riskibarqy/football-etl/internal/mocks/domain/surrogate"
	warehousemock "github.com/riskibarqy/football-etl/internal/mocks/domain/warehouse"
	"github.com/riskibarqy/football-etl/internal/platform/logging"
)

func TestLoadService_SinkFailureUsingMockery(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	_, _, _ = buildAll(t, f)

	sink := warehousemock.NewSink(t)
	sink.
		On("Load", mock.Anything,
			mock.MatchedBy(func(d warehouse.Dimensions) bool { return len(d.Teams) == 3 }),
			mock.MatchedBy(func(facts warehouse.Facts) bool { return len(facts.PlayerMatches) == 3 }),
		).
		Return(nil, errors.New("connection refused")).
		Once()

	_, err := NewLoadService(f.store, sink, logging.NewNop()).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestDimensionService_AllocatorFailureUsingMockery(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	allocator := surrogatemock.NewAllocator(t)
	allocator.
		On("Assign", mock.Anything, surrogate.EntityPlayer, mock.Anything).
		Return(nil, errors.New("registry locked")).
		Once()

	service := NewDimensionService(f.raw, f.store, f.normalizer, allocator, logging.NewNop(), 0)
	_, _, err := service.BuildDimensions(context.Background())
	require.Error(t, err)

	assert.NoFileExists(t, f.store.Path(warehouse.TableTeam))
	assert.NoFileExists(t, f.store.Path(warehouse.TablePlayer))
}
