package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/football-etl/internal/domain/rawdata"
	"github.com/riskibarqy/football-etl/internal/domain/warehouse"
	"github.com/riskibarqy/football-etl/internal/platform/logging"
)

func newPipeline(f fixture, sink warehouse.Sink) *PipelineService {
	var loader *LoadService
	if sink != nil {
		loader = NewLoadService(f.store, sink, logging.NewNop())
	}
	return NewPipelineService(f.dimensionService(), f.factService(), loader, f.processedDir, logging.NewNop())
}

func readReport(t *testing.T, dir string) RunReport {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(dir, ReportFileName))
	require.NoError(t, err)
	var report RunReport
	require.NoError(t, sonic.Unmarshal(data, &report))
	return report
}

func TestPipelineRunWritesReport(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	sink := &fakeSink{}
	report, err := newPipeline(f, sink).Run(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	require.Len(t, report.Stages, 2)
	assert.Equal(t, "dimensions", report.Stages[0].Stage)
	assert.Equal(t, "facts", report.Stages[1].Stage)
	assert.Equal(t, 1, sink.calls)
	assert.Equal(t, 2, report.Loaded[warehouse.TableMatch])

	onDisk := readReport(t, f.processedDir)
	assert.Equal(t, report.RunID, onDisk.RunID)
	assert.Empty(t, onDisk.Error)
	assert.False(t, onDisk.FinishedAt.Before(onDisk.StartedAt))
}

func TestPipelineTransformReportsFailure(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	require.NoError(t, os.Remove(filepath.Join(f.rawDir, rawdata.SourcePlayerMatch.String())))

	_, err := newPipeline(f, nil).Transform(context.Background())
	require.ErrorIs(t, err, ErrRequiredSourceMissing)

	onDisk := readReport(t, f.processedDir)
	assert.Contains(t, onDisk.Error, rawdata.SourcePlayerMatch.String())
}

func TestPipelineRunRequiresLoader(t *testing.T) {
	t.Parallel()

	_, err := newPipeline(newFixture(t), nil).Run(context.Background())
	require.ErrorIs(t, err, ErrInvalidInput)
}
