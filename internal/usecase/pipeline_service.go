package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/football-etl/internal/domain/warehouse"
	"github.com/riskibarqy/football-etl/internal/platform/logging"
	"github.com/riskibarqy/football-etl/internal/platform/tabular"
)

// ReportFileName is the run summary written next to the processed tables.
const ReportFileName = "transform_report.json"

// RunReport summarizes one pipeline run.
type RunReport struct {
	RunID      string                `json:"run_id"`
	StartedAt  time.Time             `json:"started_at"`
	FinishedAt time.Time             `json:"finished_at"`
	Stages     []StageReport         `json:"stages"`
	Loaded     warehouse.LoadSummary `json:"loaded,omitempty"`
	Error      string                `json:"error,omitempty"`
}

// PipelineService runs the transform stages in order, optionally followed by
// the warehouse load.
type PipelineService struct {
	dimensions   *DimensionService
	facts        *FactService
	loader       *LoadService
	processedDir string
	logger       *logging.Logger
	now          func() time.Time
}

func NewPipelineService(
	dimensions *DimensionService,
	facts *FactService,
	loader *LoadService,
	processedDir string,
	logger *logging.Logger,
) *PipelineService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PipelineService{
		dimensions:   dimensions,
		facts:        facts,
		loader:       loader,
		processedDir: processedDir,
		logger:       logger,
		now:          time.Now,
	}
}

// Transform rebuilds dimensions then facts and writes the run report.
func (s *PipelineService) Transform(ctx context.Context) (RunReport, error) {
	return s.run(ctx, false)
}

// Run transforms and then loads the warehouse.
func (s *PipelineService) Run(ctx context.Context) (RunReport, error) {
	if s.loader == nil {
		return RunReport{}, fmt.Errorf("%w: warehouse load is not configured", ErrInvalidInput)
	}
	return s.run(ctx, true)
}

func (s *PipelineService) run(ctx context.Context, load bool) (report RunReport, err error) {
	report = RunReport{RunID: uuid.NewString(), StartedAt: s.now().UTC()}
	ctx, span := usecaseTracer.Start(ctx, "usecase.PipelineService.Run")
	span.SetAttributes(attribute.String("run.id", report.RunID), attribute.Bool("run.load", load))
	defer func() { endSpan(span, err) }()

	logger := s.logger.With("run_id", report.RunID)
	logger.InfoContext(ctx, "pipeline started", "load", load)

	defer func() {
		report.FinishedAt = s.now().UTC()
		if err != nil {
			report.Error = err.Error()
		}
		if writeErr := s.writeReport(report); writeErr != nil {
			logger.ErrorContext(ctx, "write run report failed", "error", writeErr)
			if err == nil {
				err = writeErr
			}
		}
	}()

	_, dimReport, err := s.dimensions.BuildDimensions(ctx)
	report.Stages = append(report.Stages, dimReport)
	if err != nil {
		logger.ErrorContext(ctx, "dimension stage failed", "error", err)
		return report, fmt.Errorf("build dimensions: %w", err)
	}

	_, factReport, err := s.facts.BuildFacts(ctx)
	report.Stages = append(report.Stages, factReport)
	if err != nil {
		logger.ErrorContext(ctx, "fact stage failed", "error", err)
		return report, fmt.Errorf("build facts: %w", err)
	}

	if load {
		report.Loaded, err = s.loader.Load(ctx)
		if err != nil {
			logger.ErrorContext(ctx, "load stage failed", "error", err)
			return report, err
		}
	}

	logger.InfoContext(ctx, "pipeline finished", "duration", s.now().UTC().Sub(report.StartedAt).String())
	return report, nil
}

func (s *PipelineService) writeReport(report RunReport) error {
	if s.processedDir == "" {
		return nil
	}
	data, err := sonic.ConfigStd.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode run report: %w", err)
	}
	data = append(data, '\n')
	if err := tabular.ReplaceFile(filepath.Join(s.processedDir, ReportFileName), data); err != nil {
		return fmt.Errorf("write run report: %w", err)
	}
	return nil
}
