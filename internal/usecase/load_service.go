package usecase

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/football-etl/internal/domain/warehouse"
	"github.com/riskibarqy/football-etl/internal/platform/logging"
)

type rowCounter interface {
	Count(ctx context.Context, table string) (int64, error)
}

// LoadService pushes the processed tables into the warehouse database.
type LoadService struct {
	store  warehouse.Repository
	sink   warehouse.Sink
	logger *logging.Logger
}

func NewLoadService(store warehouse.Repository, sink warehouse.Sink, logger *logging.Logger) *LoadService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LoadService{store: store, sink: sink, logger: logger}
}

// Load reads every processed table, checks referential integrity and
// upserts the whole build.
func (s *LoadService) Load(ctx context.Context) (summary warehouse.LoadSummary, err error) {
	if s.sink == nil {
		return nil, fmt.Errorf("%w: warehouse sink is not configured", ErrInvalidInput)
	}
	ctx, span := startUsecaseSpan(ctx, "usecase.LoadService.Load")
	defer func() { endSpan(span, err) }()

	dims, facts, err := s.readProcessed(ctx)
	if err != nil {
		return nil, err
	}
	if err := warehouse.CheckIntegrity(dims, facts); err != nil {
		return nil, fmt.Errorf("check processed tables: %w", err)
	}

	summary, err = s.sink.Load(ctx, dims, facts)
	if err != nil {
		return nil, fmt.Errorf("load warehouse: %w", err)
	}
	for _, table := range loadOrder {
		span.SetAttributes(attribute.Int("load."+table, summary[table]))
	}

	s.logger.InfoContext(ctx, "warehouse loaded", "tables", map[string]int(summary))
	if counter, ok := s.sink.(rowCounter); ok {
		for _, table := range loadOrder {
			total, countErr := counter.Count(ctx, table)
			if countErr != nil {
				s.logger.WarnContext(ctx, "count warehouse rows failed", "table", table, "error", countErr)
				continue
			}
			if total < int64(summary[table]) {
				return summary, fmt.Errorf("verify %s: %d rows stored, %d upserted", table, total, summary[table])
			}
		}
	}
	return summary, nil
}

var loadOrder = []string{
	warehouse.TableStadium,
	warehouse.TableTeam,
	warehouse.TableMatch,
	warehouse.TablePlayer,
	warehouse.TableSeason,
	warehouse.TableTeamMatch,
	warehouse.TableTeamPoint,
	warehouse.TablePlayerMatch,
}

func (s *LoadService) readProcessed(ctx context.Context) (warehouse.Dimensions, warehouse.Facts, error) {
	var (
		dims  warehouse.Dimensions
		facts warehouse.Facts
		err   error
	)
	if dims.Stadiums, err = s.store.ListStadiums(ctx); err != nil {
		return dims, facts, processedErr(err)
	}
	if dims.Teams, err = s.store.ListTeams(ctx); err != nil {
		return dims, facts, processedErr(err)
	}
	if dims.Matches, err = s.store.ListMatches(ctx); err != nil {
		return dims, facts, processedErr(err)
	}
	if dims.Players, err = s.store.ListPlayers(ctx); err != nil {
		return dims, facts, processedErr(err)
	}
	if dims.Seasons, err = s.store.ListSeasons(ctx); err != nil {
		return dims, facts, processedErr(err)
	}
	if facts.TeamMatches, err = s.store.ListTeamMatches(ctx); err != nil {
		return dims, facts, processedErr(err)
	}
	if facts.TeamPoints, err = s.store.ListTeamPoints(ctx); err != nil {
		return dims, facts, processedErr(err)
	}
	if facts.PlayerMatches, err = s.store.ListPlayerMatches(ctx); err != nil {
		return dims, facts, processedErr(err)
	}
	return dims, facts, nil
}

func processedErr(err error) error {
	return fmt.Errorf("read processed tables: %w", err)
}
