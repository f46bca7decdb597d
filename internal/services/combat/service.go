package combat

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/mine/internal/definitions"
	"github.com/KirkDiggler/mine/internal/dice"
	domain "github.com/KirkDiggler/mine/internal/domain/combat"
	"github.com/KirkDiggler/mine/internal/errors"
	"github.com/KirkDiggler/mine/internal/events"
	"github.com/KirkDiggler/mine/internal/repositories/results"
	"github.com/KirkDiggler/mine/internal/uuid"
)

// Repository is an alias for the result repository interface
type Repository = results.Repository

// DefaultWorkers bounds concurrent combats in a batch when none is given
const DefaultWorkers = 4

// TimeProvider supplies record creation times
type TimeProvider interface {
	Now() time.Time
}

type realTime struct{}

func (realTime) Now() time.Time { return time.Now().UTC() }

// Service defines the combat service interface
type Service interface {
	// Simulate runs one combat to its end and stores the outcome
	Simulate(ctx context.Context, input *SimulateInput) (*results.Record, error)

	// SimulateBatch runs many automated combats and tallies who won
	SimulateBatch(ctx context.Context, input *BatchInput) (*BatchSummary, error)

	// GetResult retrieves a stored outcome
	GetResult(ctx context.Context, id string) (*results.Record, error)

	// ListResults lists stored outcomes, most recent first
	ListResults(ctx context.Context, input *ListResultsInput) ([]*results.Record, error)
}

// SimulateInput describes a single combat
type SimulateInput struct {
	Scenario    string
	Seed        int64
	Interactive bool            // units marked human in the scenario ask the Selector
	Selector    domain.Selector // required when Interactive
	Renderer    domain.Renderer // optional
}

// BatchInput describes a run of seeded automated combats. Run i uses Seed+i.
type BatchInput struct {
	Scenario string
	Seed     int64
	Runs     int
	Workers  int  // defaults to DefaultWorkers
	Store    bool // keep every record, not just the tally
}

// BatchSummary tallies a batch
type BatchSummary struct {
	Scenario string
	Runs     int
	Wins     map[string]int // team id -> combats won
	Draws    int
	Events   int // total scheduler events across the batch
}

// ListResultsInput filters ListResults
type ListResultsInput struct {
	Limit  int
	Winner string // only results this team won
}

// service implements the Service interface
type service struct {
	catalog       *definitions.Catalog
	repository    Repository
	uuidGenerator uuid.Generator
	timeProvider  TimeProvider
	logger        *zap.Logger
	logSize       int
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Catalog       *definitions.Catalog // Required
	Repository    Repository           // Required
	UUIDGenerator uuid.Generator       // Optional, will use default if nil
	TimeProvider  TimeProvider         // Optional, defaults to UTC wall time
	Logger        *zap.Logger          // Optional
	LogSize       int                  // Optional, entries kept per record
}

// NewService creates a new combat service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Catalog == nil {
		panic("catalog is required")
	}
	if cfg.Repository == nil {
		panic("repository is required")
	}

	svc := &service{
		catalog:       cfg.Catalog,
		repository:    cfg.Repository,
		uuidGenerator: cfg.UUIDGenerator,
		timeProvider:  cfg.TimeProvider,
		logger:        cfg.Logger,
		logSize:       cfg.LogSize,
	}

	if svc.uuidGenerator == nil {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}
	if svc.timeProvider == nil {
		svc.timeProvider = realTime{}
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	if svc.logSize <= 0 {
		svc.logSize = DefaultLogSize
	}

	return svc
}

// Simulate runs one combat to its end and stores the outcome
func (s *service) Simulate(ctx context.Context, input *SimulateInput) (*results.Record, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}
	if strings.TrimSpace(input.Scenario) == "" {
		return nil, errors.InvalidArgument("scenario is required")
	}
	if input.Interactive && input.Selector == nil {
		return nil, errors.InvalidArgument("interactive combat needs a selector")
	}

	record, err := s.run(ctx, input)
	if err != nil {
		return nil, err
	}

	if err := s.repository.Create(ctx, record); err != nil {
		return nil, errors.Wrap(err, "failed to store result").
			WithMeta("result_id", record.ID).
			WithMeta("scenario", record.Scenario)
	}

	return record, nil
}

// SimulateBatch runs many automated combats and tallies who won
func (s *service) SimulateBatch(ctx context.Context, input *BatchInput) (*BatchSummary, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}
	if strings.TrimSpace(input.Scenario) == "" {
		return nil, errors.InvalidArgument("scenario is required")
	}
	if input.Runs < 1 {
		return nil, errors.InvalidArgumentf("runs must be at least 1, got %d", input.Runs)
	}
	if _, err := s.catalog.Scenario(input.Scenario); err != nil {
		return nil, err
	}

	workers := input.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	summary := &BatchSummary{
		Scenario: input.Scenario,
		Runs:     input.Runs,
		Wins:     make(map[string]int),
	}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < input.Runs; i++ {
		seed := input.Seed + int64(i)
		g.Go(func() error {
			record, err := s.run(gctx, &SimulateInput{Scenario: input.Scenario, Seed: seed})
			if err != nil {
				return errors.Wrapf(err, "run with seed %d failed", seed)
			}
			if input.Store {
				if err := s.repository.Create(gctx, record); err != nil {
					return errors.Wrap(err, "failed to store result").WithMeta("result_id", record.ID)
				}
			}

			mu.Lock()
			defer mu.Unlock()
			summary.Events += record.Events
			if record.Draw() {
				summary.Draws++
			}
			for _, teamID := range record.Winners {
				summary.Wins[teamID]++
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Info("batch finished",
		zap.String("scenario", input.Scenario),
		zap.Int("runs", input.Runs),
		zap.Int("draws", summary.Draws))

	return summary, nil
}

// GetResult retrieves a stored outcome
func (s *service) GetResult(ctx context.Context, id string) (*results.Record, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.InvalidArgument("result ID is required")
	}

	record, err := s.repository.Get(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get result '%s'", id).
			WithMeta("result_id", id)
	}

	return record, nil
}

// ListResults lists stored outcomes, most recent first
func (s *service) ListResults(ctx context.Context, input *ListResultsInput) ([]*results.Record, error) {
	if input == nil {
		input = &ListResultsInput{}
	}

	if input.Winner == "" {
		records, err := s.repository.List(ctx, input.Limit)
		if err != nil {
			return nil, errors.Wrap(err, "failed to list results")
		}
		return records, nil
	}

	records, err := s.repository.ListByWinner(ctx, input.Winner)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list results").WithMeta("team_id", input.Winner)
	}
	if input.Limit > 0 && len(records) > input.Limit {
		records = records[:input.Limit]
	}
	return records, nil
}

// run plays one combat on a private roster, roller and bus
func (s *service) run(ctx context.Context, input *SimulateInput) (*results.Record, error) {
	roster, err := s.catalog.BuildRoster(input.Scenario, input.Interactive)
	if err != nil {
		return nil, err
	}

	id := s.uuidGenerator.New()
	logger := s.logger.With(zap.String("combat", id), zap.Int64("seed", input.Seed))

	bus := events.NewBus(events.WithLogger(logger))
	log := newCombatLog(s.logSize)
	bus.SubscribeAll(log)

	c, err := domain.New(&domain.Config{
		ID:    id,
		Units: roster,
		Env: domain.Env{
			Roller:   dice.NewRandomRoller(input.Seed),
			Selector: input.Selector,
		},
		Renderer: input.Renderer,
		Events:   bus,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}

	result, err := c.Run(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "combat %s failed", id).
			WithMeta("scenario", input.Scenario).
			WithMeta("seed", input.Seed)
	}

	return &results.Record{
		ID:        id,
		Scenario:  input.Scenario,
		Seed:      input.Seed,
		Winners:   result.Winners,
		Events:    result.Events,
		Survivors: result.Survivors,
		Log:       log.Entries(),
		CreatedAt: s.timeProvider.Now(),
	}, nil
}
