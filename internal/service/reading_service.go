package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/cache"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/calc"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/repository"
)

type ReadingService struct {
	repo  repository.ReadingRepository
	cache cache.DashboardCache
}

func NewReadingService(repo repository.ReadingRepository, cacheImpl cache.DashboardCache) *ReadingService {
	return &ReadingService{repo: repo, cache: orNoop(cacheImpl)}
}

// Save stores the reading of its date, replacing an earlier entry for the same day.
func (s *ReadingService) Save(ctx context.Context, reading *domain.Reading) error {
	if err := reading.Validate(); err != nil {
		return err
	}
	if err := s.repo.Upsert(ctx, reading); err != nil {
		return err
	}
	invalidate(ctx, s.cache, "save reading")
	return nil
}

// Import saves a batch of readings atomically. Nothing is written when any
// reading is invalid or the store fails.
func (s *ReadingService) Import(ctx context.Context, readings []domain.Reading) (int, error) {
	for i := range readings {
		if err := readings[i].Validate(); err != nil {
			return 0, fmt.Errorf("reading %d (%s): %w", i+1, readings[i].ReadingDate, err)
		}
	}
	if len(readings) == 0 {
		return 0, nil
	}

	saved, err := s.repo.UpsertMany(ctx, readings)
	if err != nil {
		return 0, err
	}

	invalidate(ctx, s.cache, "import readings")
	log.Info().Int("count", saved).Msg("readings imported")
	return saved, nil
}

func (s *ReadingService) List(ctx context.Context, r domain.DateRange) ([]domain.Reading, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return s.repo.ListRange(ctx, r)
}

// Compliance evaluates the readings of the range against the quality limits.
func (s *ReadingService) Compliance(ctx context.Context, r domain.DateRange) (domain.Compliance, error) {
	readings, err := s.List(ctx, r)
	if err != nil {
		return domain.Compliance{}, err
	}
	return calc.EvaluateCompliance(readings, domain.DefaultQualityLimits), nil
}

func (s *ReadingService) Latest(ctx context.Context) (*domain.Reading, error) {
	return s.repo.Latest(ctx)
}
