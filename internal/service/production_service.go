package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/cache"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/calc"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/repository"
)

type ProductionService struct {
	flowmeter  repository.FlowmeterRepository
	production repository.ProductionRepository
	cache      cache.DashboardCache
}

func NewProductionService(flowmeter repository.FlowmeterRepository, production repository.ProductionRepository, cacheImpl cache.DashboardCache) *ProductionService {
	return &ProductionService{flowmeter: flowmeter, production: production, cache: orNoop(cacheImpl)}
}

// RecordFlowmeter stores the totalizer value of a day, replacing an earlier one.
func (s *ProductionService) RecordFlowmeter(ctx context.Context, reading *domain.FlowmeterReading) error {
	reading.Operator = strings.TrimSpace(reading.Operator)
	if err := reading.Validate(); err != nil {
		return err
	}
	if err := s.flowmeter.Upsert(ctx, reading); err != nil {
		return err
	}
	invalidate(ctx, s.cache, "record flowmeter")
	return nil
}

// Rebuild recomputes the whole daily production table from the flowmeter
// series. It fails with ErrPrecondition, leaving the table as it was, when
// fewer than two readings exist.
func (s *ProductionService) Rebuild(ctx context.Context) ([]domain.DailyProduction, error) {
	series, err := s.flowmeter.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := calc.DeriveProduction(series)
	if err != nil {
		return nil, err
	}

	if err := s.production.Replace(ctx, rows); err != nil {
		return nil, err
	}
	invalidate(ctx, s.cache, "rebuild production")

	log.Info().Int("days", len(rows)).Msg("daily production rebuilt")
	return rows, nil
}

func (s *ProductionService) List(ctx context.Context, r domain.DateRange) ([]domain.DailyProduction, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return s.production.ListRange(ctx, r)
}

func (s *ProductionService) Flowmeter(ctx context.Context) ([]domain.FlowmeterReading, error) {
	return s.flowmeter.ListAll(ctx)
}
