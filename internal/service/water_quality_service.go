package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/cache"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/calc"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/repository"
)

type WaterQualityService struct {
	repo  repository.WaterQualityRepository
	cache cache.DashboardCache
}

func NewWaterQualityService(repo repository.WaterQualityRepository, cacheImpl cache.DashboardCache) *WaterQualityService {
	return &WaterQualityService{repo: repo, cache: orNoop(cacheImpl)}
}

func (s *WaterQualityService) Record(ctx context.Context, sample *domain.WaterQualitySample) error {
	if err := sample.Normalize(); err != nil {
		return err
	}
	if err := s.repo.Insert(ctx, sample); err != nil {
		return err
	}
	invalidate(ctx, s.cache, "record sample")
	return nil
}

func (s *WaterQualityService) List(ctx context.Context, r domain.DateRange) ([]domain.WaterQualitySample, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return s.repo.ListRange(ctx, r)
}

// Summary averages the samples of the range per sampling point and derives
// the salt rejection when feed and permeate were both sampled.
func (s *WaterQualityService) Summary(ctx context.Context, r domain.DateRange) (*domain.WaterQualitySummary, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	if summary, ok, err := s.cache.GetWaterQuality(ctx, r); err == nil && ok {
		return summary, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("water quality: cache get summary failed")
	}

	samples, err := s.repo.ListRange(ctx, r)
	if err != nil {
		return nil, err
	}
	summary := calc.SummarizeWaterQuality(r, samples)

	if err := s.cache.SetWaterQuality(ctx, &summary); err != nil {
		log.Warn().Err(err).Msg("water quality: cache set summary failed")
	}
	return &summary, nil
}
