package service

import (
	"context"
	"errors"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/cache"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/calc"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/repository"
)

type CartridgeService struct {
	repo  repository.CartridgeRepository
	cache cache.DashboardCache
}

func NewCartridgeService(repo repository.CartridgeRepository, cacheImpl cache.DashboardCache) *CartridgeService {
	return &CartridgeService{repo: repo, cache: orNoop(cacheImpl)}
}

// Record stores a pressure check or cartridge change. DP is always derived
// from the two pressures; a value sent by the caller is ignored.
func (s *CartridgeService) Record(ctx context.Context, record *domain.CartridgeRecord) (domain.DPStatus, error) {
	if err := record.Validate(); err != nil {
		return domain.DPStatus{}, err
	}
	record.DP = calc.DifferentialPressure(record.PressureBefore, record.PressureAfter)
	if !record.IsChange {
		record.ChangeCost = 0
	}

	if err := s.repo.Insert(ctx, record); err != nil {
		return domain.DPStatus{}, err
	}
	invalidate(ctx, s.cache, "record cartridge")
	return calc.ClassifyDP(record.DP), nil
}

func (s *CartridgeService) List(ctx context.Context, r domain.DateRange) ([]domain.CartridgeRecord, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return s.repo.ListRange(ctx, r)
}

// Status classifies the latest record. It returns nil when nothing was recorded yet.
func (s *CartridgeService) Status(ctx context.Context) (*domain.DPStatus, error) {
	latest, err := s.repo.Latest(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	status := calc.ClassifyDP(latest.DP)
	return &status, nil
}
