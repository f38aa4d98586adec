package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/cache"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/calc"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/repository"
)

var periodPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

type ChemicalService struct {
	repo         repository.ChemicalRepository
	cache        cache.DashboardCache
	monthlyReset bool
	today        func() domain.Date
}

// NewChemicalService creates the service. With monthlyReset the stock balance
// restarts at zero with the first movement of every calendar month.
func NewChemicalService(repo repository.ChemicalRepository, cacheImpl cache.DashboardCache, monthlyReset bool) *ChemicalService {
	return &ChemicalService{repo: repo, cache: orNoop(cacheImpl), monthlyReset: monthlyReset, today: domain.Today}
}

// Seed inserts the default chemical list; existing names are left untouched.
func (s *ChemicalService) Seed(ctx context.Context) (int, error) {
	n, err := s.repo.Seed(ctx, DefaultChemicals)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		invalidate(ctx, s.cache, "seed chemicals")
	}
	return n, nil
}

// Create adds a chemical or updates the rule and cost of an existing one.
func (s *ChemicalService) Create(ctx context.Context, chemical *domain.Chemical) error {
	chemical.Name = strings.TrimSpace(chemical.Name)
	if chemical.Name == "" {
		return fmt.Errorf("%w: chemical name is required", domain.ErrInvalidInput)
	}
	if err := validateRule(chemical.Rule()); err != nil {
		return err
	}
	if chemical.UnitCost < 0 || chemical.Qty < 0 {
		return fmt.Errorf("%w: quantity and unit cost must not be negative", domain.ErrInvalidInput)
	}
	if err := s.repo.Upsert(ctx, chemical); err != nil {
		return err
	}
	invalidate(ctx, s.cache, "upsert chemical")
	return nil
}

func (s *ChemicalService) List(ctx context.Context) ([]domain.Chemical, error) {
	return s.repo.List(ctx)
}

// StockCards classifies every chemical against its rule.
func (s *ChemicalService) StockCards(ctx context.Context) ([]domain.StockCard, error) {
	chemicals, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	cards := make([]domain.StockCard, 0, len(chemicals))
	for _, c := range chemicals {
		cards = append(cards, calc.BuildStockCard(c))
	}
	return cards, nil
}

func (s *ChemicalService) UpdateUnitCost(ctx context.Context, name string, unitCost float64) error {
	if unitCost < 0 {
		return fmt.Errorf("%w: unit cost must not be negative", domain.ErrInvalidInput)
	}
	if err := s.repo.UpdateUnitCost(ctx, name, unitCost); err != nil {
		return err
	}
	invalidate(ctx, s.cache, "update unit cost")
	return nil
}

func (s *ChemicalService) UpdateRule(ctx context.Context, name string, rule domain.StockRule) error {
	if err := validateRule(rule); err != nil {
		return err
	}
	if err := s.repo.UpdateRule(ctx, name, rule); err != nil {
		return err
	}
	invalidate(ctx, s.cache, "update stock rule")
	return nil
}

// PostMovement books an IN or OUT movement and returns the chemical with its
// new balance. OUT never takes the balance below zero.
func (s *ChemicalService) PostMovement(ctx context.Context, movement *domain.ChemicalMovement) (*domain.Chemical, error) {
	movement.ChemicalName = strings.TrimSpace(movement.ChemicalName)
	if err := movement.Validate(); err != nil {
		return nil, err
	}
	movement.MovementType, _ = domain.ParseMovementType(string(movement.MovementType))

	chemical, err := s.repo.PostMovement(ctx, movement, s.monthlyReset)
	if err != nil {
		return nil, err
	}
	invalidate(ctx, s.cache, "post movement")

	log.Debug().
		Str("chemical", chemical.Name).
		Str("type", string(movement.MovementType)).
		Float64("qty", movement.Qty).
		Float64("balance", chemical.Qty).
		Msg("chemical movement posted")
	return chemical, nil
}

func (s *ChemicalService) Movements(ctx context.Context, filter repository.MovementFilter) ([]domain.ChemicalMovement, error) {
	if filter.Type != "" {
		t, err := domain.ParseMovementType(string(filter.Type))
		if err != nil {
			return nil, err
		}
		filter.Type = t
	}
	return s.repo.ListMovements(ctx, filter)
}

// Ledger returns the movements of the filter as qty in / qty out / balance lines.
func (s *ChemicalService) Ledger(ctx context.Context, filter repository.MovementFilter) ([]domain.LedgerEntry, error) {
	movements, err := s.Movements(ctx, filter)
	if err != nil {
		return nil, err
	}
	return calc.Ledger(movements), nil
}

// ResetPeriod zeroes every balance and opens the given "YYYY-MM" stock period.
// Only monthly_reset deployments reset balances, and never for a future month.
func (s *ChemicalService) ResetPeriod(ctx context.Context, period string) (int, error) {
	if !periodPattern.MatchString(period) {
		return 0, fmt.Errorf("%w: period %q must be YYYY-MM", domain.ErrInvalidInput, period)
	}
	if !s.monthlyReset {
		return 0, fmt.Errorf("%w: stock balances carry forward, period reset is disabled", domain.ErrPrecondition)
	}
	if current := s.today().Period(); period > current {
		return 0, fmt.Errorf("%w: period %s is after the current period %s", domain.ErrInvalidInput, period, current)
	}
	n, err := s.repo.ResetStockPeriod(ctx, period)
	if err != nil {
		return 0, err
	}
	invalidate(ctx, s.cache, "reset stock period")
	log.Info().Str("period", period).Int("chemicals", n).Msg("stock period reset")
	return n, nil
}

func validateRule(rule domain.StockRule) error {
	if rule.Min < 0 || rule.Max < 0 || rule.Warn < 0 {
		return fmt.Errorf("%w: stock thresholds must not be negative", domain.ErrInvalidInput)
	}
	if rule.Max > 0 && rule.Max < rule.Min {
		return fmt.Errorf("%w: max level %.2f below min level %.2f", domain.ErrInvalidInput, rule.Max, rule.Min)
	}
	return nil
}
