package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/cache"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/calc"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/config"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/repository"
)

// DashboardSources are the repositories the dashboard reads from.
type DashboardSources struct {
	Readings    repository.ReadingRepository
	Cartridges  repository.CartridgeRepository
	Chemicals   repository.ChemicalRepository
	Production  repository.ProductionRepository
	Maintenance repository.MaintenanceRepository
	Todos       repository.TodoRepository
}

type DashboardService struct {
	src   DashboardSources
	cache cache.DashboardCache
	plant config.PlantConfig
	today func() domain.Date
}

func NewDashboardService(src DashboardSources, cacheImpl cache.DashboardCache, plant config.PlantConfig) *DashboardService {
	if plant.ComplianceWindowDays <= 0 {
		plant.ComplianceWindowDays = 30
	}
	return &DashboardService{src: src, cache: orNoop(cacheImpl), plant: plant, today: domain.Today}
}

// Get returns the KPI cards and chart series of the main page for today.
func (s *DashboardService) Get(ctx context.Context) (*domain.Dashboard, error) {
	today := s.today()

	if dashboard, ok, err := s.cache.GetDashboard(ctx, today); err == nil && ok {
		return dashboard, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("dashboard: cache get failed")
	}

	dashboard, err := s.build(ctx, today)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetDashboard(ctx, today, dashboard); err != nil {
		log.Warn().Err(err).Msg("dashboard: cache set failed")
	}
	return dashboard, nil
}

func (s *DashboardService) build(ctx context.Context, today domain.Date) (*domain.Dashboard, error) {
	window := lastDays(today, s.plant.ComplianceWindowDays)
	d := &domain.Dashboard{
		PlantName:   s.plant.Name,
		CapacityM3H: s.plant.CapacityM3H,
		WindowDays:  s.plant.ComplianceWindowDays,
	}

	var (
		windowReadings []domain.Reading
		chemicals      []domain.Chemical
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		latest, err := s.src.Readings.Latest(gctx)
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		tds, ph, date := latest.TDS, latest.PH, latest.ReadingDate
		d.LastTDS, d.LastPH, d.LastReadingDate = &tds, &ph, &date
		return nil
	})

	g.Go(func() error {
		n, err := s.src.Readings.Count(gctx)
		d.TotalRecords = n
		return err
	})

	g.Go(func() error {
		var err error
		windowReadings, err = s.src.Readings.ListRange(gctx, window)
		return err
	})

	g.Go(func() error {
		rows, err := s.src.Production.ListRange(gctx, domain.DateRange{From: today, To: today})
		if err != nil {
			return err
		}
		for _, p := range rows {
			d.TodayProduction += p.Value
		}
		return nil
	})

	g.Go(func() error {
		latest, err := s.src.Cartridges.Latest(gctx)
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		status := calc.ClassifyDP(latest.DP)
		d.DP = &status
		return nil
	})

	g.Go(func() error {
		var err error
		chemicals, err = s.src.Chemicals.List(gctx)
		return err
	})

	g.Go(func() error {
		n, err := s.src.Maintenance.CountOverdue(gctx, today)
		d.OverdueWorkOrders = n
		return err
	})

	g.Go(func() error {
		n, err := s.src.Todos.CountPending(gctx, today)
		d.PendingTodosToday = n
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	d.Compliance = calc.EvaluateCompliance(windowReadings, domain.DefaultQualityLimits)
	d.WindowProduction = calc.SumProduction(windowReadings)

	d.TDSTrend = make([]domain.ChartPoint, 0, len(windowReadings))
	d.PHTrend = make([]domain.ChartPoint, 0, len(windowReadings))
	d.ConductivityTrend = make([]domain.ChartPoint, 0, len(windowReadings))
	d.ProductionBars = make([]domain.ChartPoint, 0, len(windowReadings))
	for _, r := range windowReadings {
		d.TDSTrend = append(d.TDSTrend, domain.ChartPoint{Date: r.ReadingDate, Value: r.TDS})
		d.PHTrend = append(d.PHTrend, domain.ChartPoint{Date: r.ReadingDate, Value: r.PH})
		d.ConductivityTrend = append(d.ConductivityTrend, domain.ChartPoint{Date: r.ReadingDate, Value: r.Conductivity})
		d.ProductionBars = append(d.ProductionBars, domain.ChartPoint{Date: r.ReadingDate, Value: r.Production})
	}

	d.Stock = make([]domain.StockCard, 0, len(chemicals))
	for _, c := range chemicals {
		d.Stock = append(d.Stock, calc.BuildStockCard(c))
	}

	return d, nil
}
