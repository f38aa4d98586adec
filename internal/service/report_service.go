package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/cache"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/calc"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/report"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/repository"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/storage"
)

// Export formats.
const (
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
)

const archivePrefix = "reports/"

// Document is a rendered report ready to be downloaded or archived.
type Document struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ReportSources are the repositories the reports read from.
type ReportSources struct {
	Readings   repository.ReadingRepository
	Cartridges repository.CartridgeRepository
	Chemicals  repository.ChemicalRepository
	Production repository.ProductionRepository
}

type ReportService struct {
	src       ReportSources
	cache     cache.DashboardCache
	archive   storage.ObjectStorage
	plantName string
}

// NewReportService creates the service. archive may be nil, in which case
// Archive fails with ErrPrecondition.
func NewReportService(src ReportSources, cacheImpl cache.DashboardCache, archive storage.ObjectStorage, plantName string) *ReportService {
	return &ReportService{src: src, cache: orNoop(cacheImpl), archive: archive, plantName: plantName}
}

// Monthly gathers quality, production and consumable cost figures of a month.
func (s *ReportService) Monthly(ctx context.Context, year, month int) (*domain.MonthlyReport, error) {
	if month < 1 || month > 12 || year < 2000 || year > 2100 {
		return nil, fmt.Errorf("%w: invalid month %04d-%02d", domain.ErrInvalidInput, year, month)
	}

	if cached, ok, err := s.cache.GetMonthlyReport(ctx, year, month); err == nil && ok {
		return cached, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("report: cache get monthly failed")
	}

	rng := domain.MonthRange(year, time.Month(month))

	var (
		readings   []domain.Reading
		cartridges []domain.CartridgeRecord
		movements  []domain.ChemicalMovement
		chemicals  []domain.Chemical
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		readings, err = s.src.Readings.ListRange(gctx, rng)
		return err
	})
	g.Go(func() error {
		var err error
		cartridges, err = s.src.Cartridges.ListRange(gctx, rng)
		return err
	})
	g.Go(func() error {
		var err error
		movements, err = s.src.Chemicals.ListMovements(gctx, repository.MovementFilter{
			Type: domain.MovementOut,
			From: rng.From,
			To:   rng.To,
		})
		return err
	})
	g.Go(func() error {
		var err error
		chemicals, err = s.src.Chemicals.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	unitCosts := make(map[string]float64, len(chemicals))
	for _, c := range chemicals {
		unitCosts[c.Name] = c.UnitCost
	}

	avgTDS, avgPH := calc.Averages(readings)
	compliance := calc.EvaluateCompliance(readings, domain.DefaultQualityLimits)
	production := calc.SumProduction(readings)

	r := &domain.MonthlyReport{
		PlantName:     s.plantName,
		Year:          year,
		Month:         month,
		Range:         rng,
		Readings:      readings,
		AvgTDS:        avgTDS,
		AvgPH:         avgPH,
		Compliance:    compliance,
		OutOfSpecDays: compliance.OutOfSpec,
		ProductionM3:  production,
		Cartridges:    cartridges,
		Cost: calc.AggregateCost(calc.CostInput{
			Movements:    movements,
			UnitCosts:    unitCosts,
			Cartridges:   cartridges,
			ProductionM3: production,
		}),
	}

	if err := s.cache.SetMonthlyReport(ctx, r); err != nil {
		log.Warn().Err(err).Msg("report: cache set monthly failed")
	}
	return r, nil
}

// MonthlyDocument renders the monthly report in the requested format.
func (s *ReportService) MonthlyDocument(ctx context.Context, year, month int, format string) (*Document, error) {
	format, err := normalizeFormat(format)
	if err != nil {
		return nil, err
	}

	r, err := s.Monthly(ctx, year, month)
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("monthly_report_%04d_%02d.%s", year, month, format)
	if format == FormatXLSX {
		data, err := report.MonthlyExcel(r)
		if err != nil {
			return nil, err
		}
		return &Document{FileName: name, ContentType: report.ContentTypeXLSX, Data: data}, nil
	}

	data, err := report.MonthlyPDF(r)
	if err != nil {
		return nil, err
	}
	return &Document{FileName: name, ContentType: report.ContentTypePDF, Data: data}, nil
}

// Maintenance lists the maintenance notes and cartridge actions of the range.
func (s *ReportService) Maintenance(ctx context.Context, rng domain.DateRange) (*domain.MaintenanceReport, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}

	var (
		readings   []domain.Reading
		cartridges []domain.CartridgeRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		readings, err = s.src.Readings.ListRange(gctx, rng)
		return err
	})
	g.Go(func() error {
		var err error
		cartridges, err = s.src.Cartridges.ListRange(gctx, rng)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.MaintenanceReport{
		PlantName: s.plantName,
		Range:     rng,
		Entries:   calc.MaintenanceEntries(readings, cartridges),
	}, nil
}

func (s *ReportService) MaintenanceDocument(ctx context.Context, rng domain.DateRange) (*Document, error) {
	r, err := s.Maintenance(ctx, rng)
	if err != nil {
		return nil, err
	}
	data, err := report.MaintenancePDF(r)
	if err != nil {
		return nil, err
	}
	return &Document{
		FileName:    fmt.Sprintf("maintenance_report_%s_%s.pdf", rng.From, rng.To),
		ContentType: report.ContentTypePDF,
		Data:        data,
	}, nil
}

// ProductionDocument renders the derived daily production of the range as a workbook.
func (s *ReportService) ProductionDocument(ctx context.Context, rng domain.DateRange) (*Document, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}
	rows, err := s.src.Production.ListRange(ctx, rng)
	if err != nil {
		return nil, err
	}
	data, err := report.ProductionExcel(s.plantName, rows)
	if err != nil {
		return nil, err
	}
	return &Document{
		FileName:    fmt.Sprintf("production_%s_%s.xlsx", rng.From, rng.To),
		ContentType: report.ContentTypeXLSX,
		Data:        data,
	}, nil
}

// Archive uploads a rendered document under reports/<year>/.
func (s *ReportService) Archive(ctx context.Context, doc *Document) (*domain.ArchivedReport, error) {
	if s.archive == nil {
		return nil, fmt.Errorf("%w: report archive is not configured", domain.ErrPrecondition)
	}

	key := fmt.Sprintf("%s%d/%s", archivePrefix, time.Now().Year(), doc.FileName)
	url, err := s.archive.UploadObject(ctx, key, doc.Data, doc.ContentType)
	if err != nil {
		return nil, fmt.Errorf("failed archiving %s: %w", doc.FileName, err)
	}

	log.Info().Str("key", key).Int("bytes", len(doc.Data)).Msg("report archived")
	return &domain.ArchivedReport{Key: key, URL: url, Size: int64(len(doc.Data))}, nil
}

// Archived lists the archived reports.
func (s *ReportService) Archived(ctx context.Context) ([]domain.ArchivedReport, error) {
	if s.archive == nil {
		return nil, fmt.Errorf("%w: report archive is not configured", domain.ErrPrecondition)
	}
	objects, err := s.archive.ListObjects(ctx, archivePrefix)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ArchivedReport, 0, len(objects))
	for _, o := range objects {
		out = append(out, domain.ArchivedReport{Key: o.Key, Size: o.Size})
	}
	return out, nil
}

func normalizeFormat(format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatPDF:
		return FormatPDF, nil
	case FormatXLSX, "excel":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: unknown report format %q", domain.ErrInvalidInput, format)
	}
}
