package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/report"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/service"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/storage"
	"github.com/omarembaby39-afk/UMQASR-RO/pkg/logger"
)

func runMigrate(c *cli.Context) error {
	e := envFrom(c)
	if err := e.db.Migrate(c.Context); err != nil {
		return err
	}
	logger.Log.Info().Msg("schema is up to date")
	return nil
}

func runSeed(c *cli.Context) error {
	e := envFrom(c)

	chemicals, err := service.NewChemicalService(e.repos.Chemicals, e.cache, e.cfg.Plant.MonthlyReset()).Seed(c.Context)
	if err != nil {
		return fmt.Errorf("error seeding chemicals: %w", err)
	}

	tasks, err := service.NewMaintenanceService(e.repos.Maintenance, e.cache).SeedCatalog(c.Context)
	if err != nil {
		return fmt.Errorf("error seeding maintenance catalog: %w", err)
	}

	operatorTasks, err := service.NewTodoService(e.repos.Todos, e.cache, e.cfg.Plant.Operators).Seed(c.Context)
	if errors.Is(err, domain.ErrPrecondition) {
		logger.Log.Warn().Err(err).Msg("operator tasks not seeded")
	} else if err != nil {
		return fmt.Errorf("error seeding operator tasks: %w", err)
	}

	logger.Log.Info().
		Int("chemicals", chemicals).
		Int("maintenance_tasks", tasks).
		Int("operator_tasks", operatorTasks).
		Msg("seed completed")
	return nil
}

func runSchedule(c *cli.Context) error {
	e := envFrom(c)
	start, err := startDate(c)
	if err != nil {
		return err
	}

	created, err := service.NewMaintenanceService(e.repos.Maintenance, e.cache).GenerateSchedule(c.Context, start, c.Int("days"))
	if err != nil {
		return err
	}
	logger.Log.Info().Int("work_orders", created).Int("days", c.Int("days")).Msg("maintenance schedule generated")
	return nil
}

func runTodos(c *cli.Context) error {
	e := envFrom(c)
	start, err := startDate(c)
	if err != nil {
		return err
	}

	created, err := service.NewTodoService(e.repos.Todos, e.cache, e.cfg.Plant.Operators).Generate(c.Context, start, c.Int("days"))
	if err != nil {
		return err
	}
	logger.Log.Info().Int("todos", created).Int("days", c.Int("days")).Msg("operator to-dos generated")
	return nil
}

func runRebuildProduction(c *cli.Context) error {
	e := envFrom(c)
	rows, err := service.NewProductionService(e.repos.Flowmeter, e.repos.Production, e.cache).Rebuild(c.Context)
	if err != nil {
		return err
	}
	logger.Log.Info().Int("days", len(rows)).Msg("daily production rebuilt")
	return nil
}

func runImportReadings(c *cli.Context) error {
	e := envFrom(c)
	path := c.String("file")

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	readings, rowErrs, err := report.ReadReadingsXLSX(file)
	if err != nil {
		return err
	}
	for _, re := range rowErrs {
		logger.Log.Warn().Int("row", re.Row).Str("reason", re.Reason).Msg("row skipped")
	}

	imported, err := service.NewReadingService(e.repos.Readings, e.cache).Import(c.Context, readings)
	if err != nil {
		return err
	}
	logger.Log.Info().Str("file", path).Int("imported", imported).Int("skipped", len(rowErrs)).Msg("readings imported")
	return nil
}

func runExportReport(c *cli.Context) error {
	e := envFrom(c)

	now := time.Now()
	year, month := c.Int("year"), c.Int("month")
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}

	var archive storage.ObjectStorage
	if c.Bool("archive") {
		a, err := storage.Open(c.Context, e.cfg.Storage, e.cfg.Report.OutputDir)
		if err != nil {
			return err
		}
		archive = a
	}

	reports := service.NewReportService(service.ReportSources{
		Readings:   e.repos.Readings,
		Cartridges: e.repos.Cartridges,
		Chemicals:  e.repos.Chemicals,
		Production: e.repos.Production,
	}, e.cache, archive, e.cfg.Plant.Name)

	doc, err := reports.MonthlyDocument(c.Context, year, month, c.String("format"))
	if err != nil {
		return err
	}

	outDir := c.String("out")
	if outDir == "" {
		outDir = e.cfg.Report.OutputDir
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed creating %s: %w", outDir, err)
	}
	dest := filepath.Join(outDir, doc.FileName)
	if err := os.WriteFile(dest, doc.Data, 0o644); err != nil {
		return fmt.Errorf("failed writing %s: %w", dest, err)
	}
	logger.Log.Info().Str("file", dest).Int("bytes", len(doc.Data)).Msg("report written")

	if archive != nil {
		archived, err := reports.Archive(c.Context, doc)
		if err != nil {
			return err
		}
		logger.Log.Info().Str("key", archived.Key).Str("url", archived.URL).Msg("report archived")
	}
	return nil
}

func runResetStock(c *cli.Context) error {
	e := envFrom(c)
	period := c.String("period")
	n, err := service.NewChemicalService(e.repos.Chemicals, e.cache, e.cfg.Plant.MonthlyReset()).ResetPeriod(c.Context, period)
	if err != nil {
		return err
	}
	logger.Log.Info().Str("period", period).Int("chemicals", n).Msg("stock period reset")
	return nil
}

func startDate(c *cli.Context) (domain.Date, error) {
	raw := c.String("start")
	if raw == "" {
		return domain.Today(), nil
	}
	d, err := domain.ParseDate(raw)
	if err != nil {
		return domain.Date{}, fmt.Errorf("invalid --start: %w", err)
	}
	return d, nil
}
