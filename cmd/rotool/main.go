package main

import (
	"context"
	"fmt"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/urfave/cli/v2"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/cache"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/config"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/repository/postgres"
	"github.com/omarembaby39-afk/UMQASR-RO/pkg/logger"
)

type envKey struct{}

// env is what every command shares once the database is open.
type env struct {
	cfg   *config.Config
	db    *postgres.DB
	repos *postgres.Repositories
	cache cache.DashboardCache
}

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "db-url",
		Usage:   "Database connection string (defaults to the DB_* settings)",
		EnvVars: []string{"DATABASE_URL"},
	}
}

func initDB(c *cli.Context) error {
	cfg := config.Load()
	logger.Setup(cfg.Server.Mode, cfg.Server.LogLevel)

	dbCfg := cfg.Database
	dbCfg.Driver = "pgx"
	if url := c.String("db-url"); url != "" {
		dbCfg.URL = url
	}

	db, err := postgres.NewDB(&dbCfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	dashboardCache, err := cache.NewDashboardCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("redis unavailable, cached views will expire on their own")
		dashboardCache = cache.NewNoopDashboardCache()
	}

	c.Context = context.WithValue(c.Context, envKey{}, &env{
		cfg:   cfg,
		db:    db,
		repos: postgres.NewRepositories(db),
		cache: dashboardCache,
	})
	return nil
}

func closeDB(c *cli.Context) error {
	if e, ok := c.Context.Value(envKey{}).(*env); ok && e.db != nil {
		return e.db.Close()
	}
	return nil
}

func envFrom(c *cli.Context) *env {
	return c.Context.Value(envKey{}).(*env)
}

func main() {
	app := &cli.App{
		Name:  "rotool",
		Usage: "Administration tasks for the RO plant database",
		Flags: []cli.Flag{
			newDBURLFlag(),
		},
		Commands: withDB([]*cli.Command{
			{
				Name:   "migrate",
				Usage:  "Create or update the database schema",
				Action: runMigrate,
			},
			{
				Name:   "seed",
				Usage:  "Seed the default chemicals, maintenance catalog and operator tasks",
				Action: runSeed,
			},
			{
				Name:  "schedule",
				Usage: "Generate preventive maintenance work orders",
				Flags: []cli.Flag{
					newStartFlag(),
					newDaysFlag(),
				},
				Action: runSchedule,
			},
			{
				Name:  "todos",
				Usage: "Generate operator to-dos from the recurring task list",
				Flags: []cli.Flag{
					newStartFlag(),
					newDaysFlag(),
				},
				Action: runTodos,
			},
			{
				Name:   "rebuild-production",
				Usage:  "Recompute daily production from the flowmeter totalizer readings",
				Action: runRebuildProduction,
			},
			{
				Name:  "import-readings",
				Usage: "Import daily readings from an Excel workbook",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Usage:    "Path of the .xlsx workbook",
						Required: true,
					},
				},
				Action: runImportReadings,
			},
			{
				Name:  "migrate-sqlite",
				Usage: "Copy the history of a legacy SQLite database into Postgres",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "file",
						Usage:   "Path of the legacy SQLite database",
						Value:   "ro_system.db",
						EnvVars: []string{"LEGACY_SQLITE_PATH"},
					},
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "Only report what would be copied",
					},
				},
				Action: runMigrateSQLite,
			},
			{
				Name:  "export-report",
				Usage: "Render the monthly report to a file",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "year", Usage: "Report year (defaults to the current year)"},
					&cli.IntFlag{Name: "month", Usage: "Report month 1-12 (defaults to the current month)"},
					&cli.StringFlag{Name: "format", Usage: "pdf or xlsx", Value: "pdf"},
					&cli.StringFlag{Name: "out", Usage: "Output directory (defaults to REPORT_OUTPUT_DIR)"},
					&cli.BoolFlag{Name: "archive", Usage: "Also upload the file to the report archive"},
				},
				Action: runExportReport,
			},
			{
				Name:  "reset-stock",
				Usage: "Zero the chemical balances for a new stock period",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "period",
						Usage:    "Stock period as YYYY-MM",
						Required: true,
					},
				},
				Action: runResetStock,
			},
		}),
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("rotool failed")
	}
}

// withDB opens the database before each command and closes it afterwards.
func withDB(commands []*cli.Command) []*cli.Command {
	for _, cmd := range commands {
		cmd.Before = initDB
		cmd.After = closeDB
	}
	return commands
}

func newStartFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "start",
		Usage: "First day of the window as YYYY-MM-DD (defaults to today)",
	}
}

func newDaysFlag() *cli.IntFlag {
	return &cli.IntFlag{
		Name:    "days",
		Usage:   "Number of days to generate ahead",
		Value:   90,
		EnvVars: []string{"SCHEDULE_DAYS_AHEAD"},
	}
}
