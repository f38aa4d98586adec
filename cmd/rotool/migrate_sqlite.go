package main

import (
	"github.com/urfave/cli/v2"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/legacy"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/repository/postgres"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/service"
	"github.com/omarembaby39-afk/UMQASR-RO/pkg/logger"
)

func runMigrateSQLite(c *cli.Context) error {
	e := envFrom(c)
	path := c.String("file")

	src, err := legacy.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	snap, err := legacy.Load(c.Context, src)
	if err != nil {
		return err
	}

	batch := legacyBatch(snap)
	logger.Log.Info().
		Int("readings", len(batch.Readings)).
		Int("cartridge", len(batch.Cartridges)).
		Int("chemicals", len(batch.Chemicals)).
		Int("movements", len(batch.Movements)).
		Int("skipped", snap.Skipped+len(snap.Readings)-len(batch.Readings)).
		Msg("legacy database loaded")
	if c.Bool("dry-run") {
		return nil
	}

	if err := e.db.Migrate(c.Context); err != nil {
		return err
	}

	result, err := e.db.ImportLegacy(c.Context, batch)
	if err != nil {
		return err
	}
	if result.Cartridges == 0 && len(batch.Cartridges) > 0 {
		logger.Log.Warn().Msg("cartridge records already present, legacy records not copied")
	}
	if result.Movements == 0 && len(batch.Movements) > 0 {
		logger.Log.Warn().Msg("chemical movements already present, legacy movements not copied")
	}

	if err := e.cache.InvalidateAll(c.Context); err != nil {
		logger.Log.Warn().Err(err).Msg("cache invalidate failed")
	}

	logger.Log.Info().
		Int("readings", result.Readings).
		Int("cartridge", result.Cartridges).
		Int("chemicals", result.Chemicals).
		Int("movements", result.Movements).
		Str("file", path).
		Msg("legacy database migrated")
	return nil
}

// legacyBatch drops invalid readings and gives known chemicals their default
// stock rules.
func legacyBatch(snap *legacy.Snapshot) postgres.LegacyBatch {
	batch := postgres.LegacyBatch{
		Cartridges: snap.Cartridges,
		Movements:  snap.Movements,
	}

	for _, r := range snap.Readings {
		if err := r.Validate(); err != nil {
			logger.Log.Warn().Err(err).Str("date", r.ReadingDate.String()).Msg("reading skipped")
			continue
		}
		batch.Readings = append(batch.Readings, r)
	}

	for _, legacyChemical := range snap.Chemicals {
		chemical := catalogChemical(legacyChemical.Name)
		chemical.Qty = legacyChemical.Qty
		chemical.UnitCost = legacyChemical.UnitCost
		batch.Chemicals = append(batch.Chemicals, chemical)
	}
	return batch
}

// catalogChemical returns the default thresholds for known chemicals.
func catalogChemical(name string) domain.Chemical {
	for _, c := range service.DefaultChemicals {
		if c.Name == name {
			return c
		}
	}
	return domain.Chemical{Name: name}
}
