package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
)

// LegacyBatch is the history read from the desktop database.
type LegacyBatch struct {
	Readings   []domain.Reading
	Cartridges []domain.CartridgeRecord
	Chemicals  []domain.Chemical
	Movements  []domain.ChemicalMovement
}

// LegacyImportResult counts the rows written per table.
type LegacyImportResult struct {
	Readings   int
	Cartridges int
	Chemicals  int
	Movements  int
}

// ImportLegacy copies a legacy batch in one transaction, so a failure leaves
// nothing half-copied. Readings and chemicals are upserted by their natural
// key; cartridge records and movements only go into empty tables. Running it
// twice writes the same state.
func (db *DB) ImportLegacy(ctx context.Context, batch LegacyBatch) (LegacyImportResult, error) {
	var result LegacyImportResult

	err := db.WithTx(ctx, func(tx *sqlx.Tx) error {
		for i := range batch.Readings {
			if err := upsertReading(ctx, tx, &batch.Readings[i]); err != nil {
				return err
			}
		}
		result.Readings = len(batch.Readings)

		for _, c := range batch.Chemicals {
			if err := importChemical(ctx, tx, c); err != nil {
				return err
			}
		}
		result.Chemicals = len(batch.Chemicals)

		n, err := importCartridges(ctx, tx, batch.Cartridges)
		if err != nil {
			return err
		}
		result.Cartridges = n

		if err := ensureChemicals(ctx, tx, batch.Movements); err != nil {
			return err
		}
		n, err = importMovements(ctx, tx, batch.Movements)
		if err != nil {
			return err
		}
		result.Movements = n
		return nil
	})
	if err != nil {
		return LegacyImportResult{}, err
	}

	return result, nil
}

// importChemical takes the balance and unit cost from the legacy row. Stock
// rules of an existing chemical are kept.
func importChemical(ctx context.Context, tx *sqlx.Tx, c domain.Chemical) error {
	query := `
		INSERT INTO chemicals (name, qty, unit_cost, min_level, max_level, warn_level)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (name)
		DO UPDATE SET
			qty = EXCLUDED.qty,
			unit_cost = EXCLUDED.unit_cost,
			updated_at = NOW()
	`
	if _, err := tx.ExecContext(ctx, query,
		c.Name, c.Qty, c.UnitCost, c.MinLevel, c.MaxLevel, c.WarnLevel,
	); err != nil {
		return fmt.Errorf("error importing chemical %q: %w", c.Name, err)
	}
	return nil
}

// ensureChemicals creates the chemicals that legacy movements name but the
// legacy chemicals table lacked.
func ensureChemicals(ctx context.Context, tx *sqlx.Tx, movements []domain.ChemicalMovement) error {
	seen := make(map[string]bool)
	for _, m := range movements {
		if seen[m.ChemicalName] {
			continue
		}
		seen[m.ChemicalName] = true
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO chemicals (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, m.ChemicalName,
		); err != nil {
			return fmt.Errorf("error creating chemical %q: %w", m.ChemicalName, err)
		}
	}
	return nil
}
