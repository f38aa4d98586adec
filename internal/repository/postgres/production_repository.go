package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
)

type flowmeterRepository struct {
	db *DB
}

func NewFlowmeterRepository(db *DB) *flowmeterRepository {
	return &flowmeterRepository{db: db}
}

func (r *flowmeterRepository) Upsert(ctx context.Context, reading *domain.FlowmeterReading) error {
	query := `
		INSERT INTO flowmeter_readings (reading_date, value, operator, notes)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (reading_date)
		DO UPDATE SET
			value = EXCLUDED.value,
			operator = EXCLUDED.operator,
			notes = EXCLUDED.notes
		RETURNING id, created_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		reading.ReadingDate,
		reading.Value,
		reading.Operator,
		reading.Notes,
	).Scan(&reading.ID, &reading.CreatedAt)
	if err != nil {
		return fmt.Errorf("error upserting flowmeter reading: %w", err)
	}
	return nil
}

func (r *flowmeterRepository) ListAll(ctx context.Context) ([]domain.FlowmeterReading, error) {
	query := `
		SELECT id, reading_date, value, operator, notes, created_at
		FROM flowmeter_readings
		ORDER BY reading_date
	`

	readings := []domain.FlowmeterReading{}
	if err := r.db.SelectContext(ctx, &readings, query); err != nil {
		return nil, fmt.Errorf("error listing flowmeter readings: %w", err)
	}
	return readings, nil
}

type productionRepository struct {
	db *DB
}

func NewProductionRepository(db *DB) *productionRepository {
	return &productionRepository{db: db}
}

// Replace swaps the whole derived table. The exclusive lock serializes
// concurrent rebuilds; readers are not blocked.
func (r *productionRepository) Replace(ctx context.Context, rows []domain.DailyProduction) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `LOCK TABLE daily_production IN EXCLUSIVE MODE`); err != nil {
			return fmt.Errorf("error locking daily production: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM daily_production`); err != nil {
			return fmt.Errorf("error clearing daily production: %w", err)
		}

		query := `
			INSERT INTO daily_production (production_date, value, cumulative_month, cumulative_total)
			VALUES ($1, $2, $3, $4)
		`
		for _, row := range rows {
			if _, err := tx.ExecContext(ctx, query,
				row.ProductionDate, row.Value, row.CumulativeMonth, row.CumulativeTotal,
			); err != nil {
				return fmt.Errorf("error inserting daily production for %s: %w", row.ProductionDate, err)
			}
		}
		return nil
	})
}

func (r *productionRepository) ListRange(ctx context.Context, rng domain.DateRange) ([]domain.DailyProduction, error) {
	query := `
		SELECT production_date, value, cumulative_month, cumulative_total
		FROM daily_production
		WHERE production_date BETWEEN $1 AND $2
		ORDER BY production_date
	`

	rows := []domain.DailyProduction{}
	if err := r.db.SelectContext(ctx, &rows, query, rng.From, rng.To); err != nil {
		return nil, fmt.Errorf("error listing daily production: %w", err)
	}
	return rows, nil
}
