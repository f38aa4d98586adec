package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
)

const readingColumns = `id, reading_date, tds, ph, conductivity, flow_m3, production, maintenance, notes, created_at`

type readingRepository struct {
	db *DB
}

func NewReadingRepository(db *DB) *readingRepository {
	return &readingRepository{db: db}
}

const upsertReadingQuery = `
	INSERT INTO readings (
		reading_date, tds, ph, conductivity, flow_m3,
		production, maintenance, notes
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (reading_date)
	DO UPDATE SET
		tds = EXCLUDED.tds,
		ph = EXCLUDED.ph,
		conductivity = EXCLUDED.conductivity,
		flow_m3 = EXCLUDED.flow_m3,
		production = EXCLUDED.production,
		maintenance = EXCLUDED.maintenance,
		notes = EXCLUDED.notes,
		updated_at = NOW()
	RETURNING id, created_at
`

// Upsert writes the reading for its date, replacing an existing one.
func (r *readingRepository) Upsert(ctx context.Context, reading *domain.Reading) error {
	return upsertReading(ctx, r.db, reading)
}

// UpsertMany writes all readings in one transaction. Either every row is
// stored or none is.
func (r *readingRepository) UpsertMany(ctx context.Context, readings []domain.Reading) (int, error) {
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		for i := range readings {
			if err := upsertReading(ctx, tx, &readings[i]); err != nil {
				return fmt.Errorf("row %d (%s): %w", i+1, readings[i].ReadingDate, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(readings), nil
}

func upsertReading(ctx context.Context, q sqlx.QueryerContext, reading *domain.Reading) error {
	err := q.QueryRowxContext(ctx, upsertReadingQuery,
		reading.ReadingDate,
		reading.TDS,
		reading.PH,
		reading.Conductivity,
		reading.FlowM3,
		reading.Production,
		reading.Maintenance,
		reading.Notes,
	).Scan(&reading.ID, &reading.CreatedAt)
	if err != nil {
		return fmt.Errorf("error upserting reading: %w", err)
	}
	return nil
}

func (r *readingRepository) ListRange(ctx context.Context, rng domain.DateRange) ([]domain.Reading, error) {
	query := `SELECT ` + readingColumns + `
		FROM readings
		WHERE reading_date BETWEEN $1 AND $2
		ORDER BY reading_date`

	readings := []domain.Reading{}
	if err := r.db.SelectContext(ctx, &readings, query, rng.From, rng.To); err != nil {
		return nil, fmt.Errorf("error listing readings: %w", err)
	}

	return readings, nil
}

func (r *readingRepository) Latest(ctx context.Context) (*domain.Reading, error) {
	query := `SELECT ` + readingColumns + `
		FROM readings
		ORDER BY reading_date DESC
		LIMIT 1`

	var reading domain.Reading
	if err := r.db.GetContext(ctx, &reading, query); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: no readings recorded", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("error getting latest reading: %w", err)
	}

	return &reading, nil
}

func (r *readingRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM readings`); err != nil {
		return 0, fmt.Errorf("error counting readings: %w", err)
	}
	return count, nil
}
