package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
)

const cartridgeColumns = `id, record_date, pressure_before, pressure_after, dp, remarks, is_change, change_cost, created_at`

type cartridgeRepository struct {
	db *DB
}

func NewCartridgeRepository(db *DB) *cartridgeRepository {
	return &cartridgeRepository{db: db}
}

func (r *cartridgeRepository) Insert(ctx context.Context, record *domain.CartridgeRecord) error {
	return insertCartridge(ctx, r.db, record)
}

// ImportRecords copies historical records. Cartridge records have no natural
// key, so the copy only runs against an empty table and a repeated import adds nothing.
func (r *cartridgeRepository) ImportRecords(ctx context.Context, records []domain.CartridgeRecord) (int, error) {
	var inserted int
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		n, err := importCartridges(ctx, tx, records)
		inserted = n
		return err
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func insertCartridge(ctx context.Context, q sqlx.QueryerContext, record *domain.CartridgeRecord) error {
	query := `
		INSERT INTO cartridge_records (
			record_date, pressure_before, pressure_after, dp,
			remarks, is_change, change_cost
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := q.QueryRowxContext(ctx, query,
		record.RecordDate,
		record.PressureBefore,
		record.PressureAfter,
		record.DP,
		record.Remarks,
		record.IsChange,
		record.ChangeCost,
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting cartridge record: %w", err)
	}

	return nil
}

func importCartridges(ctx context.Context, tx *sqlx.Tx, records []domain.CartridgeRecord) (int, error) {
	var existing int
	if err := tx.GetContext(ctx, &existing, `SELECT COUNT(*) FROM cartridge_records`); err != nil {
		return 0, fmt.Errorf("error counting cartridge records: %w", err)
	}
	if existing > 0 {
		return 0, nil
	}

	for i := range records {
		if err := insertCartridge(ctx, tx, &records[i]); err != nil {
			return 0, err
		}
	}
	return len(records), nil
}

func (r *cartridgeRepository) ListRange(ctx context.Context, rng domain.DateRange) ([]domain.CartridgeRecord, error) {
	query := `SELECT ` + cartridgeColumns + `
		FROM cartridge_records
		WHERE record_date BETWEEN $1 AND $2
		ORDER BY record_date, id`

	records := []domain.CartridgeRecord{}
	if err := r.db.SelectContext(ctx, &records, query, rng.From, rng.To); err != nil {
		return nil, fmt.Errorf("error listing cartridge records: %w", err)
	}

	return records, nil
}

func (r *cartridgeRepository) Latest(ctx context.Context) (*domain.CartridgeRecord, error) {
	query := `SELECT ` + cartridgeColumns + `
		FROM cartridge_records
		ORDER BY record_date DESC, id DESC
		LIMIT 1`

	var record domain.CartridgeRecord
	if err := r.db.GetContext(ctx, &record, query); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: no cartridge records", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("error getting latest cartridge record: %w", err)
	}

	return &record, nil
}
