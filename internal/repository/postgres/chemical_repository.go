package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/calc"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/repository"
)

const (
	chemicalColumns = `id, name, qty, unit_cost, min_level, max_level, warn_level, stock_period, updated_at`
	movementColumns = `id, movement_date, chemical_name, movement_type, qty, balance_after, remarks, created_at`
)

type chemicalRepository struct {
	db *DB
}

func NewChemicalRepository(db *DB) *chemicalRepository {
	return &chemicalRepository{db: db}
}

func (r *chemicalRepository) List(ctx context.Context) ([]domain.Chemical, error) {
	chemicals := []domain.Chemical{}
	query := `SELECT ` + chemicalColumns + ` FROM chemicals ORDER BY name`
	if err := r.db.SelectContext(ctx, &chemicals, query); err != nil {
		return nil, fmt.Errorf("error listing chemicals: %w", err)
	}
	return chemicals, nil
}

func (r *chemicalRepository) Get(ctx context.Context, name string) (*domain.Chemical, error) {
	var chemical domain.Chemical
	query := `SELECT ` + chemicalColumns + ` FROM chemicals WHERE name = $1`
	if err := r.db.GetContext(ctx, &chemical, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: chemical %q", domain.ErrNotFound, name)
		}
		return nil, fmt.Errorf("error getting chemical: %w", err)
	}
	return &chemical, nil
}

// Seed inserts the chemicals that do not exist yet and returns how many were added.
func (r *chemicalRepository) Seed(ctx context.Context, chemicals []domain.Chemical) (int, error) {
	query := `
		INSERT INTO chemicals (name, qty, unit_cost, min_level, max_level, warn_level)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (name) DO NOTHING
	`

	var inserted int
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		for _, c := range chemicals {
			res, err := tx.ExecContext(ctx, query, c.Name, c.Qty, c.UnitCost, c.MinLevel, c.MaxLevel, c.WarnLevel)
			if err != nil {
				return fmt.Errorf("error seeding chemical %q: %w", c.Name, err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("error reading seeded rows: %w", err)
			}
			inserted += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}

// Upsert writes a chemical row as is, including its quantity.
func (r *chemicalRepository) Upsert(ctx context.Context, chemical *domain.Chemical) error {
	query := `
		INSERT INTO chemicals (name, qty, unit_cost, min_level, max_level, warn_level, stock_period)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (name)
		DO UPDATE SET
			qty = EXCLUDED.qty,
			unit_cost = EXCLUDED.unit_cost,
			min_level = EXCLUDED.min_level,
			max_level = EXCLUDED.max_level,
			warn_level = EXCLUDED.warn_level,
			stock_period = EXCLUDED.stock_period,
			updated_at = NOW()
		RETURNING id, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		chemical.Name,
		chemical.Qty,
		chemical.UnitCost,
		chemical.MinLevel,
		chemical.MaxLevel,
		chemical.WarnLevel,
		chemical.StockPeriod,
	).Scan(&chemical.ID, &chemical.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error upserting chemical: %w", err)
	}
	return nil
}

func (r *chemicalRepository) UpdateUnitCost(ctx context.Context, name string, unitCost float64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE chemicals SET unit_cost = $1, updated_at = NOW() WHERE name = $2`,
		unitCost, name)
	if err != nil {
		return fmt.Errorf("error updating unit cost: %w", err)
	}
	return requireAffected(res, "chemical "+name)
}

func (r *chemicalRepository) UpdateRule(ctx context.Context, name string, rule domain.StockRule) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE chemicals SET min_level = $1, max_level = $2, warn_level = $3, updated_at = NOW() WHERE name = $4`,
		rule.Min, rule.Max, rule.Warn, name)
	if err != nil {
		return fmt.Errorf("error updating stock rule: %w", err)
	}
	return requireAffected(res, "chemical "+name)
}

func (r *chemicalRepository) PostMovement(ctx context.Context, movement *domain.ChemicalMovement, monthlyReset bool) (*domain.Chemical, error) {
	var chemical domain.Chemical

	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		lockQuery := `SELECT ` + chemicalColumns + ` FROM chemicals WHERE name = $1 FOR UPDATE`
		if err := tx.GetContext(ctx, &chemical, lockQuery, movement.ChemicalName); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: chemical %q", domain.ErrNotFound, movement.ChemicalName)
			}
			return fmt.Errorf("error locking chemical: %w", err)
		}

		period := movement.MovementDate.Period()
		if period > chemical.StockPeriod {
			if monthlyReset && chemical.StockPeriod != "" {
				chemical.Qty = 0
			}
			chemical.StockPeriod = period
		}

		movement.BalanceAfter = calc.ApplyMovement(chemical.Qty, movement.MovementType, movement.Qty)

		insertQuery := `
			INSERT INTO chemical_movements (
				movement_date, chemical_name, movement_type, qty, balance_after, remarks
			) VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at
		`
		err := tx.QueryRowxContext(ctx, insertQuery,
			movement.MovementDate,
			movement.ChemicalName,
			string(movement.MovementType),
			movement.Qty,
			movement.BalanceAfter,
			movement.Remarks,
		).Scan(&movement.ID, &movement.CreatedAt)
		if err != nil {
			return fmt.Errorf("error inserting movement: %w", err)
		}

		updateQuery := `
			UPDATE chemicals
			SET qty = $1, stock_period = $2, updated_at = NOW()
			WHERE id = $3
		`
		if _, err := tx.ExecContext(ctx, updateQuery, movement.BalanceAfter, chemical.StockPeriod, chemical.ID); err != nil {
			return fmt.Errorf("error updating chemical balance: %w", err)
		}

		chemical.Qty = movement.BalanceAfter
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &chemical, nil
}

func (r *chemicalRepository) ListMovements(ctx context.Context, filter repository.MovementFilter) ([]domain.ChemicalMovement, error) {
	where, args := buildMovementFilterClause(filter)
	query := `SELECT ` + movementColumns + ` FROM chemical_movements` + where + ` ORDER BY movement_date, id`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	movements := []domain.ChemicalMovement{}
	if err := r.db.SelectContext(ctx, &movements, query, args...); err != nil {
		return nil, fmt.Errorf("error listing movements: %w", err)
	}
	return movements, nil
}

// ImportMovements copies historical movements verbatim, balances included. It
// only runs against an empty movements table so repeated imports add nothing.
func (r *chemicalRepository) ImportMovements(ctx context.Context, movements []domain.ChemicalMovement) (int, error) {
	var inserted int
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		n, err := importMovements(ctx, tx, movements)
		inserted = n
		return err
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func importMovements(ctx context.Context, tx *sqlx.Tx, movements []domain.ChemicalMovement) (int, error) {
	var existing int
	if err := tx.GetContext(ctx, &existing, `SELECT COUNT(*) FROM chemical_movements`); err != nil {
		return 0, fmt.Errorf("error counting movements: %w", err)
	}
	if existing > 0 {
		return 0, nil
	}

	query := `
		INSERT INTO chemical_movements (
			movement_date, chemical_name, movement_type, qty, balance_after, remarks
		) VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, m := range movements {
		if _, err := tx.ExecContext(ctx, query,
			m.MovementDate, m.ChemicalName, string(m.MovementType), m.Qty, m.BalanceAfter, m.Remarks,
		); err != nil {
			return 0, fmt.Errorf("error importing movement: %w", err)
		}
	}
	return len(movements), nil
}

// ResetStockPeriod zeroes every chemical not yet opened for period.
func (r *chemicalRepository) ResetStockPeriod(ctx context.Context, period string) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE chemicals SET qty = 0, stock_period = $1, updated_at = NOW() WHERE stock_period < $1`,
		period)
	if err != nil {
		return 0, fmt.Errorf("error resetting stock period: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error reading reset rows: %w", err)
	}
	return int(n), nil
}

func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, what)
	}
	return nil
}
