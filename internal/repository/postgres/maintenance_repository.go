package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
)

type maintenanceRepository struct {
	db *DB
}

func NewMaintenanceRepository(db *DB) *maintenanceRepository {
	return &maintenanceRepository{db: db}
}

// SeedTasks fills the catalog only when it is empty.
func (r *maintenanceRepository) SeedTasks(ctx context.Context, tasks []domain.MaintenanceTask) (int, error) {
	var inserted int

	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		var existing int
		if err := tx.GetContext(ctx, &existing, `SELECT COUNT(*) FROM maintenance_master`); err != nil {
			return fmt.Errorf("error counting maintenance tasks: %w", err)
		}
		if existing > 0 {
			return nil
		}

		query := `
			INSERT INTO maintenance_master (task_name, category, interval_days, priority, est_hours, active)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (task_name) DO NOTHING
		`
		for _, t := range tasks {
			res, err := tx.ExecContext(ctx, query, t.TaskName, t.Category, t.IntervalDays, t.Priority, t.EstHours, t.Active)
			if err != nil {
				return fmt.Errorf("error seeding maintenance task %q: %w", t.TaskName, err)
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

func (r *maintenanceRepository) ListTasks(ctx context.Context, activeOnly bool) ([]domain.MaintenanceTask, error) {
	query := `SELECT id, task_name, category, interval_days, priority, est_hours, active FROM maintenance_master`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY interval_days, task_name`

	tasks := []domain.MaintenanceTask{}
	if err := r.db.SelectContext(ctx, &tasks, query); err != nil {
		return nil, fmt.Errorf("error listing maintenance tasks: %w", err)
	}
	return tasks, nil
}

func (r *maintenanceRepository) InsertWorkOrders(ctx context.Context, orders []domain.WorkOrder) (int, error) {
	var inserted int

	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO maintenance_workorders (master_id, due_date, status, priority, est_hours)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (master_id, due_date) DO NOTHING
		`
		for _, o := range orders {
			res, err := tx.ExecContext(ctx, query, o.MasterID, o.DueDate, o.Status, o.Priority, o.EstHours)
			if err != nil {
				return fmt.Errorf("error inserting work order: %w", err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("error reading inserted rows: %w", err)
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

func (r *maintenanceRepository) ListWorkOrders(ctx context.Context, filter domain.WorkOrderFilter) ([]domain.WorkOrder, error) {
	where, args := buildWorkOrderFilterClause(filter)
	query := `
		SELECT
			w.id, w.master_id, m.task_name, m.category, w.due_date, w.status,
			w.priority, w.technician, w.est_hours, w.actual_hours, w.cost,
			w.completion_date, w.remarks
		FROM maintenance_workorders w
		JOIN maintenance_master m ON m.id = w.master_id` + where + `
		ORDER BY w.due_date, m.task_name`

	orders := []domain.WorkOrder{}
	if err := r.db.SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, fmt.Errorf("error listing work orders: %w", err)
	}
	return orders, nil
}

func (r *maintenanceRepository) UpdateWorkOrder(ctx context.Context, id int64, update domain.WorkOrderUpdate) error {
	query := `
		UPDATE maintenance_workorders
		SET status = $1, technician = $2, actual_hours = $3, cost = $4,
			completion_date = $5, remarks = $6
		WHERE id = $7
	`

	res, err := r.db.ExecContext(ctx, query,
		update.Status,
		update.Technician,
		update.ActualHours,
		update.Cost,
		update.CompletionDate,
		update.Remarks,
		id,
	)
	if err != nil {
		return fmt.Errorf("error updating work order: %w", err)
	}
	return requireAffected(res, fmt.Sprintf("work order %d", id))
}

func (r *maintenanceRepository) CountOverdue(ctx context.Context, today domain.Date) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM maintenance_workorders WHERE status = $1 AND due_date < $2`
	if err := r.db.GetContext(ctx, &count, query, domain.WorkOrderPending, today); err != nil {
		return 0, fmt.Errorf("error counting overdue work orders: %w", err)
	}
	return count, nil
}
