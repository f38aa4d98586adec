package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
)

type todoRepository struct {
	db *DB
}

func NewTodoRepository(db *DB) *todoRepository {
	return &todoRepository{db: db}
}

const upsertOperatorTaskQuery = `
	INSERT INTO operator_tasks (operator, task_name, frequency, active)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (operator, task_name)
	DO UPDATE SET frequency = EXCLUDED.frequency, active = EXCLUDED.active
	RETURNING id
`

func (r *todoRepository) UpsertTask(ctx context.Context, task *domain.OperatorTask) error {
	err := r.db.QueryRowxContext(ctx, upsertOperatorTaskQuery,
		task.Operator, task.TaskName, string(task.Frequency), task.Active,
	).Scan(&task.ID)
	if err != nil {
		return fmt.Errorf("error upserting operator task: %w", err)
	}
	return nil
}

// SeedTasks fills the checklist only when it is empty.
func (r *todoRepository) SeedTasks(ctx context.Context, tasks []domain.OperatorTask) (int, error) {
	var inserted int

	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		var existing int
		if err := tx.GetContext(ctx, &existing, `SELECT COUNT(*) FROM operator_tasks`); err != nil {
			return fmt.Errorf("error counting operator tasks: %w", err)
		}
		if existing > 0 {
			return nil
		}

		for i := range tasks {
			t := &tasks[i]
			if err := tx.QueryRowxContext(ctx, upsertOperatorTaskQuery,
				t.Operator, t.TaskName, string(t.Frequency), t.Active,
			).Scan(&t.ID); err != nil {
				return fmt.Errorf("error seeding operator task %q: %w", t.TaskName, err)
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}

func (r *todoRepository) ListTasks(ctx context.Context, activeOnly bool) ([]domain.OperatorTask, error) {
	query := `SELECT id, operator, task_name, frequency, active FROM operator_tasks`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY operator, task_name`

	tasks := []domain.OperatorTask{}
	if err := r.db.SelectContext(ctx, &tasks, query); err != nil {
		return nil, fmt.Errorf("error listing operator tasks: %w", err)
	}
	return tasks, nil
}

func (r *todoRepository) InsertTodos(ctx context.Context, todos []domain.OperatorTodo) (int, error) {
	var inserted int

	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO operator_todos (task_id, due_date, status)
			VALUES ($1, $2, $3)
			ON CONFLICT (task_id, due_date) DO NOTHING
		`
		for _, todo := range todos {
			res, err := tx.ExecContext(ctx, query, todo.TaskID, todo.DueDate, todo.Status)
			if err != nil {
				return fmt.Errorf("error inserting to-do: %w", err)
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

func (r *todoRepository) ListTodos(ctx context.Context, filter domain.TodoFilter) ([]domain.OperatorTodo, error) {
	where, args := buildTodoFilterClause(filter)
	query := `
		SELECT
			d.id, d.task_id, t.operator, t.task_name, t.frequency,
			d.due_date, d.status, d.done_at, d.notes
		FROM operator_todos d
		JOIN operator_tasks t ON t.id = d.task_id` + where + `
		ORDER BY d.due_date, t.operator, t.task_name`

	todos := []domain.OperatorTodo{}
	if err := r.db.SelectContext(ctx, &todos, query, args...); err != nil {
		return nil, fmt.Errorf("error listing to-dos: %w", err)
	}
	return todos, nil
}

func (r *todoRepository) UpdateTodoStatus(ctx context.Context, id int64, status, notes string, doneAt *time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE operator_todos SET status = $1, notes = $2, done_at = $3 WHERE id = $4`,
		status, notes, doneAt, id)
	if err != nil {
		return fmt.Errorf("error updating to-do: %w", err)
	}
	return requireAffected(res, fmt.Sprintf("to-do %d", id))
}

func (r *todoRepository) CountPending(ctx context.Context, day domain.Date) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM operator_todos WHERE status = $1 AND due_date = $2`
	if err := r.db.GetContext(ctx, &count, query, domain.TodoPending, day); err != nil {
		return 0, fmt.Errorf("error counting pending to-dos: %w", err)
	}
	return count, nil
}
