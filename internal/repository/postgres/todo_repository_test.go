package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
)

func TestTodoRepository_SeedTasks(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTodoRepository(db)

	tasks := []domain.OperatorTask{
		{Operator: "Ali", TaskName: "Record flowmeter", Frequency: domain.FrequencyDaily, Active: true},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM operator_tasks`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO operator_tasks (.+) ON CONFLICT \(operator, task_name\)`).
		WithArgs("Ali", "Record flowmeter", "daily", true).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))
	mock.ExpectCommit()

	n, err := repo.SeedTasks(context.Background(), tasks)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, int64(11), tasks[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTodoRepository_InsertTodos_Idempotent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTodoRepository(db)

	todos := []domain.OperatorTodo{{TaskID: 11, DueDate: mustDate(t, "2025-08-01"), Status: domain.TodoPending}}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO operator_todos (.+) ON CONFLICT \(task_id, due_date\) DO NOTHING`).
		WithArgs(int64(11), "2025-08-01", "Pending").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	n, err := repo.InsertTodos(context.Background(), todos)
	require.NoError(t, err)
	assert.Zero(t, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTodoRepository_ListTodos_Filter(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTodoRepository(db)

	mock.ExpectQuery(`WHERE t.operator = \$1 AND d.status = \$2 AND d.due_date >= \$3 AND d.due_date <= \$4`).
		WithArgs("Ali", "Pending", "2025-08-01", "2025-08-01").
		WillReturnRows(sqlmock.NewRows([]string{"id", "task_id", "operator", "task_name", "frequency", "due_date", "status", "done_at", "notes"}))

	day := mustDate(t, "2025-08-01")
	todos, err := repo.ListTodos(context.Background(), domain.TodoFilter{Operator: "Ali", Status: domain.TodoPending, From: day, To: day})
	require.NoError(t, err)
	assert.Empty(t, todos)
	require.NoError(t, mock.ExpectationsWereMet())
}
