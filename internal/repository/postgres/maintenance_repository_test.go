package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
)

func TestMaintenanceRepository_SeedTasks_OnlyWhenEmpty(t *testing.T) {
	tasks := []domain.MaintenanceTask{
		{TaskName: "Backwash multimedia filter", Category: "Daily", IntervalDays: 1, Priority: "Medium", EstHours: 0.5, Active: true},
		{TaskName: "CIP membrane cleaning", Category: "Quarterly", IntervalDays: 90, Priority: "High", EstHours: 6, Active: true},
	}

	t.Run("empty catalog is seeded", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMaintenanceRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM maintenance_master`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectExec("INSERT INTO maintenance_master").
			WithArgs("Backwash multimedia filter", "Daily", 1, "Medium", 0.5, true).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO maintenance_master").
			WithArgs("CIP membrane cleaning", "Quarterly", 90, "High", 6.0, true).
			WillReturnResult(sqlmock.NewResult(2, 1))
		mock.ExpectCommit()

		n, err := repo.SeedTasks(context.Background(), tasks)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("populated catalog is left alone", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMaintenanceRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM maintenance_master`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(10))
		mock.ExpectCommit()

		n, err := repo.SeedTasks(context.Background(), tasks)
		require.NoError(t, err)
		assert.Zero(t, n)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMaintenanceRepository_InsertWorkOrders_CountsOnlyNewRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMaintenanceRepository(db)

	orders := []domain.WorkOrder{
		{MasterID: 1, DueDate: mustDate(t, "2025-08-01"), Status: domain.WorkOrderPending, Priority: "High", EstHours: 2},
		{MasterID: 1, DueDate: mustDate(t, "2025-08-08"), Status: domain.WorkOrderPending, Priority: "High", EstHours: 2},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO maintenance_workorders (.+) ON CONFLICT \(master_id, due_date\) DO NOTHING`).
		WithArgs(int64(1), "2025-08-01", "Pending", "High", 2.0).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO maintenance_workorders`).
		WithArgs(int64(1), "2025-08-08", "Pending", "High", 2.0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	n, err := repo.InsertWorkOrders(context.Background(), orders)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMaintenanceRepository_ListWorkOrders(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMaintenanceRepository(db)

	due := time.Date(2025, 8, 8, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "master_id", "task_name", "category", "due_date", "status", "priority",
		"technician", "est_hours", "actual_hours", "cost", "completion_date", "remarks",
	}).AddRow(int64(5), int64(1), "Check HP pump", "Weekly", due, "Completed", "High", "Omar", 1.0, 1.5, 20.0, due, "ok")

	mock.ExpectQuery(`WHERE w.status = \$1 AND w.due_date >= \$2`).
		WithArgs("Completed", "2025-08-01").
		WillReturnRows(rows)

	orders, err := repo.ListWorkOrders(context.Background(), domain.WorkOrderFilter{
		Status: domain.WorkOrderCompleted,
		From:   mustDate(t, "2025-08-01"),
	})

	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Check HP pump", orders[0].TaskName)
	require.NotNil(t, orders[0].CompletionDate)
	assert.Equal(t, "2025-08-08", orders[0].CompletionDate.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMaintenanceRepository_UpdateWorkOrder(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMaintenanceRepository(db)
	done := mustDate(t, "2025-08-09")

	mock.ExpectExec("UPDATE maintenance_workorders").
		WithArgs("Completed", "Omar", 1.5, 20.0, "2025-08-09", "", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE maintenance_workorders").
		WithArgs("Pending", "", 0.0, 0.0, nil, "", int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateWorkOrder(context.Background(), 5, domain.WorkOrderUpdate{
		Status: domain.WorkOrderCompleted, Technician: "Omar", ActualHours: 1.5, Cost: 20, CompletionDate: &done,
	})
	require.NoError(t, err)

	err = repo.UpdateWorkOrder(context.Background(), 99, domain.WorkOrderUpdate{Status: domain.WorkOrderPending})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}
