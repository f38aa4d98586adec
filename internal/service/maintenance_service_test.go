package service

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/repository/postgres"
)

func TestMaintenanceService_GenerateSchedule(t *testing.T) {
	repo := &mockMaintenanceRepo{}
	c := expectInvalidate()
	svc := NewMaintenanceService(repo, c)

	repo.On("ListTasks", mock.Anything, true).Return([]domain.MaintenanceTask{
		{ID: 3, TaskName: "Clean feed inlet strainer", Category: "Pretreatment", IntervalDays: 7, Priority: "Medium", EstHours: 1, Active: true},
	}, nil)

	var inserted []domain.WorkOrder
	repo.On("InsertWorkOrders", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { inserted = args.Get(1).([]domain.WorkOrder) }).
		Return(5, nil).Once()
	repo.On("InsertWorkOrders", mock.Anything, mock.Anything).Return(0, nil).Once()

	created, err := svc.GenerateSchedule(context.Background(), day(t, "2025-08-01"), 30)
	require.NoError(t, err)
	assert.Equal(t, 5, created)

	var dues []string
	for _, o := range inserted {
		dues = append(dues, o.DueDate.String())
		assert.Equal(t, int64(3), o.MasterID)
		assert.Equal(t, domain.WorkOrderPending, o.Status)
	}
	assert.Equal(t, []string{"2025-08-01", "2025-08-08", "2025-08-15", "2025-08-22", "2025-08-29"}, dues)

	created, err = svc.GenerateSchedule(context.Background(), day(t, "2025-08-01"), 30)
	require.NoError(t, err)
	assert.Zero(t, created)
	c.AssertNumberOfCalls(t, "InvalidateAll", 1)
}

func TestMaintenanceService_GenerateSchedule_SecondRunCreatesNothing(t *testing.T) {
	sqlDB, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	repo := postgres.NewMaintenanceRepository(postgres.NewFromSQLX(sqlx.NewDb(sqlDB, "postgres"), 1))
	c := expectInvalidate()
	svc := NewMaintenanceService(repo, c)

	expectRun := func(affected int64) {
		sqlMock.ExpectQuery(`FROM maintenance_master WHERE active`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "task_name", "category", "interval_days", "priority", "est_hours", "active"}).
				AddRow(int64(5), "Replace cartridge filters", "Pretreatment", 14, "High", 1.5, true))
		sqlMock.ExpectBegin()
		for _, due := range []string{"2025-08-01", "2025-08-15"} {
			sqlMock.ExpectExec(`INSERT INTO maintenance_workorders (.+) ON CONFLICT \(master_id, due_date\) DO NOTHING`).
				WithArgs(int64(5), due, "Pending", "High", 1.5).
				WillReturnResult(sqlmock.NewResult(0, affected))
		}
		sqlMock.ExpectCommit()
	}
	expectRun(1)
	expectRun(0)

	created, err := svc.GenerateSchedule(context.Background(), day(t, "2025-08-01"), 14)
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	created, err = svc.GenerateSchedule(context.Background(), day(t, "2025-08-01"), 14)
	require.NoError(t, err)
	assert.Zero(t, created)

	require.NoError(t, sqlMock.ExpectationsWereMet())
	c.AssertNumberOfCalls(t, "InvalidateAll", 1)
}

func TestMaintenanceService_GenerateSchedule_DefaultsToToday(t *testing.T) {
	repo := &mockMaintenanceRepo{}
	svc := NewMaintenanceService(repo, nil)
	svc.today = fixedDay(day(t, "2025-09-10"))

	repo.On("ListTasks", mock.Anything, true).Return([]domain.MaintenanceTask{{ID: 1, IntervalDays: 365}}, nil)
	repo.On("InsertWorkOrders", mock.Anything, mock.MatchedBy(func(orders []domain.WorkOrder) bool {
		return len(orders) == 1 && orders[0].DueDate.String() == "2025-09-10"
	})).Return(1, nil)

	created, err := svc.GenerateSchedule(context.Background(), domain.Date{}, 90)
	require.NoError(t, err)
	assert.Equal(t, 1, created)
}

func TestMaintenanceService_UpdateWorkOrder(t *testing.T) {
	repo := &mockMaintenanceRepo{}
	c := expectInvalidate()
	svc := NewMaintenanceService(repo, c)
	svc.today = fixedDay(day(t, "2025-08-20"))

	err := svc.UpdateWorkOrder(context.Background(), 7, domain.WorkOrderUpdate{Status: "Postponed"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	repo.On("UpdateWorkOrder", mock.Anything, int64(7), mock.MatchedBy(func(u domain.WorkOrderUpdate) bool {
		return u.Status == domain.WorkOrderCompleted && u.CompletionDate != nil && u.CompletionDate.String() == "2025-08-20"
	})).Return(nil)

	require.NoError(t, svc.UpdateWorkOrder(context.Background(), 7, domain.WorkOrderUpdate{Status: "completed", Technician: "Omar"}))
	repo.AssertExpectations(t)
}

func TestMaintenanceService_WorkOrders_UnknownStatus(t *testing.T) {
	svc := NewMaintenanceService(&mockMaintenanceRepo{}, nil)
	_, err := svc.WorkOrders(context.Background(), domain.WorkOrderFilter{Status: "late"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
