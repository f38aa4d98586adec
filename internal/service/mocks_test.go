package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/repository"
)

type mockReadingRepo struct{ mock.Mock }

func (m *mockReadingRepo) Upsert(ctx context.Context, r *domain.Reading) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockReadingRepo) UpsertMany(ctx context.Context, readings []domain.Reading) (int, error) {
	args := m.Called(ctx, readings)
	return args.Int(0), args.Error(1)
}

func (m *mockReadingRepo) ListRange(ctx context.Context, r domain.DateRange) ([]domain.Reading, error) {
	args := m.Called(ctx, r)
	out, _ := args.Get(0).([]domain.Reading)
	return out, args.Error(1)
}

func (m *mockReadingRepo) Latest(ctx context.Context) (*domain.Reading, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).(*domain.Reading)
	return out, args.Error(1)
}

func (m *mockReadingRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type mockCartridgeRepo struct{ mock.Mock }

func (m *mockCartridgeRepo) Insert(ctx context.Context, r *domain.CartridgeRecord) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockCartridgeRepo) ImportRecords(ctx context.Context, records []domain.CartridgeRecord) (int, error) {
	args := m.Called(ctx, records)
	return args.Int(0), args.Error(1)
}

func (m *mockCartridgeRepo) ListRange(ctx context.Context, r domain.DateRange) ([]domain.CartridgeRecord, error) {
	args := m.Called(ctx, r)
	out, _ := args.Get(0).([]domain.CartridgeRecord)
	return out, args.Error(1)
}

func (m *mockCartridgeRepo) Latest(ctx context.Context) (*domain.CartridgeRecord, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).(*domain.CartridgeRecord)
	return out, args.Error(1)
}

type mockChemicalRepo struct{ mock.Mock }

func (m *mockChemicalRepo) List(ctx context.Context) ([]domain.Chemical, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]domain.Chemical)
	return out, args.Error(1)
}

func (m *mockChemicalRepo) Get(ctx context.Context, name string) (*domain.Chemical, error) {
	args := m.Called(ctx, name)
	out, _ := args.Get(0).(*domain.Chemical)
	return out, args.Error(1)
}

func (m *mockChemicalRepo) Seed(ctx context.Context, chemicals []domain.Chemical) (int, error) {
	args := m.Called(ctx, chemicals)
	return args.Int(0), args.Error(1)
}

func (m *mockChemicalRepo) Upsert(ctx context.Context, c *domain.Chemical) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockChemicalRepo) UpdateUnitCost(ctx context.Context, name string, unitCost float64) error {
	return m.Called(ctx, name, unitCost).Error(0)
}

func (m *mockChemicalRepo) UpdateRule(ctx context.Context, name string, rule domain.StockRule) error {
	return m.Called(ctx, name, rule).Error(0)
}

func (m *mockChemicalRepo) PostMovement(ctx context.Context, mv *domain.ChemicalMovement, monthlyReset bool) (*domain.Chemical, error) {
	args := m.Called(ctx, mv, monthlyReset)
	out, _ := args.Get(0).(*domain.Chemical)
	return out, args.Error(1)
}

func (m *mockChemicalRepo) ListMovements(ctx context.Context, filter repository.MovementFilter) ([]domain.ChemicalMovement, error) {
	args := m.Called(ctx, filter)
	out, _ := args.Get(0).([]domain.ChemicalMovement)
	return out, args.Error(1)
}

func (m *mockChemicalRepo) ImportMovements(ctx context.Context, movements []domain.ChemicalMovement) (int, error) {
	args := m.Called(ctx, movements)
	return args.Int(0), args.Error(1)
}

func (m *mockChemicalRepo) ResetStockPeriod(ctx context.Context, period string) (int, error) {
	args := m.Called(ctx, period)
	return args.Int(0), args.Error(1)
}

type mockFlowmeterRepo struct{ mock.Mock }

func (m *mockFlowmeterRepo) Upsert(ctx context.Context, r *domain.FlowmeterReading) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockFlowmeterRepo) ListAll(ctx context.Context) ([]domain.FlowmeterReading, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]domain.FlowmeterReading)
	return out, args.Error(1)
}

type mockProductionRepo struct{ mock.Mock }

func (m *mockProductionRepo) Replace(ctx context.Context, rows []domain.DailyProduction) error {
	return m.Called(ctx, rows).Error(0)
}

func (m *mockProductionRepo) ListRange(ctx context.Context, r domain.DateRange) ([]domain.DailyProduction, error) {
	args := m.Called(ctx, r)
	out, _ := args.Get(0).([]domain.DailyProduction)
	return out, args.Error(1)
}

type mockMaintenanceRepo struct{ mock.Mock }

func (m *mockMaintenanceRepo) SeedTasks(ctx context.Context, tasks []domain.MaintenanceTask) (int, error) {
	args := m.Called(ctx, tasks)
	return args.Int(0), args.Error(1)
}

func (m *mockMaintenanceRepo) ListTasks(ctx context.Context, activeOnly bool) ([]domain.MaintenanceTask, error) {
	args := m.Called(ctx, activeOnly)
	out, _ := args.Get(0).([]domain.MaintenanceTask)
	return out, args.Error(1)
}

func (m *mockMaintenanceRepo) InsertWorkOrders(ctx context.Context, orders []domain.WorkOrder) (int, error) {
	args := m.Called(ctx, orders)
	return args.Int(0), args.Error(1)
}

func (m *mockMaintenanceRepo) ListWorkOrders(ctx context.Context, filter domain.WorkOrderFilter) ([]domain.WorkOrder, error) {
	args := m.Called(ctx, filter)
	out, _ := args.Get(0).([]domain.WorkOrder)
	return out, args.Error(1)
}

func (m *mockMaintenanceRepo) UpdateWorkOrder(ctx context.Context, id int64, update domain.WorkOrderUpdate) error {
	return m.Called(ctx, id, update).Error(0)
}

func (m *mockMaintenanceRepo) CountOverdue(ctx context.Context, today domain.Date) (int, error) {
	args := m.Called(ctx, today)
	return args.Int(0), args.Error(1)
}

type mockTodoRepo struct{ mock.Mock }

func (m *mockTodoRepo) UpsertTask(ctx context.Context, task *domain.OperatorTask) error {
	return m.Called(ctx, task).Error(0)
}

func (m *mockTodoRepo) SeedTasks(ctx context.Context, tasks []domain.OperatorTask) (int, error) {
	args := m.Called(ctx, tasks)
	return args.Int(0), args.Error(1)
}

func (m *mockTodoRepo) ListTasks(ctx context.Context, activeOnly bool) ([]domain.OperatorTask, error) {
	args := m.Called(ctx, activeOnly)
	out, _ := args.Get(0).([]domain.OperatorTask)
	return out, args.Error(1)
}

func (m *mockTodoRepo) InsertTodos(ctx context.Context, todos []domain.OperatorTodo) (int, error) {
	args := m.Called(ctx, todos)
	return args.Int(0), args.Error(1)
}

func (m *mockTodoRepo) ListTodos(ctx context.Context, filter domain.TodoFilter) ([]domain.OperatorTodo, error) {
	args := m.Called(ctx, filter)
	out, _ := args.Get(0).([]domain.OperatorTodo)
	return out, args.Error(1)
}

func (m *mockTodoRepo) UpdateTodoStatus(ctx context.Context, id int64, status, notes string, doneAt *time.Time) error {
	return m.Called(ctx, id, status, notes, doneAt).Error(0)
}

func (m *mockTodoRepo) CountPending(ctx context.Context, day domain.Date) (int, error) {
	args := m.Called(ctx, day)
	return args.Int(0), args.Error(1)
}

type mockWaterQualityRepo struct{ mock.Mock }

func (m *mockWaterQualityRepo) Insert(ctx context.Context, s *domain.WaterQualitySample) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockWaterQualityRepo) ListRange(ctx context.Context, r domain.DateRange) ([]domain.WaterQualitySample, error) {
	args := m.Called(ctx, r)
	out, _ := args.Get(0).([]domain.WaterQualitySample)
	return out, args.Error(1)
}

type mockCache struct{ mock.Mock }

func (m *mockCache) GetDashboard(ctx context.Context, day domain.Date) (*domain.Dashboard, bool, error) {
	args := m.Called(ctx, day)
	out, _ := args.Get(0).(*domain.Dashboard)
	return out, args.Bool(1), args.Error(2)
}

func (m *mockCache) SetDashboard(ctx context.Context, day domain.Date, d *domain.Dashboard) error {
	return m.Called(ctx, day, d).Error(0)
}

func (m *mockCache) GetMonthlyReport(ctx context.Context, year, month int) (*domain.MonthlyReport, bool, error) {
	args := m.Called(ctx, year, month)
	out, _ := args.Get(0).(*domain.MonthlyReport)
	return out, args.Bool(1), args.Error(2)
}

func (m *mockCache) SetMonthlyReport(ctx context.Context, r *domain.MonthlyReport) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockCache) GetWaterQuality(ctx context.Context, r domain.DateRange) (*domain.WaterQualitySummary, bool, error) {
	args := m.Called(ctx, r)
	out, _ := args.Get(0).(*domain.WaterQualitySummary)
	return out, args.Bool(1), args.Error(2)
}

func (m *mockCache) SetWaterQuality(ctx context.Context, s *domain.WaterQualitySummary) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockCache) InvalidateAll(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
