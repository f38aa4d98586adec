package repository

import (
	"context"
	"time"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
)

type ReadingRepository interface {
	Upsert(ctx context.Context, reading *domain.Reading) error
	// UpsertMany stores every reading in one transaction and returns how many were written.
	UpsertMany(ctx context.Context, readings []domain.Reading) (int, error)
	ListRange(ctx context.Context, r domain.DateRange) ([]domain.Reading, error)
	Latest(ctx context.Context) (*domain.Reading, error)
	Count(ctx context.Context) (int, error)
}

type CartridgeRepository interface {
	Insert(ctx context.Context, record *domain.CartridgeRecord) error
	// ImportRecords copies historical records into an empty table; it adds
	// nothing when records already exist.
	ImportRecords(ctx context.Context, records []domain.CartridgeRecord) (int, error)
	ListRange(ctx context.Context, r domain.DateRange) ([]domain.CartridgeRecord, error)
	Latest(ctx context.Context) (*domain.CartridgeRecord, error)
}

type MovementFilter struct {
	Chemical string
	Type     domain.MovementType
	From     domain.Date
	To       domain.Date
	Limit    int
}

type ChemicalRepository interface {
	List(ctx context.Context) ([]domain.Chemical, error)
	Get(ctx context.Context, name string) (*domain.Chemical, error)
	Seed(ctx context.Context, chemicals []domain.Chemical) (int, error)
	Upsert(ctx context.Context, chemical *domain.Chemical) error
	UpdateUnitCost(ctx context.Context, name string, unitCost float64) error
	UpdateRule(ctx context.Context, name string, rule domain.StockRule) error
	// PostMovement inserts the movement and updates the chemical balance in
	// one transaction. With monthlyReset, the balance restarts at zero when
	// the movement opens a new stock period.
	PostMovement(ctx context.Context, movement *domain.ChemicalMovement, monthlyReset bool) (*domain.Chemical, error)
	ListMovements(ctx context.Context, filter MovementFilter) ([]domain.ChemicalMovement, error)
	ImportMovements(ctx context.Context, movements []domain.ChemicalMovement) (int, error)
	ResetStockPeriod(ctx context.Context, period string) (int, error)
}

type FlowmeterRepository interface {
	Upsert(ctx context.Context, reading *domain.FlowmeterReading) error
	ListAll(ctx context.Context) ([]domain.FlowmeterReading, error)
}

type ProductionRepository interface {
	// Replace swaps the whole daily production table for rows atomically.
	Replace(ctx context.Context, rows []domain.DailyProduction) error
	ListRange(ctx context.Context, r domain.DateRange) ([]domain.DailyProduction, error)
}

type MaintenanceRepository interface {
	SeedTasks(ctx context.Context, tasks []domain.MaintenanceTask) (int, error)
	ListTasks(ctx context.Context, activeOnly bool) ([]domain.MaintenanceTask, error)
	// InsertWorkOrders skips orders whose (master_id, due_date) already exists
	// and returns how many rows were created.
	InsertWorkOrders(ctx context.Context, orders []domain.WorkOrder) (int, error)
	ListWorkOrders(ctx context.Context, filter domain.WorkOrderFilter) ([]domain.WorkOrder, error)
	UpdateWorkOrder(ctx context.Context, id int64, update domain.WorkOrderUpdate) error
	CountOverdue(ctx context.Context, today domain.Date) (int, error)
}

type TodoRepository interface {
	UpsertTask(ctx context.Context, task *domain.OperatorTask) error
	SeedTasks(ctx context.Context, tasks []domain.OperatorTask) (int, error)
	ListTasks(ctx context.Context, activeOnly bool) ([]domain.OperatorTask, error)
	InsertTodos(ctx context.Context, todos []domain.OperatorTodo) (int, error)
	ListTodos(ctx context.Context, filter domain.TodoFilter) ([]domain.OperatorTodo, error)
	UpdateTodoStatus(ctx context.Context, id int64, status, notes string, doneAt *time.Time) error
	CountPending(ctx context.Context, day domain.Date) (int, error)
}

type WaterQualityRepository interface {
	Insert(ctx context.Context, sample *domain.WaterQualitySample) error
	ListRange(ctx context.Context, r domain.DateRange) ([]domain.WaterQualitySample, error)
}
