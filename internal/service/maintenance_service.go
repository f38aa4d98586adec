package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/cache"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/calc"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/repository"
)

type MaintenanceService struct {
	repo  repository.MaintenanceRepository
	cache cache.DashboardCache
	today func() domain.Date
}

func NewMaintenanceService(repo repository.MaintenanceRepository, cacheImpl cache.DashboardCache) *MaintenanceService {
	return &MaintenanceService{repo: repo, cache: orNoop(cacheImpl), today: domain.Today}
}

// SeedCatalog fills the master task list with the built-in catalog when it is empty.
func (s *MaintenanceService) SeedCatalog(ctx context.Context) (int, error) {
	n, err := s.repo.SeedTasks(ctx, DefaultMaintenanceTasks)
	if err != nil {
		return 0, err
	}
	log.Info().Int("tasks", n).Msg("maintenance catalog seeded")
	return n, nil
}

func (s *MaintenanceService) Tasks(ctx context.Context, activeOnly bool) ([]domain.MaintenanceTask, error) {
	return s.repo.ListTasks(ctx, activeOnly)
}

// GenerateSchedule creates the work orders of every active task due between
// start and start+daysAhead. Orders that already exist are skipped, so running
// it twice creates nothing the second time.
func (s *MaintenanceService) GenerateSchedule(ctx context.Context, start domain.Date, daysAhead int) (int, error) {
	if start.IsZero() {
		start = s.today()
	}
	if daysAhead < 0 {
		return 0, fmt.Errorf("%w: days ahead must not be negative", domain.ErrInvalidInput)
	}

	tasks, err := s.repo.ListTasks(ctx, true)
	if err != nil {
		return 0, err
	}

	var orders []domain.WorkOrder
	for _, task := range tasks {
		for _, due := range calc.ScheduleOccurrences(start, task.IntervalDays, daysAhead) {
			orders = append(orders, domain.WorkOrder{
				MasterID: task.ID,
				TaskName: task.TaskName,
				Category: task.Category,
				DueDate:  due,
				Status:   domain.WorkOrderPending,
				Priority: task.Priority,
				EstHours: task.EstHours,
			})
		}
	}
	if len(orders) == 0 {
		return 0, nil
	}

	created, err := s.repo.InsertWorkOrders(ctx, orders)
	if err != nil {
		return 0, err
	}
	if created > 0 {
		invalidate(ctx, s.cache, "generate schedule")
	}

	log.Info().
		Str("start", start.String()).
		Int("days_ahead", daysAhead).
		Int("candidates", len(orders)).
		Int("created", created).
		Msg("maintenance schedule generated")
	return created, nil
}

func (s *MaintenanceService) WorkOrders(ctx context.Context, filter domain.WorkOrderFilter) ([]domain.WorkOrder, error) {
	if filter.Status != "" {
		status, ok := domain.ParseWorkOrderStatus(filter.Status)
		if !ok {
			return nil, fmt.Errorf("%w: unknown work order status %q", domain.ErrInvalidInput, filter.Status)
		}
		filter.Status = status
	}
	return s.repo.ListWorkOrders(ctx, filter)
}

// UpdateWorkOrder applies operator edits. Completing an order without a
// completion date stamps it with today.
func (s *MaintenanceService) UpdateWorkOrder(ctx context.Context, id int64, update domain.WorkOrderUpdate) error {
	if err := update.Normalize(s.today()); err != nil {
		return err
	}
	if err := s.repo.UpdateWorkOrder(ctx, id, update); err != nil {
		return err
	}
	invalidate(ctx, s.cache, "update work order")
	return nil
}

func (s *MaintenanceService) CountOverdue(ctx context.Context) (int, error) {
	return s.repo.CountOverdue(ctx, s.today())
}
