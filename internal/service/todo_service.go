package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/cache"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/calc"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/repository"
)

type TodoService struct {
	repo      repository.TodoRepository
	cache     cache.DashboardCache
	operators []string
	now       func() time.Time
}

// NewTodoService creates the service. operators are the names that receive
// the default checklist on Seed.
func NewTodoService(repo repository.TodoRepository, cacheImpl cache.DashboardCache, operators []string) *TodoService {
	return &TodoService{repo: repo, cache: orNoop(cacheImpl), operators: operators, now: time.Now}
}

// Seed assigns the default checklist to every configured operator when no
// operator task exists yet.
func (s *TodoService) Seed(ctx context.Context) (int, error) {
	if len(s.operators) == 0 {
		return 0, fmt.Errorf("%w: no operators configured", domain.ErrPrecondition)
	}

	tasks := make([]domain.OperatorTask, 0, len(s.operators)*len(defaultOperatorTasks))
	for _, op := range s.operators {
		for _, t := range defaultOperatorTasks {
			tasks = append(tasks, domain.OperatorTask{Operator: op, TaskName: t.name, Frequency: t.freq, Active: true})
		}
	}

	n, err := s.repo.SeedTasks(ctx, tasks)
	if err != nil {
		return 0, err
	}
	log.Info().Int("tasks", n).Strs("operators", s.operators).Msg("operator tasks seeded")
	return n, nil
}

// CreateTask adds an operator task, or updates the frequency of an existing
// (operator, task name) pair.
func (s *TodoService) CreateTask(ctx context.Context, task *domain.OperatorTask) error {
	if err := task.Normalize(); err != nil {
		return err
	}
	if err := s.repo.UpsertTask(ctx, task); err != nil {
		return err
	}

	invalidate(ctx, s.cache, "create operator task")
	return nil
}

func (s *TodoService) Tasks(ctx context.Context, activeOnly bool) ([]domain.OperatorTask, error) {
	return s.repo.ListTasks(ctx, activeOnly)
}

// Generate creates the to-dos of every active task between start and
// start+daysAhead. Existing (task, due date) pairs are skipped.
func (s *TodoService) Generate(ctx context.Context, start domain.Date, daysAhead int) (int, error) {
	if start.IsZero() {
		start = domain.NewDate(s.now())
	}
	if daysAhead < 0 {
		return 0, fmt.Errorf("%w: days ahead must not be negative", domain.ErrInvalidInput)
	}

	tasks, err := s.repo.ListTasks(ctx, true)
	if err != nil {
		return 0, err
	}

	var todos []domain.OperatorTodo
	for _, task := range tasks {
		for _, due := range calc.FrequencyOccurrences(start, task.Frequency, daysAhead) {
			todos = append(todos, domain.OperatorTodo{
				TaskID:    task.ID,
				Operator:  task.Operator,
				TaskName:  task.TaskName,
				Frequency: task.Frequency,
				DueDate:   due,
				Status:    domain.TodoPending,
			})
		}
	}
	if len(todos) == 0 {
		return 0, nil
	}

	created, err := s.repo.InsertTodos(ctx, todos)
	if err != nil {
		return 0, err
	}
	if created > 0 {
		invalidate(ctx, s.cache, "generate todos")
	}

	log.Info().Int("candidates", len(todos)).Int("created", created).Msg("operator todos generated")
	return created, nil
}

func (s *TodoService) List(ctx context.Context, filter domain.TodoFilter) ([]domain.OperatorTodo, error) {
	filter.Operator = strings.TrimSpace(filter.Operator)
	if filter.Status != "" {
		status, ok := domain.ParseTodoStatus(filter.Status)
		if !ok {
			return nil, fmt.Errorf("%w: unknown to-do status %q", domain.ErrInvalidInput, filter.Status)
		}
		filter.Status = status
	}
	return s.repo.ListTodos(ctx, filter)
}

// UpdateStatus marks a to-do. Done stamps the completion time; any other
// status clears it.
func (s *TodoService) UpdateStatus(ctx context.Context, id int64, status, notes string) error {
	canonical, ok := domain.ParseTodoStatus(status)
	if !ok {
		return fmt.Errorf("%w: unknown to-do status %q", domain.ErrInvalidInput, status)
	}

	var doneAt *time.Time
	if canonical == domain.TodoDone {
		now := s.now().UTC()
		doneAt = &now
	}

	if err := s.repo.UpdateTodoStatus(ctx, id, canonical, strings.TrimSpace(notes), doneAt); err != nil {
		return err
	}
	invalidate(ctx, s.cache, "update todo")
	return nil
}

func (s *TodoService) CountPending(ctx context.Context, day domain.Date) (int, error) {
	return s.repo.CountPending(ctx, day)
}
