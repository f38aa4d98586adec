package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
)

func TestTodoService_Seed(t *testing.T) {
	repo := &mockTodoRepo{}
	svc := NewTodoService(repo, nil, []string{"Ali", "Hassan"})

	repo.On("SeedTasks", mock.Anything, mock.MatchedBy(func(tasks []domain.OperatorTask) bool {
		return len(tasks) == 2*len(defaultOperatorTasks) && tasks[0].Operator == "Ali" && tasks[len(tasks)-1].Operator == "Hassan"
	})).Return(12, nil)

	n, err := svc.Seed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, n)
}

func TestTodoService_Seed_NoOperators(t *testing.T) {
	svc := NewTodoService(&mockTodoRepo{}, nil, nil)
	_, err := svc.Seed(context.Background())
	assert.ErrorIs(t, err, domain.ErrPrecondition)
}

func TestTodoService_CreateTask(t *testing.T) {
	repo := &mockTodoRepo{}
	c := expectInvalidate()
	svc := NewTodoService(repo, c, nil)

	repo.On("UpsertTask", mock.Anything, mock.MatchedBy(func(task *domain.OperatorTask) bool {
		return task.Operator == "Ali" && task.Frequency == domain.FrequencyWeekly
	})).Return(nil)

	task := &domain.OperatorTask{Operator: " Ali ", TaskName: "Check antiscalant dosing", Frequency: "weekly"}
	require.NoError(t, svc.CreateTask(context.Background(), task))

	repo.AssertExpectations(t)
	c.AssertNumberOfCalls(t, "InvalidateAll", 1)
}

func TestTodoService_CreateTask_Invalid(t *testing.T) {
	c := &mockCache{}
	svc := NewTodoService(&mockTodoRepo{}, c, nil)

	err := svc.CreateTask(context.Background(), &domain.OperatorTask{Operator: "Ali"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	c.AssertNotCalled(t, "InvalidateAll", mock.Anything)
}

func TestTodoService_Generate(t *testing.T) {
	repo := &mockTodoRepo{}
	c := expectInvalidate()
	svc := NewTodoService(repo, c, nil)

	repo.On("ListTasks", mock.Anything, true).Return([]domain.OperatorTask{
		{ID: 1, Operator: "Ali", TaskName: "Read flowmeter totalizer", Frequency: domain.FrequencyDaily},
		{ID: 2, Operator: "Ali", TaskName: "Inspect chemical day tanks", Frequency: domain.FrequencyWeekly},
		{ID: 3, Operator: "Ali", TaskName: "Clean plant room and skid", Frequency: domain.FrequencyMonthly},
	}, nil)

	var inserted []domain.OperatorTodo
	repo.On("InsertTodos", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { inserted = args.Get(1).([]domain.OperatorTodo) }).
		Return(14, nil)

	created, err := svc.Generate(context.Background(), day(t, "2025-08-01"), 13)
	require.NoError(t, err)
	assert.Equal(t, 14, created)

	counts := map[int64]int{}
	for _, td := range inserted {
		counts[td.TaskID]++
		assert.Equal(t, domain.TodoPending, td.Status)
	}
	assert.Equal(t, map[int64]int{1: 14, 2: 2, 3: 1}, counts)
}

func TestTodoService_UpdateStatus(t *testing.T) {
	repo := &mockTodoRepo{}
	c := expectInvalidate()
	svc := NewTodoService(repo, c, nil)
	stamp := time.Date(2025, 8, 1, 9, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return stamp }

	repo.On("UpdateTodoStatus", mock.Anything, int64(4), domain.TodoDone, "all good", &stamp).Return(nil)
	require.NoError(t, svc.UpdateStatus(context.Background(), 4, "done", " all good "))

	repo.On("UpdateTodoStatus", mock.Anything, int64(4), domain.TodoSkipped, "", (*time.Time)(nil)).Return(nil)
	require.NoError(t, svc.UpdateStatus(context.Background(), 4, "Skipped", ""))

	err := svc.UpdateStatus(context.Background(), 4, "later", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	repo.AssertExpectations(t)
	c.AssertNumberOfCalls(t, "InvalidateAll", 2)
}
