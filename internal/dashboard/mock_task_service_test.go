package dashboard

import (
	"context"
	"fmt"
	"time"

	"taskflow/internal/api"
	"taskflow/internal/domain"
	"taskflow/internal/errors"
)

// mockTaskService implements api.TaskService in memory, newest first like the backend
type mockTaskService struct {
	tasks  []domain.Task
	nextID int
	now    time.Time

	// failures keyed by operation name: list, create, update, delete
	failures map[string]error
	calls    map[string]int
}

func newMockTaskService(tasks ...domain.Task) *mockTaskService {
	return &mockTaskService{
		tasks:    append([]domain.Task{}, tasks...),
		nextID:   100,
		now:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		failures: make(map[string]error),
		calls:    make(map[string]int),
	}
}

var _ api.TaskService = (*mockTaskService)(nil)

func (m *mockTaskService) failNext(op string, err error) { m.failures[op] = err }

func (m *mockTaskService) take(op string) error {
	m.calls[op]++
	err := m.failures[op]
	delete(m.failures, op)
	return err
}

func (m *mockTaskService) ListTasks(ctx context.Context) ([]domain.Task, error) {
	if err := m.take("list"); err != nil {
		return nil, err
	}
	return append([]domain.Task{}, m.tasks...), nil
}

func (m *mockTaskService) CreateTask(ctx context.Context, input domain.TaskInput) (*domain.Task, error) {
	if err := m.take("create"); err != nil {
		return nil, err
	}
	m.nextID++
	m.now = m.now.Add(time.Minute)
	task := domain.Task{
		ID:          fmt.Sprintf("srv-%d", m.nextID),
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		CreatedAt:   m.now,
	}
	m.tasks = append([]domain.Task{task}, m.tasks...)
	return &task, nil
}

// UpdateTask stores the payload but, like a real backend, keeps the server-owned
// fields and stamps a server-side description marker so tests can tell the copies apart
func (m *mockTaskService) UpdateTask(ctx context.Context, id string, task domain.Task) (*domain.Task, error) {
	if err := m.take("update"); err != nil {
		return nil, err
	}
	for i, existing := range m.tasks {
		if existing.ID == id {
			task.ID = existing.ID
			task.CreatedAt = existing.CreatedAt
			task.Description = task.Description + " (saved)"
			m.tasks[i] = task
			return &task, nil
		}
	}
	return nil, errors.NewNotFoundError("task", id)
}

func (m *mockTaskService) DeleteTask(ctx context.Context, id string) error {
	if err := m.take("delete"); err != nil {
		return err
	}
	for i, existing := range m.tasks {
		if existing.ID == id {
			m.tasks = append(m.tasks[:i:i], m.tasks[i+1:]...)
			return nil
		}
	}
	return errors.NewNotFoundError("task", id)
}
