// Package api maps each backend endpoint to one function. Nothing here retries or
// recovers: transport and HTTP errors reach the caller unchanged.
package api

import (
	"context"
	"net/url"

	"taskflow/internal/domain"
	"taskflow/internal/validation"
)

// Requester is the subset of httpclient.Client the API needs
type Requester interface {
	Get(ctx context.Context, path string, out interface{}) error
	Post(ctx context.Context, path string, body, out interface{}) error
	Put(ctx context.Context, path string, body, out interface{}) error
	Delete(ctx context.Context, path string, out interface{}) error
}

// AuthAPI defines the account endpoints.
type AuthAPI interface {
	Login(ctx context.Context, creds domain.Credentials) (*domain.AuthResponse, error)
	Register(ctx context.Context, profile domain.Profile) (*domain.AuthResponse, error)
	Me(ctx context.Context) (*domain.User, error)
}

// TaskService defines the task collection endpoints.
type TaskService interface {
	ListTasks(ctx context.Context) ([]domain.Task, error)
	CreateTask(ctx context.Context, input domain.TaskInput) (*domain.Task, error)
	UpdateTask(ctx context.Context, id string, task domain.Task) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

// API defines every backend operation the client uses.
type API interface {
	AuthAPI
	TaskService
}

type apiImpl struct {
	client        Requester
	taskValidator *validation.TaskValidator
}

// New creates a new API instance on top of a configured HTTP client.
func New(client Requester) API {
	return &apiImpl{
		client:        client,
		taskValidator: validation.NewTaskValidator(),
	}
}

// Auth endpoints

func (a *apiImpl) Login(ctx context.Context, creds domain.Credentials) (*domain.AuthResponse, error) {
	var resp domain.AuthResponse
	if err := a.client.Post(ctx, "/auth/login", creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *apiImpl) Register(ctx context.Context, profile domain.Profile) (*domain.AuthResponse, error) {
	var resp domain.AuthResponse
	if err := a.client.Post(ctx, "/auth/register", profile, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *apiImpl) Me(ctx context.Context) (*domain.User, error) {
	var resp domain.MeResponse
	if err := a.client.Get(ctx, "/auth/me", &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Task endpoints

func (a *apiImpl) ListTasks(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := a.client.Get(ctx, "/tasks", &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

func (a *apiImpl) CreateTask(ctx context.Context, input domain.TaskInput) (*domain.Task, error) {
	// A blank title never leaves the client.
	cleaned, err := a.taskValidator.ValidateTaskInput(input)
	if err != nil {
		return nil, err
	}

	var task domain.Task
	if err := a.client.Post(ctx, "/tasks", cleaned, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (a *apiImpl) UpdateTask(ctx context.Context, id string, task domain.Task) (*domain.Task, error) {
	if err := a.taskValidator.ValidateTaskForUpdate(id, task); err != nil {
		return nil, err
	}

	var updated domain.Task
	if err := a.client.Put(ctx, taskPath(id), task, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (a *apiImpl) DeleteTask(ctx context.Context, id string) error {
	if err := a.taskValidator.ValidateTaskID(id); err != nil {
		return err
	}
	return a.client.Delete(ctx, taskPath(id), nil)
}

func taskPath(id string) string {
	return "/tasks/" + url.PathEscape(id)
}
