// Package dashboard owns the authoritative task list for a session. Components emit
// intents; Dispatch turns each one into a backend call and patches the list with the
// backend's response.
package dashboard

import (
	"context"
	"fmt"
	"sync"

	"taskflow/internal/api"
	"taskflow/internal/components"
	"taskflow/internal/domain"
	"taskflow/internal/logging"
)

// Banner messages, one per operation category
const (
	FetchFailedMessage  = "Failed to fetch tasks"
	CreateFailedMessage = "Failed to create task"
	UpdateFailedMessage = "Failed to update task"
	DeleteFailedMessage = "Failed to delete task"
)

// Dashboard is safe for concurrent reads; mutations are expected one at a time.
type Dashboard struct {
	mu       sync.RWMutex
	tasks    []domain.Task
	filter   domain.Filter
	formOpen bool
	loading  bool
	banner   string

	service api.TaskService
	logger  *logging.Logger
}

// Option configures a Dashboard
type Option func(*Dashboard)

// WithLogger logs failed operations
func WithLogger(l *logging.Logger) Option {
	return func(d *Dashboard) { d.logger = l }
}

// WithFilter sets the initial filter
func WithFilter(f domain.Filter) Option {
	return func(d *Dashboard) { d.filter = f }
}

// New creates an empty dashboard in the loading state
func New(service api.TaskService, opts ...Option) *Dashboard {
	d := &Dashboard{
		tasks:   []domain.Task{},
		filter:  domain.FilterAll,
		loading: true,
		service: service,
		logger:  logging.Discard(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Load fetches the list. On failure the list is left empty and the fetch banner is set.
// Loading is cleared either way.
func (d *Dashboard) Load(ctx context.Context) error {
	d.mu.Lock()
	d.loading = true
	d.mu.Unlock()

	tasks, err := d.service.ListTasks(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.loading = false
	if err != nil {
		d.tasks = []domain.Task{}
		d.failLocked(FetchFailedMessage, "list", err)
		return err
	}
	d.tasks = append([]domain.Task{}, tasks...)
	d.banner = ""
	return nil
}

// Dispatch performs one intent. The returned error is the backend or validation
// failure; the user-facing text is available from Error.
func (d *Dashboard) Dispatch(ctx context.Context, intent components.Intent) error {
	switch in := intent.(type) {
	case components.CreateIntent:
		return d.create(ctx, in.Input)
	case components.UpdateIntent:
		return d.update(ctx, in.ID, in.Task)
	case components.ToggleCompleteIntent:
		return d.update(ctx, in.Task.ID, in.Task)
	case components.DeleteIntent:
		return d.remove(ctx, in.ID)
	case components.DismissFormIntent:
		d.mu.Lock()
		d.formOpen = false
		d.mu.Unlock()
		return nil
	case nil:
		return nil
	default:
		return fmt.Errorf("unsupported intent %T", intent)
	}
}

func (d *Dashboard) create(ctx context.Context, input domain.TaskInput) error {
	task, err := d.service.CreateTask(ctx, input)

	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		d.failLocked(CreateFailedMessage, "create", err)
		return err
	}
	d.tasks = append([]domain.Task{*task}, d.tasks...)
	d.formOpen = false
	d.banner = ""
	return nil
}

func (d *Dashboard) update(ctx context.Context, id string, task domain.Task) error {
	updated, err := d.service.UpdateTask(ctx, id, task)

	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		d.failLocked(UpdateFailedMessage, "update", err)
		return err
	}
	next := make([]domain.Task, len(d.tasks))
	for i, t := range d.tasks {
		if t.ID == id {
			t = *updated
		}
		next[i] = t
	}
	d.tasks = next
	d.banner = ""
	return nil
}

func (d *Dashboard) remove(ctx context.Context, id string) error {
	err := d.service.DeleteTask(ctx, id)

	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		d.failLocked(DeleteFailedMessage, "delete", err)
		return err
	}
	next := make([]domain.Task, 0, len(d.tasks))
	for _, t := range d.tasks {
		if t.ID != id {
			next = append(next, t)
		}
	}
	d.tasks = next
	d.banner = ""
	return nil
}

// failLocked overwrites the banner; d.mu must be held
func (d *Dashboard) failLocked(message, op string, err error) {
	d.banner = message
	d.logger.Error(message, logging.Fields{"op": op, "error": err})
}

// OpenForm shows the creation form
func (d *Dashboard) OpenForm() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.formOpen = true
}

// FormOpen reports whether the creation form is shown
func (d *Dashboard) FormOpen() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.formOpen
}

// SetFilter changes the view; the list itself is not touched
func (d *Dashboard) SetFilter(f domain.Filter) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.filter = f
}

// Filter returns the active filter
func (d *Dashboard) Filter() domain.Filter {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.filter
}

// Visible derives the filtered view on every call
func (d *Dashboard) Visible() []domain.Task {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.filter.Apply(d.tasks)
}

// Counts derives total, completed and pending from the full list
func (d *Dashboard) Counts() domain.Counts {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return domain.CountTasks(d.tasks)
}

// Tasks returns a copy of the authoritative list
func (d *Dashboard) Tasks() []domain.Task {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]domain.Task{}, d.tasks...)
}

// Error returns the banner text, or "" when the last operation succeeded
func (d *Dashboard) Error() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.banner
}

// Loading reports whether the initial fetch is still outstanding
func (d *Dashboard) Loading() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loading
}

// EmptyMessage is the text for an empty filtered view
func (d *Dashboard) EmptyMessage() string {
	return d.Filter().EmptyMessage()
}
