package services

import (
	"context"
	"time"

	"taskflow/internal/domain"
)

// SortOrder defines how task results should be sorted
type SortOrder string

const (
	SortByNewestFirst SortOrder = "newest"   // Backend order, most recently created first (default)
	SortByOldestFirst SortOrder = "oldest"   // Good for cleanup
	SortByTitle       SortOrder = "title"    // Alphabetical, case-insensitive
	SortByPriority    SortOrder = "priority" // High before medium before low
)

// ParseSortOrder converts user input into a SortOrder
func ParseSortOrder(s string) (SortOrder, bool) {
	switch o := SortOrder(s); o {
	case SortByNewestFirst, SortByOldestFirst, SortByTitle, SortByPriority:
		return o, true
	case "":
		return SortByNewestFirst, true
	}
	return "", false
}

// SearchCriteria narrows a task list beyond the completion filter
type SearchCriteria struct {
	TextFilter string          `json:"text_filter,omitempty"`
	Priority   domain.Priority `json:"priority,omitempty"`
	Status     domain.Filter   `json:"status,omitempty"`
}

// TaskStatistics summarises a task list
type TaskStatistics struct {
	Counts         domain.Counts           `json:"counts"`
	ByPriority     map[domain.Priority]int `json:"by_priority"`
	PendingHigh    int                     `json:"pending_high"`
	CompletionRate float64                 `json:"completion_rate"`
	OldestPending  *domain.Task            `json:"oldest_pending,omitempty"`
	NewestTask     *domain.Task            `json:"newest_task,omitempty"`
	FirstCreated   time.Time               `json:"first_created"`
}

// AuthService runs the login/register/logout flow and keeps the session current
type AuthService interface {
	Login(ctx context.Context, identifier, password string) (*domain.User, error)
	Register(ctx context.Context, profile domain.Profile) (*domain.User, error)
	Logout(ctx context.Context) error

	// Restore re-hydrates a persisted session; it returns nil when logged out
	Restore(ctx context.Context) (*domain.User, error)
	// Refresh fetches the current user from the backend and caches it
	Refresh(ctx context.Context) (*domain.User, error)
	CurrentUser() (domain.User, bool)
}

// SearchService filters and orders task lists client-side
type SearchService interface {
	SearchTasks(tasks []domain.Task, criteria SearchCriteria) []domain.Task
	SortTasks(tasks []domain.Task, order SortOrder) []domain.Task
}

// ReportingService derives statistics from task lists
type ReportingService interface {
	Summarize(tasks []domain.Task) *TaskStatistics
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	AuthService      AuthService
	SearchService    SearchService
	ReportingService ReportingService
}
