package domain

import (
	"strings"
	"time"
)

// Priority is the urgency of a task as understood by the backend.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultPriority is used for new tasks when none is chosen.
const DefaultPriority = PriorityMedium

// Priorities lists the accepted values in ascending order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// ParsePriority converts user input into a Priority, ignoring case and surrounding space.
func ParsePriority(s string) (Priority, bool) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	return p, p.IsValid()
}

// IsValid reports whether p is one of the known priorities.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// String returns the priority name.
func (p Priority) String() string {
	return string(p)
}

// Task represents a task as returned by the backend.
// The client only holds a transient copy; the backend owns it.
type Task struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    Priority  `json:"priority"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TaskInput is the payload sent to create a task.
type TaskInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Priority    Priority `json:"priority"`
}

// NewTaskInput creates a TaskInput with the default priority.
func NewTaskInput(title string) TaskInput {
	return TaskInput{
		Title:    title,
		Priority: DefaultPriority,
	}
}

// IsValid checks if the task has a usable title.
func (t Task) IsValid() bool {
	return strings.TrimSpace(t.Title) != ""
}

// WithCompleted returns a copy of the task with the completion flag set.
func (t Task) WithCompleted(completed bool) Task {
	t.Completed = completed
	return t
}

// String returns the task title for display purposes.
func (t Task) String() string {
	return t.Title
}
