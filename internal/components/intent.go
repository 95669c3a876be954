// Package components holds the task entry state machines. They never touch the task
// list: every user action becomes an Intent that the dashboard dispatches.
package components

import "taskflow/internal/domain"

// Intent is a user action addressed to the dashboard. The set is closed.
type Intent interface {
	Kind() string
	intent()
}

// Intent kinds
const (
	KindCreate         = "create"
	KindUpdate         = "update"
	KindToggleComplete = "toggle_complete"
	KindDelete         = "delete"
	KindDismissForm    = "dismiss_form"
)

// CreateIntent asks for a new task
type CreateIntent struct {
	Input domain.TaskInput
}

// UpdateIntent asks to replace a task with Task
type UpdateIntent struct {
	ID   string
	Task domain.Task
}

// ToggleCompleteIntent carries the full task with Completed already flipped
type ToggleCompleteIntent struct {
	Task domain.Task
}

// DeleteIntent asks to remove the task with ID
type DeleteIntent struct {
	ID string
}

// DismissFormIntent closes the creation form without touching the list
type DismissFormIntent struct{}

func (CreateIntent) Kind() string         { return KindCreate }
func (UpdateIntent) Kind() string         { return KindUpdate }
func (ToggleCompleteIntent) Kind() string { return KindToggleComplete }
func (DeleteIntent) Kind() string         { return KindDelete }
func (DismissFormIntent) Kind() string    { return KindDismissForm }

func (CreateIntent) intent()         {}
func (UpdateIntent) intent()         {}
func (ToggleCompleteIntent) intent() {}
func (DeleteIntent) intent()         {}
func (DismissFormIntent) intent()    {}
