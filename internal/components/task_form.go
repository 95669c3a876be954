package components

import (
	"strings"

	"taskflow/internal/domain"
)

// TaskForm buffers a new task until it is submitted
type TaskForm struct {
	title       string
	description string
	priority    domain.Priority
}

// NewTaskForm returns an empty form with priority medium
func NewTaskForm() *TaskForm {
	f := &TaskForm{}
	f.reset()
	return f
}

func (f *TaskForm) reset() {
	f.title = ""
	f.description = ""
	f.priority = domain.DefaultPriority
}

// SetTitle updates the title field
func (f *TaskForm) SetTitle(title string) { f.title = title }

// SetDescription updates the description field
func (f *TaskForm) SetDescription(description string) { f.description = description }

// SetPriority updates the priority field
func (f *TaskForm) SetPriority(p domain.Priority) { f.priority = p }

// Buffer returns the current field values
func (f *TaskForm) Buffer() domain.TaskInput {
	return domain.TaskInput{
		Title:       f.title,
		Description: f.description,
		Priority:    f.priority,
	}
}

// Submit emits a CreateIntent and clears the buffer. A blank or whitespace-only
// title is a silent no-op: no intent, no error, buffer untouched.
func (f *TaskForm) Submit() (Intent, bool) {
	if strings.TrimSpace(f.title) == "" {
		return nil, false
	}
	intent := CreateIntent{Input: f.Buffer()}
	f.reset()
	return intent, true
}

// Cancel asks the dashboard to close the form; the buffer is kept as is
func (f *TaskForm) Cancel() Intent {
	return DismissFormIntent{}
}
