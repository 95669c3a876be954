package components

import (
	"taskflow/internal/domain"
	"taskflow/internal/errors"
)

// CardState is the per-card mode
type CardState int

const (
	Viewing CardState = iota
	Editing
)

func (s CardState) String() string {
	if s == Editing {
		return "editing"
	}
	return "viewing"
}

// TaskCard shows one task and owns an edit buffer seeded from it.
// Viewing is both the initial and the terminal state.
type TaskCard struct {
	task  domain.Task
	state CardState

	title       string
	description string
	priority    domain.Priority
}

// NewTaskCard creates a card in the Viewing state
func NewTaskCard(task domain.Task) *TaskCard {
	c := &TaskCard{task: task}
	c.restore()
	return c
}

func (c *TaskCard) restore() {
	c.title = c.task.Title
	c.description = c.task.Description
	c.priority = c.task.Priority
}

// Task returns the task the card displays
func (c *TaskCard) Task() domain.Task { return c.task }

// State returns the current mode
func (c *TaskCard) State() CardState { return c.state }

// Buffer returns the edit buffer merged over the displayed task
func (c *TaskCard) Buffer() domain.Task {
	merged := c.task
	merged.Title = c.title
	merged.Description = c.description
	merged.Priority = c.priority
	return merged
}

// ToggleComplete emits the full task with Completed flipped. The card itself
// keeps showing the old value until the dashboard hands it the backend's copy.
func (c *TaskCard) ToggleComplete() Intent {
	return ToggleCompleteIntent{Task: c.task.WithCompleted(!c.task.Completed)}
}

// Edit seeds the buffer from the task and enters Editing
func (c *TaskCard) Edit() error {
	if c.state != Viewing {
		return errors.NewInvalidStateError("edit", c.state.String())
	}
	c.restore()
	c.state = Editing
	return nil
}

// SetTitle changes the buffered title
func (c *TaskCard) SetTitle(title string) error {
	if err := c.requireEditing("change title"); err != nil {
		return err
	}
	c.title = title
	return nil
}

// SetDescription changes the buffered description
func (c *TaskCard) SetDescription(description string) error {
	if err := c.requireEditing("change description"); err != nil {
		return err
	}
	c.description = description
	return nil
}

// SetPriority changes the buffered priority
func (c *TaskCard) SetPriority(p domain.Priority) error {
	if err := c.requireEditing("change priority"); err != nil {
		return err
	}
	c.priority = p
	return nil
}

// Save emits an UpdateIntent with the buffer merged over the task and returns to Viewing
func (c *TaskCard) Save() (Intent, error) {
	if err := c.requireEditing("save"); err != nil {
		return nil, err
	}
	intent := UpdateIntent{ID: c.task.ID, Task: c.Buffer()}
	c.state = Viewing
	return intent, nil
}

// Cancel discards the buffer and returns to Viewing without an intent
func (c *TaskCard) Cancel() error {
	if err := c.requireEditing("cancel"); err != nil {
		return err
	}
	c.restore()
	c.state = Viewing
	return nil
}

// Delete emits a DeleteIntent; there is no confirmation step
func (c *TaskCard) Delete() Intent {
	return DeleteIntent{ID: c.task.ID}
}

// Refresh replaces the displayed task, e.g. with the backend's copy after an update.
// An open edit is left alone.
func (c *TaskCard) Refresh(task domain.Task) {
	c.task = task
	if c.state == Viewing {
		c.restore()
	}
}

func (c *TaskCard) requireEditing(op string) error {
	if c.state != Editing {
		return errors.NewInvalidStateError(op, c.state.String())
	}
	return nil
}
