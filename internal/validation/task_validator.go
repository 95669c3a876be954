package validation

import (
	"taskflow/internal/domain"
)

// TaskValidator guards task payloads before they are sent to the backend
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// ValidateTitle checks the trimmed title is present
func (tv *TaskValidator) ValidateTitle(title string) error {
	validationError := NewValidationError()
	tv.addTitleErrors(validationError, title)
	return orNil(validationError)
}

// ValidateTaskInput validates a creation payload and returns it with the priority
// defaulted to medium. Title and description are sent as typed; length rules belong
// to the backend.
func (tv *TaskValidator) ValidateTaskInput(input domain.TaskInput) (domain.TaskInput, error) {
	validationError := NewValidationError()

	tv.addTitleErrors(validationError, input.Title)

	if input.Priority == "" {
		input.Priority = domain.DefaultPriority
	}
	if !tv.validator.IsValidPriority(input.Priority) {
		validationError.AddInvalidValueError("priority", input.Priority, "must be low, medium or high")
	}

	if err := orNil(validationError); err != nil {
		return domain.TaskInput{}, err
	}
	return input, nil
}

// ValidateTaskForUpdate validates the id and the full task sent with an update
func (tv *TaskValidator) ValidateTaskForUpdate(id string, task domain.Task) error {
	validationError := NewValidationError()

	if !tv.validator.IsValidTaskID(id) {
		validationError.AddInvalidValueError("task_id", id, "must be a non-empty identifier")
	}
	tv.addTitleErrors(validationError, task.Title)
	if task.Priority != "" && !tv.validator.IsValidPriority(task.Priority) {
		validationError.AddInvalidValueError("priority", task.Priority, "must be low, medium or high")
	}

	return orNil(validationError)
}

// ValidateTaskID validates a task id
func (tv *TaskValidator) ValidateTaskID(id string) error {
	if !tv.validator.IsValidTaskID(id) {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("task_id", id, "must be a non-empty identifier")
		return validationError
	}
	return nil
}

func (tv *TaskValidator) addTitleErrors(ve *ValidationError, title string) {
	if !tv.validator.IsNonEmptyString(title) {
		ve.AddRequiredError("title")
	}
}
