package cli

import (
	"fmt"

	"taskflow/internal/errors"
	"taskflow/internal/validation"
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle provides user-friendly error messages for validation and other errors
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if validationErr, ok := err.(*validation.ValidationError); ok {
		return &userError{message: fmt.Sprintf("failed to %s: %s", operation, validationErr.GetUserFriendlyMessage()), err: err}
	}

	if _, ok := errors.AsAppError(err); ok {
		return &userError{message: fmt.Sprintf("failed to %s: %s", operation, errors.GetUserMessage(err)), err: err}
	}

	return fmt.Errorf("failed to %s: %w", operation, err)
}

// HandleSimple provides user-friendly error messages without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	if validationErr, ok := err.(*validation.ValidationError); ok {
		return &userError{message: validationErr.GetUserFriendlyMessage(), err: err}
	}

	if _, ok := errors.AsAppError(err); ok {
		return &userError{message: errors.GetUserMessage(err), err: err}
	}

	return err
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	return errors.IsErrorType(err, errors.ErrorTypeValidation)
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNotFound)
}

// IsAuthenticationError checks if an error means the user must log in again
func (eh *ErrorHandler) IsAuthenticationError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeAuthentication)
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}

// bannerError pairs the dashboard banner with the reason behind it,
// e.g. "Failed to create task: The server could not complete the request."
func bannerError(banner string, err error) error {
	if banner == "" {
		return NewErrorHandler().HandleSimple(err)
	}
	return &userError{message: banner + ": " + errors.GetUserMessage(err), err: err}
}

// userError carries the message shown to the user while keeping the cause for errors.Is/As
type userError struct {
	message string
	err     error
}

func (e *userError) Error() string { return e.message }

func (e *userError) Unwrap() error { return e.err }
