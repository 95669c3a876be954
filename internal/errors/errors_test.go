package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewValidationError(t *testing.T) {
	cause := errors.New("field is required")
	err := NewValidationError("validation failed", cause)

	if err.Type != ErrorTypeValidation {
		t.Errorf("NewValidationError type = %v, want %v", err.Type, ErrorTypeValidation)
	}
	if err.Message != "validation failed" {
		t.Errorf("NewValidationError message = %v, want %v", err.Message, "validation failed")
	}
	if err.Code != "VALIDATION_FAILED" {
		t.Errorf("NewValidationError code = %v, want %v", err.Code, "VALIDATION_FAILED")
	}
	if err.Cause != cause {
		t.Errorf("NewValidationError cause = %v, want %v", err.Cause, cause)
	}
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("task", "abc123")

	if err.Type != ErrorTypeNotFound {
		t.Errorf("NewNotFoundError type = %v, want %v", err.Type, ErrorTypeNotFound)
	}
	if err.Message != "task not found: abc123" {
		t.Errorf("NewNotFoundError message = %v, want %v", err.Message, "task not found: abc123")
	}

	resource, ok := err.GetContext("resource")
	if !ok || resource != "task" {
		t.Errorf("NewNotFoundError should set resource context")
	}
}

func TestNewInvalidInputError(t *testing.T) {
	err := NewInvalidInputError("priority", "urgent", "must be one of low, medium, high")

	if err.Type != ErrorTypeInvalidInput {
		t.Errorf("NewInvalidInputError type = %v, want %v", err.Type, ErrorTypeInvalidInput)
	}
	if err.Message != "invalid input for priority: must be one of low, medium, high" {
		t.Errorf("NewInvalidInputError message = %v", err.Message)
	}
	if err.Code != "INVALID_INPUT" {
		t.Errorf("NewInvalidInputError code = %v, want %v", err.Code, "INVALID_INPUT")
	}

	value, ok := err.GetContext("value")
	if !ok || value != "urgent" {
		t.Errorf("NewInvalidInputError should set value context")
	}
}

func TestNewNetworkError(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := NewNetworkError("GET", "https://api.example.com/tasks", cause)

	if err.Type != ErrorTypeNetwork {
		t.Errorf("NewNetworkError type = %v, want %v", err.Type, ErrorTypeNetwork)
	}
	if err.Code != "NETWORK_ERROR" {
		t.Errorf("NewNetworkError code = %v, want %v", err.Code, "NETWORK_ERROR")
	}
	if !errors.Is(err, cause) {
		t.Errorf("NewNetworkError should wrap its cause")
	}

	url, ok := err.GetContext("url")
	if !ok || url != "https://api.example.com/tasks" {
		t.Errorf("NewNetworkError should set url context")
	}
}

func TestNewBlockedError(t *testing.T) {
	err := NewBlockedError("POST", "https://api.example.com/tasks", errors.New("net::ERR_BLOCKED_BY_CLIENT"))

	if err.Type != ErrorTypeBlocked {
		t.Errorf("NewBlockedError type = %v, want %v", err.Type, ErrorTypeBlocked)
	}
	if err.Code != "REQUEST_BLOCKED" {
		t.Errorf("NewBlockedError code = %v, want %v", err.Code, "REQUEST_BLOCKED")
	}
}

func TestNewStorageError(t *testing.T) {
	cause := errors.New("disk full")
	err := NewStorageError("save token", cause)

	if err.Message != "storage operation failed: save token" {
		t.Errorf("NewStorageError message = %v", err.Message)
	}
	if err.Cause != cause {
		t.Errorf("NewStorageError cause = %v, want %v", err.Cause, cause)
	}
}

func TestNewInvalidStateError(t *testing.T) {
	err := NewInvalidStateError("save", "viewing")

	if err.Type != ErrorTypeInvalidState {
		t.Errorf("NewInvalidStateError type = %v, want %v", err.Type, ErrorTypeInvalidState)
	}
	if err.Message != "cannot save while viewing" {
		t.Errorf("NewInvalidStateError message = %v", err.Message)
	}
}

func TestWrapError(t *testing.T) {
	cause := errors.New("original error")
	err := WrapError(cause, ErrorTypeServer, "wrapped message")

	if err.Type != ErrorTypeServer {
		t.Errorf("WrapError type = %v, want %v", err.Type, ErrorTypeServer)
	}
	if err.Code != "server" {
		t.Errorf("WrapError code = %v, want %v", err.Code, "server")
	}
	if err.Cause != cause {
		t.Errorf("WrapError cause = %v, want %v", err.Cause, cause)
	}
}

func TestAsAppError(t *testing.T) {
	appError := NewAuthenticationError("Login failed", nil)
	wrapped := fmt.Errorf("login: %w", appError)
	regularError := errors.New("regular error")

	result, ok := AsAppError(wrapped)
	if !ok || result != appError {
		t.Errorf("AsAppError should unwrap to the same AppError instance")
	}

	result, ok = AsAppError(regularError)
	if ok || result != nil {
		t.Errorf("AsAppError should return nil, false for regular error")
	}

	if IsAppError(nil) {
		t.Errorf("IsAppError should return false for nil")
	}
}

func TestIsErrorType(t *testing.T) {
	appError := &AppError{Type: ErrorTypeBlocked}

	if !IsErrorType(appError, ErrorTypeBlocked) {
		t.Errorf("IsErrorType should return true for matching type")
	}
	if IsErrorType(appError, ErrorTypeNetwork) {
		t.Errorf("IsErrorType should return false for different type")
	}
	if IsErrorType(errors.New("regular error"), ErrorTypeBlocked) {
		t.Errorf("IsErrorType should return false for regular error")
	}
}

func TestGetUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Validation error", NewValidationError("title is required", nil), "title is required"},
		{"Authentication error", NewAuthenticationError("Invalid credentials", nil), "Invalid credentials"},
		{"Network error", NewNetworkError("GET", "u", errors.New("x")), "Could not reach the server. Please check your connection and try again."},
		{"Storage error", NewStorageError("load", errors.New("x")), "Local session storage failed. Please try again."},
		{"Timeout error", NewTimeoutError("list", "5s"), "The operation timed out. Please try again."},
		{"Regular error", errors.New("regular error"), "regular error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetUserMessage(tt.err)
			if result != tt.expected {
				t.Errorf("GetUserMessage() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	if GetErrorCode(&AppError{Code: "VALIDATION_FAILED"}) != "VALIDATION_FAILED" {
		t.Errorf("GetErrorCode should return correct code for AppError")
	}
	if GetErrorCode(errors.New("regular error")) != "UNKNOWN_ERROR" {
		t.Errorf("GetErrorCode should return UNKNOWN_ERROR for regular error")
	}
}

func TestShouldLogError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"Validation error", NewValidationError("invalid input", nil), false},
		{"Authentication error", NewAuthenticationError("Login failed", nil), false},
		{"Invalid state error", NewInvalidStateError("save", "viewing"), false},
		{"Network error", NewNetworkError("GET", "u", errors.New("x")), true},
		{"Blocked error", NewBlockedError("GET", "u", errors.New("x")), true},
		{"Storage error", NewStorageError("save", errors.New("x")), true},
		{"Regular error", errors.New("regular error"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ShouldLogError(tt.err)
			if result != tt.expected {
				t.Errorf("ShouldLogError() = %v, want %v", result, tt.expected)
			}
		})
	}
}
