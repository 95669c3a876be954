package httpclient

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"

	"taskflow/internal/errors"
)

// HTTPError is returned for every non-2xx response
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Message    string
	Body       []byte
}

func newHTTPError(req *http.Request, status int, body []byte) *HTTPError {
	return &HTTPError{
		Method:     req.Method,
		URL:        req.URL.String(),
		StatusCode: status,
		Message:    backendMessage(status, body),
		Body:       body,
	}
}

// Error implements the error interface
func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, e.Message)
}

// Kind classifies the status code into the application error taxonomy
func (e *HTTPError) Kind() errors.ErrorType {
	switch {
	case e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden:
		return errors.ErrorTypeAuthentication
	case e.StatusCode == http.StatusNotFound:
		return errors.ErrorTypeNotFound
	case e.StatusCode == http.StatusRequestTimeout || e.StatusCode == http.StatusGatewayTimeout:
		return errors.ErrorTypeTimeout
	case e.StatusCode >= 500:
		return errors.ErrorTypeServer
	default:
		return errors.ErrorTypeValidation
	}
}

// Unwrap exposes the status as an AppError so errors.As and IsErrorType work on HTTPError
func (e *HTTPError) Unwrap() error {
	return &errors.AppError{
		Type:    e.Kind(),
		Message: e.Message,
		Code:    fmt.Sprintf("HTTP_%d", e.StatusCode),
		Context: map[string]interface{}{
			"method": e.Method,
			"url":    e.URL,
			"status": e.StatusCode,
		},
	}
}

// StatusOf returns the HTTP status carried by err, or 0 when err did not come from a response
func StatusOf(err error) int {
	var httpErr *HTTPError
	if stderrors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}

// BackendMessage returns the backend-provided message carried by err, if any
func BackendMessage(err error) (string, bool) {
	var httpErr *HTTPError
	if !stderrors.As(err, &httpErr) {
		return "", false
	}
	if httpErr.Message == "" || httpErr.Message == http.StatusText(httpErr.StatusCode) {
		return "", false
	}
	return httpErr.Message, true
}

// backendMessage extracts {"message": ...} or {"error": ...} from a response body,
// falling back to the status text
func backendMessage(status int, body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if m := strings.TrimSpace(payload.Message); m != "" {
			return m
		}
		if m := strings.TrimSpace(payload.Error); m != "" {
			return m
		}
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("status %d", status)
}
