package validation

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"taskflow/internal/domain"
)

// Length limits shared by the validators
const (
	UsernameMinLength = 3
	UsernameMaxLength = 30
	PasswordMinLength = 6
)

// Validator provides common validation utilities
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks the trimmed rune count against [min, max]; max <= 0 means unbounded
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := utf8.RuneCountInString(strings.TrimSpace(s))
	if length < min {
		return false
	}
	return max <= 0 || length <= max
}

// IsValidEmail checks for a bare address such as user@example.com
func (v *Validator) IsValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s && strings.Contains(s, ".")
}

// IsValidPriority checks that p is one of low, medium, high
func (v *Validator) IsValidPriority(p domain.Priority) bool {
	return p.IsValid()
}

// IsValidTaskID checks that an opaque id is present
func (v *Validator) IsValidTaskID(id string) bool {
	return strings.TrimSpace(id) != "" && !strings.Contains(id, "/")
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}
