package validation

import (
	"taskflow/internal/domain"
)

// AuthValidator checks login and signup payloads
type AuthValidator struct {
	validator *Validator
}

// NewAuthValidator creates a new auth validator
func NewAuthValidator() *AuthValidator {
	return &AuthValidator{validator: NewValidator()}
}

// ValidateCredentials requires an identifier and a password
func (av *AuthValidator) ValidateCredentials(creds domain.Credentials) error {
	validationError := NewValidationError()
	if !av.validator.IsNonEmptyString(creds.Identifier) {
		validationError.AddRequiredError("identifier")
	}
	if creds.Password == "" {
		validationError.AddRequiredError("password")
	}
	return orNil(validationError)
}

// ValidateProfile applies the signup form rules: username, a valid email and
// a password of at least six characters
func (av *AuthValidator) ValidateProfile(profile domain.Profile) error {
	validationError := NewValidationError()

	switch {
	case !av.validator.IsNonEmptyString(profile.Username):
		validationError.AddRequiredError("username")
	case !av.validator.IsValidStringLength(profile.Username, UsernameMinLength, UsernameMaxLength):
		validationError.AddInvalidLengthError("username", profile.Username, UsernameMinLength, UsernameMaxLength)
	}

	email := av.validator.TrimAndValidateString(profile.Email)
	switch {
	case email == "":
		validationError.AddRequiredError("email")
	case !av.validator.IsValidEmail(email):
		validationError.AddInvalidFormatError("email", email, "name@example.com")
	}

	switch {
	case profile.Password == "":
		validationError.AddRequiredError("password")
	case len(profile.Password) < PasswordMinLength:
		validationError.AddInvalidLengthError("password", nil, PasswordMinLength, 0)
	}

	return orNil(validationError)
}
