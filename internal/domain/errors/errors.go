// Package errors defines the application error taxonomy shared by the domain and use cases.
package errors

import (
	"account/internal/errors"
)

// Kind classifies an application error for callers that need to react to it.
type Kind int

const (
	KindInternal Kind = iota
	// KindValidation marks local data-integrity failures that must block persistence.
	KindValidation
	// KindConfig marks missing or unusable configuration.
	KindConfig
	KindNotFound
	KindConflict
	KindUnauthorized
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConfig:
		return "config"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "internal"
	}
}

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	Kind() Kind        // Error classification
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	kind      Kind
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(kind Kind, errorCode, message, details string) *BaseError {
	return &BaseError{
		kind:      kind,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.details != "" {
		return e.message + ": " + e.details
	}

	return e.message
}

// Is matches errors carrying the same business code, so values produced by
// WithDetails still satisfy errors.Is against the predefined error.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// Kind returns the error classification
func (e *BaseError) Kind() Kind {
	return e.kind
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		kind:      e.kind,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Validation errors
	ErrValidationFailed = NewBaseError(
		KindValidation,
		"VALIDATION_FAILED",
		"input validation failed",
		"",
	)

	ErrPasswordRequired = NewBaseError(
		KindValidation,
		"PASSWORD_REQUIRED",
		"password required",
		"",
	)

	ErrPasswordTooShort = NewBaseError(
		KindValidation,
		"PASSWORD_TOO_SHORT",
		"password is too short",
		"",
	)

	ErrNameRequired = NewBaseError(
		KindValidation,
		"NAME_REQUIRED",
		"name is required",
		"",
	)

	ErrEmailRequired = NewBaseError(
		KindValidation,
		"EMAIL_REQUIRED",
		"email is required",
		"",
	)

	ErrEmailInvalid = NewBaseError(
		KindValidation,
		"EMAIL_INVALID",
		"please fill a valid email address",
		"",
	)

	ErrSubjectRequired = NewBaseError(
		KindValidation,
		"SUBJECT_REQUIRED",
		"token subject id is required",
		"",
	)

	// Configuration errors
	ErrSigningSecretMissing = NewBaseError(
		KindConfig,
		"SIGNING_SECRET_MISSING",
		"token signing secret is not configured",
		"",
	)

	ErrUnsupportedPasswordScheme = NewBaseError(
		KindConfig,
		"UNSUPPORTED_PASSWORD_SCHEME",
		"unsupported password scheme",
		"",
	)

	// User-related errors
	ErrUserNotFound = NewBaseError(
		KindNotFound,
		"USER_NOT_FOUND",
		"user not found",
		"",
	)

	ErrUserAlreadyExists = NewBaseError(
		KindConflict,
		"USER_ALREADY_EXISTS",
		"email already exists",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		KindUnauthorized,
		"INVALID_CREDENTIALS",
		"invalid email or password",
		"",
	)

	// Internal errors
	ErrPasswordHashFailed = NewBaseError(
		KindInternal,
		"PASSWORD_HASH_FAILED",
		"password processing failed",
		"",
	)

	ErrTokenSigningFailed = NewBaseError(
		KindInternal,
		"TOKEN_SIGNING_FAILED",
		"token signing failed",
		"",
	)
)

// KindOf returns the Kind of the first AppError in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.Kind()
	}

	return KindInternal
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	return err != nil && KindOf(err) == KindValidation
}

// IsConfig reports whether err is a configuration failure.
func IsConfig(err error) bool {
	return err != nil && KindOf(err) == KindConfig
}
