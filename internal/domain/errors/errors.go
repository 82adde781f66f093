package errors

import (
	"net/http"

	"educycle/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
	kind      *BaseError // Broader error this one refines, e.g. ErrForbidden.
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
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
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
		kind:      e.kind,
	}
}

// Refine derives a more specific error with the same HTTP status.
// The result still matches e under errors.Is.
func (e *BaseError) Refine(errorCode, message string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: errorCode,
		message:   message,
		kind:      e,
	}
}

// Is reports whether target is one of the broader errors e was refined from.
func (e *BaseError) Is(target error) bool {
	for kind := e.kind; kind != nil; kind = kind.kind {
		if kind == target {
			return true
		}
	}

	return false
}

// Predefined error types
var (
	// Validation errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	ErrInvalidProductReference = NewBaseError(
		http.StatusBadRequest,
		"INVALID_PRODUCT_REFERENCE",
		"Product reference is not a valid product identifier",
		"",
	)

	ErrInvalidUpload = NewBaseError(
		http.StatusBadRequest,
		"INVALID_UPLOAD",
		"Uploaded file is not an accepted image",
		"",
	)

	// Authentication errors
	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"Authentication required",
		"",
	)

	ErrInvalidToken = ErrUnauthorized.Refine(
		"INVALID_TOKEN",
		"Invalid or expired token",
	)

	ErrInvalidCredentials = ErrUnauthorized.Refine(
		"INVALID_CREDENTIALS",
		"Invalid email or password",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Password processing failed",
		"",
	)

	// User errors
	ErrUserNotFound = ErrNotFound.Refine(
		"USER_NOT_FOUND",
		"User not found",
	)

	ErrUserAlreadyExists = ErrConflict.Refine(
		"USER_ALREADY_EXISTS",
		"User already exists",
	)

	ErrUserCreationFailed = NewBaseError(
		http.StatusInternalServerError,
		"USER_CREATION_FAILED",
		"Failed to create user",
		"",
	)

	ErrUserUpdateFailed = NewBaseError(
		http.StatusInternalServerError,
		"USER_UPDATE_FAILED",
		"Failed to update user",
		"",
	)

	// Product errors
	ErrProductNotFound = ErrNotFound.Refine(
		"PRODUCT_NOT_FOUND",
		"Product not found",
	)

	ErrProductOwnership = ErrForbidden.Refine(
		"PRODUCT_OWNERSHIP_VIOLATION",
		"Only the seller can modify this product",
	)

	// Order errors
	ErrOrderIDConflict = ErrConflict.Refine(
		"ORDER_ID_CONFLICT",
		"Order identifier already in use",
	)

	// Messaging errors
	ErrInvalidRecipient = NewBaseError(
		http.StatusBadRequest,
		"INVALID_RECIPIENT",
		"Cannot send a message to yourself",
		"",
	)

	// Device errors
	ErrDeviceNotFound = ErrNotFound.Refine(
		"DEVICE_NOT_FOUND",
		"Device not found",
	)

	ErrDeviceOwnership = ErrForbidden.Refine(
		"DEVICE_OWNERSHIP_VIOLATION",
		"You do not have access to this device",
	)

	// Upload errors
	ErrUploadNotFound = ErrNotFound.Refine(
		"UPLOAD_NOT_FOUND",
		"Upload not found",
	)

	ErrUploadTooLarge = NewBaseError(
		http.StatusRequestEntityTooLarge,
		"UPLOAD_TOO_LARGE",
		"Uploaded file exceeds the size limit",
		"",
	)

	// Transaction errors
	ErrTransactionConflict = NewBaseError(
		http.StatusServiceUnavailable,
		"TRANSACTION_CONFLICT",
		"Too many concurrent updates, please retry",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Access denied",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"Resource conflict",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}

// Unwrap exposes the driver error to errors.Is checks
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}
