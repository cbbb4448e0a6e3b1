package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Transient store errors, safe to retry as a whole transaction
	ErrStoreUnavailable = errors.New("store unavailable")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Author errors
var (
	ErrAuthorNotFound      = errors.New("author not found")
	ErrAuthorEmailExists   = errors.New("author email already exists")
	ErrAuthorHasRentedBook = errors.New("author has a rented book and cannot be deleted")
)

// Student errors
var (
	ErrStudentNotFound           = errors.New("student not found")
	ErrStudentEmailExists        = errors.New("student email already exists")
	ErrStudentRegistrationExists = errors.New("student registration already exists")
)

// Book errors
var (
	ErrBookNotFound      = errors.New("book not found")
	ErrBookAlreadyExists = errors.New("book with this title or ISBN already exists")
	ErrBookAlreadyRented = errors.New("book is already rented")
	ErrBookNotRentedBy   = errors.New("book is not rented by this student")
	ErrBookRented        = errors.New("book is currently rented")
)

// User errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates an error that matches ErrResourceNotFound
func NewNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

// NewConflictError creates an error that matches ErrConflict
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewBadRequestError creates an error that matches ErrBadRequest
func NewBadRequestError(message string) error {
	return &CustomError{Err: ErrBadRequest, Message: message}
}

// IsNotFound reports whether err is any of the not-found variants
func IsNotFound(err error) bool {
	return errors.Is(err, ErrResourceNotFound) ||
		errors.Is(err, ErrAuthorNotFound) ||
		errors.Is(err, ErrStudentNotFound) ||
		errors.Is(err, ErrBookNotFound) ||
		errors.Is(err, ErrUserNotFound)
}

// IsConflict reports whether err is any of the state-machine conflict variants
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrBookAlreadyRented) ||
		errors.Is(err, ErrBookNotRentedBy) ||
		errors.Is(err, ErrBookRented) ||
		errors.Is(err, ErrAuthorHasRentedBook)
}

// IsAlreadyExists reports whether err is any of the uniqueness-violation variants
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrResourceAlreadyExists) ||
		errors.Is(err, ErrBookAlreadyExists) ||
		errors.Is(err, ErrAuthorEmailExists) ||
		errors.Is(err, ErrStudentEmailExists) ||
		errors.Is(err, ErrStudentRegistrationExists) ||
		errors.Is(err, ErrEmailAlreadyExists)
}
