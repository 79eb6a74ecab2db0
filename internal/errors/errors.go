package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUnauthorized is returned when no valid session or role backs an action.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUserExists is returned when registering an already used email.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is returned when a user row is missing.
	ErrUserNotFound = errors.New("user not found")
	// ErrAdminProtected is returned when deleting a user holding the Admin role.
	ErrAdminProtected = errors.New("cannot delete admin users")
	// ErrProjectNotFound is returned when a project is not found.
	ErrProjectNotFound = errors.New("project not found")
	// ErrTaskNotFound is returned when a task is not found.
	ErrTaskNotFound = errors.New("task not found")
	// ErrMissingFields is returned when required form fields are absent.
	ErrMissingFields = errors.New("missing fields")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Storage errors fall
// through to a generic 500 so internal detail never reaches the client.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusForbidden, err.Error(), "UNAUTHORIZED")
	case errors.Is(err, ErrUserExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "USER_ALREADY_EXISTS")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrAdminProtected):
		return NewHTTPError(http.StatusForbidden, err.Error(), "ADMIN_PROTECTED")
	case errors.Is(err, ErrProjectNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "PROJECT_NOT_FOUND")
	case errors.Is(err, ErrTaskNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "TASK_NOT_FOUND")
	case errors.Is(err, ErrMissingFields):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "MISSING_FIELDS")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
