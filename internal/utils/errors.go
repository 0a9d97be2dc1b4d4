package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgconn"
)

var (
	// For concurrency conflicts
	ErrRowVersionConflict = errors.New("row_version_conflict")

	ErrNoRowsUpdated = errors.New("no_rows_updated")
)

// AppError for structured error handling from services to controllers.
type AppError struct {
	StatusCode  int
	Code        string
	Message     string
	FieldErrors map[string]string
	Err         error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func NotFoundError(format string, args ...any) *AppError {
	return &AppError{StatusCode: http.StatusNotFound, Code: ErrCodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func DuplicateError(code, format string, args ...any) *AppError {
	return &AppError{StatusCode: http.StatusConflict, Code: code, Message: fmt.Sprintf(format, args...)}
}

func ForbiddenError(format string, args ...any) *AppError {
	return &AppError{StatusCode: http.StatusForbidden, Code: ErrCodeForbidden, Message: fmt.Sprintf(format, args...)}
}

func InvalidStatusError(message string) *AppError {
	return &AppError{StatusCode: http.StatusBadRequest, Code: ErrCodeInvalidStatus, Message: message}
}

func ValidationError(fieldErrors map[string]string) *AppError {
	return &AppError{StatusCode: http.StatusBadRequest, Code: ErrCodeValidation, Message: "Validation failed", FieldErrors: fieldErrors}
}

func InternalError(message string, err error) *AppError {
	return &AppError{StatusCode: http.StatusInternalServerError, Code: ErrCodeInternal, Message: message, Err: err}
}

// IsUniqueViolation reports a Postgres unique_violation (23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// IsConstraintViolation reports FK, check and not-null violations, and values
// too long for their column.
func IsConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case "23503", "23514", "23502", "22001":
		return true
	}
	return false
}

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *AppError
	switch {
	case errors.As(err, &appErr):
		RespondErrorWithCode(w, r, appErr.StatusCode, appErr.Code, appErr.Message, appErr.FieldErrors, appErr.Err)
	case errors.Is(err, ErrRowVersionConflict):
		RespondErrorWithCode(w, r, http.StatusConflict, ErrCodeRowVersionConflict, "Record was modified by another request", nil, err)
	case IsConstraintViolation(err):
		RespondErrorWithCode(w, r, http.StatusBadRequest, ErrCodeConstraintViolation, "Constraint violation", nil, err)
	default:
		// Fallback for unexpected error types
		RespondErrorWithCode(w, r, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}
