package utils

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

const (
	ErrCodeInvalidPayload      = "INVALID_PAYLOAD"
	ErrCodeValidation          = "VALIDATION_ERROR"
	ErrCodeConstraintViolation = "CONSTRAINT_VIOLATION"
	ErrCodeUnauthorized        = "UNAUTHORIZED"
	ErrCodeTokenExpired        = "TOKEN_EXPIRED"
	ErrCodeForbidden           = "FORBIDDEN"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeMethodNotAllowed    = "METHOD_NOT_ALLOWED"
	ErrCodeInvalidStatus       = "INVALID_STATUS"
	ErrCodeInternal            = "INTERNAL_ERROR"
	ErrCodeRowVersionConflict  = "ROW_VERSION_CONFLICT"
	ErrCodeRateLimitExceeded   = "RATE_LIMIT_EXCEEDED"
	ErrCodeServiceUnavailable  = "SERVICE_UNAVAILABLE"
)

// Envelope wraps every response body, success or failure.
type Envelope struct {
	RequestID   string            `json:"requestId"`
	StatusCode  int               `json:"statusCode"`
	Message     string            `json:"message"`
	Data        any               `json:"data,omitempty"`
	ErrorCode   string            `json:"errorCode,omitempty"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
}

// RespondErrorWithCode builds a JSON error envelope with a standard
// code and message. fieldErrors is included if non-empty.
func RespondErrorWithCode(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	errorCode string,
	publicMessage string,
	fieldErrors map[string]string,
	devErrs ...error,
) {
	requestID := RequestIDFromContext(r.Context())
	writeEnvelope(w, status, Envelope{
		RequestID:   requestID,
		StatusCode:  status,
		Message:     publicMessage,
		ErrorCode:   errorCode,
		FieldErrors: fieldErrors,
	})

	fields := logrus.Fields{
		"status":     status,
		"code":       errorCode,
		"request_id": requestID,
	}
	// devErr is optional; only handle if provided
	if len(devErrs) > 0 && devErrs[0] != nil {
		fields["error"] = devErrs[0].Error()
	}
	if status >= http.StatusInternalServerError {
		Logger.WithFields(fields).Error(publicMessage)
	} else {
		Logger.WithFields(fields).Warn(publicMessage)
	}
}

// RespondWithJSON for successful cases
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, message string, payload any) {
	writeEnvelope(w, status, Envelope{
		RequestID:  RequestIDFromContext(r.Context()),
		StatusCode: status,
		Message:    message,
		Data:       payload,
	})
}

func writeEnvelope(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
