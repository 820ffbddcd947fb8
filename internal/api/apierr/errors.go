package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tondrop/tondrop-go/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeInvalidScore     = "INVALID_SCORE"
	CodeInvalidField     = "INVALID_FIELD"
	CodePlayerNotFound   = "PLAYER_NOT_FOUND"
	CodeSelfReferral     = "SELF_REFERRAL"
	CodeAlreadyReferred  = "ALREADY_REFERRED"
	CodeReferrerNotFound = "REFERRER_NOT_FOUND"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeStorageBusy      = "STORAGE_BUSY"
	CodeInternalError    = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Invalid or missing fields"}}
	case errors.Is(err, model.ErrInvalidScore):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidScore, "Score must be a positive integer"}}
	case errors.Is(err, model.ErrInvalidDuration):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Duration must be positive"}}
	case errors.Is(err, model.ErrInvalidField):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidField, "Field must be 'total' or 'competition'"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrSelfReferral):
		return &httpError{http.StatusConflict, APIError{CodeSelfReferral, "Players cannot refer themselves"}}
	case errors.Is(err, model.ErrAlreadyReferred):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyReferred, "Player has already been referred"}}
	case errors.Is(err, model.ErrReferrerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeReferrerNotFound, "Referrer not found"}}
	case errors.Is(err, model.ErrStorageConflict), errors.Is(err, model.ErrStorageTimeout):
		// Retryable: the request had no durable effect (or can safely be
		// retried at the caller's discretion).
		return &httpError{http.StatusServiceUnavailable, APIError{CodeStorageBusy, "Storage busy, retry the request"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
