package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Phronesis2025/wcs-basketball-go/internal/model"
	"github.com/Phronesis2025/wcs-basketball-go/internal/services/auth"
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
	CodeInvalidRequest         = "INVALID_REQUEST"
	CodeUnauthorized           = "UNAUTHORIZED"
	CodeInvalidTransition      = "INVALID_TRANSITION"
	CodeMissingReason          = "MISSING_REASON"
	CodeUnknownTeam            = "UNKNOWN_TEAM"
	CodeConcurrentModification = "CONCURRENT_MODIFICATION"
	CodeInvalidPaymentKind     = "INVALID_PAYMENT_KIND"
	CodeImmutablePayment       = "IMMUTABLE_PAYMENT"
	CodePlayerNotFound         = "PLAYER_NOT_FOUND"
	CodeGuardianNotFound       = "GUARDIAN_NOT_FOUND"
	CodeTeamNotFound           = "TEAM_NOT_FOUND"
	CodePaymentNotFound        = "PAYMENT_NOT_FOUND"
	CodeUsernameExists         = "USERNAME_EXISTS"
	CodeInvalidCredentials     = "INVALID_CREDENTIALS"
	CodeInternalError          = "INTERNAL_ERROR"
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
	case errors.Is(err, model.ErrInvalidTransition):
		return &httpError{http.StatusConflict, APIError{CodeInvalidTransition, "Transition not allowed from the player's current status"}}
	case errors.Is(err, model.ErrMissingReason):
		return &httpError{http.StatusBadRequest, APIError{CodeMissingReason, "A non-empty reason is required"}}
	case errors.Is(err, model.ErrUnknownTeam):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownTeam, "Team does not exist"}}
	case errors.Is(err, model.ErrConcurrentModification):
		return &httpError{http.StatusConflict, APIError{CodeConcurrentModification, "Player was modified concurrently, try again"}}
	case errors.Is(err, model.ErrInvalidPaymentKind):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPaymentKind, "Payment kind must be annual, monthly or quarterly"}}
	case errors.Is(err, model.ErrImmutablePayment):
		return &httpError{http.StatusConflict, APIError{CodeImmutablePayment, "Payment amount and kind cannot change"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrGuardianNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGuardianNotFound, "Guardian not found"}}
	case errors.Is(err, model.ErrTeamNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeTeamNotFound, "Team not found"}}
	case errors.Is(err, model.ErrPaymentNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePaymentNotFound, "Payment not found"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}

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
