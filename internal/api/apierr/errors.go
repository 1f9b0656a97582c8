package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/cwlroster/internal/clashapi"
	"github.com/mcoot/cwlroster/internal/model"
	"github.com/mcoot/cwlroster/internal/services/auth"
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
	CodeInvalidRequest       = "INVALID_REQUEST"
	CodeInvalidInput         = "INVALID_INPUT"
	CodeNoClans              = "NO_CLANS"
	CodeInvalidClan          = "INVALID_CLAN"
	CodeInvalidLeague        = "INVALID_LEAGUE"
	CodeInvalidPlayerName    = "INVALID_PLAYER_NAME"
	CodeInvalidTownHall      = "INVALID_TOWN_HALL"
	CodeInvalidIndex         = "INVALID_INDEX"
	CodeInvalidConfiguration = "INVALID_CONFIGURATION"
	CodeMessageEmpty         = "MESSAGE_EMPTY"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeInvalidCredentials   = "INVALID_CREDENTIALS"
	CodePlayerNotFound       = "PLAYER_NOT_FOUND"
	CodeClanNotFound         = "CLAN_NOT_FOUND"
	CodeSessionNotFound      = "ROSTER_NOT_FOUND"
	CodeNotFound             = "NOT_FOUND"
	CodeClashNotConfigured   = "CLASH_API_NOT_CONFIGURED"
	CodeClashUnauthorized    = "CLASH_API_UNAUTHORIZED"
	CodeClashBadResponse     = "CLASH_API_BAD_RESPONSE"
	CodeInternalError        = "INTERNAL_ERROR"
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

// Status returns the HTTP status an error is reported with
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError.
// Validation and not-found errors carry their wrapped detail in the message.
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	bad := func(code string) *httpError {
		return &httpError{http.StatusBadRequest, APIError{code, err.Error()}}
	}
	notFound := func(code string) *httpError {
		return &httpError{http.StatusNotFound, APIError{code, err.Error()}}
	}

	switch {
	// Map validation errors
	case errors.Is(err, model.ErrNoClans):
		return bad(CodeNoClans)
	case errors.Is(err, model.ErrInvalidClan):
		return bad(CodeInvalidClan)
	case errors.Is(err, model.ErrInvalidLeague):
		return bad(CodeInvalidLeague)
	case errors.Is(err, model.ErrInvalidPlayerName):
		return bad(CodeInvalidPlayerName)
	case errors.Is(err, model.ErrInvalidTownHall):
		return bad(CodeInvalidTownHall)
	case errors.Is(err, model.ErrInvalidIndex):
		return bad(CodeInvalidIndex)
	case errors.Is(err, model.ErrInvalidConfiguration):
		return bad(CodeInvalidConfiguration)
	case errors.Is(err, model.ErrMessageEmpty):
		return bad(CodeMessageEmpty)
	case errors.Is(err, model.ErrInvalidInput):
		return bad(CodeInvalidInput)

	// Map not found errors
	case errors.Is(err, model.ErrPlayerNotFound):
		return notFound(CodePlayerNotFound)
	case errors.Is(err, model.ErrClanNotFound):
		return notFound(CodeClanNotFound)
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSessionNotFound, "No roster in progress"}}
	case errors.Is(err, model.ErrNotFound):
		return notFound(CodeNotFound)

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}

	// Map Clash of Clans API errors
	case errors.Is(err, clashapi.ErrNotConfigured):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeClashNotConfigured, "Clash of Clans API key not configured"}}
	case errors.Is(err, clashapi.ErrUnauthorized):
		return &httpError{http.StatusForbidden, APIError{CodeClashUnauthorized, "Clash of Clans API key invalid or not authorised"}}
	case errors.Is(err, clashapi.ErrBadResponse):
		return &httpError{http.StatusBadGateway, APIError{CodeClashBadResponse, err.Error()}}

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
