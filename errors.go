package gobucket

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// Sentinel errors returned by API operations.
// Match them with [errors.Is].
var (
	// ErrNotFound indicates the requested resource does not exist
	// or is not visible to the authenticated user.
	ErrNotFound = errors.New("not found")

	// ErrPermission indicates the request was rejected
	// for missing or insufficient credentials.
	ErrPermission = errors.New("permission denied")

	// ErrNotAuthenticated indicates an Auth strategy was used
	// before its handshake completed.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrBranchNotFound indicates a pull request referenced
	// a branch that does not exist in the repository.
	ErrBranchNotFound = errors.New("branch not found")
)

// Error is an error response from the Bitbucket API.
type Error struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int

	// Message is the human-readable message
	// extracted from the error body, if any.
	Message string

	// Body is the raw response body.
	Body string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("bitbucket: HTTP %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("bitbucket: HTTP %d", e.StatusCode)
}

// Is maps well-known status codes to sentinel errors
// so callers can use errors.Is without inspecting status codes.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == 404
	case ErrPermission:
		return e.StatusCode == 401 || e.StatusCode == 403
	default:
		return false
	}
}

// newError builds an *Error from a non-2xx response.
// Bitbucket error bodies look like {"error": {"message": "..."}}.
func newError(statusCode int, body []byte) error {
	return &Error{
		StatusCode: statusCode,
		Message:    gjson.GetBytes(body, "error.message").String(),
		Body:       string(body),
	}
}
