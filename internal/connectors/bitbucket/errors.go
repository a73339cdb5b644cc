package bitbucket

import (
	"errors"
	"fmt"

	"github.com/taskpull/taskpull-cli/internal/core/domain"
)

// Bitbucket-specific errors.
var (
	// ErrUnknownPriority indicates a remote priority value outside the
	// fixed mapping table. Mapping never falls back to a default.
	ErrUnknownPriority = errors.New("bitbucket: unknown priority")

	// ErrIncompleteRecord indicates a remote issue is missing a required
	// field (local_id, title or status).
	ErrIncompleteRecord = errors.New("bitbucket: incomplete issue record")

	// ErrConfigMissingUsername indicates the source config has no username.
	ErrConfigMissingUsername = fmt.Errorf("bitbucket: %w", domain.ErrMissingUsername)
)

// maxBodyExcerpt bounds how much of a response body an APIError carries.
const maxBodyExcerpt = 512

// APIError represents a Bitbucket API failure: a non-200 status or an
// undecodable response body.
type APIError struct {
	StatusCode int
	Path       string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("bitbucket: API error %d: %s (body: %s)", e.StatusCode, e.Path, e.Body)
}

// IsNotFound checks if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}
	return false
}

// IsUnauthorized checks if the error indicates an authentication failure.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401
	}
	return false
}
