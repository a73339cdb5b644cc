package driven

import (
	"context"

	"github.com/taskpull/taskpull-cli/internal/core/domain"
)

// Connector fetches task records from a remote issue-tracking service.
// Each connector type (bitbucket, ...) implements this interface.
type Connector interface {
	// Type returns the connector type identifier.
	Type() string

	// SourceID returns the configured source ID.
	SourceID() string

	// Validate checks if the connector is properly configured and
	// authenticated. For API connectors this makes a test API call.
	// Returns nil if ready to sync, error describing the problem otherwise.
	Validate(ctx context.Context) error

	// FullSync fetches all open task records from the source.
	// Returns channels for records and errors. The record channel is closed
	// when the run completes; the first error on the error channel aborts
	// the run (fail-fast, no partial-result salvage).
	FullSync(ctx context.Context) (<-chan domain.TaskRecord, <-chan error)

	// Close releases resources.
	Close() error
}

// IssueCandidate is a lightweight view of a remote issue offered to the
// framework's inclusion predicate before comments are fetched.
type IssueCandidate struct {
	// Project is the repository slug the issue belongs to.
	Project string

	// ForeignID is the remote issue's local numeric id.
	ForeignID int

	// Title is the remote issue title.
	Title string

	// Status is the raw remote status string.
	Status string

	// Owner is the responsible username, empty when unassigned.
	Owner string
}

// IssuePredicate decides whether an issue participates in the sync.
// Applied after the connector's own closed-status filter and before any
// per-issue comment fetch. A nil predicate includes everything.
type IssuePredicate func(candidate IssueCandidate) bool
